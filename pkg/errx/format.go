package errx

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// UserString returns a user-safe error message.
// It extracts the most user-friendly message from an errx.Error,
// falling back to the standard error message for non-errx errors.
func UserString(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		if msg := e.Message(); msg != "" {
			return msg
		}
		if e.Code() != "" {
			return e.Code()
		}
	}
	return err.Error()
}

// IsError checks if the given error is an errx.Error.
func IsError(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	return errors.As(err, &e)
}

// Summary renders an error as "[status text] DOMAIN/CODE: message".
// Errors without a descriptor are rendered as internal errors.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		e = Internal(err.Error())
	}
	status := e.Status()
	if status == 0 {
		return fmt.Sprintf("%s: %s", e.desc.Key(), e.Message())
	}
	return fmt.Sprintf("[%d %s] %s: %s", status, e.desc.StatusText(), e.desc.Key(), e.Message())
}

// DebugString lists the error chain breadth-first, one numbered line per
// error. Lines for *Error values carry domain, code, status, message,
// the unexpected flag and sorted context.
func DebugString(err error) string {
	if err == nil {
		return ""
	}
	lines := make([]string, 0, 4)
	for i, item := range flattenChain(err) {
		line := fmt.Sprintf("%d: %T: %s", i+1, item, item.Error())
		if e, ok := item.(*Error); ok {
			for _, attr := range debugAttrs(e) {
				line += " | " + attr
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func debugAttrs(e *Error) []string {
	var attrs []string
	if domain := e.Domain(); domain != "" {
		attrs = append(attrs, "domain="+domain)
	}
	if code := e.Code(); code != "" {
		attrs = append(attrs, "code="+code)
	}
	if status := e.Status(); status != 0 {
		attrs = append(attrs, "status="+strconv.Itoa(status))
	}
	if msg := e.Message(); msg != "" {
		attrs = append(attrs, "message="+strconv.Quote(msg))
	}
	if e.unexpected {
		attrs = append(attrs, "unexpected")
	}
	if len(e.context) > 0 {
		attrs = append(attrs, "context={"+formatContext(e.context)+"}")
	}
	return attrs
}

func flattenChain(err error) []error {
	var out []error
	queue := []error{err}
	const maxEntries = 64
	for len(queue) > 0 && len(out) < maxEntries {
		current := queue[0]
		queue = queue[1:]
		if current == nil {
			continue
		}
		out = append(out, current)
		queue = append(queue, unwrapAll(current)...)
	}
	return out
}

func unwrapAll(err error) []error {
	switch unwrapped := err.(type) {
	case interface{ Unwrap() []error }:
		return unwrapped.Unwrap()
	case interface{ Unwrap() error }:
		if next := unwrapped.Unwrap(); next != nil {
			return []error{next}
		}
	}
	return nil
}

func formatContext(ctx map[string]any) string {
	keys := make([]string, 0, len(ctx))
	for key := range ctx {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, ctx[key]))
	}
	return strings.Join(parts, ", ")
}
