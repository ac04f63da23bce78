package errx

import (
	"errors"
	"net/http"
)

// Error is an error instance raised from a registered descriptor.
type Error struct {
	desc       Descriptor
	reason     string
	fields     map[string]string
	context    map[string]any
	cause      error
	base       error
	unexpected bool
}

// New creates an Error for the descriptor. Errors with a server error
// status are marked unexpected.
func New(desc Descriptor) *Error {
	return &Error{
		desc:       desc,
		unexpected: desc.Status() >= http.StatusInternalServerError,
	}
}

// Wrap creates an Error for the descriptor and attaches a cause error.
func Wrap(desc Descriptor, cause error) *Error {
	err := New(desc)
	err.cause = cause
	return err
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := e.Message(); msg != "" {
		return msg
	}
	if e.desc.Code() != "" {
		return e.desc.Code()
	}
	return "error"
}

// Unwrap returns the immediate wrapped error (cause).
// This follows Go's error wrapping convention where Unwrap() returns
// the direct cause, not the base sentinel.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is implements error matching for sentinel errors.
// This allows errors.Is(err, sentinel) to match the base sentinel
// even though Unwrap() returns the cause.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if e.base != nil && errors.Is(e.base, target) {
		return true
	}
	return errors.Is(e.cause, target)
}

// Descriptor returns the descriptor the error was raised from.
func (e *Error) Descriptor() Descriptor {
	if e == nil {
		return Descriptor{}
	}
	return e.desc
}

// Domain returns the descriptor domain.
func (e *Error) Domain() string {
	if e == nil {
		return ""
	}
	return e.desc.Domain()
}

// Code returns the descriptor code.
func (e *Error) Code() string {
	if e == nil {
		return ""
	}
	return e.desc.Code()
}

// Status returns the descriptor status.
func (e *Error) Status() int {
	if e == nil {
		return 0
	}
	return e.desc.Status()
}

// Reason returns the instance-specific reason, if any.
func (e *Error) Reason() string {
	if e == nil {
		return ""
	}
	return e.reason
}

// Message returns the reason when set, otherwise the descriptor template
// rendered with the error fields.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	if e.reason != "" {
		return e.reason
	}
	return e.desc.Render(e.fields)
}

// Fields returns a copy of the placeholder values.
func (e *Error) Fields() map[string]string {
	if e == nil || len(e.fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.fields))
	for key, value := range e.fields {
		out[key] = value
	}
	return out
}

// Context returns a copy of the structured context.
func (e *Error) Context() map[string]any {
	if e == nil || len(e.context) == 0 {
		return nil
	}
	return cloneContext(e.context)
}

// Cause returns the wrapped error, if any.
func (e *Error) Cause() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Base returns the sentinel base error, if any.
func (e *Error) Base() error {
	if e == nil {
		return nil
	}
	return e.base
}

// IsUnexpected reports whether the error should be traced as a failure
// rather than an ordinary client-facing outcome.
func (e *Error) IsUnexpected() bool {
	if e == nil {
		return false
	}
	return e.unexpected
}

// WithReason returns a copy carrying an instance-specific reason.
func (e *Error) WithReason(reason string) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	clone.reason = reason
	return clone
}

// WithField returns a copy with a placeholder value set.
func (e *Error) WithField(name, value string) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	if clone.fields == nil {
		clone.fields = make(map[string]string)
	}
	clone.fields[name] = value
	return clone
}

// WithContext adds a context key/value pair.
// Returns a new error with the added context to avoid mutating the original.
func (e *Error) WithContext(key string, value any) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	if clone.context == nil {
		clone.context = make(map[string]any)
	}
	clone.context[key] = value
	return clone
}

// WithContextMap merges a context map into the error context.
// Always returns a clone, even if ctx is empty.
func (e *Error) WithContextMap(ctx map[string]any) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	if len(ctx) > 0 {
		if clone.context == nil {
			clone.context = make(map[string]any, len(ctx))
		}
		for key, value := range ctx {
			clone.context[key] = value
		}
	}
	return clone
}

// WithBase sets the sentinel base error used for errors.Is matching.
func (e *Error) WithBase(base error) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	clone.base = base
	return clone
}

// WithCause replaces the wrapped error.
func (e *Error) WithCause(cause error) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	clone.cause = cause
	return clone
}

// Unexpected returns a copy with the unexpected flag set to v.
func (e *Error) Unexpected(v bool) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	clone.unexpected = v
	return clone
}

func (e *Error) clone() *Error {
	clone := &Error{
		desc:       e.desc,
		reason:     e.reason,
		cause:      e.cause,
		base:       e.base,
		unexpected: e.unexpected,
	}
	if len(e.context) > 0 {
		clone.context = cloneContext(e.context)
	}
	if len(e.fields) > 0 {
		clone.fields = e.Fields()
	}
	return clone
}

func cloneContext(ctx map[string]any) map[string]any {
	clone := make(map[string]any, len(ctx))
	for key, value := range ctx {
		clone[key] = value
	}
	return clone
}
