package errx

import (
	"net/http"
	"strings"
)

// Key identifies a descriptor inside a catalog.
type Key struct {
	Domain string
	Code   string
}

// String returns the key as "domain/code".
func (k Key) String() string {
	return k.Domain + "/" + k.Code
}

// Compare orders keys by domain, then by code.
func (k Key) Compare(other Key) int {
	if c := strings.Compare(k.Domain, other.Domain); c != 0 {
		return c
	}
	return strings.Compare(k.Code, other.Code)
}

// Descriptor is the immutable metadata record of one error case.
//
// The zero value is an empty descriptor; use NewDescriptor or Set.Define to
// build one with its mandatory fields (domain, code, variant and message).
type Descriptor struct {
	domain  string
	code    string
	variant string
	message string
	status  int
	docURL  string
	tags    []string
}

// Option configures optional descriptor metadata.
type Option func(*Descriptor)

// WithStatus sets the HTTP status class associated with the error.
func WithStatus(status int) Option {
	return func(d *Descriptor) {
		d.status = status
	}
}

// WithDocURL sets a documentation link for the error.
func WithDocURL(url string) Option {
	return func(d *Descriptor) {
		d.docURL = url
	}
}

// WithTags appends tags to the descriptor.
func WithTags(tags ...string) Option {
	return func(d *Descriptor) {
		d.tags = append(d.tags, tags...)
	}
}

// NewDescriptor builds a descriptor from its mandatory fields and options.
// It performs no validation: empty fields are reported when the catalog is built.
func NewDescriptor(domain, code, variant, message string, opts ...Option) Descriptor {
	d := Descriptor{
		domain:  domain,
		code:    code,
		variant: variant,
		message: message,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&d)
		}
	}
	d.tags = cloneStrings(d.tags)
	return d
}

// Domain returns the owning subsystem.
func (d Descriptor) Domain() string { return d.domain }

// Code returns the machine-readable code, unique within the domain.
func (d Descriptor) Code() string { return d.code }

// Variant returns the symbolic name of the error case.
func (d Descriptor) Variant() string { return d.variant }

// Message returns the raw message template.
func (d Descriptor) Message() string { return d.message }

// Status returns the HTTP status class, or 0 when unspecified.
func (d Descriptor) Status() int { return d.status }

// DocURL returns the documentation link, if any.
func (d Descriptor) DocURL() string { return d.docURL }

// Tags returns a copy of the descriptor tags.
func (d Descriptor) Tags() []string { return cloneStrings(d.tags) }

// HasTag reports whether the descriptor carries the given tag.
func (d Descriptor) HasTag(tag string) bool {
	for _, t := range d.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Key returns the (domain, code) pair.
func (d Descriptor) Key() Key {
	return Key{Domain: d.domain, Code: d.code}
}

// IsZero reports whether d is the zero descriptor.
func (d Descriptor) IsZero() bool {
	return d.domain == "" && d.code == "" && d.variant == "" && d.message == "" &&
		d.status == 0 && d.docURL == "" && len(d.tags) == 0
}

// StatusText returns the canonical text of the status, or "" when unset.
func (d Descriptor) StatusText() string {
	if d.status == 0 {
		return ""
	}
	return http.StatusText(d.status)
}

// Equal reports whether both descriptors carry the same metadata.
func (d Descriptor) Equal(other Descriptor) bool {
	if d.domain != other.domain || d.code != other.code || d.variant != other.variant ||
		d.message != other.message || d.status != other.status || d.docURL != other.docURL {
		return false
	}
	if len(d.tags) != len(other.tags) {
		return false
	}
	for i := range d.tags {
		if d.tags[i] != other.tags[i] {
			return false
		}
	}
	return true
}

// Less orders descriptors by (domain, code).
func (d Descriptor) Less(other Descriptor) bool {
	return d.Key().Compare(other.Key()) < 0
}

// WithDocURL returns a copy of d with the documentation link replaced.
func (d Descriptor) WithDocURL(url string) Descriptor {
	d.docURL = url
	d.tags = cloneStrings(d.tags)
	return d
}

// Placeholders returns the {name} placeholders of the message template in
// order of first appearance.
func (d Descriptor) Placeholders() []string {
	var names []string
	seen := make(map[string]bool)
	scanTemplate(d.message, func(name string) string {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return ""
	})
	return names
}

// Render substitutes the placeholders of the message template.
// Placeholders without a value are left untouched.
func (d Descriptor) Render(fields map[string]string) string {
	if len(fields) == 0 {
		return d.message
	}
	return scanTemplate(d.message, func(name string) string {
		if value, ok := fields[name]; ok {
			return value
		}
		return "{" + name + "}"
	})
}

// scanTemplate walks the template and replaces every well-formed {name}
// with the value returned by fn. Names are limited to letters, digits and
// underscores; anything else is copied verbatim.
func scanTemplate(tmpl string, fn func(name string) string) string {
	var b strings.Builder
	b.Grow(len(tmpl))
	for i := 0; i < len(tmpl); {
		if tmpl[i] != '{' {
			b.WriteByte(tmpl[i])
			i++
			continue
		}
		end := strings.IndexByte(tmpl[i+1:], '}')
		if end <= 0 || !isPlaceholderName(tmpl[i+1:i+1+end]) {
			b.WriteByte(tmpl[i])
			i++
			continue
		}
		b.WriteString(fn(tmpl[i+1 : i+1+end]))
		i += end + 2
	}
	return b.String()
}

func isPlaceholderName(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return name != ""
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
