package errx

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
)

// Slot is one registration: the declaration site and the function
// producing the descriptor declared there.
type Slot struct {
	Site    string
	Produce func() Descriptor
}

// Set collects the slots declared by one package for one domain.
//
// A package keeps a single Set at package scope and defines its codes
// against it during variable initialization:
//
//	var errs = errx.NewSet("auth")
//
//	var AuthMissing = errs.Define("AUTH_MISSING", "AuthMissing",
//		http.StatusUnauthorized, "Missing authentication")
//
// The catalog never sees a Set until it is listed by the program's
// provider assembly, so no cross-package initialization order is involved.
type Set struct {
	domain string

	mu    sync.Mutex
	slots []Slot
}

// NewSet returns an empty Set for the given domain.
func NewSet(domain string) *Set {
	return &Set{domain: domain}
}

// Name returns the domain of the set.
func (s *Set) Name() string {
	if s == nil {
		return ""
	}
	return s.domain
}

// Define registers a descriptor in the set's domain and returns it.
func (s *Set) Define(code, variant string, status int, message string, opts ...Option) Descriptor {
	all := make([]Option, 0, len(opts)+1)
	all = append(all, WithStatus(status))
	all = append(all, opts...)
	d := NewDescriptor(s.domain, code, variant, message, all...)
	s.append(Slot{
		Site:    callerSite(2),
		Produce: func() Descriptor { return d },
	})
	return d
}

// Add registers a descriptor producer. The producer is invoked once per
// catalog build.
func (s *Set) Add(produce func() Descriptor) {
	s.append(Slot{
		Site:    callerSite(2),
		Produce: produce,
	})
}

// Register records a prebuilt descriptor. depth counts the helper frames
// between the declaration and this call, so wrappers can attribute the
// slot to their own caller.
func (s *Set) Register(d Descriptor, depth int) Descriptor {
	s.append(Slot{
		Site:    callerSite(2 + depth),
		Produce: func() Descriptor { return d },
	})
	return d
}

// Slots returns a copy of the slot table in declaration order.
func (s *Set) Slots() []Slot {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Len returns the number of registered slots.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

func (s *Set) append(slot Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = append(s.slots, slot)
}

// callerSite returns "dir/file.go:line" for the caller skip frames up.
func callerSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	dir := filepath.Base(filepath.Dir(file))
	return fmt.Sprintf("%s/%s:%d", dir, filepath.Base(file), line)
}
