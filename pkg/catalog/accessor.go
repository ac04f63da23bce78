package catalog

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
)

// State is the lifecycle state of an Accessor.
type State int32

const (
	StateUninitialized State = iota
	StateBuilding
	StateReady
	StateFailed
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateBuilding:
		return "building"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Accessor builds the catalog of a fixed provider list on first use and
// hands out the same instance afterwards.
//
// The build runs exactly once: concurrent first callers wait for it, and
// a failed build stays failed. There is no way back to
// StateUninitialized.
type Accessor struct {
	providers []Provider
	logger    logr.Logger
	onFailure func(error)

	once    sync.Once
	state   atomic.Int32
	catalog *Catalog
	err     error
}

// AccessorOption configures an Accessor.
type AccessorOption func(*Accessor)

// WithLogger sets the logger used to report the build outcome.
func WithLogger(logger logr.Logger) AccessorOption {
	return func(a *Accessor) {
		a.logger = logger
	}
}

// WithOnFailure sets the hook MustGet invokes when the build failed.
// The default hook panics with the build error.
func WithOnFailure(fn func(error)) AccessorOption {
	return func(a *Accessor) {
		a.onFailure = fn
	}
}

// NewAccessor returns an Accessor over a copy of providers.
func NewAccessor(providers []Provider, opts ...AccessorOption) *Accessor {
	a := &Accessor{
		providers: append([]Provider(nil), providers...),
		logger:    logr.Discard(),
		onFailure: func(err error) { panic(err) },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Get returns the catalog, building it on the first call.
// After a failed build every call returns the same error.
func (a *Accessor) Get() (*Catalog, error) {
	if State(a.state.Load()) == StateReady {
		return a.catalog, nil
	}
	a.once.Do(a.build)
	return a.catalog, a.err
}

// MustGet returns the catalog or hands the build error to the failure
// hook. It is meant for program startup, where an ambiguous catalog must
// stop the process.
func (a *Accessor) MustGet() *Catalog {
	c, err := a.Get()
	if err != nil {
		a.onFailure(err)
	}
	return c
}

// State returns the current lifecycle state.
func (a *Accessor) State() State {
	return State(a.state.Load())
}

func (a *Accessor) build() {
	a.state.Store(int32(StateBuilding))
	start := time.Now()

	c, regs, err := a.collectAndBuild()
	if err != nil {
		a.err = err
		a.state.Store(int32(StateFailed))
		a.logger.Error(err, "error catalog build failed",
			"providers", len(a.providers),
			"registrations", regs,
		)
		logViolations(a.logger, err)
		return
	}

	a.catalog = c
	a.state.Store(int32(StateReady))
	a.logger.V(1).Info("error catalog built",
		"providers", len(a.providers),
		"entries", c.Len(),
		"domains", len(c.Domains()),
		"duration", time.Since(start).String(),
	)
}

// collectAndBuild runs the providers and the validator. A panicking
// producer becomes a build error.
func (a *Accessor) collectAndBuild() (c *Catalog, registrations int, err error) {
	defer func() {
		if r := recover(); r != nil {
			c = nil
			err = fmt.Errorf("error catalog build panicked: %v", r)
		}
	}()

	regs := Collect(a.providers...)
	registrations = len(regs)
	c, err = Build(regs)
	return c, registrations, err
}
