// Package modules assembles the error providers linked into the program
// and owns the process-wide catalog.
package modules

import (
	"sync"

	"github.com/go-logr/logr"

	"errcatalog/internal/cli"
	"errcatalog/internal/export"
	"errcatalog/pkg/auth"
	"errcatalog/pkg/catalog"
	"errcatalog/pkg/errx"
	"errcatalog/pkg/pagination"
)

// coreModules lists every package that declares error codes. A package
// missing here contributes nothing to the catalog.
var coreModules = []catalog.Provider{
	errx.Errors(),
	catalog.Errors(),
	auth.Errors(),
	pagination.Errors(),
	cli.Errors(),
	export.Errors(),
}

var (
	initOnce        sync.Once
	defaultAccessor *catalog.Accessor
)

// Init configures the process-wide accessor with logger and returns it.
// Only the first call, or the first catalog access, configures it; later
// calls return the same accessor.
func Init(logger logr.Logger) *catalog.Accessor {
	initOnce.Do(func() {
		defaultAccessor = catalog.NewAccessor(coreModules, catalog.WithLogger(logger))
	})
	return defaultAccessor
}

// Accessor returns the process-wide accessor, configuring it without a
// logger if Init was never called.
func Accessor() *catalog.Accessor {
	return Init(logr.Discard())
}

// Providers returns a copy of the registered provider list.
func Providers() []catalog.Provider {
	return append([]catalog.Provider(nil), coreModules...)
}

// Catalog returns the process-wide catalog, building it on first use.
func Catalog() (*catalog.Catalog, error) {
	return Accessor().Get()
}

// MustCatalog returns the process-wide catalog and panics when it cannot
// be built.
func MustCatalog() *catalog.Catalog {
	return Accessor().MustGet()
}
