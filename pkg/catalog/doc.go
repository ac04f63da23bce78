// Package catalog collects error descriptors registered by independent
// packages and merges them into one validated, deterministic catalog.
//
// Packages never register with the catalog directly. Each one exposes its
// errx.Set through a provider function, and the program lists every
// provider once at a known assembly point:
//
//	var coreModules = []catalog.Provider{
//		errx.Errors(),
//		auth.Errors(),
//		billing.Errors(),
//	}
//
//	var errorCatalog = catalog.NewAccessor(coreModules)
//
// The first call to Accessor.Get walks every slot of every provider
// (Collect), rejects empty or duplicated (domain, code) pairs and sorts the
// result (Build). The catalog is then cached for the lifetime of the
// process; later calls are plain reads.
//
// Build failures are errx errors from the catalog's own "catalog" domain,
// matchable with errors.Is against ErrDuplicateRegistration,
// ErrEmptyDomainOrCode and ErrMissingField.
package catalog
