package catalog

import (
	"errors"
	"net/http"

	"errcatalog/pkg/errx"
)

// Domain is the domain of the catalog's own error codes.
const Domain = "catalog"

var errs = errx.NewSet(Domain)

// Sentinel errors matched with errors.Is against build failures.
var (
	ErrDuplicateRegistration = errors.New("duplicate error registration")
	ErrEmptyDomainOrCode     = errors.New("error descriptor with empty domain or code")
	ErrMissingField          = errors.New("error descriptor with missing mandatory field")
)

var (
	DuplicateRegistration = errs.Define("DUPLICATE_REGISTRATION", "DuplicateRegistration",
		http.StatusInternalServerError,
		"Error code {domain}/{code} is registered {count} times: {sites}",
		errx.WithTags("startup"))
	EmptyDomainOrCode = errs.Define("EMPTY_DOMAIN_OR_CODE", "EmptyDomainOrCode",
		http.StatusInternalServerError,
		"Error descriptor {variant} declared at {site} has an empty domain or code",
		errx.WithTags("startup"))
	MissingField = errs.Define("MISSING_FIELD", "MissingField",
		http.StatusInternalServerError,
		"Error descriptor {domain}/{code} declared at {site} has no {field}",
		errx.WithTags("startup"))
)

// Errors returns the set holding the catalog's own error codes.
func Errors() *errx.Set {
	return errs
}
