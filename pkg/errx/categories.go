package errx

import "net/http"

// DomainGeneric is the domain of the generic codes below.
const DomainGeneric = "generic"

var errs = NewSet(DomainGeneric)

// Generic error codes, usually not meant for the end user.
var (
	BadRequest          = errs.Define("BAD_REQUEST", "BadRequest", http.StatusBadRequest, "The request is not well formed")
	Unauthorized        = errs.Define("UNAUTHORIZED", "Unauthorized", http.StatusUnauthorized, "Not authorized to access this resource")
	Forbidden           = errs.Define("FORBIDDEN", "Forbidden", http.StatusForbidden, "Forbidden access to the resource")
	NotFound            = errs.Define("NOT_FOUND", "NotFound", http.StatusNotFound, "The resource could not be found")
	GatewayTimeout      = errs.Define("GATEWAY_TIMEOUT", "GatewayTimeout", http.StatusGatewayTimeout, "Timeout exceeded while waiting for a response")
	InternalServerError = errs.Define("INTERNAL_SERVER_ERROR", "InternalServerError", http.StatusInternalServerError, "Internal server error")
)

// Errors returns the set holding the generic codes.
func Errors() *Set {
	return errs
}

// Internal creates an unexpected internal server error with a reason.
func Internal(reason string) *Error {
	return New(InternalServerError).WithReason(reason)
}

// WrapInternal wraps a cause with an internal server error.
func WrapInternal(reason string, cause error) *Error {
	return Wrap(InternalServerError, cause).WithReason(reason)
}

// CreateByDescriptor creates an Error for the descriptor with an optional
// reason and cause.
func CreateByDescriptor(desc Descriptor, reason string, cause error) *Error {
	err := New(desc)
	if cause != nil {
		err = Wrap(desc, cause)
	}
	if reason != "" {
		err = err.WithReason(reason)
	}
	return err
}

// FromSentinel creates an Error from a sentinel error and optional reason/cause.
// The descriptor is resolved through lookup; unknown sentinels fall back to
// InternalServerError. The sentinel becomes the error base, so
// errors.Is(err, sentinel) holds.
func FromSentinel(sentinel error, lookup func(error) (Descriptor, bool), reason string, cause error) *Error {
	desc, ok := lookup(sentinel)
	if !ok {
		desc = InternalServerError
	}
	return CreateByDescriptor(desc, reason, cause).WithBase(sentinel)
}
