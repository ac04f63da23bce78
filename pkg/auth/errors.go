// Package auth declares the authentication error codes and extracts the
// credentials a request carries.
package auth

import (
	"net/http"

	"errcatalog/pkg/errx"
)

// Domain is the domain of the authentication error codes.
const Domain = "auth"

var errs = errx.NewSet(Domain)

var (
	AuthMissing = errs.Define("AUTH_MISSING", "AuthMissing",
		http.StatusUnauthorized, "Missing authentication",
		errx.WithTags("security"))
	AuthMalformedCookies = errs.Define("AUTH_MALFORMED_COOKIES", "AuthMalformedCookies",
		http.StatusBadRequest, "Malformed cookies",
		errx.WithTags("security"))
	AuthMalformedAuthHeader = errs.Define("AUTH_MALFORMED_AUTH_HEADER", "AuthMalformedAuthHeader",
		http.StatusBadRequest, `Malformed "{auth_header}" header`,
		errx.WithTags("security"))
	AuthInvalidToken = errs.Define("AUTH_INVALID_TOKEN", "AuthInvalidToken",
		http.StatusBadRequest, "Invalid authorization token",
		errx.WithTags("security"))
	AuthFailed = errs.Define("AUTH_FAILED", "AuthFailed",
		http.StatusForbidden, "The user is not allowed to perform such action",
		errx.WithTags("security"))
)

// Errors returns the set holding the authentication error codes.
func Errors() *errx.Set {
	return errs
}

// MalformedAuthHeader returns an AUTH_MALFORMED_AUTH_HEADER error for the
// named header.
func MalformedAuthHeader(header string) *errx.Error {
	return errx.New(AuthMalformedAuthHeader).WithField("auth_header", header)
}
