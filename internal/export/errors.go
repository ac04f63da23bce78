package export

import (
	"errors"
	"net/http"

	"errcatalog/pkg/errx"
)

// Domain is the domain of the export error codes.
const Domain = "export"

var errs = errx.NewSet(Domain)

// Sentinel errors for export failures.
var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrDecode            = errors.New("catalog document decode failed")
	ErrEncode            = errors.New("catalog document encode failed")
)

var (
	UnsupportedFormat = errs.Define("UNSUPPORTED_FORMAT", "UnsupportedFormat",
		http.StatusBadRequest, `Unsupported export format "{format}", expected one of: {supported}`,
		errx.WithTags("cli"))
	DecodeFailed = errs.Define("DECODE_FAILED", "DecodeFailed",
		http.StatusBadRequest, "Couldn't decode catalog document {source}",
		errx.WithTags("cli"))
	EncodeFailed = errs.Define("ENCODE_FAILED", "EncodeFailed",
		http.StatusInternalServerError, "Couldn't encode catalog as {format}")
)

// Errors returns the set holding the export error codes.
func Errors() *errx.Set {
	return errs
}
