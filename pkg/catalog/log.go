package catalog

import (
	"errors"

	"github.com/go-logr/logr"

	"errcatalog/pkg/errx"
)

// logViolations logs each violation joined into err at V(1) with structured
// fields:
//   - error.code: "DUPLICATE_REGISTRATION"
//   - error.domain: "catalog"
//   - error.message: "Error code auth/AUTH_MISSING is registered 2 times: ..."
//   - error.context.sites: ["auth/errors.go:20", "auth/errors.go:31"]
//
// Errors that are not errx errors are logged with the message only.
func logViolations(logger logr.Logger, err error) {
	var joined interface{ Unwrap() []error }
	violations := []error{err}
	if errors.As(err, &joined) {
		violations = joined.Unwrap()
	}

	for _, v := range violations {
		var errxErr *errx.Error
		if !errors.As(v, &errxErr) {
			logger.V(1).Info("error catalog violation", "error", v.Error())
			continue
		}

		keysAndValues := []any{
			"error.code", errxErr.Code(),
			"error.domain", errxErr.Domain(),
			"error.message", errxErr.Message(),
		}
		for key, value := range errxErr.Context() {
			keysAndValues = append(keysAndValues, "error.context."+key, value)
		}
		logger.V(1).Info("error catalog violation", keysAndValues...)
	}
}
