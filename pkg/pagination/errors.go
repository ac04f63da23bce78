package pagination

import (
	"net/http"

	"errcatalog/pkg/errx"
)

// Domain is the domain of the pagination error codes.
const Domain = "pagination"

var errs = errx.NewSet(Domain)

var (
	PageMissing = errs.Define("PAGE_MISSING", "PageMissing", http.StatusBadRequest,
		`Missing pagination data: at least one of "first" or "last" must be set`)
	PageNegativeInput = errs.Define("PAGE_NEGATIVE_INPUT", "PageNegativeInput", http.StatusBadRequest,
		`The "{field}" parameter must be a non-negative number`)
	PageExceedsLimit = errs.Define("PAGE_EXCEEDS_LIMIT", "PageExceedsLimit", http.StatusBadRequest,
		`The "{field}" parameter must not exceed {max}`)
	PageFirstAndLast = errs.Define("PAGE_FIRST_AND_LAST", "PageFirstAndLast", http.StatusBadRequest,
		`The "first" and "last" parameters cannot exist at the same time`)
	PageAfterAndBefore = errs.Define("PAGE_AFTER_AND_BEFORE", "PageAfterAndBefore", http.StatusBadRequest,
		`The "after" and "before" parameters cannot exist at the same time`)
	PageForwardWithBefore = errs.Define("PAGE_FORWARD_WITH_BEFORE", "PageForwardWithBefore", http.StatusBadRequest,
		`When forward paginating only "after" is allowed, not "before"`)
	PageBackwardWithAfter = errs.Define("PAGE_BACKWARD_WITH_AFTER", "PageBackwardWithAfter", http.StatusBadRequest,
		`When backward paginating only "before" is allowed, not "after"`)
	PageInvalidCursor = errs.Define("PAGE_INVALID_CURSOR", "PageInvalidCursor", http.StatusBadRequest,
		"The provided cursor is not recognized")
)

// Errors returns the set holding the pagination error codes.
func Errors() *errx.Set {
	return errs
}
