// Package pagination validates Relay-style cursor pagination arguments.
package pagination

import (
	"strconv"

	"errcatalog/pkg/errx"
)

// Direction is the direction of a page query.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Args are the raw page arguments of a request. Nil counts and empty
// cursors are unset.
type Args struct {
	First  *int
	Last   *int
	After  string
	Before string
}

// Limits bound a page query. Zero values are unset.
type Limits struct {
	DefaultLimit int
	MaxPageSize  int
}

// Query is a validated page query.
type Query struct {
	Direction Direction
	// Limit is "first" when paginating forward and "last" backward.
	Limit int
	// Cursor is "after" when paginating forward and "before" backward.
	Cursor Cursor
}

// NewQuery decodes the cursors of args and validates the combination.
func NewQuery(args Args, limits Limits) (Query, error) {
	var after, before Cursor
	var err error
	if args.After != "" {
		if after, err = DecodeCursor(args.After); err != nil {
			return Query{}, errx.Wrap(PageInvalidCursor, err).WithReason("Could not parse 'after' cursor")
		}
	}
	if args.Before != "" {
		if before, err = DecodeCursor(args.Before); err != nil {
			return Query{}, errx.Wrap(PageInvalidCursor, err).WithReason("Could not parse 'before' cursor")
		}
	}

	first, last := args.First, args.Last
	if limits.DefaultLimit > 0 && first == nil && last == nil {
		n := limits.DefaultLimit
		if !before.IsZero() {
			last = &n
		} else {
			first = &n
		}
	}

	switch {
	case first == nil && last == nil:
		return Query{}, errx.New(PageMissing)
	case first != nil && *first < 0:
		return Query{}, errx.New(PageNegativeInput).WithField("field", "first")
	case last != nil && *last < 0:
		return Query{}, errx.New(PageNegativeInput).WithField("field", "last")
	case first != nil && last != nil:
		return Query{}, errx.New(PageFirstAndLast)
	}

	if !after.IsZero() && !before.IsZero() {
		return Query{}, errx.New(PageAfterAndBefore)
	}

	if first != nil {
		if err := checkMax("first", *first, limits.MaxPageSize); err != nil {
			return Query{}, err
		}
		if !before.IsZero() {
			return Query{}, errx.New(PageForwardWithBefore)
		}
		return Query{Direction: Forward, Limit: *first, Cursor: after}, nil
	}

	if err := checkMax("last", *last, limits.MaxPageSize); err != nil {
		return Query{}, err
	}
	if !after.IsZero() {
		return Query{}, errx.New(PageBackwardWithAfter)
	}
	return Query{Direction: Backward, Limit: *last, Cursor: before}, nil
}

func checkMax(field string, n, max int) error {
	if max > 0 && n > max {
		return errx.New(PageExceedsLimit).
			WithField("field", field).
			WithField("max", strconv.Itoa(max))
	}
	return nil
}
