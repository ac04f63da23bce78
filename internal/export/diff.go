package export

import (
	"sort"

	"github.com/google/go-cmp/cmp"

	"errcatalog/pkg/errx"
)

// Change is an entry present in both documents with different content.
type Change struct {
	Key    string
	Old    Entry
	New    Entry
	Detail string
}

// Changes is the difference between two documents, each list sorted by key.
type Changes struct {
	Added   []Entry
	Removed []Entry
	Changed []Change
}

// Empty reports whether the documents are equivalent.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Changed) == 0
}

// Diff compares two documents by (domain, code).
func Diff(oldDoc, newDoc Document) Changes {
	before := index(oldDoc)
	after := index(newDoc)

	var changes Changes
	for key, n := range after {
		o, ok := before[key]
		if !ok {
			changes.Added = append(changes.Added, n)
			continue
		}
		if detail := cmp.Diff(o, n); detail != "" {
			changes.Changed = append(changes.Changed, Change{Key: key.String(), Old: o, New: n, Detail: detail})
		}
	}
	for key, o := range before {
		if _, ok := after[key]; !ok {
			changes.Removed = append(changes.Removed, o)
		}
	}

	sortEntries(changes.Added)
	sortEntries(changes.Removed)
	sort.Slice(changes.Changed, func(i, j int) bool {
		return entryLess(changes.Changed[i].New, changes.Changed[j].New)
	})
	return changes
}

func index(doc Document) map[errx.Key]Entry {
	m := make(map[errx.Key]Entry, len(doc.Entries))
	for _, e := range doc.Entries {
		m[errx.Key{Domain: e.Domain, Code: e.Code}] = e
	}
	return m
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entryLess(entries[i], entries[j])
	})
}

func entryLess(a, b Entry) bool {
	if a.Domain != b.Domain {
		return a.Domain < b.Domain
	}
	return a.Code < b.Code
}
