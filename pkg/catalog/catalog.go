package catalog

import (
	"sort"

	"errcatalog/pkg/errx"
)

// Catalog is the merged, validated and sorted set of registered
// descriptors. It is immutable; all methods are safe for concurrent use
// and a nil Catalog behaves as an empty one.
type Catalog struct {
	entries []errx.Descriptor
	index   map[errx.Key]int
}

// newCatalog indexes entries, which must already be sorted and unique.
func newCatalog(entries []errx.Descriptor) *Catalog {
	index := make(map[errx.Key]int, len(entries))
	for i, d := range entries {
		index[d.Key()] = i
	}
	return &Catalog{entries: entries, index: index}
}

// Len returns the number of descriptors.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Lookup returns the descriptor registered for (domain, code).
// A miss is an ordinary outcome and returns false.
func (c *Catalog) Lookup(domain, code string) (errx.Descriptor, bool) {
	return c.LookupKey(errx.Key{Domain: domain, Code: code})
}

// LookupKey is Lookup keyed by errx.Key.
func (c *Catalog) LookupKey(key errx.Key) (errx.Descriptor, bool) {
	if c == nil {
		return errx.Descriptor{}, false
	}
	i, ok := c.index[key]
	if !ok {
		return errx.Descriptor{}, false
	}
	return c.entries[i], true
}

// All returns every descriptor sorted by (domain, code).
func (c *Catalog) All() []errx.Descriptor {
	if c == nil {
		return nil
	}
	out := make([]errx.Descriptor, len(c.entries))
	copy(out, c.entries)
	return out
}

// FilterByDomain returns the descriptors of one domain sorted by code.
func (c *Catalog) FilterByDomain(domain string) []errx.Descriptor {
	if c == nil {
		return nil
	}
	start := sort.Search(len(c.entries), func(i int) bool {
		return c.entries[i].Domain() >= domain
	})
	end := start
	for end < len(c.entries) && c.entries[end].Domain() == domain {
		end++
	}
	if start == end {
		return nil
	}
	out := make([]errx.Descriptor, end-start)
	copy(out, c.entries[start:end])
	return out
}

// FilterByTag returns the descriptors carrying tag, sorted by (domain, code).
func (c *Catalog) FilterByTag(tag string) []errx.Descriptor {
	if c == nil {
		return nil
	}
	var out []errx.Descriptor
	for _, d := range c.entries {
		if d.HasTag(tag) {
			out = append(out, d)
		}
	}
	return out
}

// Domains returns the distinct domains in ascending order.
func (c *Catalog) Domains() []string {
	if c == nil {
		return nil
	}
	var domains []string
	for _, d := range c.entries {
		if n := len(domains); n == 0 || domains[n-1] != d.Domain() {
			domains = append(domains, d.Domain())
		}
	}
	return domains
}

// Tags returns the distinct tags in ascending order.
func (c *Catalog) Tags() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool)
	var tags []string
	for _, d := range c.entries {
		for _, tag := range d.Tags() {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// Equal reports whether both catalogs hold the same descriptors.
func (c *Catalog) Equal(other *Catalog) bool {
	if c.Len() != other.Len() {
		return false
	}
	for i := 0; i < c.Len(); i++ {
		if !c.entries[i].Equal(other.entries[i]) {
			return false
		}
	}
	return true
}
