// Package export renders a catalog into stable documents and compares
// exported documents.
package export

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"errcatalog/pkg/catalog"
	"errcatalog/pkg/errx"
)

// Document is the serialized form of a catalog.
type Document struct {
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Entry is one exported descriptor.
type Entry struct {
	Domain       string   `json:"domain" yaml:"domain"`
	Code         string   `json:"code" yaml:"code"`
	Variant      string   `json:"variant" yaml:"variant"`
	Message      string   `json:"message" yaml:"message"`
	Status       int      `json:"status,omitempty" yaml:"status,omitempty"`
	StatusText   string   `json:"statusText,omitempty" yaml:"statusText,omitempty"`
	DocURL       string   `json:"docUrl,omitempty" yaml:"docUrl,omitempty"`
	Tags         []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Placeholders []string `json:"placeholders,omitempty" yaml:"placeholders,omitempty"`
}

// Key returns the entry key as "domain/code".
func (e Entry) Key() string {
	return errx.Key{Domain: e.Domain, Code: e.Code}.String()
}

// Options tune document generation.
type Options struct {
	// DocsBaseURL fills DocURL as "<base>/<domain>/<code>" for entries that
	// declare none.
	DocsBaseURL string
}

// NewDocument converts the catalog, keeping its (domain, code) order.
func NewDocument(c *catalog.Catalog, opts Options) Document {
	base := strings.TrimRight(opts.DocsBaseURL, "/")
	all := c.All()
	doc := Document{Entries: make([]Entry, 0, len(all))}
	for _, d := range all {
		if d.DocURL() == "" && base != "" {
			d = d.WithDocURL(base + "/" + d.Domain() + "/" + d.Code())
		}
		doc.Entries = append(doc.Entries, entryFrom(d))
	}
	return doc
}

func entryFrom(d errx.Descriptor) Entry {
	return Entry{
		Domain:       d.Domain(),
		Code:         d.Code(),
		Variant:      d.Variant(),
		Message:      d.Message(),
		Status:       d.Status(),
		StatusText:   d.StatusText(),
		DocURL:       d.DocURL(),
		Tags:         d.Tags(),
		Placeholders: d.Placeholders(),
	}
}

// Domains returns the distinct domains of the document in entry order.
func (doc Document) Domains() []string {
	var domains []string
	for _, e := range doc.Entries {
		if n := len(domains); n == 0 || domains[n-1] != e.Domain {
			domains = append(domains, e.Domain)
		}
	}
	return domains
}

// Decode reads a JSON or YAML document. source names the input in errors.
func Decode(r io.Reader, source string) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return Document{}, nil
		}
		return Document{}, errx.Wrap(DecodeFailed, err).
			WithBase(ErrDecode).
			WithField("source", source)
	}

	seen := make(map[errx.Key]bool, len(doc.Entries))
	for _, e := range doc.Entries {
		key := errx.Key{Domain: e.Domain, Code: e.Code}
		if seen[key] {
			return Document{}, errx.New(DecodeFailed).
				WithBase(ErrDecode).
				WithField("source", source).
				WithReason(fmt.Sprintf("Catalog document %s lists %s more than once", source, key)).
				WithContext("key", key.String())
		}
		seen[key] = true
	}
	return doc, nil
}
