package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"errcatalog/pkg/errx"
)

// Format is an export output format.
type Format string

const (
	FormatJSON      Format = "json"
	FormatYAML      Format = "yaml"
	FormatMarkdown  Format = "markdown"
	FormatConfigMap Format = "configmap"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatMarkdown, FormatConfigMap}
}

// ParseFormat validates a format name. Matching is case-insensitive and
// accepts "yml" and "md".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "configmap":
		return FormatConfigMap, nil
	}
	supported := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		supported = append(supported, string(f))
	}
	return "", errx.New(UnsupportedFormat).
		WithBase(ErrUnsupportedFormat).
		WithField("format", name).
		WithField("supported", strings.Join(supported, ", "))
}

// Encoder writes documents in one format.
type Encoder struct {
	Format Format
	// Target names the ConfigMap written by FormatConfigMap.
	Target ConfigMapTarget
}

// Encode writes doc to w.
func (e Encoder) Encode(w io.Writer, doc Document) error {
	var (
		data []byte
		err  error
	)
	switch e.Format {
	case FormatJSON:
		data, err = EncodeJSON(doc)
	case FormatYAML:
		data, err = EncodeYAML(doc)
	case FormatMarkdown:
		data = EncodeMarkdown(doc)
	case FormatConfigMap:
		data, err = EncodeConfigMap(doc, e.Target)
	default:
		_, err = ParseFormat(string(e.Format))
		return err
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// EncodeJSON renders the document as indented JSON.
func EncodeJSON(doc Document) ([]byte, error) {
	if doc.Entries == nil {
		doc.Entries = []Entry{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, encodeError(FormatJSON, err)
	}
	return append(data, '\n'), nil
}

// EncodeYAML renders the document as YAML.
func EncodeYAML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, encodeError(FormatYAML, err)
	}
	if err := enc.Close(); err != nil {
		return nil, encodeError(FormatYAML, err)
	}
	return buf.Bytes(), nil
}

// EncodeMarkdown renders one table per domain.
func EncodeMarkdown(doc Document) []byte {
	var buf bytes.Buffer
	buf.WriteString("# Error catalog\n")
	domain := ""
	for i, e := range doc.Entries {
		if i == 0 || e.Domain != domain {
			domain = e.Domain
			fmt.Fprintf(&buf, "\n## %s\n\n", domain)
			buf.WriteString("| Code | Variant | Status | Message | Tags |\n")
			buf.WriteString("|------|---------|--------|---------|------|\n")
		}
		code := "`" + e.Code + "`"
		if e.DocURL != "" {
			code = "[" + code + "](" + e.DocURL + ")"
		}
		status := ""
		if e.Status != 0 {
			status = strconv.Itoa(e.Status)
		}
		fmt.Fprintf(&buf, "| %s | %s | %s | %s | %s |\n",
			code, e.Variant, status, markdownCell(e.Message), markdownCell(strings.Join(e.Tags, ", ")))
	}
	return buf.Bytes()
}

func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func encodeError(f Format, err error) *errx.Error {
	return errx.Wrap(EncodeFailed, err).
		WithBase(ErrEncode).
		WithField("format", string(f))
}
