package pagination

import (
	"encoding/base64"
	"encoding/json"

	"errcatalog/pkg/errx"
)

// Cursor is an opaque position in a result set. Its encoded form is
// unpadded URL-safe base64 of JSON.
type Cursor struct {
	data []byte
}

// NewCursor serializes v into a cursor.
func NewCursor(v any) (Cursor, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Cursor{}, errx.WrapInternal("Couldn't serialize a cursor", err)
	}
	return Cursor{data: data}, nil
}

// DecodeCursor parses an encoded cursor.
func DecodeCursor(s string) (Cursor, error) {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, errx.Wrap(PageInvalidCursor, err).
			WithReason("Couldn't decode the cursor as base64")
	}
	return Cursor{data: data}, nil
}

// Encode returns the string form of the cursor.
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString(c.data)
}

// IsZero reports whether the cursor is empty.
func (c Cursor) IsZero() bool {
	return len(c.data) == 0
}

// Decode deserializes the cursor into v.
func (c Cursor) Decode(v any) error {
	if err := json.Unmarshal(c.data, v); err != nil {
		return errx.Wrap(PageInvalidCursor, err).
			WithReason("Couldn't deserialize the cursor into the expected type")
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Cursor) MarshalText() ([]byte, error) {
	return []byte(c.Encode()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cursor) UnmarshalText(text []byte) error {
	decoded, err := DecodeCursor(string(text))
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}
