package bhttp

import (
	"strings"

	"github.com/shapestone/shape-bhttp/internal/varint"
	"github.com/shapestone/shape-bhttp/internal/wire"
)

// Field is a single name/value pair of a header or informative response
// field section.
type Field struct {
	Name  string
	Value string
}

// Fields is an ordered, immutable list of fields. Duplicate names are
// permitted and keep their original order.
//
// The zero value is an empty field section.
type Fields struct {
	entries []Field
}

// EmptyFields is a field section with no entries.
var EmptyFields = Fields{}

// Len returns the number of fields.
func (f Fields) Len() int { return len(f.entries) }

// At returns the i-th field.
func (f Fields) At(i int) Field { return f.entries[i] }

// All returns a copy of the fields in order.
func (f Fields) All() []Field {
	if len(f.entries) == 0 {
		return nil
	}
	out := make([]Field, len(f.entries))
	copy(out, f.entries)
	return out
}

// Get returns the first value for the given name (case-insensitive).
// Returns empty string if not found.
func (f Fields) Get(name string) string {
	for _, e := range f.entries {
		if strings.EqualFold(e.Name, name) {
			return e.Value
		}
	}
	return ""
}

// Values returns all values for the given name (case-insensitive).
func (f Fields) Values(name string) []string {
	var vals []string
	for _, e := range f.entries {
		if strings.EqualFold(e.Name, name) {
			vals = append(vals, e.Value)
		}
	}
	return vals
}

// Has reports whether a field with the given name is present.
func (f Fields) Has(name string) bool {
	for _, e := range f.entries {
		if strings.EqualFold(e.Name, name) {
			return true
		}
	}
	return false
}

// Equal reports whether f and other hold the same fields in the same order.
func (f Fields) Equal(other Fields) bool {
	if len(f.entries) != len(other.entries) {
		return false
	}
	for i := range f.entries {
		if f.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}

// encodedLen returns the byte length of the field lines, excluding the
// section length prefix.
func (f Fields) encodedLen() int {
	n := 0
	for _, e := range f.entries {
		n += varint.Len(uint64(len(e.Name))) + len(e.Name)
		n += varint.Len(uint64(len(e.Value))) + len(e.Value)
	}
	return n
}

// AppendBinary appends the known-length field section encoding of f to b.
func (f Fields) AppendBinary(b []byte) ([]byte, error) {
	b, err := varint.Append(b, uint64(f.encodedLen()))
	if err != nil {
		return nil, err
	}
	for _, e := range f.entries {
		b = appendString(b, e.Name)
		b = appendString(b, e.Value)
	}
	return b, nil
}

// readFields decodes the field lines of a scoped field section reader.
func readFields(r *wire.Reader) (Fields, error) {
	var fb FieldsBuilder
	for r.HasRemaining() {
		name, err := readInterned(r, fieldNames)
		if err != nil {
			return Fields{}, truncatedError("field name", err)
		}
		value, err := readString(r)
		if err != nil {
			return Fields{}, truncatedError("field value", err)
		}
		fb.entries = append(fb.entries, Field{Name: name, Value: value})
	}
	return fb.Build(), nil
}

// readFieldSection reads a known-length field section from r.
func readFieldSection(r *wire.Reader) (Fields, error) {
	block, err := r.ReadKnownLengthBlock()
	if err != nil {
		return Fields{}, truncatedError("field section", err)
	}
	return readFields(block)
}

// FieldsBuilder accumulates fields for an immutable Fields value.
// The zero value is ready to use.
type FieldsBuilder struct {
	entries []Field
}

// NewFieldsBuilder returns an empty builder.
func NewFieldsBuilder() *FieldsBuilder {
	return &FieldsBuilder{}
}

// Append adds a field at the end. The name is lowercased; the value is
// kept verbatim. Empty names and values are accepted.
func (b *FieldsBuilder) Append(name, value string) *FieldsBuilder {
	b.entries = append(b.entries, Field{Name: strings.ToLower(name), Value: value})
	return b
}

// AppendFields adds every field of f at the end.
func (b *FieldsBuilder) AppendFields(f Fields) *FieldsBuilder {
	b.entries = append(b.entries, f.entries...)
	return b
}

// Build returns the accumulated fields. Later appends do not affect the result.
func (b *FieldsBuilder) Build() Fields {
	if len(b.entries) == 0 {
		return EmptyFields
	}
	entries := make([]Field, len(b.entries))
	copy(entries, b.entries)
	return Fields{entries: entries}
}

func appendString(b []byte, s string) []byte {
	// len(s) always fits in a varint.
	b, _ = varint.Append(b, uint64(len(s)))
	return append(b, s...)
}

func readString(r *wire.Reader) (string, error) {
	return readInterned(r, nil)
}
