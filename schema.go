package schemata

import (
	"context"
	"slices"

	"github.com/hupe1980/schemata/value"
)

// Field is a named, typed slot of a schema. Its position in the schema
// defines where its blob lives in an entry.
type Field struct {
	Name string     `json:"name"`
	Type value.Type `json:"type"`
}

// NamedValue is a decoded field together with its name.
type NamedValue struct {
	Name  string
	Value value.Value
}

// Tuple is a decoded entry in schema order.
type Tuple []NamedValue

// Schema describes the layout of entries: the type of their external key
// and an ordered list of uniquely named fields.
//
// A Schema is immutable and safe for concurrent use. Entries are not; the
// caller synchronizes writes to an entry.
type Schema struct {
	key    value.Type
	fields []Field
	index  map[string]int
	opts   options
}

// FromParts creates a schema directly from its parts.
// The caller is responsible for the uniqueness of field names; use
// SchemaBuilder to have it checked.
func FromParts(key value.Type, fields []Field, optFns ...Option) *Schema {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	s := &Schema{
		key:    key,
		fields: slices.Clone(fields),
		opts:   opts,
	}
	if opts.fieldIndex {
		s.index = make(map[string]int, len(s.fields))
		for i := len(s.fields) - 1; i >= 0; i-- {
			s.index[s.fields[i].Name] = i
		}
	}
	return s
}

// KeyType returns the declared type of the external key of entries.
func (s *Schema) KeyType() value.Type { return s.key }

// Fields returns a copy of the fields in schema order.
func (s *Schema) Fields() []Field { return slices.Clone(s.fields) }

// NumFields returns the number of fields, which is also the length of every
// conforming entry.
func (s *Schema) NumFields() int { return len(s.fields) }

// Parts returns the key type and a copy of the fields, the inverse of FromParts.
func (s *Schema) Parts() (value.Type, []Field) { return s.key, s.Fields() }

// FieldType returns the declared type of the named field.
func (s *Schema) FieldType(name string) (value.Type, bool) {
	pos, ok := s.position(name)
	if !ok {
		return 0, false
	}
	return s.fields[pos].Type, true
}

// Equal reports whether both schemas have the same key type and fields.
// Options are not compared.
func (s *Schema) Equal(o *Schema) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.key == o.key && slices.Equal(s.fields, o.fields)
}

// BuildEntry starts building an entry that conforms to the schema.
func (s *Schema) BuildEntry() *EntryBuilder {
	return newEntryBuilder(s)
}

// SetField encodes v and replaces the blob of the named field in entry.
// No other blob is touched.
func (s *Schema) SetField(entry *DataEntry, name string, v value.Value) error {
	if entry.Len() != len(s.fields) {
		return errLength(len(s.fields), entry.Len())
	}

	pos, ok := s.position(name)
	if !ok {
		return &NoSuchFieldError{Name: name}
	}
	if s.opts.strict && v.Type() != s.fields[pos].Type {
		return &TypeMismatchError{Field: name, Expected: s.fields[pos].Type, Actual: v.Type()}
	}

	entry.fields[pos] = v.MarshalField()
	return nil
}

// GetField decodes the named field of entry with its declared type.
func (s *Schema) GetField(entry *DataEntry, name string) (value.Value, error) {
	if entry.Len() != len(s.fields) {
		return value.Value{}, errLength(len(s.fields), entry.Len())
	}

	pos, ok := s.position(name)
	if !ok {
		return value.Value{}, &NoSuchFieldError{Name: name}
	}
	return s.decode(entry.fields[pos], s.fields[pos])
}

// GetFields decodes all fields of entry, keyed by name.
func (s *Schema) GetFields(entry *DataEntry) (map[string]value.Value, error) {
	if entry.Len() != len(s.fields) {
		return nil, errLength(len(s.fields), entry.Len())
	}

	result := make(map[string]value.Value, len(s.fields))
	for pos, f := range s.fields {
		v, err := s.decode(entry.fields[pos], f)
		if err != nil {
			return nil, err
		}
		result[f.Name] = v
	}
	return result, nil
}

// GetFieldsAsTuple decodes all fields of entry in schema order.
func (s *Schema) GetFieldsAsTuple(entry *DataEntry) (Tuple, error) {
	if entry.Len() != len(s.fields) {
		return nil, errLength(len(s.fields), entry.Len())
	}

	result := make(Tuple, 0, len(s.fields))
	for pos, f := range s.fields {
		v, err := s.decode(entry.fields[pos], f)
		if err != nil {
			return nil, err
		}
		result = append(result, NamedValue{Name: f.Name, Value: v})
	}
	return result, nil
}

// GetFieldsWithFilter decodes an entry that was already reduced to the
// given names, in that order: the i-th blob is read as the field names[i].
//
// entry must hold exactly len(names) blobs and every name must exist in the
// schema. See Project for producing such entries.
func (s *Schema) GetFieldsWithFilter(entry *DataEntry, names []string) (map[string]value.Value, error) {
	if entry.Len() != len(names) {
		return nil, errLength(len(names), entry.Len())
	}

	result := make(map[string]value.Value, len(names))
	for i, name := range names {
		pos, ok := s.position(name)
		if !ok {
			return nil, &NoSuchFieldError{Name: name}
		}
		v, err := s.decode(entry.fields[i], s.fields[pos])
		if err != nil {
			return nil, err
		}
		result[name] = v
	}
	return result, nil
}

// position finds the named field. Schemas are small, so a linear scan is the
// default.
func (s *Schema) position(name string) (int, bool) {
	if s.index != nil {
		pos, ok := s.index[name]
		return pos, ok
	}
	for pos := range s.fields {
		if s.fields[pos].Name == name {
			return pos, true
		}
	}
	return 0, false
}

func (s *Schema) decode(blob []byte, f Field) (value.Value, error) {
	v, err := value.DecodeField(blob, f.Type)
	if err != nil {
		s.opts.logger.LogDecodeFailure(context.Background(), f.Name, f.Type, err)
		return value.Value{}, &EncodingError{Field: f.Name, Type: f.Type, cause: err}
	}
	return v, nil
}
