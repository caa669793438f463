package schemata

import (
	"fmt"
	"slices"

	"github.com/hupe1980/schemata/value"
)

// =============================================================================
// Schema Builder (Immutable)
// =============================================================================

// SchemaBuilder is an immutable fluent builder for schemas.
// Each method returns a new builder with the updated configuration.
//
// Example:
//
//	schema := schemata.NewSchemaBuilder(value.TypeBool).
//	    AddField("value1", value.TypeString).
//	    AddField("value2", value.TypeI64).
//	    Build()
type SchemaBuilder struct {
	key    value.Type
	fields []Field
}

// NewSchemaBuilder starts a schema whose entries are keyed by the given type.
func NewSchemaBuilder(key value.Type) SchemaBuilder {
	return SchemaBuilder{key: key}
}

// AddField appends a field.
//
// Defining a name twice is a programming error and panics.
func (b SchemaBuilder) AddField(name string, typ value.Type) SchemaBuilder {
	for _, f := range b.fields {
		if f.Name == name {
			panic(fmt.Sprintf("field defined more than once: %s", name))
		}
	}

	b.fields = append(slices.Clip(b.fields), Field{Name: name, Type: typ})
	return b
}

// Build creates the schema.
func (b SchemaBuilder) Build(optFns ...Option) *Schema {
	return FromParts(b.key, b.fields, optFns...)
}

// =============================================================================
// Entry Builder
// =============================================================================

// EntryBuilder collects encoded field blobs by name and assembles them into
// an entry in schema order. Obtain one from Schema.BuildEntry.
//
// A name may be set more than once; the last write wins. Names that are not
// part of the schema are dropped by Build.
type EntryBuilder struct {
	schema *Schema
	fields map[string][]byte
}

func newEntryBuilder(s *Schema) *EntryBuilder {
	return &EntryBuilder{
		schema: s,
		fields: make(map[string][]byte, len(s.fields)),
	}
}

// SetField encodes x and records it under name.
//
// x must be a value.Primitive (int, int32, int64, uint, uint32, uint64,
// bool, float64, string), a value.Value or a value.Document; other types are
// a programming error and panic.
func (b *EntryBuilder) SetField(name string, x any) *EntryBuilder {
	v, ok := value.Of(x)
	if !ok {
		panic(fmt.Sprintf("unsupported type %T for field %s", x, name))
	}
	return b.SetFieldFromValue(name, v)
}

// SetFieldFromValue encodes v and records it under name.
func (b *EntryBuilder) SetFieldFromValue(name string, v value.Value) *EntryBuilder {
	if b.schema.opts.strict {
		if typ, ok := b.schema.FieldType(name); ok && typ != v.Type() {
			panic((&TypeMismatchError{Field: name, Expected: typ, Actual: v.Type()}).Error())
		}
	}

	b.fields[name] = v.MarshalField()
	return b
}

// Build assembles the entry in schema order.
//
// Every schema field must have been set; a missing field is a programming
// error and panics. Build consumes the recorded blobs, so a builder yields a
// single entry.
func (b *EntryBuilder) Build() *DataEntry {
	fields := make([][]byte, 0, len(b.schema.fields))
	for _, f := range b.schema.fields {
		blob, ok := b.fields[f.Name]
		if !ok {
			panic(fmt.Sprintf("field is missing: %s", f.Name))
		}
		delete(b.fields, f.Name)
		fields = append(fields, blob)
	}
	return &DataEntry{fields: fields}
}
