// Package schemata provides a compact, typed schema-and-record model for
// storage and messaging layers.
//
// A Schema names a key type and an ordered list of uniquely named, typed
// fields. A DataEntry is a record laid out positionally against a schema:
// one encoded blob per field, without names or type tags. All field-addressed
// access goes through the schema.
//
// # Quick Start
//
//	schema := schemata.NewSchemaBuilder(value.TypeBool).
//	    AddField("value1", value.TypeString).
//	    AddField("value2", value.TypeI64).
//	    Build()
//
//	entry := schema.BuildEntry().
//	    SetField("value1", "foobar").
//	    SetField("value2", int64(42)).
//	    Build()
//
//	v, err := schema.GetField(entry, "value2") // value.I64(42)
//	err = schema.SetField(entry, "value1", value.String("foobaz"))
//
// # Errors
//
// Data errors are returned: *NoSuchFieldError (matches ErrNoSuchField) for
// unknown names and *EncodingError (matches ErrEncoding) for entries whose
// field count differs from the schema or whose blobs fail to decode. Decode
// failures are also logged at error level through the schema's Logger.
//
// Contract violations are programming errors and panic: adding a field name
// twice to a SchemaBuilder, and building an entry with a field left unset.
//
// # Concurrency
//
// Schemas are immutable and may be shared freely. Entries are plain values;
// concurrent writes to the same entry need external synchronization.
//
// # Wire Formats
//
// DataEntry and Schema implement encoding.BinaryMarshaler with simple
// length-prefixed little-endian layouts; see package batch for framing many
// entries at once.
package schemata
