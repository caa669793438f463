// Package value provides the typed values stored in schemata records.
//
// A Value is a tagged union over a small closed set of types:
//
//   - String: value.String("tech")
//   - F64: value.F64(3.14)
//   - I64: value.I64(-7) or value.From(int32(-7))
//   - U64: value.U64(7) or value.From(uint32(7))
//   - Bool: value.Bool(true)
//   - Json: value.JSON(value.DocObject(value.Member{Key: "a", Value: value.DocInt(1)}))
//
// # Encodings
//
// Values have two byte forms that must not be mixed:
//
//   - The untagged field form (MarshalField / DecodeField) is what records
//     store. It carries only the payload and is decoded with the field's
//     declared Type.
//   - The tagged form (MarshalBinary / UnmarshalBinary) prefixes the payload
//     with the type tag and is used when a value travels on its own.
//
// Numerics are fixed-width little-endian, strings are length-prefixed and
// Json documents use their canonical text.
//
// # Conversions
//
// From and Of convert Go primitives into values; the As* methods and Into
// convert back and fail when the tag differs. There is no coercion between
// numeric widths: I64(1), U64(1) and F64(1) are three different values.
package value
