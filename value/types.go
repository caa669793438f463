package value

import (
	"fmt"
	"math"
)

// Type identifies the declared type of a Value or schema field.
type Type uint8

const (
	// TypeString represents a UTF-8 text value.
	TypeString Type = iota
	// TypeF64 represents a 64-bit float value.
	TypeF64
	// TypeI64 represents a signed 64-bit integer value.
	TypeI64
	// TypeU64 represents an unsigned 64-bit integer value.
	TypeU64
	// TypeBool represents a boolean value.
	TypeBool
	// TypeJSON represents a structured document value.
	TypeJSON
)

// NOTE: the numeric tags above are persisted by the tagged value encoding and
// by schema encodings; keep them stable.

// String returns the name of the type.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "String"
	case TypeF64:
		return "F64"
	case TypeI64:
		return "I64"
	case TypeU64:
		return "U64"
	case TypeBool:
		return "Bool"
	case TypeJSON:
		return "Json"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	return t <= TypeJSON
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown value type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	switch string(text) {
	case "String":
		*t = TypeString
	case "F64":
		*t = TypeF64
	case "I64":
		*t = TypeI64
	case "U64":
		*t = TypeU64
	case "Bool":
		*t = TypeBool
	case "Json":
		*t = TypeJSON
	default:
		return fmt.Errorf("unknown value type %q", text)
	}
	return nil
}

// Value is a tagged union over the supported field types.
//
// Exactly one payload is meaningful, selected by the type tag. The zero Value
// is String("").
type Value struct {
	typ Type
	s   string
	n   uint64 // I64, U64, F64 bits and Bool share this word
	doc Document
}

// String returns a String Value.
func String(s string) Value { return Value{typ: TypeString, s: s} }

// F64 returns an F64 Value.
func F64(f float64) Value { return Value{typ: TypeF64, n: math.Float64bits(f)} }

// I64 returns an I64 Value.
func I64(i int64) Value { return Value{typ: TypeI64, n: uint64(i)} }

// U64 returns a U64 Value.
func U64(u uint64) Value { return Value{typ: TypeU64, n: u} }

// Bool returns a Bool Value.
func Bool(b bool) Value {
	v := Value{typ: TypeBool}
	if b {
		v.n = 1
	}
	return v
}

// JSON returns a Json Value holding the given document.
func JSON(d Document) Value { return Value{typ: TypeJSON, doc: d} }

// Type returns the tag of the value.
func (v Value) Type() Type { return v.typ }

// AsString returns the text if the value is a String.
func (v Value) AsString() (string, bool) {
	if v.typ != TypeString {
		return "", false
	}
	return v.s, true
}

// AsF64 returns the float if the value is an F64.
func (v Value) AsF64() (float64, bool) {
	if v.typ != TypeF64 {
		return 0, false
	}
	return math.Float64frombits(v.n), true
}

// AsI64 returns the integer if the value is an I64.
func (v Value) AsI64() (int64, bool) {
	if v.typ != TypeI64 {
		return 0, false
	}
	return int64(v.n), true
}

// AsU64 returns the integer if the value is a U64.
func (v Value) AsU64() (uint64, bool) {
	if v.typ != TypeU64 {
		return 0, false
	}
	return v.n, true
}

// AsBool returns the boolean if the value is a Bool.
func (v Value) AsBool() (bool, bool) {
	if v.typ != TypeBool {
		return false, false
	}
	return v.n != 0, true
}

// AsJSON returns the document if the value is a Json.
func (v Value) AsJSON() (Document, bool) {
	if v.typ != TypeJSON {
		return Document{}, false
	}
	return v.doc, true
}

// Equal reports whether v and o carry the same tag and the same payload.
//
// F64 payloads compare as floats, so NaN is never equal to itself and
// 0.0 equals -0.0.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeString:
		return v.s == o.s
	case TypeF64:
		return math.Float64frombits(v.n) == math.Float64frombits(o.n)
	case TypeI64, TypeU64, TypeBool:
		return v.n == o.n
	case TypeJSON:
		return v.doc.Equal(o.doc)
	default:
		return false
	}
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	if v.typ != TypeJSON {
		return v
	}
	return Value{typ: TypeJSON, doc: v.doc.Clone()}
}

// GoString renders the value for debugging and test failure output.
func (v Value) GoString() string {
	switch v.typ {
	case TypeString:
		return fmt.Sprintf("String(%q)", v.s)
	case TypeF64:
		return fmt.Sprintf("F64(%v)", math.Float64frombits(v.n))
	case TypeI64:
		return fmt.Sprintf("I64(%d)", int64(v.n))
	case TypeU64:
		return fmt.Sprintf("U64(%d)", v.n)
	case TypeBool:
		return fmt.Sprintf("Bool(%t)", v.n != 0)
	case TypeJSON:
		return "Json(" + string(v.doc.text()) + ")"
	default:
		return fmt.Sprintf("Value(%d)", uint8(v.typ))
	}
}
