package value

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrDecode is returned when bytes are not a valid encoding of the declared type.
var ErrDecode = errors.New("invalid value encoding")

const (
	wordSize      = 8
	lengthSize    = 8
	boolFalseByte = 0
	boolTrueByte  = 1
)

// MarshalField returns the untagged field encoding of v.
//
// The encoding carries no type tag; it can only be decoded together with the
// declared type, see DecodeField. Format:
//
//	String  [len uint64 LE][string bytes]
//	F64     [IEEE-754 bits uint64 LE]
//	I64     [two's complement uint64 LE]
//	U64     [uint64 LE]
//	Bool    [0x00 | 0x01]
//	Json    [canonical document text]
func (v Value) MarshalField() []byte {
	return v.AppendField(make([]byte, 0, v.fieldSize()))
}

// AppendField appends the untagged field encoding of v to dst.
func (v Value) AppendField(dst []byte) []byte {
	switch v.typ {
	case TypeString:
		dst = binary.LittleEndian.AppendUint64(dst, uint64(len(v.s)))
		return append(dst, v.s...)
	case TypeF64, TypeI64, TypeU64:
		return binary.LittleEndian.AppendUint64(dst, v.n)
	case TypeBool:
		if v.n != 0 {
			return append(dst, boolTrueByte)
		}
		return append(dst, boolFalseByte)
	case TypeJSON:
		return append(dst, v.doc.text()...)
	default:
		panic(fmt.Sprintf("value: invalid state: unknown type %d", uint8(v.typ)))
	}
}

func (v Value) fieldSize() int {
	switch v.typ {
	case TypeString:
		return lengthSize + len(v.s)
	case TypeBool:
		return 1
	case TypeJSON:
		return 0
	default:
		return wordSize
	}
}

// DecodeField decodes an untagged field encoding of the declared type t.
//
// The whole buffer must be consumed; trailing bytes are an error. On success
// the result's type is t. String payloads are taken as is, like Go strings
// they need not be valid UTF-8.
func DecodeField(data []byte, t Type) (Value, error) {
	switch t {
	case TypeString:
		if len(data) < lengthSize {
			return Value{}, fmt.Errorf("%w: short buffer for string length", ErrDecode)
		}
		n := binary.LittleEndian.Uint64(data)
		data = data[lengthSize:]
		if uint64(len(data)) != n {
			return Value{}, fmt.Errorf("%w: string length %d does not match %d payload bytes", ErrDecode, n, len(data))
		}
		return String(string(data)), nil
	case TypeF64, TypeI64, TypeU64:
		if len(data) != wordSize {
			return Value{}, fmt.Errorf("%w: %s needs %d bytes, got %d", ErrDecode, t, wordSize, len(data))
		}
		return Value{typ: t, n: binary.LittleEndian.Uint64(data)}, nil
	case TypeBool:
		if len(data) != 1 {
			return Value{}, fmt.Errorf("%w: Bool needs 1 byte, got %d", ErrDecode, len(data))
		}
		switch data[0] {
		case boolFalseByte:
			return Bool(false), nil
		case boolTrueByte:
			return Bool(true), nil
		default:
			return Value{}, fmt.Errorf("%w: invalid bool byte %#x", ErrDecode, data[0])
		}
	case TypeJSON:
		doc, err := ParseDocument(data)
		if err != nil {
			return Value{}, err
		}
		return JSON(doc), nil
	default:
		return Value{}, fmt.Errorf("%w: unknown type %d", ErrDecode, uint8(t))
	}
}

// MarshalBinary implements encoding.BinaryMarshaler with the tagged form:
// one byte carrying the type tag followed by the field encoding.
func (v Value) MarshalBinary() ([]byte, error) {
	if !v.typ.Valid() {
		return nil, fmt.Errorf("unknown value type %d", uint8(v.typ))
	}
	buf := make([]byte, 0, 1+v.fieldSize())
	buf = append(buf, byte(v.typ))
	return v.AppendField(buf), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (v *Value) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: short buffer for value tag", ErrDecode)
	}
	out, err := DecodeField(data[1:], Type(data[0]))
	if err != nil {
		return err
	}
	*v = out
	return nil
}
