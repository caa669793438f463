package value

import (
	"encoding/json"
	"fmt"

	"github.com/hupe1980/schemata/codec"
)

// MarshalJSON implements json.Marshaler using the externally tagged form,
// e.g. {"I64":42} or {"Json":{"a":1}}.
func (v Value) MarshalJSON() ([]byte, error) {
	var payload any
	switch v.typ {
	case TypeString:
		payload = v.s
	case TypeF64:
		f, _ := v.AsF64()
		payload = f
	case TypeI64:
		i, _ := v.AsI64()
		payload = i
	case TypeU64:
		payload = v.n
	case TypeBool:
		payload = v.n != 0
	case TypeJSON:
		payload = v.doc
	default:
		return nil, fmt.Errorf("unknown value type %d", uint8(v.typ))
	}
	return codec.Default.Marshal(map[string]any{v.typ.String(): payload})
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := codec.Default.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("%w: tagged value needs exactly one variant, got %d", ErrDecode, len(tagged))
	}

	for name, raw := range tagged {
		var t Type
		if err := t.UnmarshalText([]byte(name)); err != nil {
			return fmt.Errorf("%w: %w", ErrDecode, err)
		}
		out, err := decodeTaggedJSON(t, raw)
		if err != nil {
			return fmt.Errorf("%w: %s payload: %w", ErrDecode, t, err)
		}
		*v = out
	}
	return nil
}

func decodeTaggedJSON(t Type, raw []byte) (Value, error) {
	switch t {
	case TypeString:
		var s string
		err := codec.Default.Unmarshal(raw, &s)
		return String(s), err
	case TypeF64:
		var f float64
		err := codec.Default.Unmarshal(raw, &f)
		return F64(f), err
	case TypeI64:
		var i int64
		err := codec.Default.Unmarshal(raw, &i)
		return I64(i), err
	case TypeU64:
		var u uint64
		err := codec.Default.Unmarshal(raw, &u)
		return U64(u), err
	case TypeBool:
		var b bool
		err := codec.Default.Unmarshal(raw, &b)
		return Bool(b), err
	default:
		doc, err := ParseDocument(raw)
		return JSON(doc), err
	}
}
