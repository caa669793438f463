package value

import (
	"errors"
	"fmt"
	"math"
)

// ErrWrongType is returned when a value is read out as a type other than its tag.
var ErrWrongType = errors.New("value has a different type")

// Primitive is the closed set of Go types with a total conversion into Value.
type Primitive interface {
	int | int32 | int64 | uint | uint32 | uint64 | bool | float64 | string
}

// From converts a primitive into a Value.
//
// Signed integers widen to I64, unsigned integers to U64.
func From[T Primitive](x T) Value {
	switch v := any(x).(type) {
	case int:
		return I64(int64(v))
	case int32:
		return I64(int64(v))
	case int64:
		return I64(v)
	case uint:
		return U64(uint64(v))
	case uint32:
		return U64(uint64(v))
	case uint64:
		return U64(v)
	case bool:
		return Bool(v)
	case float64:
		return F64(v)
	case string:
		return String(v)
	default:
		panic(fmt.Sprintf("value: invalid state: unsupported primitive %T", x))
	}
}

// Of converts x into a Value when x is a Primitive, a Value or a Document.
// The set of accepted types is closed; no reflection is involved.
func Of(x any) (Value, bool) {
	switch v := x.(type) {
	case Value:
		return v, true
	case Document:
		return JSON(v), true
	case int:
		return From(v), true
	case int32:
		return From(v), true
	case int64:
		return From(v), true
	case uint:
		return From(v), true
	case uint32:
		return From(v), true
	case uint64:
		return From(v), true
	case bool:
		return From(v), true
	case float64:
		return From(v), true
	case string:
		return From(v), true
	default:
		return Value{}, false
	}
}

// Into converts a Value back into a primitive.
//
// It succeeds only when the tag matches T: I64 for signed integers, U64 for
// unsigned integers, F64, Bool and String. There is no coercion between tags.
// Narrow integer targets additionally fail when the payload does not fit.
func Into[T Primitive](v Value) (T, error) {
	var zero T
	var out any
	switch any(zero).(type) {
	case int:
		i, ok := v.AsI64()
		if !ok {
			return zero, wrongType(v, TypeI64)
		}
		if i < math.MinInt || i > math.MaxInt {
			return zero, fmt.Errorf("%w: %d overflows int", ErrWrongType, i)
		}
		out = int(i)
	case int32:
		i, ok := v.AsI64()
		if !ok {
			return zero, wrongType(v, TypeI64)
		}
		if i < math.MinInt32 || i > math.MaxInt32 {
			return zero, fmt.Errorf("%w: %d overflows int32", ErrWrongType, i)
		}
		out = int32(i)
	case int64:
		i, ok := v.AsI64()
		if !ok {
			return zero, wrongType(v, TypeI64)
		}
		out = i
	case uint:
		u, ok := v.AsU64()
		if !ok {
			return zero, wrongType(v, TypeU64)
		}
		if u > math.MaxUint {
			return zero, fmt.Errorf("%w: %d overflows uint", ErrWrongType, u)
		}
		out = uint(u)
	case uint32:
		u, ok := v.AsU64()
		if !ok {
			return zero, wrongType(v, TypeU64)
		}
		if u > math.MaxUint32 {
			return zero, fmt.Errorf("%w: %d overflows uint32", ErrWrongType, u)
		}
		out = uint32(u)
	case uint64:
		u, ok := v.AsU64()
		if !ok {
			return zero, wrongType(v, TypeU64)
		}
		out = u
	case bool:
		b, ok := v.AsBool()
		if !ok {
			return zero, wrongType(v, TypeBool)
		}
		out = b
	case float64:
		f, ok := v.AsF64()
		if !ok {
			return zero, wrongType(v, TypeF64)
		}
		out = f
	case string:
		s, ok := v.AsString()
		if !ok {
			return zero, wrongType(v, TypeString)
		}
		out = s
	}
	return out.(T), nil
}

func wrongType(v Value, want Type) error {
	return fmt.Errorf("%w: want %s, got %s", ErrWrongType, want, v.typ)
}
