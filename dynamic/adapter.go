package dynamic

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/hupe1980/schemata/value"
)

// ToValue converts a host value into a typed Value.
//
// Strings map to String, floats to F64, signed integers to I64, unsigned
// integers to U64 and bools to Bool. Documents, nil, maps and slices become
// Json. This exists as an adapter layer for untyped input; typed code should
// use value.From.
func ToValue(x any) (value.Value, error) {
	switch v := x.(type) {
	case value.Value:
		return v, nil
	case value.Document:
		return value.JSON(v), nil
	case nil:
		return value.JSON(value.Null()), nil
	case json.Number:
		doc, err := value.ParseDocument([]byte(v))
		if err != nil {
			return value.Value{}, err
		}
		return value.JSON(doc), nil
	case string:
		return value.String(v), nil
	case bool:
		return value.Bool(v), nil
	case float64:
		return value.F64(v), nil
	case float32:
		return value.F64(float64(v)), nil
	case int:
		return value.I64(int64(v)), nil
	case int8:
		return value.I64(int64(v)), nil
	case int16:
		return value.I64(int64(v)), nil
	case int32:
		return value.I64(int64(v)), nil
	case int64:
		return value.I64(v), nil
	case uint:
		return value.U64(uint64(v)), nil
	case uint8:
		return value.U64(uint64(v)), nil
	case uint16:
		return value.U64(uint64(v)), nil
	case uint32:
		return value.U64(uint64(v)), nil
	case uint64:
		return value.U64(v), nil
	}

	switch reflect.ValueOf(x).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		doc, err := ToDocument(x)
		if err != nil {
			return value.Value{}, err
		}
		return value.JSON(doc), nil
	default:
		return value.Value{}, fmt.Errorf("unsupported value type %T", x)
	}
}

// FromValue converts a Value into its host form: string, float64, int64,
// uint64, bool, or the DocumentToAny form of a Json document.
func FromValue(v value.Value) any {
	switch v.Type() {
	case value.TypeString:
		s, _ := v.AsString()
		return s
	case value.TypeF64:
		f, _ := v.AsF64()
		return f
	case value.TypeI64:
		i, _ := v.AsI64()
		return i
	case value.TypeU64:
		u, _ := v.AsU64()
		return u
	case value.TypeBool:
		b, _ := v.AsBool()
		return b
	case value.TypeJSON:
		d, _ := v.AsJSON()
		return DocumentToAny(d)
	default:
		panic(fmt.Sprintf("dynamic: invalid state: unknown value type %d", uint8(v.Type())))
	}
}

// DocumentToAny converts a document into plain Go values: nil, bool, string,
// float64, int64 (integers that fit), uint64 (larger integers), []any and
// map[string]any.
func DocumentToAny(d value.Document) any {
	switch d.Kind() {
	case value.KindBool:
		b, _ := d.AsBool()
		return b
	case value.KindString:
		s, _ := d.AsString()
		return s
	case value.KindNumber:
		if d.IsFloat() {
			f, _ := d.AsFloat64()
			return f
		}
		if i, ok := d.AsInt64(); ok {
			return i
		}
		u, _ := d.AsUint64()
		return u
	case value.KindArray:
		items := d.Items()
		out := make([]any, len(items))
		for i := range items {
			out[i] = DocumentToAny(items[i])
		}
		return out
	case value.KindObject:
		members := d.Members()
		out := make(map[string]any, len(members))
		for _, m := range members {
			out[m.Key] = DocumentToAny(m.Value)
		}
		return out
	default:
		return nil
	}
}

// ToDocument converts plain Go values into a document.
//
// Negative integers are held as signed, all other integers as unsigned.
// Typed slices, arrays and maps with string keys are walked via reflection.
func ToDocument(x any) (value.Document, error) {
	switch v := x.(type) {
	case nil:
		return value.Null(), nil
	case value.Document:
		return v, nil
	case value.Value:
		return valueToDocument(v), nil
	case bool:
		return value.DocBool(v), nil
	case string:
		return value.DocString(v), nil
	case json.Number:
		return value.ParseDocument([]byte(v))
	case float64:
		return value.DocFloat(v), nil
	case float32:
		return value.DocFloat(float64(v)), nil
	case []any:
		items := make([]value.Document, len(v))
		for i := range v {
			d, err := ToDocument(v[i])
			if err != nil {
				return value.Document{}, err
			}
			items[i] = d
		}
		return value.DocArray(items...), nil
	case map[string]any:
		members := make([]value.Member, 0, len(v))
		for k, e := range v {
			d, err := ToDocument(e)
			if err != nil {
				return value.Document{}, err
			}
			members = append(members, value.Member{Key: k, Value: d})
		}
		return value.DocObject(members...), nil
	}
	return reflectDocument(reflect.ValueOf(x))
}

func reflectDocument(rv reflect.Value) (value.Document, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.DocInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return value.DocUint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return value.DocFloat(rv.Float()), nil
	case reflect.Bool:
		return value.DocBool(rv.Bool()), nil
	case reflect.String:
		return value.DocString(rv.String()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return value.Null(), nil
		}
		return ToDocument(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return value.Null(), nil
		}
		fallthrough
	case reflect.Array:
		items := make([]value.Document, rv.Len())
		for i := range items {
			d, err := ToDocument(rv.Index(i).Interface())
			if err != nil {
				return value.Document{}, err
			}
			items[i] = d
		}
		return value.DocArray(items...), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return value.Document{}, fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		members := make([]value.Member, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			d, err := ToDocument(iter.Value().Interface())
			if err != nil {
				return value.Document{}, err
			}
			members = append(members, value.Member{Key: iter.Key().String(), Value: d})
		}
		return value.DocObject(members...), nil
	default:
		return value.Document{}, fmt.Errorf("unsupported document type %s", rv.Type())
	}
}

func valueToDocument(v value.Value) value.Document {
	switch v.Type() {
	case value.TypeString:
		s, _ := v.AsString()
		return value.DocString(s)
	case value.TypeF64:
		f, _ := v.AsF64()
		return value.DocFloat(f)
	case value.TypeI64:
		i, _ := v.AsI64()
		return value.DocInt(i)
	case value.TypeU64:
		u, _ := v.AsU64()
		return value.DocUint(u)
	case value.TypeBool:
		b, _ := v.AsBool()
		return value.DocBool(b)
	default:
		d, _ := v.AsJSON()
		return d
	}
}
