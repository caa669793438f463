package dynamic

import (
	"fmt"
	"reflect"

	"github.com/hupe1980/schemata/value"
)

var (
	documentType = reflect.TypeFor[value.Document]()
	anyType      = reflect.TypeFor[any]()
)

// ResolveType maps a host type designator onto a value type.
//
// Accepted designators are the spellings "int" and "i64" (I64), "u64" (U64),
// "str" (String), "bool" (Bool) and "json" (Json), or a reflect.Type whose
// kind selects the type. Anything else is an error.
func ResolveType(designator any) (value.Type, error) {
	switch d := designator.(type) {
	case string:
		return resolveSpelling(d)
	case reflect.Type:
		return resolveReflect(d)
	default:
		return 0, fmt.Errorf("invalid type designator %v", designator)
	}
}

func resolveSpelling(s string) (value.Type, error) {
	switch s {
	case "int", "i64":
		return value.TypeI64, nil
	case "u64":
		return value.TypeU64, nil
	case "str":
		return value.TypeString, nil
	case "bool":
		return value.TypeBool, nil
	case "json":
		return value.TypeJSON, nil
	default:
		return 0, fmt.Errorf("invalid type designator %q", s)
	}
}

func resolveReflect(t reflect.Type) (value.Type, error) {
	switch t {
	case documentType, anyType:
		return value.TypeJSON, nil
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.TypeI64, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.TypeU64, nil
	case reflect.Float32, reflect.Float64:
		return value.TypeF64, nil
	case reflect.String:
		return value.TypeString, nil
	case reflect.Bool:
		return value.TypeBool, nil
	case reflect.Map, reflect.Slice, reflect.Array:
		return value.TypeJSON, nil
	default:
		return 0, fmt.Errorf("invalid type designator %s", t)
	}
}
