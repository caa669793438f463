// Package dynamic converts between untyped host values and the typed value
// model.
//
// It is the binding surface for callers that hold data as any, such as
// decoded JSON, configuration trees or scripting bridges:
//
//	v, err := dynamic.ToValue(map[string]any{"value": 42}) // Json
//	typ, err := dynamic.ResolveType("u64")                 // value.TypeU64
//	host := dynamic.FromValue(value.I64(-1))               // int64(-1)
//
// Typed code should not need this package; value.From and value.Into cover
// the closed set of primitive types without reflection.
package dynamic
