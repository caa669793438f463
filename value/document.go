package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/hupe1980/schemata/codec"
)

// DocKind identifies the node type of a Document.
type DocKind uint8

const (
	// KindNull represents a null node. It is the zero Document.
	KindNull DocKind = iota
	// KindBool represents a boolean node.
	KindBool
	// KindNumber represents a numeric node.
	KindNumber
	// KindString represents a text node.
	KindString
	// KindArray represents an ordered list of documents.
	KindArray
	// KindObject represents a mapping of text keys to documents.
	KindObject
)

// String returns the name of the kind.
func (k DocKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

type numClass uint8

const (
	numPosInt numClass = iota
	numNegInt
	numFloat
)

// Member is a single key/value pair of an object document.
type Member struct {
	Key   string
	Value Document
}

// Document is a structured JSON-like document carried by Json values.
//
// Integral non-negative numbers are always held as unsigned, negative ones
// as signed, so equality is structural regardless of how a number was built.
// Object members are kept sorted by key with unique keys, which makes the
// text form canonical.
type Document struct {
	kind  DocKind
	b     bool
	class numClass
	n     uint64 // integer payload or float bits
	s     string
	arr   []Document
	obj   []Member
}

// Null returns a null document.
func Null() Document { return Document{} }

// DocBool returns a boolean document.
func DocBool(b bool) Document { return Document{kind: KindBool, b: b} }

// DocString returns a string document.
// The text form holds UTF-8 only; invalid bytes in s are written as U+FFFD.
func DocString(s string) Document { return Document{kind: KindString, s: s} }

// DocInt returns a numeric document holding a signed integer.
func DocInt(i int64) Document {
	if i >= 0 {
		return Document{kind: KindNumber, class: numPosInt, n: uint64(i)}
	}
	return Document{kind: KindNumber, class: numNegInt, n: uint64(i)}
}

// DocUint returns a numeric document holding an unsigned integer.
func DocUint(u uint64) Document {
	return Document{kind: KindNumber, class: numPosInt, n: u}
}

// DocFloat returns a numeric document holding a float.
// NaN and infinities have no text form and become null.
func DocFloat(f float64) Document {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Document{kind: KindNumber, class: numFloat, n: math.Float64bits(f)}
}

// DocArray returns an array document.
func DocArray(items ...Document) Document {
	if len(items) == 0 {
		return Document{kind: KindArray}
	}
	return Document{kind: KindArray, arr: slices.Clone(items)}
}

// DocObject returns an object document. Members are sorted by key; when a
// key repeats, the last member wins.
func DocObject(members ...Member) Document {
	if len(members) == 0 {
		return Document{kind: KindObject}
	}
	obj := slices.Clone(members)
	sort.SliceStable(obj, func(i, j int) bool { return obj[i].Key < obj[j].Key })

	out := obj[:0]
	for _, m := range obj {
		if n := len(out); n > 0 && out[n-1].Key == m.Key {
			out[n-1] = m
			continue
		}
		out = append(out, m)
	}
	return Document{kind: KindObject, obj: slices.Clip(out)}
}

// Kind returns the node type.
func (d Document) Kind() DocKind { return d.kind }

// IsNull reports whether the document is null.
func (d Document) IsNull() bool { return d.kind == KindNull }

// AsBool returns the boolean of a bool node.
func (d Document) AsBool() (bool, bool) {
	if d.kind != KindBool {
		return false, false
	}
	return d.b, true
}

// AsString returns the text of a string node.
func (d Document) AsString() (string, bool) {
	if d.kind != KindString {
		return "", false
	}
	return d.s, true
}

// AsInt64 returns an integral number that fits in int64.
func (d Document) AsInt64() (int64, bool) {
	if d.kind != KindNumber {
		return 0, false
	}
	switch d.class {
	case numNegInt:
		return int64(d.n), true
	case numPosInt:
		if d.n > math.MaxInt64 {
			return 0, false
		}
		return int64(d.n), true
	default:
		return 0, false
	}
}

// AsUint64 returns a non-negative integral number.
func (d Document) AsUint64() (uint64, bool) {
	if d.kind != KindNumber || d.class != numPosInt {
		return 0, false
	}
	return d.n, true
}

// AsFloat64 returns any number as a float64, possibly losing precision.
func (d Document) AsFloat64() (float64, bool) {
	if d.kind != KindNumber {
		return 0, false
	}
	switch d.class {
	case numPosInt:
		return float64(d.n), true
	case numNegInt:
		return float64(int64(d.n)), true
	default:
		return math.Float64frombits(d.n), true
	}
}

// IsFloat reports whether the document is a non-integral number.
func (d Document) IsFloat() bool { return d.kind == KindNumber && d.class == numFloat }

// Len returns the number of array items or object members.
func (d Document) Len() int {
	switch d.kind {
	case KindArray:
		return len(d.arr)
	case KindObject:
		return len(d.obj)
	default:
		return 0
	}
}

// Items returns a copy of the items of an array node.
func (d Document) Items() []Document {
	if d.kind != KindArray {
		return nil
	}
	return slices.Clone(d.arr)
}

// Members returns a copy of the members of an object node, sorted by key.
func (d Document) Members() []Member {
	if d.kind != KindObject {
		return nil
	}
	return slices.Clone(d.obj)
}

// Get looks up a member of an object node.
func (d Document) Get(key string) (Document, bool) {
	if d.kind != KindObject {
		return Document{}, false
	}
	i, found := slices.BinarySearchFunc(d.obj, key, func(m Member, k string) int {
		return strings.Compare(m.Key, k)
	})
	if !found {
		return Document{}, false
	}
	return d.obj[i].Value, true
}

// Equal reports structural equality.
func (d Document) Equal(o Document) bool {
	if d.kind != o.kind {
		return false
	}
	switch d.kind {
	case KindNull:
		return true
	case KindBool:
		return d.b == o.b
	case KindNumber:
		if d.class != o.class {
			return false
		}
		if d.class == numFloat {
			return math.Float64frombits(d.n) == math.Float64frombits(o.n)
		}
		return d.n == o.n
	case KindString:
		return d.s == o.s
	case KindArray:
		return slices.EqualFunc(d.arr, o.arr, Document.Equal)
	case KindObject:
		return slices.EqualFunc(d.obj, o.obj, func(a, b Member) bool {
			return a.Key == b.Key && a.Value.Equal(b.Value)
		})
	default:
		return false
	}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	switch d.kind {
	case KindArray:
		if len(d.arr) == 0 {
			return d
		}
		arr := make([]Document, len(d.arr))
		for i := range d.arr {
			arr[i] = d.arr[i].Clone()
		}
		d.arr = arr
	case KindObject:
		if len(d.obj) == 0 {
			return d
		}
		obj := make([]Member, len(d.obj))
		for i := range d.obj {
			obj[i] = Member{Key: d.obj[i].Key, Value: d.obj[i].Value.Clone()}
		}
		d.obj = obj
	}
	return d
}

// numberLiteral is a number already rendered in its canonical text form.
type numberLiteral string

func (n numberLiteral) MarshalJSON() ([]byte, error) { return []byte(n), nil }

func (d Document) literal() numberLiteral {
	switch d.class {
	case numPosInt:
		return numberLiteral(strconv.FormatUint(d.n, 10))
	case numNegInt:
		return numberLiteral(strconv.FormatInt(int64(d.n), 10))
	default:
		s := strconv.FormatFloat(math.Float64frombits(d.n), 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return numberLiteral(s)
	}
}

// tree converts the document to the plain Go shape understood by codecs.
func (d Document) tree() any {
	switch d.kind {
	case KindBool:
		return d.b
	case KindNumber:
		return d.literal()
	case KindString:
		return d.s
	case KindArray:
		arr := make([]any, len(d.arr))
		for i := range d.arr {
			arr[i] = d.arr[i].tree()
		}
		return arr
	case KindObject:
		obj := make(map[string]any, len(d.obj))
		for _, m := range d.obj {
			obj[m.Key] = m.Value.tree()
		}
		return obj
	default:
		return nil
	}
}

// text renders the canonical text form.
func (d Document) text() []byte {
	b, err := codec.Default.Marshal(d.tree())
	if err != nil {
		// Every tree node is a string, bool, nil, literal, slice or map.
		panic(fmt.Sprintf("value: document encoding failed: %v", err))
	}
	return b
}

// MarshalJSON implements json.Marshaler with the canonical text form.
func (d Document) MarshalJSON() ([]byte, error) {
	return d.text(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := ParseDocument(data)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

// String returns the canonical text form.
func (d Document) String() string { return string(d.text()) }

// ParseDocument decodes a document from its text form.
func ParseDocument(data []byte) (Document, error) {
	var raw any
	if err := codec.Default.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return fromTree(raw)
}

func fromTree(raw any) (Document, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return DocBool(x), nil
	case string:
		return DocString(x), nil
	case json.Number:
		return parseNumber(string(x))
	case float64:
		return DocFloat(x), nil
	case []any:
		arr := make([]Document, len(x))
		for i := range x {
			item, err := fromTree(x[i])
			if err != nil {
				return Document{}, err
			}
			arr[i] = item
		}
		return DocArray(arr...), nil
	case map[string]any:
		members := make([]Member, 0, len(x))
		for k, v := range x {
			item, err := fromTree(v)
			if err != nil {
				return Document{}, err
			}
			members = append(members, Member{Key: k, Value: item})
		}
		return DocObject(members...), nil
	case fmt.Stringer:
		// Number literal types of codecs other than encoding/json.
		return parseNumber(x.String())
	default:
		return Document{}, fmt.Errorf("%w: unexpected document node %T", ErrDecode, raw)
	}
}

var errNumberRange = errors.New("number out of range")

func parseNumber(lit string) (Document, error) {
	if !strings.ContainsAny(lit, ".eE") {
		if strings.HasPrefix(lit, "-") {
			if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
				return DocInt(i), nil
			}
		} else if u, err := strconv.ParseUint(lit, 10, 64); err == nil {
			return DocUint(u), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Document{}, fmt.Errorf("%w: invalid number %q: %w", ErrDecode, lit, errNumberRange)
	}
	return DocFloat(f), nil
}
