// Package codec centralizes the textual encodings used by schemata.
//
// Codec selection is a compatibility boundary: the canonical text of Json
// field blobs is produced by Default, so changing it may change the bytes
// stored in records (decoding stays compatible across the built-in codecs).
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
//
// Unmarshal keeps numbers decoded into interface values as number literals
// (encoding/json.Number) so integer precision survives a round-trip, and
// rejects input with trailing data.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests/benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
