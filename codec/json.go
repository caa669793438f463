package codec

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errInvalidJSON = errors.New("invalid JSON text")

// JSON is the standard-library JSON codec.
//
// It is the most portable option and serves as the reference the go-json
// codec is tested against.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error {
	if !json.Valid(data) {
		return errInvalidJSON
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
//
// NOTE: This affects the canonical text of newly encoded Json values.
var Default Codec = GoJSON{}
