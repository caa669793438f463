package schemata

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/spaolacci/murmur3"

	"github.com/hupe1980/schemata/codec"
	"github.com/hupe1980/schemata/value"
)

// MarshalBinary implements encoding.BinaryMarshaler.
// Format: [key tag u8][count uint64 LE] then per field
// [name len uint64 LE][name][type tag u8].
func (s *Schema) MarshalBinary() ([]byte, error) {
	size := 1 + 8
	for _, f := range s.fields {
		size += 8 + len(f.Name) + 1
	}

	buf := make([]byte, 0, size)
	buf = append(buf, byte(s.key))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(s.fields)))
	for _, f := range s.fields {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(f.Name)))
		buf = append(buf, f.Name...)
		buf = append(buf, byte(f.Type))
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
// Decoded schemas use default options.
func (s *Schema) UnmarshalBinary(data []byte) error {
	decoded, err := DecodeSchema(data)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

// DecodeSchema decodes the binary form produced by Schema.MarshalBinary.
// Unlike FromParts it validates the input: unknown type tags and repeated
// field names are errors.
func DecodeSchema(data []byte, optFns ...Option) (*Schema, error) {
	if len(data) < 9 {
		return nil, errors.New("short buffer for schema header")
	}
	key := value.Type(data[0])
	count := binary.LittleEndian.Uint64(data[1:])
	data = data[9:]

	// Every field needs at least its length word and type tag.
	if count > uint64(len(data)/9) {
		return nil, fmt.Errorf("schema field count %d exceeds buffer", count)
	}

	fields := make([]Field, count)
	for i := range fields {
		if len(data) < 8 {
			return nil, errors.New("short buffer for field name length")
		}
		n := binary.LittleEndian.Uint64(data)
		data = data[8:]
		if n >= uint64(len(data)) {
			return nil, errors.New("short buffer for field")
		}
		fields[i] = Field{Name: string(data[:n]), Type: value.Type(data[n])}
		data = data[n+1:]
	}
	if len(data) != 0 {
		return nil, fmt.Errorf("%d trailing bytes after schema", len(data))
	}

	if err := validateParts(key, fields); err != nil {
		return nil, err
	}
	return FromParts(key, fields, optFns...), nil
}

type schemaJSON struct {
	Key    value.Type `json:"key"`
	Fields []Field    `json:"fields"`
}

// MarshalJSON implements json.Marshaler.
func (s *Schema) MarshalJSON() ([]byte, error) {
	fields := s.fields
	if fields == nil {
		fields = []Field{}
	}
	return codec.Default.Marshal(schemaJSON{Key: s.key, Fields: fields})
}

// UnmarshalJSON implements json.Unmarshaler.
// Decoded schemas use default options.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var aux schemaJSON
	if err := codec.Default.Unmarshal(data, &aux); err != nil {
		return err
	}
	if err := validateParts(aux.Key, aux.Fields); err != nil {
		return err
	}
	*s = *FromParts(aux.Key, aux.Fields)
	return nil
}

// Fingerprint returns a 64-bit murmur3 hash of the binary schema form.
//
// Schemas with equal key type and fields share a fingerprint, which lets
// framed entries be matched to the schema they were written with.
func (s *Schema) Fingerprint() uint64 {
	b, _ := s.MarshalBinary()
	return murmur3.Sum64(b)
}

func validateParts(key value.Type, fields []Field) error {
	if !key.Valid() {
		return fmt.Errorf("unknown key type %d", uint8(key))
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if !f.Type.Valid() {
			return fmt.Errorf("field %q has unknown type %d", f.Name, uint8(f.Type))
		}
		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("field defined more than once: %s", f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}
