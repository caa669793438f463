package schemata

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
)

// DataEntry is a record: one encoded blob per schema field, in schema order.
//
// An entry carries no field names and no type tags; it only has meaning
// together with the schema it was built for. The number of blobs is fixed
// at construction.
type DataEntry struct {
	fields [][]byte
}

// FromFields creates an entry directly from its raw field blobs.
// It is the caller's responsibility to ensure these match the schema.
func FromFields(fields [][]byte) *DataEntry {
	return &DataEntry{fields: fields}
}

// Len returns the number of field blobs. A nil entry has none.
func (e *DataEntry) Len() int {
	if e == nil {
		return 0
	}
	return len(e.fields)
}

// Clone returns a deep copy of the entry. Cloning nil returns nil.
func (e *DataEntry) Clone() *DataEntry {
	if e == nil {
		return nil
	}
	fields := make([][]byte, len(e.fields))
	for i := range e.fields {
		fields[i] = slices.Clone(e.fields[i])
	}
	return &DataEntry{fields: fields}
}

// Equal reports whether both entries hold the same blobs in the same order.
// A nil entry is equal to an empty one.
func (e *DataEntry) Equal(o *DataEntry) bool {
	return slices.EqualFunc(e.blobs(), o.blobs(), bytes.Equal)
}

func (e *DataEntry) blobs() [][]byte {
	if e == nil {
		return nil
	}
	return e.fields
}

// MarshalBinary implements encoding.BinaryMarshaler.
// Format: [count uint64 LE] then per blob [len uint64 LE][bytes].
func (e *DataEntry) MarshalBinary() ([]byte, error) {
	return e.AppendBinary(make([]byte, 0, e.binarySize()))
}

// AppendBinary appends the binary form of the entry to dst.
func (e *DataEntry) AppendBinary(dst []byte) ([]byte, error) {
	dst = binary.LittleEndian.AppendUint64(dst, uint64(len(e.fields)))
	for _, f := range e.fields {
		dst = binary.LittleEndian.AppendUint64(dst, uint64(len(f)))
		dst = append(dst, f...)
	}
	return dst, nil
}

func (e *DataEntry) binarySize() int {
	n := 8
	for _, f := range e.fields {
		n += 8 + len(f)
	}
	return n
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (e *DataEntry) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return errors.New("short buffer for entry field count")
	}
	count := binary.LittleEndian.Uint64(data)
	data = data[8:]

	// Every blob needs at least its length word.
	if count > uint64(len(data)/8) {
		return fmt.Errorf("entry field count %d exceeds buffer", count)
	}

	fields := make([][]byte, count)
	for i := range fields {
		if len(data) < 8 {
			return errors.New("short buffer for field length")
		}
		n := binary.LittleEndian.Uint64(data)
		data = data[8:]
		if uint64(len(data)) < n {
			return errors.New("short buffer for field")
		}
		fields[i] = slices.Clone(data[:n])
		data = data[n:]
	}
	if len(data) != 0 {
		return fmt.Errorf("%d trailing bytes after entry", len(data))
	}

	e.fields = fields
	return nil
}
