package schemata

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Projection selects a subset of a schema's fields.
//
// Projected entries keep the selected blobs in schema order, and Names
// returns the matching filter for Schema.GetFieldsWithFilter.
type Projection struct {
	schema    *Schema
	positions *roaring.Bitmap
}

// Projection creates a projection onto the named fields.
// Repeated names are selected once.
func (s *Schema) Projection(names ...string) (*Projection, error) {
	positions := roaring.New()
	for _, name := range names {
		pos, ok := s.position(name)
		if !ok {
			return nil, &NoSuchFieldError{Name: name}
		}
		positions.Add(uint32(pos))
	}
	return &Projection{schema: s, positions: positions}, nil
}

// Project reduces a complete entry to the named fields.
func (s *Schema) Project(entry *DataEntry, names ...string) (*DataEntry, *Projection, error) {
	p, err := s.Projection(names...)
	if err != nil {
		return nil, nil, err
	}
	projected, err := p.Apply(entry)
	if err != nil {
		return nil, nil, err
	}
	return projected, p, nil
}

// Len returns the number of selected fields.
func (p *Projection) Len() int {
	return int(p.positions.GetCardinality())
}

// Contains reports whether the named field is selected.
func (p *Projection) Contains(name string) bool {
	pos, ok := p.schema.position(name)
	return ok && p.positions.Contains(uint32(pos))
}

// Names returns the selected field names in schema order.
func (p *Projection) Names() []string {
	names := make([]string, 0, p.Len())
	it := p.positions.Iterator()
	for it.HasNext() {
		names = append(names, p.schema.fields[it.Next()].Name)
	}
	return names
}

// Apply copies the selected blobs of a complete entry into a new entry.
func (p *Projection) Apply(entry *DataEntry) (*DataEntry, error) {
	if entry.Len() != len(p.schema.fields) {
		return nil, errLength(len(p.schema.fields), entry.Len())
	}

	fields := make([][]byte, 0, p.Len())
	it := p.positions.Iterator()
	for it.HasNext() {
		fields = append(fields, slices.Clone(entry.fields[it.Next()]))
	}
	return &DataEntry{fields: fields}, nil
}
