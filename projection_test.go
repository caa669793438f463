package schemata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/schemata/value"
)

func TestProjectThenFilter(t *testing.T) {
	for name, optFns := range map[string][]Option{
		"Scan":  nil,
		"Index": {WithFieldIndex()},
	} {
		t.Run(name, func(t *testing.T) {
			schema := NewSchemaBuilder(value.TypeString).
				AddField("a", value.TypeI64).
				AddField("b", value.TypeString).
				AddField("c", value.TypeBool).
				Build(optFns...)

			entry := schema.BuildEntry().
				SetField("a", -1).
				SetField("b", "x").
				SetField("c", true).
				Build()

			// Selection order and repeats do not matter.
			reduced, p, err := schema.Project(entry, "c", "a", "c")
			require.NoError(t, err)

			assert.Equal(t, 2, p.Len())
			assert.Equal(t, 2, reduced.Len())
			assert.Equal(t, []string{"a", "c"}, p.Names())
			assert.True(t, p.Contains("a"))
			assert.False(t, p.Contains("b"))
			assert.False(t, p.Contains("nope"))

			got, err := schema.GetFieldsWithFilter(reduced, p.Names())
			require.NoError(t, err)
			assert.Equal(t, map[string]value.Value{
				"a": value.I64(-1),
				"c": value.Bool(true),
			}, got)
		})
	}
}

func TestProjectionCopiesBlobs(t *testing.T) {
	schema := NewSchemaBuilder(value.TypeString).
		AddField("a", value.TypeU64).
		Build()
	entry := schema.BuildEntry().SetField("a", uint64(1)).Build()

	reduced, _, err := schema.Project(entry, "a")
	require.NoError(t, err)

	reduced.fields[0][0] = 0xff
	v, err := schema.GetField(entry, "a")
	require.NoError(t, err)
	assert.Equal(t, value.U64(1), v)
}

func TestProjectionErrors(t *testing.T) {
	schema := NewSchemaBuilder(value.TypeString).
		AddField("a", value.TypeU64).
		Build()

	_, err := schema.Projection("a", "missing")
	assert.ErrorIs(t, err, ErrNoSuchField)

	p, err := schema.Projection()
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.Names())

	_, err = p.Apply(FromFields(nil))
	assert.ErrorIs(t, err, ErrEncoding)
}
