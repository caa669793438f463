package schemata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/schemata/value"
)

func TestSchemaBinaryRoundTrip(t *testing.T) {
	schema := NewSchemaBuilder(value.TypeU64).
		AddField("name", value.TypeString).
		AddField("score", value.TypeF64).
		AddField("meta", value.TypeJSON).
		Build()

	data, err := schema.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, byte(value.TypeU64), data[0])

	decoded, err := DecodeSchema(data, WithFieldIndex())
	require.NoError(t, err)
	assert.True(t, schema.Equal(decoded))

	typ, ok := decoded.FieldType("meta")
	require.True(t, ok)
	assert.Equal(t, value.TypeJSON, typ)

	var s Schema
	require.NoError(t, s.UnmarshalBinary(data))
	assert.True(t, schema.Equal(&s))
}

func TestDecodeSchemaErrors(t *testing.T) {
	valid, err := NewSchemaBuilder(value.TypeString).
		AddField("a", value.TypeBool).
		Build().
		MarshalBinary()
	require.NoError(t, err)

	badType := append([]byte(nil), valid...)
	badType[len(badType)-1] = 42

	badKey := append([]byte(nil), valid...)
	badKey[0] = 42

	dup, err := FromParts(value.TypeString, []Field{
		{Name: "a", Type: value.TypeBool},
		{Name: "a", Type: value.TypeBool},
	}).MarshalBinary()
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"Empty", nil},
		{"ShortHeader", valid[:5]},
		{"Truncated", valid[:len(valid)-1]},
		{"TrailingBytes", append(append([]byte(nil), valid...), 0)},
		{"UnknownFieldType", badType},
		{"UnknownKeyType", badKey},
		{"DuplicateField", dup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSchema(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestSchemaJSON(t *testing.T) {
	schema := NewSchemaBuilder(value.TypeBool).
		AddField("value1", value.TypeString).
		AddField("value2", value.TypeI64).
		Build()

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"key": "Bool",
		"fields": [
			{"name": "value1", "type": "String"},
			{"name": "value2", "type": "I64"}
		]
	}`, string(data))

	var decoded Schema
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, schema.Equal(&decoded))

	empty, err := json.Marshal(NewSchemaBuilder(value.TypeU64).Build())
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"U64","fields":[]}`, string(empty))

	assert.Error(t, json.Unmarshal([]byte(`{"key":"Bool","fields":[{"name":"a","type":"I32"}]}`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`{"key":"Bool","fields":[{"name":"a","type":"I64"},{"name":"a","type":"I64"}]}`), &decoded))
}

func TestFingerprint(t *testing.T) {
	a := NewSchemaBuilder(value.TypeBool).
		AddField("value1", value.TypeString).
		AddField("value2", value.TypeI64).
		Build()
	b := NewSchemaBuilder(value.TypeBool).
		AddField("value1", value.TypeString).
		AddField("value2", value.TypeI64).
		Build(WithFieldIndex(), WithStrictTypes())

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	for name, other := range map[string]*Schema{
		"Key":   NewSchemaBuilder(value.TypeU64).AddField("value1", value.TypeString).AddField("value2", value.TypeI64).Build(),
		"Order": NewSchemaBuilder(value.TypeBool).AddField("value2", value.TypeI64).AddField("value1", value.TypeString).Build(),
		"Type":  NewSchemaBuilder(value.TypeBool).AddField("value1", value.TypeString).AddField("value2", value.TypeU64).Build(),
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, a.Fingerprint(), other.Fingerprint())
		})
	}
}
