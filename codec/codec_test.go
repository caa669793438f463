package codec_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/schemata/codec"
	"github.com/hupe1980/schemata/value"
)

var codecs = []codec.Codec{codec.JSON{}, codec.GoJSON{}}

func TestByName(t *testing.T) {
	for _, c := range codecs {
		got, ok := codec.ByName(c.Name())
		require.True(t, ok)
		assert.Equal(t, c, got)
	}

	_, ok := codec.ByName("msgpack")
	assert.False(t, ok)
}

func TestUnmarshalKeepsNumberLiterals(t *testing.T) {
	for _, c := range codecs {
		t.Run(c.Name(), func(t *testing.T) {
			var v map[string]any
			require.NoError(t, c.Unmarshal([]byte(`{"u":18446744073709551615,"i":-9223372036854775808,"f":1.5}`), &v))

			assert.Equal(t, json.Number("18446744073709551615"), v["u"])
			assert.Equal(t, json.Number("-9223372036854775808"), v["i"])
			assert.Equal(t, json.Number("1.5"), v["f"])
		})
	}
}

func TestUnmarshalRejectsInvalidInput(t *testing.T) {
	for _, c := range codecs {
		t.Run(c.Name(), func(t *testing.T) {
			for _, in := range []string{``, `{`, `{"a":1} {"b":2}`, `[1,]`, `nul`} {
				var v any
				assert.Error(t, c.Unmarshal([]byte(in), &v), in)
			}
		})
	}
}

func TestCodecsAgreeOnDocuments(t *testing.T) {
	doc := value.DocObject(
		value.Member{Key: "z", Value: value.DocArray(value.DocInt(-1), value.DocUint(2), value.DocFloat(2))},
		value.Member{Key: "a", Value: value.DocString("x\"y")},
		value.Member{Key: "n", Value: value.Null()},
	)

	std, err := codec.JSON{}.Marshal(doc)
	require.NoError(t, err)
	fast, err := codec.GoJSON{}.Marshal(doc)
	require.NoError(t, err)

	assert.Equal(t, string(std), string(fast))
	assert.Equal(t, `{"a":"x\"y","n":null,"z":[-1,2,2.0]}`, string(fast))

	for _, c := range codecs {
		var got value.Document
		require.NoError(t, c.Unmarshal(fast, &got), c.Name())
		assert.True(t, doc.Equal(got), c.Name())
	}
}

func TestMustMarshal(t *testing.T) {
	assert.Equal(t, []byte(`{"I64":42}`), codec.MustMarshal(nil, value.I64(42)))
	assert.Panics(t, func() {
		codec.MustMarshal(codec.JSON{}, make(chan int))
	})
}
