package value

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		val  Value
	}{
		{"String", String("hello world")},
		{"StringEmpty", String("")},
		{"StringNonAscii", String("こんにちは")},
		{"StringInvalidUTF8", String("\xff\xfe")},
		{"StringLarge", String(strings.Repeat("v", 10240))},
		{"F64", F64(3.14159)},
		{"F64Neg", F64(-1.23)},
		{"F64Inf", F64(math.Inf(1))},
		{"I64Min", I64(math.MinInt64)},
		{"I64Max", I64(math.MaxInt64)},
		{"I64Zero", I64(0)},
		{"U64Max", U64(math.MaxUint64)},
		{"BoolTrue", Bool(true)},
		{"BoolFalse", Bool(false)},
		{"JSON", JSON(DocObject(Member{Key: "value", Value: DocInt(42)}))},
		{"JSONNull", JSON(Null())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.val.MarshalField()

			got, err := DecodeField(b, tt.val.Type())
			require.NoError(t, err)
			assert.Equal(t, tt.val.Type(), got.Type())
			assert.True(t, tt.val.Equal(got), "want %#v, got %#v", tt.val, got)
		})
	}
}

func TestFieldLayout(t *testing.T) {
	assert.Equal(t,
		[]byte{2, 0, 0, 0, 0, 0, 0, 0, 'a', 'b'},
		String("ab").MarshalField())
	assert.Equal(t,
		[]byte{42, 0, 0, 0, 0, 0, 0, 0},
		I64(42).MarshalField())
	assert.Equal(t,
		[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		I64(-1).MarshalField())
	assert.Equal(t,
		[]byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f},
		F64(1).MarshalField())
	assert.Equal(t, []byte{1}, Bool(true).MarshalField())
	assert.Equal(t, []byte(`{"value":42}`), JSON(DocObject(Member{Key: "value", Value: DocInt(42)})).MarshalField())

	buf := []byte{0xaa}
	buf = U64(7).AppendField(buf)
	assert.Equal(t, []byte{0xaa, 7, 0, 0, 0, 0, 0, 0, 0}, buf)
}

func TestDecodeFieldErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		typ  Type
	}{
		{"StringShortLength", []byte{1, 0, 0}, TypeString},
		{"StringShortPayload", []byte{5, 0, 0, 0, 0, 0, 0, 0, 'a'}, TypeString},
		{"StringTrailing", []byte{1, 0, 0, 0, 0, 0, 0, 0, 'a', 'b'}, TypeString},
		{"I64Short", []byte{1, 2, 3}, TypeI64},
		{"U64Long", make([]byte, 9), TypeU64},
		{"F64Empty", nil, TypeF64},
		{"BoolEmpty", nil, TypeBool},
		{"BoolInvalid", []byte{2}, TypeBool},
		{"BoolLong", []byte{1, 0}, TypeBool},
		{"JSONInvalid", []byte(`{"value":`), TypeJSON},
		{"JSONTrailing", []byte(`{} {}`), TypeJSON},
		{"UnknownType", []byte{0}, Type(77)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeField(tt.data, tt.typ)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestDecodeFieldCrossType(t *testing.T) {
	// An I64 blob decodes as U64 or F64 because the field form is untagged;
	// the declared type decides the result tag.
	got, err := DecodeField(I64(1).MarshalField(), TypeU64)
	require.NoError(t, err)
	assert.Equal(t, TypeU64, got.Type())

	_, err = DecodeField(I64(1).MarshalField(), TypeBool)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestTaggedBinary(t *testing.T) {
	values := []Value{
		String("foo"),
		F64(0.5),
		I64(-3),
		U64(3),
		Bool(true),
		JSON(DocArray(DocString("a"), DocUint(math.MaxUint64))),
	}

	for _, v := range values {
		b, err := v.MarshalBinary()
		require.NoError(t, err)
		assert.Equal(t, byte(v.Type()), b[0])
		assert.Equal(t, v.MarshalField(), b[1:])

		var got Value
		require.NoError(t, got.UnmarshalBinary(b))
		assert.True(t, v.Equal(got), "want %#v, got %#v", v, got)
	}

	var got Value
	assert.ErrorIs(t, got.UnmarshalBinary(nil), ErrDecode)
	assert.ErrorIs(t, got.UnmarshalBinary([]byte{9, 0}), ErrDecode)

	_, err := Value{typ: Type(9)}.MarshalBinary()
	assert.Error(t, err)
}

func TestAppendFieldInvalidStatePanics(t *testing.T) {
	assert.Panics(t, func() {
		_ = Value{typ: Type(9)}.MarshalField()
	})
}
