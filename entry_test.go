package schemata

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/schemata/value"
)

func TestDataEntryBinary(t *testing.T) {
	entry := FromFields([][]byte{
		value.String("foobar").MarshalField(),
		{},
		value.I64(42).MarshalField(),
	})

	data, err := entry.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), binary.LittleEndian.Uint64(data))
	assert.Len(t, data, 8+(8+14)+(8+0)+(8+8))

	var decoded DataEntry
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.True(t, entry.Equal(&decoded))

	appended, err := entry.AppendBinary([]byte{0xff})
	require.NoError(t, err)
	assert.Equal(t, byte(0xff), appended[0])
	assert.Equal(t, data, appended[1:])
}

func TestDataEntryUnmarshalErrors(t *testing.T) {
	valid, err := FromFields([][]byte{{1, 2}}).MarshalBinary()
	require.NoError(t, err)

	huge := binary.LittleEndian.AppendUint64(nil, 1<<40)

	tests := []struct {
		name string
		data []byte
	}{
		{"Empty", nil},
		{"ShortHeader", []byte{1, 0, 0}},
		{"CountExceedsBuffer", huge},
		{"ShortBlob", valid[:len(valid)-1]},
		{"TrailingBytes", append(valid, 0)},
		{"BlobLengthOverflow", append(binary.LittleEndian.AppendUint64(
			binary.LittleEndian.AppendUint64(nil, 1), 1<<63), 0, 0, 0, 0, 0, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e DataEntry
			assert.Error(t, e.UnmarshalBinary(tt.data))
		})
	}
}

func TestDataEntryClone(t *testing.T) {
	entry := FromFields([][]byte{{1, 2, 3}})
	clone := entry.Clone()
	require.True(t, entry.Equal(clone))

	clone.fields[0][0] = 9
	assert.Equal(t, byte(1), entry.fields[0][0])
	assert.False(t, entry.Equal(clone))
}

func TestDataEntryEmpty(t *testing.T) {
	var nilEntry *DataEntry
	assert.Equal(t, 0, nilEntry.Len())
	assert.Nil(t, nilEntry.Clone())
	assert.True(t, nilEntry.Equal(nil))
	assert.True(t, nilEntry.Equal(FromFields(nil)))
	assert.True(t, FromFields(nil).Equal(nilEntry))
	assert.False(t, nilEntry.Equal(FromFields([][]byte{{1}})))
	assert.False(t, FromFields([][]byte{{1}}).Equal(nilEntry))

	data, err := FromFields(nil).MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 8), data)

	var decoded DataEntry
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, 0, decoded.Len())
}
