package batch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the algorithm applied to a frame payload.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionSnappy uses snappy block compression (fastest).
	CompressionSnappy Compression = 1
	// CompressionLZ4 uses LZ4 block compression (fast, good for hot data).
	CompressionLZ4 Compression = 2
	// CompressionZstd uses zstd (better ratio, good for cold data).
	CompressionZstd Compression = 3
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionSnappy:
		return "snappy"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	// DecodeAll stops at the capacity of dst, which decompress sizes from
	// the validated header.
	dec, _ := zstd.NewReader(nil,
		zstd.WithDecodeAllCapLimit(true),
		zstd.WithDecoderMaxMemory(maxRawLen),
	)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

var errSizeMismatch = errors.New("decompressed size mismatch")

// compress compresses data with the requested algorithm.
// It falls back to CompressionNone when compression does not save at least
// 10%, and reports the algorithm actually used.
func compress(data []byte, c Compression) ([]byte, Compression, error) {
	if c == CompressionNone || len(data) == 0 {
		return data, CompressionNone, nil
	}

	var compressed []byte
	switch c {
	case CompressionSnappy:
		compressed = snappy.Encode(nil, data)
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, 0, err
		}
		compressed = buf[:n] // n == 0 means incompressible
	case CompressionZstd:
		enc := getZstdEncoder()
		defer putZstdEncoder(enc)
		compressed = enc.EncodeAll(data, nil)
	default:
		return nil, 0, fmt.Errorf("unknown compression %s", c)
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		return data, CompressionNone, nil
	}
	return compressed, c, nil
}

// decompress reverses compress. rawLen is the expected decompressed size.
func decompress(payload []byte, c Compression, rawLen int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(payload) != rawLen {
			return nil, errSizeMismatch
		}
		return payload, nil

	case CompressionSnappy:
		n, err := snappy.DecodedLen(payload)
		if err != nil {
			return nil, err
		}
		if n != rawLen {
			return nil, errSizeMismatch
		}
		return snappy.Decode(make([]byte, rawLen), payload)

	case CompressionLZ4:
		result := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(payload, result)
		if err != nil {
			return nil, err
		}
		if n != rawLen {
			return nil, errSizeMismatch
		}
		return result, nil

	case CompressionZstd:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(payload, make([]byte, 0, rawLen))
		if err != nil {
			return nil, err
		}
		if len(decoded) != rawLen {
			return nil, errSizeMismatch
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("unknown compression %s", c)
	}
}
