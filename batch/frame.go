package batch

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/schemata"
	"github.com/hupe1980/schemata/internal/hash"
)

var (
	// ErrCorrupt is matched by errors for frames that are truncated, carry a
	// bad magic, version or checksum, or hold malformed entries.
	ErrCorrupt = errors.New("corrupt batch frame")

	// ErrSchemaMismatch is returned when a frame was written for a schema
	// with a different fingerprint.
	ErrSchemaMismatch = errors.New("batch frame belongs to a different schema")
)

var frameMagic = [4]byte{'S', 'C', 'H', 'B'}

const (
	frameVersion = uint8(1)

	// magic, version, compression, fingerprint.
	frameFixedLen = 4 + 1 + 1 + 8

	// maxRawLen bounds the decompressed size a frame may claim.
	maxRawLen = 1 << 30
)

// Options configures frame encoding.
type Options struct {
	// Compression selects the payload algorithm. Frames whose payload does
	// not shrink by at least 10% are stored uncompressed regardless.
	Compression Compression

	// MaxEntries is the number of entries a Writer buffers before it emits
	// a frame. Encode ignores it.
	MaxEntries int
}

// DefaultOptions holds the defaults applied before any option function.
var DefaultOptions = Options{
	Compression: CompressionNone,
	MaxEntries:  1024,
}

// WithCompression returns an option function selecting the compression.
func WithCompression(c Compression) func(o *Options) {
	return func(o *Options) {
		o.Compression = c
	}
}

// Encode frames entries written for schema.
//
// Frame: [magic "SCHB"][version u8][compression u8][fingerprint u64 LE]
// [count uvarint][raw len uvarint][payload len uvarint][crc32c(raw) u32 LE]
// [payload]. The raw form is, per entry, the uvarint length of its binary
// form followed by DataEntry.MarshalBinary. The payload is the raw form
// after compression.
func Encode(schema *schemata.Schema, entries []*schemata.DataEntry, optFns ...func(o *Options)) ([]byte, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	b := newFrameBuilder(schema)
	for _, e := range entries {
		if err := b.add(e); err != nil {
			return nil, err
		}
	}
	return b.finish(nil, opts.Compression)
}

// Decode parses a single frame produced by Encode for schema.
func Decode(schema *schemata.Schema, frame []byte) ([]*schemata.DataEntry, error) {
	h, rest, err := parseHeader(frame)
	if err != nil {
		return nil, err
	}
	if uint64(len(rest)) != h.payloadLen {
		return nil, fmt.Errorf("%w: payload has %d bytes, header says %d", ErrCorrupt, len(rest), h.payloadLen)
	}
	return h.entries(schema, rest)
}

type frameBuilder struct {
	schema *schemata.Schema
	raw    []byte
	crc    uint32
	count  uint64
}

func newFrameBuilder(schema *schemata.Schema) *frameBuilder {
	return &frameBuilder{schema: schema}
}

func (b *frameBuilder) add(e *schemata.DataEntry) error {
	if e.Len() != b.schema.NumFields() {
		return &schemata.EncodingError{Expected: b.schema.NumFields(), Actual: e.Len()}
	}

	data, err := e.MarshalBinary()
	if err != nil {
		return err
	}

	start := len(b.raw)
	b.raw = binary.AppendUvarint(b.raw, uint64(len(data)))
	b.raw = append(b.raw, data...)
	b.crc = hash.UpdateCRC32C(b.crc, b.raw[start:])
	b.count++
	return nil
}

func (b *frameBuilder) finish(dst []byte, c Compression) ([]byte, error) {
	payload, used, err := compress(b.raw, c)
	if err != nil {
		return nil, err
	}

	dst = append(dst, frameMagic[:]...)
	dst = append(dst, frameVersion, byte(used))
	dst = binary.LittleEndian.AppendUint64(dst, b.schema.Fingerprint())
	dst = binary.AppendUvarint(dst, b.count)
	dst = binary.AppendUvarint(dst, uint64(len(b.raw)))
	dst = binary.AppendUvarint(dst, uint64(len(payload)))
	dst = binary.LittleEndian.AppendUint32(dst, b.crc)
	dst = append(dst, payload...)
	return dst, nil
}

func (b *frameBuilder) reset() {
	b.raw = b.raw[:0]
	b.crc = 0
	b.count = 0
}

type frameHeader struct {
	compression Compression
	fingerprint uint64
	count       uint64
	rawLen      uint64
	payloadLen  uint64
	crc         uint32
}

func (h *frameHeader) checkFixed(fixed []byte) error {
	if [4]byte(fixed[:4]) != frameMagic {
		return fmt.Errorf("%w: invalid magic", ErrCorrupt)
	}
	if fixed[4] != frameVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrCorrupt, fixed[4])
	}
	h.compression = Compression(fixed[5])
	if h.compression > CompressionZstd {
		return fmt.Errorf("%w: unknown compression %d", ErrCorrupt, fixed[5])
	}
	h.fingerprint = binary.LittleEndian.Uint64(fixed[6:])
	return nil
}

func (h *frameHeader) checkLengths() error {
	if h.rawLen > maxRawLen || h.payloadLen > maxRawLen {
		return fmt.Errorf("%w: frame of %d bytes exceeds limit", ErrCorrupt, h.rawLen)
	}
	// Every entry needs a length byte and its 8 byte field count.
	if h.count > h.rawLen/9 {
		return fmt.Errorf("%w: %d entries do not fit %d bytes", ErrCorrupt, h.count, h.rawLen)
	}
	return nil
}

// parseHeader reads the header from the start of frame and returns the
// remaining bytes.
func parseHeader(frame []byte) (frameHeader, []byte, error) {
	var h frameHeader
	if len(frame) < frameFixedLen {
		return h, nil, fmt.Errorf("%w: short header", ErrCorrupt)
	}
	if err := h.checkFixed(frame[:frameFixedLen]); err != nil {
		return h, nil, err
	}
	rest := frame[frameFixedLen:]

	for _, dst := range []*uint64{&h.count, &h.rawLen, &h.payloadLen} {
		v, n := binary.Uvarint(rest)
		if n <= 0 {
			return h, nil, fmt.Errorf("%w: invalid varint", ErrCorrupt)
		}
		*dst = v
		rest = rest[n:]
	}
	if err := h.checkLengths(); err != nil {
		return h, nil, err
	}

	if len(rest) < 4 {
		return h, nil, fmt.Errorf("%w: short header", ErrCorrupt)
	}
	h.crc = binary.LittleEndian.Uint32(rest)
	return h, rest[4:], nil
}

// entries decompresses and verifies payload and splits it into entries.
func (h *frameHeader) entries(schema *schemata.Schema, payload []byte) ([]*schemata.DataEntry, error) {
	if h.fingerprint != schema.Fingerprint() {
		return nil, ErrSchemaMismatch
	}

	raw, err := decompress(payload, h.compression, int(h.rawLen))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if hash.CRC32C(raw) != h.crc {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	entries := make([]*schemata.DataEntry, 0, h.count)
	for i := uint64(0); i < h.count; i++ {
		n, k := binary.Uvarint(raw)
		if k <= 0 || n > uint64(len(raw)-k) {
			return nil, fmt.Errorf("%w: entry %d truncated", ErrCorrupt, i)
		}
		raw = raw[k:]

		var e schemata.DataEntry
		if err := e.UnmarshalBinary(raw[:n]); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrCorrupt, i, err)
		}
		if e.Len() != schema.NumFields() {
			return nil, fmt.Errorf("%w: entry %d has %d fields, schema has %d", ErrCorrupt, i, e.Len(), schema.NumFields())
		}
		entries = append(entries, &e)
		raw = raw[n:]
	}
	if len(raw) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(raw))
	}
	return entries, nil
}
