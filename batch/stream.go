package batch

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/schemata"
)

// Writer writes entries to an underlying writer as a sequence of frames.
type Writer struct {
	w       io.Writer
	opts    Options
	builder *frameBuilder
	buf     []byte
	frames  int
}

// NewWriter creates a writer of frames for schema.
func NewWriter(w io.Writer, schema *schemata.Schema, optFns ...func(o *Options)) *Writer {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultOptions.MaxEntries
	}

	return &Writer{
		w:       w,
		opts:    opts,
		builder: newFrameBuilder(schema),
	}
}

// Write buffers an entry, emitting a frame once MaxEntries are buffered.
func (w *Writer) Write(entry *schemata.DataEntry) error {
	if err := w.builder.add(entry); err != nil {
		return err
	}
	if w.builder.count >= uint64(w.opts.MaxEntries) {
		return w.Flush()
	}
	return nil
}

// Flush emits the buffered entries as a frame. It is a no-op when nothing
// is buffered.
func (w *Writer) Flush() error {
	if w.builder.count == 0 {
		return nil
	}

	frame, err := w.builder.finish(w.buf[:0], w.opts.Compression)
	if err != nil {
		return err
	}
	w.buf = frame

	if _, err := w.w.Write(frame); err != nil {
		return fmt.Errorf("failed to write batch frame: %w", err)
	}
	w.builder.reset()
	w.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int {
	return w.frames
}

// Reader reads the frames produced by a Writer.
type Reader struct {
	r      *bufio.Reader
	schema *schemata.Schema
}

// NewReader creates a reader of frames for schema.
func NewReader(r io.Reader, schema *schemata.Schema) *Reader {
	return &Reader{r: bufio.NewReader(r), schema: schema}
}

// Next returns the entries of the next frame. It returns io.EOF once the
// stream ends cleanly between frames.
func (r *Reader) Next() ([]*schemata.DataEntry, error) {
	var h frameHeader

	fixed := make([]byte, frameFixedLen)
	if _, err := io.ReadFull(r.r, fixed); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: short header: %v", ErrCorrupt, err)
	}
	if err := h.checkFixed(fixed); err != nil {
		return nil, err
	}

	for _, dst := range []*uint64{&h.count, &h.rawLen, &h.payloadLen} {
		v, err := binary.ReadUvarint(r.r)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid varint: %v", ErrCorrupt, err)
		}
		*dst = v
	}
	if err := h.checkLengths(); err != nil {
		return nil, err
	}

	var crc [4]byte
	if _, err := io.ReadFull(r.r, crc[:]); err != nil {
		return nil, fmt.Errorf("%w: short header: %v", ErrCorrupt, err)
	}
	h.crc = binary.LittleEndian.Uint32(crc[:])

	payload := make([]byte, h.payloadLen)
	if _, err := io.ReadFull(r.r, payload); err != nil {
		return nil, fmt.Errorf("%w: short payload: %v", ErrCorrupt, err)
	}
	return h.entries(r.schema, payload)
}

// ReadAll reads all remaining frames and concatenates their entries.
func (r *Reader) ReadAll() ([]*schemata.DataEntry, error) {
	var all []*schemata.DataEntry
	for {
		entries, err := r.Next()
		if err == io.EOF {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
}
