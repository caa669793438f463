// Package batch frames sequences of DataEntries for storage and transport.
//
// A frame is bound to the schema it was written for through the schema
// fingerprint, protected by a CRC32C checksum of its uncompressed content and
// optionally compressed with snappy, LZ4 or zstd.
//
//	frame, err := batch.Encode(schema, entries, batch.WithCompression(batch.CompressionZstd))
//	entries, err = batch.Decode(schema, frame)
//
// Writer and Reader stream frames over io.Writer and io.Reader, emitting a
// frame every Options.MaxEntries entries.
package batch
