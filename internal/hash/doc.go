// Package hash provides the checksum used by batch frames.
//
// Frames are protected by CRC32-Castagnoli (CRC32C), which Go computes with
// hardware instructions where available (SSE4.2 on x86, the CRC extension
// on ARM).
//
// For one-shot checksums:
//
//	checksum := hash.CRC32C(data)
//
// For data that arrives in pieces:
//
//	crc := hash.UpdateCRC32C(0, chunk1)
//	crc = hash.UpdateCRC32C(crc, chunk2)
package hash
