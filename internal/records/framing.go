package records

import "hash/crc32"

// Frame layout per record: uint64 little-endian payload length, masked
// CRC-32C of the length bytes, payload, masked CRC-32C of the payload.

const crcMaskDelta = 0xa282ead8

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// maskedCRC computes the rotated-and-offset CRC-32C used in the frame.
// Masking keeps a CRC stored alongside the data it covers from colliding
// with a CRC computed over itself.
func maskedCRC(data []byte) uint32 {
	crc := crc32.Checksum(data, castagnoli)
	return ((crc >> 15) | (crc << 17)) + crcMaskDelta
}
