package chunk

import "hash/crc32"

// CRC is a streaming CRC-32 accumulator over chunk bytes in wire order
// (type code first, then payload). It uses the IEEE polynomial shared by
// PNG and zlib. Feeding bytes in pieces produces the same value as feeding
// their concatenation at once.
type CRC struct {
	crc uint32
}

// NewCRC returns a CRC accumulator in its zero state.
func NewCRC() *CRC {
	return &CRC{}
}

// Consume folds p into the running checksum.
func (c *CRC) Consume(p []byte) {
	c.crc = crc32.Update(c.crc, crc32.IEEETable, p)
}

// Value returns the 32-bit checksum of everything consumed so far.
func (c *CRC) Value() uint32 {
	return c.crc
}

// crcOf computes the CRC-32 of a chunk's type code and payload, the value
// every chunk's 4-byte trailer must match.
func crcOf(t TypeCode, payload []byte) uint32 {
	crc := crc32.Update(0, crc32.IEEETable, t[:])
	return crc32.Update(crc, crc32.IEEETable, payload)
}
