package pngcontainer

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/deepteams/pngcontainer/chunk"
)

// DataReader is an io.Reader over the image datastream of a container:
// it concatenates the payloads of an ordered list of data chunks into
// one logical stream, pulling and CRC-checking each chunk lazily as the
// read position reaches it. fdAT payloads lose their 4-byte sequence
// number. The bytes stay compressed; decompression, defiltering, and
// compositing are the caller's job.
type DataReader struct {
	rs   io.ReadSeeker
	refs []chunk.Ref

	buf []byte // unread remainder of the current chunk's payload
	err error  // sticky
}

// NewDataReader returns a reader over the payloads of refs, in the
// given order. Only IDAT, fdAT, JDAT, and JDAA chunks carry image data;
// any other type in refs fails the first Read with ErrInvalidChunkType.
func NewDataReader(rs io.ReadSeeker, refs []chunk.Ref) *DataReader {
	return &DataReader{rs: rs, refs: refs}
}

func isDataChunk(t chunk.TypeCode) bool {
	return t == chunk.TypeIDAT || t == chunk.TypeFDAT ||
		t == chunk.TypeJDAT || t == chunk.TypeJDAA
}

// load pulls the next chunk's payload into the buffer, verifying its CRC.
func (d *DataReader) load() error {
	ref := d.refs[0]
	d.refs = d.refs[1:]

	if !isDataChunk(ref.Type) {
		return fmt.Errorf("%w: %s is not a data chunk", ErrInvalidChunkType, ref.Type)
	}
	// Chunk lengths above 2^31-1 are invalid on the wire.
	if ref.Length > 0x7FFFFFFF {
		return fmt.Errorf("%w: %s length %d exceeds the chunk size limit",
			chunk.ErrMalformedPayload, ref.Type, ref.Length)
	}
	if _, err := d.rs.Seek(ref.Pos+8, io.SeekStart); err != nil {
		return fmt.Errorf("png: seeking to %s payload: %w", ref.Type, err)
	}

	// Length+4 could wrap in uint32 on a forged ref, so size in int64.
	buf := make([]byte, int64(ref.Length)+4)
	if _, err := io.ReadFull(d.rs, buf); err != nil {
		return fmt.Errorf("png: reading %s payload: %w", ref.Type, err)
	}
	payload, trailer := buf[:ref.Length], buf[ref.Length:]

	crc := chunk.NewCRC()
	crc.Consume(ref.Type[:])
	crc.Consume(payload)
	if got := binary.BigEndian.Uint32(trailer); got != crc.Value() {
		return fmt.Errorf("%w: %s at offset %d", chunk.ErrCRCMismatch, ref.Type, ref.Pos)
	}

	if ref.Type == chunk.TypeFDAT {
		if len(payload) < 4 {
			return fmt.Errorf("%w: fdAT shorter than its sequence number",
				chunk.ErrMalformedPayload)
		}
		payload = payload[4:]
	}
	d.buf = payload
	return nil
}

// Read fills p from the concatenated datastream. It returns io.EOF once
// every chunk's payload has been consumed.
func (d *DataReader) Read(p []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	for len(d.buf) == 0 {
		if len(d.refs) == 0 {
			d.err = io.EOF
			return 0, io.EOF
		}
		if err := d.load(); err != nil {
			d.err = err
			return 0, err
		}
	}
	n := copy(p, d.buf)
	d.buf = d.buf[n:]
	return n, nil
}
