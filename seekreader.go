package pngcontainer

import (
	"io"

	"github.com/deepteams/pngcontainer/animation"
	"github.com/deepteams/pngcontainer/chunk"
)

// SeekableReader is a Reader over an io.ReadSeeker. On top of forward
// scanning it can decode any previously scanned chunk by its Ref, in
// any order, and assemble the animation timeline of an APNG.
type SeekableReader struct {
	Reader
	rs io.ReadSeeker
}

// NewSeekableReader reads and classifies the signature and returns a
// random-access reader positioned at the first chunk.
func NewSeekableReader(rs io.ReadSeeker) (*SeekableReader, error) {
	r, err := NewReader(rs)
	if err != nil {
		return nil, err
	}
	return &SeekableReader{Reader: *r, rs: rs}, nil
}

// ReadChunk seeks to ref and decodes its payload, verifying the CRC.
// The reader's IHDR (scanned or not-yet-scanned) supplies the decode
// context, so chunks may be read in any order once the header pass has
// run. The scan cursor is left where it was.
func (r *SeekableReader) ReadChunk(ref chunk.Ref) (chunk.Payload, error) {
	if _, err := r.rs.Seek(ref.Pos+8, io.SeekStart); err != nil {
		return nil, err
	}
	p, err := chunk.Decode(r.rs, ref, r.ihdr)
	r.pos = ref.Pos + ref.WireSize()
	return p, err
}

// Frames assembles the animation timeline. It rewinds to the first
// chunk, scans the whole stream for frame-related refs, and orders them
// by sequence number. A still PNG yields a single frame holding its
// IDAT refs; a JNG has no frames.
func (r *SeekableReader) Frames() ([]animation.Frame, error) {
	if r.kind == KindJng {
		// A JNG's IDAT chunks carry the PNG-coded alpha channel, not a
		// frame of image data.
		return nil, nil
	}
	if err := r.ResetChunkPosition(); err != nil {
		return nil, err
	}
	var fctls, fdats, idats []chunk.Ref
	refs, err := r.ScanChunksFiltered(func(t chunk.TypeCode) bool {
		return t == chunk.TypeFCTL || t == chunk.TypeFDAT || t == chunk.TypeIDAT
	})
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		switch ref.Type {
		case chunk.TypeFCTL:
			fctls = append(fctls, ref)
		case chunk.TypeFDAT:
			fdats = append(fdats, ref)
		case chunk.TypeIDAT:
			idats = append(idats, ref)
		}
	}

	if len(fctls) == 0 && len(fdats) == 0 {
		if len(idats) == 0 {
			return nil, nil
		}
		return []animation.Frame{{Data: idats}}, nil
	}
	return animation.Assemble(r.rs, fctls, fdats, idats, r.fctlBeforeData)
}
