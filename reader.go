package pngcontainer

import (
	"errors"
	"fmt"
	"io"

	"github.com/deepteams/pngcontainer/chunk"
)

// jngOnly lists chunk types valid only inside a JNG container.
var jngOnly = []chunk.TypeCode{
	chunk.TypeJHDR, chunk.TypeJDAT, chunk.TypeJDAA, chunk.TypeJSEP,
}

// pngOnly lists chunk types a JNG container must not carry.
var pngOnly = []chunk.TypeCode{
	chunk.TypePLTE, chunk.TypeHIST, chunk.TypePCAL, chunk.TypeSBIT,
	chunk.TypeSPLT, chunk.TypeTRNS, chunk.TypeFRAC, chunk.TypeGIFG,
	chunk.TypeGIFX, chunk.TypeACTL, chunk.TypeFCTL, chunk.TypeFDAT,
}

// Reader scans the chunk structure of a PNG-family stream front to back.
// It keeps a single cursor, the position of the next chunk to scan. The
// underlying stream only needs to be an io.Reader; when it also
// implements io.Seeker the cursor may move backwards, otherwise it can
// only advance.
type Reader struct {
	r      io.Reader
	seeker io.Seeker // non-nil when r can seek

	kind FileKind

	pos    int64 // physical offset of the stream
	cursor int64 // where the next chunk starts

	ihdr    *chunk.IHDR
	jhdr    *chunk.JHDR
	palette bool

	sawData        bool // an IDAT or JDAT has been scanned
	fctlBeforeData bool // an fcTL was scanned before the first IDAT
	done           bool // IEND has been scanned
}

// NewReader reads and classifies the 8-byte signature and returns a
// reader positioned at the first chunk. MNG streams are recognized but
// scanning one fails with ErrUnsupported.
func NewReader(r io.Reader) (*Reader, error) {
	kind, err := readSignature(r)
	if err != nil {
		return nil, err
	}
	pr := &Reader{
		r:      r,
		kind:   kind,
		pos:    SignatureLength,
		cursor: SignatureLength,
	}
	if s, ok := r.(io.Seeker); ok {
		pr.seeker = s
	}
	return pr, nil
}

// Kind returns the container kind. It starts as the signature's kind
// and becomes KindApng once an animation chunk is scanned.
func (r *Reader) Kind() FileKind { return r.kind }

// IHDR returns the decoded image header, or nil before it is scanned.
func (r *Reader) IHDR() *chunk.IHDR { return r.ihdr }

// JHDR returns the decoded JNG header, or nil before it is scanned.
func (r *Reader) JHDR() *chunk.JHDR { return r.jhdr }

// HasPalette reports whether a PLTE chunk has been scanned.
func (r *Reader) HasPalette() bool { return r.palette }

// FirstFrameIsStatic reports whether an fcTL chunk was scanned before
// the first IDAT, meaning the default image doubles as frame 0 of the
// animation.
func (r *Reader) FirstFrameIsStatic() bool { return r.fctlBeforeData }

// seekTo moves the physical stream position to off. Forward moves work
// on any stream; backward moves need a seeker.
func (r *Reader) seekTo(off int64) error {
	if off == r.pos {
		return nil
	}
	if r.seeker != nil {
		if _, err := r.seeker.Seek(off, io.SeekStart); err != nil {
			return fmt.Errorf("png: seeking to chunk: %w", err)
		}
		r.pos = off
		return nil
	}
	if off < r.pos {
		return fmt.Errorf("%w: cannot move back to offset %d", ErrNotSeekable, off)
	}
	if _, err := io.CopyN(io.Discard, r.r, off-r.pos); err != nil {
		return fmt.Errorf("png: skipping to chunk: %w", err)
	}
	r.pos = off
	return nil
}

// validType reports whether t may appear in this container kind.
func (r *Reader) validType(t chunk.TypeCode) bool {
	var reject []chunk.TypeCode
	switch r.kind {
	case KindJng:
		reject = pngOnly
	default:
		reject = jngOnly
	}
	for _, bad := range reject {
		if t == bad {
			return false
		}
	}
	return true
}

// ScanNextChunk scans the chunk at the cursor and advances the cursor
// past it. The payload is not consumed, except for IHDR and JHDR, which
// the reader decodes to establish context for later chunks. Scanning
// past IEND returns io.EOF; a stream that ends before IEND yields an
// error wrapping io.ErrUnexpectedEOF.
func (r *Reader) ScanNextChunk() (chunk.Ref, error) {
	if r.kind == KindMng {
		return chunk.Ref{}, fmt.Errorf("%w: MNG is recognized by signature only", ErrUnsupported)
	}
	if r.done {
		return chunk.Ref{}, io.EOF
	}
	if err := r.seekTo(r.cursor); err != nil {
		return chunk.Ref{}, err
	}

	ref, err := chunk.ScanRef(r.r, r.cursor)
	if err != nil {
		// A clean end of stream here means the file was cut off: the
		// only non-error way out of a scan is through IEND.
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("png: stream truncated before IEND: %w", io.ErrUnexpectedEOF)
		}
		return chunk.Ref{}, err
	}
	r.pos += 8
	r.cursor = ref.Pos + ref.WireSize()

	if !r.validType(ref.Type) {
		return chunk.Ref{}, fmt.Errorf("%w: %s in a %s stream",
			ErrInvalidChunkType, ref.Type, r.kind)
	}

	switch ref.Type {
	case chunk.TypeIHDR:
		p, err := chunk.Decode(r.r, ref, nil)
		if err != nil {
			return chunk.Ref{}, err
		}
		r.pos = r.cursor
		r.ihdr = p.(*chunk.IHDR)

	case chunk.TypeJHDR:
		p, err := chunk.Decode(r.r, ref, nil)
		if err != nil {
			return chunk.Ref{}, err
		}
		r.pos = r.cursor
		r.jhdr = p.(*chunk.JHDR)

	case chunk.TypePLTE:
		r.palette = true

	case chunk.TypeACTL, chunk.TypeFDAT:
		r.kind = KindApng

	case chunk.TypeFCTL:
		r.kind = KindApng
		if !r.sawData {
			r.fctlBeforeData = true
		}

	case chunk.TypeIDAT, chunk.TypeJDAT:
		r.sawData = true

	case chunk.TypeIEND:
		r.done = true
	}

	return ref, nil
}

// ScanHeaderChunks scans from the cursor up to, but not including, the
// first data chunk (IDAT or JDAT), and rewinds the cursor to that chunk
// so a later pass can pick up from there.
func (r *Reader) ScanHeaderChunks() ([]chunk.Ref, error) {
	var refs []chunk.Ref
	for {
		ref, err := r.ScanNextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return refs, nil
			}
			return nil, err
		}
		if ref.Type == chunk.TypeIDAT || ref.Type == chunk.TypeJDAT {
			r.SeekToChunk(ref)
			r.sawData = false
			return refs, nil
		}
		refs = append(refs, ref)
	}
}

// ScanAllChunks scans from the cursor through IEND inclusive.
func (r *Reader) ScanAllChunks() ([]chunk.Ref, error) {
	var refs []chunk.Ref
	for {
		ref, err := r.ScanNextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return refs, nil
			}
			return nil, err
		}
		refs = append(refs, ref)
	}
}

// ScanChunksFiltered scans from the cursor through IEND and returns only
// the refs whose type satisfies pred. Every chunk is still scanned, so
// reader state (kind, header context) stays accurate.
func (r *Reader) ScanChunksFiltered(pred func(chunk.TypeCode) bool) ([]chunk.Ref, error) {
	var refs []chunk.Ref
	for {
		ref, err := r.ScanNextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return refs, nil
			}
			return nil, err
		}
		if pred(ref.Type) {
			refs = append(refs, ref)
		}
	}
}

// ResetChunkPosition moves the cursor back to the first chunk, so the
// stream can be walked again. This needs a seekable stream.
func (r *Reader) ResetChunkPosition() error {
	if r.seeker == nil {
		return fmt.Errorf("%w: cannot rewind to the first chunk", ErrNotSeekable)
	}
	r.cursor = SignatureLength
	r.done = false
	return nil
}

// SeekToChunk moves the cursor to the start of ref, so the next scan
// returns it again.
func (r *Reader) SeekToChunk(ref chunk.Ref) {
	r.cursor = ref.Pos
	r.done = false
}

// SeekPastChunk moves the cursor to just after ref.
func (r *Reader) SeekPastChunk(ref chunk.Ref) {
	r.cursor = ref.Pos + ref.WireSize()
	r.done = false
}
