package animation

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"testing"

	"github.com/deepteams/pngcontainer/chunk"
)

// stream builds wire chunks back to back and returns the buffer plus a
// Ref for each chunk, in file order.
func stream(chunks ...wireChunk) ([]byte, []chunk.Ref) {
	var buf []byte
	var refs []chunk.Ref
	for _, c := range chunks {
		var t chunk.TypeCode
		copy(t[:], c.typ)
		refs = append(refs, chunk.Ref{
			Pos:    int64(len(buf)),
			Length: uint32(len(c.payload)),
			Type:   t,
		})

		buf = binary.BigEndian.AppendUint32(buf, uint32(len(c.payload)))
		buf = append(buf, c.typ...)
		buf = append(buf, c.payload...)
		crc := crc32.Update(0, crc32.IEEETable, []byte(c.typ))
		crc = crc32.Update(crc, crc32.IEEETable, c.payload)
		buf = binary.BigEndian.AppendUint32(buf, crc)
	}
	return buf, refs
}

type wireChunk struct {
	typ     string
	payload []byte
}

func fctl(seq uint32) wireChunk {
	p := make([]byte, 26)
	binary.BigEndian.PutUint32(p[0:4], seq)
	return wireChunk{"fcTL", p}
}

func fdat(seq uint32) wireChunk {
	p := binary.BigEndian.AppendUint32(nil, seq)
	return wireChunk{"fdAT", append(p, 0xAB)}
}

func idat() wireChunk {
	return wireChunk{"IDAT", []byte{0xCD}}
}

// split sorts refs into the three inputs Assemble takes.
func split(refs []chunk.Ref) (fctls, fdats, idats []chunk.Ref) {
	for _, r := range refs {
		switch r.Type {
		case chunk.TypeFCTL:
			fctls = append(fctls, r)
		case chunk.TypeFDAT:
			fdats = append(fdats, r)
		case chunk.TypeIDAT:
			idats = append(idats, r)
		}
	}
	return
}

func TestAssemble_SimpleTimeline(t *testing.T) {
	buf, refs := stream(fctl(0), fdat(1), fctl(2), fdat(3), fdat(4))
	fctls, fdats, idats := split(refs)

	frames, err := Assemble(bytes.NewReader(buf), fctls, fdats, idats, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("frame count = %d, want 2", len(frames))
	}
	if frames[0].Sequence != 0 || len(frames[0].Data) != 1 {
		t.Fatalf("frame 0 = %+v", frames[0])
	}
	if frames[1].Sequence != 2 || len(frames[1].Data) != 2 {
		t.Fatalf("frame 1 = %+v", frames[1])
	}
}

func TestAssemble_FileOrderNotTrusted(t *testing.T) {
	// The fdAT chunks appear in file order 4, 1, 3 but their sequence
	// numbers put the first one in the last frame.
	buf, refs := stream(fctl(0), fdat(4), fctl(2), fdat(1), fdat(3))
	fctls, fdats, idats := split(refs)

	frames, err := Assemble(bytes.NewReader(buf), fctls, fdats, idats, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("frame count = %d, want 2", len(frames))
	}
	if len(frames[0].Data) != 1 {
		t.Fatalf("frame 0 holds %d data chunks, want 1", len(frames[0].Data))
	}
	if len(frames[1].Data) != 2 {
		t.Fatalf("frame 1 holds %d data chunks, want 2", len(frames[1].Data))
	}
	// Frame 1's data must be seq 3 then seq 4. Seq 3 sits later in the
	// file than seq 4, so playback order inverts file order here.
	if frames[1].Data[0].Pos <= frames[1].Data[1].Pos {
		t.Fatalf("frame 1 data in file order, want sequence order: %+v", frames[1].Data)
	}
}

func TestAssemble_StaticFirstFrame(t *testing.T) {
	// Default image as frame 0: fcTL 0 precedes two IDATs, then two
	// fcTL/fdAT pairs. Three frames, frame 0 holding both IDAT refs.
	buf, refs := stream(
		fctl(0), idat(), idat(),
		fctl(1), fdat(2),
		fctl(3), fdat(4),
	)
	fctls, fdats, idats := split(refs)

	frames, err := Assemble(bytes.NewReader(buf), fctls, fdats, idats, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("frame count = %d, want 3", len(frames))
	}
	if len(frames[0].Data) != 2 {
		t.Fatalf("frame 0 holds %d data chunks, want both IDATs", len(frames[0].Data))
	}
	for _, d := range frames[0].Data {
		if d.Type != chunk.TypeIDAT {
			t.Fatalf("frame 0 holds %s, want IDAT only", d.Type)
		}
	}
	if frames[0].Sequence != 0 || frames[1].Sequence != 1 || frames[2].Sequence != 3 {
		t.Fatalf("sequences = %d, %d, %d", frames[0].Sequence, frames[1].Sequence, frames[2].Sequence)
	}
}

func TestAssemble_DefaultImageNotAFrame(t *testing.T) {
	// The fcTL appears only after the default image's IDAT, so the IDAT
	// stays off the timeline and the fcTL/fdAT pair is the one frame.
	buf, refs := stream(idat(), fctl(0), fdat(1))
	fctls, fdats, idats := split(refs)

	frames, err := Assemble(bytes.NewReader(buf), fctls, fdats, idats, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("frame count = %d, want 1", len(frames))
	}
	if frames[0].Sequence != 0 {
		t.Fatalf("sequence = %d, want 0", frames[0].Sequence)
	}
	if len(frames[0].Data) != 1 || frames[0].Data[0].Type != chunk.TypeFDAT {
		t.Fatalf("frame should hold the one fdAT, got %+v", frames[0].Data)
	}
}

func TestAssemble_OrphanData(t *testing.T) {
	buf, refs := stream(fdat(0), fctl(1))
	fctls, fdats, idats := split(refs)

	_, err := Assemble(bytes.NewReader(buf), fctls, fdats, idats, false)
	if !errors.Is(err, ErrOrphanData) {
		t.Fatalf("expected ErrOrphanData, got %v", err)
	}
}

func TestAssemble_TrailingOpenFrame(t *testing.T) {
	// The last fcTL has no data yet; it is still emitted.
	buf, refs := stream(fctl(0), fdat(1), fctl(2))
	fctls, fdats, idats := split(refs)

	frames, err := Assemble(bytes.NewReader(buf), fctls, fdats, idats, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("frame count = %d, want 2", len(frames))
	}
	if len(frames[1].Data) != 0 {
		t.Fatalf("trailing frame holds %d data chunks, want 0", len(frames[1].Data))
	}
}

func TestAssemble_Empty(t *testing.T) {
	frames, err := Assemble(bytes.NewReader(nil), nil, nil, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 0 {
		t.Fatalf("frame count = %d, want 0", len(frames))
	}
}
