package pngcontainer

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/deepteams/pngcontainer/chunk"
)

func TestDataReader_Concatenation(t *testing.T) {
	file := concat(
		Signature(KindPng),
		makeChunk("IHDR", grey1x1IHDR),
		makeChunk("IDAT", []byte("first ")),
		makeChunk("IDAT", []byte("second ")),
		makeChunk("IDAT", []byte("third")),
		makeChunk("IEND", nil),
	)
	r, err := NewSeekableReader(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("NewSeekableReader: %v", err)
	}
	refs, err := r.ScanChunksFiltered(func(tc chunk.TypeCode) bool {
		return tc == chunk.TypeIDAT
	})
	if err != nil {
		t.Fatalf("ScanChunksFiltered: %v", err)
	}

	got, err := io.ReadAll(NewDataReader(bytes.NewReader(file), refs))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "first second third" {
		t.Fatalf("datastream = %q, want %q", got, "first second third")
	}
}

func TestDataReader_StripsFdatSequence(t *testing.T) {
	file := concat(
		Signature(KindPng),
		makeChunk("IHDR", grey1x1IHDR),
		makeChunk("IDAT", []byte("base")),
		fdatChunk(1, []byte(" more")),
		makeChunk("IEND", nil),
	)
	r, err := NewSeekableReader(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("NewSeekableReader: %v", err)
	}
	refs, err := r.ScanChunksFiltered(func(tc chunk.TypeCode) bool {
		return tc == chunk.TypeIDAT || tc == chunk.TypeFDAT
	})
	if err != nil {
		t.Fatalf("ScanChunksFiltered: %v", err)
	}

	got, err := io.ReadAll(NewDataReader(bytes.NewReader(file), refs))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "base more" {
		t.Fatalf("datastream = %q, want %q", got, "base more")
	}
}

func TestDataReader_SmallBuffers(t *testing.T) {
	file := concat(
		Signature(KindPng),
		makeChunk("IHDR", grey1x1IHDR),
		makeChunk("IDAT", []byte("abcdef")),
		makeChunk("IDAT", []byte("ghij")),
		makeChunk("IEND", nil),
	)
	r, err := NewSeekableReader(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("NewSeekableReader: %v", err)
	}
	refs, err := r.ScanChunksFiltered(func(tc chunk.TypeCode) bool {
		return tc == chunk.TypeIDAT
	})
	if err != nil {
		t.Fatalf("ScanChunksFiltered: %v", err)
	}

	dr := NewDataReader(bytes.NewReader(file), refs)
	var out []byte
	buf := make([]byte, 3)
	for {
		n, err := dr.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
	}
	if string(out) != "abcdefghij" {
		t.Fatalf("datastream = %q, want abcdefghij", out)
	}
}

func TestDataReader_CorruptChunk(t *testing.T) {
	file := concat(
		Signature(KindPng),
		makeChunk("IHDR", grey1x1IHDR),
		makeChunk("IDAT", []byte("data")),
		makeChunk("IEND", nil),
	)
	r, err := NewSeekableReader(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("NewSeekableReader: %v", err)
	}
	refs, err := r.ScanChunksFiltered(func(tc chunk.TypeCode) bool {
		return tc == chunk.TypeIDAT
	})
	if err != nil {
		t.Fatalf("ScanChunksFiltered: %v", err)
	}

	file[refs[0].Pos+8] ^= 0x01 // corrupt the IDAT payload

	dr := NewDataReader(bytes.NewReader(file), refs)
	if _, err := io.ReadAll(dr); !errors.Is(err, chunk.ErrCRCMismatch) {
		t.Fatalf("expected ErrCRCMismatch, got %v", err)
	}
}

func TestDataReader_NonDataChunk(t *testing.T) {
	file := greyPNG()
	r, err := NewSeekableReader(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("NewSeekableReader: %v", err)
	}
	refs, err := r.ScanAllChunks()
	if err != nil {
		t.Fatalf("ScanAllChunks: %v", err)
	}

	dr := NewDataReader(bytes.NewReader(file), refs[:1]) // the IHDR
	if _, err := io.ReadAll(dr); !errors.Is(err, ErrInvalidChunkType) {
		t.Fatalf("expected ErrInvalidChunkType, got %v", err)
	}
}

func TestDataReader_Empty(t *testing.T) {
	dr := NewDataReader(bytes.NewReader(nil), nil)
	got, err := io.ReadAll(dr)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("read %d bytes from empty datastream", len(got))
	}
}

func TestDataReader_ForgedLength(t *testing.T) {
	// A length near the uint32 maximum must be rejected outright; the
	// buffer size arithmetic must not wrap.
	ref := chunk.Ref{Pos: 0, Length: 0xFFFFFFFE, Type: chunk.TypeIDAT}
	dr := NewDataReader(bytes.NewReader(make([]byte, 16)), []chunk.Ref{ref})
	if _, err := io.ReadAll(dr); !errors.Is(err, chunk.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}
