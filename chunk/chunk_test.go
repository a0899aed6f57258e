package chunk

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
	"reflect"
	"testing"
)

// makeChunk builds a complete wire chunk: length, type code, payload, CRC.
func makeChunk(typ string, payload []byte) []byte {
	out := binary.BigEndian.AppendUint32(nil, uint32(len(payload)))
	out = append(out, typ...)
	out = append(out, payload...)
	crc := crc32.Update(0, crc32.IEEETable, []byte(typ))
	crc = crc32.Update(crc, crc32.IEEETable, payload)
	return binary.BigEndian.AppendUint32(out, crc)
}

// decodeWire scans and decodes a single wire chunk from raw.
func decodeWire(t *testing.T, raw []byte, ihdr *IHDR) (Payload, error) {
	t.Helper()
	r := bytes.NewReader(raw)
	ref, err := ScanRef(r, 0)
	if err != nil {
		t.Fatalf("ScanRef: %v", err)
	}
	return Decode(r, ref, ihdr)
}

func grey8IHDR() *IHDR {
	return &IHDR{Width: 1, Height: 1, BitDepth: 8, Colour: Greyscale}
}

func TestScanRef(t *testing.T) {
	raw := makeChunk("gAMA", []byte{0, 1, 134, 160})
	ref, err := ScanRef(bytes.NewReader(raw), 33)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Pos != 33 {
		t.Fatalf("pos = %d, want 33", ref.Pos)
	}
	if ref.Length != 4 {
		t.Fatalf("length = %d, want 4", ref.Length)
	}
	if ref.Type != TypeGAMA {
		t.Fatalf("type = %s, want gAMA", ref.Type)
	}
	if ref.WireSize() != 16 {
		t.Fatalf("wire size = %d, want 16", ref.WireSize())
	}
}

func TestScanRef_Truncated(t *testing.T) {
	_, err := ScanRef(bytes.NewReader([]byte{0, 0, 0}), 0)
	if err == nil {
		t.Fatal("expected error for truncated header")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected wrapped io error, got %v", err)
	}
}

func TestTypeCode_PropertyBits(t *testing.T) {
	tests := []struct {
		typ                                    TypeCode
		ancillary, private, reserved, safeCopy bool
	}{
		{TypeIHDR, false, false, false, false},
		{TypeTRNS, true, false, false, false},
		{TypeTEXT, true, false, false, true},
		{TypePHYS, true, false, false, true},
		{TypeCANV, true, true, false, true},
		{TypeVPAG, true, true, false, true},
		{TypeIDOT, true, false, false, false},
	}
	for _, tt := range tests {
		if got := tt.typ.Ancillary(); got != tt.ancillary {
			t.Errorf("%s.Ancillary() = %v, want %v", tt.typ, got, tt.ancillary)
		}
		if got := tt.typ.Private(); got != tt.private {
			t.Errorf("%s.Private() = %v, want %v", tt.typ, got, tt.private)
		}
		if got := tt.typ.Reserved(); got != tt.reserved {
			t.Errorf("%s.Reserved() = %v, want %v", tt.typ, got, tt.reserved)
		}
		if got := tt.typ.SafeToCopy(); got != tt.safeCopy {
			t.Errorf("%s.SafeToCopy() = %v, want %v", tt.typ, got, tt.safeCopy)
		}
	}
}

func TestDecode_CRCMismatch(t *testing.T) {
	raw := makeChunk("gAMA", []byte{0, 1, 134, 160})
	raw[9] ^= 0x01 // flip one payload bit

	_, err := decodeWire(t, raw, nil)
	if !errors.Is(err, ErrCRCMismatch) {
		t.Fatalf("expected ErrCRCMismatch, got %v", err)
	}
}

func TestDecode_CRCMismatchBeatsUnknownType(t *testing.T) {
	// A corrupted chunk of an unregistered type must report corruption,
	// not unknown type.
	raw := makeChunk("myTe", []byte("private data"))
	raw[len(raw)-1] ^= 0xFF

	_, err := decodeWire(t, raw, nil)
	if !errors.Is(err, ErrCRCMismatch) {
		t.Fatalf("expected ErrCRCMismatch, got %v", err)
	}
}

func TestDecode_UnknownType(t *testing.T) {
	raw := makeChunk("myTe", []byte("private data"))
	_, err := decodeWire(t, raw, nil)
	if !errors.Is(err, ErrUnknownChunkType) {
		t.Fatalf("expected ErrUnknownChunkType, got %v", err)
	}
}

func TestDecode_TruncatedPayload(t *testing.T) {
	raw := makeChunk("gAMA", []byte{0, 1, 134, 160})
	_, err := decodeWire(t, raw[:10], nil)
	if err == nil {
		t.Fatal("expected error for truncated payload")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected wrapped io error, got %v", err)
	}
}

func TestRegistered(t *testing.T) {
	if !Registered(TypeIHDR) {
		t.Error("IHDR should be registered")
	}
	if Registered(TypeFRAC) {
		t.Error("fRAc has no decoder and should not be registered")
	}
	if Registered(TypeCode{'m', 'y', 'T', 'e'}) {
		t.Error("arbitrary type should not be registered")
	}
}

func TestEncodeChunk_Wire(t *testing.T) {
	raw, err := EncodeChunk(&GAMA{Value: 100000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := makeChunk("gAMA", []byte{0, 1, 134, 160})
	if !bytes.Equal(raw, want) {
		t.Fatalf("wire bytes = % x, want % x", raw, want)
	}
}

func TestEncodeChunk_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		ihdr    *IHDR
	}{
		{"IHDR", &IHDR{Width: 640, Height: 480, BitDepth: 8, Colour: TrueColourAlpha}, nil},
		{"PLTE", &PLTE{Entries: []PaletteEntry{{1, 2, 3}, {4, 5, 6}}}, nil},
		{"IEND", &IEND{}, nil},
		{"tRNS greyscale", &TRNS{Colour: Greyscale, Grey: 1234}, grey8IHDR()},
		{"gAMA", &GAMA{Value: 45455}, nil},
		{"cHRM", &CHRM{WhiteX: 31270, WhiteY: 32900, RedX: 64000, RedY: 33000,
			GreenX: 30000, GreenY: 60000, BlueX: 15000, BlueY: 6000}, nil},
		{"sRGB", &SRGB{Intent: IntentPerceptual}, nil},
		{"tEXt", &TEXT{Keyword: "Title", Value: "a test image"}, nil},
		{"bKGD indexed", &BKGD{Colour: IndexedColour, Index: 7},
			&IHDR{Width: 1, Height: 1, BitDepth: 8, Colour: IndexedColour}},
		{"hIST", &HIST{Frequencies: []uint16{5, 0, 9}}, nil},
		{"pHYs", &PHYS{XPixelsPerUnit: 2835, YPixelsPerUnit: 2835, Unit: UnitMetre}, nil},
		{"tIME", &TIME{Year: 2026, Month: 8, Day: 29, Hour: 12, Minute: 30, Second: 5}, nil},
		{"acTL", &ACTL{NumFrames: 3, NumPlays: 0}, nil},
		{"fcTL", &FCTL{Sequence: 2, Width: 16, Height: 16, XOffset: 4, YOffset: 4,
			DelayNumerator: 1, DelayDenominator: 10, Dispose: DisposeBackground,
			Blend: BlendOver}, nil},
		{"fdAT", &FDAT{Sequence: 3, Data: []byte{1, 2, 3, 4}}, nil},
		{"oFFs", &OFFS{X: -10, Y: 20, Unit: OffsetMicrometres}, nil},
		{"sTER", &STER{Mode: StereoDivergingFuse}, nil},
		{"gIFg", &GIFG{Disposal: 1, UserInput: 0, Delay: 50}, nil},
		{"eXIf", &EXIF{Profile: []byte{0x4D, 0x4D, 0, 42}}, nil},
		{"JHDR", &JHDR{Width: 320, Height: 240, Colour: JNGColourAlpha,
			ImageSampleDepth: JNGDepth8, ImageCompression: JNGCompressionJPEG,
			AlphaSampleDepth: 8, AlphaCompression: JNGCompressionPNG}, nil},
		{"JSEP", &JSEP{}, nil},
		{"iDOT", &IDOT{Segments: []IDOTSegment{{0, 100, 41}, {100, 100, 20000}}}, nil},
		{"caNv", &CANV{Width: 800, Height: 600, XOffset: -5, YOffset: 12}, nil},
		{"vpAg", &VPAG{Width: 800, Height: 600, Unit: 0}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := EncodeChunk(tt.payload)
			if err != nil {
				t.Fatalf("EncodeChunk: %v", err)
			}
			got, err := decodeWire(t, raw, tt.ihdr)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(got, tt.payload) {
				t.Fatalf("round trip changed payload:\n got %#v\nwant %#v", got, tt.payload)
			}
		})
	}
}
