// Package chunk implements the chunk-level codec for the PNG family of
// container formats (PNG, APNG, JNG): the type-code catalogue, payload
// decoding and re-encoding, and the CRC-32 protection every chunk carries.
//
// A chunk on the wire is a 4-byte big-endian payload length, a 4-byte
// ASCII type code, the payload, and a 4-byte big-endian CRC-32 computed
// over the type code and payload. ScanRef reads just the framing into a
// cheap Ref; Decode materializes a Ref into a typed Payload and verifies
// the CRC; EncodeChunk is the exact inverse.
package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Errors reported by the chunk codec.
var (
	// ErrCRCMismatch means a chunk's trailer did not match the CRC computed
	// over its type code and payload. Treated as corruption, never tolerated.
	ErrCRCMismatch = errors.New("png: chunk CRC mismatch")

	// ErrUnknownChunkType means the chunk sits at a legal position but no
	// decoder is registered for its type code. Callers may skip such chunks.
	ErrUnknownChunkType = errors.New("png: unrecognized chunk type")

	// ErrMissingContext means a colour-dependent chunk (tRNS, sBIT, bKGD)
	// was decoded before the IHDR that determines its shape.
	ErrMissingContext = errors.New("png: chunk requires IHDR context")

	// ErrMalformedPayload means the declared chunk length is inconsistent
	// with the structure the type code requires.
	ErrMalformedPayload = errors.New("png: malformed chunk payload")
)

// TypeCode is a chunk's 4-byte ASCII type code. The case of each letter
// carries a property bit (0x20): ancillary, private, reserved, safe-to-copy.
type TypeCode [4]byte

// Registered chunk type codes.
var (
	// Critical chunks.
	TypeIHDR = TypeCode{'I', 'H', 'D', 'R'}
	TypePLTE = TypeCode{'P', 'L', 'T', 'E'}
	TypeIDAT = TypeCode{'I', 'D', 'A', 'T'}
	TypeIEND = TypeCode{'I', 'E', 'N', 'D'}

	// Transparency.
	TypeTRNS = TypeCode{'t', 'R', 'N', 'S'}

	// Colour space.
	TypeCHRM = TypeCode{'c', 'H', 'R', 'M'}
	TypeGAMA = TypeCode{'g', 'A', 'M', 'A'}
	TypeICCP = TypeCode{'i', 'C', 'C', 'P'}
	TypeSBIT = TypeCode{'s', 'B', 'I', 'T'}
	TypeSRGB = TypeCode{'s', 'R', 'G', 'B'}
	TypeCICP = TypeCode{'c', 'I', 'C', 'P'}
	TypeMDCV = TypeCode{'m', 'D', 'C', 'V'}
	TypeCLLI = TypeCode{'c', 'L', 'L', 'I'}

	// Text.
	TypeTEXT = TypeCode{'t', 'E', 'X', 't'}
	TypeZTXT = TypeCode{'z', 'T', 'X', 't'}
	TypeITXT = TypeCode{'i', 'T', 'X', 't'}

	// Miscellaneous.
	TypeBKGD = TypeCode{'b', 'K', 'G', 'D'}
	TypeHIST = TypeCode{'h', 'I', 'S', 'T'}
	TypePHYS = TypeCode{'p', 'H', 'Y', 's'}
	TypeSPLT = TypeCode{'s', 'P', 'L', 'T'}
	TypeEXIF = TypeCode{'e', 'X', 'I', 'f'}
	TypeTIME = TypeCode{'t', 'I', 'M', 'E'}

	// Animation (APNG).
	TypeACTL = TypeCode{'a', 'c', 'T', 'L'}
	TypeFCTL = TypeCode{'f', 'c', 'T', 'L'}
	TypeFDAT = TypeCode{'f', 'd', 'A', 'T'}

	// Registered extensions.
	TypeOFFS = TypeCode{'o', 'F', 'F', 's'}
	TypePCAL = TypeCode{'p', 'C', 'A', 'L'}
	TypeSCAL = TypeCode{'s', 'C', 'A', 'L'}
	TypeGIFG = TypeCode{'g', 'I', 'F', 'g'}
	TypeGIFX = TypeCode{'g', 'I', 'F', 'x'}
	TypeSTER = TypeCode{'s', 'T', 'E', 'R'}
	TypeFRAC = TypeCode{'f', 'R', 'A', 'c'}

	// JNG chunks.
	TypeJHDR = TypeCode{'J', 'H', 'D', 'R'}
	TypeJDAT = TypeCode{'J', 'D', 'A', 'T'}
	TypeJDAA = TypeCode{'J', 'D', 'A', 'A'}
	TypeJSEP = TypeCode{'J', 'S', 'E', 'P'}

	// Vendor-private chunks.
	TypeIDOT = TypeCode{'i', 'D', 'O', 'T'}
	TypeCANV = TypeCode{'c', 'a', 'N', 'v'}
	TypeVPAG = TypeCode{'v', 'p', 'A', 'g'}
)

// String returns the type code as a 4-character string.
func (t TypeCode) String() string {
	return string(t[:])
}

// Ancillary reports whether the chunk is non-essential for decoding
// (lower-case first letter of the type code).
func (t TypeCode) Ancillary() bool {
	return t[0]&0x20 != 0
}

// Private reports whether the chunk type is privately defined
// (lower-case second letter).
func (t TypeCode) Private() bool {
	return t[1]&0x20 != 0
}

// Reserved reports the reserved property bit (lower-case third letter).
// All registered chunks have this clear.
func (t TypeCode) Reserved() bool {
	return t[2]&0x20 != 0
}

// SafeToCopy reports whether the chunk may be copied to a modified
// datastream without processing (lower-case fourth letter).
func (t TypeCode) SafeToCopy() bool {
	return t[3]&0x20 != 0
}

// Ref is a cheap reference to a chunk in a stream: where it starts, how
// long its payload is, and what type it is. It holds no payload bytes and
// does not own the stream; it stays valid for re-decode as long as an
// equivalent stream can be repositioned to Pos.
type Ref struct {
	// Pos is the absolute stream offset of the chunk's length field.
	Pos int64

	// Length is the payload length in bytes.
	Length uint32

	// Type is the 4-byte chunk type code.
	Type TypeCode
}

// WireSize returns the total chunk size on the wire: length field, type
// code, payload, and CRC trailer.
func (r Ref) WireSize() int64 {
	return 4 + 4 + int64(r.Length) + 4
}

// ScanRef reads the 4-byte length and 4-byte type code at the stream's
// current position and returns a Ref, without consuming the payload or
// CRC trailer. pos is the absolute offset of the length field.
func ScanRef(r io.Reader, pos int64) (Ref, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Ref{}, fmt.Errorf("png: scanning chunk at %d: %w", pos, err)
	}

	ref := Ref{
		Pos:    pos,
		Length: binary.BigEndian.Uint32(hdr[0:4]),
	}
	copy(ref.Type[:], hdr[4:8])
	return ref, nil
}

// ReadSequence reads just the 4-byte sequence number of an fcTL or fdAT
// chunk, seeking to the start of its payload. The sequence number is the
// authoritative playback-order key; file order may differ.
func (r Ref) ReadSequence(rs io.ReadSeeker) (uint32, error) {
	if r.Type != TypeFCTL && r.Type != TypeFDAT {
		return 0, fmt.Errorf("png: chunk %s carries no sequence number", r.Type)
	}
	if _, err := rs.Seek(r.Pos+8, io.SeekStart); err != nil {
		return 0, fmt.Errorf("png: seeking to %s payload: %w", r.Type, err)
	}
	var buf [4]byte
	if _, err := io.ReadFull(rs, buf[:]); err != nil {
		return 0, fmt.Errorf("png: reading %s sequence number: %w", r.Type, err)
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// Payload is a decoded chunk payload. Each catalogue variant implements it.
type Payload interface {
	// ChunkType returns the variant's 4-byte type code.
	ChunkType() TypeCode

	// MarshalPayload returns the wire payload bytes, the exact inverse of
	// the variant's decode.
	MarshalPayload() ([]byte, error)
}

// decoders maps a type code to its payload parser. Entries receive the
// full payload (CRC already verified) and the decoded IHDR, which is nil
// until the header chunk has been seen.
var decoders = map[TypeCode]func(payload []byte, ihdr *IHDR) (Payload, error){
	TypeIHDR: decodeIHDR,
	TypePLTE: decodePLTE,
	TypeIDAT: decodeIDAT,
	TypeIEND: decodeIEND,
	TypeTRNS: decodeTRNS,
	TypeCHRM: decodeCHRM,
	TypeGAMA: decodeGAMA,
	TypeICCP: decodeICCP,
	TypeSBIT: decodeSBIT,
	TypeSRGB: decodeSRGB,
	TypeCICP: decodeCICP,
	TypeMDCV: decodeMDCV,
	TypeCLLI: decodeCLLI,
	TypeTEXT: decodeTEXT,
	TypeZTXT: decodeZTXT,
	TypeITXT: decodeITXT,
	TypeBKGD: decodeBKGD,
	TypeHIST: decodeHIST,
	TypePHYS: decodePHYS,
	TypeSPLT: decodeSPLT,
	TypeEXIF: decodeEXIF,
	TypeTIME: decodeTIME,
	TypeACTL: decodeACTL,
	TypeFCTL: decodeFCTL,
	TypeFDAT: decodeFDAT,
	TypeOFFS: decodeOFFS,
	TypePCAL: decodePCAL,
	TypeSCAL: decodeSCAL,
	TypeGIFG: decodeGIFG,
	TypeGIFX: decodeGIFX,
	TypeSTER: decodeSTER,
	TypeJHDR: decodeJHDR,
	TypeJDAT: decodeJDAT,
	TypeJDAA: decodeJDAA,
	TypeJSEP: decodeJSEP,
	TypeIDOT: decodeIDOT,
	TypeCANV: decodeCANV,
	TypeVPAG: decodeVPAG,
}

// Registered reports whether a decoder exists for the given type code.
func Registered(t TypeCode) bool {
	_, ok := decoders[t]
	return ok
}

// Decode reads a chunk's payload and CRC trailer from r, which must be
// positioned at the start of the payload (just past the length and type
// fields ScanRef consumed). The CRC is verified for every chunk, known or
// not; only then is the payload parsed. ihdr supplies decode context for
// colour-dependent chunks and may be nil before the header has been seen.
func Decode(r io.Reader, ref Ref, ihdr *IHDR) (Payload, error) {
	payload := make([]byte, ref.Length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("png: reading %s payload: %w", ref.Type, err)
	}

	var trailer [4]byte
	if _, err := io.ReadFull(r, trailer[:]); err != nil {
		return nil, fmt.Errorf("png: reading %s CRC: %w", ref.Type, err)
	}
	want := binary.BigEndian.Uint32(trailer[:])
	if got := crcOf(ref.Type, payload); got != want {
		return nil, fmt.Errorf("%w: %s computed %#08x, trailer %#08x",
			ErrCRCMismatch, ref.Type, got, want)
	}

	dec, ok := decoders[ref.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChunkType, ref.Type)
	}
	return dec(payload, ihdr)
}

// EncodeChunk serializes a payload as a complete wire chunk: length, type
// code, payload bytes, and a freshly computed CRC trailer.
func EncodeChunk(p Payload) ([]byte, error) {
	payload, err := p.MarshalPayload()
	if err != nil {
		return nil, err
	}

	t := p.ChunkType()
	out := make([]byte, 8, 12+len(payload))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(payload)))
	copy(out[4:8], t[:])
	out = append(out, payload...)
	out = binary.BigEndian.AppendUint32(out, crcOf(t, payload))
	return out, nil
}

// findNull returns the index of the first NUL byte in b, or len(b) when
// there is none. Keyword and string sub-fields with a missing terminator
// are tolerated by treating the payload end as the terminator.
func findNull(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return len(b)
}

// wrongLength builds the standard MalformedPayload error for a chunk whose
// declared length does not fit its required structure.
func wrongLength(t TypeCode, got int, want string) error {
	return fmt.Errorf("%w: %s length %d, want %s", ErrMalformedPayload, t, got, want)
}
