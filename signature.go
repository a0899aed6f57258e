package pngcontainer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Errors returned by the readers.
var (
	// ErrBadSignature means the first eight bytes match none of the
	// known container signatures.
	ErrBadSignature = errors.New("png: bad file signature")

	// ErrUnsupported means the container was recognized but cannot be
	// scanned. MNG streams are recognized by signature only.
	ErrUnsupported = errors.New("png: unsupported container")

	// ErrInvalidChunkType means a chunk type that is never valid in
	// this container kind was encountered, such as JDAT inside a PNG.
	ErrInvalidChunkType = errors.New("png: chunk type not valid for this container")

	// ErrNotSeekable means the operation needs to move backwards over a
	// forward-only stream.
	ErrNotSeekable = errors.New("png: stream is not seekable")
)

// FileKind identifies which container a stream holds.
type FileKind uint8

const (
	// KindPng is a still PNG stream.
	KindPng FileKind = iota
	// KindApng is a PNG stream in which animation chunks were observed.
	// A reader starts at KindPng and switches when it sees one.
	KindApng
	// KindMng is an MNG stream, recognized by signature only.
	KindMng
	// KindJng is a JNG stream.
	KindJng
)

// String returns the conventional name of the container kind.
func (k FileKind) String() string {
	switch k {
	case KindPng:
		return "PNG"
	case KindApng:
		return "APNG"
	case KindMng:
		return "MNG"
	case KindJng:
		return "JNG"
	}
	return fmt.Sprintf("FileKind(%d)", uint8(k))
}

// The three container signatures. APNG has no signature of its own; it
// shares PNG's and is detected from its chunks.
var (
	pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	mngSignature = []byte{0x8A, 'M', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	jngSignature = []byte{0x8B, 'J', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
)

// SignatureLength is the size of every container signature in bytes.
const SignatureLength = 8

// SniffSignature classifies an 8-byte signature. Anything unrecognized
// returns ErrBadSignature.
func SniffSignature(sig []byte) (FileKind, error) {
	switch {
	case bytes.Equal(sig, pngSignature):
		return KindPng, nil
	case bytes.Equal(sig, mngSignature):
		return KindMng, nil
	case bytes.Equal(sig, jngSignature):
		return KindJng, nil
	}
	return 0, fmt.Errorf("%w: % x", ErrBadSignature, sig)
}

// Signature returns the 8-byte signature written at the start of a
// container of the given kind. KindApng shares KindPng's signature.
func Signature(kind FileKind) []byte {
	sig := pngSignature
	switch kind {
	case KindMng:
		sig = mngSignature
	case KindJng:
		sig = jngSignature
	}
	return append([]byte(nil), sig...)
}

func readSignature(r io.Reader) (FileKind, error) {
	var sig [SignatureLength]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return 0, fmt.Errorf("png: reading signature: %w", err)
	}
	return SniffSignature(sig[:])
}
