package chunk

import (
	"encoding/binary"
	"fmt"
)

// BKGD is the default background colour. Its shape depends on the IHDR
// colour type: a grey sample, an RGB sample, or a palette index.
type BKGD struct {
	// Colour records which IHDR colour type shaped this payload.
	Colour ColourType

	// Grey is the background sample for greyscale images.
	Grey uint16

	// Red, Green, Blue form the background sample for truecolour images.
	Red, Green, Blue uint16

	// Index is the palette index for indexed images.
	Index uint8
}

func decodeBKGD(payload []byte, ihdr *IHDR) (Payload, error) {
	if ihdr == nil {
		return nil, fmt.Errorf("%w: bKGD", ErrMissingContext)
	}

	switch ihdr.Colour {
	case Greyscale, GreyscaleAlpha:
		if len(payload) != 2 {
			return nil, wrongLength(TypeBKGD, len(payload), "2 for greyscale")
		}
		return &BKGD{
			Colour: ihdr.Colour,
			Grey:   binary.BigEndian.Uint16(payload[0:2]),
		}, nil

	case TrueColour, TrueColourAlpha:
		if len(payload) != 6 {
			return nil, wrongLength(TypeBKGD, len(payload), "6 for truecolour")
		}
		return &BKGD{
			Colour: ihdr.Colour,
			Red:    binary.BigEndian.Uint16(payload[0:2]),
			Green:  binary.BigEndian.Uint16(payload[2:4]),
			Blue:   binary.BigEndian.Uint16(payload[4:6]),
		}, nil

	case IndexedColour:
		if len(payload) != 1 {
			return nil, wrongLength(TypeBKGD, len(payload), "1 for indexed")
		}
		return &BKGD{Colour: IndexedColour, Index: payload[0]}, nil

	default:
		return nil, fmt.Errorf("%w: bKGD not valid for %s images",
			ErrMalformedPayload, ihdr.Colour)
	}
}

// ChunkType returns TypeBKGD.
func (b *BKGD) ChunkType() TypeCode { return TypeBKGD }

// MarshalPayload returns the payload in the shape selected by Colour.
func (b *BKGD) MarshalPayload() ([]byte, error) {
	switch b.Colour {
	case Greyscale, GreyscaleAlpha:
		return binary.BigEndian.AppendUint16(nil, b.Grey), nil
	case TrueColour, TrueColourAlpha:
		out := make([]byte, 0, 6)
		out = binary.BigEndian.AppendUint16(out, b.Red)
		out = binary.BigEndian.AppendUint16(out, b.Green)
		out = binary.BigEndian.AppendUint16(out, b.Blue)
		return out, nil
	case IndexedColour:
		return []byte{b.Index}, nil
	default:
		return nil, fmt.Errorf("%w: bKGD not valid for %s images",
			ErrMalformedPayload, b.Colour)
	}
}

// HIST is the palette histogram: one 16-bit frequency per palette entry.
type HIST struct {
	Frequencies []uint16
}

func decodeHIST(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload)%2 != 0 {
		return nil, wrongLength(TypeHIST, len(payload), "a multiple of 2")
	}

	freqs := make([]uint16, len(payload)/2)
	for i := range freqs {
		freqs[i] = binary.BigEndian.Uint16(payload[i*2 : i*2+2])
	}
	return &HIST{Frequencies: freqs}, nil
}

// ChunkType returns TypeHIST.
func (h *HIST) ChunkType() TypeCode { return TypeHIST }

// MarshalPayload returns the concatenated 16-bit frequencies.
func (h *HIST) MarshalPayload() ([]byte, error) {
	out := make([]byte, 0, len(h.Frequencies)*2)
	for _, f := range h.Frequencies {
		out = binary.BigEndian.AppendUint16(out, f)
	}
	return out, nil
}

// PHYS is the intended physical pixel size or aspect ratio.
type PHYS struct {
	// XPixelsPerUnit and YPixelsPerUnit are the pixel densities.
	XPixelsPerUnit uint32
	YPixelsPerUnit uint32

	// Unit is UnitMetre for absolute densities, UnitUnknown for a ratio.
	Unit UnitType
}

func decodePHYS(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 9 {
		return nil, wrongLength(TypePHYS, len(payload), "9")
	}
	unit, err := parseUnitType(payload[8])
	if err != nil {
		return nil, err
	}
	return &PHYS{
		XPixelsPerUnit: binary.BigEndian.Uint32(payload[0:4]),
		YPixelsPerUnit: binary.BigEndian.Uint32(payload[4:8]),
		Unit:           unit,
	}, nil
}

// ChunkType returns TypePHYS.
func (p *PHYS) ChunkType() TypeCode { return TypePHYS }

// MarshalPayload returns the 9-byte pHYs payload.
func (p *PHYS) MarshalPayload() ([]byte, error) {
	out := binary.BigEndian.AppendUint32(nil, p.XPixelsPerUnit)
	out = binary.BigEndian.AppendUint32(out, p.YPixelsPerUnit)
	return append(out, uint8(p.Unit)), nil
}

// PixelsPerMetre returns the pixel density when the unit is metres. ok is
// false when the chunk only defines an aspect ratio.
func (p *PHYS) PixelsPerMetre() (x, y float64, ok bool) {
	if p.Unit != UnitMetre {
		return 0, 0, false
	}
	return float64(p.XPixelsPerUnit), float64(p.YPixelsPerUnit), true
}

// SPLT is a suggested palette: a name, a sample depth, and entries whose
// wire width depends on the depth (6 bytes at depth 8, 10 bytes at 16).
type SPLT struct {
	Name    string
	Depth   uint8
	Entries []SuggestedPaletteEntry
}

func decodeSPLT(payload []byte, _ *IHDR) (Payload, error) {
	nameEnd := findNull(payload)
	if nameEnd+2 > len(payload) {
		return nil, wrongLength(TypeSPLT, len(payload), "name, depth, and entries")
	}
	depth := payload[nameEnd+1]
	if depth != 8 && depth != 16 {
		return nil, fmt.Errorf("%w: invalid sPLT sample depth %d", ErrMalformedPayload, depth)
	}

	entrySize := 6
	if depth == 16 {
		entrySize = 10
	}
	body := payload[nameEnd+2:]
	if len(body)%entrySize != 0 {
		return nil, fmt.Errorf("%w: sPLT entry bytes %d not divisible by entry size %d",
			ErrMalformedPayload, len(body), entrySize)
	}

	entries := make([]SuggestedPaletteEntry, len(body)/entrySize)
	for i := range entries {
		e := body[i*entrySize:]
		if depth == 8 {
			entries[i] = SuggestedPaletteEntry{
				Red:       uint16(e[0]),
				Green:     uint16(e[1]),
				Blue:      uint16(e[2]),
				Alpha:     uint16(e[3]),
				Frequency: binary.BigEndian.Uint16(e[4:6]),
			}
		} else {
			entries[i] = SuggestedPaletteEntry{
				Red:       binary.BigEndian.Uint16(e[0:2]),
				Green:     binary.BigEndian.Uint16(e[2:4]),
				Blue:      binary.BigEndian.Uint16(e[4:6]),
				Alpha:     binary.BigEndian.Uint16(e[6:8]),
				Frequency: binary.BigEndian.Uint16(e[8:10]),
			}
		}
	}
	return &SPLT{
		Name:    string(payload[:nameEnd]),
		Depth:   depth,
		Entries: entries,
	}, nil
}

// ChunkType returns TypeSPLT.
func (s *SPLT) ChunkType() TypeCode { return TypeSPLT }

// MarshalPayload returns name NUL depth entries, with the entry width
// selected by Depth.
func (s *SPLT) MarshalPayload() ([]byte, error) {
	if s.Depth != 8 && s.Depth != 16 {
		return nil, fmt.Errorf("%w: invalid sPLT sample depth %d", ErrMalformedPayload, s.Depth)
	}

	entrySize := 6
	if s.Depth == 16 {
		entrySize = 10
	}
	out := make([]byte, 0, len(s.Name)+2+len(s.Entries)*entrySize)
	out = append(out, s.Name...)
	out = append(out, 0, s.Depth)
	for _, e := range s.Entries {
		if s.Depth == 8 {
			out = append(out, uint8(e.Red), uint8(e.Green), uint8(e.Blue), uint8(e.Alpha))
		} else {
			out = binary.BigEndian.AppendUint16(out, e.Red)
			out = binary.BigEndian.AppendUint16(out, e.Green)
			out = binary.BigEndian.AppendUint16(out, e.Blue)
			out = binary.BigEndian.AppendUint16(out, e.Alpha)
		}
		out = binary.BigEndian.AppendUint16(out, e.Frequency)
	}
	return out, nil
}

// EXIF carries an Exif profile verbatim.
type EXIF struct {
	Profile []byte
}

func decodeEXIF(payload []byte, _ *IHDR) (Payload, error) {
	return &EXIF{Profile: payload}, nil
}

// ChunkType returns TypeEXIF.
func (e *EXIF) ChunkType() TypeCode { return TypeEXIF }

// MarshalPayload returns the raw profile bytes.
func (e *EXIF) MarshalPayload() ([]byte, error) {
	return e.Profile, nil
}
