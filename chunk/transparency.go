package chunk

import (
	"encoding/binary"
	"fmt"
)

// TRNS is the transparency chunk. Its shape depends on the IHDR colour
// type: a single grey sample, an RGB sample, or one alpha byte per
// palette entry. Exactly one of the three field groups is meaningful,
// selected by Colour.
type TRNS struct {
	// Colour records which IHDR colour type shaped this payload.
	Colour ColourType

	// Grey is the transparent sample for Greyscale images.
	Grey uint16

	// Red, Green, Blue form the transparent sample for TrueColour images.
	Red, Green, Blue uint16

	// Alphas holds one alpha value per palette entry for IndexedColour
	// images; it may be shorter than the palette.
	Alphas []byte
}

func decodeTRNS(payload []byte, ihdr *IHDR) (Payload, error) {
	if ihdr == nil {
		return nil, fmt.Errorf("%w: tRNS", ErrMissingContext)
	}

	switch ihdr.Colour {
	case Greyscale:
		if len(payload) != 2 {
			return nil, wrongLength(TypeTRNS, len(payload), "2 for greyscale")
		}
		return &TRNS{
			Colour: Greyscale,
			Grey:   binary.BigEndian.Uint16(payload[0:2]),
		}, nil

	case TrueColour:
		if len(payload) != 6 {
			return nil, wrongLength(TypeTRNS, len(payload), "6 for truecolour")
		}
		return &TRNS{
			Colour: TrueColour,
			Red:    binary.BigEndian.Uint16(payload[0:2]),
			Green:  binary.BigEndian.Uint16(payload[2:4]),
			Blue:   binary.BigEndian.Uint16(payload[4:6]),
		}, nil

	case IndexedColour:
		return &TRNS{
			Colour: IndexedColour,
			Alphas: payload,
		}, nil

	default:
		return nil, fmt.Errorf("%w: tRNS not valid for %s images",
			ErrMalformedPayload, ihdr.Colour)
	}
}

// ChunkType returns TypeTRNS.
func (t *TRNS) ChunkType() TypeCode { return TypeTRNS }

// MarshalPayload returns the payload in the shape selected by Colour.
func (t *TRNS) MarshalPayload() ([]byte, error) {
	switch t.Colour {
	case Greyscale:
		return binary.BigEndian.AppendUint16(nil, t.Grey), nil
	case TrueColour:
		out := make([]byte, 0, 6)
		out = binary.BigEndian.AppendUint16(out, t.Red)
		out = binary.BigEndian.AppendUint16(out, t.Green)
		out = binary.BigEndian.AppendUint16(out, t.Blue)
		return out, nil
	case IndexedColour:
		return t.Alphas, nil
	default:
		return nil, fmt.Errorf("%w: tRNS not valid for %s images",
			ErrMalformedPayload, t.Colour)
	}
}
