package chunk

import "encoding/binary"

// IHDR is the image header. It is decoded exactly once per container,
// immutable afterward, and consulted as decode context by the
// colour-dependent chunks (tRNS, sBIT, bKGD).
type IHDR struct {
	// Width of the image in pixels.
	Width uint32

	// Height of the image in pixels.
	Height uint32

	// BitDepth is the number of bits per sample or palette index.
	BitDepth uint8

	// Colour is the colour type.
	Colour ColourType

	// Compression is the compression method.
	Compression CompressionMethod

	// Filter is the filter method.
	Filter FilterMethod

	// Interlace is the interlace method.
	Interlace InterlaceMethod
}

func decodeIHDR(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 13 {
		return nil, wrongLength(TypeIHDR, len(payload), "13")
	}

	colour, err := parseColourType(payload[9])
	if err != nil {
		return nil, err
	}
	compression, err := parseCompressionMethod(payload[10])
	if err != nil {
		return nil, err
	}
	filter, err := parseFilterMethod(payload[11])
	if err != nil {
		return nil, err
	}
	interlace, err := parseInterlaceMethod(payload[12])
	if err != nil {
		return nil, err
	}

	return &IHDR{
		Width:       binary.BigEndian.Uint32(payload[0:4]),
		Height:      binary.BigEndian.Uint32(payload[4:8]),
		BitDepth:    payload[8],
		Colour:      colour,
		Compression: compression,
		Filter:      filter,
		Interlace:   interlace,
	}, nil
}

// ChunkType returns TypeIHDR.
func (h *IHDR) ChunkType() TypeCode { return TypeIHDR }

// MarshalPayload returns the 13-byte IHDR payload.
func (h *IHDR) MarshalPayload() ([]byte, error) {
	out := make([]byte, 13)
	binary.BigEndian.PutUint32(out[0:4], h.Width)
	binary.BigEndian.PutUint32(out[4:8], h.Height)
	out[8] = h.BitDepth
	out[9] = uint8(h.Colour)
	out[10] = uint8(h.Compression)
	out[11] = uint8(h.Filter)
	out[12] = uint8(h.Interlace)
	return out, nil
}

// PLTE is the palette: up to 256 RGB entries of 3 bytes each.
type PLTE struct {
	Entries []PaletteEntry
}

func decodePLTE(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload)%3 != 0 {
		return nil, wrongLength(TypePLTE, len(payload), "a multiple of 3")
	}

	entries := make([]PaletteEntry, len(payload)/3)
	for i := range entries {
		entries[i] = PaletteEntry{
			Red:   payload[i*3],
			Green: payload[i*3+1],
			Blue:  payload[i*3+2],
		}
	}
	return &PLTE{Entries: entries}, nil
}

// ChunkType returns TypePLTE.
func (p *PLTE) ChunkType() TypeCode { return TypePLTE }

// MarshalPayload returns the concatenated 3-byte palette entries.
func (p *PLTE) MarshalPayload() ([]byte, error) {
	out := make([]byte, 0, len(p.Entries)*3)
	for _, e := range p.Entries {
		out = append(out, e.Red, e.Green, e.Blue)
	}
	return out, nil
}

// IDAT carries raw, still-compressed image data. Decompression and
// defiltering are the caller's job.
type IDAT struct {
	Data []byte
}

func decodeIDAT(payload []byte, _ *IHDR) (Payload, error) {
	return &IDAT{Data: payload}, nil
}

// ChunkType returns TypeIDAT.
func (d *IDAT) ChunkType() TypeCode { return TypeIDAT }

// MarshalPayload returns the raw compressed data.
func (d *IDAT) MarshalPayload() ([]byte, error) {
	return d.Data, nil
}

// IEND marks the end of the datastream. Its payload is empty.
type IEND struct{}

func decodeIEND(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 0 {
		return nil, wrongLength(TypeIEND, len(payload), "0")
	}
	return &IEND{}, nil
}

// ChunkType returns TypeIEND.
func (e *IEND) ChunkType() TypeCode { return TypeIEND }

// MarshalPayload returns an empty payload.
func (e *IEND) MarshalPayload() ([]byte, error) {
	return nil, nil
}
