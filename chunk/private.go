package chunk

import "encoding/binary"

// IDOTSegment describes one independently decodable band of IDAT rows.
type IDOTSegment struct {
	// StartRow is the first image row of the segment.
	StartRow uint32

	// NumRows is the number of rows in the segment.
	NumRows uint32

	// IDATPosition is the byte offset of the segment within the
	// concatenated IDAT stream.
	IDATPosition uint32
}

// IDOT is Apple's parallel-decoding hint chunk. The declared segment
// count on the wire is ignored; the segments are sized off the chunk
// length instead.
type IDOT struct {
	Segments []IDOTSegment
}

func decodeIDOT(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) < 4 {
		return nil, wrongLength(TypeIDOT, len(payload), "at least 4")
	}
	body := payload[4:]
	if len(body)%12 != 0 {
		return nil, wrongLength(TypeIDOT, len(payload), "4 plus a multiple of 12")
	}

	segments := make([]IDOTSegment, len(body)/12)
	for i := range segments {
		s := body[i*12:]
		segments[i] = IDOTSegment{
			StartRow:     binary.BigEndian.Uint32(s[0:4]),
			NumRows:      binary.BigEndian.Uint32(s[4:8]),
			IDATPosition: binary.BigEndian.Uint32(s[8:12]),
		}
	}
	return &IDOT{Segments: segments}, nil
}

// ChunkType returns TypeIDOT.
func (i *IDOT) ChunkType() TypeCode { return TypeIDOT }

// MarshalPayload returns the segment count followed by the segments.
func (i *IDOT) MarshalPayload() ([]byte, error) {
	out := binary.BigEndian.AppendUint32(make([]byte, 0, 4+len(i.Segments)*12),
		uint32(len(i.Segments)))
	for _, s := range i.Segments {
		out = binary.BigEndian.AppendUint32(out, s.StartRow)
		out = binary.BigEndian.AppendUint32(out, s.NumRows)
		out = binary.BigEndian.AppendUint32(out, s.IDATPosition)
	}
	return out, nil
}

// CANV is ImageMagick's canvas chunk: the full canvas size and the
// image's offset on it.
type CANV struct {
	Width   uint32
	Height  uint32
	XOffset int32
	YOffset int32
}

func decodeCANV(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 16 {
		return nil, wrongLength(TypeCANV, len(payload), "16")
	}
	return &CANV{
		Width:   binary.BigEndian.Uint32(payload[0:4]),
		Height:  binary.BigEndian.Uint32(payload[4:8]),
		XOffset: int32(binary.BigEndian.Uint32(payload[8:12])),
		YOffset: int32(binary.BigEndian.Uint32(payload[12:16])),
	}, nil
}

// ChunkType returns TypeCANV.
func (c *CANV) ChunkType() TypeCode { return TypeCANV }

// MarshalPayload returns the 16-byte caNv payload.
func (c *CANV) MarshalPayload() ([]byte, error) {
	out := binary.BigEndian.AppendUint32(make([]byte, 0, 16), c.Width)
	out = binary.BigEndian.AppendUint32(out, c.Height)
	out = binary.BigEndian.AppendUint32(out, uint32(c.XOffset))
	return binary.BigEndian.AppendUint32(out, uint32(c.YOffset)), nil
}

// VPAG is ImageMagick's virtual page chunk. The unit byte is kept
// verbatim; ImageMagick does not document its values.
type VPAG struct {
	Width  uint32
	Height uint32
	Unit   uint8
}

func decodeVPAG(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 9 {
		return nil, wrongLength(TypeVPAG, len(payload), "9")
	}
	return &VPAG{
		Width:  binary.BigEndian.Uint32(payload[0:4]),
		Height: binary.BigEndian.Uint32(payload[4:8]),
		Unit:   payload[8],
	}, nil
}

// ChunkType returns TypeVPAG.
func (v *VPAG) ChunkType() TypeCode { return TypeVPAG }

// MarshalPayload returns the 9-byte vpAg payload.
func (v *VPAG) MarshalPayload() ([]byte, error) {
	out := binary.BigEndian.AppendUint32(make([]byte, 0, 9), v.Width)
	out = binary.BigEndian.AppendUint32(out, v.Height)
	return append(out, v.Unit), nil
}
