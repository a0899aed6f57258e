package chunk

import (
	"encoding/binary"
	"time"
)

// ACTL is the animation control chunk. Its presence marks a PNG stream as
// animated.
type ACTL struct {
	// NumFrames is the number of frames in the animation.
	NumFrames uint32

	// NumPlays is the loop count; zero means loop forever.
	NumPlays uint32
}

func decodeACTL(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 8 {
		return nil, wrongLength(TypeACTL, len(payload), "8")
	}
	return &ACTL{
		NumFrames: binary.BigEndian.Uint32(payload[0:4]),
		NumPlays:  binary.BigEndian.Uint32(payload[4:8]),
	}, nil
}

// ChunkType returns TypeACTL.
func (a *ACTL) ChunkType() TypeCode { return TypeACTL }

// MarshalPayload returns the 8-byte acTL payload.
func (a *ACTL) MarshalPayload() ([]byte, error) {
	out := binary.BigEndian.AppendUint32(nil, a.NumFrames)
	return binary.BigEndian.AppendUint32(out, a.NumPlays), nil
}

// FCTL is a frame control chunk, describing the region, timing, and
// compositing behaviour of one animation frame.
type FCTL struct {
	// Sequence orders this chunk among all fcTL and fdAT chunks.
	Sequence uint32

	// Width and Height give the frame region size in pixels.
	Width  uint32
	Height uint32

	// XOffset and YOffset position the region on the canvas.
	XOffset uint32
	YOffset uint32

	// DelayNumerator over DelayDenominator is the display time in
	// seconds. A zero denominator is read as 100.
	DelayNumerator   uint16
	DelayDenominator uint16

	// Dispose says what to do with the region after the frame is shown.
	Dispose DisposeOp

	// Blend says how the frame's pixels combine with the canvas.
	Blend BlendOp
}

func decodeFCTL(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 26 {
		return nil, wrongLength(TypeFCTL, len(payload), "26")
	}
	dispose, err := parseDisposeOp(payload[24])
	if err != nil {
		return nil, err
	}
	blend, err := parseBlendOp(payload[25])
	if err != nil {
		return nil, err
	}
	return &FCTL{
		Sequence:         binary.BigEndian.Uint32(payload[0:4]),
		Width:            binary.BigEndian.Uint32(payload[4:8]),
		Height:           binary.BigEndian.Uint32(payload[8:12]),
		XOffset:          binary.BigEndian.Uint32(payload[12:16]),
		YOffset:          binary.BigEndian.Uint32(payload[16:20]),
		DelayNumerator:   binary.BigEndian.Uint16(payload[20:22]),
		DelayDenominator: binary.BigEndian.Uint16(payload[22:24]),
		Dispose:          dispose,
		Blend:            blend,
	}, nil
}

// ChunkType returns TypeFCTL.
func (f *FCTL) ChunkType() TypeCode { return TypeFCTL }

// MarshalPayload returns the 26-byte fcTL payload.
func (f *FCTL) MarshalPayload() ([]byte, error) {
	out := binary.BigEndian.AppendUint32(nil, f.Sequence)
	out = binary.BigEndian.AppendUint32(out, f.Width)
	out = binary.BigEndian.AppendUint32(out, f.Height)
	out = binary.BigEndian.AppendUint32(out, f.XOffset)
	out = binary.BigEndian.AppendUint32(out, f.YOffset)
	out = binary.BigEndian.AppendUint16(out, f.DelayNumerator)
	out = binary.BigEndian.AppendUint16(out, f.DelayDenominator)
	return append(out, uint8(f.Dispose), uint8(f.Blend)), nil
}

// Delay returns the frame display time. A zero denominator counts as 100,
// so Delay never divides by zero.
func (f *FCTL) Delay() time.Duration {
	den := f.DelayDenominator
	if den == 0 {
		den = 100
	}
	return time.Duration(f.DelayNumerator) * time.Second / time.Duration(den)
}

// FDAT is an animation frame data chunk: a sequence number followed by
// compressed image data in the IDAT format.
type FDAT struct {
	Sequence uint32
	Data     []byte
}

func decodeFDAT(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) < 4 {
		return nil, wrongLength(TypeFDAT, len(payload), "at least 4")
	}
	return &FDAT{
		Sequence: binary.BigEndian.Uint32(payload[0:4]),
		Data:     payload[4:],
	}, nil
}

// ChunkType returns TypeFDAT.
func (f *FDAT) ChunkType() TypeCode { return TypeFDAT }

// MarshalPayload returns the sequence number followed by the frame data.
func (f *FDAT) MarshalPayload() ([]byte, error) {
	out := binary.BigEndian.AppendUint32(make([]byte, 0, 4+len(f.Data)), f.Sequence)
	return append(out, f.Data...), nil
}
