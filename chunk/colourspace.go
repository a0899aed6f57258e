package chunk

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
)

// CHRM holds the primary chromaticities and white point. Coordinates are
// stored scaled by 100000, as on the wire.
type CHRM struct {
	WhiteX, WhiteY uint32
	RedX, RedY     uint32
	GreenX, GreenY uint32
	BlueX, BlueY   uint32
}

func decodeCHRM(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 32 {
		return nil, wrongLength(TypeCHRM, len(payload), "32")
	}
	return &CHRM{
		WhiteX: binary.BigEndian.Uint32(payload[0:4]),
		WhiteY: binary.BigEndian.Uint32(payload[4:8]),
		RedX:   binary.BigEndian.Uint32(payload[8:12]),
		RedY:   binary.BigEndian.Uint32(payload[12:16]),
		GreenX: binary.BigEndian.Uint32(payload[16:20]),
		GreenY: binary.BigEndian.Uint32(payload[20:24]),
		BlueX:  binary.BigEndian.Uint32(payload[24:28]),
		BlueY:  binary.BigEndian.Uint32(payload[28:32]),
	}, nil
}

// ChunkType returns TypeCHRM.
func (c *CHRM) ChunkType() TypeCode { return TypeCHRM }

// MarshalPayload returns the 32-byte cHRM payload.
func (c *CHRM) MarshalPayload() ([]byte, error) {
	out := make([]byte, 0, 32)
	for _, v := range [...]uint32{
		c.WhiteX, c.WhiteY, c.RedX, c.RedY,
		c.GreenX, c.GreenY, c.BlueX, c.BlueY,
	} {
		out = binary.BigEndian.AppendUint32(out, v)
	}
	return out, nil
}

// WhitePoint returns the white point coordinates scaled to CIE xy.
func (c *CHRM) WhitePoint() (x, y float64) {
	return float64(c.WhiteX) / 100000, float64(c.WhiteY) / 100000
}

// Red returns the red primary coordinates scaled to CIE xy.
func (c *CHRM) Red() (x, y float64) {
	return float64(c.RedX) / 100000, float64(c.RedY) / 100000
}

// Green returns the green primary coordinates scaled to CIE xy.
func (c *CHRM) Green() (x, y float64) {
	return float64(c.GreenX) / 100000, float64(c.GreenY) / 100000
}

// Blue returns the blue primary coordinates scaled to CIE xy.
func (c *CHRM) Blue() (x, y float64) {
	return float64(c.BlueX) / 100000, float64(c.BlueY) / 100000
}

// GAMA is the image gamma, stored scaled by 100000.
type GAMA struct {
	Value uint32
}

func decodeGAMA(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 4 {
		return nil, wrongLength(TypeGAMA, len(payload), "4")
	}
	return &GAMA{Value: binary.BigEndian.Uint32(payload)}, nil
}

// ChunkType returns TypeGAMA.
func (g *GAMA) ChunkType() TypeCode { return TypeGAMA }

// MarshalPayload returns the 4-byte gAMA payload.
func (g *GAMA) MarshalPayload() ([]byte, error) {
	return binary.BigEndian.AppendUint32(nil, g.Value), nil
}

// Gamma returns the unscaled gamma value.
func (g *GAMA) Gamma() float64 {
	return float64(g.Value) / 100000
}

// ICCP is an embedded ICC profile: a NUL-terminated name, a compression
// method byte, and the zlib-compressed profile.
type ICCP struct {
	Name              string
	Compression       CompressionMethod
	CompressedProfile []byte
}

func decodeICCP(payload []byte, _ *IHDR) (Payload, error) {
	nameEnd := findNull(payload)
	if nameEnd+2 > len(payload) {
		return nil, wrongLength(TypeICCP, len(payload), "name, method, and profile")
	}

	method, err := parseCompressionMethod(payload[nameEnd+1])
	if err != nil {
		return nil, err
	}
	return &ICCP{
		Name:              string(payload[:nameEnd]),
		Compression:       method,
		CompressedProfile: payload[nameEnd+2:],
	}, nil
}

// ChunkType returns TypeICCP.
func (p *ICCP) ChunkType() TypeCode { return TypeICCP }

// MarshalPayload returns the iCCP payload: name NUL method profile.
func (p *ICCP) MarshalPayload() ([]byte, error) {
	out := make([]byte, 0, len(p.Name)+2+len(p.CompressedProfile))
	out = append(out, p.Name...)
	out = append(out, 0, uint8(p.Compression))
	out = append(out, p.CompressedProfile...)
	return out, nil
}

// Profile decompresses and returns the ICC profile. A decompression
// failure is reported here, not during envelope decode.
func (p *ICCP) Profile() ([]byte, error) {
	return inflate(p.CompressedProfile)
}

// inflate decompresses a zlib sub-payload.
func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("png: opening zlib stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("png: inflating: %w", err)
	}
	return out, nil
}

// SBIT is the significant-bits chunk. Its width depends on the IHDR
// colour type; unused fields are zero.
type SBIT struct {
	// Colour records which IHDR colour type shaped this payload.
	Colour ColourType

	GreyBits  uint8
	RedBits   uint8
	GreenBits uint8
	BlueBits  uint8
	AlphaBits uint8
}

func decodeSBIT(payload []byte, ihdr *IHDR) (Payload, error) {
	if ihdr == nil {
		return nil, fmt.Errorf("%w: sBIT", ErrMissingContext)
	}

	s := &SBIT{Colour: ihdr.Colour}
	switch ihdr.Colour {
	case Greyscale:
		if len(payload) != 1 {
			return nil, wrongLength(TypeSBIT, len(payload), "1 for greyscale")
		}
		s.GreyBits = payload[0]

	case TrueColour, IndexedColour:
		if len(payload) != 3 {
			return nil, wrongLength(TypeSBIT, len(payload), "3 for colour")
		}
		s.RedBits, s.GreenBits, s.BlueBits = payload[0], payload[1], payload[2]

	case GreyscaleAlpha:
		if len(payload) != 2 {
			return nil, wrongLength(TypeSBIT, len(payload), "2 for greyscale+alpha")
		}
		s.GreyBits, s.AlphaBits = payload[0], payload[1]

	case TrueColourAlpha:
		if len(payload) != 4 {
			return nil, wrongLength(TypeSBIT, len(payload), "4 for truecolour+alpha")
		}
		s.RedBits, s.GreenBits, s.BlueBits, s.AlphaBits =
			payload[0], payload[1], payload[2], payload[3]
	}
	return s, nil
}

// ChunkType returns TypeSBIT.
func (s *SBIT) ChunkType() TypeCode { return TypeSBIT }

// MarshalPayload returns the payload in the shape selected by Colour.
func (s *SBIT) MarshalPayload() ([]byte, error) {
	switch s.Colour {
	case Greyscale:
		return []byte{s.GreyBits}, nil
	case TrueColour, IndexedColour:
		return []byte{s.RedBits, s.GreenBits, s.BlueBits}, nil
	case GreyscaleAlpha:
		return []byte{s.GreyBits, s.AlphaBits}, nil
	case TrueColourAlpha:
		return []byte{s.RedBits, s.GreenBits, s.BlueBits, s.AlphaBits}, nil
	default:
		return nil, fmt.Errorf("%w: sBIT not valid for %s images",
			ErrMalformedPayload, s.Colour)
	}
}

// SRGB declares the standard RGB colour space with a rendering intent.
type SRGB struct {
	Intent RenderingIntent
}

func decodeSRGB(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 1 {
		return nil, wrongLength(TypeSRGB, len(payload), "1")
	}
	intent, err := parseRenderingIntent(payload[0])
	if err != nil {
		return nil, err
	}
	return &SRGB{Intent: intent}, nil
}

// ChunkType returns TypeSRGB.
func (s *SRGB) ChunkType() TypeCode { return TypeSRGB }

// MarshalPayload returns the 1-byte sRGB payload.
func (s *SRGB) MarshalPayload() ([]byte, error) {
	return []byte{uint8(s.Intent)}, nil
}

// CICP carries coding-independent code points for video signal type
// identification (ITU-T H.273). Code points are carried verbatim.
type CICP struct {
	Primaries      ColourPrimaries
	Transfer       TransferFunction
	Matrix         MatrixCoefficients
	VideoFullRange bool
}

func decodeCICP(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 4 {
		return nil, wrongLength(TypeCICP, len(payload), "4")
	}
	return &CICP{
		Primaries:      ColourPrimaries(payload[0]),
		Transfer:       TransferFunction(payload[1]),
		Matrix:         MatrixCoefficients(payload[2]),
		VideoFullRange: payload[3] > 0,
	}, nil
}

// ChunkType returns TypeCICP.
func (c *CICP) ChunkType() TypeCode { return TypeCICP }

// MarshalPayload returns the 4-byte cICP payload.
func (c *CICP) MarshalPayload() ([]byte, error) {
	full := uint8(0)
	if c.VideoFullRange {
		full = 1
	}
	return []byte{uint8(c.Primaries), uint8(c.Transfer), uint8(c.Matrix), full}, nil
}

// MDCV is the mastering display colour volume. Chromaticities are scaled
// by 50000, luminances by 10000, as on the wire.
type MDCV struct {
	RedX, RedY     uint16
	GreenX, GreenY uint16
	BlueX, BlueY   uint16
	WhiteX, WhiteY uint16
	MaxLum, MinLum uint32
}

func decodeMDCV(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 24 {
		return nil, wrongLength(TypeMDCV, len(payload), "24")
	}
	return &MDCV{
		RedX:   binary.BigEndian.Uint16(payload[0:2]),
		RedY:   binary.BigEndian.Uint16(payload[2:4]),
		GreenX: binary.BigEndian.Uint16(payload[4:6]),
		GreenY: binary.BigEndian.Uint16(payload[6:8]),
		BlueX:  binary.BigEndian.Uint16(payload[8:10]),
		BlueY:  binary.BigEndian.Uint16(payload[10:12]),
		WhiteX: binary.BigEndian.Uint16(payload[12:14]),
		WhiteY: binary.BigEndian.Uint16(payload[14:16]),
		MaxLum: binary.BigEndian.Uint32(payload[16:20]),
		MinLum: binary.BigEndian.Uint32(payload[20:24]),
	}, nil
}

// ChunkType returns TypeMDCV.
func (m *MDCV) ChunkType() TypeCode { return TypeMDCV }

// MarshalPayload returns the 24-byte mDCV payload.
func (m *MDCV) MarshalPayload() ([]byte, error) {
	out := make([]byte, 0, 24)
	for _, v := range [...]uint16{
		m.RedX, m.RedY, m.GreenX, m.GreenY,
		m.BlueX, m.BlueY, m.WhiteX, m.WhiteY,
	} {
		out = binary.BigEndian.AppendUint16(out, v)
	}
	out = binary.BigEndian.AppendUint32(out, m.MaxLum)
	out = binary.BigEndian.AppendUint32(out, m.MinLum)
	return out, nil
}

// Red returns the red primary coordinates scaled to CIE xy.
func (m *MDCV) Red() (x, y float64) {
	return float64(m.RedX) / 50000, float64(m.RedY) / 50000
}

// Green returns the green primary coordinates scaled to CIE xy.
func (m *MDCV) Green() (x, y float64) {
	return float64(m.GreenX) / 50000, float64(m.GreenY) / 50000
}

// Blue returns the blue primary coordinates scaled to CIE xy.
func (m *MDCV) Blue() (x, y float64) {
	return float64(m.BlueX) / 50000, float64(m.BlueY) / 50000
}

// WhitePoint returns the white point coordinates scaled to CIE xy.
func (m *MDCV) WhitePoint() (x, y float64) {
	return float64(m.WhiteX) / 50000, float64(m.WhiteY) / 50000
}

// MaxLuminance returns the mastering display maximum luminance in cd/m².
func (m *MDCV) MaxLuminance() float64 {
	return float64(m.MaxLum) / 10000
}

// MinLuminance returns the mastering display minimum luminance in cd/m².
func (m *MDCV) MinLuminance() float64 {
	return float64(m.MinLum) / 10000
}

// CLLI is the content light level information, scaled by 10000 on the wire.
type CLLI struct {
	// MaxCLL is the maximum content light level.
	MaxCLL uint32

	// MaxFALL is the maximum frame-average light level.
	MaxFALL uint32
}

func decodeCLLI(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 8 {
		return nil, wrongLength(TypeCLLI, len(payload), "8")
	}
	return &CLLI{
		MaxCLL:  binary.BigEndian.Uint32(payload[0:4]),
		MaxFALL: binary.BigEndian.Uint32(payload[4:8]),
	}, nil
}

// ChunkType returns TypeCLLI.
func (c *CLLI) ChunkType() TypeCode { return TypeCLLI }

// MarshalPayload returns the 8-byte cLLI payload.
func (c *CLLI) MarshalPayload() ([]byte, error) {
	out := binary.BigEndian.AppendUint32(nil, c.MaxCLL)
	return binary.BigEndian.AppendUint32(out, c.MaxFALL), nil
}

// MaxContentLightLevel returns the maximum content light level in cd/m².
func (c *CLLI) MaxContentLightLevel() float64 {
	return float64(c.MaxCLL) / 10000
}

// MaxFrameAverageLightLevel returns the maximum frame-average light level
// in cd/m².
func (c *CLLI) MaxFrameAverageLightLevel() float64 {
	return float64(c.MaxFALL) / 10000
}
