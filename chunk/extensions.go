package chunk

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// OffsetUnit is the unit of an oFFs image position.
type OffsetUnit uint8

const (
	// OffsetPixels measures the offset in pixels.
	OffsetPixels OffsetUnit = 0
	// OffsetMicrometres measures the offset in micrometres.
	OffsetMicrometres OffsetUnit = 1
)

func parseOffsetUnit(v uint8) (OffsetUnit, error) {
	if v > 1 {
		return 0, fmt.Errorf("%w: invalid offset unit %d", ErrMalformedPayload, v)
	}
	return OffsetUnit(v), nil
}

// OFFS is the image position relative to the page or screen.
type OFFS struct {
	X    int32
	Y    int32
	Unit OffsetUnit
}

func decodeOFFS(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 9 {
		return nil, wrongLength(TypeOFFS, len(payload), "9")
	}
	unit, err := parseOffsetUnit(payload[8])
	if err != nil {
		return nil, err
	}
	return &OFFS{
		X:    int32(binary.BigEndian.Uint32(payload[0:4])),
		Y:    int32(binary.BigEndian.Uint32(payload[4:8])),
		Unit: unit,
	}, nil
}

// ChunkType returns TypeOFFS.
func (o *OFFS) ChunkType() TypeCode { return TypeOFFS }

// MarshalPayload returns the 9-byte oFFs payload.
func (o *OFFS) MarshalPayload() ([]byte, error) {
	out := binary.BigEndian.AppendUint32(nil, uint32(o.X))
	out = binary.BigEndian.AppendUint32(out, uint32(o.Y))
	return append(out, uint8(o.Unit)), nil
}

// PCAL maps stored sample values back to physical quantities through one
// of four calibration equations. Parameters are kept as the ASCII decimal
// strings they are stored as; ParamValues parses them.
type PCAL struct {
	Name         string
	OriginalZero int32
	OriginalMax  int32
	Equation     EquationType
	Unit         string
	Params       []string
}

func decodePCAL(payload []byte, _ *IHDR) (Payload, error) {
	nameEnd := findNull(payload)
	if nameEnd+11 > len(payload) {
		return nil, wrongLength(TypePCAL, len(payload), "name and calibration fields")
	}
	rest := payload[nameEnd+1:]

	equation, err := parseEquationType(rest[8])
	if err != nil {
		return nil, err
	}
	nparams := int(rest[9])

	unitEnd := findNull(rest[10:]) + 10
	p := &PCAL{
		Name:         string(payload[:nameEnd]),
		OriginalZero: int32(binary.BigEndian.Uint32(rest[0:4])),
		OriginalMax:  int32(binary.BigEndian.Uint32(rest[4:8])),
		Equation:     equation,
		Unit:         string(rest[10:unitEnd]),
	}

	params := rest[unitEnd:]
	for len(params) > 0 {
		params = params[1:] // NUL before each parameter
		end := findNull(params)
		p.Params = append(p.Params, string(params[:end]))
		params = params[end:]
	}
	if len(p.Params) != nparams {
		return nil, fmt.Errorf("%w: pCAL has %d parameters, header says %d",
			ErrMalformedPayload, len(p.Params), nparams)
	}
	return p, nil
}

// ChunkType returns TypePCAL.
func (p *PCAL) ChunkType() TypeCode { return TypePCAL }

// MarshalPayload returns the pCAL payload with NUL-separated strings.
func (p *PCAL) MarshalPayload() ([]byte, error) {
	if len(p.Params) > 255 {
		return nil, fmt.Errorf("%w: pCAL has %d parameters, at most 255 allowed",
			ErrMalformedPayload, len(p.Params))
	}
	out := append([]byte(nil), p.Name...)
	out = append(out, 0)
	out = binary.BigEndian.AppendUint32(out, uint32(p.OriginalZero))
	out = binary.BigEndian.AppendUint32(out, uint32(p.OriginalMax))
	out = append(out, uint8(p.Equation), uint8(len(p.Params)))
	out = append(out, p.Unit...)
	for _, param := range p.Params {
		out = append(out, 0)
		out = append(out, param...)
	}
	return out, nil
}

// ParamValues parses the calibration parameters as decimal floats.
func (p *PCAL) ParamValues() ([]float64, error) {
	vals := make([]float64, len(p.Params))
	for i, s := range p.Params {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: pCAL parameter %q: %v", ErrMalformedPayload, s, err)
		}
		vals[i] = v
	}
	return vals, nil
}

// ScaleUnit is the unit of an sCAL physical size.
type ScaleUnit uint8

const (
	// ScaleMetres measures the image in metres.
	ScaleMetres ScaleUnit = 1
	// ScaleRadians measures the image in radians.
	ScaleRadians ScaleUnit = 2
)

func parseScaleUnit(v uint8) (ScaleUnit, error) {
	if v != 1 && v != 2 {
		return 0, fmt.Errorf("%w: invalid sCAL unit %d", ErrMalformedPayload, v)
	}
	return ScaleUnit(v), nil
}

// SCAL is the physical size of the image, with the dimensions stored as
// ASCII decimal strings.
type SCAL struct {
	Unit   ScaleUnit
	Width  string
	Height string
}

func decodeSCAL(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) < 4 {
		return nil, wrongLength(TypeSCAL, len(payload), "unit and two dimensions")
	}
	unit, err := parseScaleUnit(payload[0])
	if err != nil {
		return nil, err
	}
	rest := payload[1:]
	widthEnd := findNull(rest)
	if widthEnd >= len(rest) {
		return nil, fmt.Errorf("%w: sCAL missing height", ErrMalformedPayload)
	}
	return &SCAL{
		Unit:   unit,
		Width:  string(rest[:widthEnd]),
		Height: string(rest[widthEnd+1:]),
	}, nil
}

// ChunkType returns TypeSCAL.
func (s *SCAL) ChunkType() TypeCode { return TypeSCAL }

// MarshalPayload returns unit, width, NUL, height.
func (s *SCAL) MarshalPayload() ([]byte, error) {
	out := []byte{uint8(s.Unit)}
	out = append(out, s.Width...)
	out = append(out, 0)
	return append(out, s.Height...), nil
}

// Size parses the physical dimensions as decimal floats.
func (s *SCAL) Size() (w, h float64, err error) {
	w, err = strconv.ParseFloat(s.Width, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: sCAL width %q: %v", ErrMalformedPayload, s.Width, err)
	}
	h, err = strconv.ParseFloat(s.Height, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: sCAL height %q: %v", ErrMalformedPayload, s.Height, err)
	}
	return w, h, nil
}

// GIFG preserves a GIF Graphic Control Extension from a converted image.
type GIFG struct {
	// Disposal is the GIF disposal method, kept verbatim.
	Disposal GIFDisposalMethod

	// UserInput is nonzero when the GIF expected user input.
	UserInput uint8

	// Delay is the GIF frame delay in centiseconds.
	Delay uint16
}

func decodeGIFG(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 4 {
		return nil, wrongLength(TypeGIFG, len(payload), "4")
	}
	return &GIFG{
		Disposal:  GIFDisposalMethod(payload[0]),
		UserInput: payload[1],
		Delay:     binary.BigEndian.Uint16(payload[2:4]),
	}, nil
}

// ChunkType returns TypeGIFG.
func (g *GIFG) ChunkType() TypeCode { return TypeGIFG }

// MarshalPayload returns the 4-byte gIFg payload.
func (g *GIFG) MarshalPayload() ([]byte, error) {
	out := []byte{uint8(g.Disposal), g.UserInput}
	return binary.BigEndian.AppendUint16(out, g.Delay), nil
}

// GIFX preserves a GIF Application Extension from a converted image.
type GIFX struct {
	// Identifier is the 8-byte application identifier.
	Identifier [8]byte

	// AuthCode is the 3-byte application authentication code.
	AuthCode [3]byte

	// Data is the application data, kept verbatim.
	Data []byte
}

func decodeGIFX(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) < 11 {
		return nil, wrongLength(TypeGIFX, len(payload), "at least 11")
	}
	g := &GIFX{Data: payload[11:]}
	copy(g.Identifier[:], payload[0:8])
	copy(g.AuthCode[:], payload[8:11])
	return g, nil
}

// ChunkType returns TypeGIFX.
func (g *GIFX) ChunkType() TypeCode { return TypeGIFX }

// MarshalPayload returns identifier, auth code, and application data.
func (g *GIFX) MarshalPayload() ([]byte, error) {
	out := make([]byte, 0, 11+len(g.Data))
	out = append(out, g.Identifier[:]...)
	out = append(out, g.AuthCode[:]...)
	return append(out, g.Data...), nil
}

// STER marks the image as a stereo pair of subimages.
type STER struct {
	Mode StereoMode
}

func decodeSTER(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 1 {
		return nil, wrongLength(TypeSTER, len(payload), "1")
	}
	mode, err := parseStereoMode(payload[0])
	if err != nil {
		return nil, err
	}
	return &STER{Mode: mode}, nil
}

// ChunkType returns TypeSTER.
func (s *STER) ChunkType() TypeCode { return TypeSTER }

// MarshalPayload returns the single mode byte.
func (s *STER) MarshalPayload() ([]byte, error) {
	return []byte{uint8(s.Mode)}, nil
}
