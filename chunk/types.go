package chunk

import "fmt"

// ColourType is the IHDR colour type. Its value selects the shape of the
// tRNS, sBIT, and bKGD chunks.
type ColourType uint8

const (
	// Greyscale allows depths of 1, 2, 4, 8, or 16 bits per component.
	Greyscale ColourType = 0
	// TrueColour is RGB at 8 or 16 bits per component.
	TrueColour ColourType = 2
	// IndexedColour allows depths of 1, 2, 4, or 8 bits per palette index.
	IndexedColour ColourType = 3
	// GreyscaleAlpha is greyscale with alpha at 8 or 16 bits per component.
	GreyscaleAlpha ColourType = 4
	// TrueColourAlpha is RGB with alpha at 8 or 16 bits per component.
	TrueColourAlpha ColourType = 6
)

// String returns a human-readable colour type name.
func (c ColourType) String() string {
	switch c {
	case Greyscale:
		return "greyscale"
	case TrueColour:
		return "truecolour"
	case IndexedColour:
		return "indexed"
	case GreyscaleAlpha:
		return "greyscale+alpha"
	case TrueColourAlpha:
		return "truecolour+alpha"
	default:
		return fmt.Sprintf("colour type %d", uint8(c))
	}
}

func parseColourType(v uint8) (ColourType, error) {
	switch c := ColourType(v); c {
	case Greyscale, TrueColour, IndexedColour, GreyscaleAlpha, TrueColourAlpha:
		return c, nil
	}
	return 0, fmt.Errorf("%w: invalid colour type %d", ErrMalformedPayload, v)
}

// CompressionMethod identifies a chunk's compression scheme. Only
// zlib/DEFLATE (0) is defined.
type CompressionMethod uint8

// CompressionZlib is the only registered compression method.
const CompressionZlib CompressionMethod = 0

func parseCompressionMethod(v uint8) (CompressionMethod, error) {
	if CompressionMethod(v) != CompressionZlib {
		return 0, fmt.Errorf("%w: invalid compression method %d", ErrMalformedPayload, v)
	}
	return CompressionZlib, nil
}

// FilterMethod identifies the IHDR filter method. Only adaptive filtering
// with the five basic filter types (0) is defined.
type FilterMethod uint8

// FilterAdaptive is the only registered filter method.
const FilterAdaptive FilterMethod = 0

func parseFilterMethod(v uint8) (FilterMethod, error) {
	if FilterMethod(v) != FilterAdaptive {
		return 0, fmt.Errorf("%w: invalid filter method %d", ErrMalformedPayload, v)
	}
	return FilterAdaptive, nil
}

// InterlaceMethod identifies the IHDR interlace method.
type InterlaceMethod uint8

const (
	// InterlaceNone means no interlacing.
	InterlaceNone InterlaceMethod = 0
	// InterlaceAdam7 means Adam7 interlacing.
	InterlaceAdam7 InterlaceMethod = 1
)

func parseInterlaceMethod(v uint8) (InterlaceMethod, error) {
	switch m := InterlaceMethod(v); m {
	case InterlaceNone, InterlaceAdam7:
		return m, nil
	}
	return 0, fmt.Errorf("%w: invalid interlace method %d", ErrMalformedPayload, v)
}

// UnitType is the unit specifier shared by pHYs, oFFs, and sCAL.
type UnitType uint8

const (
	// UnitUnknown means the values define an aspect ratio only.
	UnitUnknown UnitType = 0
	// UnitMetre means values are per metre (pHYs) or in metres (oFFs uses
	// micrometres, sCAL metres, per their registrations).
	UnitMetre UnitType = 1
)

func parseUnitType(v uint8) (UnitType, error) {
	switch u := UnitType(v); u {
	case UnitUnknown, UnitMetre:
		return u, nil
	}
	return 0, fmt.Errorf("%w: invalid unit %d", ErrMalformedPayload, v)
}

// RenderingIntent is the sRGB ICC rendering intent.
type RenderingIntent uint8

const (
	IntentPerceptual           RenderingIntent = 0
	IntentRelativeColorimetric RenderingIntent = 1
	IntentSaturation           RenderingIntent = 2
	IntentAbsoluteColorimetric RenderingIntent = 3
)

func parseRenderingIntent(v uint8) (RenderingIntent, error) {
	if v > uint8(IntentAbsoluteColorimetric) {
		return 0, fmt.Errorf("%w: invalid rendering intent %d", ErrMalformedPayload, v)
	}
	return RenderingIntent(v), nil
}

// PaletteEntry is one 3-byte PLTE entry.
type PaletteEntry struct {
	Red, Green, Blue uint8
}

// SuggestedPaletteEntry is one sPLT entry. When the palette depth is 8 the
// colour and alpha fields hold unscaled 8-bit values.
type SuggestedPaletteEntry struct {
	Red, Green, Blue, Alpha uint16
	Frequency               uint16
}

// DisposeOp is the fcTL frame-disposal operator, passed through as data
// and not interpreted here.
type DisposeOp uint8

const (
	// DisposeNone leaves the output buffer as-is before the next frame.
	DisposeNone DisposeOp = 0
	// DisposeBackground clears the frame region to transparent black.
	DisposeBackground DisposeOp = 1
	// DisposePrevious reverts the frame region to the previous contents.
	DisposePrevious DisposeOp = 2
)

func parseDisposeOp(v uint8) (DisposeOp, error) {
	if v > uint8(DisposePrevious) {
		return 0, fmt.Errorf("%w: invalid dispose operator %d", ErrMalformedPayload, v)
	}
	return DisposeOp(v), nil
}

// BlendOp is the fcTL frame-blend operator, passed through as data.
type BlendOp uint8

const (
	// BlendSource overwrites the frame region.
	BlendSource BlendOp = 0
	// BlendOver composites the frame over the region using its alpha.
	BlendOver BlendOp = 1
)

func parseBlendOp(v uint8) (BlendOp, error) {
	if v > uint8(BlendOver) {
		return 0, fmt.Errorf("%w: invalid blend operator %d", ErrMalformedPayload, v)
	}
	return BlendOp(v), nil
}

// ColourPrimaries is the cICP colour-primaries code point (ITU-T H.273).
// Values are carried verbatim; unknown code points are not an error.
type ColourPrimaries uint8

const (
	PrimariesBT709  ColourPrimaries = 1
	PrimariesUnspec ColourPrimaries = 2
	PrimariesBT2020 ColourPrimaries = 9
	PrimariesP3D65  ColourPrimaries = 12
)

// TransferFunction is the cICP transfer-characteristics code point.
type TransferFunction uint8

const (
	TransferBT709  TransferFunction = 1
	TransferUnspec TransferFunction = 2
	TransferSRGB   TransferFunction = 13
	TransferPQ     TransferFunction = 16
	TransferHLG    TransferFunction = 18
)

// MatrixCoefficients is the cICP matrix-coefficients code point. PNG
// requires identity (0) but other values are carried verbatim.
type MatrixCoefficients uint8

const (
	MatrixIdentity MatrixCoefficients = 0
	MatrixBT709    MatrixCoefficients = 1
	MatrixUnspec   MatrixCoefficients = 2
)

// GIFDisposalMethod is the gIFg disposal method, carried verbatim from the
// GIF Graphic Control Extension.
type GIFDisposalMethod uint8

// StereoMode is the sTER layout indicator.
type StereoMode uint8

const (
	// StereoCrossFuse puts the right-eye image on the left.
	StereoCrossFuse StereoMode = 0
	// StereoDivergingFuse puts the left-eye image on the left.
	StereoDivergingFuse StereoMode = 1
)

func parseStereoMode(v uint8) (StereoMode, error) {
	if v > uint8(StereoDivergingFuse) {
		return 0, fmt.Errorf("%w: invalid stereo mode %d", ErrMalformedPayload, v)
	}
	return StereoMode(v), nil
}

// EquationType is the pCAL calibration equation type.
type EquationType uint8

const (
	EquationLinear      EquationType = 0
	EquationExponential EquationType = 1
	EquationArbitrary   EquationType = 2
	EquationHyperbolic  EquationType = 3
)

func parseEquationType(v uint8) (EquationType, error) {
	if v > uint8(EquationHyperbolic) {
		return 0, fmt.Errorf("%w: invalid equation type %d", ErrMalformedPayload, v)
	}
	return EquationType(v), nil
}

// JNGColourType is the JHDR colour type.
type JNGColourType uint8

const (
	JNGGreyscale      JNGColourType = 8
	JNGColour         JNGColourType = 10
	JNGGreyscaleAlpha JNGColourType = 12
	JNGColourAlpha    JNGColourType = 14
)

func parseJNGColourType(v uint8) (JNGColourType, error) {
	switch c := JNGColourType(v); c {
	case JNGGreyscale, JNGColour, JNGGreyscaleAlpha, JNGColourAlpha:
		return c, nil
	}
	return 0, fmt.Errorf("%w: invalid JNG colour type %d", ErrMalformedPayload, v)
}

// JNGSampleDepth is the JHDR image sample depth.
type JNGSampleDepth uint8

const (
	JNGDepth8      JNGSampleDepth = 8
	JNGDepth12     JNGSampleDepth = 12
	JNGDepth8And12 JNGSampleDepth = 20
)

func parseJNGSampleDepth(v uint8) (JNGSampleDepth, error) {
	switch d := JNGSampleDepth(v); d {
	case JNGDepth8, JNGDepth12, JNGDepth8And12:
		return d, nil
	}
	return 0, fmt.Errorf("%w: invalid JNG sample depth %d", ErrMalformedPayload, v)
}

// JNGCompression is the JHDR image or alpha compression type.
type JNGCompression uint8

const (
	// JNGCompressionPNG means PNG greyscale coding (alpha channel only).
	JNGCompressionPNG JNGCompression = 0
	// JNGCompressionJPEG means Huffman-coded baseline JPEG.
	JNGCompressionJPEG JNGCompression = 8
)

func parseJNGCompression(v uint8) (JNGCompression, error) {
	switch c := JNGCompression(v); c {
	case JNGCompressionPNG, JNGCompressionJPEG:
		return c, nil
	}
	return 0, fmt.Errorf("%w: invalid JNG compression type %d", ErrMalformedPayload, v)
}

// JNGAlphaDepth is the JHDR alpha sample depth.
type JNGAlphaDepth uint8

func parseJNGAlphaDepth(v uint8) (JNGAlphaDepth, error) {
	switch v {
	case 0, 1, 2, 4, 8, 16:
		return JNGAlphaDepth(v), nil
	}
	return 0, fmt.Errorf("%w: invalid JNG alpha sample depth %d", ErrMalformedPayload, v)
}

// JNGInterlace is the JHDR image or alpha interlace type.
type JNGInterlace uint8

const (
	JNGSequentialJPEG  JNGInterlace = 0
	JNGProgressiveJPEG JNGInterlace = 8
)

func parseJNGInterlace(v uint8) (JNGInterlace, error) {
	switch i := JNGInterlace(v); i {
	case JNGSequentialJPEG, JNGProgressiveJPEG:
		return i, nil
	}
	return 0, fmt.Errorf("%w: invalid JNG interlace type %d", ErrMalformedPayload, v)
}
