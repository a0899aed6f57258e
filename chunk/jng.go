package chunk

import "encoding/binary"

// JHDR is the JNG header chunk, describing the JPEG image stream and the
// optional alpha channel that accompanies it.
type JHDR struct {
	Width  uint32
	Height uint32

	Colour           JNGColourType
	ImageSampleDepth JNGSampleDepth
	ImageCompression JNGCompression
	ImageInterlace   JNGInterlace

	AlphaSampleDepth JNGAlphaDepth
	AlphaCompression JNGCompression
	AlphaFilter      FilterMethod
	AlphaInterlace   InterlaceMethod
}

func decodeJHDR(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 16 {
		return nil, wrongLength(TypeJHDR, len(payload), "16")
	}

	colour, err := parseJNGColourType(payload[8])
	if err != nil {
		return nil, err
	}
	imageDepth, err := parseJNGSampleDepth(payload[9])
	if err != nil {
		return nil, err
	}
	imageCompression, err := parseJNGCompression(payload[10])
	if err != nil {
		return nil, err
	}
	imageInterlace, err := parseJNGInterlace(payload[11])
	if err != nil {
		return nil, err
	}
	alphaDepth, err := parseJNGAlphaDepth(payload[12])
	if err != nil {
		return nil, err
	}
	alphaCompression, err := parseJNGCompression(payload[13])
	if err != nil {
		return nil, err
	}
	alphaFilter, err := parseFilterMethod(payload[14])
	if err != nil {
		return nil, err
	}
	alphaInterlace, err := parseInterlaceMethod(payload[15])
	if err != nil {
		return nil, err
	}

	return &JHDR{
		Width:            binary.BigEndian.Uint32(payload[0:4]),
		Height:           binary.BigEndian.Uint32(payload[4:8]),
		Colour:           colour,
		ImageSampleDepth: imageDepth,
		ImageCompression: imageCompression,
		ImageInterlace:   imageInterlace,
		AlphaSampleDepth: alphaDepth,
		AlphaCompression: alphaCompression,
		AlphaFilter:      alphaFilter,
		AlphaInterlace:   alphaInterlace,
	}, nil
}

// ChunkType returns TypeJHDR.
func (j *JHDR) ChunkType() TypeCode { return TypeJHDR }

// MarshalPayload returns the 16-byte JHDR payload.
func (j *JHDR) MarshalPayload() ([]byte, error) {
	out := binary.BigEndian.AppendUint32(make([]byte, 0, 16), j.Width)
	out = binary.BigEndian.AppendUint32(out, j.Height)
	return append(out,
		uint8(j.Colour), uint8(j.ImageSampleDepth),
		uint8(j.ImageCompression), uint8(j.ImageInterlace),
		uint8(j.AlphaSampleDepth), uint8(j.AlphaCompression),
		uint8(j.AlphaFilter), uint8(j.AlphaInterlace)), nil
}

// HasAlpha reports whether the image carries an alpha channel.
func (j *JHDR) HasAlpha() bool {
	return j.Colour == JNGGreyscaleAlpha || j.Colour == JNGColourAlpha
}

// JDAT carries a slice of the JPEG image datastream. The bytes are kept
// verbatim; consecutive JDAT payloads concatenate into the full stream.
type JDAT struct {
	Data []byte
}

func decodeJDAT(payload []byte, _ *IHDR) (Payload, error) {
	return &JDAT{Data: payload}, nil
}

// ChunkType returns TypeJDAT.
func (j *JDAT) ChunkType() TypeCode { return TypeJDAT }

// MarshalPayload returns the raw datastream bytes.
func (j *JDAT) MarshalPayload() ([]byte, error) {
	return j.Data, nil
}

// JDAA carries a slice of the JPEG-compressed alpha datastream.
type JDAA struct {
	Data []byte
}

func decodeJDAA(payload []byte, _ *IHDR) (Payload, error) {
	return &JDAA{Data: payload}, nil
}

// ChunkType returns TypeJDAA.
func (j *JDAA) ChunkType() TypeCode { return TypeJDAA }

// MarshalPayload returns the raw datastream bytes.
func (j *JDAA) MarshalPayload() ([]byte, error) {
	return j.Data, nil
}

// JSEP separates the 8-bit and 12-bit image versions in a JNG stream
// whose sample depth is 20. It has no payload.
type JSEP struct{}

func decodeJSEP(payload []byte, _ *IHDR) (Payload, error) {
	if len(payload) != 0 {
		return nil, wrongLength(TypeJSEP, len(payload), "0")
	}
	return &JSEP{}, nil
}

// ChunkType returns TypeJSEP.
func (j *JSEP) ChunkType() TypeCode { return TypeJSEP }

// MarshalPayload returns an empty payload.
func (j *JSEP) MarshalPayload() ([]byte, error) {
	return nil, nil
}
