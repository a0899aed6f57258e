package chunk

// TEXT is uncompressed Latin-1 textual data: a keyword and a string
// separated by a NUL byte.
type TEXT struct {
	Keyword string
	Value   string
}

func decodeTEXT(payload []byte, _ *IHDR) (Payload, error) {
	keywordEnd := findNull(payload)
	value := ""
	if keywordEnd < len(payload) {
		value = string(payload[keywordEnd+1:])
	}
	return &TEXT{
		Keyword: string(payload[:keywordEnd]),
		Value:   value,
	}, nil
}

// ChunkType returns TypeTEXT.
func (t *TEXT) ChunkType() TypeCode { return TypeTEXT }

// MarshalPayload returns keyword NUL value.
func (t *TEXT) MarshalPayload() ([]byte, error) {
	out := make([]byte, 0, len(t.Keyword)+1+len(t.Value))
	out = append(out, t.Keyword...)
	out = append(out, 0)
	out = append(out, t.Value...)
	return out, nil
}

// ZTXT is compressed textual data: a keyword, a compression method byte,
// and a zlib-compressed string.
type ZTXT struct {
	Keyword         string
	Compression     CompressionMethod
	CompressedValue []byte
}

func decodeZTXT(payload []byte, _ *IHDR) (Payload, error) {
	keywordEnd := findNull(payload)
	if keywordEnd+2 > len(payload) {
		return nil, wrongLength(TypeZTXT, len(payload), "keyword, method, and text")
	}

	method, err := parseCompressionMethod(payload[keywordEnd+1])
	if err != nil {
		return nil, err
	}
	return &ZTXT{
		Keyword:         string(payload[:keywordEnd]),
		Compression:     method,
		CompressedValue: payload[keywordEnd+2:],
	}, nil
}

// ChunkType returns TypeZTXT.
func (z *ZTXT) ChunkType() TypeCode { return TypeZTXT }

// MarshalPayload returns keyword NUL method compressed-text.
func (z *ZTXT) MarshalPayload() ([]byte, error) {
	out := make([]byte, 0, len(z.Keyword)+2+len(z.CompressedValue))
	out = append(out, z.Keyword...)
	out = append(out, 0, uint8(z.Compression))
	out = append(out, z.CompressedValue...)
	return out, nil
}

// Text decompresses and returns the string. A decompression failure is
// reported here, not during envelope decode.
func (z *ZTXT) Text() (string, error) {
	b, err := inflate(z.CompressedValue)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ITXT is international (UTF-8) textual data. The string bytes are
// compressed only when Compressed is set.
type ITXT struct {
	Keyword           string
	Compressed        bool
	Compression       CompressionMethod
	Language          string
	TranslatedKeyword string
	ValueBytes        []byte
}

func decodeITXT(payload []byte, _ *IHDR) (Payload, error) {
	keywordEnd := findNull(payload)
	if keywordEnd+3 > len(payload) {
		return nil, wrongLength(TypeITXT, len(payload), "keyword, flags, and text")
	}

	method, err := parseCompressionMethod(payload[keywordEnd+2])
	if err != nil {
		return nil, err
	}

	rest := payload[keywordEnd+3:]
	languageEnd := findNull(rest)
	language := rest[:languageEnd]
	if languageEnd < len(rest) {
		rest = rest[languageEnd+1:]
	} else {
		rest = nil
	}

	translatedEnd := findNull(rest)
	translated := rest[:translatedEnd]
	if translatedEnd < len(rest) {
		rest = rest[translatedEnd+1:]
	} else {
		rest = nil
	}

	return &ITXT{
		Keyword:           string(payload[:keywordEnd]),
		Compressed:        payload[keywordEnd+1] > 0,
		Compression:       method,
		Language:          string(language),
		TranslatedKeyword: string(translated),
		ValueBytes:        rest,
	}, nil
}

// ChunkType returns TypeITXT.
func (i *ITXT) ChunkType() TypeCode { return TypeITXT }

// MarshalPayload returns keyword NUL flag method language NUL
// translated-keyword NUL text.
func (i *ITXT) MarshalPayload() ([]byte, error) {
	compressed := uint8(0)
	if i.Compressed {
		compressed = 1
	}
	out := make([]byte, 0,
		len(i.Keyword)+len(i.Language)+len(i.TranslatedKeyword)+len(i.ValueBytes)+5)
	out = append(out, i.Keyword...)
	out = append(out, 0, compressed, uint8(i.Compression))
	out = append(out, i.Language...)
	out = append(out, 0)
	out = append(out, i.TranslatedKeyword...)
	out = append(out, 0)
	out = append(out, i.ValueBytes...)
	return out, nil
}

// Text returns the string, decompressing it when the compression flag is
// set. A decompression failure is reported here, not during envelope
// decode.
func (i *ITXT) Text() (string, error) {
	if !i.Compressed {
		return string(i.ValueBytes), nil
	}
	b, err := inflate(i.ValueBytes)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
