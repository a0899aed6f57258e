package chunk

import "testing"

func TestCRC_KnownValue(t *testing.T) {
	// The CRC over just the IEND type code is a well-known constant.
	c := NewCRC()
	c.Consume([]byte("IEND"))
	if got := c.Value(); got != 0xAE426082 {
		t.Fatalf("CRC(IEND) = %#08x, want 0xae426082", got)
	}
}

func TestCRC_Incremental(t *testing.T) {
	data := []byte("IHDR with some payload bytes after the type code")

	whole := NewCRC()
	whole.Consume(data)

	pieces := NewCRC()
	for _, n := range []int{1, 4, 0, 7, len(data)} {
		if n > len(data) {
			n = len(data)
		}
		pieces.Consume(data[:n])
		data = data[n:]
	}

	if pieces.Value() != whole.Value() {
		t.Fatalf("piecewise CRC = %#08x, one-shot = %#08x", pieces.Value(), whole.Value())
	}
}

func TestCRC_ZeroState(t *testing.T) {
	if got := NewCRC().Value(); got != 0 {
		t.Fatalf("fresh CRC value = %#08x, want 0", got)
	}
}

func TestCRCOf_MatchesStreaming(t *testing.T) {
	payload := []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 0, 0, 0, 0}
	c := NewCRC()
	c.Consume(TypeIHDR[:])
	c.Consume(payload)
	if got := crcOf(TypeIHDR, payload); got != c.Value() {
		t.Fatalf("crcOf = %#08x, streaming = %#08x", got, c.Value())
	}
}
