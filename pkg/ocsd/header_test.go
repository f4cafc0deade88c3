package ocsd

import (
	"bytes"
	"testing"
)

func TestSystemHeaderEncode(t *testing.T) {
	h := SystemHeader{
		Version:            SystemVersion2,
		BufferSize:         480,
		MaxOptionCards:     3,
		OneOptionCardSize:  160,
		BufferStartAddress: 0xf4bda040,
		UpdateInterval:     10,
		BuffersInUse:       1,
	}

	want := make([]byte, SystemHeaderSize)
	want[0] = 0x02
	want[4], want[5] = 0xe0, 0x01
	want[8] = 0x03
	want[12] = 0xa0
	want[16], want[17], want[18], want[19] = 0x40, 0xa0, 0xbd, 0xf4
	want[32] = 0x0a
	want[56] = 0x01
	// Two's-complement negative of the field sum, little-endian.
	want[60], want[61], want[62], want[63] = 0x30, 0x5d, 0x42, 0x0b

	if got := h.Encode(); !bytes.Equal(got, want) {
		t.Errorf("Encode() = % x, want % x", got, want)
	}
}

func TestSystemHeaderChecksumIsNegativeFieldSum(t *testing.T) {
	h := SystemHeader{
		Version:            SystemVersion2,
		BufferSize:         0xbeef,
		MaxOptionCards:     8,
		OneOptionCardSize:  160,
		BufferStartAddress: 0xdeadbeef,
		UpdateInterval:     1,
		BuffersInUse:       8,
	}

	// The wrapping subtraction chain is how firmware verifies the record:
	// adding the checksum back onto the field sum must give zero.
	var want uint32
	want -= uint32(h.Version)
	want -= uint32(h.BufferSize)
	want -= uint32(h.MaxOptionCards)
	want -= uint32(h.OneOptionCardSize)
	want -= h.BufferStartAddress
	want -= uint32(h.UpdateInterval)
	want -= uint32(h.BuffersInUse)

	if got := h.Checksum(); got != want {
		t.Errorf("Checksum() = %#x, want %#x", got, want)
	}
}

func TestSystemHeaderEncodeDecodeRoundTrip(t *testing.T) {
	h := SystemHeader{
		Version:            SystemVersion2,
		BufferSize:         1280,
		MaxOptionCards:     8,
		OneOptionCardSize:  160,
		BufferStartAddress: 0xf4bda040,
		UpdateInterval:     10,
		BuffersInUse:       3,
	}

	decoded, err := DecodeSystemHeader(h.Encode())
	if err != nil {
		t.Fatalf("DecodeSystemHeader failed: %v", err)
	}
	if decoded != h {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, h)
	}
}

func TestSystemHeaderUnknownVersionDecodes(t *testing.T) {
	data := make([]byte, SystemHeaderSize)
	data[0] = 0x7e
	h, err := DecodeSystemHeader(data)
	if err != nil {
		t.Fatalf("DecodeSystemHeader failed: %v", err)
	}
	if h.Version != SystemVersionUnknown {
		t.Errorf("Version = %d, want unknown", h.Version)
	}
}

func TestDecodeSystemHeaderShortInput(t *testing.T) {
	if _, err := DecodeSystemHeader(make([]byte, SystemHeaderSize-1)); err == nil {
		t.Error("expected error for short input")
	}
}
