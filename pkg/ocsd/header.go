package ocsd

import (
	"encoding/binary"
	"fmt"
)

// SystemHeaderSize is the exact wire size of the system header in bytes.
const SystemHeaderSize = 64

// SystemHeader describes the geometry of the OCSD device buffer. It sits at
// the base address of the shared region, ahead of the device buffer it
// describes.
type SystemHeader struct {
	Version SystemVersion
	// BufferSize is the size of the device buffer in bytes, excluding this
	// header.
	BufferSize uint16
	// MaxOptionCards is the number of device slots the system supports.
	MaxOptionCards uint8
	// OneOptionCardSize is the size of a single device slot in bytes.
	OneOptionCardSize uint8
	// BufferStartAddress is the absolute address at which the device buffer
	// begins.
	BufferStartAddress uint32
	// UpdateInterval is the interval at which firmware polls the buffer.
	UpdateInterval uint8
	// BuffersInUse is the number of active device slots, always counted from
	// slot 0.
	BuffersInUse uint8
}

// Checksum is the additive inverse (mod 2^32) of the header's scalar fields,
// each zero-extended to 32 bits. It is computed fresh from the current field
// values; stored checksums are never validated on decode.
func (h SystemHeader) Checksum() uint32 {
	sum := uint32(h.Version) +
		uint32(h.BufferSize) +
		uint32(h.MaxOptionCards) +
		uint32(h.OneOptionCardSize) +
		h.BufferStartAddress +
		uint32(h.UpdateInterval) +
		uint32(h.BuffersInUse)
	return -sum
}

// Encode serializes the header into its 64-byte wire form, including a
// freshly computed checksum. Padding and reserved bytes are zero.
func (h SystemHeader) Encode() []byte {
	buf := make([]byte, SystemHeaderSize)
	buf[0] = uint8(h.Version)
	binary.LittleEndian.PutUint16(buf[4:], h.BufferSize)
	buf[8] = h.MaxOptionCards
	buf[12] = h.OneOptionCardSize
	binary.LittleEndian.PutUint32(buf[16:], h.BufferStartAddress)
	buf[32] = h.UpdateInterval
	buf[56] = h.BuffersInUse
	binary.LittleEndian.PutUint32(buf[60:], h.Checksum())
	return buf
}

// DecodeSystemHeader deserializes a header from its wire form. It fails only
// when data is shorter than SystemHeaderSize; the stored checksum is not
// validated and padding bytes are ignored.
func DecodeSystemHeader(data []byte) (SystemHeader, error) {
	if len(data) < SystemHeaderSize {
		return SystemHeader{}, fmt.Errorf("system header: need %d bytes, have %d", SystemHeaderSize, len(data))
	}
	return SystemHeader{
		Version:            SystemVersionFrom(data[0]),
		BufferSize:         binary.LittleEndian.Uint16(data[4:]),
		MaxOptionCards:     data[8],
		OneOptionCardSize:  data[12],
		BufferStartAddress: binary.LittleEndian.Uint32(data[16:]),
		UpdateInterval:     data[32],
		BuffersInUse:       data[56],
	}, nil
}
