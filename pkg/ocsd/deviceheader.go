package ocsd

import (
	"encoding/binary"
	"fmt"
)

// DeviceHeaderSize is the exact wire size of a device header in bytes.
const DeviceHeaderSize = 64

// DeviceHeader identifies one option card in the device buffer. The Unknown
// fields carry bits whose semantics have not been worked out; they are
// preserved verbatim across decode/encode, participate in the checksum, and
// are zero on freshly constructed headers.
type DeviceHeader struct {
	Version DeviceVersion
	// PCIBus is the bus the card is attached to.
	PCIBus uint8
	// PCIDevice is the device number on that bus, most commonly 0.
	PCIDevice uint8
	Unknown1  uint32
	Unknown2  uint32
	// FlagsCaps holds flags/capability bits, only partially understood.
	FlagsCaps uint32
	Unknown3  [9]uint32
}

// Checksum is the additive inverse (mod 2^32) of every scalar field in the
// header, unknown words included.
func (h DeviceHeader) Checksum() uint32 {
	sum := uint32(h.Version) +
		uint32(h.PCIBus) +
		uint32(h.PCIDevice) +
		h.Unknown1 +
		h.Unknown2 +
		h.FlagsCaps
	for _, u := range h.Unknown3 {
		sum += u
	}
	return -sum
}

// Encode serializes the header into its 64-byte wire form, including a
// freshly computed checksum.
func (h DeviceHeader) Encode() []byte {
	buf := make([]byte, DeviceHeaderSize)
	buf[0] = uint8(h.Version)
	buf[4] = h.PCIBus
	buf[8] = h.PCIDevice
	binary.LittleEndian.PutUint32(buf[12:], h.Unknown1)
	binary.LittleEndian.PutUint32(buf[16:], h.Unknown2)
	binary.LittleEndian.PutUint32(buf[20:], h.FlagsCaps)
	for i, u := range h.Unknown3 {
		binary.LittleEndian.PutUint32(buf[24+4*i:], u)
	}
	binary.LittleEndian.PutUint32(buf[60:], h.Checksum())
	return buf
}

// DecodeDeviceHeader deserializes a device header from its wire form. It
// fails only when data is shorter than DeviceHeaderSize; the stored checksum
// is not validated.
func DecodeDeviceHeader(data []byte) (DeviceHeader, error) {
	if len(data) < DeviceHeaderSize {
		return DeviceHeader{}, fmt.Errorf("device header: need %d bytes, have %d", DeviceHeaderSize, len(data))
	}
	h := DeviceHeader{
		Version:   DeviceVersionFrom(data[0]),
		PCIBus:    data[4],
		PCIDevice: data[8],
		Unknown1:  binary.LittleEndian.Uint32(data[12:]),
		Unknown2:  binary.LittleEndian.Uint32(data[16:]),
		FlagsCaps: binary.LittleEndian.Uint32(data[20:]),
	}
	for i := range h.Unknown3 {
		h.Unknown3[i] = binary.LittleEndian.Uint32(data[24+4*i:])
	}
	return h, nil
}
