package ocsd

import (
	"encoding/binary"
	"fmt"
)

// SensorSize is the exact wire size of a sensor record in bytes.
const SensorSize = 32

// Sensor is a single sensor reading on one device.
type Sensor struct {
	Type     SensorType
	Location SensorLocation
	// Configuration is an opaque configuration word, low 16 bits of the
	// combined configuration/status field.
	Configuration uint16
	Status        SensorStatus
	// CautionThreshold is the reading above which a caution should be raised.
	CautionThreshold Celsius
	// MaxContinuousThreshold is the maximum allowed continuous temperature.
	MaxContinuousThreshold Celsius
	Reading                Celsius
	// UpdateCount is a wrapping counter of reading updates. Firmware expects
	// it to advance at least once per the header's UpdateInterval.
	UpdateCount uint16
	// Bus is the PCI bus number of the sensor's device. It is never stored
	// in the sensor's wire bytes but is folded into the checksum, so a
	// decoded sensor always comes back with a nil Bus. Leaving Bus nil makes
	// Encode produce 32 zero bytes, the representation of an unused slot.
	Bus *uint8
}

// configStatusWord packs Configuration into the low 16 bits and Status into
// the high 16 bits, exactly as the word appears on the wire.
func (s Sensor) configStatusWord() uint32 {
	return uint32(s.Configuration) | uint32(s.Status)<<16
}

func (s Sensor) scalarSum() uint32 {
	return uint32(s.Type) +
		uint32(s.Location) +
		uint32(s.CautionThreshold.Raw()) +
		uint32(s.MaxContinuousThreshold.Raw()) +
		s.configStatusWord() +
		uint32(s.Reading.Raw()) +
		uint32(s.UpdateCount)
}

// Checksum computes the record checksum for the given bus number. A sensor
// whose scalar fields sum to zero has checksum zero for every bus, which is
// what lets an unused slot be all zero bytes without a bus number attached.
func (s Sensor) Checksum(bus uint8) uint32 {
	sum := s.scalarSum()
	if sum == 0 {
		return 0
	}
	return -(sum + uint32(bus))
}

// Encode serializes the sensor into its 32-byte wire form. When Bus is nil
// the result is all zero bytes; callers must set Bus to produce a live
// record with a valid checksum.
func (s Sensor) Encode() []byte {
	buf := make([]byte, SensorSize)
	if s.Bus == nil {
		return buf
	}
	buf[0] = uint8(s.Type)
	binary.LittleEndian.PutUint32(buf[4:], uint32(s.Location))
	buf[8] = s.CautionThreshold.Raw()
	buf[12] = s.MaxContinuousThreshold.Raw()
	binary.LittleEndian.PutUint32(buf[16:], s.configStatusWord())
	buf[20] = s.Reading.Raw()
	binary.LittleEndian.PutUint16(buf[24:], s.UpdateCount)
	binary.LittleEndian.PutUint32(buf[28:], s.Checksum(*s.Bus))
	return buf
}

// DecodeSensor deserializes a sensor from its wire form. It fails only when
// data is shorter than SensorSize. Bus is always nil after decode since it is
// not wire-resident, and the stored checksum is not validated.
func DecodeSensor(data []byte) (Sensor, error) {
	if len(data) < SensorSize {
		return Sensor{}, fmt.Errorf("sensor: need %d bytes, have %d", SensorSize, len(data))
	}
	word := binary.LittleEndian.Uint32(data[16:])
	return Sensor{
		Type:                   SensorTypeFrom(data[0]),
		Location:               SensorLocationFrom(binary.LittleEndian.Uint32(data[4:])),
		Configuration:          uint16(word),
		Status:                 SensorStatus(word >> 16),
		CautionThreshold:       CelsiusFromRaw(data[8]),
		MaxContinuousThreshold: CelsiusFromRaw(data[12]),
		Reading:                CelsiusFromRaw(data[20]),
		UpdateCount:            binary.LittleEndian.Uint16(data[24:]),
	}, nil
}
