package ocsd

import "fmt"

// SensorsPerDevice is the fixed sensor capacity of one device slot in the
// current hardware generation.
const SensorsPerDevice = 3

// DeviceSize is the exact wire size of a full device record in bytes.
const DeviceSize = DeviceHeaderSize + SensorsPerDevice*SensorSize

// Device is one option card record: a device header followed by a fixed
// array of sensors. Unused sensor slots must be left as zero-value Sensors
// (nil Bus) so they encode to all-zero bytes.
type Device struct {
	Header  DeviceHeader
	Sensors [SensorsPerDevice]Sensor
}

// Encode serializes the device as the header encoding followed by the three
// sensor encodings in slot order.
func (d Device) Encode() []byte {
	buf := make([]byte, 0, DeviceSize)
	buf = append(buf, d.Header.Encode()...)
	for _, s := range d.Sensors {
		buf = append(buf, s.Encode()...)
	}
	return buf
}

// DecodeDevice deserializes a device by slicing data into a header-sized
// prefix and three sensor-sized chunks. It fails only when data is shorter
// than DeviceSize.
func DecodeDevice(data []byte) (Device, error) {
	if len(data) < DeviceSize {
		return Device{}, fmt.Errorf("device: need %d bytes, have %d", DeviceSize, len(data))
	}
	var d Device
	h, err := DecodeDeviceHeader(data[:DeviceHeaderSize])
	if err != nil {
		return Device{}, err
	}
	d.Header = h
	for i := range d.Sensors {
		off := DeviceHeaderSize + i*SensorSize
		s, err := DecodeSensor(data[off : off+SensorSize])
		if err != nil {
			return Device{}, err
		}
		d.Sensors[i] = s
	}
	return d, nil
}
