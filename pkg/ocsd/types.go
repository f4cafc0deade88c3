package ocsd

// SystemVersion identifies the revision of the system header layout.
type SystemVersion uint8

const (
	SystemVersionUnknown SystemVersion = 0
	SystemVersion2       SystemVersion = 2
)

// SystemVersionFrom maps a wire byte to a SystemVersion. Unrecognized values
// map to SystemVersionUnknown rather than erroring, preserving forward
// compatibility with hardware revisions this package does not know about.
func SystemVersionFrom(v uint8) SystemVersion {
	switch v {
	case 2:
		return SystemVersion2
	default:
		return SystemVersionUnknown
	}
}

// DeviceVersion identifies the revision of the device header layout.
type DeviceVersion uint8

const (
	DeviceVersionUnknown DeviceVersion = 0
	DeviceVersion1       DeviceVersion = 1
)

// DeviceVersionFrom maps a wire byte to a DeviceVersion; unrecognized values
// map to DeviceVersionUnknown.
func DeviceVersionFrom(v uint8) DeviceVersion {
	switch v {
	case 1:
		return DeviceVersion1
	default:
		return DeviceVersionUnknown
	}
}

// SensorType identifies what a sensor measures.
type SensorType uint8

const (
	SensorTypeUnknown SensorType = 0
	SensorTypeThermal SensorType = 1
)

// SensorTypeFrom maps a wire byte to a SensorType; unrecognized values map to
// SensorTypeUnknown.
func SensorTypeFrom(v uint8) SensorType {
	switch v {
	case 1:
		return SensorTypeThermal
	default:
		return SensorTypeUnknown
	}
}

// SensorLocation identifies where on the board or card a sensor sits.
type SensorLocation uint32

const (
	LocationUnknown        SensorLocation = 0
	LocationInternalToAsic SensorLocation = 1
	LocationOnboardOther   SensorLocation = 5
)

// SensorLocationFrom maps a wire word to a SensorLocation; unrecognized
// values map to LocationUnknown.
func SensorLocationFrom(v uint32) SensorLocation {
	switch v {
	case 1:
		return LocationInternalToAsic
	case 5:
		return LocationOnboardOther
	default:
		return LocationUnknown
	}
}

// SensorStatus is a bitmask of per-sensor status flags. Flags combine with
// the | operator. The status occupies the high 16 bits of a sensor's
// ConfigurationStatus word; either side (device or management controller)
// may write it.
type SensorStatus uint16

const (
	StatusNotFailed SensorStatus = 1 << iota
	StatusPresent
	StatusDisabled
	StatusWithChecksum
)

// Has reports whether every flag in mask is set.
func (s SensorStatus) Has(mask SensorStatus) bool {
	return s&mask == mask
}
