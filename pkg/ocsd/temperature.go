package ocsd

import "errors"

// ErrTempOutOfRange is returned when a degree value cannot be represented in
// the single-byte wire format.
var ErrTempOutOfRange = errors.New("temperature does not fit in the single-byte range")

// celsiusOffset is added to degree values before they are narrowed to the raw
// byte. Reserved for future calibration; current hardware uses no offset.
const celsiusOffset int16 = 0

// Celsius is a signed whole-degree temperature stored as a single raw byte.
// It is a pure value type with no shared state.
type Celsius struct {
	value int8
}

// NewCelsius builds a temperature from whole degrees. It fails with
// ErrTempOutOfRange when degrees (after the calibration offset) does not fit
// in a signed byte.
func NewCelsius(degrees int16) (Celsius, error) {
	v := degrees + celsiusOffset
	if v < -128 || v > 127 {
		return Celsius{}, ErrTempOutOfRange
	}
	return Celsius{value: int8(v)}, nil
}

// CelsiusFromRaw reinterprets a wire byte as a temperature. Every byte is a
// valid reading, so this never fails.
func CelsiusFromRaw(raw uint8) Celsius {
	return Celsius{value: int8(raw)}
}

// Raw returns the two's-complement wire byte.
func (c Celsius) Raw() uint8 {
	return uint8(c.value)
}

// Degrees returns the temperature in whole degrees, the inverse of NewCelsius.
func (c Celsius) Degrees() int16 {
	return int16(c.value) - celsiusOffset
}
