package ocsd

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// Sensor records captured from a live buffer. Both were written by a device
// on PCI bus 3.
var (
	liveSensorAsic = []byte{
		0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x67, 0x00, 0x00, 0x00, 0x5d, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x0b, 0x00, 0x23, 0x00, 0x00, 0x00,
		0x83, 0xdb, 0x00, 0x00, 0x91, 0x23, 0xf4, 0xff,
	}
	liveSensorOnboard = []byte{
		0x01, 0x00, 0x00, 0x00, 0x05, 0x00, 0x00, 0x00,
		0x4e, 0x00, 0x00, 0x00, 0x44, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x0b, 0x00, 0x18, 0x00, 0x00, 0x00,
		0x82, 0xdb, 0x00, 0x00, 0xcb, 0x23, 0xf4, 0xff,
	}
)

func TestSensorChecksumAgainstCapturedRecords(t *testing.T) {
	for _, data := range [][]byte{liveSensorAsic, liveSensorOnboard} {
		s, err := DecodeSensor(data)
		if err != nil {
			t.Fatalf("DecodeSensor failed: %v", err)
		}
		stored := binary.LittleEndian.Uint32(data[28:32])
		if got := s.Checksum(3); got != stored {
			t.Errorf("Checksum(3) = %#x, want stored %#x", got, stored)
		}
	}
}

func TestSensorDecodeFields(t *testing.T) {
	s, err := DecodeSensor(liveSensorAsic)
	if err != nil {
		t.Fatalf("DecodeSensor failed: %v", err)
	}
	if s.Type != SensorTypeThermal {
		t.Errorf("Type = %d, want thermal", s.Type)
	}
	if s.Location != LocationInternalToAsic {
		t.Errorf("Location = %d, want internal-to-asic", s.Location)
	}
	if s.CautionThreshold.Degrees() != 0x67 {
		t.Errorf("CautionThreshold = %d, want %d", s.CautionThreshold.Degrees(), 0x67)
	}
	if s.MaxContinuousThreshold.Degrees() != 0x5d {
		t.Errorf("MaxContinuousThreshold = %d, want %d", s.MaxContinuousThreshold.Degrees(), 0x5d)
	}
	if s.Configuration != 0 {
		t.Errorf("Configuration = %#x, want 0", s.Configuration)
	}
	if s.Status != 0x000b {
		t.Errorf("Status = %#x, want 0x000b", s.Status)
	}
	if !s.Status.Has(StatusNotFailed | StatusPresent | StatusWithChecksum) {
		t.Error("expected not-failed, present, and with-checksum flags")
	}
	if s.Status.Has(StatusDisabled) {
		t.Error("disabled flag should not be set")
	}
	if s.Reading.Degrees() != 0x23 {
		t.Errorf("Reading = %d, want %d", s.Reading.Degrees(), 0x23)
	}
	if s.UpdateCount != 0xdb83 {
		t.Errorf("UpdateCount = %#x, want 0xdb83", s.UpdateCount)
	}
	if s.Bus != nil {
		t.Error("Bus must be nil after decode; it is not wire-resident")
	}
}

func TestSensorEncodeReproducesCapturedRecord(t *testing.T) {
	s, err := DecodeSensor(liveSensorAsic)
	if err != nil {
		t.Fatalf("DecodeSensor failed: %v", err)
	}
	bus := uint8(3)
	s.Bus = &bus
	if got := s.Encode(); !bytes.Equal(got, liveSensorAsic) {
		t.Errorf("Encode() = % x, want % x", got, liveSensorAsic)
	}
}

func TestNullSensorChecksumIsZeroForEveryBus(t *testing.T) {
	var null Sensor
	for _, bus := range []uint8{0, 1, 3, 0x7f, 0xff} {
		if got := null.Checksum(bus); got != 0 {
			t.Errorf("null sensor Checksum(%d) = %#x, want 0", bus, got)
		}
	}

	decoded, err := DecodeSensor(make([]byte, SensorSize))
	if err != nil {
		t.Fatalf("DecodeSensor failed: %v", err)
	}
	if got := decoded.Checksum(3); got != 0 {
		t.Errorf("decoded null sensor Checksum(3) = %#x, want 0", got)
	}
}

func TestSensorWithoutBusEncodesToZeroBytes(t *testing.T) {
	caution, _ := NewCelsius(90)
	max, _ := NewCelsius(80)
	reading, _ := NewCelsius(40)

	s := Sensor{
		Type:                   SensorTypeThermal,
		Location:               LocationInternalToAsic,
		Status:                 StatusNotFailed | StatusPresent | StatusWithChecksum,
		CautionThreshold:       caution,
		MaxContinuousThreshold: max,
		Reading:                reading,
		UpdateCount:            7,
	}
	if !bytes.Equal(s.Encode(), make([]byte, SensorSize)) {
		t.Error("a sensor with nil Bus must encode to all zero bytes")
	}
}

func TestSensorEncodeDecodeRoundTrip(t *testing.T) {
	caution, _ := NewCelsius(90)
	max, _ := NewCelsius(80)
	reading, _ := NewCelsius(-12)
	bus := uint8(4)

	testCases := []struct {
		name string
		s    Sensor
	}{
		{
			name: "typical thermal sensor",
			s: Sensor{
				Type:                   SensorTypeThermal,
				Location:               LocationInternalToAsic,
				Status:                 StatusNotFailed | StatusPresent | StatusWithChecksum,
				CautionThreshold:       caution,
				MaxContinuousThreshold: max,
				Reading:                reading,
				UpdateCount:            0xfffe,
				Bus:                    &bus,
			},
		},
		{
			name: "onboard sensor with configuration word",
			s: Sensor{
				Type:                   SensorTypeThermal,
				Location:               LocationOnboardOther,
				Configuration:          0xbeef,
				Status:                 StatusPresent | StatusDisabled,
				CautionThreshold:       caution,
				MaxContinuousThreshold: max,
				Reading:                reading,
				UpdateCount:            1,
				Bus:                    &bus,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := tc.s.Encode()
			if len(encoded) != SensorSize {
				t.Fatalf("encoded length = %d, want %d", len(encoded), SensorSize)
			}

			decoded, err := DecodeSensor(encoded)
			if err != nil {
				t.Fatalf("DecodeSensor failed: %v", err)
			}
			if decoded.Bus != nil {
				t.Error("Bus must come back nil")
			}

			want := tc.s
			want.Bus = nil
			if decoded != want {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, want)
			}
		})
	}
}

func TestDecodeSensorShortInput(t *testing.T) {
	if _, err := DecodeSensor(make([]byte, SensorSize-1)); err == nil {
		t.Error("expected error for short input")
	}
}
