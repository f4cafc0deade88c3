package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to build a valid single-device config quickly
func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.BaseAddress = "0xf4bda000"
	cfg.Devices = []DeviceConfig{
		{
			Slot:      2,
			PCIBus:    4,
			FlagsCaps: 0x10,
			Sensors: []SensorConfig{
				{
					Location:               "internal_to_asic",
					CautionThreshold:       90,
					MaxContinuousThreshold: 80,
					Reading:                40,
				},
			},
		},
	}
	return cfg
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocsd.yaml")
	content := `
base_address: "0xf4bda000"
interval_ms: 500
state_dir: /var/lib/ocsd
devices:
  - slot: 2
    pci_bus: 4
    flags_caps: 16
    sensors:
      - location: internal_to_asic
        caution_threshold: 90
        max_continuous_threshold: 80
        reading: 40
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.IntervalMs)
	assert.Equal(t, "/var/lib/ocsd", cfg.StateDir)
	// Unset tunables keep their defaults.
	assert.Equal(t, "127.0.0.1:9402", cfg.Listen)

	require.Len(t, cfg.Devices, 1)
	assert.Equal(t, uint8(4), cfg.Devices[0].PCIBus)
	assert.Equal(t, uint32(0x10), cfg.Devices[0].FlagsCaps)

	addr, err := cfg.BaseAddr()
	require.NoError(t, err)
	assert.Equal(t, uint64(0xf4bda000), addr)

	require.NoError(t, Validate(cfg))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidateRejectsBadBaseAddress(t *testing.T) {
	for _, addr := range []string{"", "zero", "0x", "0"} {
		cfg := validConfig()
		cfg.BaseAddress = addr
		assert.Error(t, Validate(cfg), "base_address %q", addr)
	}
}

func TestValidateRejectsBadInterval(t *testing.T) {
	cfg := validConfig()
	cfg.IntervalMs = 0
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsDuplicateSlots(t *testing.T) {
	cfg := validConfig()
	cfg.Devices = append(cfg.Devices, cfg.Devices[0])
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsTooManySensors(t *testing.T) {
	cfg := validConfig()
	s := cfg.Devices[0].Sensors[0]
	cfg.Devices[0].Sensors = []SensorConfig{s, s, s, s}
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsUnknownLocation(t *testing.T) {
	cfg := validConfig()
	cfg.Devices[0].Sensors[0].Location = "somewhere"
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsOutOfRangeTemperature(t *testing.T) {
	cfg := validConfig()
	cfg.Devices[0].Sensors[0].Reading = 300
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsDeviceWithoutSensors(t *testing.T) {
	cfg := validConfig()
	cfg.Devices[0].Sensors = nil
	assert.Error(t, Validate(cfg))
}
