// Package config loads and validates the reporter configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ocsd-project/ocsd/pkg/ocsd"
)

// Config is the on-disk yaml configuration for the ocsd tool.
type Config struct {
	// BaseAddress is the physical address of the OCSD system header, written
	// as hex ("0xf4bda000"). There is no built-in platform table; the
	// address is always explicit and platform-specific.
	BaseAddress string `yaml:"base_address"`
	// MemPath overrides the memory device node, mainly for testing against a
	// file. Empty means /dev/mem.
	MemPath string `yaml:"mem_path"`
	// IntervalMs is the reporter write interval in milliseconds.
	IntervalMs int `yaml:"interval_ms"`
	// Listen is the bind address of the telemetry HTTP server.
	Listen string `yaml:"listen"`
	// APIKey protects the HTTP API when non-empty. The /metrics endpoint is
	// always unprotected for scraping.
	APIKey string `yaml:"api_key"`
	// StateDir is where update counters and run records persist.
	StateDir string `yaml:"state_dir"`

	Devices []DeviceConfig `yaml:"devices"`
}

// DeviceConfig describes one synthetic device to report.
type DeviceConfig struct {
	// Slot is the option card slot the device is written into.
	Slot int `yaml:"slot"`
	// PCIBus is the PCI bus of the physical card, also folded into every
	// sensor checksum.
	PCIBus    uint8  `yaml:"pci_bus"`
	PCIDevice uint8  `yaml:"pci_device"`
	FlagsCaps uint32 `yaml:"flags_caps"`

	Sensors []SensorConfig `yaml:"sensors"`
}

// SensorConfig describes one sensor slot on a reported device.
type SensorConfig struct {
	// Location is "internal_to_asic" or "onboard_other".
	Location      string `yaml:"location"`
	Configuration uint16 `yaml:"configuration"`
	// Thresholds and the synthetic reading are whole degrees Celsius.
	CautionThreshold       int16 `yaml:"caution_threshold"`
	MaxContinuousThreshold int16 `yaml:"max_continuous_threshold"`
	Reading                int16 `yaml:"reading"`
}

// DefaultConfig returns a configuration with every tunable at its default.
// BaseAddress has no safe default and stays empty.
func DefaultConfig() *Config {
	return &Config{
		IntervalMs: 1000,
		Listen:     "127.0.0.1:9402",
		StateDir:   "./state",
	}
}

// Load reads and parses the configuration at configPath, filling unset
// tunables with defaults. It does not validate; call Validate afterwards.
func Load(configPath string) (*Config, error) {
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// BaseAddr parses the configured base address.
func (c *Config) BaseAddr() (uint64, error) {
	s := strings.TrimSpace(c.BaseAddress)
	if s == "" {
		return 0, fmt.Errorf("base_address is required")
	}
	addr, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("base_address %q is not a valid address: %w", c.BaseAddress, err)
	}
	if addr == 0 {
		return 0, fmt.Errorf("base_address must be non-zero")
	}
	return addr, nil
}

// ParseLocation maps the configured location name to its wire value.
func (s SensorConfig) ParseLocation() (ocsd.SensorLocation, error) {
	switch s.Location {
	case "internal_to_asic":
		return ocsd.LocationInternalToAsic, nil
	case "onboard_other":
		return ocsd.LocationOnboardOther, nil
	default:
		return ocsd.LocationUnknown, fmt.Errorf("unknown sensor location %q", s.Location)
	}
}

// Validate checks configuration correctness. It performs declarative
// validation only and never mutates the configuration.
func Validate(cfg *Config) error {
	if _, err := cfg.BaseAddr(); err != nil {
		return err
	}
	if cfg.IntervalMs <= 0 {
		return fmt.Errorf("interval_ms must be > 0")
	}

	seenSlots := make(map[int]bool)
	for _, d := range cfg.Devices {
		if d.Slot < 0 {
			return fmt.Errorf("device slot %d: slot must be >= 0", d.Slot)
		}
		if seenSlots[d.Slot] {
			return fmt.Errorf("device slot %d: configured twice", d.Slot)
		}
		seenSlots[d.Slot] = true

		if len(d.Sensors) == 0 {
			return fmt.Errorf("device slot %d: at least one sensor required", d.Slot)
		}
		if len(d.Sensors) > ocsd.SensorsPerDevice {
			return fmt.Errorf("device slot %d: at most %d sensors per device, have %d",
				d.Slot, ocsd.SensorsPerDevice, len(d.Sensors))
		}

		for i, s := range d.Sensors {
			if _, err := s.ParseLocation(); err != nil {
				return fmt.Errorf("device slot %d sensor %d: %w", d.Slot, i, err)
			}
			for _, degrees := range []int16{s.CautionThreshold, s.MaxContinuousThreshold, s.Reading} {
				if _, err := ocsd.NewCelsius(degrees); err != nil {
					return fmt.Errorf("device slot %d sensor %d: temperature %d: %w", d.Slot, i, degrees, err)
				}
			}
		}
	}

	return nil
}
