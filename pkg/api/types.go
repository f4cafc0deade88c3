package api

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the telemetry server
type ServerConfig struct {
	Listen string
	APIKey string
}

// HeaderResponse is the JSON shape of a decoded system header.
type HeaderResponse struct {
	Version            uint8  `json:"version"`
	BufferSize         uint16 `json:"buffer_size"`
	MaxOptionCards     uint8  `json:"max_option_cards"`
	OneOptionCardSize  uint8  `json:"one_option_card_size"`
	BufferStartAddress string `json:"buffer_start_address"`
	UpdateInterval     uint8  `json:"update_interval"`
	BuffersInUse       uint8  `json:"buffers_in_use"`
	Checksum           uint32 `json:"checksum"`
}

// DeviceResponse is the JSON shape of one decoded device slot.
type DeviceResponse struct {
	Slot      int              `json:"slot"`
	Version   uint8            `json:"version"`
	PCIBus    uint8            `json:"pci_bus"`
	PCIDevice uint8            `json:"pci_device"`
	FlagsCaps uint32           `json:"flags_caps"`
	Sensors   []SensorResponse `json:"sensors"`
}

// SensorResponse is the JSON shape of one sensor record. Null sensor slots
// are omitted from DeviceResponse rather than serialized as zeroes.
type SensorResponse struct {
	Index                  int    `json:"index"`
	Type                   uint8  `json:"type"`
	Location               uint32 `json:"location"`
	Configuration          uint16 `json:"configuration"`
	Status                 uint16 `json:"status"`
	CautionThreshold       int16  `json:"caution_threshold"`
	MaxContinuousThreshold int16  `json:"max_continuous_threshold"`
	Reading                int16  `json:"reading"`
	UpdateCount            uint16 `json:"update_count"`
	Checksum               uint32 `json:"checksum"`
}
