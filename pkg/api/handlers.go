package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ocsd-project/ocsd/pkg/ocsd"
)

// sendSuccess wraps data in the response envelope.
func sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

// sendError wraps an error message in the response envelope.
func sendError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: false, Error: message})
}

// Server handles HTTP requests over one opened buffer
type Server struct {
	buffer  BufferReader
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new server instance
func NewServer(buffer BufferReader, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		buffer:  buffer,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reads the header to prove the mapping is alive.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	hdr, err := s.buffer.ReadHeader()
	s.metrics.RecordBufferRead("header", err == nil, time.Since(start))
	if err != nil {
		sendError(w, "buffer unreachable: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	sendSuccess(w, map[string]interface{}{
		"status":         "ok",
		"slots":          s.buffer.Slots(),
		"buffers_in_use": hdr.BuffersInUse,
	})
}

// handleHeader returns the decoded system header.
func (s *Server) handleHeader(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	hdr, err := s.buffer.ReadHeader()
	s.metrics.RecordBufferRead("header", err == nil, time.Since(start))
	if err != nil {
		sendError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	sendSuccess(w, headerResponse(hdr))
}

// handleListDevices returns every mapped device slot.
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	devices := make([]DeviceResponse, 0, s.buffer.Slots())
	for i := 0; i < s.buffer.Slots(); i++ {
		d, err := s.readDevice(i)
		if err != nil {
			sendError(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		devices = append(devices, d)
	}
	sendSuccess(w, devices)
}

// handleGetDevice returns one device slot.
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil {
		sendError(w, "slot must be an integer", http.StatusBadRequest)
		return
	}
	if slot < 0 || slot >= s.buffer.Slots() {
		sendError(w, "slot out of range", http.StatusNotFound)
		return
	}

	d, err := s.readDevice(slot)
	if err != nil {
		sendError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	sendSuccess(w, d)
}

// readDevice reads and converts one slot, exporting its sensors as gauges on
// the way through.
func (s *Server) readDevice(slot int) (DeviceResponse, error) {
	start := time.Now()
	d, err := s.buffer.ReadDevice(slot)
	s.metrics.RecordBufferRead("device", err == nil, time.Since(start))
	if err != nil {
		return DeviceResponse{}, err
	}

	resp := DeviceResponse{
		Slot:      slot,
		Version:   uint8(d.Header.Version),
		PCIBus:    d.Header.PCIBus,
		PCIDevice: d.Header.PCIDevice,
		FlagsCaps: d.Header.FlagsCaps,
		Sensors:   []SensorResponse{},
	}

	for i, sensor := range d.Sensors {
		if sensor == (ocsd.Sensor{}) {
			continue
		}
		s.metrics.RecordSensor(slot, i, sensor.Reading.Degrees(), sensor.UpdateCount)
		resp.Sensors = append(resp.Sensors, SensorResponse{
			Index:                  i,
			Type:                   uint8(sensor.Type),
			Location:               uint32(sensor.Location),
			Configuration:          sensor.Configuration,
			Status:                 uint16(sensor.Status),
			CautionThreshold:       sensor.CautionThreshold.Degrees(),
			MaxContinuousThreshold: sensor.MaxContinuousThreshold.Degrees(),
			Reading:                sensor.Reading.Degrees(),
			UpdateCount:            sensor.UpdateCount,
			Checksum:               sensor.Checksum(d.Header.PCIBus),
		})
	}

	return resp, nil
}

func headerResponse(hdr ocsd.SystemHeader) HeaderResponse {
	return HeaderResponse{
		Version:            uint8(hdr.Version),
		BufferSize:         hdr.BufferSize,
		MaxOptionCards:     hdr.MaxOptionCards,
		OneOptionCardSize:  hdr.OneOptionCardSize,
		BufferStartAddress: "0x" + strconv.FormatUint(uint64(hdr.BufferStartAddress), 16),
		UpdateInterval:     hdr.UpdateInterval,
		BuffersInUse:       hdr.BuffersInUse,
		Checksum:           hdr.Checksum(),
	}
}
