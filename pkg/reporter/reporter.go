// Package reporter periodically writes configured synthetic devices into a
// live OCSD buffer. Management firmware polls the buffer and only trusts a
// sensor whose update counter keeps moving, so every cycle re-encodes each
// device with a bumped counter.
package reporter

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ocsd-project/ocsd/pkg/client"
	"github.com/ocsd-project/ocsd/pkg/config"
	"github.com/ocsd-project/ocsd/pkg/ocsd"
	"github.com/ocsd-project/ocsd/pkg/state"
)

// BuildDevice encodes one configured device as a wire record. Configured
// sensors fill the leading slots; the rest stay null. count is applied to
// every populated sensor.
func BuildDevice(dc config.DeviceConfig, count uint16) (ocsd.Device, error) {
	d := ocsd.Device{
		Header: ocsd.DeviceHeader{
			Version:   ocsd.DeviceVersion1,
			PCIBus:    dc.PCIBus,
			PCIDevice: dc.PCIDevice,
			FlagsCaps: dc.FlagsCaps,
		},
	}

	if len(dc.Sensors) > ocsd.SensorsPerDevice {
		return ocsd.Device{}, fmt.Errorf("reporter: device slot %d: %d sensors exceed capacity %d",
			dc.Slot, len(dc.Sensors), ocsd.SensorsPerDevice)
	}

	bus := dc.PCIBus
	for i, sc := range dc.Sensors {
		location, err := sc.ParseLocation()
		if err != nil {
			return ocsd.Device{}, fmt.Errorf("reporter: device slot %d sensor %d: %w", dc.Slot, i, err)
		}
		caution, err := ocsd.NewCelsius(sc.CautionThreshold)
		if err != nil {
			return ocsd.Device{}, fmt.Errorf("reporter: device slot %d sensor %d caution: %w", dc.Slot, i, err)
		}
		max, err := ocsd.NewCelsius(sc.MaxContinuousThreshold)
		if err != nil {
			return ocsd.Device{}, fmt.Errorf("reporter: device slot %d sensor %d max continuous: %w", dc.Slot, i, err)
		}
		reading, err := ocsd.NewCelsius(sc.Reading)
		if err != nil {
			return ocsd.Device{}, fmt.Errorf("reporter: device slot %d sensor %d reading: %w", dc.Slot, i, err)
		}

		d.Sensors[i] = ocsd.Sensor{
			Type:                   ocsd.SensorTypeThermal,
			Location:               location,
			Configuration:          sc.Configuration,
			Status:                 ocsd.StatusWithChecksum | ocsd.StatusPresent | ocsd.StatusNotFailed,
			CautionThreshold:       caution,
			MaxContinuousThreshold: max,
			Reading:                reading,
			UpdateCount:            count,
			Bus:                    &bus,
		}
	}

	return d, nil
}

// Reporter drives the periodic write loop over one opened buffer.
type Reporter struct {
	cx     *client.Context
	st     *state.Store
	cfg    *config.Config
	counts map[int]uint16
}

// New loads the persisted counter for every configured slot so the sequence
// continues across process restarts.
func New(cx *client.Context, st *state.Store, cfg *config.Config) (*Reporter, error) {
	r := &Reporter{
		cx:     cx,
		st:     st,
		cfg:    cfg,
		counts: make(map[int]uint16, len(cfg.Devices)),
	}
	for _, dc := range cfg.Devices {
		count, err := st.UpdateCount(dc.Slot)
		if err != nil {
			return nil, err
		}
		r.counts[dc.Slot] = count
	}
	return r, nil
}

// Step performs one write cycle: every configured device is re-encoded with
// its next counter value, written into its slot, and the counter persisted.
func (r *Reporter) Step() error {
	for _, dc := range r.cfg.Devices {
		count := r.counts[dc.Slot] + 1

		d, err := BuildDevice(dc, count)
		if err != nil {
			return err
		}
		if err := r.cx.WriteDevice(dc.Slot, d); err != nil {
			return err
		}
		if err := r.st.SetUpdateCount(dc.Slot, count); err != nil {
			return err
		}
		r.counts[dc.Slot] = count
	}
	return nil
}

// Run enables the configured slots in the header, records the run, then
// steps on every tick until ctx is cancelled. The first cycle runs
// immediately.
func (r *Reporter) Run(ctx context.Context) error {
	if len(r.cfg.Devices) == 0 {
		return fmt.Errorf("reporter: no devices configured")
	}

	maxSlot := 0
	slots := make([]int, 0, len(r.cfg.Devices))
	for _, dc := range r.cfg.Devices {
		slots = append(slots, dc.Slot)
		if dc.Slot > maxSlot {
			maxSlot = dc.Slot
		}
	}

	hdr, err := r.cx.ReadHeader()
	if err != nil {
		return err
	}
	// Firmware only polls slots below buffers_in_use, so raise it to cover
	// the highest configured slot before the first write.
	if int(hdr.BuffersInUse) < maxSlot+1 {
		hdr.BuffersInUse = uint8(maxSlot + 1)
		if err := r.cx.WriteHeader(hdr); err != nil {
			return err
		}
	}

	baseAddr, err := r.cfg.BaseAddr()
	if err != nil {
		return err
	}
	runID, err := r.st.RecordRun(state.Run{
		StartedAt:   time.Now().UTC(),
		BaseAddress: baseAddr,
		Slots:       slots,
	})
	if err != nil {
		return err
	}
	log.Printf("reporter: run %s started, %d devices every %dms", runID, len(slots), r.cfg.IntervalMs)

	ticker := time.NewTicker(time.Duration(r.cfg.IntervalMs) * time.Millisecond)
	defer ticker.Stop()

	if err := r.Step(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			log.Printf("reporter: run %s stopping: %v", runID, ctx.Err())
			return nil
		case <-ticker.C:
			if err := r.Step(); err != nil {
				return err
			}
		}
	}
}
