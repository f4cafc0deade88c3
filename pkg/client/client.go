// Package client opens and drives a live OCSD buffer through a memory
// mapper. A Context owns one mapped view of the system header plus one view
// per device slot for its whole lifetime; views are never shared or cloned.
//
// The model is single-threaded and synchronous. The package performs no
// locking, and the underlying memory may be mutated by firmware or a
// management controller at any time, so every read is a point-in-time
// snapshot and writes can race with hardware. Callers that share a Context
// across goroutines must add their own mutual exclusion per region.
package client

import (
	"fmt"

	"github.com/ocsd-project/ocsd/pkg/mmio"
	"github.com/ocsd-project/ocsd/pkg/ocsd"
)

// MappingError reports a failure to obtain or address a mapped view: the
// header region, a device slot region, or a slot index outside the
// configured capacity.
type MappingError struct {
	Msg string
	Err error
}

func (e *MappingError) Error() string {
	if e.Err != nil {
		return "ocsd: " + e.Msg + ": " + e.Err.Error()
	}
	return "ocsd: " + e.Msg
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// Context is the ready state over one shared OCSD buffer.
type Context struct {
	header  mmio.Region
	devices []deviceSlot
}

type deviceSlot struct {
	region mmio.Region
	size   int
}

// Open maps the 64-byte header region at baseAddress, decodes it once to
// learn the buffer geometry, then maps every device slot the header declares
// at buffer_start_address + one_option_card_size*i. Any individual mapping
// failure closes the views opened so far and returns the first error; no
// partial context is ever returned.
func Open(m mmio.Mapper, baseAddress uint64) (*Context, error) {
	hdrRegion, err := m.Open(baseAddress, ocsd.SystemHeaderSize)
	if err != nil {
		return nil, &MappingError{
			Msg: fmt.Sprintf("unable to open header at %#x", baseAddress),
			Err: err,
		}
	}

	c := &Context{header: hdrRegion}
	hdr, err := c.ReadHeader()
	if err != nil {
		c.Close()
		return nil, err
	}

	for i := 0; i < int(hdr.MaxOptionCards); i++ {
		addr := uint64(hdr.BufferStartAddress) + uint64(hdr.OneOptionCardSize)*uint64(i)
		region, err := m.Open(addr, int(hdr.OneOptionCardSize))
		if err != nil {
			c.Close()
			return nil, &MappingError{
				Msg: fmt.Sprintf("unable to open device slot %d at %#x", i, addr),
				Err: err,
			}
		}
		c.devices = append(c.devices, deviceSlot{region: region, size: int(hdr.OneOptionCardSize)})
	}

	return c, nil
}

// Slots returns the number of device slots mapped at construction.
func (c *Context) Slots() int {
	return len(c.devices)
}

// ReadHeader re-reads and decodes the header region. It reflects the
// header's current on-hardware values, not the geometry cached at Open, so
// callers must not assume geometry is immutable across the context's
// lifetime.
func (c *Context) ReadHeader() (ocsd.SystemHeader, error) {
	buf := make([]byte, ocsd.SystemHeaderSize)
	if err := c.header.ReadInto(buf); err != nil {
		return ocsd.SystemHeader{}, fmt.Errorf("ocsd: read header: %w", err)
	}
	return ocsd.DecodeSystemHeader(buf)
}

// WriteHeader replaces the header region with the encoding of h.
func (c *Context) WriteHeader(h ocsd.SystemHeader) error {
	if err := c.header.WriteFrom(h.Encode()); err != nil {
		return fmt.Errorf("ocsd: write header: %w", err)
	}
	return nil
}

func (c *Context) slot(i int) (deviceSlot, error) {
	if i < 0 || i >= len(c.devices) {
		return deviceSlot{}, &MappingError{
			Msg: fmt.Sprintf("requested device index %d doesn't fit max number of option cards %d", i, len(c.devices)),
		}
	}
	return c.devices[i], nil
}

// ReadDevice decodes the device record currently stored in slot i.
func (c *Context) ReadDevice(i int) (ocsd.Device, error) {
	s, err := c.slot(i)
	if err != nil {
		return ocsd.Device{}, err
	}
	buf := make([]byte, s.size)
	if err := s.region.ReadInto(buf); err != nil {
		return ocsd.Device{}, fmt.Errorf("ocsd: read device slot %d: %w", i, err)
	}
	return ocsd.DecodeDevice(buf)
}

// WriteDevice encodes d into slot i.
func (c *Context) WriteDevice(i int, d ocsd.Device) error {
	s, err := c.slot(i)
	if err != nil {
		return err
	}
	if err := s.region.WriteFrom(d.Encode()); err != nil {
		return fmt.Errorf("ocsd: write device slot %d: %w", i, err)
	}
	return nil
}

// Close releases every mapped view. The context must not be used afterwards.
func (c *Context) Close() error {
	var first error
	if c.header != nil {
		if err := c.header.Close(); err != nil {
			first = err
		}
		c.header = nil
	}
	for _, s := range c.devices {
		if err := s.region.Close(); err != nil && first == nil {
			first = err
		}
	}
	c.devices = nil
	return first
}
