package mmio

import "fmt"

// Buffer is an in-process Mapper over a plain byte slice standing in for
// physical memory. Addresses are absolute: the buffer covers
// [base, base+size). Tests and simulations seed it through Bytes.
type Buffer struct {
	base uint64
	data []byte
}

// NewBuffer allocates a zeroed buffer of size bytes pretending to live at
// base.
func NewBuffer(base uint64, size int) *Buffer {
	return &Buffer{base: base, data: make([]byte, size)}
}

// Base returns the simulated start address.
func (b *Buffer) Base() uint64 {
	return b.base
}

// Bytes exposes the backing slice so callers can seed and inspect raw
// content directly, the way firmware would.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Open returns a view of [addr, addr+length). It fails when the range falls
// outside the buffer.
func (b *Buffer) Open(addr uint64, length int) (Region, error) {
	if length <= 0 {
		return nil, fmt.Errorf("mmio: invalid mapping length %d", length)
	}
	end := b.base + uint64(len(b.data))
	if addr < b.base || addr+uint64(length) > end {
		return nil, fmt.Errorf("mmio: mapping %#x+%d outside buffer %#x..%#x", addr, length, b.base, end)
	}
	off := int(addr - b.base)
	return &bufferRegion{data: b.data[off : off+length]}, nil
}

type bufferRegion struct {
	data []byte
}

func (r *bufferRegion) ReadInto(p []byte) error {
	if len(p) > len(r.data) {
		return fmt.Errorf("mmio: read of %d bytes exceeds region of %d", len(p), len(r.data))
	}
	copy(p, r.data)
	return nil
}

func (r *bufferRegion) WriteFrom(p []byte) error {
	if len(p) > len(r.data) {
		return fmt.Errorf("mmio: write of %d bytes exceeds region of %d", len(p), len(r.data))
	}
	copy(r.data, p)
	return nil
}

func (r *bufferRegion) Close() error {
	return nil
}
