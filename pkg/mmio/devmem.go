//go:build linux

package mmio

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// DefaultDevMemPath is the character device exposing physical memory.
const DefaultDevMemPath = "/dev/mem"

// DevMem maps physical memory through a memory character device. The zero
// value maps /dev/mem; Path can point the mapper at another device node,
// which is also how tests exercise it against a plain file.
type DevMem struct {
	Path string
}

// NewDevMem returns a mapper over /dev/mem. Opening regions typically
// requires root.
func NewDevMem() *DevMem {
	return &DevMem{Path: DefaultDevMemPath}
}

// Open maps length bytes of physical memory at addr. The mmap itself is
// page-aligned as the kernel requires; the returned region exposes exactly
// [addr, addr+length).
func (m *DevMem) Open(addr uint64, length int) (Region, error) {
	if length <= 0 {
		return nil, fmt.Errorf("mmio: invalid mapping length %d", length)
	}

	path := m.Path
	if path == "" {
		path = DefaultDevMemPath
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("mmio: open %s: %w", path, err)
	}
	// The mapping outlives the descriptor.
	defer f.Close()

	pageSize := uint64(os.Getpagesize())
	base := addr &^ (pageSize - 1)
	off := int(addr - base)

	mem, err := unix.Mmap(int(f.Fd()), int64(base), off+length,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmio: mmap %#x+%d: %w", addr, length, err)
	}

	return &devMemRegion{mem: mem, off: off, length: length}, nil
}

type devMemRegion struct {
	mem    []byte
	off    int
	length int
}

func (r *devMemRegion) ReadInto(p []byte) error {
	if r.mem == nil {
		return fmt.Errorf("mmio: region is closed")
	}
	if len(p) > r.length {
		return fmt.Errorf("mmio: read of %d bytes exceeds region of %d", len(p), r.length)
	}
	copy(p, r.mem[r.off:r.off+len(p)])
	return nil
}

func (r *devMemRegion) WriteFrom(p []byte) error {
	if r.mem == nil {
		return fmt.Errorf("mmio: region is closed")
	}
	if len(p) > r.length {
		return fmt.Errorf("mmio: write of %d bytes exceeds region of %d", len(p), r.length)
	}
	copy(r.mem[r.off:], p)
	return nil
}

func (r *devMemRegion) Close() error {
	if r.mem == nil {
		return nil
	}
	err := unix.Munmap(r.mem)
	r.mem = nil
	return err
}
