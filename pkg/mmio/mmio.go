// Package mmio abstracts access to mapped physical memory. The protocol and
// client layers only ever see the two interfaces here; how a view is obtained
// is a per-platform concern implemented once (DevMem for Linux /dev/mem,
// Buffer for in-process simulation and tests).
package mmio

// Mapper opens fixed-length views of an address space.
type Mapper interface {
	// Open maps length bytes starting at the absolute address addr. The
	// returned Region stays valid until Close. A failed Open is never
	// retried by callers.
	Open(addr uint64, length int) (Region, error)
}

// Region is one owned view of mapped memory. Reads and writes are immediate
// memory copies with no suspension point. The underlying memory may be
// mutated by firmware or a management controller at any time, so a read is
// inherently a racy snapshot; Region does not attempt to detect or resolve
// that.
type Region interface {
	// ReadInto fills p from the start of the region. It fails when p is
	// larger than the region.
	ReadInto(p []byte) error
	// WriteFrom copies p to the start of the region. It fails when p is
	// larger than the region.
	WriteFrom(p []byte) error
	// Close releases the view. The region must not be used afterwards.
	Close() error
}
