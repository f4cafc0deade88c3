package api

import "github.com/ocsd-project/ocsd/pkg/ocsd"

// BufferReader is the read-only view of an opened OCSD buffer the server
// needs. *client.Context satisfies it.
type BufferReader interface {
	ReadHeader() (ocsd.SystemHeader, error)
	ReadDevice(i int) (ocsd.Device, error)
	Slots() int
}
