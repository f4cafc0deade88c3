// Package ocsd encodes and decodes the fixed binary register layout used by
// server hardware to expose on-board sensor telemetry through a shared memory
// region ("OCSD"). The layout is reverse-engineered from observed hardware
// behavior; every offset, padding byte, and checksum formula here matters.
//
// # Records
//
// Four record types exist, all little-endian with explicit zero padding so
// every field sits on a 4-byte boundary:
//
//	SystemHeader (64 bytes)
//	  [Version(1)+pad(3)][BufferSize(2)+pad(2)][MaxOptionCards(1)+pad(3)]
//	  [OneOptionCardSize(1)+pad(3)][BufferStartAddress(4)][reserved(12)]
//	  [UpdateInterval(1)+pad(3)][reserved(20)][BuffersInUse(1)+pad(3)][Checksum(4)]
//
//	DeviceHeader (64 bytes)
//	  [Version(1)+pad(3)][PCIBus(1)+pad(3)][PCIDevice(1)+pad(3)]
//	  [Unknown1(4)][Unknown2(4)][FlagsCaps(4)][Unknown3(36)][Checksum(4)]
//
//	Sensor (32 bytes)
//	  [Type(1)+pad(3)][Location(4)][CautionThreshold(1)+pad(3)]
//	  [MaxContinuousThreshold(1)+pad(3)][ConfigurationStatus(4)]
//	  [Reading(1)+pad(3)][UpdateCount(2)+pad(2)][Checksum(4)]
//
//	Device (160 bytes) = DeviceHeader followed by exactly 3 Sensors
//
// The low 16 bits of ConfigurationStatus carry the opaque configuration word,
// the high 16 bits the status bitmask.
//
// # Checksums
//
// Every record carries a 32-bit checksum defined as the additive inverse
// (mod 2^32) of the sum of its scalar fields, each zero-extended to 32 bits.
// A sensor checksum additionally folds in the PCI bus number of its device,
// which is not stored in the sensor's own bytes. A sensor whose scalar fields
// sum to zero has checksum zero regardless of bus, so an unused slot is
// represented by 32 zero bytes.
//
// Checksums are computed on demand and never validated on decode: the package
// trusts hardware-supplied data and only guarantees that records it encodes
// carry a correct checksum.
//
// # Decoding is total
//
// Decoding never fails on input of the correct length. Enum-coded bytes the
// package does not recognize decode to an explicit Unknown variant, and
// reserved fields round-trip as opaque integers.
package ocsd
