// Package memory implements the PSX-shaped memory substrate (spec
// component C1): main RAM, the scratchpad, and the CLUT mirror, addressed
// through the same region-translation rule the PSX kernel presents to
// compiled code.
//
//	Region            Address range                    Backing
//	---------------------------------------------------------------
//	Main RAM (KUSEG)  0x0000_0000 .. 0x001F_FFFF         ram
//	Main RAM (KSEG0)  0x8000_0000 .. 0x801F_FFFF         ram (alias)
//	Scratchpad        0x1F80_0000 .. 0x1F80_03FF         scratchpad
//	(anything else)                                      OutOfRangeAccessError
//
// Grounded on the teacher's pkg/bus switch-based region decode, generalized
// from four NES address regions to these three, plus the bulk
// little-endian word access and single-buffer reset/restore convention of
// IntuitionEngine's memory_bus.go.
package memory

import (
	"encoding/binary"

	"github.com/KernelEquinox/sotn-sim/internal/errs"
	"github.com/KernelEquinox/sotn-sim/internal/layout"
)

// region identifies which backing array an address resolved to.
type region int

const (
	regionNone region = iota
	regionRAM
	regionScratchpad
)

// Memory owns the three fixed-size byte arrays compiled SotN code expects
// to see, plus an optional snapshot of main RAM for fast restore between
// per-room simulations.
type Memory struct {
	ram        [layout.RAMSize]byte
	scratchpad [layout.ScratchpadSize]byte
	clutStore  [layout.CLUTDataSize]byte
	snapshot   *[layout.RAMSize]byte
}

// New returns a zeroed memory substrate.
func New() *Memory {
	return &Memory{}
}

// translate applies the address-translation rule from spec.md §3: bits
// 31..29 select a region, and both the KUSEG and KSEG0 views of main RAM
// alias the same bytes.
func translate(addr uint32) (region, uint32) {
	switch {
	case addr <= 0x001FFFFF:
		return regionRAM, addr
	case addr >= 0x80000000 && addr <= 0x801FFFFF:
		return regionRAM, addr - 0x80000000
	case addr >= layout.ScratchpadBase && addr < layout.ScratchpadBase+layout.ScratchpadSize:
		return regionScratchpad, addr - layout.ScratchpadBase
	default:
		return regionNone, 0
	}
}

func (m *Memory) bytes(r region) []byte {
	switch r {
	case regionRAM:
		return m.ram[:]
	case regionScratchpad:
		return m.scratchpad[:]
	default:
		return nil
	}
}

// Read8 reads one byte, failing on an out-of-range address.
func (m *Memory) Read8(addr uint32) (uint8, error) {
	r, off := translate(addr)
	buf := m.bytes(r)
	if buf == nil {
		return 0, &errs.OutOfRangeAccessError{Addr: addr}
	}
	return buf[off], nil
}

// Write8 writes one byte, failing on an out-of-range address.
func (m *Memory) Write8(addr uint32, v uint8) error {
	r, off := translate(addr)
	buf := m.bytes(r)
	if buf == nil {
		return &errs.OutOfRangeAccessError{Addr: addr}
	}
	buf[off] = v
	return nil
}

// Read16 reads a little-endian halfword.
func (m *Memory) Read16(addr uint32) (uint16, error) {
	r, off := translate(addr)
	buf := m.bytes(r)
	if buf == nil || int(off)+2 > len(buf) {
		return 0, &errs.OutOfRangeAccessError{Addr: addr}
	}
	return binary.LittleEndian.Uint16(buf[off : off+2]), nil
}

// Write16 writes a little-endian halfword.
func (m *Memory) Write16(addr uint32, v uint16) error {
	r, off := translate(addr)
	buf := m.bytes(r)
	if buf == nil || int(off)+2 > len(buf) {
		return &errs.OutOfRangeAccessError{Addr: addr}
	}
	binary.LittleEndian.PutUint16(buf[off:off+2], v)
	return nil
}

// Read32 reads a little-endian word.
func (m *Memory) Read32(addr uint32) (uint32, error) {
	r, off := translate(addr)
	buf := m.bytes(r)
	if buf == nil || int(off)+4 > len(buf) {
		return 0, &errs.OutOfRangeAccessError{Addr: addr}
	}
	return binary.LittleEndian.Uint32(buf[off : off+4]), nil
}

// Write32 writes a little-endian word.
func (m *Memory) Write32(addr uint32, v uint32) error {
	r, off := translate(addr)
	buf := m.bytes(r)
	if buf == nil || int(off)+4 > len(buf) {
		return &errs.OutOfRangeAccessError{Addr: addr}
	}
	binary.LittleEndian.PutUint32(buf[off:off+4], v)
	return nil
}

// CopyIn bulk-writes src starting at addr, translating once and failing if
// the whole range does not fit in a single region.
func (m *Memory) CopyIn(addr uint32, src []byte) error {
	r, off := translate(addr)
	buf := m.bytes(r)
	if buf == nil || int(off)+len(src) > len(buf) {
		return &errs.OutOfRangeAccessError{Addr: addr}
	}
	copy(buf[off:], src)
	return nil
}

// CopyOut bulk-reads len(dst) bytes starting at addr into dst.
func (m *Memory) CopyOut(addr uint32, dst []byte) error {
	r, off := translate(addr)
	buf := m.bytes(r)
	if buf == nil || int(off)+len(dst) > len(buf) {
		return &errs.OutOfRangeAccessError{Addr: addr}
	}
	copy(dst, buf[off:])
	return nil
}

// Snapshot clones main RAM only; scratchpad and the CLUT mirror are
// rebuilt by the driver on each per-room pass if needed.
func (m *Memory) Snapshot() {
	if m.snapshot == nil {
		m.snapshot = new([layout.RAMSize]byte)
	}
	*m.snapshot = m.ram
}

// Restore reverts main RAM to the last Snapshot. A no-op if Snapshot was
// never called.
func (m *Memory) Restore() {
	if m.snapshot == nil {
		return
	}
	m.ram = *m.snapshot
}

// StoreCLUT writes a palette block simultaneously to the CLUT mirror and
// to RAM at CLUTBaseAddr+offset, per spec.md §4.1.
func (m *Memory) StoreCLUT(offset uint32, data []byte) error {
	if int(offset)+len(data) > len(m.clutStore) {
		return &errs.OutOfRangeAccessError{Addr: layout.CLUTBaseAddr + offset}
	}
	copy(m.clutStore[offset:], data)
	return m.CopyIn(layout.CLUTBaseAddr+offset, data)
}

// CLUT returns the raw CLUT mirror bytes starting at offset, length n.
func (m *Memory) CLUT(offset uint32, n int) []byte {
	return m.clutStore[offset : int(offset)+n]
}
