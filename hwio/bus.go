// Package hwio implements the address-decoded bus fabric shared by the CPU
// and PPU, and the memory primitives (RAM, mirrored RAM, ROM, palette RAM,
// memory-mapped registers) attached to it.
package hwio

import (
	"fmt"
	"sort"

	"nestorcore/hwlog"
)

// Device is anything that can be attached to a Bus. Read8/Write8 receive the
// address relative to the device's attached range (addr - lo), the
// convention every device in this package follows.
type Device interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

// Peeker is implemented by devices that can be read without side effects,
// for use by disassemblers and tracers.
type Peeker interface {
	Peek8(addr uint16) uint8
}

// ErrBusConflict is returned by Attach when the requested range overlaps an
// already-attached device.
type ErrBusConflict struct {
	Bus            string
	Lo, Hi         uint16
	ID             string
	ConflictID     string
	ConflictLo, ConflictHi uint16
}

func (e *ErrBusConflict) Error() string {
	return fmt.Sprintf("bus %q: cannot attach %q at [%04X-%04X]: overlaps %q at [%04X-%04X]",
		e.Bus, e.ID, e.Lo, e.Hi, e.ConflictID, e.ConflictLo, e.ConflictHi)
}

type attachment struct {
	lo, hi uint16
	dev    Device
	id     string
}

// Bus dispatches reads and writes to the single device whose attached range
// contains the address. It has no notion of a "default" device: an address
// with nothing attached is open bus.
type Bus struct {
	Name  string
	attns []attachment

	openBus uint8
}

// NewBus creates an empty bus.
func NewBus(name string) *Bus {
	return &Bus{Name: name}
}

// Attach registers dev to serve the closed interval [lo, hi]. It fails if
// the range overlaps any previously attached device; ranges must be
// disjoint and are checked eagerly, at attach time, never at dispatch time.
func (b *Bus) Attach(lo, hi uint16, dev Device, id string) error {
	if hi < lo {
		return fmt.Errorf("bus %q: invalid range [%04X-%04X] for %q", b.Name, lo, hi, id)
	}
	idx := sort.Search(len(b.attns), func(i int) bool { return b.attns[i].lo >= lo })
	if idx < len(b.attns) && b.attns[idx].lo <= hi {
		a := b.attns[idx]
		return &ErrBusConflict{Bus: b.Name, Lo: lo, Hi: hi, ID: id, ConflictID: a.id, ConflictLo: a.lo, ConflictHi: a.hi}
	}
	if idx > 0 && b.attns[idx-1].hi >= lo {
		a := b.attns[idx-1]
		return &ErrBusConflict{Bus: b.Name, Lo: lo, Hi: hi, ID: id, ConflictID: a.id, ConflictLo: a.lo, ConflictHi: a.hi}
	}

	b.attns = append(b.attns, attachment{})
	copy(b.attns[idx+1:], b.attns[idx:])
	b.attns[idx] = attachment{lo: lo, hi: hi, dev: dev, id: id}
	return nil
}

// MustAttach is Attach but panics on failure, for use during power-up wiring
// where an overlap is a programming error rather than a runtime condition.
func (b *Bus) MustAttach(lo, hi uint16, dev Device, id string) {
	if err := b.Attach(lo, hi, dev, id); err != nil {
		panic(err)
	}
}

func (b *Bus) find(addr uint16) *attachment {
	idx := sort.Search(len(b.attns), func(i int) bool { return b.attns[i].hi >= addr })
	if idx < len(b.attns) && b.attns[idx].lo <= addr {
		return &b.attns[idx]
	}
	return nil
}

// Read8 dispatches a read to the owning device, or returns the open-bus
// value (the last byte seen on the bus) if the address is unmapped.
func (b *Bus) Read8(addr uint16) uint8 {
	a := b.find(addr)
	if a == nil {
		hwlog.ModHwIo.ErrorZ("unmapped read").String("bus", b.Name).Hex16("addr", addr).End()
		return b.openBus
	}
	val := a.dev.Read8(addr - a.lo)
	b.openBus = val
	return val
}

// Peek8 reads addr without side effects when the owning device supports it,
// otherwise it returns 0. An unmapped address returns the open-bus value.
func (b *Bus) Peek8(addr uint16) uint8 {
	a := b.find(addr)
	if a == nil {
		return b.openBus
	}
	if p, ok := a.dev.(Peeker); ok {
		return p.Peek8(addr - a.lo)
	}
	return 0
}

// Write8 dispatches a write to the owning device, or drops it (logged) if
// the address is unmapped.
func (b *Bus) Write8(addr uint16, val uint8) {
	b.openBus = val
	a := b.find(addr)
	if a == nil {
		hwlog.ModHwIo.ErrorZ("unmapped write").String("bus", b.Name).Hex16("addr", addr).Hex8("val", val).End()
		return
	}
	a.dev.Write8(addr-a.lo, val)
}

// Read16 reads a little-endian 16-bit value at addr, addr+1.
func Read16(b *Bus, addr uint16) uint16 {
	lo := b.Read8(addr)
	hi := b.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Write16 writes a little-endian 16-bit value at addr, addr+1.
func Write16(b *Bus, addr uint16, val uint16) {
	b.Write8(addr, uint8(val))
	b.Write8(addr+1, uint8(val>>8))
}
