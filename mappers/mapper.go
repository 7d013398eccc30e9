// Package mappers implements the cartridge address-decoding hardware that
// sits between the raw PRG/CHR ROM images produced by ines.ReadROM and the
// CPU/PPU buses.
package mappers

import (
	"fmt"

	"nestorcore/hwio"
	"nestorcore/ines"
)

// Mapper wires a cartridge's PRG and CHR banks onto the CPU and PPU buses.
// Load is called once at power-up; it must attach every hwio.Device the
// mapper needs (PRG ROM/RAM windows on cpuBus, CHR windows and nametable
// mirroring on ppuBus).
type Mapper interface {
	Load(cart *ines.Cartridge, cpuBus, ppuBus *hwio.Bus) error
}

// Factory constructs a fresh Mapper instance for a cartridge.
type Factory func() Mapper

// Registry maps an iNES mapper number to the Factory that implements it.
// Mappers register themselves from an init() function in their own file.
var Registry = map[uint8]Factory{}

func register(id uint8, f Factory) {
	if _, exists := Registry[id]; exists {
		panic(fmt.Sprintf("mappers: mapper %d registered twice", id))
	}
	Registry[id] = f
}

// ErrUnsupportedMapper is returned by Load when the cartridge names a
// mapper number with no registered Factory.
type ErrUnsupportedMapper struct {
	ID uint8
}

func (e *ErrUnsupportedMapper) Error() string {
	return fmt.Sprintf("mappers: unsupported mapper %d", e.ID)
}

// Load looks up cart.Mapper in Registry and wires the resulting Mapper onto
// the given buses.
func Load(cart *ines.Cartridge, cpuBus, ppuBus *hwio.Bus) (Mapper, error) {
	factory, ok := Registry[cart.Mapper]
	if !ok {
		return nil, &ErrUnsupportedMapper{ID: cart.Mapper}
	}
	m := factory()
	if err := m.Load(cart, cpuBus, ppuBus); err != nil {
		return nil, fmt.Errorf("mappers: mapper %d init: %w", cart.Mapper, err)
	}
	return m, nil
}

// mirrorNametables attaches the four logical 1KB nametable windows (and
// their $3000-$3EFF mirror) on ppuBus according to m, backed by two 1KB
// physical pages, A and B.
func mirrorNametables(ppuBus *hwio.Bus, m ines.Mirroring, a, b *hwio.RAM) error {
	var nt1, nt2, nt3, nt4 *hwio.RAM
	switch m {
	case ines.Horizontal:
		nt1, nt2, nt3, nt4 = a, a, b, b
	case ines.Vertical:
		nt1, nt2, nt3, nt4 = a, b, a, b
	case ines.SingleScreenA:
		nt1, nt2, nt3, nt4 = a, a, a, a
	case ines.SingleScreenB:
		nt1, nt2, nt3, nt4 = b, b, b, b
	default:
		nt1, nt2, nt3, nt4 = a, b, a, b
	}
	attach := []struct {
		lo, hi uint16
		dev    *hwio.RAM
		id     string
	}{
		{0x2000, 0x23FF, nt1, "nt0"},
		{0x2400, 0x27FF, nt2, "nt1"},
		{0x2800, 0x2BFF, nt3, "nt2"},
		{0x2C00, 0x2FFF, nt4, "nt3"},
		{0x3000, 0x33FF, nt1, "nt0-mirror"},
		{0x3400, 0x37FF, nt2, "nt1-mirror"},
		{0x3800, 0x3BFF, nt3, "nt2-mirror"},
		{0x3C00, 0x3EFF, nt4, "nt3-mirror"},
	}
	for _, a := range attach {
		if err := ppuBus.Attach(a.lo, a.hi, a.dev, a.id); err != nil {
			return err
		}
	}
	return nil
}
