package mappers

import (
	"nestorcore/hwio"
	"nestorcore/ines"
)

func init() {
	register(2, func() Mapper { return &uxrom{} })
}

// uxrom implements iNES mapper 2 (UxROM): a switchable 16KB PRG bank at
// $8000-$BFFF and a fixed final 16KB bank at $C000-$FFFF. CHR is always
// 8KB of RAM (UxROM boards never carry CHR ROM).
type uxrom struct {
	bankMask uint8

	chr      *hwio.RAM
	ntA, ntB *hwio.RAM

	fixed *hwio.ROM
	low   *bankedROM
}

// bankedROM presents a single switchable 16KB PRG window whose backing data
// can be swapped by a mapper register write without re-attaching the bus.
type bankedROM struct {
	banks   [][]byte
	current int
}

func (b *bankedROM) Read8(addr uint16) uint8   { return b.banks[b.current][addr] }
func (b *bankedROM) Peek8(addr uint16) uint8   { return b.Read8(addr) }
func (b *bankedROM) Write8(uint16, uint8) {}

func (m *uxrom) Load(cart *ines.Cartridge, cpuBus, ppuBus *hwio.Bus) error {
	numBanks := len(cart.PRG) / 0x4000
	banks := make([][]byte, numBanks)
	for i := range banks {
		banks[i] = cart.PRG[i*0x4000 : (i+1)*0x4000]
	}
	m.low = &bankedROM{banks: banks}
	m.bankMask = uint8(numBanks - 1)

	if err := cpuBus.Attach(0x8000, 0xBFFF, &selectableROM{rom: m.low, sel: m.Select}, "prgrom-low"); err != nil {
		return err
	}

	m.fixed = hwio.NewROM(banks[numBanks-1])
	if err := cpuBus.Attach(0xC000, 0xFFFF, m.fixed, "prgrom-fixed"); err != nil {
		return err
	}

	m.chr = hwio.NewRAM(0x2000)
	if err := ppuBus.Attach(0x0000, 0x1FFF, m.chr, "chr"); err != nil {
		return err
	}

	m.ntA = hwio.NewRAM(0x400)
	m.ntB = hwio.NewRAM(0x400)
	return mirrorNametables(ppuBus, cart.Mirror, m.ntA, m.ntB)
}

// Select switches the low 16KB PRG window to bank & bankMask.
func (m *uxrom) Select(val uint8) {
	m.low.current = int(val & m.bankMask)
}

// selectableROM re-attaches over a ROM window to route writes into a
// bank-select callback instead of dropping them, since a plain hwio.ROM
// discards writes silently.
type selectableROM struct {
	rom hwio.Device
	sel func(uint8)
}

func (s *selectableROM) Read8(addr uint16) uint8 { return s.rom.Read8(addr) }
func (s *selectableROM) Peek8(addr uint16) uint8 {
	if p, ok := s.rom.(hwio.Peeker); ok {
		return p.Peek8(addr)
	}
	return s.rom.Read8(addr)
}
func (s *selectableROM) Write8(_ uint16, val uint8) { s.sel(val) }
