package mappers

import (
	"nestorcore/hwio"
	"nestorcore/ines"
)

func init() {
	register(0, func() Mapper { return &nrom{} })
}

// nrom implements iNES mapper 0 (NROM): no bank switching. A 16KB PRG image
// is mirrored across both halves of $8000-$FFFF; a 32KB image fills it
// directly. CHR is a fixed 8KB window, RAM if the cartridge has no CHR ROM.
type nrom struct {
	prgRAM *hwio.RAM
	prgROM *hwio.ROM
	chr    hwio.Device

	ntA, ntB *hwio.RAM
}

func (m *nrom) Load(cart *ines.Cartridge, cpuBus, ppuBus *hwio.Bus) error {
	prg := cart.PRG
	if len(prg) == 0x4000 {
		mirrored := make([]byte, 0x8000)
		copy(mirrored[:0x4000], prg)
		copy(mirrored[0x4000:], prg)
		prg = mirrored
	}
	m.prgROM = hwio.NewROM(prg)
	if err := cpuBus.Attach(0x8000, 0xFFFF, m.prgROM, "prgrom"); err != nil {
		return err
	}

	m.prgRAM = hwio.NewRAM(0x2000)
	if err := cpuBus.Attach(0x6000, 0x7FFF, m.prgRAM, "prgram"); err != nil {
		return err
	}

	if cart.HasCHRRAM {
		m.chr = hwio.NewRAM(len(cart.CHR))
	} else {
		m.chr = hwio.NewROM(cart.CHR)
	}
	if err := ppuBus.Attach(0x0000, 0x1FFF, m.chr, "chr"); err != nil {
		return err
	}

	m.ntA = hwio.NewRAM(0x400)
	m.ntB = hwio.NewRAM(0x400)
	return mirrorNametables(ppuBus, cart.Mirror, m.ntA, m.ntB)
}
