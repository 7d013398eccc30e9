package mappers

import (
	"testing"

	"nestorcore/hwio"
	"nestorcore/ines"
)

func TestNROMMirrors16KBAcrossFullWindow(t *testing.T) {
	prg := make([]byte, 0x4000)
	prg[0] = 0xAA
	prg[0x3FFF] = 0xBB
	cart := &ines.Cartridge{PRG: prg, CHR: make([]byte, 0x2000), HasCHRRAM: true, Mirror: ines.Horizontal}

	cpuBus := hwio.NewBus("cpu")
	ppuBus := hwio.NewBus("ppu")
	if _, err := Load(cart, cpuBus, ppuBus); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cpuBus.Read8(0x8000); got != 0xAA {
		t.Errorf("$8000 = %#x, want 0xaa", got)
	}
	if got := cpuBus.Read8(0xC000); got != 0xAA {
		t.Errorf("$C000 (mirror) = %#x, want 0xaa", got)
	}
	if got := cpuBus.Read8(0xFFFF); got != 0xBB {
		t.Errorf("$FFFF = %#x, want 0xbb", got)
	}
}

func TestNROM32KBIsNotMirrored(t *testing.T) {
	prg := make([]byte, 0x8000)
	prg[0] = 0x11
	prg[0x4000] = 0x22
	cart := &ines.Cartridge{PRG: prg, CHR: make([]byte, 0x2000), HasCHRRAM: true, Mirror: ines.Vertical}

	cpuBus := hwio.NewBus("cpu")
	ppuBus := hwio.NewBus("ppu")
	if _, err := Load(cart, cpuBus, ppuBus); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cpuBus.Read8(0x8000); got != 0x11 {
		t.Errorf("$8000 = %#x, want 0x11", got)
	}
	if got := cpuBus.Read8(0xC000); got != 0x22 {
		t.Errorf("$C000 = %#x, want 0x22", got)
	}
}

func TestNROMVerticalMirroring(t *testing.T) {
	cart := &ines.Cartridge{PRG: make([]byte, 0x4000), CHR: make([]byte, 0x2000), HasCHRRAM: true, Mirror: ines.Vertical}
	cpuBus := hwio.NewBus("cpu")
	ppuBus := hwio.NewBus("ppu")
	if _, err := Load(cart, cpuBus, ppuBus); err != nil {
		t.Fatalf("Load: %v", err)
	}
	ppuBus.Write8(0x2000, 0x55)
	if got := ppuBus.Read8(0x2800); got != 0x55 {
		t.Errorf("vertical mirror $2800 = %#x, want 0x55 (same physical page as $2000)", got)
	}
	if got := ppuBus.Read8(0x2400); got == 0x55 {
		t.Errorf("$2400 should be the other physical page, not mirrored with $2000")
	}
}

func TestUxROMBankSwitch(t *testing.T) {
	prg := make([]byte, 0x4000*4)
	for i := 0; i < 4; i++ {
		prg[i*0x4000] = byte(i)
	}
	cart := &ines.Cartridge{PRG: prg, Mapper: 2, Mirror: ines.Horizontal}
	cpuBus := hwio.NewBus("cpu")
	ppuBus := hwio.NewBus("ppu")
	if _, err := Load(cart, cpuBus, ppuBus); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cpuBus.Read8(0x8000); got != 0 {
		t.Fatalf("initial bank 0 byte = %#x, want 0", got)
	}
	// fixed bank is always the last one
	if got := cpuBus.Read8(0xC000); got != 3 {
		t.Fatalf("fixed bank byte = %#x, want 3", got)
	}

	cpuBus.Write8(0x8000, 2)
	if got := cpuBus.Read8(0x8000); got != 2 {
		t.Fatalf("after bank select, $8000 byte = %#x, want 2", got)
	}
	if got := cpuBus.Read8(0xC000); got != 3 {
		t.Fatalf("fixed bank should not move, got %#x", got)
	}
}

func TestLoadUnsupportedMapper(t *testing.T) {
	cart := &ines.Cartridge{PRG: make([]byte, 0x4000), Mapper: 255}
	_, err := Load(cart, hwio.NewBus("cpu"), hwio.NewBus("ppu"))
	if err == nil {
		t.Fatal("expected error for unsupported mapper")
	}
}
