package nes

import (
	"testing"

	"nestorcore/eventbus"
	"nestorcore/ines"
)

// newTestCartridge builds a 16KB-PRG, 8KB-CHR-RAM NROM cartridge whose
// entire PRG is NOPs, with the reset vector pointing at $8000 and the NMI
// vector pointing at $8010.
func newTestCartridge() *ines.Cartridge {
	prg := make([]byte, 0x4000)
	for i := range prg {
		prg[i] = 0xEA // NOP
	}
	prg[0x3FFC], prg[0x3FFD] = 0x00, 0x80 // reset vector -> $8000
	prg[0x3FFA], prg[0x3FFB] = 0x10, 0x80 // NMI vector -> $8010

	return &ines.Cartridge{
		PRG:       prg,
		CHR:       make([]byte, 0x2000),
		Mapper:    0,
		Mirror:    ines.Horizontal,
		HasCHRRAM: true,
	}
}

func newTestNES(t *testing.T) *NES {
	t.Helper()
	n, err := Load(newTestCartridge())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return n
}

func TestPowerUpJumpsToResetVector(t *testing.T) {
	n := newTestNES(t)
	if n.CPU.PC != 0x8000 {
		t.Errorf("PC = %#x, want %#x", n.CPU.PC, 0x8000)
	}
}

func TestSoftResetReturnsToResetVector(t *testing.T) {
	n := newTestNES(t)
	for i := 0; i < 5; i++ {
		n.CPU.Step()
	}
	n.Reset(true)
	if n.CPU.PC != 0x8000 {
		t.Errorf("PC after soft reset = %#x, want %#x", n.CPU.PC, 0x8000)
	}
}

func TestNMIFiresDuringVBlank(t *testing.T) {
	n := newTestNES(t)
	// Enable background rendering (so the PPU pipeline advances scanline
	// state the same way it would for a real game) and NMI-on-VBlank.
	n.cpuBus.Write8(0x2001, 0x08) // PPUMASK: show background
	n.cpuBus.Write8(0x2000, 0x80) // PPUCTRL: NMI enable

	reachedNMI := false
	for frame := 0; frame < 2 && !reachedNMI; frame++ {
		for i := 0; i < CyclesPerFrame*2; i++ {
			n.stepOneCPUCycle()
			if n.CPU.PC == 0x8010 {
				reachedNMI = true
				break
			}
		}
	}
	if !reachedNMI {
		t.Fatal("CPU never vectored to the NMI handler during VBlank")
	}
}

func TestOAMDMACopiesPageIntoOAM(t *testing.T) {
	n := newTestNES(t)
	for i := 0; i < 256; i++ {
		n.cpuBus.Write8(0x0300+uint16(i), uint8(i^0xFF))
	}
	n.cpuBus.Write8(0x4014, 0x03)

	for i := 0; i < 600 && n.DMA.Pending(); i++ {
		n.stepOneCPUCycle()
	}
	if n.DMA.Pending() {
		t.Fatal("OAM DMA never completed")
	}
	for i := 0; i < 256; i++ {
		if n.PPU.OAM[i] != uint8(i^0xFF) {
			t.Fatalf("OAM[%d] = %#x, want %#x", i, n.PPU.OAM[i], uint8(i^0xFF))
		}
	}
}

func TestControllerReadReflectsQueuedInput(t *testing.T) {
	n := newTestNES(t)
	bus := eventbus.New(4)
	bus.PushInput(eventbus.InputEvent{Kind: eventbus.ButtonChange, Controller: 0, Button: 1, Pressed: true})
	if n.DrainInput(bus) {
		t.Fatal("did not expect a shutdown")
	}

	n.cpuBus.Write8(0x4016, 1)
	n.cpuBus.Write8(0x4016, 0)
	if got := n.cpuBus.Read8(0x4016) & 1; got != 1 {
		t.Errorf("first controller read = %d, want 1 (A pressed)", got)
	}
}

func TestRunFrameProducesA256x240Frame(t *testing.T) {
	n := newTestNES(t)
	frame := n.RunFrame()
	if frame.Bounds().Dx() != 256 || frame.Bounds().Dy() != 240 {
		t.Fatalf("frame bounds = %v, want 256x240", frame.Bounds())
	}
}

func TestSaveLoadStateRoundTrips(t *testing.T) {
	n := newTestNES(t)
	n.CPU.A = 0x42
	n.PPU.OAM[10] = 0x99
	n.wram.Data[0x100] = 0x7A
	n.palette.Data[3] = 0x2C
	n.PPU.WriteRegister(0x2005, 0x7D) // fine X = 5, part of the v/t/x/w latches

	blob, err := n.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	n.CPU.A = 0
	n.PPU.OAM[10] = 0
	n.wram.Data[0x100] = 0
	n.palette.Data[3] = 0
	n.PPU.WriteRegister(0x2005, 0x00)
	if err := n.LoadState(blob); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if n.CPU.A != 0x42 {
		t.Errorf("A = %#x, want 0x42", n.CPU.A)
	}
	if n.PPU.OAM[10] != 0x99 {
		t.Errorf("OAM[10] = %#x, want 0x99", n.PPU.OAM[10])
	}
	if n.wram.Data[0x100] != 0x7A {
		t.Errorf("WRAM[0x100] = %#x, want 0x7a", n.wram.Data[0x100])
	}
	if n.palette.Data[3] != 0x2C {
		t.Errorf("palette[3] = %#x, want 0x2c", n.palette.Data[3])
	}
	if got := n.PPU.SaveState().X; got != 5 {
		t.Errorf("fine X after restore = %d, want 5", got)
	}
}
