// Package nes aggregates the CPU, PPU, DMA controller, joypads and
// cartridge into a single console, wires their buses together the way real
// NES hardware is wired, and drives the system clock one frame at a time.
package nes

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"image"

	"nestorcore/cpu6502"
	"nestorcore/dma"
	"nestorcore/eventbus"
	"nestorcore/hwio"
	"nestorcore/hwlog"
	"nestorcore/ines"
	"nestorcore/joypad"
	"nestorcore/mappers"
	"nestorcore/ppu2c02"
)

// CyclesPerFrame is the number of CPU cycles in one NTSC frame
// (341 dots/scanline * 262 scanlines / 3 dots-per-cycle), used only as a
// sanity ceiling for RunFrame -- the real stopping condition is
// PPU.FrameReady.
const CyclesPerFrame = 29781

// NES is a complete console: one CPU, one PPU, the cartridge currently
// loaded, and the peripherals attached to $4000-$4017.
type NES struct {
	CPU  *cpu6502.CPU
	PPU  *ppu2c02.PPU
	DMA  *dma.OAMDMA
	Pads *joypad.Controllers

	Cart   *ines.Cartridge
	mapper mappers.Mapper

	cpuBus *hwio.Bus
	ppuBus *hwio.Bus

	wram    *hwio.MirroredRAM
	palette *hwio.PaletteRAM
}

// Load builds a fresh console around cart: it wires the CPU bus, PPU bus,
// RAM, cartridge mapper, controllers and OAM DMA exactly the way real NES
// hardware is wired, then powers up.
func Load(cart *ines.Cartridge) (*NES, error) {
	cpuBus := hwio.NewBus("cpu")
	ppuBus := hwio.NewBus("ppu")

	ppu := ppu2c02.New(ppuBus)
	cpu := cpu6502.New(cpuBus)
	pads := &joypad.Controllers{}
	oam := dma.New(cpuBus, func(addr, val uint8) { ppu.OAM[addr] = val }, ppu.OAMAddr,
		func() bool { return cpu.Cycles%2 != 0 })

	m, err := mappers.Load(cart, cpuBus, ppuBus)
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}

	wram := hwio.NewMirroredRAM(0x0800)
	if err := cpuBus.Attach(0x0000, 0x1FFF, wram, "wram"); err != nil {
		return nil, err
	}
	palette := &hwio.PaletteRAM{}
	if err := ppuBus.Attach(0x3F00, 0x3FFF, palette, "palette"); err != nil {
		return nil, err
	}
	if err := cpuBus.Attach(0x2000, 0x3FFF, ppu2c02.CPUPort{PPU: ppu}, "ppu-regs"); err != nil {
		return nil, err
	}
	if err := cpuBus.Attach(0x4014, 0x4014, oam, "oamdma"); err != nil {
		return nil, err
	}
	if err := cpuBus.Attach(0x4016, 0x4017, pads, "joypads"); err != nil {
		return nil, err
	}

	n := &NES{
		CPU: cpu, PPU: ppu, DMA: oam, Pads: pads,
		Cart: cart, mapper: m,
		cpuBus: cpuBus, ppuBus: ppuBus,
		wram: wram, palette: palette,
	}

	ppu.AssertNMI = cpu.AssertNMI
	n.PowerUp()
	return n, nil
}

// PowerUp resets every subsystem to its documented power-on state, as if
// the console had just been switched on with cart inserted.
func (n *NES) PowerUp() {
	n.PPU.PowerUp()
	n.CPU.PowerUp()
	hwlog.ModEmu.InfoZ("power up").Int("mapper", int(n.Cart.Mapper)).String("mirroring", n.Cart.Mirror.String()).End()
}

// Reset performs either a soft reset (RESET button: registers preserved,
// I flag set, SP -= 3) or a hard reset (full power-on sequence).
func (n *NES) Reset(soft bool) {
	if soft {
		n.PPU.Reset()
		n.CPU.Reset()
		hwlog.ModEmu.InfoZ("soft reset").End()
	} else {
		n.PPU.PowerUp()
		n.CPU.PowerUp()
		hwlog.ModEmu.InfoZ("hard reset").End()
	}
}

// RunFrame steps the system clock until the PPU reports a completed
// frame, servicing OAM DMA stalls and CPU/PPU interrupt lines as it goes,
// and returns the rendered frame. It never blocks on I/O: callers own
// draining eventbus.Bus themselves between frames.
func (n *NES) RunFrame() *image.RGBA {
	n.PPU.FrameReady = false
	cycles := 0
	for !n.PPU.FrameReady {
		n.stepOneCPUCycle()
		cycles++
		if cycles > CyclesPerFrame*2 {
			hwlog.ModEmu.ErrorZ("frame did not complete within expected cycle budget").
				Int("cycles", cycles).End()
			break
		}
	}
	return n.snapshotFrame()
}

// stepOneCPUCycle advances the system by one scheduling step: if an OAM DMA
// transfer is in progress, three PPU dots and one DMA cycle; otherwise one
// whole CPU instruction followed by three PPU dots per cycle it consumed
// (so a step spans several CPU cycles in that case). A pending DMA transfer's
// 513/514-cycle alignment is decided once, at the moment the $4014 write
// arms it (see dma.OAMDMA.Parity), not by anything tracked here.
func (n *NES) stepOneCPUCycle() {
	if n.DMA.Pending() {
		n.PPU.Tick()
		n.PPU.Tick()
		n.PPU.Tick()
		n.DMA.Tick()
		return
	}

	cycles, err := n.CPU.Step()
	if err != nil {
		hwlog.ModCPU.ErrorZ("CPU halted").Error("err", err).End()
	}
	for i := int64(0); i < cycles; i++ {
		n.PPU.Tick()
		n.PPU.Tick()
		n.PPU.Tick()
	}
}

// DrainInput applies queued controller events from bus, and reports
// whether a shutdown was requested. Called once per frame, never blocking
// the emulation loop on a slow or absent host.
func (n *NES) DrainInput(bus *eventbus.Bus) (shutdown bool) {
	return bus.DrainInputs(func(ev eventbus.InputEvent) {
		if ev.Kind != eventbus.ButtonChange {
			return
		}
		port := &n.Pads.Port0
		if ev.Controller == 1 {
			port = &n.Pads.Port1
		}
		if ev.Pressed {
			port.Buttons |= ev.Button
		} else {
			port.Buttons &^= ev.Button
		}
	})
}

// Run is the goroutine entry point a host launches: it repeatedly renders
// a frame, publishes it on bus.Frames, and drains bus.Inputs, until a
// Shutdown event arrives or the CPU halts on an illegal opcode.
func (n *NES) Run(bus *eventbus.Bus) {
	for {
		if n.DrainInput(bus) {
			hwlog.ModEmu.InfoZ("shutdown requested").End()
			return
		}
		frame := n.RunFrame()
		bus.PublishFrame(frame)
		if n.CPU.Halted() {
			hwlog.ModEmu.ErrorZ("stopping: CPU halted").Error("err", n.CPU.HaltErr()).End()
			return
		}
	}
}

// snapshotFrame copies the PPU's resolved pixel buffer into a fresh
// image.RGBA, the format eventbus.Bus.Frames carries.
func (n *NES) snapshotFrame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ppu2c02.VisibleDots, ppu2c02.VisibleScanlines))
	for y := 0; y < ppu2c02.VisibleScanlines; y++ {
		for x := 0; x < ppu2c02.VisibleDots; x++ {
			r, g, b := n.PPU.PixelAt(x, y)
			o := img.PixOffset(x, y)
			img.Pix[o] = r
			img.Pix[o+1] = g
			img.Pix[o+2] = b
			img.Pix[o+3] = 0xFF
		}
	}
	return img
}

// state is the serializable subset of console state persisted by
// SaveState/LoadState: CPU registers, OAM, WRAM, palette RAM, and the PPU's
// register file and scroll latches. It does not capture cartridge state:
// NROM's PRG RAM at $6000-$7FFF and UxROM's selected PRG bank are left as
// they are by LoadState.
type state struct {
	A, X, Y, SP uint8
	P           uint8
	PC          uint16
	CPUCycles   int64

	OAM     [256]uint8
	WRAM    []byte
	Palette [32]byte

	PPU ppu2c02.State
}

// SaveState captures the CPU, PPU (registers, scroll latches and OAM), WRAM
// and palette RAM into a portable, gzip compressed blob.
func (n *NES) SaveState() ([]byte, error) {
	s := state{
		A: n.CPU.A, X: n.CPU.X, Y: n.CPU.Y, SP: n.CPU.SP,
		P: uint8(n.CPU.P), PC: n.CPU.PC, CPUCycles: n.CPU.Cycles,
		OAM:     n.PPU.OAM,
		WRAM:    append([]byte(nil), n.wram.Data...),
		Palette: n.palette.Data,
		PPU:     n.PPU.SaveState(),
	}

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(s); err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}

	var out bytes.Buffer
	gz := gzip.NewWriter(&out)
	if _, err := gz.Write(raw.Bytes()); err != nil {
		return nil, fmt.Errorf("compressing state: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("closing state stream: %w", err)
	}
	return out.Bytes(), nil
}

// LoadState restores CPU registers, PPU registers/latches/OAM, WRAM and
// palette RAM from a blob written by SaveState.
func (n *NES) LoadState(blob []byte) error {
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return fmt.Errorf("opening state stream: %w", err)
	}
	defer gz.Close()

	var s state
	if err := gob.NewDecoder(gz).Decode(&s); err != nil {
		return fmt.Errorf("decoding state: %w", err)
	}

	n.CPU.A, n.CPU.X, n.CPU.Y, n.CPU.SP = s.A, s.X, s.Y, s.SP
	n.CPU.P = cpu6502.P(s.P)
	n.CPU.P.SetU()
	n.CPU.PC = s.PC
	n.CPU.Cycles = s.CPUCycles
	n.PPU.OAM = s.OAM
	copy(n.wram.Data, s.WRAM)
	n.palette.Data = s.Palette
	n.PPU.LoadState(s.PPU)
	return nil
}
