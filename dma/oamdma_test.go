package dma

import (
	"testing"

	"nestorcore/hwio"
)

func TestOAMDMATransfers256Bytes(t *testing.T) {
	bus := hwio.NewBus("cpu")
	ram := hwio.NewRAM(0x10000)
	if err := bus.Attach(0, 0xFFFF, ram, "ram"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 256; i++ {
		bus.Write8(0x0200+uint16(i), uint8(i))
	}

	var oam [256]uint8
	d := New(bus, func(addr, val uint8) { oam[addr] = val }, func() uint8 { return 0 }, func() bool { return false })
	d.Write8(0, 0x02)

	cycles := 0
	for d.Pending() {
		d.Tick()
		cycles++
		if cycles > 1000 {
			t.Fatal("DMA never completed")
		}
	}
	if cycles != 513 {
		t.Errorf("even-cycle transfer took %d cycles, want 513", cycles)
	}
	for i := 0; i < 256; i++ {
		if oam[i] != uint8(i) {
			t.Fatalf("oam[%d] = %d, want %d", i, oam[i], i)
		}
	}
}

func TestOAMDMAOddCycleAddsStall(t *testing.T) {
	bus := hwio.NewBus("cpu")
	ram := hwio.NewRAM(0x10000)
	bus.Attach(0, 0xFFFF, ram, "ram")

	d := New(bus, func(uint8, uint8) {}, func() uint8 { return 0 }, func() bool { return true })
	d.Write8(0, 0x00)

	cycles := 0
	for d.Pending() {
		d.Tick()
		cycles++
	}
	if cycles != 514 {
		t.Errorf("odd-cycle transfer took %d cycles, want 514", cycles)
	}
}

// TestOAMDMAParityIsReadAtWriteTime guards against reintroducing the
// integration bug where the alignment stall was decided after the $4014
// write instead of at the moment of the write itself: a parity func that
// only starts reporting odd once the transfer is already pending must have
// no effect on this transfer's length.
func TestOAMDMAParityIsReadAtWriteTime(t *testing.T) {
	bus := hwio.NewBus("cpu")
	ram := hwio.NewRAM(0x10000)
	bus.Attach(0, 0xFFFF, ram, "ram")

	var armed bool
	d := New(bus, func(uint8, uint8) {}, func() uint8 { return 0 }, func() bool { return armed })
	d.Write8(0, 0x00) // parity is even at write time
	armed = true      // changing it afterward must not retroactively affect this transfer

	cycles := 0
	for d.Pending() {
		d.Tick()
		cycles++
	}
	if cycles != 513 {
		t.Errorf("transfer took %d cycles, want 513 (parity was even when armed)", cycles)
	}
}

func TestOAMDMAStartsAtOAMAddrWithWrap(t *testing.T) {
	bus := hwio.NewBus("cpu")
	ram := hwio.NewRAM(0x10000)
	bus.Attach(0, 0xFFFF, ram, "ram")
	for i := 0; i < 256; i++ {
		bus.Write8(0x0300+uint16(i), uint8(i))
	}

	var oam [256]uint8
	d := New(bus, func(addr, val uint8) { oam[addr] = val }, func() uint8 { return 0xF0 }, func() bool { return false })
	d.Write8(0, 0x03)

	for d.Pending() {
		d.Tick()
	}

	// The first source byte (0) lands at OAMADDR (0xF0); the transfer wraps
	// back around to 0..0xEF for the remaining 240 bytes.
	if oam[0xF0] != 0 {
		t.Errorf("oam[0xF0] = %d, want 0", oam[0xF0])
	}
	if oam[0x0F] != 0x1F {
		t.Errorf("oam[0x0F] = %d, want %d", oam[0x0F], 0x1F)
	}
}
