package ines

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func buildHeader(prgBanks, chrBanks, flags6, flags7 byte) []byte {
	h := make([]byte, headerSize)
	copy(h, Magic)
	h[4] = prgBanks
	h[5] = chrBanks
	h[6] = flags6
	h[7] = flags7
	return h
}

func TestReadROMBasicNROM(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(buildHeader(2, 1, 0x00, 0x00))
	buf.Write(bytes.Repeat([]byte{0xEA}, prgBankSize*2))
	buf.Write(bytes.Repeat([]byte{0x00}, chrBankSize))

	c, err := ReadROM(&buf)
	if err != nil {
		t.Fatalf("ReadROM: %v", err)
	}
	if len(c.PRG) != prgBankSize*2 {
		t.Errorf("PRG len = %d, want %d", len(c.PRG), prgBankSize*2)
	}
	if len(c.CHR) != chrBankSize {
		t.Errorf("CHR len = %d, want %d", len(c.CHR), chrBankSize)
	}
	if c.Mapper != 0 {
		t.Errorf("Mapper = %d, want 0", c.Mapper)
	}
	if c.Mirror != Horizontal {
		t.Errorf("Mirror = %v, want horizontal", c.Mirror)
	}
	if c.HasCHRRAM {
		t.Errorf("HasCHRRAM = true, want false")
	}
}

func TestReadROMCHRRAM(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(buildHeader(1, 0, 0x01, 0x00))
	buf.Write(bytes.Repeat([]byte{0}, prgBankSize))

	c, err := ReadROM(&buf)
	if err != nil {
		t.Fatalf("ReadROM: %v", err)
	}
	if !c.HasCHRRAM {
		t.Fatal("expected CHR RAM fallback")
	}
	if len(c.CHR) != chrBankSize {
		t.Errorf("CHR RAM len = %d, want %d", len(c.CHR), chrBankSize)
	}
	if c.Mirror != Vertical {
		t.Errorf("Mirror = %v, want vertical", c.Mirror)
	}
}

func TestMapperNumberCombinesNibbles(t *testing.T) {
	var buf bytes.Buffer
	// mapper 33 = 0b0010_0001: low nibble in flags6 hi bits, high nibble in flags7 hi bits
	buf.Write(buildHeader(1, 1, 0x10, 0x20))
	buf.Write(bytes.Repeat([]byte{0}, prgBankSize))
	buf.Write(bytes.Repeat([]byte{0}, chrBankSize))

	c, err := ReadROM(&buf)
	if err != nil {
		t.Fatalf("ReadROM: %v", err)
	}
	if c.Mapper != 33 {
		t.Errorf("Mapper = %d, want 33", c.Mapper)
	}
}

func TestReadROMRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBufferString("garbage header data")
	if _, err := ReadROM(buf); err != ErrInvalidHeader {
		t.Fatalf("err = %v, want ErrInvalidHeader", err)
	}
}

func TestReadROMRejectsNES20(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(buildHeader(1, 1, 0x00, 0x08))
	if _, err := ReadROM(&buf); err != ErrUnsupportedFormat {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestReadROMRejectsTruncatedPRG(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(buildHeader(2, 0, 0, 0))
	buf.Write(make([]byte, prgBankSize)) // only 1 of 2 declared banks present
	if _, err := ReadROM(&buf); err == nil {
		t.Fatal("expected truncation error, got nil")
	}
}

func TestReadROMHeaderFieldsMatchExactly(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(buildHeader(1, 1, 0x01, 0x00)) // vertical mirroring, mapper 0
	buf.Write(make([]byte, prgBankSize))
	buf.Write(make([]byte, chrBankSize))

	got, err := ReadROM(&buf)
	if err != nil {
		t.Fatalf("ReadROM: %v", err)
	}

	want := &Cartridge{
		PRG:    make([]byte, prgBankSize),
		CHR:    make([]byte, chrBankSize),
		Mapper: 0,
		Mirror: Vertical,
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Cartridge mismatch (-want +got):\n%s", diff)
	}
}

func TestFourScreenMirroringOverridesBit0(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(buildHeader(1, 1, 0x09, 0x00)) // bit3 (four-screen) and bit0 both set
	buf.Write(make([]byte, prgBankSize))
	buf.Write(make([]byte, chrBankSize))
	c, err := ReadROM(&buf)
	if err != nil {
		t.Fatalf("ReadROM: %v", err)
	}
	if c.Mirror != FourScreen {
		t.Errorf("Mirror = %v, want four-screen", c.Mirror)
	}
}
