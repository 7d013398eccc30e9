package hwio

// PaletteRAM is the PPU's 32-byte palette memory, exposed on a wider bus
// window ($3F00-$3FFF) that mirrors every 32 bytes, with the additional
// hardware quirk that the "universal background" mirrors at $10/$14/$18/$1C
// alias entry 0 of each background palette ($00/$04/$08/$0C). Reads mask
// off the top two bits, since palette entries are only 6 bits wide.
type PaletteRAM struct {
	Data [32]byte
}

func (p *PaletteRAM) index(addr uint16) int {
	i := int(addr) & 0x1F
	switch i {
	case 0x10, 0x14, 0x18, 0x1C:
		i &^= 0x10
	}
	return i
}

func (p *PaletteRAM) Read8(addr uint16) uint8 {
	return p.Data[p.index(addr)] & 0x3F
}

func (p *PaletteRAM) Peek8(addr uint16) uint8 { return p.Read8(addr) }

func (p *PaletteRAM) Write8(addr uint16, val uint8) {
	p.Data[p.index(addr)] = val & 0x3F
}
