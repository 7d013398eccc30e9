package joypad

// Controllers is an hwio.Device exposing both standard-controller ports at
// $4016 (port 0, plus the shared strobe write) and $4017 (port 1). Attach
// it at $4016-$4017 with device-relative addressing (addr 0 = $4016).
type Controllers struct {
	Port0, Port1 Port
}

func (c *Controllers) Read8(addr uint16) uint8 {
	switch addr {
	case 0:
		return c.Port0.Read()
	case 1:
		return c.Port1.Read()
	default:
		return 0x40
	}
}

func (c *Controllers) Peek8(addr uint16) uint8 {
	switch addr {
	case 0:
		return c.Port0.Peek()
	case 1:
		return c.Port1.Peek()
	default:
		return 0x40
	}
}

func (c *Controllers) Write8(addr uint16, val uint8) {
	if addr != 0 {
		return // $4017 writes target the APU frame counter, out of scope here
	}
	on := val&1 == 1
	c.Port0.Strobe(on)
	c.Port1.Strobe(on)
}
