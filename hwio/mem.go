package hwio

// RAM is a flat, fully read/write byte array, addressed 0..len(Data)-1.
type RAM struct {
	Data []byte
}

// NewRAM allocates a RAM region of n bytes.
func NewRAM(n int) *RAM { return &RAM{Data: make([]byte, n)} }

func (r *RAM) Read8(addr uint16) uint8       { return r.Data[int(addr)%len(r.Data)] }
func (r *RAM) Peek8(addr uint16) uint8       { return r.Read8(addr) }
func (r *RAM) Write8(addr uint16, val uint8) { r.Data[int(addr)%len(r.Data)] = val }

// MirroredRAM behaves like a RAM of Size bytes but is meant to be attached
// to a bus window wider than Size; the effective index is addr mod Size, so
// the same backing repeats across the whole attached range. Attach it to a
// [lo, lo+window-1] range where window is a multiple of Size.
type MirroredRAM struct {
	Data []byte
}

// NewMirroredRAM allocates a backing store of size bytes, to be exposed over
// a wider bus window by the caller's Attach call.
func NewMirroredRAM(size int) *MirroredRAM { return &MirroredRAM{Data: make([]byte, size)} }

func (m *MirroredRAM) index(addr uint16) int { return int(addr) % len(m.Data) }
func (m *MirroredRAM) Read8(addr uint16) uint8 { return m.Data[m.index(addr)] }
func (m *MirroredRAM) Peek8(addr uint16) uint8 { return m.Read8(addr) }
func (m *MirroredRAM) Write8(addr uint16, val uint8) {
	m.Data[m.index(addr)] = val
}

// ROM is read-only memory; writes are silently ignored (per the 6502 bus
// contract: a write to ROM never faults, it just has no effect).
type ROM struct {
	Data []byte
}

// NewROM wraps an existing byte slice as read-only memory.
func NewROM(data []byte) *ROM { return &ROM{Data: data} }

func (r *ROM) Read8(addr uint16) uint8   { return r.Data[int(addr)%len(r.Data)] }
func (r *ROM) Peek8(addr uint16) uint8   { return r.Read8(addr) }
func (r *ROM) Write8(addr uint16, _ uint8) {}
