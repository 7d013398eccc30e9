package cpu6502

type instrFunc func(c *CPU, mode Mode)

type opcodeInfo struct {
	mnemonic string
	mode     Mode
	exec     instrFunc
	illegal  bool
}

// e is a small literal-table constructor to keep the 256-entry table below
// legible: mnemonic, addressing mode, executor, and whether the opcode is
// one of the documented-behavior "illegal" instructions gated by
// CPU.Permissive.
func e(mnemonic string, mode Mode, exec instrFunc, illegal bool) opcodeInfo {
	return opcodeInfo{mnemonic: mnemonic, mode: mode, exec: exec, illegal: illegal}
}

// opcodeTable maps every one of the 256 possible opcode bytes to its
// instruction. Entries left as the zero value (nil exec) have no assigned
// legal or documented-undocumented behavior on this core and always raise
// ErrIllegalOpcode, Permissive or not: NES software relies on none of
// them (XAA, LXA, SHA, SHX, SHY, TAS, LAS). The JAM/KIL opcodes do have
// entries: opJAM halts the core with ErrIllegalOpcode in either mode.
var opcodeTable = [256]opcodeInfo{
	0x00: e("BRK", Implied, opBRK, false),
	0x01: e("ORA", IndirectX, opORA, false),
	0x02: e("JAM", Implied, opJAM, false),
	0x03: e("SLO", IndirectX, opSLO, true),
	0x04: e("NOP", ZeroPage, opNOP, true),
	0x05: e("ORA", ZeroPage, opORA, false),
	0x06: e("ASL", ZeroPage, opASL, false),
	0x07: e("SLO", ZeroPage, opSLO, true),
	0x08: e("PHP", Implied, opPHP, false),
	0x09: e("ORA", Immediate, opORA, false),
	0x0A: e("ASL", Accumulator, opASL, false),
	0x0B: e("ANC", Immediate, opANC, true),
	0x0C: e("NOP", Absolute, opNOP, true),
	0x0D: e("ORA", Absolute, opORA, false),
	0x0E: e("ASL", Absolute, opASL, false),
	0x0F: e("SLO", Absolute, opSLO, true),

	0x10: e("BPL", Relative, opBPL, false),
	0x11: e("ORA", IndirectY, opORA, false),
	0x12: e("JAM", Implied, opJAM, false),
	0x13: e("SLO", IndirectY, opSLO, true),
	0x14: e("NOP", ZeroPageX, opNOP, true),
	0x15: e("ORA", ZeroPageX, opORA, false),
	0x16: e("ASL", ZeroPageX, opASL, false),
	0x17: e("SLO", ZeroPageX, opSLO, true),
	0x18: e("CLC", Implied, opCLC, false),
	0x19: e("ORA", AbsoluteY, opORA, false),
	0x1A: e("NOP", Implied, opNOP, true),
	0x1B: e("SLO", AbsoluteY, opSLO, true),
	0x1C: e("NOP", AbsoluteX, opNOP, true),
	0x1D: e("ORA", AbsoluteX, opORA, false),
	0x1E: e("ASL", AbsoluteX, opASL, false),
	0x1F: e("SLO", AbsoluteX, opSLO, true),

	0x20: e("JSR", Absolute, opJSR, false),
	0x21: e("AND", IndirectX, opAND, false),
	0x22: e("JAM", Implied, opJAM, false),
	0x23: e("RLA", IndirectX, opRLA, true),
	0x24: e("BIT", ZeroPage, opBIT, false),
	0x25: e("AND", ZeroPage, opAND, false),
	0x26: e("ROL", ZeroPage, opROL, false),
	0x27: e("RLA", ZeroPage, opRLA, true),
	0x28: e("PLP", Implied, opPLP, false),
	0x29: e("AND", Immediate, opAND, false),
	0x2A: e("ROL", Accumulator, opROL, false),
	0x2B: e("ANC", Immediate, opANC, true),
	0x2C: e("BIT", Absolute, opBIT, false),
	0x2D: e("AND", Absolute, opAND, false),
	0x2E: e("ROL", Absolute, opROL, false),
	0x2F: e("RLA", Absolute, opRLA, true),

	0x30: e("BMI", Relative, opBMI, false),
	0x31: e("AND", IndirectY, opAND, false),
	0x32: e("JAM", Implied, opJAM, false),
	0x33: e("RLA", IndirectY, opRLA, true),
	0x34: e("NOP", ZeroPageX, opNOP, true),
	0x35: e("AND", ZeroPageX, opAND, false),
	0x36: e("ROL", ZeroPageX, opROL, false),
	0x37: e("RLA", ZeroPageX, opRLA, true),
	0x38: e("SEC", Implied, opSEC, false),
	0x39: e("AND", AbsoluteY, opAND, false),
	0x3A: e("NOP", Implied, opNOP, true),
	0x3B: e("RLA", AbsoluteY, opRLA, true),
	0x3C: e("NOP", AbsoluteX, opNOP, true),
	0x3D: e("AND", AbsoluteX, opAND, false),
	0x3E: e("ROL", AbsoluteX, opROL, false),
	0x3F: e("RLA", AbsoluteX, opRLA, true),

	0x40: e("RTI", Implied, opRTI, false),
	0x41: e("EOR", IndirectX, opEOR, false),
	0x42: e("JAM", Implied, opJAM, false),
	0x43: e("SRE", IndirectX, opSRE, true),
	0x44: e("NOP", ZeroPage, opNOP, true),
	0x45: e("EOR", ZeroPage, opEOR, false),
	0x46: e("LSR", ZeroPage, opLSR, false),
	0x47: e("SRE", ZeroPage, opSRE, true),
	0x48: e("PHA", Implied, opPHA, false),
	0x49: e("EOR", Immediate, opEOR, false),
	0x4A: e("LSR", Accumulator, opLSR, false),
	0x4B: e("ALR", Immediate, opALR, true),
	0x4C: e("JMP", Absolute, opJMP, false),
	0x4D: e("EOR", Absolute, opEOR, false),
	0x4E: e("LSR", Absolute, opLSR, false),
	0x4F: e("SRE", Absolute, opSRE, true),

	0x50: e("BVC", Relative, opBVC, false),
	0x51: e("EOR", IndirectY, opEOR, false),
	0x52: e("JAM", Implied, opJAM, false),
	0x53: e("SRE", IndirectY, opSRE, true),
	0x54: e("NOP", ZeroPageX, opNOP, true),
	0x55: e("EOR", ZeroPageX, opEOR, false),
	0x56: e("LSR", ZeroPageX, opLSR, false),
	0x57: e("SRE", ZeroPageX, opSRE, true),
	0x58: e("CLI", Implied, opCLI, false),
	0x59: e("EOR", AbsoluteY, opEOR, false),
	0x5A: e("NOP", Implied, opNOP, true),
	0x5B: e("SRE", AbsoluteY, opSRE, true),
	0x5C: e("NOP", AbsoluteX, opNOP, true),
	0x5D: e("EOR", AbsoluteX, opEOR, false),
	0x5E: e("LSR", AbsoluteX, opLSR, false),
	0x5F: e("SRE", AbsoluteX, opSRE, true),

	0x60: e("RTS", Implied, opRTS, false),
	0x61: e("ADC", IndirectX, opADC, false),
	0x62: e("JAM", Implied, opJAM, false),
	0x63: e("RRA", IndirectX, opRRA, true),
	0x64: e("NOP", ZeroPage, opNOP, true),
	0x65: e("ADC", ZeroPage, opADC, false),
	0x66: e("ROR", ZeroPage, opROR, false),
	0x67: e("RRA", ZeroPage, opRRA, true),
	0x68: e("PLA", Implied, opPLA, false),
	0x69: e("ADC", Immediate, opADC, false),
	0x6A: e("ROR", Accumulator, opROR, false),
	0x6B: e("ARR", Immediate, opARR, true),
	0x6C: e("JMP", Indirect, opJMP, false),
	0x6D: e("ADC", Absolute, opADC, false),
	0x6E: e("ROR", Absolute, opROR, false),
	0x6F: e("RRA", Absolute, opRRA, true),

	0x70: e("BVS", Relative, opBVS, false),
	0x71: e("ADC", IndirectY, opADC, false),
	0x72: e("JAM", Implied, opJAM, false),
	0x73: e("RRA", IndirectY, opRRA, true),
	0x74: e("NOP", ZeroPageX, opNOP, true),
	0x75: e("ADC", ZeroPageX, opADC, false),
	0x76: e("ROR", ZeroPageX, opROR, false),
	0x77: e("RRA", ZeroPageX, opRRA, true),
	0x78: e("SEI", Implied, opSEI, false),
	0x79: e("ADC", AbsoluteY, opADC, false),
	0x7A: e("NOP", Implied, opNOP, true),
	0x7B: e("RRA", AbsoluteY, opRRA, true),
	0x7C: e("NOP", AbsoluteX, opNOP, true),
	0x7D: e("ADC", AbsoluteX, opADC, false),
	0x7E: e("ROR", AbsoluteX, opROR, false),
	0x7F: e("RRA", AbsoluteX, opRRA, true),

	0x80: e("NOP", Immediate, opNOP, true),
	0x81: e("STA", IndirectX, opSTA, false),
	0x82: e("NOP", Immediate, opNOP, true),
	0x83: e("SAX", IndirectX, opSAX, true),
	0x84: e("STY", ZeroPage, opSTY, false),
	0x85: e("STA", ZeroPage, opSTA, false),
	0x86: e("STX", ZeroPage, opSTX, false),
	0x87: e("SAX", ZeroPage, opSAX, true),
	0x88: e("DEY", Implied, opDEY, false),
	0x89: e("NOP", Immediate, opNOP, true),
	0x8A: e("TXA", Implied, opTXA, false),
	0x8C: e("STY", Absolute, opSTY, false),
	0x8D: e("STA", Absolute, opSTA, false),
	0x8E: e("STX", Absolute, opSTX, false),
	0x8F: e("SAX", Absolute, opSAX, true),

	0x90: e("BCC", Relative, opBCC, false),
	0x91: e("STA", IndirectY, opSTA, false),
	0x92: e("JAM", Implied, opJAM, false),
	0x94: e("STY", ZeroPageX, opSTY, false),
	0x95: e("STA", ZeroPageX, opSTA, false),
	0x96: e("STX", ZeroPageY, opSTX, false),
	0x97: e("SAX", ZeroPageY, opSAX, true),
	0x98: e("TYA", Implied, opTYA, false),
	0x99: e("STA", AbsoluteY, opSTA, false),
	0x9A: e("TXS", Implied, opTXS, false),
	0x9D: e("STA", AbsoluteX, opSTA, false),

	0xA0: e("LDY", Immediate, opLDY, false),
	0xA1: e("LDA", IndirectX, opLDA, false),
	0xA2: e("LDX", Immediate, opLDX, false),
	0xA3: e("LAX", IndirectX, opLAX, true),
	0xA4: e("LDY", ZeroPage, opLDY, false),
	0xA5: e("LDA", ZeroPage, opLDA, false),
	0xA6: e("LDX", ZeroPage, opLDX, false),
	0xA7: e("LAX", ZeroPage, opLAX, true),
	0xA8: e("TAY", Implied, opTAY, false),
	0xA9: e("LDA", Immediate, opLDA, false),
	0xAA: e("TAX", Implied, opTAX, false),
	0xAC: e("LDY", Absolute, opLDY, false),
	0xAD: e("LDA", Absolute, opLDA, false),
	0xAE: e("LDX", Absolute, opLDX, false),
	0xAF: e("LAX", Absolute, opLAX, true),

	0xB0: e("BCS", Relative, opBCS, false),
	0xB1: e("LDA", IndirectY, opLDA, false),
	0xB2: e("JAM", Implied, opJAM, false),
	0xB3: e("LAX", IndirectY, opLAX, true),
	0xB4: e("LDY", ZeroPageX, opLDY, false),
	0xB5: e("LDA", ZeroPageX, opLDA, false),
	0xB6: e("LDX", ZeroPageY, opLDX, false),
	0xB7: e("LAX", ZeroPageY, opLAX, true),
	0xB8: e("CLV", Implied, opCLV, false),
	0xB9: e("LDA", AbsoluteY, opLDA, false),
	0xBA: e("TSX", Implied, opTSX, false),
	0xBC: e("LDY", AbsoluteX, opLDY, false),
	0xBD: e("LDA", AbsoluteX, opLDA, false),
	0xBE: e("LDX", AbsoluteY, opLDX, false),
	0xBF: e("LAX", AbsoluteY, opLAX, true),

	0xC0: e("CPY", Immediate, opCPY, false),
	0xC1: e("CMP", IndirectX, opCMP, false),
	0xC2: e("NOP", Immediate, opNOP, true),
	0xC3: e("DCP", IndirectX, opDCP, true),
	0xC4: e("CPY", ZeroPage, opCPY, false),
	0xC5: e("CMP", ZeroPage, opCMP, false),
	0xC6: e("DEC", ZeroPage, opDEC, false),
	0xC7: e("DCP", ZeroPage, opDCP, true),
	0xC8: e("INY", Implied, opINY, false),
	0xC9: e("CMP", Immediate, opCMP, false),
	0xCA: e("DEX", Implied, opDEX, false),
	0xCB: e("SBX", Immediate, opSBX, true),
	0xCC: e("CPY", Absolute, opCPY, false),
	0xCD: e("CMP", Absolute, opCMP, false),
	0xCE: e("DEC", Absolute, opDEC, false),
	0xCF: e("DCP", Absolute, opDCP, true),

	0xD0: e("BNE", Relative, opBNE, false),
	0xD1: e("CMP", IndirectY, opCMP, false),
	0xD2: e("JAM", Implied, opJAM, false),
	0xD3: e("DCP", IndirectY, opDCP, true),
	0xD4: e("NOP", ZeroPageX, opNOP, true),
	0xD5: e("CMP", ZeroPageX, opCMP, false),
	0xD6: e("DEC", ZeroPageX, opDEC, false),
	0xD7: e("DCP", ZeroPageX, opDCP, true),
	0xD8: e("CLD", Implied, opCLD, false),
	0xD9: e("CMP", AbsoluteY, opCMP, false),
	0xDA: e("NOP", Implied, opNOP, true),
	0xDB: e("DCP", AbsoluteY, opDCP, true),
	0xDC: e("NOP", AbsoluteX, opNOP, true),
	0xDD: e("CMP", AbsoluteX, opCMP, false),
	0xDE: e("DEC", AbsoluteX, opDEC, false),
	0xDF: e("DCP", AbsoluteX, opDCP, true),

	0xE0: e("CPX", Immediate, opCPX, false),
	0xE1: e("SBC", IndirectX, opSBC, false),
	0xE2: e("NOP", Immediate, opNOP, true),
	0xE3: e("ISC", IndirectX, opISC, true),
	0xE4: e("CPX", ZeroPage, opCPX, false),
	0xE5: e("SBC", ZeroPage, opSBC, false),
	0xE6: e("INC", ZeroPage, opINC, false),
	0xE7: e("ISC", ZeroPage, opISC, true),
	0xE8: e("INX", Implied, opINX, false),
	0xE9: e("SBC", Immediate, opSBC, false),
	0xEA: e("NOP", Implied, opNOP, false),
	0xEB: e("SBC", Immediate, opSBC, true),
	0xEC: e("CPX", Absolute, opCPX, false),
	0xED: e("SBC", Absolute, opSBC, false),
	0xEE: e("INC", Absolute, opINC, false),
	0xEF: e("ISC", Absolute, opISC, true),

	0xF0: e("BEQ", Relative, opBEQ, false),
	0xF1: e("SBC", IndirectY, opSBC, false),
	0xF2: e("JAM", Implied, opJAM, false),
	0xF3: e("ISC", IndirectY, opISC, true),
	0xF4: e("NOP", ZeroPageX, opNOP, true),
	0xF5: e("SBC", ZeroPageX, opSBC, false),
	0xF6: e("INC", ZeroPageX, opINC, false),
	0xF7: e("ISC", ZeroPageX, opISC, true),
	0xF8: e("SED", Implied, opSED, false),
	0xF9: e("SBC", AbsoluteY, opSBC, false),
	0xFA: e("NOP", Implied, opNOP, true),
	0xFB: e("ISC", AbsoluteY, opISC, true),
	0xFC: e("NOP", AbsoluteX, opNOP, true),
	0xFD: e("SBC", AbsoluteX, opSBC, false),
	0xFE: e("INC", AbsoluteX, opINC, false),
	0xFF: e("ISC", AbsoluteX, opISC, true),
}
