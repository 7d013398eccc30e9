package main

import (
	"bufio"
	"fmt"
	"io"

	"nestorcore/cpu6502"
)

// traceSink formats each executed instruction in a nestest-log-adjacent
// layout: address, disassembly, then register file and cycle count.
type traceSink struct {
	cpu *cpu6502.CPU
	w   *bufio.Writer
}

func newTraceSink(w io.Writer, cpu *cpu6502.CPU) *traceSink {
	return &traceSink{cpu: cpu, w: bufio.NewWriter(w)}
}

// TraceStep implements cpu6502.Tracer.
func (t *traceSink) TraceStep(s cpu6502.State) {
	text, _ := t.cpu.Disassemble(s.PC)
	fmt.Fprintf(t.w, "%04X  %-24s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d\n",
		s.PC, text, s.A, s.X, s.Y, uint8(s.P), s.SP, s.Cycle)
}

func (t *traceSink) Flush() error { return t.w.Flush() }
