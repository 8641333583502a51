// Package trace implements the Odin32K's trace emitter: a verbosity-gated
// sink that formats CPU and bus events into the stable line grammar and
// writes them synchronously to an io.Writer. A write failure (e.g. closed
// stdout) is swallowed; tracing is best-effort and must never halt
// execution.
package trace

import (
	"fmt"
	"io"

	"github.com/poppyemu/poppyemu/cpu"
	"github.com/poppyemu/poppyemu/disasm"
)

// Level selects how much a Logger emits.
type Level int

const (
	// Silent emits nothing.
	Silent Level = iota
	// Instruction emits one "X" line per executed instruction.
	Instruction
	// Registers additionally emits a ">" register dump after each
	// instruction.
	Registers
	// BusLog additionally emits an "R"/"W" line for every bus access.
	BusLog
)

// Logger formats trace events and writes them to w. It implements both
// cpu.Tracer and bus.AccessObserver, so it can be attached to the
// executor and the bus independently; attach it to the bus only at
// BusLog verbosity to avoid the cost of formatting lines nobody asked
// for.
type Logger struct {
	w     io.Writer
	level Level
}

// New creates a Logger that writes to w at the given verbosity level.
func New(w io.Writer, level Level) *Logger {
	return &Logger{w: w, level: level}
}

// SetLevel changes the verbosity level.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// Init emits the "I" startup line, identifying the clock rate and RAM
// seeding mode in effect for this run.
func (l *Logger) Init(clockHz int64, ramInit string) {
	if l.level == Silent {
		return
	}
	fmt.Fprintf(l.w, "I clock_hz=%d ram_init=%s\n", clockHz, ramInit)
}

// Instruction implements cpu.Tracer. It emits the "X" line naming the
// instruction about to have executed and its operand.
func (l *Logger) Instruction(pc uint16, inst *cpu.Instruction, operand []byte) {
	if l.level < Instruction {
		return
	}
	fmt.Fprintf(l.w, "X $%04X %s\n", pc, disasm.Format(pc, inst, operand))
}

// Registers implements cpu.Tracer. It emits the ">" register dump line.
func (l *Logger) Registers(r cpu.Registers) {
	if l.level < Registers {
		return
	}
	fmt.Fprintf(l.w, "> A=$%02X X=$%02X Y=$%02X SP=$%02X PC=$%04X P=$%02X\n",
		r.A, r.X, r.Y, r.SP, r.PC, r.SavePS(false))
}

// BusAccess implements bus.AccessObserver. It emits an "R" or "W" line
// for every memory access.
func (l *Logger) BusAccess(write bool, addr uint16, value byte) {
	if l.level < BusLog {
		return
	}
	kind := "R"
	if write {
		kind = "W"
	}
	fmt.Fprintf(l.w, "%s $%04X $%02X\n", kind, addr, value)
}
