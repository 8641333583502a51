// Package disasm formats an already-decoded Odin32K instruction and the
// operand bytes it consumed into a human-readable mnemonic line, e.g.
// "LDA $1234,X" or "BNE $08F0". It never touches the bus itself: the
// operand bytes are the ones the CPU already consumed while executing the
// instruction, supplied by the trace package, so formatting never costs
// an extra cycle or re-reads memory.
package disasm

import (
	"fmt"

	"github.com/poppyemu/poppyemu/cpu"
)

// modeFormat is indexed by cpu.Mode.
var modeFormat = []string{
	"%s",      // IMP
	"A",       // ACC
	"#$%s",    // IMM
	"$%s",     // REL
	"$%s",     // ZPG
	"$%s,X",   // ZPX
	"$%s,Y",   // ZPY
	"$%s",     // ABS
	"$%s,X",   // ABX
	"$%s,Y",   // ABY
	"($%s)",   // IND
	"($%s,X)", // IDX
	"($%s),Y", // IDY
	"($%s)",   // ZPI
}

var hex = "0123456789ABCDEF"

// hexString renders b as a big-endian hex string, reversing the little
// endian byte order instructions are encoded in.
func hexString(b []byte) string {
	buf := make([]byte, len(b)*2)
	j := len(buf) - 1
	for _, n := range b {
		buf[j] = hex[n&0xf]
		buf[j-1] = hex[n>>4]
		j -= 2
	}
	return string(buf)
}

// Format renders inst (fetched at pc) with its consumed operand bytes.
func Format(pc uint16, inst *cpu.Instruction, operand []byte) string {
	if inst.Mode == cpu.ACC {
		return inst.Name + " A"
	}
	if inst.Mode == cpu.IMP {
		return inst.Name
	}

	display := operand
	if inst.Mode == cpu.REL && len(operand) == 1 {
		// Convert the relative offset to an absolute target address.
		target := int(pc) + int(inst.Length) + int(operand[0])
		if operand[0] > 0x7f {
			target -= 256
		}
		display = []byte{byte(target), byte(target >> 8)}
	}

	format := "%s " + modeFormat[inst.Mode]
	return fmt.Sprintf(format, inst.Name, hexString(display))
}
