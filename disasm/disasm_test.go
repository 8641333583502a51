package disasm

import (
	"testing"

	"github.com/poppyemu/poppyemu/cpu"
)

func TestFormatImmediate(t *testing.T) {
	inst := &cpu.Instruction{Name: "LDA", Mode: cpu.IMM, Length: 2}
	got := Format(0xE000, inst, []byte{0xAA})
	if got != "LDA #$AA" {
		t.Errorf("Format = %q, want %q", got, "LDA #$AA")
	}
}

func TestFormatAbsolute(t *testing.T) {
	inst := &cpu.Instruction{Name: "JMP", Mode: cpu.ABS, Length: 3}
	got := Format(0xE000, inst, []byte{0x05, 0xE0})
	if got != "JMP $E005" {
		t.Errorf("Format = %q, want %q", got, "JMP $E005")
	}
}

func TestFormatAbsoluteIndexed(t *testing.T) {
	inst := &cpu.Instruction{Name: "LDA", Mode: cpu.ABX, Length: 3}
	got := Format(0xE000, inst, []byte{0x00, 0x10})
	if got != "LDA $1000,X" {
		t.Errorf("Format = %q, want %q", got, "LDA $1000,X")
	}
}

func TestFormatImplied(t *testing.T) {
	inst := &cpu.Instruction{Name: "NOP", Mode: cpu.IMP, Length: 1}
	got := Format(0xE000, inst, nil)
	if got != "NOP" {
		t.Errorf("Format = %q, want %q", got, "NOP")
	}
}

func TestFormatAccumulator(t *testing.T) {
	inst := &cpu.Instruction{Name: "ASL", Mode: cpu.ACC, Length: 1}
	got := Format(0xE000, inst, nil)
	if got != "ASL A" {
		t.Errorf("Format = %q, want %q", got, "ASL A")
	}
}

func TestFormatRelativeForwardBranch(t *testing.T) {
	// BNE at $E000, length 2, offset $05 -> target $E007.
	inst := &cpu.Instruction{Name: "BNE", Mode: cpu.REL, Length: 2}
	got := Format(0xE000, inst, []byte{0x05})
	if got != "BNE $E007" {
		t.Errorf("Format = %q, want %q", got, "BNE $E007")
	}
}

func TestFormatRelativeBackwardBranch(t *testing.T) {
	// BEQ at $E010, length 2, offset $FE (-2) -> target $E010.
	inst := &cpu.Instruction{Name: "BEQ", Mode: cpu.REL, Length: 2}
	got := Format(0xE010, inst, []byte{0xFE})
	if got != "BEQ $E010" {
		t.Errorf("Format = %q, want %q", got, "BEQ $E010")
	}
}

func TestFormatZeroPageIndirect(t *testing.T) {
	inst := &cpu.Instruction{Name: "LDA", Mode: cpu.ZPI, Length: 2}
	got := Format(0xE000, inst, []byte{0x20})
	if got != "LDA ($20)" {
		t.Errorf("Format = %q, want %q", got, "LDA ($20)")
	}
}
