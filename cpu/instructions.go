package cpu

// Mode identifies an addressing mode. The bus-access pattern each mode
// performs is implemented in cpu.go's resolveLoad/resolveStoreAddr pair
// (JMP resolves its own modes in opJMP), grounded on the addressing-mode
// table in the Odin32K core spec.
type Mode byte

const (
	IMP Mode = iota // Implied: no operand, one dummy PC read
	ACC             // Accumulator: operates on A, one dummy PC read
	IMM             // Immediate
	REL             // Relative (branches)
	ZPG             // Zero page
	ZPX             // Zero page,X
	ZPY             // Zero page,Y
	ABS             // Absolute
	ABX             // Absolute,X
	ABY             // Absolute,Y
	IND             // (Absolute) - JMP only
	IDX             // (Zero page,X)
	IDY             // (Zero page),Y
	ZPI             // (Zero page) - 65C02-only indirect zero page
)

// opsym is the internal mnemonic identifier used to key the opcode table.
type opsym byte

const (
	symADC opsym = iota
	symAND
	symASL
	symBCC
	symBCS
	symBEQ
	symBIT
	symBMI
	symBNE
	symBPL
	symBRA
	symBRK
	symBVC
	symBVS
	symCLC
	symCLD
	symCLI
	symCLV
	symCMP
	symCPX
	symCPY
	symDEC
	symDEX
	symDEY
	symEOR
	symHLT
	symINC
	symINX
	symINY
	symJMP
	symJSR
	symLDA
	symLDX
	symLDY
	symLSR
	symNOP
	symORA
	symPHA
	symPHP
	symPHX
	symPHY
	symPLA
	symPLP
	symPLX
	symPLY
	symROL
	symROR
	symRTI
	symRTS
	symSBC
	symSEC
	symSED
	symSEI
	symSTA
	symSTZ
	symSTX
	symSTY
	symTAX
	symTAY
	symTRB
	symTSB
	symTSX
	symTXA
	symTXS
	symTYA
)

var symName = map[opsym]string{
	symADC: "ADC", symAND: "AND", symASL: "ASL", symBCC: "BCC", symBCS: "BCS",
	symBEQ: "BEQ", symBIT: "BIT", symBMI: "BMI", symBNE: "BNE", symBPL: "BPL",
	symBRA: "BRA", symBRK: "BRK", symBVC: "BVC", symBVS: "BVS", symCLC: "CLC",
	symCLD: "CLD", symCLI: "CLI", symCLV: "CLV", symCMP: "CMP", symCPX: "CPX",
	symCPY: "CPY", symDEC: "DEC", symDEX: "DEX", symDEY: "DEY", symEOR: "EOR",
	symHLT: "HLT", symINC: "INC", symINX: "INX", symINY: "INY", symJMP: "JMP",
	symJSR: "JSR", symLDA: "LDA", symLDX: "LDX", symLDY: "LDY", symLSR: "LSR",
	symNOP: "NOP", symORA: "ORA", symPHA: "PHA", symPHP: "PHP", symPHX: "PHX",
	symPHY: "PHY", symPLA: "PLA", symPLP: "PLP", symPLX: "PLX", symPLY: "PLY",
	symROL: "ROL", symROR: "ROR", symRTI: "RTI", symRTS: "RTS", symSBC: "SBC",
	symSEC: "SEC", symSED: "SED", symSEI: "SEI", symSTA: "STA", symSTZ: "STZ",
	symSTX: "STX", symSTY: "STY", symTAX: "TAX", symTAY: "TAY", symTRB: "TRB",
	symTSB: "TSB", symTSX: "TSX", symTXA: "TXA", symTXS: "TXS", symTYA: "TYA",
	symUNK: "???",
}

const symUNK opsym = 0xFF

// instfunc implements one mnemonic's semantics. Step calls fn right after
// the opcode fetch, and fn performs everything else: the addressing work
// (operand fetch, effective-address resolution, dummy reads, usually via
// resolveLoad or resolveStoreAddr), the mnemonic's own bus accesses and
// its register mutations.
type instfunc func(c *CPU, inst *Instruction)

// opcodeData describes one (opcode, addressing mode) pair.
type opcodeData struct {
	sym    opsym
	mode   Mode
	opcode byte
	length byte // bytes including the opcode itself
}

// Instruction is the resolved, ready-to-dispatch form of one opcode.
type Instruction struct {
	Name   string
	Mode   Mode
	Opcode byte
	Length byte
	fn     instfunc
}

// data enumerates every defined (opcode, mode) pair for the Odin32K's
// 65C02-family CPU, minus true decimal-mode behavior (non-goal) and minus
// the NMOS/CMOS architecture split the teacher's reference carried (the
// Odin32K is a single fixed chip).
var data = []opcodeData{
	{symLDA, IMM, 0xA9, 2}, {symLDA, ZPG, 0xA5, 2}, {symLDA, ZPX, 0xB5, 2},
	{symLDA, ABS, 0xAD, 3}, {symLDA, ABX, 0xBD, 3}, {symLDA, ABY, 0xB9, 3},
	{symLDA, IDX, 0xA1, 2}, {symLDA, IDY, 0xB1, 2}, {symLDA, ZPI, 0xB2, 2},

	{symLDX, IMM, 0xA2, 2}, {symLDX, ZPG, 0xA6, 2}, {symLDX, ZPY, 0xB6, 2},
	{symLDX, ABS, 0xAE, 3}, {symLDX, ABY, 0xBE, 3},

	{symLDY, IMM, 0xA0, 2}, {symLDY, ZPG, 0xA4, 2}, {symLDY, ZPX, 0xB4, 2},
	{symLDY, ABS, 0xAC, 3}, {symLDY, ABX, 0xBC, 3},

	{symSTA, ZPG, 0x85, 2}, {symSTA, ZPX, 0x95, 2}, {symSTA, ABS, 0x8D, 3},
	{symSTA, ABX, 0x9D, 3}, {symSTA, ABY, 0x99, 3}, {symSTA, IDX, 0x81, 2},
	{symSTA, IDY, 0x91, 2}, {symSTA, ZPI, 0x92, 2},

	{symSTX, ZPG, 0x86, 2}, {symSTX, ZPY, 0x96, 2}, {symSTX, ABS, 0x8E, 3},
	{symSTY, ZPG, 0x84, 2}, {symSTY, ZPX, 0x94, 2}, {symSTY, ABS, 0x8C, 3},

	{symSTZ, ZPG, 0x64, 2}, {symSTZ, ZPX, 0x74, 2}, {symSTZ, ABS, 0x9C, 3},
	{symSTZ, ABX, 0x9E, 3},

	{symADC, IMM, 0x69, 2}, {symADC, ZPG, 0x65, 2}, {symADC, ZPX, 0x75, 2},
	{symADC, ABS, 0x6D, 3}, {symADC, ABX, 0x7D, 3}, {symADC, ABY, 0x79, 3},
	{symADC, IDX, 0x61, 2}, {symADC, IDY, 0x71, 2}, {symADC, ZPI, 0x72, 2},

	{symSBC, IMM, 0xE9, 2}, {symSBC, ZPG, 0xE5, 2}, {symSBC, ZPX, 0xF5, 2},
	{symSBC, ABS, 0xED, 3}, {symSBC, ABX, 0xFD, 3}, {symSBC, ABY, 0xF9, 3},
	{symSBC, IDX, 0xE1, 2}, {symSBC, IDY, 0xF1, 2}, {symSBC, ZPI, 0xF2, 2},

	{symCMP, IMM, 0xC9, 2}, {symCMP, ZPG, 0xC5, 2}, {symCMP, ZPX, 0xD5, 2},
	{symCMP, ABS, 0xCD, 3}, {symCMP, ABX, 0xDD, 3}, {symCMP, ABY, 0xD9, 3},
	{symCMP, IDX, 0xC1, 2}, {symCMP, IDY, 0xD1, 2}, {symCMP, ZPI, 0xD2, 2},

	{symCPX, IMM, 0xE0, 2}, {symCPX, ZPG, 0xE4, 2}, {symCPX, ABS, 0xEC, 3},
	{symCPY, IMM, 0xC0, 2}, {symCPY, ZPG, 0xC4, 2}, {symCPY, ABS, 0xCC, 3},

	{symBIT, IMM, 0x89, 2}, {symBIT, ZPG, 0x24, 2}, {symBIT, ZPX, 0x34, 2},
	{symBIT, ABS, 0x2C, 3}, {symBIT, ABX, 0x3C, 3},

	{symCLC, IMP, 0x18, 1}, {symSEC, IMP, 0x38, 1}, {symCLI, IMP, 0x58, 1},
	{symSEI, IMP, 0x78, 1}, {symCLD, IMP, 0xD8, 1}, {symSED, IMP, 0xF8, 1},
	{symCLV, IMP, 0xB8, 1},

	{symBCC, REL, 0x90, 2}, {symBCS, REL, 0xB0, 2}, {symBEQ, REL, 0xF0, 2},
	{symBNE, REL, 0xD0, 2}, {symBMI, REL, 0x30, 2}, {symBPL, REL, 0x10, 2},
	{symBVC, REL, 0x50, 2}, {symBVS, REL, 0x70, 2}, {symBRA, REL, 0x80, 2},

	{symBRK, IMP, 0x00, 1},

	{symAND, IMM, 0x29, 2}, {symAND, ZPG, 0x25, 2}, {symAND, ZPX, 0x35, 2},
	{symAND, ABS, 0x2D, 3}, {symAND, ABX, 0x3D, 3}, {symAND, ABY, 0x39, 3},
	{symAND, IDX, 0x21, 2}, {symAND, IDY, 0x31, 2}, {symAND, ZPI, 0x32, 2},

	{symORA, IMM, 0x09, 2}, {symORA, ZPG, 0x05, 2}, {symORA, ZPX, 0x15, 2},
	{symORA, ABS, 0x0D, 3}, {symORA, ABX, 0x1D, 3}, {symORA, ABY, 0x19, 3},
	{symORA, IDX, 0x01, 2}, {symORA, IDY, 0x11, 2}, {symORA, ZPI, 0x12, 2},

	{symEOR, IMM, 0x49, 2}, {symEOR, ZPG, 0x45, 2}, {symEOR, ZPX, 0x55, 2},
	{symEOR, ABS, 0x4D, 3}, {symEOR, ABX, 0x5D, 3}, {symEOR, ABY, 0x59, 3},
	{symEOR, IDX, 0x41, 2}, {symEOR, IDY, 0x51, 2}, {symEOR, ZPI, 0x52, 2},

	{symINC, ZPG, 0xE6, 2}, {symINC, ZPX, 0xF6, 2}, {symINC, ABS, 0xEE, 3},
	{symINC, ABX, 0xFE, 3}, {symINC, ACC, 0x1A, 1},

	{symDEC, ZPG, 0xC6, 2}, {symDEC, ZPX, 0xD6, 2}, {symDEC, ABS, 0xCE, 3},
	{symDEC, ABX, 0xDE, 3}, {symDEC, ACC, 0x3A, 1},

	{symINX, IMP, 0xE8, 1}, {symINY, IMP, 0xC8, 1},
	{symDEX, IMP, 0xCA, 1}, {symDEY, IMP, 0x88, 1},

	{symJMP, ABS, 0x4C, 3}, {symJMP, ABX, 0x7C, 3}, {symJMP, IND, 0x6C, 3},

	{symJSR, ABS, 0x20, 3}, {symRTS, IMP, 0x60, 1}, {symRTI, IMP, 0x40, 1},

	{symNOP, IMP, 0xEA, 1},

	{symTAX, IMP, 0xAA, 1}, {symTXA, IMP, 0x8A, 1}, {symTAY, IMP, 0xA8, 1},
	{symTYA, IMP, 0x98, 1}, {symTXS, IMP, 0x9A, 1}, {symTSX, IMP, 0xBA, 1},

	{symTRB, ZPG, 0x14, 2}, {symTRB, ABS, 0x1C, 3},
	{symTSB, ZPG, 0x04, 2}, {symTSB, ABS, 0x0C, 3},

	{symPHA, IMP, 0x48, 1}, {symPLA, IMP, 0x68, 1},
	{symPHP, IMP, 0x08, 1}, {symPLP, IMP, 0x28, 1},
	{symPHX, IMP, 0xDA, 1}, {symPLX, IMP, 0xFA, 1},
	{symPHY, IMP, 0x5A, 1}, {symPLY, IMP, 0x7A, 1},

	{symASL, ACC, 0x0A, 1}, {symASL, ZPG, 0x06, 2}, {symASL, ZPX, 0x16, 2},
	{symASL, ABS, 0x0E, 3}, {symASL, ABX, 0x1E, 3},

	{symLSR, ACC, 0x4A, 1}, {symLSR, ZPG, 0x46, 2}, {symLSR, ZPX, 0x56, 2},
	{symLSR, ABS, 0x4E, 3}, {symLSR, ABX, 0x5E, 3},

	{symROL, ACC, 0x2A, 1}, {symROL, ZPG, 0x26, 2}, {symROL, ZPX, 0x36, 2},
	{symROL, ABS, 0x2E, 3}, {symROL, ABX, 0x3E, 3},

	{symROR, ACC, 0x6A, 1}, {symROR, ZPG, 0x66, 2}, {symROR, ZPX, 0x76, 2},
	{symROR, ABS, 0x6E, 3}, {symROR, ABX, 0x7E, 3},

	// Odin32K non-standard extension: $02 halts the main loop cleanly
	// instead of behaving as the unused 2-byte/2-cycle NOP the rest of
	// the family uses.
	{symHLT, IMP, 0x02, 1},
}

// unused describes an opcode with no real operation, implemented as a
// size-and-cycle-accurate NOP. idleCycles is how many extra bus reads of
// the current PC (beyond the operand bytes implied by length) the NOP
// must burn to match its documented cycle count.
type unused struct {
	opcode     byte
	length     byte
	idleCycles byte
}

var unusedData = []unused{
	{0x22, 2, 0}, {0x42, 2, 0}, {0x62, 2, 0}, {0x82, 2, 0}, {0xC2, 2, 0}, {0xE2, 2, 0},
	{0x03, 1, 0}, {0x13, 1, 0}, {0x23, 1, 0}, {0x33, 1, 0}, {0x43, 1, 0}, {0x53, 1, 0},
	{0x63, 1, 0}, {0x73, 1, 0}, {0x83, 1, 0}, {0x93, 1, 0}, {0xA3, 1, 0}, {0xB3, 1, 0},
	{0xC3, 1, 0}, {0xD3, 1, 0}, {0xE3, 1, 0}, {0xF3, 1, 0},
	{0x44, 2, 1}, {0x54, 2, 2}, {0xD4, 2, 2}, {0xF4, 2, 2},
	{0x07, 1, 0}, {0x17, 1, 0}, {0x27, 1, 0}, {0x37, 1, 0}, {0x47, 1, 0}, {0x57, 1, 0},
	{0x67, 1, 0}, {0x77, 1, 0}, {0x87, 1, 0}, {0x97, 1, 0}, {0xA7, 1, 0}, {0xB7, 1, 0},
	{0xC7, 1, 0}, {0xD7, 1, 0}, {0xE7, 1, 0}, {0xF7, 1, 0},
	{0x0B, 1, 0}, {0x1B, 1, 0}, {0x2B, 1, 0}, {0x3B, 1, 0}, {0x4B, 1, 0}, {0x5B, 1, 0},
	{0x6B, 1, 0}, {0x7B, 1, 0}, {0x8B, 1, 0}, {0x9B, 1, 0}, {0xAB, 1, 0}, {0xBB, 1, 0},
	{0xCB, 1, 0}, {0xDB, 1, 0}, {0xEB, 1, 0}, {0xFB, 1, 0},
	{0x5C, 3, 5}, {0xDC, 3, 1}, {0xFC, 3, 1},
	{0x0F, 1, 0}, {0x1F, 1, 0}, {0x2F, 1, 0}, {0x3F, 1, 0}, {0x4F, 1, 0}, {0x5F, 1, 0},
	{0x6F, 1, 0}, {0x7F, 1, 0}, {0x8F, 1, 0}, {0x9F, 1, 0}, {0xAF, 1, 0}, {0xBF, 1, 0},
	{0xCF, 1, 0}, {0xDF, 1, 0}, {0xEF, 1, 0}, {0xFF, 1, 0},
}

// InstructionSet resolves every opcode to its Instruction.
type InstructionSet struct {
	instructions [256]Instruction
}

// Lookup returns the Instruction bound to opcode.
func (s *InstructionSet) Lookup(opcode byte) *Instruction {
	return &s.instructions[opcode]
}

var defaultSet *InstructionSet

func init() {
	defaultSet = newInstructionSet()
}

// GetInstructionSet returns the singleton instruction set for the
// Odin32K's 65C02-family CPU.
func GetInstructionSet() *InstructionSet {
	return defaultSet
}

func newInstructionSet() *InstructionSet {
	set := &InstructionSet{}

	fnBySym := instructionFuncs()

	for _, d := range data {
		inst := &set.instructions[d.opcode]
		inst.Name = symName[d.sym]
		inst.Mode = d.mode
		inst.Opcode = d.opcode
		inst.Length = d.length
		inst.fn = fnBySym[d.sym]
	}

	for _, u := range unusedData {
		inst := &set.instructions[u.opcode]
		inst.Name = symName[symUNK]
		inst.Mode = IMP
		inst.Opcode = u.opcode
		inst.Length = u.length
		operandBytes := int(u.length) - 1
		idle := int(u.idleCycles)
		inst.fn = func(c *CPU, inst *Instruction) {
			for i := 0; i < operandBytes; i++ {
				c.fetchByte()
			}
			c.burnIdleCycles(idle)
		}
	}

	for i := 0; i < 256; i++ {
		if set.instructions[i].Name == "" {
			panic("poppyemu: opcode table is missing an entry")
		}
	}
	return set
}
