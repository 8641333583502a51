// Package cpu implements the Odin32K's 65C02-family instruction executor:
// register file, flag microcode, stack microcode, and a table-driven
// fetch/decode/execute loop that performs the literal sequence of bus
// accesses (including dummy reads) each addressing mode requires.
package cpu

// Bus is the interface through which the executor performs every memory
// access. It is satisfied by *bus.Bus; the CPU package never imports bus
// directly, so it can be driven by a fake bus in tests.
type Bus interface {
	Read(addr uint16) byte
	Write(addr uint16, v byte)
}

// Tracer receives notifications from the executor for trace emission. A
// nil Tracer disables all instruction-level tracing; bus-level tracing is
// handled separately by the bus's own AccessObserver.
type Tracer interface {
	// Instruction is called once an instruction has finished executing,
	// with the operand bytes it consumed directly from the instruction
	// stream (not bytes read indirectly through a computed pointer).
	Instruction(pc uint16, inst *Instruction, operand []byte)
	// Registers is called after an instruction has fully executed.
	Registers(r Registers)
}

// Interrupt and reset vectors.
const (
	vectorNMI   = 0xFFFA
	vectorReset = 0xFFFC
	vectorIRQ   = 0xFFFE
	vectorBRK   = 0xFFFE
)

// CPU represents the Odin32K's single CPU core.
type CPU struct {
	Reg    Registers
	Halted bool

	bus    Bus
	set    *InstructionSet
	tracer Tracer

	operandBuf     [2]byte
	operandLen     int
	captureOperand bool
}

// NewCPU creates a CPU bound to bus. Callers must call Reset before
// Step to establish the initial PC from the reset vector.
func NewCPU(bus Bus) *CPU {
	return &CPU{
		bus: bus,
		set: GetInstructionSet(),
	}
}

// AttachTracer installs a trace sink. Pass nil to detach.
func (c *CPU) AttachTracer(t Tracer) {
	c.tracer = t
}

// Reset initializes the register file and loads PC from the reset vector.
// The two vector bytes are architectural reads and consume bus cycles.
func (c *CPU) Reset() {
	c.Reg.Init()
	lo := c.bus.Read(vectorReset)
	hi := c.bus.Read(vectorReset + 1)
	c.Reg.PC = uint16(lo) | uint16(hi)<<8
	c.Halted = false
}

// Step executes exactly one instruction, returning false once the guest
// has halted (opcode $02) and the caller should stop the fetch loop.
func (c *CPU) Step() bool {
	if c.Halted {
		return false
	}

	pc := c.Reg.PC
	opcode := c.fetchByte()
	inst := c.set.Lookup(opcode)

	c.operandLen = 0
	c.captureOperand = true
	inst.fn(c, inst)
	c.captureOperand = false

	if opcode == 0x02 {
		c.Halted = true
	}

	if c.tracer != nil {
		n := c.operandLen
		if max := int(inst.Length) - 1; n > max {
			n = max
		}
		c.tracer.Instruction(pc, inst, c.operandBuf[:n])
		c.tracer.Registers(c.Reg)
	}

	return !c.Halted
}

// fetchByte reads the byte at PC and advances it. Every addressing mode
// consumes its operand bytes from the instruction stream this way, so
// Step uses it to recover the operand for trace purposes without a
// separate, cycle-costing peek.
func (c *CPU) fetchByte() byte {
	v := c.bus.Read(c.Reg.PC)
	c.Reg.PC++
	if c.captureOperand && c.operandLen < len(c.operandBuf) {
		c.operandBuf[c.operandLen] = v
		c.operandLen++
	}
	return v
}

func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(lo) | uint16(hi)<<8
}

// dummyReadPC performs the Implied/Accumulator addressing mode's single
// dummy read of the current PC without advancing it.
func (c *CPU) dummyReadPC() {
	c.bus.Read(c.Reg.PC)
}

func (c *CPU) burnIdleCycles(n int) {
	for i := 0; i < n; i++ {
		c.dummyReadPC()
	}
}

// resolveLoad performs the full bus-access pattern for a read-class
// addressing mode and returns the loaded value.
func (c *CPU) resolveLoad(mode Mode) byte {
	switch mode {
	case IMM:
		return c.fetchByte()
	case ZPG:
		zp := c.fetchByte()
		return c.bus.Read(uint16(zp))
	case ZPX:
		zp := c.fetchByte()
		c.bus.Read(uint16(zp))
		addr := uint16((zp + c.Reg.X) & 0xFF)
		return c.bus.Read(addr)
	case ZPY:
		zp := c.fetchByte()
		c.bus.Read(uint16(zp))
		addr := uint16((zp + c.Reg.Y) & 0xFF)
		return c.bus.Read(addr)
	case ABS:
		addr := c.fetchWord()
		return c.bus.Read(addr)
	case ABX:
		return c.bus.Read(c.indexedReadAddr(c.Reg.X))
	case ABY:
		return c.bus.Read(c.indexedReadAddr(c.Reg.Y))
	case IDX:
		zp := c.fetchByte()
		c.bus.Read(uint16(zp))
		ptr := (zp + c.Reg.X) & 0xFF
		lo := c.bus.Read(uint16(ptr))
		hi := c.bus.Read(uint16((ptr + 1) & 0xFF))
		addr := uint16(lo) | uint16(hi)<<8
		return c.bus.Read(addr)
	case IDY:
		zp := c.fetchByte()
		lo := c.bus.Read(uint16(zp))
		hi := c.bus.Read(uint16((zp + 1) & 0xFF))
		base := uint16(lo) | uint16(hi)<<8
		addr := base + uint16(c.Reg.Y)
		if addr&0xFF00 != base&0xFF00 {
			c.bus.Read((base & 0xFF00) | (addr & 0xFF))
		}
		return c.bus.Read(addr)
	case ZPI:
		zp := c.fetchByte()
		lo := c.bus.Read(uint16(zp))
		hi := c.bus.Read(uint16((zp + 1) & 0xFF))
		addr := uint16(lo) | uint16(hi)<<8
		return c.bus.Read(addr)
	default:
		panic("poppyemu/cpu: invalid read-class addressing mode")
	}
}

func (c *CPU) indexedReadAddr(index byte) uint16 {
	base := c.fetchWord()
	addr := base + uint16(index)
	if addr&0xFF00 != base&0xFF00 {
		c.bus.Read((base & 0xFF00) | (addr & 0xFF))
	}
	return addr
}

// resolveStoreAddr performs the full bus-access pattern for a write-class
// or read-modify-write addressing mode (the page-crossing dummy read is
// unconditional) and returns the effective address, leaving the final
// write or read-modify-write access to the caller.
func (c *CPU) resolveStoreAddr(mode Mode) uint16 {
	switch mode {
	case ZPG:
		return uint16(c.fetchByte())
	case ZPX:
		zp := c.fetchByte()
		c.bus.Read(uint16(zp))
		return uint16((zp + c.Reg.X) & 0xFF)
	case ZPY:
		zp := c.fetchByte()
		c.bus.Read(uint16(zp))
		return uint16((zp + c.Reg.Y) & 0xFF)
	case ABS:
		return c.fetchWord()
	case ABX:
		return c.indexedWriteAddr(c.Reg.X)
	case ABY:
		return c.indexedWriteAddr(c.Reg.Y)
	case IDX:
		zp := c.fetchByte()
		c.bus.Read(uint16(zp))
		ptr := (zp + c.Reg.X) & 0xFF
		lo := c.bus.Read(uint16(ptr))
		hi := c.bus.Read(uint16((ptr + 1) & 0xFF))
		return uint16(lo) | uint16(hi)<<8
	case IDY:
		zp := c.fetchByte()
		lo := c.bus.Read(uint16(zp))
		hi := c.bus.Read(uint16((zp + 1) & 0xFF))
		base := uint16(lo) | uint16(hi)<<8
		addr := base + uint16(c.Reg.Y)
		c.bus.Read((base & 0xFF00) | (addr & 0xFF))
		return addr
	case ZPI:
		zp := c.fetchByte()
		lo := c.bus.Read(uint16(zp))
		hi := c.bus.Read(uint16((zp + 1) & 0xFF))
		return uint16(lo) | uint16(hi)<<8
	default:
		panic("poppyemu/cpu: invalid write-class addressing mode")
	}
}

func (c *CPU) indexedWriteAddr(index byte) uint16 {
	base := c.fetchWord()
	addr := base + uint16(index)
	c.bus.Read((base & 0xFF00) | (addr & 0xFF))
	return addr
}

// branch performs a relative branch's operand fetch and, if taken, its
// extra cycle(s): one for the branch itself, and one more if the target
// crosses a page boundary.
func (c *CPU) branch(taken bool) {
	offset := c.fetchByte()
	if !taken {
		return
	}
	c.dummyReadPC()
	oldPC := c.Reg.PC
	var newPC uint16
	if offset < 0x80 {
		newPC = oldPC + uint16(offset)
	} else {
		newPC = oldPC - uint16(0x100-uint16(offset))
	}
	if newPC&0xFF00 != oldPC&0xFF00 {
		c.bus.Read((oldPC & 0xFF00) | (newPC & 0xFF))
	}
	c.Reg.PC = newPC
}

func stackAddress(sp byte) uint16 {
	return 0x0100 | uint16(sp)
}

func (c *CPU) push(v byte) {
	c.bus.Write(stackAddress(c.Reg.SP), v)
	c.Reg.SP--
}

func (c *CPU) pushWord(addr uint16) {
	c.push(byte(addr >> 8))
	c.push(byte(addr))
}

// dummyReadStack reads the current stack location without touching SP.
// JSR issues it before pushing; RTS/RTI/PLA/PLP/PLX/PLY issue it once,
// before the first pop, per the "stack predecrement dummy read" in spec
// section 4.4 - it happens once per instruction, not once per byte
// popped.
func (c *CPU) dummyReadStack() {
	c.bus.Read(stackAddress(c.Reg.SP))
}

// popByte pops a single byte with no predecrement dummy; callers that pop
// multiple bytes in one instruction issue dummyReadStack once up front.
func (c *CPU) popByte() byte {
	c.Reg.SP++
	return c.bus.Read(stackAddress(c.Reg.SP))
}

func (c *CPU) popWord() uint16 {
	lo := c.popByte()
	hi := c.popByte()
	return uint16(lo) | uint16(hi)<<8
}
