package cpu

// compare implements the CMP/CPX/CPY family: an unstored subtraction that
// only updates Carry, Zero and Sign.
func (c *CPU) compare(reg, v byte) {
	diff := reg - v
	c.Reg.Carry = reg >= v
	c.Reg.Zero = reg == v
	c.Reg.Sign = diff&0x80 != 0
}

func opADC(c *CPU, inst *Instruction) {
	v := c.resolveLoad(inst.Mode)
	result, carry, overflow := adc(c.Reg.A, v, c.Reg.Carry)
	c.Reg.A = result
	c.Reg.Carry = carry
	c.Reg.Overflow = overflow
	setZN(&c.Reg, result)
}

func opSBC(c *CPU, inst *Instruction) {
	v := c.resolveLoad(inst.Mode)
	result, carry, overflow := sbc(c.Reg.A, v, c.Reg.Carry)
	c.Reg.A = result
	c.Reg.Carry = carry
	c.Reg.Overflow = overflow
	setZN(&c.Reg, result)
}

func opAND(c *CPU, inst *Instruction) {
	v := c.resolveLoad(inst.Mode)
	c.Reg.A &= v
	setZN(&c.Reg, c.Reg.A)
}

func opORA(c *CPU, inst *Instruction) {
	v := c.resolveLoad(inst.Mode)
	c.Reg.A |= v
	setZN(&c.Reg, c.Reg.A)
}

func opEOR(c *CPU, inst *Instruction) {
	v := c.resolveLoad(inst.Mode)
	c.Reg.A ^= v
	setZN(&c.Reg, c.Reg.A)
}

func opCMP(c *CPU, inst *Instruction) {
	c.compare(c.Reg.A, c.resolveLoad(inst.Mode))
}

func opCPX(c *CPU, inst *Instruction) {
	c.compare(c.Reg.X, c.resolveLoad(inst.Mode))
}

func opCPY(c *CPU, inst *Instruction) {
	c.compare(c.Reg.Y, c.resolveLoad(inst.Mode))
}

// opBIT implements both the memory-read form used by ZPG/ZPX/ABS/ABX and
// the immediate form, which per the 65C02 only ever touches Zero.
func opBIT(c *CPU, inst *Instruction) {
	v := c.resolveLoad(inst.Mode)
	c.Reg.Zero = c.Reg.A&v == 0
	if inst.Mode != IMM {
		c.Reg.Overflow = v&0x40 != 0
		c.Reg.Sign = v&0x80 != 0
	}
}

func opLDA(c *CPU, inst *Instruction) {
	c.Reg.A = c.resolveLoad(inst.Mode)
	setZN(&c.Reg, c.Reg.A)
}

func opLDX(c *CPU, inst *Instruction) {
	c.Reg.X = c.resolveLoad(inst.Mode)
	setZN(&c.Reg, c.Reg.X)
}

func opLDY(c *CPU, inst *Instruction) {
	c.Reg.Y = c.resolveLoad(inst.Mode)
	setZN(&c.Reg, c.Reg.Y)
}

func opSTA(c *CPU, inst *Instruction) {
	c.bus.Write(c.resolveStoreAddr(inst.Mode), c.Reg.A)
}

func opSTX(c *CPU, inst *Instruction) {
	c.bus.Write(c.resolveStoreAddr(inst.Mode), c.Reg.X)
}

func opSTY(c *CPU, inst *Instruction) {
	c.bus.Write(c.resolveStoreAddr(inst.Mode), c.Reg.Y)
}

func opSTZ(c *CPU, inst *Instruction) {
	c.bus.Write(c.resolveStoreAddr(inst.Mode), 0)
}

func opTRB(c *CPU, inst *Instruction) {
	addr := c.resolveStoreAddr(inst.Mode)
	v := c.bus.Read(addr)
	c.bus.Read(addr)
	c.Reg.Zero = v&c.Reg.A == 0
	c.bus.Write(addr, v&^c.Reg.A)
}

func opTSB(c *CPU, inst *Instruction) {
	addr := c.resolveStoreAddr(inst.Mode)
	v := c.bus.Read(addr)
	c.bus.Read(addr)
	c.Reg.Zero = v&c.Reg.A == 0
	c.bus.Write(addr, v|c.Reg.A)
}

func opASL(c *CPU, inst *Instruction) {
	if inst.Mode == ACC {
		c.dummyReadPC()
		carry := c.Reg.A&0x80 != 0
		c.Reg.A <<= 1
		c.Reg.Carry = carry
		setZN(&c.Reg, c.Reg.A)
		return
	}
	addr := c.resolveStoreAddr(inst.Mode)
	v := c.bus.Read(addr)
	c.bus.Read(addr)
	carry := v&0x80 != 0
	result := v << 1
	c.bus.Write(addr, result)
	c.Reg.Carry = carry
	setZN(&c.Reg, result)
}

func opLSR(c *CPU, inst *Instruction) {
	if inst.Mode == ACC {
		c.dummyReadPC()
		carry := c.Reg.A&0x01 != 0
		c.Reg.A >>= 1
		c.Reg.Carry = carry
		setZN(&c.Reg, c.Reg.A)
		return
	}
	addr := c.resolveStoreAddr(inst.Mode)
	v := c.bus.Read(addr)
	c.bus.Read(addr)
	carry := v&0x01 != 0
	result := v >> 1
	c.bus.Write(addr, result)
	c.Reg.Carry = carry
	setZN(&c.Reg, result)
}

func opROL(c *CPU, inst *Instruction) {
	carryIn := byte(0)
	if c.Reg.Carry {
		carryIn = 1
	}
	if inst.Mode == ACC {
		c.dummyReadPC()
		carry := c.Reg.A&0x80 != 0
		c.Reg.A = c.Reg.A<<1 | carryIn
		c.Reg.Carry = carry
		setZN(&c.Reg, c.Reg.A)
		return
	}
	addr := c.resolveStoreAddr(inst.Mode)
	v := c.bus.Read(addr)
	c.bus.Read(addr)
	carry := v&0x80 != 0
	result := v<<1 | carryIn
	c.bus.Write(addr, result)
	c.Reg.Carry = carry
	setZN(&c.Reg, result)
}

func opROR(c *CPU, inst *Instruction) {
	carryIn := byte(0)
	if c.Reg.Carry {
		carryIn = 0x80
	}
	if inst.Mode == ACC {
		c.dummyReadPC()
		carry := c.Reg.A&0x01 != 0
		c.Reg.A = c.Reg.A>>1 | carryIn
		c.Reg.Carry = carry
		setZN(&c.Reg, c.Reg.A)
		return
	}
	addr := c.resolveStoreAddr(inst.Mode)
	v := c.bus.Read(addr)
	c.bus.Read(addr)
	carry := v&0x01 != 0
	result := v>>1 | carryIn
	c.bus.Write(addr, result)
	c.Reg.Carry = carry
	setZN(&c.Reg, result)
}

func opINC(c *CPU, inst *Instruction) {
	if inst.Mode == ACC {
		c.dummyReadPC()
		c.Reg.A++
		setZN(&c.Reg, c.Reg.A)
		return
	}
	addr := c.resolveStoreAddr(inst.Mode)
	v := c.bus.Read(addr)
	c.bus.Read(addr)
	result := v + 1
	c.bus.Write(addr, result)
	setZN(&c.Reg, result)
}

func opDEC(c *CPU, inst *Instruction) {
	if inst.Mode == ACC {
		c.dummyReadPC()
		c.Reg.A--
		setZN(&c.Reg, c.Reg.A)
		return
	}
	addr := c.resolveStoreAddr(inst.Mode)
	v := c.bus.Read(addr)
	c.bus.Read(addr)
	result := v - 1
	c.bus.Write(addr, result)
	setZN(&c.Reg, result)
}

func opINX(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.Reg.X++
	setZN(&c.Reg, c.Reg.X)
}

func opINY(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.Reg.Y++
	setZN(&c.Reg, c.Reg.Y)
}

func opDEX(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.Reg.X--
	setZN(&c.Reg, c.Reg.X)
}

func opDEY(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.Reg.Y--
	setZN(&c.Reg, c.Reg.Y)
}

// opJMP covers all three of the Odin32K's JMP addressing forms: direct
// absolute, the 65C02 absolute-indexed-indirect extension, and classic
// absolute indirect (with its $FF-page-wrap fix, in the IND case below).
func opJMP(c *CPU, inst *Instruction) {
	switch inst.Mode {
	case ABS:
		c.Reg.PC = c.fetchWord()
	case ABX:
		ptr := c.indexedWriteAddr(c.Reg.X)
		lo := c.bus.Read(ptr)
		hi := c.bus.Read(ptr + 1)
		c.Reg.PC = uint16(lo) | uint16(hi)<<8
	case IND:
		ptr := c.fetchWord()
		lo := c.bus.Read(ptr)
		var hiAddr uint16
		if byte(ptr) == 0xFF {
			c.bus.Read(ptr)
			hiAddr = ptr&0xFF00 + 0x0100
		} else {
			hiAddr = ptr + 1
		}
		hi := c.bus.Read(hiAddr)
		c.Reg.PC = uint16(lo) | uint16(hi)<<8
	default:
		panic("poppyemu/cpu: invalid JMP addressing mode")
	}
}

func opJSR(c *CPU, inst *Instruction) {
	addr := c.fetchWord()
	c.dummyReadStack()
	c.pushWord(c.Reg.PC - 1)
	c.Reg.PC = addr
}

func opRTS(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.dummyReadStack()
	lo := c.popByte()
	hi := c.popByte()
	addr := uint16(lo) | uint16(hi)<<8
	c.bus.Read(addr)
	c.Reg.PC = addr + 1
}

func opRTI(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.dummyReadStack()
	ps := c.popByte()
	lo := c.popByte()
	hi := c.popByte()
	c.Reg.RestorePS(ps)
	c.Reg.PC = uint16(lo) | uint16(hi)<<8
}

func opBRK(c *CPU, inst *Instruction) {
	c.fetchByte() // signature byte, discarded
	c.pushWord(c.Reg.PC)
	c.push(c.Reg.SavePS(true))
	c.Reg.InterruptDisable = true
	lo := c.bus.Read(vectorBRK)
	hi := c.bus.Read(vectorBRK + 1)
	c.Reg.PC = uint16(lo) | uint16(hi)<<8
}

func opNOP(c *CPU, inst *Instruction) {
	c.dummyReadPC()
}

// opHLT backs the Odin32K's non-standard $02 halt sentinel. Step notices
// opcode $02 directly and stops the fetch loop after fn returns, so this
// body does nothing; HLT is one byte and burns no extra cycles.
func opHLT(c *CPU, inst *Instruction) {}

func opBCC(c *CPU, inst *Instruction) { c.branch(!c.Reg.Carry) }
func opBCS(c *CPU, inst *Instruction) { c.branch(c.Reg.Carry) }
func opBEQ(c *CPU, inst *Instruction) { c.branch(c.Reg.Zero) }
func opBNE(c *CPU, inst *Instruction) { c.branch(!c.Reg.Zero) }
func opBMI(c *CPU, inst *Instruction) { c.branch(c.Reg.Sign) }
func opBPL(c *CPU, inst *Instruction) { c.branch(!c.Reg.Sign) }
func opBVC(c *CPU, inst *Instruction) { c.branch(!c.Reg.Overflow) }
func opBVS(c *CPU, inst *Instruction) { c.branch(c.Reg.Overflow) }
func opBRA(c *CPU, inst *Instruction) { c.branch(true) }

func opCLC(c *CPU, inst *Instruction) { c.dummyReadPC(); c.Reg.Carry = false }
func opSEC(c *CPU, inst *Instruction) { c.dummyReadPC(); c.Reg.Carry = true }
func opCLI(c *CPU, inst *Instruction) { c.dummyReadPC(); c.Reg.InterruptDisable = false }
func opSEI(c *CPU, inst *Instruction) { c.dummyReadPC(); c.Reg.InterruptDisable = true }
func opCLD(c *CPU, inst *Instruction) { c.dummyReadPC(); c.Reg.Decimal = false }
func opSED(c *CPU, inst *Instruction) { c.dummyReadPC(); c.Reg.Decimal = true }
func opCLV(c *CPU, inst *Instruction) { c.dummyReadPC(); c.Reg.Overflow = false }

func opTAX(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.Reg.X = c.Reg.A
	setZN(&c.Reg, c.Reg.X)
}

func opTXA(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.Reg.A = c.Reg.X
	setZN(&c.Reg, c.Reg.A)
}

func opTAY(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.Reg.Y = c.Reg.A
	setZN(&c.Reg, c.Reg.Y)
}

func opTYA(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.Reg.A = c.Reg.Y
	setZN(&c.Reg, c.Reg.A)
}

// opTXS does not touch Zero/Sign: the stack pointer is not a flag-setting
// register.
func opTXS(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.Reg.SP = c.Reg.X
}

func opTSX(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.Reg.X = c.Reg.SP
	setZN(&c.Reg, c.Reg.X)
}

func opPHA(c *CPU, inst *Instruction) { c.dummyReadPC(); c.push(c.Reg.A) }
func opPHX(c *CPU, inst *Instruction) { c.dummyReadPC(); c.push(c.Reg.X) }
func opPHY(c *CPU, inst *Instruction) { c.dummyReadPC(); c.push(c.Reg.Y) }
func opPHP(c *CPU, inst *Instruction) { c.dummyReadPC(); c.push(c.Reg.SavePS(true)) }

func opPLA(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.dummyReadStack()
	c.Reg.A = c.popByte()
	setZN(&c.Reg, c.Reg.A)
}

func opPLX(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.dummyReadStack()
	c.Reg.X = c.popByte()
	setZN(&c.Reg, c.Reg.X)
}

func opPLY(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.dummyReadStack()
	c.Reg.Y = c.popByte()
	setZN(&c.Reg, c.Reg.Y)
}

func opPLP(c *CPU, inst *Instruction) {
	c.dummyReadPC()
	c.dummyReadStack()
	c.Reg.RestorePS(c.popByte())
}

// instructionFuncs binds every opsym to its handler. Handlers that cover
// several addressing modes (ADC, LDA, ASL, JMP, ...) branch on inst.Mode
// internally rather than being split per-mode, matching how the teacher's
// reference groups them.
func instructionFuncs() map[opsym]instfunc {
	return map[opsym]instfunc{
		symADC: opADC, symSBC: opSBC, symAND: opAND, symORA: opORA, symEOR: opEOR,
		symCMP: opCMP, symCPX: opCPX, symCPY: opCPY, symBIT: opBIT,
		symLDA: opLDA, symLDX: opLDX, symLDY: opLDY,
		symSTA: opSTA, symSTX: opSTX, symSTY: opSTY, symSTZ: opSTZ,
		symTRB: opTRB, symTSB: opTSB,
		symASL: opASL, symLSR: opLSR, symROL: opROL, symROR: opROR,
		symINC: opINC, symDEC: opDEC,
		symINX: opINX, symINY: opINY, symDEX: opDEX, symDEY: opDEY,
		symJMP: opJMP, symJSR: opJSR, symRTS: opRTS, symRTI: opRTI, symBRK: opBRK,
		symNOP: opNOP, symHLT: opHLT,
		symBCC: opBCC, symBCS: opBCS, symBEQ: opBEQ, symBNE: opBNE,
		symBMI: opBMI, symBPL: opBPL, symBVC: opBVC, symBVS: opBVS, symBRA: opBRA,
		symCLC: opCLC, symSEC: opSEC, symCLI: opCLI, symSEI: opSEI,
		symCLD: opCLD, symSED: opSED, symCLV: opCLV,
		symTAX: opTAX, symTXA: opTXA, symTAY: opTAY, symTYA: opTYA,
		symTXS: opTXS, symTSX: opTSX,
		symPHA: opPHA, symPHX: opPHX, symPHY: opPHY, symPHP: opPHP,
		symPLA: opPLA, symPLX: opPLX, symPLY: opPLY, symPLP: opPLP,
	}
}
