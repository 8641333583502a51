package cpu

// Registers holds the six architectural registers of the Odin32K's
// 65C02-family CPU.
type Registers struct {
	A, X, Y, SP byte
	PC          uint16

	Carry            bool
	Zero             bool
	InterruptDisable bool
	Decimal          bool
	Overflow         bool
	Sign             bool
}

// Bits of the processor status byte, P.
const (
	CarryBit            = 1 << 0
	ZeroBit             = 1 << 1
	InterruptDisableBit = 1 << 2
	DecimalBit          = 1 << 3
	BreakBit            = 1 << 4
	ReservedBit         = 1 << 5
	OverflowBit         = 1 << 6
	SignBit             = 1 << 7
)

// SavePS packs the status flags into a byte suitable for pushing onto the
// stack. Bit 5 is always observed as 1. The B bit is 1 when brk is true
// (PHP, BRK) and 0 when a hardware interrupt pushes P.
func (r *Registers) SavePS(brk bool) byte {
	var ps byte = ReservedBit
	if r.Carry {
		ps |= CarryBit
	}
	if r.Zero {
		ps |= ZeroBit
	}
	if r.InterruptDisable {
		ps |= InterruptDisableBit
	}
	if r.Decimal {
		ps |= DecimalBit
	}
	if brk {
		ps |= BreakBit
	}
	if r.Overflow {
		ps |= OverflowBit
	}
	if r.Sign {
		ps |= SignBit
	}
	return ps
}

// RestorePS unpacks a status byte popped from the stack back into the
// flag fields. Bit 5 is ignored on restore (it is architecturally always
// read back as 1 anyway).
func (r *Registers) RestorePS(ps byte) {
	r.Carry = ps&CarryBit != 0
	r.Zero = ps&ZeroBit != 0
	r.InterruptDisable = ps&InterruptDisableBit != 0
	r.Decimal = ps&DecimalBit != 0
	r.Overflow = ps&OverflowBit != 0
	r.Sign = ps&SignBit != 0
}

// Init resets A, X, Y to zero and P to $20 (bit 5 set, all other flags
// clear), matching the reset sequence in spec section 4.5. SP is left
// untouched: the real chip does not architecturally define it at
// power-on, and guest code is expected to set it explicitly.
func (r *Registers) Init() {
	r.A = 0
	r.X = 0
	r.Y = 0
	r.RestorePS(ReservedBit)
}
