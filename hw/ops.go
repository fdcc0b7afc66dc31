package hw

import "microtan/hw/hwio"

func (c *CPU) exec(op *opdef) {
	switch op.name {
	// load/store
	case opLDA:
		c.A = c.load(op)
		c.P.checkNZ(c.A)
	case opLDX:
		c.X = c.load(op)
		c.P.checkNZ(c.X)
	case opLDY:
		c.Y = c.load(op)
		c.P.checkNZ(c.Y)
	case opSTA:
		c.Bus.Write8(c.operand(op), c.A)
	case opSTX:
		c.Bus.Write8(c.operand(op), c.X)
	case opSTY:
		c.Bus.Write8(c.operand(op), c.Y)
	case opSTZ:
		c.Bus.Write8(c.operand(op), 0)

	// arithmetic and logic
	case opADC:
		c.adc(c.load(op))
	case opSBC:
		c.sbc(c.load(op))
	case opAND:
		c.A &= c.load(op)
		c.P.checkNZ(c.A)
	case opORA:
		c.A |= c.load(op)
		c.P.checkNZ(c.A)
	case opEOR:
		c.A ^= c.load(op)
		c.P.checkNZ(c.A)
	case opCMP:
		c.compare(c.A, c.load(op))
	case opCPX:
		c.compare(c.X, c.load(op))
	case opCPY:
		c.compare(c.Y, c.load(op))
	case opBIT:
		val := c.load(op)
		c.P.set(Zero, c.A&val == 0)
		if op.mode != imm {
			c.P.set(Negative, val&0x80 != 0)
			c.P.set(Overflow, val&0x40 != 0)
		}
	case opTRB:
		addr := c.operand(op)
		val := c.Bus.Read8(addr)
		c.P.set(Zero, c.A&val == 0)
		c.Bus.Write8(addr, val&^c.A)
	case opTSB:
		addr := c.operand(op)
		val := c.Bus.Read8(addr)
		c.P.set(Zero, c.A&val == 0)
		c.Bus.Write8(addr, val|c.A)

	// read-modify-write
	case opASL:
		c.rmw(op, c.asl)
	case opLSR:
		c.rmw(op, c.lsr)
	case opROL:
		c.rmw(op, c.rol)
	case opROR:
		c.rmw(op, c.ror)
	case opINC:
		c.rmw(op, c.inc)
	case opDEC:
		c.rmw(op, c.dec)
	case opINX:
		c.X = c.inc(c.X)
	case opINY:
		c.Y = c.inc(c.Y)
	case opDEX:
		c.X = c.dec(c.X)
	case opDEY:
		c.Y = c.dec(c.Y)

	// branches
	case opBCC:
		c.branch(!c.P.has(Carry))
	case opBCS:
		c.branch(c.P.has(Carry))
	case opBNE:
		c.branch(!c.P.has(Zero))
	case opBEQ:
		c.branch(c.P.has(Zero))
	case opBPL:
		c.branch(!c.P.has(Negative))
	case opBMI:
		c.branch(c.P.has(Negative))
	case opBVC:
		c.branch(!c.P.has(Overflow))
	case opBVS:
		c.branch(c.P.has(Overflow))
	case opBRA:
		c.branch(true)

	// jumps and subroutines
	case opJMP:
		c.PC = c.operand(op)
	case opJSR:
		addr := c.operand(op)
		c.push16(c.PC - 1)
		c.PC = addr
	case opRTS:
		c.PC = c.pull16() + 1
	case opRTI:
		c.P = P(c.pull8()) | Reserved
		c.PC = c.pull16()
	case opBRK:
		c.brk()

	// stack
	case opPHA:
		c.push8(c.A)
	case opPHX:
		c.push8(c.X)
	case opPHY:
		c.push8(c.Y)
	case opPHP:
		c.push8(uint8(c.P | Break | Reserved))
	case opPLA:
		c.A = c.pull8()
		c.P.checkNZ(c.A)
	case opPLX:
		c.X = c.pull8()
		c.P.checkNZ(c.X)
	case opPLY:
		c.Y = c.pull8()
		c.P.checkNZ(c.Y)
	case opPLP:
		c.P = P(c.pull8()) | Reserved

	// transfers
	case opTAX:
		c.X = c.A
		c.P.checkNZ(c.X)
	case opTAY:
		c.Y = c.A
		c.P.checkNZ(c.Y)
	case opTXA:
		c.A = c.X
		c.P.checkNZ(c.A)
	case opTYA:
		c.A = c.Y
		c.P.checkNZ(c.A)
	case opTSX:
		c.X = c.SP
		c.P.checkNZ(c.X)
	case opTXS:
		c.SP = c.X

	// flags
	case opCLC:
		c.P.set(Carry, false)
	case opCLD:
		c.P.set(Decimal, false)
	case opCLI:
		c.P.set(Interrupt, false)
	case opCLV:
		c.P.set(Overflow, false)
	case opSEC:
		c.P.set(Carry, true)
	case opSED:
		c.P.set(Decimal, true)
	case opSEI:
		c.P.set(Interrupt, true)

	case opNOP:
	}
}

func (c *CPU) brk() {
	// skip the signature byte.
	c.PC++
	c.push16(c.PC)
	c.push8(uint8(c.P | Break | Reserved))
	c.P.set(Interrupt, true)
	c.PC = hwio.Read16(c.Bus, IRQVector)
}

func (c *CPU) branch(taken bool) {
	off := int8(c.fetch8())
	if !taken {
		return
	}

	dst := c.PC + uint16(off)
	c.ticks++
	if dst&0xFF00 != c.PC&0xFF00 {
		c.ticks++
	}
	c.PC = dst
}

func (c *CPU) compare(reg, val uint8) {
	c.P.set(Carry, reg >= val)
	c.P.checkNZ(reg - val)
}

func (c *CPU) asl(val uint8) uint8 {
	c.P.set(Carry, val&0x80 != 0)
	val <<= 1
	c.P.checkNZ(val)
	return val
}

func (c *CPU) lsr(val uint8) uint8 {
	c.P.set(Carry, val&0x01 != 0)
	val >>= 1
	c.P.checkNZ(val)
	return val
}

func (c *CPU) rol(val uint8) uint8 {
	carry := c.P.carry()
	c.P.set(Carry, val&0x80 != 0)
	val = val<<1 | carry
	c.P.checkNZ(val)
	return val
}

func (c *CPU) ror(val uint8) uint8 {
	carry := c.P.carry()
	c.P.set(Carry, val&0x01 != 0)
	val = val>>1 | carry<<7
	c.P.checkNZ(val)
	return val
}

func (c *CPU) inc(val uint8) uint8 {
	val++
	c.P.checkNZ(val)
	return val
}

func (c *CPU) dec(val uint8) uint8 {
	val--
	c.P.checkNZ(val)
	return val
}

// adc and sbc take one cycle more than their table entry, whatever the mode.
func (c *CPU) adc(val uint8) {
	c.ticks++
	if c.P.has(Decimal) {
		c.adcDecimal(val)
		return
	}
	c.addBinary(val)
}

func (c *CPU) sbc(val uint8) {
	c.ticks++
	if c.P.has(Decimal) {
		c.sbcDecimal(val)
		return
	}
	c.addBinary(^val)
}

func (c *CPU) addBinary(val uint8) {
	sum := uint16(c.A) + uint16(val) + uint16(c.P.carry())
	c.P.checkCV(c.A, val, sum)
	c.A = uint8(sum)
	c.P.checkNZ(c.A)
}

// adcDecimal adds val to A in BCD. Overflow is derived from the high nibble
// sum before decimal adjustment.
func (c *CPU) adcDecimal(val uint8) {
	a, v := uint16(c.A), uint16(val)

	lo := a&0x0F + v&0x0F + uint16(c.P.carry())
	if lo >= 0x0A {
		lo += 0x06
	}
	hi := a&0xF0 + v&0xF0 + lo&0xF0
	c.P.set(Overflow, (a^hi)&^(a^v)&0x80 != 0)
	if hi >= 0xA0 {
		hi += 0x60
	}

	res := lo&0x0F | hi
	c.P.set(Carry, res >= 0x100)
	c.A = uint8(res)
	c.P.checkNZ(c.A)
}

// sbcDecimal subtracts val and the borrow from A in BCD. Overflow is the one
// of the equivalent binary subtraction.
func (c *CPU) sbcDecimal(val uint8) {
	borrow := int(1 - c.P.carry())
	a, v := int(c.A), int(val)

	bin := uint16(c.A) + uint16(^val) + uint16(c.P.carry())
	c.P.checkCV(c.A, ^val, bin)

	lo := a&0x0F - v&0x0F - borrow
	if lo&0x10 != 0 {
		lo -= 0x06
	}
	hi := a&0xF0 - v&0xF0 - lo&0x10
	c.P.set(Carry, hi&0x100 == 0)
	if hi&0x100 != 0 {
		hi -= 0x60
	}

	c.A = uint8(lo&0x0F) | uint8(hi)
	c.P.checkNZ(c.A)
}
