package hw

import "microtan/hw/hwio"

// operand returns the effective address of the current instruction and
// advances PC past its operand bytes. Indexed modes add a cycle when indexing
// crosses a page, only for the opcodes whose base cost leaves room for it.
func (c *CPU) operand(op *opdef) uint16 {
	switch op.mode {
	case imm:
		addr := c.PC
		c.PC++
		return addr
	case zpg:
		return uint16(c.fetch8())
	case zpx:
		return uint16(c.fetch8() + c.X)
	case zpy:
		return uint16(c.fetch8() + c.Y)
	case abs:
		return c.fetch16()
	case abx:
		base := c.fetch16()
		addr := base + uint16(c.X)
		c.pageCrossPenalty(op, 4, base, addr)
		return addr
	case aby:
		base := c.fetch16()
		addr := base + uint16(c.Y)
		c.pageCrossPenalty(op, 4, base, addr)
		return addr
	case ind:
		return hwio.Read16(c.Bus, c.fetch16())
	case izx:
		return c.zpRead16(c.fetch8() + c.X)
	case izy:
		base := c.zpRead16(c.fetch8())
		addr := base + uint16(c.Y)
		c.pageCrossPenalty(op, 5, base, addr)
		return addr
	case izp:
		return c.zpRead16(c.fetch8())
	case iax:
		return hwio.Read16(c.Bus, c.fetch16()+uint16(c.X))
	}

	// implied, accumulator and relative modes have no effective address.
	return 0
}

func (c *CPU) pageCrossPenalty(op *opdef, base uint8, from, to uint16) {
	if op.cycles == base && from&0xFF00 != to&0xFF00 {
		c.ticks++
	}
}

// load reads the operand value.
func (c *CPU) load(op *opdef) uint8 {
	return c.Bus.Read8(c.operand(op))
}

// rmw applies f to the operand, which is either the accumulator or memory.
func (c *CPU) rmw(op *opdef, f func(uint8) uint8) {
	if op.mode == acc {
		c.A = f(c.A)
		return
	}
	addr := c.operand(op)
	c.Bus.Write8(addr, f(c.Bus.Read8(addr)))
}
