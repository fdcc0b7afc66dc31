package hw

import (
	"io"

	"microtan/emu/log"
	"microtan/hw/hwio"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request
)

// Writing to an address of the delayed NMI register with A0=1 and A1=0 raises
// an NMI once this many instruction bytes have been executed.
const nmiDelayBytes = 8

// A Timer is clocked after each instruction with the number of cycles it took.
// Update reports whether the timer requests an interrupt.
type Timer interface {
	Update(cycles int) bool
}

type CPU struct {
	Bus   *hwio.Table
	Timer Timer // may be nil

	// Non-nil when execution tracing is enabled.
	tracer *tracer

	Cycles int64 // total executed cycles

	// cpu registers
	A, X, Y, SP uint8
	PC          uint16
	P           P

	// interrupt handling
	irqPending   bool
	nmiPending   bool
	nmiCountdown int

	// cycles taken by the current instruction, penalties included.
	ticks int
}

// NewCPU creates a CPU executing from bus.
func NewCPU(bus *hwio.Table) *CPU {
	return &CPU{
		Bus: bus,
		SP:  0xFF,
		P:   Reserved,
	}
}

// InitBus maps the delayed NMI register, a write-only register mirrored over
// $BFF0-$BFFF.
func (c *CPU) InitBus() error {
	return c.Bus.Register(hwio.Device{
		Name:    "delayed nmi",
		Start:   0xBFF0,
		End:     0xBFFF,
		WriteCb: c.writeDelayedNMI,
	})
}

func (c *CPU) writeDelayedNMI(addr uint16, _ uint8) {
	if addr&3 == 1 {
		c.nmiCountdown = nmiDelayBytes
	}
}

// Reset puts the CPU in its power-up state and loads PC from the reset vector.
// bank and addr locate the CPU in the machine's device table, it has no
// address range of its own so they're only logged.
func (c *CPU) Reset(bank uint8, addr uint16) {
	c.A = 0x00
	c.X = 0x00
	c.Y = 0x00
	c.SP = 0xFF
	c.P = Reserved
	c.PC = hwio.Read16(c.Bus, ResetVector)

	c.irqPending = false
	c.nmiPending = false
	c.nmiCountdown = 0

	log.ModCPU.DebugZ("reset").
		Hex8("bank", bank).
		Hex16("addr", addr).
		Hex16("pc", c.PC).
		End()
}

// GetPC returns the address of the next instruction.
func (c *CPU) GetPC() uint16 { return c.PC }

// Continue sets all registers at once, to resume execution from a saved
// state. Pending interrupts are left untouched.
func (c *CPU) Continue(pc uint16, a, x, y, sp uint8, p P) {
	c.PC = pc
	c.A = a
	c.X = x
	c.Y = y
	c.SP = sp
	c.P = p
}

// Execute runs instructions until at least budget cycles have been consumed
// and returns the number of cycles actually executed, which may exceed budget
// by up to one instruction.
func (c *CPU) Execute(budget int) int {
	n := 0
	for n < budget {
		n += c.Step()
	}
	return n
}

// Step executes a single instruction then services pending interrupts. It
// returns the number of cycles the instruction took.
func (c *CPU) Step() int {
	if c.tracer != nil {
		c.traceOp()
	}

	opcode := c.Bus.Read8(c.PC)
	c.PC++
	op := &opcodes[opcode]
	c.ticks = int(op.cycles)
	c.exec(op)

	ticks := c.ticks
	c.Cycles += int64(ticks)

	if c.Timer != nil && c.Timer.Update(ticks) {
		c.AssertIRQ()
	}

	if c.nmiCountdown > 0 {
		c.nmiCountdown -= op.mode.length()
		if c.nmiCountdown <= 0 {
			c.nmiCountdown = 0
			c.AssertNMI()
		}
	}

	// IRQ is serviced first, so the NMI handler runs first.
	if c.irqPending && !c.P.has(Interrupt) {
		c.interrupt(IRQVector)
		c.irqPending = false
	}
	if c.nmiPending {
		c.interrupt(NMIVector)
		c.nmiPending = false
	}
	return ticks
}

func (c *CPU) AssertIRQ() {
	c.irqPending = true
	c.P &^= Break
}

func (c *CPU) AssertNMI() {
	c.nmiPending = true
	c.P &^= Break
}

func (c *CPU) IRQPending() bool { return c.irqPending }
func (c *CPU) NMIPending() bool { return c.nmiPending }

func (c *CPU) interrupt(vector uint16) {
	prevpc := c.PC
	c.push16(c.PC)
	c.push8(uint8(c.P))
	c.P.set(Interrupt, true)
	c.PC = hwio.Read16(c.Bus, vector)

	log.ModCPU.DebugZ("interrupt").
		Bool("nmi", vector == NMIVector).
		Hex16("from", prevpc).
		Hex16("to", c.PC).
		End()
}

/* memory access */

func (c *CPU) fetch8() uint8 {
	val := c.Bus.Read8(c.PC)
	c.PC++
	return val
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

// zpRead16 reads a pointer in zero page, wrapping within the page.
func (c *CPU) zpRead16(zp uint8) uint16 {
	lo := c.Bus.Read8(uint16(zp))
	hi := c.Bus.Read8(uint16(zp + 1))
	return uint16(hi)<<8 | uint16(lo)
}

/* stack operations */

func (c *CPU) push8(val uint8) {
	top := uint16(c.SP) + 0x0100
	c.Bus.Write8(top, val)
	c.SP -= 1
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val & 0xff))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	top := uint16(c.SP) + 0x0100
	return c.Bus.Read8(top)
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

/* tracing / debugging */

func (c *CPU) SetTraceOutput(w io.Writer) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{w: w, d: c}
}

func (c *CPU) traceOp() {
	c.tracer.write(cpuState{
		A:     c.A,
		X:     c.X,
		Y:     c.Y,
		P:     c.P,
		SP:    c.SP,
		Clock: c.Cycles,
		PC:    c.PC,
	})
}

// AddLogContext stamps log entries with the program counter.
func (c *CPU) AddLogContext(e *log.EntryZ) {
	e.Hex16("pc", c.PC)
}
