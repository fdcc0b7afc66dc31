package hw

import (
	"os"
	"path/filepath"
	"testing"

	"microtan/hw/hwio"
)

const (
	progStart  = 0x0400
	irqHandler = 0x0600
	nmiHandler = 0x0700
)

// newBareCPU returns a reset CPU on a bus without any device, prog is loaded
// at progStart, where the reset vector points.
func newBareCPU(prog ...uint8) *CPU {
	bus := hwio.NewTable("test")
	copy(bus.FetchPointer(progStart), prog)
	hwio.Write16(bus, ResetVector, progStart)
	hwio.Write16(bus, IRQVector, irqHandler)
	hwio.Write16(bus, NMIVector, nmiHandler)

	cpu := NewCPU(bus)
	cpu.Reset(0, 0)
	return cpu
}

func (c *CPU) steps(n int) {
	for range n {
		c.Step()
	}
}

func wantMem8(tb testing.TB, bus *hwio.Table, addr uint16, want uint8) {
	tb.Helper()
	if got := bus.Peek8(addr); got != want {
		tb.Errorf("mem[%04X] = %02X, want %02X", addr, got, want)
	}
}

// makeROM returns a 16K ROM image for $C000. code maps addresses to machine
// code. The reset vector points to $C000.
func makeROM(code map[uint16][]uint8, irq, nmi uint16) []uint8 {
	rom := make([]uint8, 0x4000)
	for addr, bytes := range code {
		copy(rom[addr-0xC000:], bytes)
	}
	put16 := func(addr, val uint16) {
		rom[addr-0xC000] = uint8(val)
		rom[addr-0xC000+1] = uint8(val >> 8)
	}
	put16(NMIVector, nmi)
	put16(ResetVector, 0xC000)
	put16(IRQVector, irq)
	return rom
}

func writeTempFile(tb testing.TB, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		tb.Fatal(err)
	}
	return path
}

// newTestMachine returns an initialised machine running rom.
func newTestMachine(tb testing.TB, rom []uint8) *Machine {
	tb.Helper()
	m := NewMachine(Config{ROMPath: writeTempFile(tb, "test.rom", rom)})
	if err := m.Initialise(); err != nil {
		tb.Fatalf("Initialise: %v", err)
	}
	return m
}
