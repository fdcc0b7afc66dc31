package hwio

import (
	"errors"

	"microtan/emu/log"
)

// MaxDevices is the number of devices a Table can hold.
const MaxDevices = 32

// ErrDeviceTableFull is returned by Register when MaxDevices are already
// registered.
var ErrDeviceTableFull = errors.New("device table full")

type BankIO8 interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

func Write16(b BankIO8, addr uint16, val uint16) {
	lo := uint8(val & 0xff)
	hi := uint8(val >> 8)
	b.Write8(addr, lo)
	b.Write8(addr+1, hi)
}

func Read16(b BankIO8, addr uint16) uint16 {
	lo := b.Read8(addr)
	hi := b.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Table is the 64K address space as seen by the CPU: a flat memory image, a
// read-only map and an ordered list of devices whose address ranges may
// overlap.
type Table struct {
	Name string

	mem  [AddrSpace]uint8
	ro   addrSet
	devs [MaxDevices]Device
	ndev int
}

func NewTable(name string) *Table {
	return &Table{Name: name}
}

// Reset clears memory, the read-only map and unregisters all devices.
func (t *Table) Reset() {
	clear(t.mem[:])
	t.ro.clear()
	t.devs = [MaxDevices]Device{}
	t.ndev = 0
}

// Register appends a device to the table. Devices are consulted in
// registration order.
func (t *Table) Register(dev Device) error {
	if t.ndev == MaxDevices {
		return ErrDeviceTableFull
	}
	if dev.End < dev.Start {
		dev.Start, dev.End = dev.End, dev.Start
	}

	log.ModHwIo.DebugZ("register device").
		String("name", dev.Name).
		Hex16("start", dev.Start).
		Hex16("end", dev.End).
		Bool("shared", dev.SharedMem).
		String("bus", t.Name).
		End()

	t.devs[t.ndev] = dev
	t.ndev++
	return nil
}

// Devices returns the registered devices, in registration order.
func (t *Table) Devices() []Device {
	return t.devs[:t.ndev]
}

// Read8 returns the bitwise OR of the values returned by every device mapped
// at addr, OR'ed with the memory byte if one of them is backed by main memory.
// Unmapped addresses read from memory.
func (t *Table) Read8(addr uint16) uint8 {
	var (
		val    uint8
		hit    bool
		shared bool
	)
	for i := range t.devs[:t.ndev] {
		dev := &t.devs[i]
		if !dev.Contains(addr) {
			continue
		}
		hit = true
		val |= dev.Read8(addr)
		shared = shared || dev.SharedMem
	}

	if !hit || shared {
		val |= t.mem[addr]
	}
	return val
}

// Peek8 returns the memory byte at addr, bypassing devices.
func (t *Table) Peek8(addr uint16) uint8 {
	return t.mem[addr]
}

// Write8 forwards the write to every device mapped at addr. Devices backed by
// main memory see it updated before their callback runs. Memory is then
// updated unless addr is read-only.
func (t *Table) Write8(addr uint16, val uint8) {
	for i := range t.devs[:t.ndev] {
		dev := &t.devs[i]
		if !dev.Contains(addr) {
			continue
		}
		if dev.SharedMem {
			t.mem[addr] = val
		}
		dev.Write8(addr, val)
	}

	if t.ro.has(addr) {
		log.ModMem.DebugZ("Write8 to read-only address").
			String("bus", t.Name).
			Hex16("addr", addr).
			Hex8("val", val).
			End()
		return
	}
	t.mem[addr] = val
}

// SetReadOnly marks the inclusive range [start, end] as read-only: CPU writes
// no longer reach memory, devices still see them.
func (t *Table) SetReadOnly(start, end uint16) {
	if end < start {
		start, end = end, start
	}
	t.ro.addRange(start, end)
}

func (t *Table) IsReadOnly(addr uint16) bool {
	return t.ro.has(addr)
}

// FetchPointer returns the memory image starting at addr. Writes through the
// returned slice bypass devices and the read-only map.
func (t *Table) FetchPointer(addr uint16) []uint8 {
	return t.mem[addr:]
}
