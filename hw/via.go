package hw

import (
	"errors"
	"fmt"

	"microtan/emu/log"
	"microtan/hw/hwio"
)

// MaxVIAs is the number of 6522 VIAs a VIAs group can drive.
const MaxVIAs = 16

var ErrTooManyVIAs = errors.New("too many 6522 devices")

// 6522 register indices.
const (
	viaORB  = 0x0
	viaORA  = 0x1
	viaDDRB = 0x2
	viaDDRA = 0x3
	viaT1CL = 0x4
	viaT1CH = 0x5
	viaT1LL = 0x6
	viaT1LH = 0x7
	viaT2CL = 0x8
	viaT2CH = 0x9
	viaSR   = 0xA
	viaACR  = 0xB
	viaPCR  = 0xC
	viaIFR  = 0xD
	viaIER  = 0xE
	viaORA2 = 0xF
)

// Interrupt flags and ACR bits.
const (
	ifrT2  = 0x20
	ifrT1  = 0x40
	ifrIRQ = 0x80

	acrT2Count = 1 << 5
	acrT1Free  = 1 << 6
	acrPB7Out  = 1 << 7
)

// ANDed into IFR on a read or write of each register.
var (
	viaFlagClearOnRead = [16]uint8{
		^uint8(0xc0), ^uint8(0x03), 0xff, 0xff, ^uint8(0x40), 0xff, 0xff, 0xff,
		^uint8(0x20), 0xff, ^uint8(0x04), 0xff, 0xff, 0xff, 0xff, ^uint8(0x03),
	}
	viaFlagClearOnWrite = [16]uint8{
		^uint8(0xc0), ^uint8(0x03), 0xff, 0xff, 0xff, 0xff, 0xff, ^uint8(0x40),
		0xff, ^uint8(0x20), ^uint8(0x04), 0xff, 0xff, 0xff, 0xff, ^uint8(0x03),
	}
)

// Port selects one of the two 8-bit ports of a VIA.
type Port uint8

const (
	PortB Port = iota
	PortA
)

// PortOp is the operation applied to a VIA input port by SetInputPort.
type PortOp uint8

const (
	PortClear    PortOp = iota // clear the masked lines
	PortSet                    // set the masked lines
	PortWriteAll               // replace all lines
)

// VIA is a 6522 versatile interface adapter, restricted to its timers,
// interrupt logic and port latches.
type VIA struct {
	Addr uint16
	Regs [16]uint8

	in  [2]uint8
	out [2]uint8
}

// VIAs drives all the 6522 VIAs of the machine, mapped on the bus.
type VIAs struct {
	bus  *hwio.Table
	devs []*VIA
}

func NewVIAs(bus *hwio.Table) *VIAs {
	return &VIAs{bus: bus}
}

// Initialise adds a VIA whose 16 registers are mapped at addr.
func (v *VIAs) Initialise(bank uint8, addr uint16, param uint16, id string) error {
	if len(v.devs) == MaxVIAs {
		return ErrTooManyVIAs
	}

	idx := len(v.devs)
	via := &VIA{Addr: addr}
	v.devs = append(v.devs, via)
	v.SetInputPort(idx, PortB, PortWriteAll, 0xff)
	v.SetInputPort(idx, PortA, PortWriteAll, 0xff)

	err := v.bus.Register(hwio.Device{
		Name:    id,
		Start:   addr,
		End:     addr + 15,
		ReadCb:  func(addr uint16) uint8 { return v.readCb(idx, addr) },
		WriteCb: func(addr uint16, val uint8) { v.writeCb(idx, addr, val) },
	})
	if err != nil {
		return fmt.Errorf("6522 at %04X: %w", addr, err)
	}
	return nil
}

// Len returns the number of VIAs.
func (v *VIAs) Len() int { return len(v.devs) }

// Device returns the VIA at index dev.
func (v *VIAs) Device(dev int) *VIA { return v.devs[dev] }

// Reset puts the VIA mapped at addr in its power-up state.
func (v *VIAs) Reset(bank uint8, addr uint16) {
	for _, via := range v.devs {
		if via.Addr == addr {
			via.reset()
		}
	}
}

func (via *VIA) reset() {
	for i := range via.Regs {
		via.Regs[i] = 0xff
	}
	via.Regs[viaDDRA] = 0
	via.Regs[viaDDRB] = 0
	via.Regs[viaIER] = 0
	via.Regs[viaIFR] = 0
}

// Update advances the timers of all VIAs by cycles. It reports whether any
// VIA has an enabled interrupt flag set.
func (v *VIAs) Update(cycles int) bool {
	irq := false
	for _, via := range v.devs {
		if via.update(cycles) {
			irq = true
		}
	}
	return irq
}

func (via *VIA) update(cycles int) bool {
	r := &via.Regs

	t1 := int(r[viaT1CL]) | int(r[viaT1CH])<<8
	timedOut := false
	if r[viaACR]&acrT1Free != 0 {
		t1 -= cycles
		if t1 < 0 {
			latch := int(r[viaT1LL]) | int(r[viaT1LH])<<8
			for t1 < 0 {
				t1 += latch + 1
			}
			timedOut = true
			if r[viaACR]&acrPB7Out != 0 {
				via.out[PortB] ^= 0x80
			}
		}
	} else if t1 > 0 {
		// one-shot
		t1 -= cycles
		if t1 <= 0 {
			t1 = 0
			timedOut = true
			if r[viaACR]&acrPB7Out != 0 {
				via.out[PortB] |= 0x80
			}
		}
	}
	r[viaT1CL] = uint8(t1)
	r[viaT1CH] = uint8(t1 >> 8)
	if timedOut {
		r[viaIFR] |= ifrT1
	}

	if r[viaACR]&acrT2Count != 0 {
		t2 := int(r[viaT2CL]) | int(r[viaT2CH])<<8
		t2 -= cycles
		if t2 < 0 {
			t2 &= 0xffff
			r[viaIFR] |= ifrT2
		}
		r[viaT2CL] = uint8(t2)
		r[viaT2CH] = uint8(t2 >> 8)
	}

	if r[viaIER]&r[viaIFR]&0x7f != 0 {
		r[viaIFR] |= ifrIRQ
		return true
	}
	r[viaIFR] &= 0x7f
	return false
}

// ReadRegister reads register reg of VIA dev, clearing the interrupt flags
// associated with that register.
func (v *VIAs) ReadRegister(dev, reg int) uint8 {
	if reg < 0 || reg > 0x0f {
		return 0
	}
	via := v.devs[dev]
	via.Regs[viaIFR] &= viaFlagClearOnRead[reg]
	return via.Regs[reg]
}

// WriteRegister writes register reg of VIA dev.
func (v *VIAs) WriteRegister(dev, reg int, val uint8) {
	if reg < 0 || reg > 0x0f {
		return
	}
	via := v.devs[dev]
	r := &via.Regs
	r[viaIFR] &= viaFlagClearOnWrite[reg]

	switch reg {
	case viaT1CH:
		r[viaT1LH] = val
		r[viaT1CL] = r[viaT1LL]
		r[viaT1CH] = val
	case viaORA:
		via.out[PortA] = val&^r[viaDDRA] | via.in[PortA]&r[viaDDRA]
		via.updateInputs()
	case viaORB:
		via.out[PortB] = val&^r[viaDDRB] | via.in[PortB]&r[viaDDRB]
		via.updateInputs()
	case viaIER:
		if val&0x80 != 0 {
			r[viaIER] |= val & 0x7f
		} else {
			r[viaIER] &^= val & 0x7f
		}
	default:
		r[reg] = val
	}
}

// updateInputs refreshes the port registers with the input lines not
// masked by the data direction registers.
func (via *VIA) updateInputs() {
	via.Regs[viaORB] = ^via.Regs[viaDDRB] & via.in[PortB]
	via.Regs[viaORA] = ^via.Regs[viaDDRA] & via.in[PortA]
}

// SetInputPort changes the input lines of a port of VIA dev.
func (v *VIAs) SetInputPort(dev int, port Port, op PortOp, mask uint8) {
	via := v.devs[dev]
	port &= 1
	switch op {
	case PortSet:
		via.in[port] |= mask
	case PortClear:
		via.in[port] &^= mask
	case PortWriteAll:
		via.in[port] = mask
	}
	via.updateInputs()
}

// OutputPort returns the output latch of a port of VIA dev.
func (v *VIAs) OutputPort(dev int, port Port) uint8 {
	return v.devs[dev].out[port&1]
}

// Reload replays the register values found in memory at each VIA address
// through the bus, which restores the VIAs from a loaded memory image.
func (v *VIAs) Reload() {
	for _, via := range v.devs {
		mem := v.bus.FetchPointer(via.Addr)
		var saved [16]uint8
		copy(saved[:], mem)
		for reg, val := range saved {
			v.bus.Write8(via.Addr+uint16(reg), val)
		}
	}
}

func (v *VIAs) readCb(dev int, addr uint16) uint8 {
	reg := int(addr - v.devs[dev].Addr)
	if reg < 4 {
		log.ModVIA.DebugZ("port read").Int("via", dev).Hex16("addr", addr).End()
	}
	return v.ReadRegister(dev, reg)
}

func (v *VIAs) writeCb(dev int, addr uint16, val uint8) {
	reg := int(addr - v.devs[dev].Addr)
	if reg < 4 {
		log.ModVIA.DebugZ("port write").Int("via", dev).Hex16("addr", addr).Hex8("val", val).End()
	}
	v.WriteRegister(dev, reg, val)
}
