package hw

import (
	"microtan/emu/log"
	"microtan/hw/hwio"
)

// An IRQLine can be asserted by a peripheral.
type IRQLine interface {
	AssertIRQ()
}

// Keyboard is the ASCII keyboard interface, or the hex keypad when selected.
// Its 4 registers are mirrored 4 times since A2 and A3 aren't decoded.
type Keyboard struct {
	irq IRQLine

	regs      [4]uint8
	hexKeypad bool
	keypad    [4]uint8 // one byte of rows per column
}

func NewKeyboard(irq IRQLine) *Keyboard {
	return &Keyboard{irq: irq}
}

func (k *Keyboard) InitBus(bus *hwio.Table, addr uint16) error {
	k.keypad = [4]uint8{}
	k.hexKeypad = false
	return bus.Register(hwio.Device{
		Name:    "keyboard",
		Start:   addr,
		End:     addr + 0x0f,
		ReadCb:  k.read,
		WriteCb: k.write,
	})
}

func (k *Keyboard) write(addr uint16, val uint8) {
	k.regs[addr&0x03] = val
}

func (k *Keyboard) read(addr uint16) uint8 {
	if addr&0x03 != 0x03 || !k.hexKeypad {
		return k.regs[addr&0x03]
	}

	// Register 2 selects the keypad columns to scan.
	var val uint8
	for col := range k.keypad {
		if k.regs[2]&(1<<col) != 0 {
			val |= k.keypad[col]
		}
	}
	return val
}

// Keypress latches an ASCII key and interrupts the CPU. Ignored when the hex
// keypad is in use.
func (k *Keyboard) Keypress(key uint8) {
	if k.hexKeypad {
		return
	}
	log.ModInput.DebugZ("keypress").Hex8("key", key).End()
	k.regs[3] = key | 0x80
	k.irq.AssertIRQ()
}

// KeypadKey presses or releases a hex keypad key.
func (k *Keyboard) KeypadKey(row, col int, down bool) {
	if col < 0 || col > 3 {
		return
	}
	if down {
		k.keypad[col] |= 1 << row
	} else {
		k.keypad[col] &^= 1 << row
	}
}

func (k *Keyboard) UseHexKeypad(on bool) { k.hexKeypad = on }
func (k *Keyboard) UsingHexKeypad() bool { return k.hexKeypad }
