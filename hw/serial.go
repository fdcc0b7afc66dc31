package hw

import "microtan/hw/hwio"

// Serial is the serial interface. Only its registers exist, they read as
// 0xff after reset and ignore writes.
type Serial struct {
	regs [4]uint8
}

func (s *Serial) InitBus(bus *hwio.Table, start, end uint16) error {
	return bus.Register(hwio.Device{
		Name:   "serial",
		Start:  start,
		End:    end,
		ReadCb: func(addr uint16) uint8 { return s.regs[addr&0x03] },
	})
}

func (s *Serial) Reset() {
	s.regs = [4]uint8{0xff, 0xff, 0xff, 0xff}
}
