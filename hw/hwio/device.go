package hwio

// Device is a peripheral mapped on an inclusive address range. Nil callbacks
// read as 0 and ignore writes.
type Device struct {
	Name       string // for debugging
	Start, End uint16

	// SharedMem is set when the device is backed by main memory: writes are
	// stored in memory before WriteCb runs and reads OR the memory byte with
	// ReadCb's result.
	SharedMem bool

	ReadCb  func(addr uint16) uint8
	WriteCb func(addr uint16, val uint8)
}

func (d *Device) Contains(addr uint16) bool {
	return addr >= d.Start && addr <= d.End
}

func (d *Device) Read8(addr uint16) uint8 {
	if d.ReadCb == nil {
		return 0
	}
	return d.ReadCb(addr)
}

func (d *Device) Write8(addr uint16, val uint8) {
	if d.WriteCb == nil {
		return
	}
	d.WriteCb(addr, val)
}
