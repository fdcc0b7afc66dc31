package hw

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"microtan/hw/hwio"
)

const (
	TextCols  = 32
	TextRows  = 16
	TextStart = 0x0200
	TextSize  = TextCols * TextRows

	NumHiresBoards = 4
	HiresSize      = 0x2000

	// Writing the bank latch selects which hi-res board answers in its window.
	BankLatch = 0xFFFF
)

var hiresNames = [NumHiresBoards]string{"red", "green", "blue", "intensity"}

type hiresBoard struct {
	present bool
	bank    uint8
	start   uint16
	mem     [HiresSize]uint8
}

// Display holds the bus-visible state of the video hardware: the text screen
// in main memory, the chunky graphics attribute of each text cell and the
// hi-res colour boards.
type Display struct {
	bus *hwio.Table

	textAddr   uint16
	chunky     bool
	chunkyBits [TextSize]bool
	updated    bool

	bank  uint8
	hires [NumHiresBoards]hiresBoard
}

func NewDisplay(bus *hwio.Table) *Display {
	return &Display{bus: bus}
}

// InitMain maps the text screen at addr, and the chunky graphics
// enable/disable registers at param and param+3.
func (d *Display) InitMain(addr, param uint16) error {
	d.textAddr = addr
	for i := range d.chunkyBits {
		d.chunkyBits[i] = rand.IntN(2) == 1
	}

	devs := []hwio.Device{
		{
			Name:      "text display",
			Start:     addr,
			End:       addr + TextSize - 1,
			SharedMem: true,
			WriteCb: func(a uint16, _ uint8) {
				d.chunkyBits[a-addr] = d.chunky
				d.updated = true
			},
		},
		{
			Name:   "chunky enable",
			Start:  param,
			End:    param,
			ReadCb: func(uint16) uint8 {
				d.chunky = true
				return 0
			},
		},
		{
			Name:    "chunky disable",
			Start:   param + 3,
			End:     param + 3,
			WriteCb: func(uint16, uint8) { d.chunky = false },
		},
		{
			Name:  "bank latch",
			Start: BankLatch,
			End:   BankLatch,
			// Write-only: reads see the ROM byte, the high half of the IRQ vector.
			ReadCb:  d.bus.Peek8,
			WriteCb: func(_ uint16, val uint8) { d.bank = val },
		},
	}
	for _, dev := range devs {
		if err := d.bus.Register(dev); err != nil {
			return err
		}
	}
	return nil
}

// InitHires maps a hi-res board, answering at addr when bank is selected. id
// names the board colour, as in "hires red".
func (d *Display) InitHires(bank uint8, addr uint16, id string) error {
	idx := -1
	for i, name := range hiresNames {
		if strings.Contains(id, name) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("unknown hi-res board %q", id)
	}

	board := &d.hires[idx]
	board.present = true
	board.bank = bank
	board.start = addr
	board.mem = [HiresSize]uint8{}

	return d.bus.Register(hwio.Device{
		Name:      id,
		Start:     addr,
		End:       addr + HiresSize - 1,
		SharedMem: true,
		ReadCb: func(a uint16) uint8 {
			if d.bank != board.bank {
				return 0
			}
			return board.mem[a-board.start]
		},
		WriteCb: func(a uint16, val uint8) {
			if d.bank == board.bank {
				board.mem[a-board.start] = val
				d.updated = true
			}
		},
	})
}

// ChunkyEnabled reports whether text writes currently produce chunky
// graphics cells.
func (d *Display) ChunkyEnabled() bool { return d.chunky }

// ChunkyBits returns the chunky attribute of each text cell.
func (d *Display) ChunkyBits() [TextSize]bool { return d.chunkyBits }

func (d *Display) LoadChunkyBits(bits [TextSize]bool) {
	d.chunkyBits = bits
	d.updated = true
}

// HiresMemory returns the memory of hi-res board i.
func (d *Display) HiresMemory(i int) []uint8 { return d.hires[i].mem[:] }

// TextRAM returns the text screen, one character code per cell.
func (d *Display) TextRAM() []uint8 {
	return d.bus.FetchPointer(d.textAddr)[:TextSize]
}

// Updated reports whether the display changed since the last call.
func (d *Display) Updated() bool {
	u := d.updated
	d.updated = false
	return u
}
