package hw

import (
	"errors"
	"fmt"
	"io"
	"os"

	"microtan/emu/log"
	"microtan/hw/hwio"
)

var (
	ErrROMTooLarge  = errors.New("rom doesn't fit in address space")
	ErrROMShortRead = errors.New("rom file short read")
)

// LoadROM copies the content of a file into memory at addr, and makes that
// area read-only.
func LoadROM(bus *hwio.Table, path string, addr uint16) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open rom: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("open rom: %w", err)
	}

	size := fi.Size()
	if int64(addr)+size-1 > 0xFFFF {
		return fmt.Errorf("%s: %w (%d bytes at %04X)", path, ErrROMTooLarge, size, addr)
	}
	if size == 0 {
		return nil
	}

	n, err := io.ReadFull(f, bus.FetchPointer(addr)[:size])
	if err != nil {
		return fmt.Errorf("%s: %w (read %d, expect %d)", path, ErrROMShortRead, n, size)
	}

	end := addr + uint16(size-1)
	bus.SetReadOnly(addr, end)
	log.ModMem.InfoZ("rom loaded").
		String("path", path).
		Hex16("start", addr).
		Hex16("end", end).
		End()
	return nil
}
