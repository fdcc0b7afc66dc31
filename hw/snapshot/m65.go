// Package snapshot implements the .m65 save state format.
//
// A legacy file is exactly 8263 bytes: the first 8K of memory, the chunky
// graphics bitmap and the CPU registers. Other files start with a version and
// a memory image size, followed by the memory image, the I/O register blocks,
// the chunky graphics mode, the sound chip registers and, from version 1, the
// hi-res boards. The chunky bitmap and CPU registers come last in both
// layouts. All multi-byte values are little-endian.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"microtan/emu/log"
)

const (
	LegacySize       = 8263
	LegacyMemorySize = 0x2000

	// CurrentVersion is the version written by Encode.
	CurrentVersion = 1

	MemorySize     = 0x10000
	ChunkyCells    = 512
	NumHiresBoards = 4
	HiresSize      = 0x2000
	NumAYRegisters = 32
)

var (
	// ErrInvalidFile reports a file whose layout isn't a valid save state.
	ErrInvalidFile = errors.New("invalid m65 file")
	// ErrShortRead reports a file shorter than what its header announces.
	ErrShortRead = errors.New("m65 file is truncated")
)

// CPU holds the registers saved in the status block.
type CPU struct {
	PC uint16
	P  uint8
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
}

// M65 is a decoded save state.
type M65 struct {
	Legacy  bool
	Version uint16

	// Memory image from address 0. 8K for a legacy file.
	Memory []uint8

	// Not present in legacy files.
	VIA        [2][16]uint8 // $BFC0 and $BFE0
	Keyboard   [16]uint8    // $BFF0
	DisplayCtl uint8        // $BC04
	Chunky     bool         // chunky graphics mode
	AY         [NumAYRegisters]uint8

	// Nil unless Version >= 1.
	Hires *[NumHiresBoards][HiresSize]uint8

	ChunkyBits [ChunkyCells]bool
	CPU        CPU
}

type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) next(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}
	if r.off+n > len(r.buf) {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, file has %d", ErrShortRead, n, r.off, len(r.buf))
		return make([]byte, n)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u16() uint16 {
	return binary.LittleEndian.Uint16(r.next(2))
}

// Decode decodes a save state.
//
// A versioned file announcing a memory size of 0 is read as a full 64K
// image. Older Microtan emulators read no memory at all for such files, but
// 0 is also what a 16-bit size field holds for 64K, which is what Encode
// writes.
func Decode(buf []byte) (*M65, error) {
	r := &reader{buf: buf}
	s := &M65{}

	if len(buf) == LegacySize {
		s.Legacy = true
		s.Memory = append([]uint8(nil), r.next(LegacyMemorySize)...)
	} else {
		if len(buf) < 4 {
			return nil, fmt.Errorf("%w: %d bytes", ErrInvalidFile, len(buf))
		}
		s.Version = r.u16()
		size := int(r.u16())
		if size == 0 {
			size = MemorySize
		}
		s.Memory = append([]uint8(nil), r.next(size)...)
		copy(s.VIA[0][:], r.next(16))
		copy(s.VIA[1][:], r.next(16))
		copy(s.Keyboard[:], r.next(16))
		s.DisplayCtl = r.next(1)[0]
		s.Chunky = r.next(1)[0] != 0
		copy(s.AY[:], r.next(NumAYRegisters))

		if s.Version >= 1 {
			s.Hires = new([NumHiresBoards][HiresSize]uint8)
			for i := range s.Hires {
				copy(s.Hires[i][:], r.next(HiresSize))
			}
		}
	}

	for i, b := range r.next(ChunkyCells / 8) {
		for bit := range 8 {
			s.ChunkyBits[i*8+bit] = b&(1<<bit) != 0
		}
	}

	status := r.next(7)
	s.CPU = CPU{
		PC: uint16(status[0]) | uint16(status[1])<<8,
		P:  status[2],
		A:  status[3],
		X:  status[4],
		Y:  status[5],
		SP: status[6],
	}

	if r.err != nil {
		return nil, r.err
	}
	if r.off != len(buf) {
		log.ModSnapshot.WarnZ("ignoring trailing bytes").Int("count", len(buf)-r.off).End()
	}
	return s, nil
}

// Encode encodes the save state. A legacy state produces a legacy file,
// holding the first 8K of Memory.
func (s *M65) Encode() ([]byte, error) {
	var buf []byte
	if s.Legacy {
		if len(s.Memory) < LegacyMemorySize {
			return nil, fmt.Errorf("%w: legacy memory image is %d bytes", ErrInvalidFile, len(s.Memory))
		}
		buf = make([]byte, 0, LegacySize)
		buf = append(buf, s.Memory[:LegacyMemorySize]...)
	} else {
		if len(s.Memory) == 0 || len(s.Memory) > MemorySize {
			return nil, fmt.Errorf("%w: memory image is %d bytes", ErrInvalidFile, len(s.Memory))
		}
		if s.Version >= 1 && s.Hires == nil {
			return nil, fmt.Errorf("%w: version %d requires hi-res boards", ErrInvalidFile, s.Version)
		}

		// A full 64K image doesn't fit in 16 bits, it's encoded as 0.
		buf = binary.LittleEndian.AppendUint16(buf, s.Version)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(s.Memory)))
		buf = append(buf, s.Memory...)
		buf = append(buf, s.VIA[0][:]...)
		buf = append(buf, s.VIA[1][:]...)
		buf = append(buf, s.Keyboard[:]...)
		buf = append(buf, s.DisplayCtl, boolByte(s.Chunky))
		buf = append(buf, s.AY[:]...)
		if s.Version >= 1 {
			for i := range s.Hires {
				buf = append(buf, s.Hires[i][:]...)
			}
		}
	}

	for i := 0; i < ChunkyCells; i += 8 {
		var b uint8
		for bit := range 8 {
			if s.ChunkyBits[i+bit] {
				b |= 1 << bit
			}
		}
		buf = append(buf, b)
	}

	buf = append(buf,
		uint8(s.CPU.PC), uint8(s.CPU.PC>>8),
		s.CPU.P, s.CPU.A, s.CPU.X, s.CPU.Y, s.CPU.SP,
	)

	if !s.Legacy && len(buf) == LegacySize {
		// Would be read back as a legacy file.
		return nil, fmt.Errorf("%w: ambiguous size", ErrInvalidFile)
	}
	return buf, nil
}

// ReadFile reads and decodes a save state file.
func ReadFile(path string) (*M65, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open save state: %w", err)
	}
	s, err := Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteFile encodes the save state into a file.
func (s *M65) WriteFile(path string) error {
	buf, err := s.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("write save state: %w", err)
	}
	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
