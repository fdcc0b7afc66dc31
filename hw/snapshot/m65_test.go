package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeLegacy(t *testing.T) {
	buf := make([]byte, LegacySize)
	for i := range LegacyMemorySize {
		buf[i] = uint8(i * 7)
	}
	// chunky bitmap: cells 0, 9 and 511
	buf[LegacyMemorySize+0] = 0b0000_0001
	buf[LegacyMemorySize+1] = 0b0000_0010
	buf[LegacyMemorySize+63] = 0b1000_0000
	copy(buf[LegacySize-7:], []byte{0x34, 0x12, 0x24, 0xAA, 0xBB, 0xCC, 0xF0})

	s, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}

	if !s.Legacy {
		t.Errorf("Legacy = false, want true")
	}
	if diff := cmp.Diff(buf[:LegacyMemorySize], s.Memory); diff != "" {
		t.Errorf("memory mismatch (-want +got):\n%s", diff)
	}

	var want [ChunkyCells]bool
	want[0], want[9], want[511] = true, true, true
	if diff := cmp.Diff(want, s.ChunkyBits); diff != "" {
		t.Errorf("chunky bits mismatch (-want +got):\n%s", diff)
	}

	wantCPU := CPU{PC: 0x1234, P: 0x24, A: 0xAA, X: 0xBB, Y: 0xCC, SP: 0xF0}
	if s.CPU != wantCPU {
		t.Errorf("CPU = %+v, want %+v", s.CPU, wantCPU)
	}
}

func testState(version uint16, memsize int) *M65 {
	s := &M65{
		Version:    version,
		Memory:     make([]uint8, memsize),
		DisplayCtl: 0x5A,
		Chunky:     true,
		CPU:        CPU{PC: 0xC000, P: 0x20, A: 1, X: 2, Y: 3, SP: 0xFD},
	}
	for i := range s.Memory {
		s.Memory[i] = uint8(i ^ i>>8)
	}
	for i := range 16 {
		s.VIA[0][i] = uint8(i)
		s.VIA[1][i] = uint8(0x10 + i)
		s.Keyboard[i] = uint8(0x20 + i)
	}
	for i := range s.AY {
		s.AY[i] = uint8(0x80 + i)
	}
	for i := range s.ChunkyBits {
		s.ChunkyBits[i] = i%3 == 0
	}
	if version >= 1 {
		s.Hires = new([NumHiresBoards][HiresSize]uint8)
		for b := range s.Hires {
			for i := range s.Hires[b] {
				s.Hires[b][i] = uint8(b*31 + i)
			}
		}
	}
	return s
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		state *M65
		size  int
	}{
		{
			name:  "version 0",
			state: testState(0, 0xC000),
			size:  4 + 0xC000 + 16*3 + 1 + 1 + 32 + 64 + 7,
		},
		{
			name:  "version 1 full memory",
			state: testState(1, MemorySize),
			size:  4 + MemorySize + 16*3 + 1 + 1 + 32 + 4*HiresSize + 64 + 7,
		},
		{
			name: "legacy",
			state: func() *M65 {
				s := &M65{Legacy: true, Memory: make([]uint8, LegacyMemorySize)}
				s.Memory[0x1FFF] = 0xEE
				s.ChunkyBits[300] = true
				s.CPU = CPU{PC: 0x0400, SP: 0xFF, P: 0x30}
				return s
			}(),
			size: LegacySize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := tt.state.Encode()
			if err != nil {
				t.Fatal(err)
			}
			if len(buf) != tt.size {
				t.Fatalf("encoded size = %d, want %d", len(buf), tt.size)
			}

			got, err := Decode(buf)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.state, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFullMemorySizeIsZero(t *testing.T) {
	buf, err := testState(1, MemorySize).Encode()
	if err != nil {
		t.Fatal(err)
	}
	if buf[2] != 0 || buf[3] != 0 {
		t.Errorf("memory size = %02X%02X, want 0000", buf[3], buf[2])
	}
}

func TestDecodeErrors(t *testing.T) {
	full, err := testState(1, 0x4000).Encode()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		buf  []byte
		want error
	}{
		{name: "empty", buf: nil, want: ErrInvalidFile},
		{name: "header only", buf: []byte{1, 0}, want: ErrInvalidFile},
		{name: "truncated memory", buf: full[:0x1000], want: ErrShortRead},
		{name: "missing status", buf: full[:len(full)-3], want: ErrShortRead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.buf)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.m65")
	want := testState(1, 0x8000)
	if err := want.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadFile mismatch (-want +got):\n%s", diff)
	}

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.m65"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile(missing) err = %v, want %v", err, os.ErrNotExist)
	}
}
