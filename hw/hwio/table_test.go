package hwio_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"microtan/hw/hwio"
)

type testTable struct {
	t testing.TB
	*hwio.Table
}

func newTestTable(tb testing.TB) *testTable {
	return &testTable{t: tb, Table: hwio.NewTable("bus")}
}

func (tbl *testTable) register(dev hwio.Device) {
	tbl.t.Helper()
	if err := tbl.Register(dev); err != nil {
		tbl.t.Fatalf("Register(%s) failed: %v", dev.Name, err)
	}
}

func (tbl *testTable) wantRead8(addr uint16, want uint8) {
	tbl.t.Helper()
	if got := tbl.Read8(addr); got != want {
		tbl.t.Errorf("Read8(%04X) = %02X, want %02X", addr, got, want)
	}
}

func (tbl *testTable) wantMem8(addr uint16, want uint8) {
	tbl.t.Helper()
	if got := tbl.Peek8(addr); got != want {
		tbl.t.Errorf("mem[%04X] = %02X, want %02X", addr, got, want)
	}
}

func constRead(v uint8) func(uint16) uint8 {
	return func(uint16) uint8 { return v }
}

func TestTableUnmapped(t *testing.T) {
	tbl := newTestTable(t)

	tbl.wantRead8(0x1234, 0)
	tbl.Write8(0x1234, 0x5A)
	tbl.wantRead8(0x1234, 0x5A)

	tbl.SetReadOnly(0x1234, 0x1234)
	tbl.Write8(0x1234, 0x11)
	tbl.wantRead8(0x1234, 0x5A)
}

func TestTableOverlappingRead(t *testing.T) {
	tbl := newTestTable(t)
	tbl.FetchPointer(0x0500)[0] = 0x80

	tbl.register(hwio.Device{Name: "a", Start: 0x0400, End: 0x04FF, ReadCb: constRead(0x01)})
	tbl.register(hwio.Device{Name: "b", Start: 0x0480, End: 0x05FF, ReadCb: constRead(0x02)})
	tbl.register(hwio.Device{Name: "c", Start: 0x0500, End: 0x0500, ReadCb: constRead(0x04), SharedMem: true})

	tbl.wantRead8(0x0400, 0x01)
	tbl.wantRead8(0x0480, 0x03)
	tbl.wantRead8(0x0501, 0x02)

	// 'b' and 'c' match, and 'c' is backed by memory.
	tbl.wantRead8(0x0500, 0x86)

	// Without main memory backing, device reads hide memory.
	tbl.FetchPointer(0x0400)[0] = 0xF0
	tbl.wantRead8(0x0400, 0x01)
}

func TestTableWrite(t *testing.T) {
	tbl := newTestTable(t)

	var writes []string
	logw := func(name string) func(uint16, uint8) {
		return func(addr uint16, val uint8) {
			writes = append(writes, fmt.Sprintf("%s:%04X=%02X mem=%02X", name, addr, val, tbl.Peek8(addr)))
		}
	}

	tbl.register(hwio.Device{Name: "io", Start: 0xBFC0, End: 0xBFCF, WriteCb: logw("io")})
	tbl.register(hwio.Device{Name: "shared", Start: 0xBFC0, End: 0xBFC0, WriteCb: logw("shared"), SharedMem: true})
	tbl.register(hwio.Device{Name: "rom", Start: 0xC000, End: 0xFFFF, WriteCb: logw("rom")})
	tbl.SetReadOnly(0xC000, 0xFFFF)

	tbl.Write8(0xBFC0, 0x12)
	tbl.Write8(0xBFC1, 0x34)
	tbl.Write8(0xC000, 0x56)

	want := []string{
		"io:BFC0=12 mem=00",
		"shared:BFC0=12 mem=12",
		"io:BFC1=34 mem=00",
		"rom:C000=56 mem=00",
	}
	if diff := cmp.Diff(want, writes); diff != "" {
		t.Errorf("write sequence mismatch (-want +got):\n%s", diff)
	}

	// Writes fall through to memory unless read-only.
	tbl.wantMem8(0xBFC0, 0x12)
	tbl.wantMem8(0xBFC1, 0x34)
	tbl.wantMem8(0xC000, 0x00)
	if !tbl.IsReadOnly(0xFFFF) || tbl.IsReadOnly(0xBFFF) {
		t.Errorf("read-only range is wrong")
	}
}

func TestTableFull(t *testing.T) {
	tbl := newTestTable(t)
	for i := range hwio.MaxDevices {
		tbl.register(hwio.Device{Name: fmt.Sprint("dev", i), Start: uint16(i), End: uint16(i)})
	}

	err := tbl.Register(hwio.Device{Name: "extra", Start: 0x100, End: 0x100, ReadCb: constRead(0xff)})
	if !errors.Is(err, hwio.ErrDeviceTableFull) {
		t.Fatalf("Register on full table: got err = %v, want %v", err, hwio.ErrDeviceTableFull)
	}
	if n := len(tbl.Devices()); n != hwio.MaxDevices {
		t.Errorf("len(Devices()) = %d, want %d", n, hwio.MaxDevices)
	}
	tbl.wantRead8(0x100, 0)
}

func TestRead16(t *testing.T) {
	tbl := newTestTable(t)
	hwio.Write16(tbl, 0xFFFC, 0xC0DE)
	if got := hwio.Read16(tbl, 0xFFFC); got != 0xC0DE {
		t.Errorf("Read16 = %04X, want C0DE", got)
	}
	tbl.wantMem8(0xFFFC, 0xDE)
	tbl.wantMem8(0xFFFD, 0xC0)
}
