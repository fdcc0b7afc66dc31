package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/go-faster/jx"
	"github.com/google/go-cmp/cmp"

	"microtan/hw/snapshot"
)

// flattenJSON collects the leaves of a JSON document, keyed by their path.
func flattenJSON(d *jx.Decoder, path string, out map[string]string) error {
	switch d.Next() {
	case jx.Object:
		return d.Obj(func(d *jx.Decoder, key string) error {
			return flattenJSON(d, path+"."+key, out)
		})
	case jx.Array:
		i := 0
		return d.Arr(func(d *jx.Decoder) error {
			err := flattenJSON(d, fmt.Sprintf("%s[%d]", path, i), out)
			i++
			return err
		})
	case jx.String:
		s, err := d.Str()
		out[path] = s
		return err
	case jx.Number:
		n, err := d.Int()
		out[path] = strconv.Itoa(n)
		return err
	case jx.Bool:
		b, err := d.Bool()
		out[path] = strconv.FormatBool(b)
		return err
	}
	return d.Skip()
}

func stateInfo(t *testing.T, st *snapshot.M65, json bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.m65")
	if err := st.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := stateInfoMain(StateInfo{Path: path, JSON: json}, &buf); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func legacyState() *snapshot.M65 {
	st := &snapshot.M65{
		Legacy: true,
		Memory: make([]uint8, snapshot.LegacyMemorySize),
		CPU:    snapshot.CPU{PC: 0xC000, P: 0x24, A: 1, X: 2, Y: 3, SP: 0xFF},
	}
	st.ChunkyBits[0] = true
	st.ChunkyBits[100] = true
	st.ChunkyBits[511] = true
	return st
}

func TestStateJSONLegacy(t *testing.T) {
	out := stateInfo(t, legacyState(), true)

	got := map[string]string{}
	if err := flattenJSON(jx.DecodeStr(out), "", got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}

	want := map[string]string{
		".format":       "legacy",
		".legacy":       "true",
		".version":      "0",
		".memory_size":  "8192",
		".cpu.pc":       "C000",
		".cpu.a":        "01",
		".cpu.x":        "02",
		".cpu.y":        "03",
		".cpu.sp":       "FF",
		".cpu.p":        "24",
		".cpu.flags":    "nvUbdIzc",
		".chunky_cells": "3",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON report mismatch (-want +got):\n%s", diff)
	}
}

func TestStateJSON(t *testing.T) {
	st := &snapshot.M65{
		Version:    1,
		Memory:     make([]uint8, snapshot.MemorySize),
		Chunky:     true,
		DisplayCtl: 0x12,
		Hires:      new([snapshot.NumHiresBoards][snapshot.HiresSize]uint8),
		CPU:        snapshot.CPU{PC: 0x0400, SP: 0xFD},
	}
	st.VIA[0][0xB] = 0x40
	st.Keyboard[3] = 0xC1
	st.AY[0] = 0xAB
	st.Hires[2][5] = 1
	st.Hires[2][6] = 2

	out := stateInfo(t, st, true)
	got := map[string]string{}
	if err := flattenJSON(jx.DecodeStr(out), "", got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}

	want := map[string]string{
		".format":          "v1",
		".memory_size":     "65536",
		".chunky_mode":     "true",
		".display_ctl":     "12",
		".via[0]":          strings.Repeat("00", 11) + "40" + strings.Repeat("00", 4),
		".via[1]":          strings.Repeat("00", 16),
		".keyboard":        "000000C1" + strings.Repeat("00", 12),
		".hires.red":       "0",
		".hires.blue":      "2",
		".hires.intensity": "0",
		".cpu.pc":          "0400",
	}
	for key, val := range want {
		if got[key] != val {
			t.Errorf("%s = %q, want %q", key, got[key], val)
		}
	}
	if !strings.HasPrefix(got[".ay"], "AB00") {
		t.Errorf(".ay = %q, want AB00...", got[".ay"])
	}
}

func TestStateInfoText(t *testing.T) {
	out := stateInfo(t, legacyState(), false)

	for _, want := range []string{
		"format:       legacy\n",
		"memory:       8192 bytes\n",
		"PC=C000 A=01 X=02 Y=03 SP=FF P=nvUbdIzc\n",
		"chunky cells: 3\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "via 0") {
		t.Errorf("legacy state shouldn't report I/O blocks:\n%s", out)
	}
}
