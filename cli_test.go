package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"microtan/emu"
	"microtan/emu/log"
)

func TestLogModMask(t *testing.T) {
	defer log.DisableDebugModules(log.ModuleMaskAll)

	errs := []string{"foo", "all,no", "cpu,no", "cpu,"}
	for _, list := range errs {
		if err := logModMask(0).parse(list); err == nil {
			t.Errorf("parse(%q) succeeded, want an error", list)
		}
	}

	if err := logModMask(0).parse("cpu,via"); err != nil {
		t.Fatal(err)
	}
	for _, mod := range []log.Module{log.ModCPU, log.ModVIA} {
		if !mod.Enabled(log.DebugLevel) {
			t.Errorf("debug logs of %s not enabled", mod)
		}
	}
	if log.ModMem.Enabled(log.DebugLevel) {
		t.Errorf("debug logs of %s enabled", log.ModMem)
	}
}

func TestOutfile(t *testing.T) {
	var f outfile
	if err := f.open("stdout"); err != nil {
		t.Fatal(err)
	}
	if f.w != os.Stdout || f.Close() != nil {
		t.Errorf("stdout outfile not set up")
	}

	path := filepath.Join(t.TempDir(), "trace.log")
	if err := f.open(path); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("C000  58        CLI\n")); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "C000  58        CLI\n" {
		t.Errorf("trace file = %q", buf)
	}
}

func TestRunConfig(t *testing.T) {
	base := emu.DefaultConfig()

	tests := []struct {
		name string
		args Run
		want func(*emu.Config)
	}{
		{
			name: "no flags",
			want: func(*emu.Config) {},
		},
		{
			name: "overrides",
			args: Run{ROM: "tanbug.rom", HexKeypad: true, Cycles: 1000},
			want: func(c *emu.Config) {
				c.Machine.ROM = "tanbug.rom"
				c.Machine.HexKeypad = true
				c.Emulation.MaxCycles = 1000
			},
		},
		{
			name: "state",
			args: Run{State: "games/invaders.m65"},
			want: func(c *emu.Config) { c.Machine.State = "games/invaders.m65" },
		},
		{
			name: "berzerk",
			args: Run{State: "games/Berzerk.m65"},
			want: func(c *emu.Config) {
				c.Machine.State = "games/Berzerk.m65"
				c.Machine.HexKeypad = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := base
			tt.want(&want)
			got := runConfig(tt.args, base)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
