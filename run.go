package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"

	"microtan/emu"
	"microtan/emu/log"
)

// runConfig applies the command line flags over the configuration file.
func runConfig(args Run, cfg emu.Config) emu.Config {
	if args.ROM != "" {
		cfg.Machine.ROM = args.ROM
	}
	if args.HexKeypad {
		cfg.Machine.HexKeypad = true
	}
	if args.State != "" {
		cfg.Machine.State = args.State
		// Berzerk is played on the hex keypad.
		if strings.Contains(strings.ToLower(filepath.Base(args.State)), "berzerk") {
			cfg.Machine.HexKeypad = true
		}
	}
	cfg.Emulation.MaxCycles = args.Cycles
	return cfg
}

// emuMain runs the emulator in the terminal.
func emuMain(args Run) {
	cfg := runConfig(args, emu.LoadConfigOrDefault())

	var traceout io.WriteCloser
	if args.Trace != nil {
		traceout = args.Trace
		defer traceout.Close()
	}
	cfg.TraceOut = traceout

	term := emu.NewTerminal(os.Stdin, os.Stdout)
	var screen emu.Screen = term
	if args.Trace != nil && args.Trace.String() == "stdout" {
		screen = nil
	}

	emulator, err := emu.Launch(cfg, screen)
	checkf(err, "failed to start emulator")

	if args.CPUProfile != "" {
		f, err := os.Create(args.CPUProfile)
		checkf(err, "failed to create cpu profile file")
		checkf(pprof.StartCPUProfile(f), "failed to start cpu profile")
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
			fmt.Println("CPU profile written to", args.CPUProfile)
		}()
	}

	checkf(term.Start(), "failed to setup terminal")
	emulator.Run(term.Events())
	term.Stop()

	if args.SaveState != "" {
		if err := emulator.Machine.SaveState(args.SaveState); err != nil {
			log.ModEmu.ErrorZ("Failed to save state").String("path", args.SaveState).Error("err", err).End()
			return
		}
		log.ModEmu.InfoZ("State saved").String("path", args.SaveState).End()
	}
}
