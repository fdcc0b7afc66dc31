package main

import (
	"fmt"
	"os"
	"runtime/debug"
)

func main() {
	cfg := parseArgs(os.Args[1:])

	switch cfg.mode {
	case runMode:
		emuMain(cfg.Run)
	case stateInfoMode:
		checkf(stateInfoMain(cfg.StateInfo, os.Stdout), "failed to read save state")
	case versionMode:
		fmt.Println("microtan", version())
	}
}

func version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "(devel)"
	}
	return bi.Main.Version
}
