package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"microtan/emu/log"
)

type mode byte

const (
	runMode       mode = iota // Run the emulator
	stateInfoMode             // Show save state infos
	versionMode               // Show microtan version
)

type (
	CLI struct {
		Run       Run       `cmd:"" help:"Run the emulator. (default command)" default:"withargs"`
		StateInfo StateInfo `cmd:"" help:"Show the content of a save state." name:"state-info"`
		Version   Version   `cmd:"" help:"Show microtan version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		ROM        string   `name:"rom" help:"${rom_help}" type:"existingfile"`
		State      string   `name:"state" help:"Load a save state at startup." type:"existingfile" placeholder:"FILE.m65"`
		SaveState  string   `name:"save-state" help:"Save the machine state on exit." type:"path" placeholder:"FILE.m65"`
		HexKeypad  bool     `name:"hex-keypad" help:"Use the hex keypad instead of the ASCII keyboard."`
		Cycles     int64    `name:"cycles" help:"Stop after N CPU cycles." placeholder:"N"`
		CPUProfile string   `name:"cpuprofile" help:"${cpuprofile_help}" type:"path"`
		Trace      *outfile `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
	}

	StateInfo struct {
		Path string `arg:"" name:"FILE.m65" type:"existingfile"`
		JSON bool   `name:"json" help:"Output in JSON."`
	}

	Version struct{}
)

var vars = kong.Vars{
	"rom_help":        "Monitor ROM mapped at $C000. (default: config file, then microtan.rom)",
	"cpuprofile_help": "Write CPU profile to file.",
	"log_help":        "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("microtan"),
		kong.Description("Microtan 65 emulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch ctx.Command() {
	case "state-info <FILE.m65>":
		cfg.mode = stateInfoMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

const extraHelp = `
Log modules (--log takes a comma-separated list):
%s
    no           silence every module, warnings included
    all          debug logs for every module

Keys:
    Arrows       joystick
    F2 / F3      hex keypad / ASCII keyboard
    F5           reset
    Ctrl-]       quit
`

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if cmd := ctx.Command(); cmd != "" && !strings.HasPrefix(cmd, "run") {
		return nil
	}

	var mods strings.Builder
	for _, name := range log.ModuleNames() {
		fmt.Fprintf(&mods, "    %s\n", name)
	}
	_, err := fmt.Fprintf(ctx.Stderr, extraHelp, strings.TrimSuffix(mods.String(), "\n"))
	return err
}

// logModMask is the value of --log. Decoding it has the side effect of
// configuring the log package.
type logModMask log.ModuleMask

func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	return lm.parse(ctx.Scan.Pop().Value.(string))
}

func (lm logModMask) parse(list string) error {
	var all, none bool
	for _, name := range strings.Split(list, ",") {
		if name == "all" {
			all = true
			continue
		}
		if name == "no" {
			none = true
			continue
		}
		mod, ok := log.ModuleByName(name)
		if !ok {
			return fmt.Errorf("unknown log module %q", name)
		}
		lm |= logModMask(mod.Mask())
	}

	switch {
	case none && (all || lm != 0):
		return fmt.Errorf("'no' can't be combined with other log modules")
	case none:
		log.Disable()
	case all:
		log.EnableDebugModules(log.ModuleMaskAll)
	default:
		log.EnableDebugModules(log.ModuleMask(lm))
	}
	return nil
}

// outfile is the value of --trace: a file path, or one of the standard
// streams, which are never closed.
type outfile struct {
	name string
	w    io.Writer
}

func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	return f.open(ctx.Scan.Pop().Value.(string))
}

func (f *outfile) open(name string) error {
	f.name = name
	switch name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(name)
		if err != nil {
			return err
		}
		f.w = fd
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }

func (f *outfile) Close() error {
	if fd, ok := f.w.(*os.File); ok && fd != os.Stdout && fd != os.Stderr {
		return fd.Close()
	}
	return nil
}

// checkf exits the program if err is not nil.
func checkf(err error, format string, args ...any) {
	if err != nil {
		fatalf("%s: %v", fmt.Sprintf(format, args...), err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "microtan: "+format+"\n", args...)
	os.Exit(1)
}
