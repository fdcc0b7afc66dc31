package log

type ModuleMask uint64
type Module uint

const (
	ModuleMaskAll ModuleMask = 0xFFFFFFFFFFFFFFFF
)

const (
	ModEmu Module = iota + 1
	ModCPU
	ModMem
	ModHwIo
	ModVIA
	ModInput
	ModSnapshot

	modCount
)

var (
	modDebugMask ModuleMask = 0
	disabled     bool
)

var modNames = [modCount]string{
	"<error>", "emu", "cpu", "mem", "hwio", "via", "input", "snapshot",
}

// ModuleByName looks up a module by its name, as used by --log.
func ModuleByName(name string) (Module, bool) {
	for mod := ModEmu; mod < modCount; mod++ {
		if modNames[mod] == name {
			return mod, true
		}
	}
	return 0, false
}

// ModuleNames returns the names of all registered modules.
func ModuleNames() []string {
	return append([]string(nil), modNames[ModEmu:]...)
}

func EnableDebugModules(mask ModuleMask) {
	modDebugMask |= mask
}

func DisableDebugModules(mask ModuleMask) {
	modDebugMask &^= mask
}

// Disable turns off all logging, warnings and errors included. Fatal and
// panic entries still terminate the program.
func Disable() {
	disabled = true
	modDebugMask = 0
}

func (mod Module) String() string {
	if mod < modCount {
		return modNames[mod]
	}
	return modNames[0]
}

func (mod Module) Mask() ModuleMask {
	return 1 << ModuleMask(mod)
}

func (mod Module) Enabled(level Level) bool {
	if disabled {
		return level <= FatalLevel
	}
	return level <= WarnLevel || modDebugMask&mod.Mask() != 0
}

// Printf-like family.

func (mod Module) Warnf(format string, args ...any)  { Entry{mod}.Warnf(format, args...) }
func (mod Module) Errorf(format string, args ...any) { Entry{mod}.Errorf(format, args...) }
func (mod Module) Fatalf(format string, args ...any) { Entry{mod}.Fatalf(format, args...) }

// Zero-allocation family. A disabled level returns a nil *EntryZ, on which
// every method is a no-op.

func (mod Module) logz(lvl Level, msg string) *EntryZ {
	if !mod.Enabled(lvl) {
		return nil
	}
	e := NewEntryZ()
	e.lvl = lvl
	e.msg = msg
	e.mod = mod
	return e
}

func (mod Module) DebugZ(msg string) *EntryZ { return mod.logz(DebugLevel, msg) }
func (mod Module) InfoZ(msg string) *EntryZ  { return mod.logz(InfoLevel, msg) }
func (mod Module) WarnZ(msg string) *EntryZ  { return mod.logz(WarnLevel, msg) }
func (mod Module) ErrorZ(msg string) *EntryZ { return mod.logz(ErrorLevel, msg) }
func (mod Module) FatalZ(msg string) *EntryZ { return mod.logz(FatalLevel, msg) }
func (mod Module) PanicZ(msg string) *EntryZ { return mod.logz(PanicLevel, msg) }
