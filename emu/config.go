package emu

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"microtan/emu/log"
	"microtan/hw"
)

const DefaultFileMode = os.FileMode(0755)

type Config struct {
	Emulation EmulationConfig `toml:"emulation"`
	Machine   MachineConfig   `toml:"machine"`

	TraceOut io.WriteCloser `toml:"-"`
}

type EmulationConfig struct {
	ClockHz int `toml:"clock_hz"`
	SliceMs int `toml:"slice_ms"`

	// Stop after this many cycles, 0 runs until stopped.
	MaxCycles int64 `toml:"-"`
}

type MachineConfig struct {
	ROM       string `toml:"rom"`
	HexKeypad bool   `toml:"hex_keypad"`

	// Save state loaded at startup.
	State string `toml:"-"`
}

var defaultConfig = Config{
	Emulation: EmulationConfig{
		ClockHz: 750_000,
		SliceMs: 20,
	},
	Machine: MachineConfig{
		ROM: hw.DefaultROM,
	},
}

// DefaultConfig returns the configuration used when none has been saved.
func DefaultConfig() Config { return defaultConfig }

// Check replaces invalid settings with their default.
func (cfg *Config) Check() {
	if cfg.Emulation.ClockHz <= 0 {
		log.ModEmu.Warnf("Invalid clock frequency %d, fallback to %d", cfg.Emulation.ClockHz, defaultConfig.Emulation.ClockHz)
		cfg.Emulation.ClockHz = defaultConfig.Emulation.ClockHz
	}
	if cfg.Emulation.SliceMs <= 0 || cfg.Emulation.SliceMs > 1000 {
		log.ModEmu.Warnf("Invalid time slice %dms, fallback to %dms", cfg.Emulation.SliceMs, defaultConfig.Emulation.SliceMs)
		cfg.Emulation.SliceMs = defaultConfig.Emulation.SliceMs
	}
	if cfg.Machine.ROM == "" {
		cfg.Machine.ROM = defaultConfig.Machine.ROM
	}
}

// SliceCycles returns the number of CPU cycles executed per time slice.
func (ec EmulationConfig) SliceCycles() int {
	return ec.ClockHz * ec.SliceMs / 1000
}

var ConfigDir = sync.OnceValue(func() string {
	cfgdir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.Fatalf("failed to get user config directory: %v", err)
	}

	dir := filepath.Join(cfgdir, "microtan")
	if err := os.MkdirAll(dir, DefaultFileMode); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the microtan config
// directory, or provide a default one.
func LoadConfigOrDefault() Config {
	path := filepath.Join(ConfigDir(), cfgFilename)
	cfg, err := LoadConfig(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.ModEmu.WarnZ("Failed to load config, using defaults").
				String("path", path).
				Error("err", err).
				End()
		}
		return DefaultConfig()
	}
	return cfg
}

// LoadConfig loads a configuration file. Settings missing from the file keep
// their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	cfg.Check()
	return cfg, nil
}

// SaveConfig into microtan config directory.
func SaveConfig(cfg Config) error {
	return WriteConfig(filepath.Join(ConfigDir(), cfgFilename), cfg)
}

// WriteConfig writes cfg as a TOML file.
func WriteConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}
