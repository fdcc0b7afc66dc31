package hw

import (
	"errors"
	"fmt"

	"microtan/emu/log"
	"microtan/hw/hwio"
)

// DefaultROM is the monitor ROM loaded at $C000 when none is configured.
const DefaultROM = "microtan.rom"

// Config holds the machine settings.
type Config struct {
	ROMPath   string // defaults to DefaultROM
	HexKeypad bool
}

// deviceConfig describes one entry of the system device table.
type deviceConfig struct {
	init  func(m *Machine, dc *deviceConfig) error
	reset func(m *Machine, dc *deviceConfig)

	bank  uint8
	addr  uint16
	param uint16
	id    string
}

// systemDevices lists the devices of a Microtan 65, in initialisation
// order. Bus registration order follows.
var systemDevices = []deviceConfig{
	{init: (*Machine).initKeyboard, addr: 0xBFF0, id: "keyboard"},
	{init: (*Machine).initDisplay, addr: TextStart, param: 0xBFF0, id: "main display"},
	{init: (*Machine).initHires, bank: 0x01, addr: 0x8000, id: "hires red"},
	{init: (*Machine).initHires, bank: 0x02, addr: 0x8000, id: "hires green"},
	{init: (*Machine).initHires, bank: 0x03, addr: 0x8000, id: "hires blue"},
	{init: (*Machine).initHires, bank: 0x04, addr: 0x8000, id: "hires intensity"},
	{init: (*Machine).initVIA, reset: (*Machine).resetVIA, addr: 0xBFC0, id: "via 0"},
	{init: (*Machine).initVIA, reset: (*Machine).resetVIA, addr: 0xBFE0, id: "via 1"},
	{init: (*Machine).initSerial, reset: (*Machine).resetSerial, addr: 0xBFD0, param: 0xBFD3, id: "serial"},
	{init: (*Machine).initROM, addr: 0xC000, id: DefaultROM},
	{init: (*Machine).initCPU, reset: (*Machine).resetCPU, id: "cpu"},
}

// Machine is a Microtan 65: a 6502 CPU, its bus and the peripherals mapped
// on it.
type Machine struct {
	Bus      *hwio.Table
	CPU      *CPU
	VIAs     *VIAs
	Keyboard *Keyboard
	Serial   *Serial
	Display  *Display
	Joystick *Joystick

	// Sound chip registers, kept for save states only.
	AY [32]uint8

	cfg Config
}

func NewMachine(cfg Config) *Machine {
	if cfg.ROMPath == "" {
		cfg.ROMPath = DefaultROM
	}

	bus := hwio.NewTable("cpu")
	cpu := NewCPU(bus)
	vias := NewVIAs(bus)
	cpu.Timer = vias
	kbd := NewKeyboard(cpu)

	return &Machine{
		Bus:      bus,
		CPU:      cpu,
		VIAs:     vias,
		Keyboard: kbd,
		Serial:   &Serial{},
		Display:  NewDisplay(bus),
		Joystick: NewJoystick(vias, kbd),
		cfg:      cfg,
	}
}

// Initialise runs every device initialiser then resets the machine. Devices
// that can't be mapped are logged and skipped, I/O errors abort.
func (m *Machine) Initialise() error {
	m.Bus.Reset()
	m.VIAs.devs = m.VIAs.devs[:0]

	for i := range systemDevices {
		dc := &systemDevices[i]
		err := dc.init(m, dc)
		switch {
		case err == nil:
		case errors.Is(err, hwio.ErrDeviceTableFull), errors.Is(err, ErrTooManyVIAs):
			log.ModEmu.ErrorZ("device not added").
				String("device", dc.id).
				Hex16("addr", dc.addr).
				Error("err", err).
				End()
		default:
			return fmt.Errorf("%s initialisation: %w", dc.id, err)
		}
	}

	m.Keyboard.UseHexKeypad(m.cfg.HexKeypad)
	m.Reset()
	return nil
}

// Reset resets every device that supports it.
func (m *Machine) Reset() {
	for i := range systemDevices {
		dc := &systemDevices[i]
		if dc.reset != nil {
			dc.reset(m, dc)
		}
	}
}

// Execute runs the CPU for at least cycles cycles and returns the number of
// cycles executed.
func (m *Machine) Execute(cycles int) int {
	return m.CPU.Execute(cycles)
}

func (m *Machine) initKeyboard(dc *deviceConfig) error {
	return m.Keyboard.InitBus(m.Bus, dc.addr)
}

func (m *Machine) initDisplay(dc *deviceConfig) error {
	return m.Display.InitMain(dc.addr, dc.param)
}

func (m *Machine) initHires(dc *deviceConfig) error {
	return m.Display.InitHires(dc.bank, dc.addr, dc.id)
}

func (m *Machine) initVIA(dc *deviceConfig) error {
	return m.VIAs.Initialise(dc.bank, dc.addr, dc.param, dc.id)
}

func (m *Machine) resetVIA(dc *deviceConfig) {
	m.VIAs.Reset(dc.bank, dc.addr)
}

func (m *Machine) initSerial(dc *deviceConfig) error {
	return m.Serial.InitBus(m.Bus, dc.addr, dc.param)
}

func (m *Machine) resetSerial(*deviceConfig) {
	m.Serial.Reset()
}

func (m *Machine) initROM(dc *deviceConfig) error {
	return LoadROM(m.Bus, m.cfg.ROMPath, dc.addr)
}

func (m *Machine) initCPU(*deviceConfig) error {
	return m.CPU.InitBus()
}

func (m *Machine) resetCPU(dc *deviceConfig) {
	m.CPU.Reset(dc.bank, dc.addr)
}
