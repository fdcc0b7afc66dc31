package emu

import (
	"fmt"
	"sync/atomic"
	"time"

	"microtan/emu/log"
	"microtan/hw"
)

// Screen draws the text display.
type Screen interface {
	Draw(text []uint8, chunky [hw.TextSize]bool)
}

// Joystick directions typed on the terminal are held down for that many time
// slices, since terminals don't report key releases.
const joyHoldSlices = 5

type Emulator struct {
	Machine *hw.Machine
	cfg     EmulationConfig
	screen  Screen

	joy     hw.JoyKeys
	joyHold int

	// Accessed concurrently by the emulator loop and the host.
	quit  atomic.Bool
	reset atomic.Bool
}

// Launch powers up the machine, loads the save state if any and setups the
// execution trace. It doesn't start the emulation loop, call Run() for that.
func Launch(cfg Config, screen Screen) (*Emulator, error) {
	cfg.Check()

	m := hw.NewMachine(hw.Config{
		ROMPath:   cfg.Machine.ROM,
		HexKeypad: cfg.Machine.HexKeypad,
	})
	if err := m.Initialise(); err != nil {
		return nil, fmt.Errorf("power up failed: %w", err)
	}

	if cfg.Machine.State != "" {
		if err := m.LoadState(cfg.Machine.State); err != nil {
			return nil, err
		}
	}

	// CPU execution trace setup.
	if cfg.TraceOut != nil {
		m.CPU.SetTraceOutput(cfg.TraceOut)
	}

	log.ModEmu.InfoZ("Machine powered up").
		String("rom", cfg.Machine.ROM).
		Bool("hex_keypad", m.Keyboard.UsingHexKeypad()).
		Int("clock_hz", cfg.Emulation.ClockHz).
		End()

	return &Emulator{
		Machine: m,
		cfg:     cfg.Emulation,
		screen:  screen,
	}, nil
}

// Run runs the emulation loop until Stop is called or the cycle limit is
// reached. Each iteration executes one time
// slice worth of cycles, handles input, redraws the screen if needed and
// sleeps for the remainder of the slice.
func (e *Emulator) Run(events <-chan Event) {
	log.AddContext(e.Machine.CPU)
	defer log.RemoveContext(e.Machine.CPU)

	slice := time.Duration(e.cfg.SliceMs) * time.Millisecond
	ncycles := e.cfg.SliceCycles()

	e.draw()
	for !e.shouldStop() {
		start := time.Now()

		e.Machine.Execute(ncycles)
		events = e.handleEvents(events)
		e.updateJoystick()
		e.handleReset()
		if e.Machine.Display.Updated() {
			e.draw()
		}

		if elapsed := time.Since(start); elapsed < slice {
			time.Sleep(slice - elapsed)
		}
	}

	log.ModEmu.InfoZ("Emulation loop exited").
		Int64("cycles", e.Machine.CPU.Cycles).
		Hex16("pc", e.Machine.CPU.GetPC()).
		End()
}

func (e *Emulator) draw() {
	if e.screen == nil {
		return
	}
	e.screen.Draw(e.Machine.Display.TextRAM(), e.Machine.Display.ChunkyBits())
}

// handleEvents drains pending events. It returns nil once the events channel
// is closed.
func (e *Emulator) handleEvents(events <-chan Event) <-chan Event {
	if events == nil {
		return nil
	}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			e.handleEvent(ev)
		default:
			return events
		}
	}
}

func (e *Emulator) handleEvent(ev Event) {
	m := e.Machine
	switch ev.Kind {
	case EventKey:
		m.Keyboard.Keypress(ev.Key)
	case EventJoystick:
		e.joy |= ev.Joy
		e.joyHold = joyHoldSlices
	case EventReset:
		e.Reset()
	case EventHexKeypad:
		log.ModInput.InfoZ("Hex keypad selected").End()
		m.Keyboard.UseHexKeypad(true)
	case EventKeyboard:
		log.ModInput.InfoZ("ASCII keyboard selected").End()
		m.Keyboard.UseHexKeypad(false)
	case EventQuit:
		e.Stop()
	}
}

func (e *Emulator) updateJoystick() {
	if e.joyHold > 0 {
		e.joyHold--
		if e.joyHold == 0 {
			e.joy = 0
		}
	}
	e.Machine.Joystick.Set(e.joy)
}

// Stop and Reset allows to control the emulator loop in a concurrent-safe
// way.

func (e *Emulator) Stop()  { e.quit.Store(true) }
func (e *Emulator) Reset() { e.reset.Store(true) }

func (e *Emulator) shouldStop() bool {
	if e.quit.Load() {
		return true
	}
	return e.cfg.MaxCycles > 0 && e.Machine.CPU.Cycles >= e.cfg.MaxCycles
}

func (e *Emulator) handleReset() {
	if e.reset.CompareAndSwap(true, false) {
		log.ModEmu.InfoZ("Performing reset").End()
		e.Machine.Reset()
	}
}
