package hw

import (
	"microtan/emu/log"
	"microtan/hw/snapshot"
)

// Where the save state I/O blocks live in memory.
const (
	stateVIA0Addr       = 0xBFC0
	stateVIA1Addr       = 0xBFE0
	stateKeyboardAddr   = 0xBFF0
	stateDisplayCtlAddr = 0xBC04
	chunkyEnableAddr    = 0xBFF0
	chunkyDisableAddr   = 0xBFF3
)

// LoadState restores the machine from a .m65 file.
func (m *Machine) LoadState(path string) error {
	st, err := snapshot.ReadFile(path)
	if err != nil {
		return err
	}
	m.RestoreState(st)

	log.ModSnapshot.InfoZ("state loaded").
		String("path", path).
		Bool("legacy", st.Legacy).
		Int("version", int(st.Version)).
		Hex16("pc", st.CPU.PC).
		End()
	return nil
}

// SaveState saves the machine into a .m65 file, in the current format.
func (m *Machine) SaveState(path string) error {
	return m.CaptureState().WriteFile(path)
}

// RestoreState overwrites memory with the save state image, then replays
// the I/O registers through the bus so that devices pick up their state.
func (m *Machine) RestoreState(st *snapshot.M65) {
	mem := m.Bus.FetchPointer(0)
	copy(mem, st.Memory)

	if !st.Legacy {
		copy(mem[stateVIA0Addr:], st.VIA[0][:])
		copy(mem[stateVIA1Addr:], st.VIA[1][:])
		copy(mem[stateKeyboardAddr:], st.Keyboard[:])
		mem[stateDisplayCtlAddr] = st.DisplayCtl

		if st.Chunky {
			m.Bus.Read8(chunkyEnableAddr)
		} else {
			m.Bus.Write8(chunkyDisableAddr, 0)
		}

		if st.Hires != nil {
			for i := range st.Hires {
				copy(m.Display.HiresMemory(i), st.Hires[i][:])
			}
		}

		m.AY = st.AY
		m.VIAs.Reload()
	}

	m.Display.LoadChunkyBits(st.ChunkyBits)
	m.CPU.Continue(st.CPU.PC, st.CPU.A, st.CPU.X, st.CPU.Y, st.CPU.SP, P(st.CPU.P))
}

// CaptureState returns a save state of the current machine state.
func (m *Machine) CaptureState() *snapshot.M65 {
	mem := m.Bus.FetchPointer(0)

	st := &snapshot.M65{
		Version:    snapshot.CurrentVersion,
		Memory:     append([]uint8(nil), mem...),
		DisplayCtl: mem[stateDisplayCtlAddr],
		Chunky:     m.Display.ChunkyEnabled(),
		AY:         m.AY,
		Hires:      new([snapshot.NumHiresBoards][snapshot.HiresSize]uint8),
		ChunkyBits: m.Display.ChunkyBits(),
		CPU: snapshot.CPU{
			PC: m.CPU.PC,
			P:  uint8(m.CPU.P),
			A:  m.CPU.A,
			X:  m.CPU.X,
			Y:  m.CPU.Y,
			SP: m.CPU.SP,
		},
	}
	copy(st.VIA[0][:], mem[stateVIA0Addr:])
	copy(st.VIA[1][:], mem[stateVIA1Addr:])
	copy(st.Keyboard[:], mem[stateKeyboardAddr:])
	for i := range st.Hires {
		copy(st.Hires[i][:], m.Display.HiresMemory(i))
	}
	return st
}
