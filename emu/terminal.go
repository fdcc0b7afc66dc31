package emu

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"microtan/emu/log"
	"microtan/hw"
)

// EventKind identifies a host input event.
type EventKind uint8

const (
	EventKey       EventKind = iota // ASCII key for the keyboard
	EventJoystick                   // joystick direction pulse
	EventReset                      // F5
	EventHexKeypad                  // F2
	EventKeyboard                   // F3
	EventQuit                       // Ctrl-]
)

// Event is an input event read from the host terminal.
type Event struct {
	Kind EventKind
	Key  uint8
	Joy  hw.JoyKeys
}

const quitKey = 0x1D // Ctrl-]

// escape sequences sent by terminals for the keys the emulator handles.
var escapeSeqs = map[string]Event{
	"[A":   {Kind: EventJoystick, Joy: hw.JoyUp},
	"[B":   {Kind: EventJoystick, Joy: hw.JoyDown},
	"[C":   {Kind: EventJoystick, Joy: hw.JoyRight},
	"[D":   {Kind: EventJoystick, Joy: hw.JoyLeft},
	"OA":   {Kind: EventJoystick, Joy: hw.JoyUp},
	"OB":   {Kind: EventJoystick, Joy: hw.JoyDown},
	"OC":   {Kind: EventJoystick, Joy: hw.JoyRight},
	"OD":   {Kind: EventJoystick, Joy: hw.JoyLeft},
	"OQ":   {Kind: EventHexKeypad},
	"[12~": {Kind: EventHexKeypad},
	"OR":   {Kind: EventKeyboard},
	"[13~": {Kind: EventKeyboard},
	"[15~": {Kind: EventReset},
}

// translateKey maps a byte typed on the host to the code the Microtan
// keyboard produces: letter case is swapped since the monitor expects upper
// case by default, and backspace becomes DEL.
func translateKey(b uint8) uint8 {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z':
		return b ^ 0x20
	case b == 0x08:
		return 0x7F
	}
	return b
}

// DecodeInput decodes a chunk of bytes read from a raw terminal into events.
// Unknown escape sequences are dropped, a lone ESC is a key.
func DecodeInput(buf []byte) []Event {
	var evs []Event
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		switch {
		case b == quitKey:
			evs = append(evs, Event{Kind: EventQuit})
		case b == 0x1B && i+1 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O'):
			n := escapeLen(buf[i+1:])
			if ev, ok := escapeSeqs[string(buf[i+1:i+1+n])]; ok {
				evs = append(evs, ev)
			} else {
				log.ModInput.DebugZ("unknown escape sequence").Blob("seq", buf[i:i+1+n]).End()
			}
			i += n
		case b < 0x80:
			evs = append(evs, Event{Kind: EventKey, Key: translateKey(b)})
		}
	}
	return evs
}

// escapeLen returns the length of the escape sequence in seq, which starts
// right after ESC with '[' or 'O'.
func escapeLen(seq []byte) int {
	if seq[0] == 'O' {
		return min(2, len(seq))
	}
	// CSI: parameters then a final byte in 0x40-0x7E.
	for i := 1; i < len(seq); i++ {
		if seq[i] >= 0x40 && seq[i] <= 0x7E {
			return i + 1
		}
	}
	return len(seq)
}

// Terminal is the host side of the emulator: it reads keys from the input
// terminal, set in raw mode, and draws the text screen on the output.
type Terminal struct {
	in  io.Reader
	out io.Writer

	events  chan Event
	stopped sync.Once

	fd       int
	oldState *term.State
}

// NewTerminal creates a terminal reading from in and drawing on out. When in
// is an interactive terminal it's set in raw mode by Start.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:     in,
		out:    out,
		events: make(chan Event, 64),
		fd:     -1,
	}
}

// Events returns the channel of decoded input events. It's closed when the
// input reaches EOF.
func (t *Terminal) Events() <-chan Event { return t.events }

// Start puts the terminal in raw mode, if it's one, and starts reading input.
func (t *Terminal) Start() error {
	if f, ok := t.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
		st, err := term.MakeRaw(t.fd)
		if err != nil {
			return fmt.Errorf("terminal raw mode: %w", err)
		}
		t.oldState = st
		fmt.Fprint(t.out, "\x1b[?25l\x1b[2J")
	}

	go t.readLoop()
	return nil
}

func (t *Terminal) readLoop() {
	defer close(t.events)

	buf := make([]byte, 64)
	for {
		n, err := t.in.Read(buf)
		for _, ev := range DecodeInput(buf[:n]) {
			t.events <- ev
		}
		if err != nil {
			if err != io.EOF {
				log.ModInput.WarnZ("terminal read error").Error("err", err).End()
			}
			return
		}
	}
}

// Stop restores the terminal state.
func (t *Terminal) Stop() {
	t.stopped.Do(func() {
		if t.oldState == nil {
			return
		}
		fmt.Fprint(t.out, "\x1b[?25h\r\n")
		if err := term.Restore(t.fd, t.oldState); err != nil {
			log.ModEmu.WarnZ("failed to restore terminal").Error("err", err).End()
		}
		t.oldState = nil
	})
}

// Draw draws the text screen.
func (t *Terminal) Draw(text []uint8, chunky [hw.TextSize]bool) {
	t.out.Write(RenderText(text, chunky))
}

// RenderText renders the text screen as a block of lines, led by a cursor
// home sequence. Chunky graphics cells are drawn with braille patterns, which
// have the same 2x4 pixel layout.
func RenderText(text []uint8, chunky [hw.TextSize]bool) []byte {
	buf := make([]byte, 0, hw.TextSize*3+hw.TextRows*2+3)
	buf = append(buf, "\x1b[H"...)
	for row := range hw.TextRows {
		for col := range hw.TextCols {
			i := row*hw.TextCols + col
			if chunky[i] {
				buf = append(buf, string(chunkyRune(text[i]))...)
				continue
			}
			c := text[i] & 0x7F
			if c < 0x20 || c == 0x7F {
				c = ' '
			}
			buf = append(buf, c)
		}
		buf = append(buf, '\r', '\n')
	}
	return buf
}

// braille dot of each chunky pixel, by row then column.
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// chunkyRune returns the braille pattern of a chunky graphics character: bit
// 2*row is the left pixel of a row, bit 2*row+1 the right one.
func chunkyRune(c uint8) rune {
	r := rune(0x2800)
	for row := range 4 {
		for col := range 2 {
			if c&(1<<(2*row+col)) != 0 {
				r |= brailleDots[row][col]
			}
		}
	}
	return r
}
