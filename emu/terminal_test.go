package emu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"microtan/hw"
)

func key(b uint8) Event { return Event{Kind: EventKey, Key: b} }

func TestDecodeInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Event
	}{
		{"letters", "aB1", []Event{key('A'), key('b'), key('1')}},
		{"enter", "\r", []Event{key(0x0D)}},
		{"backspace", "\x08\x7f", []Event{key(0x7F), key(0x7F)}},
		{"control", "\x03", []Event{key(0x03)}},
		{"lone escape", "\x1b", []Event{key(0x1B)}},
		{"escape then key", "\x1bx", []Event{key(0x1B), key('X')}},
		{"quit", "a\x1d", []Event{key('A'), {Kind: EventQuit}}},
		{"arrows", "\x1b[A\x1b[D\x1bOC", []Event{
			{Kind: EventJoystick, Joy: hw.JoyUp},
			{Kind: EventJoystick, Joy: hw.JoyLeft},
			{Kind: EventJoystick, Joy: hw.JoyRight},
		}},
		{"function keys", "\x1bOQ\x1bOR\x1b[15~", []Event{
			{Kind: EventHexKeypad},
			{Kind: EventKeyboard},
			{Kind: EventReset},
		}},
		{"unknown sequence", "\x1b[1;5Az", []Event{key('Z')}},
		{"truncated sequence", "\x1b[", nil},
		{"non ascii", "\xc3\xa9", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeInput([]byte(tt.in))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DecodeInput(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestTerminalEvents(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("hi\x1b[B"), &out)
	if err := term.Start(); err != nil {
		t.Fatal(err)
	}
	defer term.Stop()

	var got []Event
	for ev := range term.Events() {
		got = append(got, ev)
	}
	want := []Event{key('H'), key('I'), {Kind: EventJoystick, Joy: hw.JoyDown}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if out.Len() != 0 {
		t.Errorf("non-interactive terminal wrote %q", out.String())
	}
}

func TestChunkyRune(t *testing.T) {
	tests := []struct {
		c    uint8
		want rune
	}{
		{0x00, '⠀'},
		{0x01, '⠁'},
		{0x02, '⠈'},
		{0x03, '⠉'},
		{0x40, '⡀'},
		{0x80, '⢀'},
		{0xFF, '⣿'},
	}
	for _, tt := range tests {
		if got := chunkyRune(tt.c); got != tt.want {
			t.Errorf("chunkyRune(%02X) = %U, want %U", tt.c, got, tt.want)
		}
	}
}

func TestRenderText(t *testing.T) {
	text := make([]uint8, hw.TextSize)
	for i := range text {
		text[i] = ' '
	}
	copy(text, "HELLO")
	text[hw.TextCols] = 0xC1 // 'A' with bit 7 set
	text[hw.TextCols+1] = 0x07
	text[hw.TextSize-1] = 0xFF

	var chunky [hw.TextSize]bool
	chunky[hw.TextSize-1] = true

	lines := strings.Split(strings.TrimPrefix(string(RenderText(text, chunky)), "\x1b[H"), "\r\n")
	if len(lines) != hw.TextRows+1 || lines[hw.TextRows] != "" {
		t.Fatalf("got %d lines, want %d", len(lines)-1, hw.TextRows)
	}

	want := map[int]string{
		0:               "HELLO" + strings.Repeat(" ", hw.TextCols-5),
		1:               "A " + strings.Repeat(" ", hw.TextCols-2),
		hw.TextRows - 1: strings.Repeat(" ", hw.TextCols-1) + "⣿",
	}
	for row, line := range want {
		if lines[row] != line {
			t.Errorf("row %d = %q, want %q", row, lines[row], line)
		}
	}
}
