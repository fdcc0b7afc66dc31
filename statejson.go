package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/go-faster/jx"

	"microtan/hw"
	"microtan/hw/snapshot"
)

var hiresBoardNames = [snapshot.NumHiresBoards]string{"red", "green", "blue", "intensity"}

// stateInfoMain prints the content of a save state file.
func stateInfoMain(args StateInfo, w io.Writer) error {
	st, err := snapshot.ReadFile(args.Path)
	if err != nil {
		return err
	}
	if args.JSON {
		_, err = w.Write(encodeStateJSON(st))
		return err
	}
	return printStateInfo(w, st)
}

func stateFormat(st *snapshot.M65) string {
	if st.Legacy {
		return "legacy"
	}
	return fmt.Sprintf("v%d", st.Version)
}

func countChunky(st *snapshot.M65) int {
	n := 0
	for _, b := range st.ChunkyBits {
		if b {
			n++
		}
	}
	return n
}

func countNonZero(buf []uint8) int {
	n := 0
	for _, b := range buf {
		if b != 0 {
			n++
		}
	}
	return n
}

func printStateInfo(w io.Writer, st *snapshot.M65) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "format:       %s\n", stateFormat(st))
	fmt.Fprintf(&sb, "memory:       %d bytes\n", len(st.Memory))
	fmt.Fprintf(&sb, "cpu:          PC=%04X A=%02X X=%02X Y=%02X SP=%02X P=%s\n",
		st.CPU.PC, st.CPU.A, st.CPU.X, st.CPU.Y, st.CPU.SP, hw.P(st.CPU.P))
	fmt.Fprintf(&sb, "chunky cells: %d\n", countChunky(st))

	if !st.Legacy {
		fmt.Fprintf(&sb, "chunky mode:  %t\n", st.Chunky)
		fmt.Fprintf(&sb, "display ctl:  %02X\n", st.DisplayCtl)
		fmt.Fprintf(&sb, "via 0:        % X\n", st.VIA[0][:])
		fmt.Fprintf(&sb, "via 1:        % X\n", st.VIA[1][:])
		fmt.Fprintf(&sb, "keyboard:     % X\n", st.Keyboard[:])
		fmt.Fprintf(&sb, "ay:           % X\n", st.AY[:])
		if st.Hires != nil {
			for i, name := range hiresBoardNames {
				fmt.Fprintf(&sb, "hires %-9s %d bytes set\n", name+":", countNonZero(st.Hires[i][:]))
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func hex8(e *jx.Encoder, v uint8)   { e.Str(fmt.Sprintf("%02X", v)) }
func hex16(e *jx.Encoder, v uint16) { e.Str(fmt.Sprintf("%04X", v)) }

// encodeStateJSON encodes a summary of a save state as JSON. Register blocks
// are hex strings.
func encodeStateJSON(st *snapshot.M65) []byte {
	var e jx.Encoder
	e.SetIdent(2)

	e.Obj(func(e *jx.Encoder) {
		e.Field("format", func(e *jx.Encoder) { e.Str(stateFormat(st)) })
		e.Field("legacy", func(e *jx.Encoder) { e.Bool(st.Legacy) })
		e.Field("version", func(e *jx.Encoder) { e.Int(int(st.Version)) })
		e.Field("memory_size", func(e *jx.Encoder) { e.Int(len(st.Memory)) })
		e.Field("cpu", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("pc", func(e *jx.Encoder) { hex16(e, st.CPU.PC) })
				e.Field("a", func(e *jx.Encoder) { hex8(e, st.CPU.A) })
				e.Field("x", func(e *jx.Encoder) { hex8(e, st.CPU.X) })
				e.Field("y", func(e *jx.Encoder) { hex8(e, st.CPU.Y) })
				e.Field("sp", func(e *jx.Encoder) { hex8(e, st.CPU.SP) })
				e.Field("p", func(e *jx.Encoder) { hex8(e, st.CPU.P) })
				e.Field("flags", func(e *jx.Encoder) { e.Str(hw.P(st.CPU.P).String()) })
			})
		})
		e.Field("chunky_cells", func(e *jx.Encoder) { e.Int(countChunky(st)) })

		if st.Legacy {
			return
		}
		e.Field("chunky_mode", func(e *jx.Encoder) { e.Bool(st.Chunky) })
		e.Field("display_ctl", func(e *jx.Encoder) { hex8(e, st.DisplayCtl) })
		e.Field("via", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range st.VIA {
					e.Str(strings.ToUpper(hex.EncodeToString(st.VIA[i][:])))
				}
			})
		})
		e.Field("keyboard", func(e *jx.Encoder) { e.Str(strings.ToUpper(hex.EncodeToString(st.Keyboard[:]))) })
		e.Field("ay", func(e *jx.Encoder) { e.Str(strings.ToUpper(hex.EncodeToString(st.AY[:]))) })
		if st.Hires != nil {
			e.Field("hires", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					for i, name := range hiresBoardNames {
						e.Field(name, func(e *jx.Encoder) { e.Int(countNonZero(st.Hires[i][:])) })
					}
				})
			})
		}
	})
	return append(e.Bytes(), '\n')
}
