package hw

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func BenchmarkDisasmOpString(b *testing.B) {
	const want = `C000  4C F5 C5  JMP $C5F5         `

	op := DisasmOp{
		Opcode: "JMP",
		Oper:   "$C5F5",
		Buf:    []byte{0x4c, 0xf5, 0xc5},
		PC:     0xC000,
	}

	var opbytes []byte
	for range b.N {
		opbytes = op.Bytes()
	}

	if !strings.HasPrefix(string(opbytes), want) {
		b.Fatalf("\ngot:  \"%s\"\nwant: \"%s\"\n", string(opbytes), want)
	}
}

type dummyDisasm map[uint16]DisasmOp

func (dd dummyDisasm) Disasm(pc uint16) DisasmOp {
	return dd[pc]
}

var traceOps = dummyDisasm{
	0xC052: DisasmOp{
		PC:     0xC052,
		Buf:    []byte{0xA9, 0x32},
		Opcode: "LDA",
		Oper:   "#$32",
	},
	0xC054: DisasmOp{
		PC:     0xC054,
		Buf:    []byte{0x20, 0xEE, 0xC0},
		Opcode: "JSR",
		Oper:   "$C0EE",
	},
}

func TestTraceFormat(t *testing.T) {
	want := []string{
		`C052  A9 32     LDA #$32                         A:00 X:01 Y:00 P:27 S:F4 CYC:8`,
		`C054  20 EE C0  JSR $C0EE                        A:32 X:01 Y:00 P:25 S:F4 CYC:11`,
	}

	var out bytes.Buffer
	tr := tracer{d: traceOps, w: &out}

	tr.write(cpuState{
		PC: 0xC052,
		A:  0x00, X: 0x01, Y: 0x00, P: P(0x27), SP: 0xF4,
		Clock: 8,
	})
	tr.write(cpuState{
		PC: 0xC054,
		A:  0x32, X: 0x01, Y: 0x00, P: P(0x25), SP: 0xF4,
		Clock: 11,
	})

	wantstr := strings.Join(want, "\n") + "\n"
	if out.String() != wantstr {
		t.Fatalf("trace differs\ngot:\n%s\nwant:\n%s\n", out.String(), wantstr)
	}
}

func TestCPUTrace(t *testing.T) {
	cpu := newBareCPU(
		0xA9, 0x32, // LDA #$32
		0x8D, 0xC4, 0xBF, // STA $BFC4
		0xD0, 0xFE, // BNE *
		0x3A, // DEC A
	)

	var out bytes.Buffer
	cpu.SetTraceOutput(&out)
	cpu.steps(3)
	cpu.SetTraceOutput(nil)
	cpu.Step()

	var got []string
	for _, line := range strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n") {
		got = append(got, strings.Join(strings.Fields(line), " "))
	}
	want := []string{
		"0400 A9 32 LDA #$32 A:00 X:00 Y:00 P:20 S:FF CYC:0",
		"0402 8D C4 BF STA Via0_T1CL A:32 X:00 Y:00 P:20 S:FF CYC:3",
		"0405 D0 FE BNE $0405 A:32 X:00 Y:00 P:20 S:FF CYC:7",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func BenchmarkTraceFormat(b *testing.B) {
	tr := tracer{d: traceOps, w: io.Discard}
	s1 := cpuState{
		PC: 0xC052,
		A:  0x00, X: 0x01, Y: 0x00, P: P(0x27), SP: 0xF4,
		Clock: 8,
	}
	s2 := cpuState{
		PC: 0xC054,
		A:  0x32, X: 0x01, Y: 0x00, P: P(0x25), SP: 0xF4,
		Clock: 11,
	}

	for range b.N {
		tr.write(s1)
		tr.write(s2)
	}
}
