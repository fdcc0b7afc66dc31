package hw

import (
	"fmt"
	"io"
)

// cpuState stores the CPU state for the execution trace.
type cpuState struct {
	A, X, Y uint8
	P       P
	SP      uint8
	PC      uint16

	Clock int64
}

type disasmer interface {
	Disasm(pc uint16) DisasmOp
}

type tracer struct {
	d disasmer
	w io.Writer
}

const hexDigits = "0123456789ABCDEF"

func appendHex(buf []byte, v byte) []byte {
	return append(buf, hexDigits[v>>4], hexDigits[v&0x0f])
}

// appendReg appends "name:HH ".
func appendReg(buf []byte, name byte, v uint8) []byte {
	return append(appendHex(append(buf, name, ':'), v), ' ')
}

// write the execution trace line of the instruction about to be executed.
func (t *tracer) write(state cpuState) {
	const regsCol = 49

	dis := t.d.Disasm(state.PC)
	buf := pad(append(make([]byte, 0, 96), dis.Bytes()...), regsCol)

	buf = appendReg(buf, 'A', state.A)
	buf = appendReg(buf, 'X', state.X)
	buf = appendReg(buf, 'Y', state.Y)
	buf = appendReg(buf, 'P', uint8(state.P))
	buf = appendReg(buf, 'S', state.SP)
	buf = fmt.Appendf(buf, "CYC:%d\n", state.Clock)
	t.w.Write(buf)
}

type DisasmOp struct {
	Opcode string
	Oper   string
	Buf    []byte
	PC     uint16
}

// Bytes formats the instruction the way the execution trace shows it: the
// address, the raw bytes, then the mnemonic and operand, padded to a fixed
// width so that the registers line up.
func (d DisasmOp) Bytes() []byte {
	const (
		mnemonicCol = 16
		width       = 48
	)

	buf := make([]byte, 0, width+8)
	buf = appendHex(buf, byte(d.PC>>8))
	buf = appendHex(buf, byte(d.PC))
	buf = append(buf, ' ', ' ')
	for _, b := range d.Buf {
		buf = append(appendHex(buf, b), ' ')
	}
	buf = pad(buf, mnemonicCol)

	buf = append(buf, d.Opcode...)
	buf = append(buf, ' ')
	buf = append(buf, d.Oper...)
	if len(buf) > width {
		return append(buf, ' ')
	}
	return pad(buf, width)
}

func pad(buf []byte, col int) []byte {
	for len(buf) < col {
		buf = append(buf, ' ')
	}
	return buf
}
