package hw

import "fmt"

// Disasm disassembles the instruction at pc without side effects.
func (c *CPU) Disasm(pc uint16) DisasmOp {
	op := &opcodes[c.Bus.Peek8(pc)]

	n := op.mode.length()
	buf := make([]byte, n)
	for i := range n {
		buf[i] = c.Bus.Peek8(pc + uint16(i))
	}

	var oper16 uint16
	if n == 3 {
		oper16 = uint16(buf[2])<<8 | uint16(buf[1])
	}

	var oper string
	switch op.mode {
	case acc:
		oper = "A"
	case imm:
		oper = fmt.Sprintf("#$%02X", buf[1])
	case zpg:
		oper = fmt.Sprintf("$%02X", buf[1])
	case zpx:
		oper = fmt.Sprintf("$%02X,X", buf[1])
	case zpy:
		oper = fmt.Sprintf("$%02X,Y", buf[1])
	case abs:
		oper = formatAddr(oper16)
	case abx:
		oper = formatAddr(oper16) + ",X"
	case aby:
		oper = formatAddr(oper16) + ",Y"
	case ind:
		oper = "(" + formatAddr(oper16) + ")"
	case izx:
		oper = fmt.Sprintf("($%02X,X)", buf[1])
	case izy:
		oper = fmt.Sprintf("($%02X),Y", buf[1])
	case izp:
		oper = fmt.Sprintf("($%02X)", buf[1])
	case iax:
		oper = "(" + formatAddr(oper16) + ",X)"
	case rel:
		oper = fmt.Sprintf("$%04X", pc+2+uint16(int8(buf[1])))
	}

	return DisasmOp{
		PC:     pc,
		Buf:    buf,
		Opcode: op.name.String(),
		Oper:   oper,
	}
}

var addressLabels = map[uint16]string{
	0xBFC0: "Via0_ORB",
	0xBFC1: "Via0_ORA",
	0xBFC4: "Via0_T1CL",
	0xBFC5: "Via0_T1CH",
	0xBFCB: "Via0_ACR",
	0xBFCD: "Via0_IFR",
	0xBFCE: "Via0_IER",
	0xBFE0: "Via1_ORB",
	0xBFE1: "Via1_ORA",
	0xBFE4: "Via1_T1CL",
	0xBFE5: "Via1_T1CH",
	0xBFEB: "Via1_ACR",
	0xBFED: "Via1_IFR",
	0xBFEE: "Via1_IER",
	0xBFF0: "KbdIRQ_Chunky",
	0xBFF1: "DelayedNMI",
	0xBFF2: "KbdRow",
	0xBFF3: "KbdData",
}

func formatAddr(addr uint16) string {
	if label, ok := addressLabels[addr]; ok {
		return label
	}
	return fmt.Sprintf("$%04X", addr)
}
