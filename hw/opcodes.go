package hw

//go:generate go tool stringer -type=mnemonic -trimprefix=op

// mnemonic identifies the operation performed by an opcode.
type mnemonic uint8

const (
	opADC mnemonic = iota
	opAND
	opASL
	opBCC
	opBCS
	opBEQ
	opBIT
	opBMI
	opBNE
	opBPL
	opBRA
	opBRK
	opBVC
	opBVS
	opCLC
	opCLD
	opCLI
	opCLV
	opCMP
	opCPX
	opCPY
	opDEC
	opDEX
	opDEY
	opEOR
	opINC
	opINX
	opINY
	opJMP
	opJSR
	opLDA
	opLDX
	opLDY
	opLSR
	opNOP
	opORA
	opPHA
	opPHP
	opPHX
	opPHY
	opPLA
	opPLP
	opPLX
	opPLY
	opROL
	opROR
	opRTI
	opRTS
	opSBC
	opSEC
	opSED
	opSEI
	opSTA
	opSTX
	opSTY
	opSTZ
	opTAX
	opTAY
	opTRB
	opTSB
	opTSX
	opTXA
	opTXS
	opTYA
)

// addrMode is the addressing mode of an opcode, it determines how the operand
// is fetched and the instruction length.
type addrMode uint8

const (
	imp addrMode = iota // implied
	acc                 // accumulator
	imm                 // #$nn
	zpg                 // $nn
	zpx                 // $nn,X
	zpy                 // $nn,Y
	abs                 // $nnnn
	abx                 // $nnnn,X
	aby                 // $nnnn,Y
	ind                 // ($nnnn)
	izx                 // ($nn,X)
	izy                 // ($nn),Y
	izp                 // ($nn)
	iax                 // ($nnnn,X)
	rel                 // branch target
)

// length returns the number of bytes of an instruction using this mode.
func (m addrMode) length() int {
	switch m {
	case imp, acc:
		return 1
	case abs, abx, aby, ind, iax:
		return 3
	}
	return 2
}

type opdef struct {
	name   mnemonic
	mode   addrMode
	cycles uint8 // base cost, before page-crossing and branch penalties
}

// opcodes is the 65C02 subset of the Microtan 65 CPU. Undefined opcodes behave
// as a 2-cycle BRK.
var opcodes = [256]opdef{
	0x00: {opBRK, imp, 7},
	0x01: {opORA, izx, 6},
	0x02: {opBRK, imp, 2}, // undefined
	0x03: {opBRK, imp, 2}, // undefined
	0x04: {opTSB, zpg, 3},
	0x05: {opORA, zpg, 3},
	0x06: {opASL, zpg, 5},
	0x07: {opBRK, imp, 2}, // undefined
	0x08: {opPHP, imp, 3},
	0x09: {opORA, imm, 3},
	0x0A: {opASL, acc, 2},
	0x0B: {opBRK, imp, 2}, // undefined
	0x0C: {opTSB, abs, 4},
	0x0D: {opORA, abs, 4},
	0x0E: {opASL, abs, 6},
	0x0F: {opBRK, imp, 2}, // undefined
	0x10: {opBPL, rel, 2},
	0x11: {opORA, izy, 5},
	0x12: {opORA, izp, 3},
	0x13: {opBRK, imp, 2}, // undefined
	0x14: {opTRB, zpg, 3},
	0x15: {opORA, zpx, 4},
	0x16: {opASL, zpx, 6},
	0x17: {opBRK, imp, 2}, // undefined
	0x18: {opCLC, imp, 2},
	0x19: {opORA, aby, 4},
	0x1A: {opINC, acc, 2},
	0x1B: {opBRK, imp, 2}, // undefined
	0x1C: {opTRB, abs, 4},
	0x1D: {opORA, abx, 4},
	0x1E: {opASL, abx, 7},
	0x1F: {opBRK, imp, 2}, // undefined
	0x20: {opJSR, abs, 6},
	0x21: {opAND, izx, 6},
	0x22: {opBRK, imp, 2}, // undefined
	0x23: {opBRK, imp, 2}, // undefined
	0x24: {opBIT, zpg, 3},
	0x25: {opAND, zpg, 3},
	0x26: {opROL, zpg, 5},
	0x27: {opBRK, imp, 2}, // undefined
	0x28: {opPLP, imp, 4},
	0x29: {opAND, imm, 3},
	0x2A: {opROL, acc, 2},
	0x2B: {opBRK, imp, 2}, // undefined
	0x2C: {opBIT, abs, 4},
	0x2D: {opAND, abs, 4},
	0x2E: {opROL, abs, 6},
	0x2F: {opBRK, imp, 2}, // undefined
	0x30: {opBMI, rel, 2},
	0x31: {opAND, izy, 5},
	0x32: {opAND, izp, 3},
	0x33: {opBRK, imp, 2}, // undefined
	0x34: {opBIT, zpx, 4},
	0x35: {opAND, zpx, 4},
	0x36: {opROL, zpx, 6},
	0x37: {opBRK, imp, 2}, // undefined
	0x38: {opSEC, imp, 2},
	0x39: {opAND, aby, 4},
	0x3A: {opDEC, acc, 2},
	0x3B: {opBRK, imp, 2}, // undefined
	0x3C: {opBIT, abx, 4},
	0x3D: {opAND, abx, 4},
	0x3E: {opROL, abx, 7},
	0x3F: {opBRK, imp, 2}, // undefined
	0x40: {opRTI, imp, 6},
	0x41: {opEOR, izx, 6},
	0x42: {opBRK, imp, 2}, // undefined
	0x43: {opBRK, imp, 2}, // undefined
	0x44: {opBRK, imp, 2}, // undefined
	0x45: {opEOR, zpg, 3},
	0x46: {opLSR, zpg, 5},
	0x47: {opBRK, imp, 2}, // undefined
	0x48: {opPHA, imp, 3},
	0x49: {opEOR, imm, 3},
	0x4A: {opLSR, acc, 2},
	0x4B: {opBRK, imp, 2}, // undefined
	0x4C: {opJMP, abs, 3},
	0x4D: {opEOR, abs, 4},
	0x4E: {opLSR, abs, 6},
	0x4F: {opBRK, imp, 2}, // undefined
	0x50: {opBVC, rel, 2},
	0x51: {opEOR, izy, 5},
	0x52: {opEOR, izp, 3},
	0x53: {opBRK, imp, 2}, // undefined
	0x54: {opBRK, imp, 2}, // undefined
	0x55: {opEOR, zpx, 4},
	0x56: {opLSR, zpx, 6},
	0x57: {opBRK, imp, 2}, // undefined
	0x58: {opCLI, imp, 2},
	0x59: {opEOR, aby, 4},
	0x5A: {opPHY, imp, 3},
	0x5B: {opBRK, imp, 2}, // undefined
	0x5C: {opBRK, imp, 2}, // undefined
	0x5D: {opEOR, abx, 4},
	0x5E: {opLSR, abx, 7},
	0x5F: {opBRK, imp, 2}, // undefined
	0x60: {opRTS, imp, 6},
	0x61: {opADC, izx, 6},
	0x62: {opBRK, imp, 2}, // undefined
	0x63: {opBRK, imp, 2}, // undefined
	0x64: {opSTZ, zpg, 3},
	0x65: {opADC, zpg, 3},
	0x66: {opROR, zpg, 5},
	0x67: {opBRK, imp, 2}, // undefined
	0x68: {opPLA, imp, 4},
	0x69: {opADC, imm, 3},
	0x6A: {opROR, acc, 2},
	0x6B: {opBRK, imp, 2}, // undefined
	0x6C: {opJMP, ind, 5},
	0x6D: {opADC, abs, 4},
	0x6E: {opROR, abs, 6},
	0x6F: {opBRK, imp, 2}, // undefined
	0x70: {opBVS, rel, 2},
	0x71: {opADC, izy, 5},
	0x72: {opADC, izp, 3},
	0x73: {opBRK, imp, 2}, // undefined
	0x74: {opSTZ, zpx, 4},
	0x75: {opADC, zpx, 4},
	0x76: {opROR, zpx, 6},
	0x77: {opBRK, imp, 2}, // undefined
	0x78: {opSEI, imp, 2},
	0x79: {opADC, aby, 4},
	0x7A: {opPLY, imp, 4},
	0x7B: {opBRK, imp, 2}, // undefined
	0x7C: {opJMP, iax, 6},
	0x7D: {opADC, abx, 4},
	0x7E: {opROR, abx, 7},
	0x7F: {opBRK, imp, 2}, // undefined
	0x80: {opBRA, rel, 2},
	0x81: {opSTA, izx, 6},
	0x82: {opBRK, imp, 2}, // undefined
	0x83: {opBRK, imp, 2}, // undefined
	0x84: {opSTY, zpg, 2},
	0x85: {opSTA, zpg, 2},
	0x86: {opSTX, zpg, 2},
	0x87: {opBRK, imp, 2}, // undefined
	0x88: {opDEY, imp, 2},
	0x89: {opBIT, imm, 2},
	0x8A: {opTXA, imp, 2},
	0x8B: {opBRK, imp, 2}, // undefined
	0x8C: {opSTY, abs, 4},
	0x8D: {opSTA, abs, 4},
	0x8E: {opSTX, abs, 4},
	0x8F: {opBRK, imp, 2}, // undefined
	0x90: {opBCC, rel, 2},
	0x91: {opSTA, izy, 6},
	0x92: {opSTA, izp, 3},
	0x93: {opBRK, imp, 2}, // undefined
	0x94: {opSTY, zpx, 4},
	0x95: {opSTA, zpx, 4},
	0x96: {opSTX, zpy, 4},
	0x97: {opBRK, imp, 2}, // undefined
	0x98: {opTYA, imp, 2},
	0x99: {opSTA, aby, 5},
	0x9A: {opTXS, imp, 2},
	0x9B: {opBRK, imp, 2}, // undefined
	0x9C: {opSTZ, abs, 4},
	0x9D: {opSTA, abx, 5},
	0x9E: {opSTZ, abx, 5},
	0x9F: {opBRK, imp, 2}, // undefined
	0xA0: {opLDY, imm, 3},
	0xA1: {opLDA, izx, 6},
	0xA2: {opLDX, imm, 3},
	0xA3: {opBRK, imp, 2}, // undefined
	0xA4: {opLDY, zpg, 3},
	0xA5: {opLDA, zpg, 3},
	0xA6: {opLDX, zpg, 3},
	0xA7: {opBRK, imp, 2}, // undefined
	0xA8: {opTAY, imp, 2},
	0xA9: {opLDA, imm, 3},
	0xAA: {opTAX, imp, 2},
	0xAB: {opBRK, imp, 2}, // undefined
	0xAC: {opLDY, abs, 4},
	0xAD: {opLDA, abs, 4},
	0xAE: {opLDX, abs, 4},
	0xAF: {opBRK, imp, 2}, // undefined
	0xB0: {opBCS, rel, 2},
	0xB1: {opLDA, izy, 5},
	0xB2: {opLDA, izp, 3},
	0xB3: {opBRK, imp, 2}, // undefined
	0xB4: {opLDY, zpx, 4},
	0xB5: {opLDA, zpx, 4},
	0xB6: {opLDX, zpy, 4},
	0xB7: {opBRK, imp, 2}, // undefined
	0xB8: {opCLV, imp, 2},
	0xB9: {opLDA, aby, 4},
	0xBA: {opTSX, imp, 2},
	0xBB: {opBRK, imp, 2}, // undefined
	0xBC: {opLDY, abx, 4},
	0xBD: {opLDA, abx, 4},
	0xBE: {opLDX, aby, 4},
	0xBF: {opBRK, imp, 2}, // undefined
	0xC0: {opCPY, imm, 3},
	0xC1: {opCMP, izx, 6},
	0xC2: {opBRK, imp, 2}, // undefined
	0xC3: {opBRK, imp, 2}, // undefined
	0xC4: {opCPY, zpg, 3},
	0xC5: {opCMP, zpg, 3},
	0xC6: {opDEC, zpg, 5},
	0xC7: {opBRK, imp, 2}, // undefined
	0xC8: {opINY, imp, 2},
	0xC9: {opCMP, imm, 3},
	0xCA: {opDEX, imp, 2},
	0xCB: {opBRK, imp, 2}, // undefined
	0xCC: {opCPY, abs, 4},
	0xCD: {opCMP, abs, 4},
	0xCE: {opDEC, abs, 6},
	0xCF: {opBRK, imp, 2}, // undefined
	0xD0: {opBNE, rel, 2},
	0xD1: {opCMP, izy, 5},
	0xD2: {opCMP, izp, 3},
	0xD3: {opBRK, imp, 2}, // undefined
	0xD4: {opBRK, imp, 2}, // undefined
	0xD5: {opCMP, zpx, 4},
	0xD6: {opDEC, zpx, 6},
	0xD7: {opBRK, imp, 2}, // undefined
	0xD8: {opCLD, imp, 2},
	0xD9: {opCMP, aby, 4},
	0xDA: {opPHX, imp, 3},
	0xDB: {opBRK, imp, 2}, // undefined
	0xDC: {opBRK, imp, 2}, // undefined
	0xDD: {opCMP, abx, 4},
	0xDE: {opDEC, abx, 7},
	0xDF: {opBRK, imp, 2}, // undefined
	0xE0: {opCPX, imm, 3},
	0xE1: {opSBC, izx, 6},
	0xE2: {opBRK, imp, 2}, // undefined
	0xE3: {opBRK, imp, 2}, // undefined
	0xE4: {opCPX, zpg, 3},
	0xE5: {opSBC, zpg, 3},
	0xE6: {opINC, zpg, 5},
	0xE7: {opBRK, imp, 2}, // undefined
	0xE8: {opINX, imp, 2},
	0xE9: {opSBC, imm, 3},
	0xEA: {opNOP, imp, 2},
	0xEB: {opBRK, imp, 2}, // undefined
	0xEC: {opCPX, abs, 4},
	0xED: {opSBC, abs, 4},
	0xEE: {opINC, abs, 6},
	0xEF: {opBRK, imp, 2}, // undefined
	0xF0: {opBEQ, rel, 2},
	0xF1: {opSBC, izy, 5},
	0xF2: {opSBC, izp, 3},
	0xF3: {opBRK, imp, 2}, // undefined
	0xF4: {opBRK, imp, 2}, // undefined
	0xF5: {opSBC, zpx, 4},
	0xF6: {opINC, zpx, 6},
	0xF7: {opBRK, imp, 2}, // undefined
	0xF8: {opSED, imp, 2},
	0xF9: {opSBC, aby, 4},
	0xFA: {opPLX, imp, 4},
	0xFB: {opBRK, imp, 2}, // undefined
	0xFC: {opBRK, imp, 2}, // undefined
	0xFD: {opSBC, abx, 4},
	0xFE: {opINC, abx, 7},
	0xFF: {opBRK, imp, 2}, // undefined
}
