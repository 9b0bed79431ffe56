package cpu

import "github.com/jmchacon/mcs51/memory"

// regAddr resolves the RAM byte address behind INC/DEC's "Rn" operand: the
// working registers are ordinary RAM cells in this model.
func regAddr(n uint8) uint8 { return memory.R0Base + n }

// opFunc is the shape every opcode handler takes: given the chip (with PC
// already past the opcode byte itself), consume whatever operand bytes the
// instruction needs and perform its effect.
type opFunc func(c *Chip)

// opNOP implements NOP (0x00) and also stands in for the six MOVX opcodes
// (0xE0/0xE2/0xE3/0xF0/0xF2/0xF3) and the reserved opcode 0xA5: none of
// them have an external data memory to act on here (see DESIGN.md), and
// since every real MOVX encoding is a single byte with no operand, treating
// them as a no-op keeps ROM decoding correctly aligned for any program that
// contains one.
func opNOP(c *Chip) {}

// buildDispatch fills in all 256 entries of the opcode table. Unlike the
// teacher's per-Tick giant switch, this assembles a flat jump table once at
// construction time, matching spec.md's own guidance to prefer a
// data-driven dispatch over a type switch for this instruction set.
func buildDispatch(d *[256]opFunc) {
	for i := range d {
		d[i] = opNOP
	}

	d[0x00] = opNOP
	d[0x02] = opLJMP
	d[0x03] = opRR
	d[0x04] = opIncAddr(memory.ACC)
	d[0x05] = opIncDirect
	d[0x06] = opIncIndirect(0)
	d[0x07] = opIncIndirect(1)
	d[0x10] = opJBC
	d[0x12] = opLCALL
	d[0x13] = opRRC
	d[0x14] = opDecAddr(memory.ACC)
	d[0x15] = opDecDirect
	d[0x16] = opDecIndirect(0)
	d[0x17] = opDecIndirect(1)
	d[0x20] = opJB
	d[0x22] = opRET
	d[0x23] = opRL
	d[0x24] = opImm((*Chip).doADD)
	d[0x25] = opDirect((*Chip).doADD)
	d[0x26] = opInd(0, (*Chip).doADD)
	d[0x27] = opInd(1, (*Chip).doADD)
	d[0x30] = opJNB
	d[0x32] = opRETI
	d[0x33] = opRLC
	d[0x34] = opImm((*Chip).doADDC)
	d[0x35] = opDirect((*Chip).doADDC)
	d[0x36] = opInd(0, (*Chip).doADDC)
	d[0x37] = opInd(1, (*Chip).doADDC)
	d[0x40] = opJC
	d[0x42] = opLogicDirectA(bitOr)
	d[0x43] = opLogicDirectImm(bitOr)
	d[0x44] = opImm((*Chip).doORL)
	d[0x45] = opDirect((*Chip).doORL)
	d[0x46] = opInd(0, (*Chip).doORL)
	d[0x47] = opInd(1, (*Chip).doORL)
	d[0x50] = opJNC
	d[0x52] = opLogicDirectA(bitAnd)
	d[0x53] = opLogicDirectImm(bitAnd)
	d[0x54] = opImm((*Chip).doANL)
	d[0x55] = opDirect((*Chip).doANL)
	d[0x56] = opInd(0, (*Chip).doANL)
	d[0x57] = opInd(1, (*Chip).doANL)
	d[0x60] = opJZ
	d[0x62] = opLogicDirectA(bitXor)
	d[0x63] = opLogicDirectImm(bitXor)
	d[0x64] = opImm((*Chip).doXRL)
	d[0x65] = opDirect((*Chip).doXRL)
	d[0x66] = opInd(0, (*Chip).doXRL)
	d[0x67] = opInd(1, (*Chip).doXRL)
	d[0x70] = opJNZ
	d[0x72] = opORLCbit
	d[0x73] = opJMPDPTR
	d[0x74] = opMovAImm
	d[0x75] = opMovDirectImm
	d[0x76] = opMovIndImm(0)
	d[0x77] = opMovIndImm(1)
	d[0x80] = opSJMP
	d[0x82] = opANLCbit
	d[0x83] = opMOVCPC
	d[0x84] = opDIV
	d[0x85] = opMovDirectDirect
	d[0x86] = opMovDirectInd(0)
	d[0x87] = opMovDirectInd(1)
	d[0x90] = opMovDPTRImm
	d[0x92] = opMOVbitC
	d[0x93] = opMOVCDPTR
	d[0x94] = opImm((*Chip).doSUBB)
	d[0x95] = opDirect((*Chip).doSUBB)
	d[0x96] = opInd(0, (*Chip).doSUBB)
	d[0x97] = opInd(1, (*Chip).doSUBB)
	d[0xA0] = opORLCNotBit
	d[0xA2] = opMOVCbit
	d[0xA3] = opIncDPTR
	d[0xA4] = opMUL
	d[0xA5] = opNOP
	d[0xA6] = opMovIndDirect(0)
	d[0xA7] = opMovIndDirect(1)
	d[0xB0] = opANLCNotBit
	d[0xB2] = opCPLbit
	d[0xB3] = opCPLC
	d[0xB4] = opCJNEAImm
	d[0xB5] = opCJNEADirect
	d[0xB6] = opCJNEIndImm(0)
	d[0xB7] = opCJNEIndImm(1)
	d[0xC0] = opPUSH
	d[0xC2] = opCLRbit
	d[0xC3] = opCLRC
	d[0xC4] = opSWAP
	d[0xC5] = opXCHDirect
	d[0xC6] = opXCHInd(0)
	d[0xC7] = opXCHInd(1)
	d[0xD0] = opPOP
	d[0xD2] = opSETBbit
	d[0xD3] = opSETBC
	d[0xD4] = opDAA
	d[0xD5] = opDJNZDirect
	d[0xD6] = opXCHD(0)
	d[0xD7] = opXCHD(1)
	d[0xE0] = opNOP
	d[0xE2] = opNOP
	d[0xE3] = opNOP
	d[0xE4] = opCLRA
	d[0xE5] = opMovADirect
	d[0xE6] = opMovAInd(0)
	d[0xE7] = opMovAInd(1)
	d[0xF0] = opNOP
	d[0xF2] = opNOP
	d[0xF3] = opNOP
	d[0xF4] = opCPLA
	d[0xF5] = opMovDirectA
	d[0xF6] = opMovIndA(0)
	d[0xF7] = opMovIndA(1)

	for n := uint8(0); n < 8; n++ {
		d[0x08+n] = opIncAddr(regAddr(n))
		d[0x18+n] = opDecAddr(regAddr(n))
		d[0x28+n] = opRn(n, (*Chip).doADD)
		d[0x38+n] = opRn(n, (*Chip).doADDC)
		d[0x48+n] = opRn(n, (*Chip).doORL)
		d[0x58+n] = opRn(n, (*Chip).doANL)
		d[0x68+n] = opRn(n, (*Chip).doXRL)
		d[0x78+n] = opMovRnImm(n)
		d[0x88+n] = opMovDirectRn(n)
		d[0x98+n] = opRn(n, (*Chip).doSUBB)
		d[0xA8+n] = opMovRnDirect(n)
		d[0xB8+n] = opCJNERnImm(n)
		d[0xC8+n] = opXCHRn(n)
		d[0xD8+n] = opDJNZRn(n)
		d[0xE8+n] = opMovARn(n)
		d[0xF8+n] = opMovRnA(n)
	}

	for page := uint8(0); page < 8; page++ {
		d[page*0x20+0x01] = opAJMP(page)
		d[page*0x20+0x11] = opACALL(page)
	}
}
