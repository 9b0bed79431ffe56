package cpu

import "github.com/jmchacon/mcs51/memory"

// opMovAImm implements MOV A,#data (0x74).
func opMovAImm(c *Chip) {
	c.ram.Write(memory.ACC, c.fetch8())
}

// opMovDirectImm implements MOV direct,#data (0x75).
func opMovDirectImm(c *Chip) {
	addr := c.fetch8()
	c.ram.Write(addr, c.fetch8())
}

// opMovIndImm implements MOV @Ri,#data (0x76/0x77).
func opMovIndImm(n uint8) opFunc {
	return func(c *Chip) {
		val := c.fetch8()
		c.ram.Write(c.indirectAddr(n), val)
	}
}

// opMovRnImm implements MOV Rn,#data (0x78-0x7F).
func opMovRnImm(n uint8) opFunc {
	return func(c *Chip) {
		c.ram.SetR(n, c.fetch8())
	}
}

// opMovDirectDirect implements MOV direct1,direct2 (0x85). The encoding is
// src address first, destination address second.
func opMovDirectDirect(c *Chip) {
	src := c.fetch8()
	dst := c.fetch8()
	c.ram.Write(dst, c.ram.Read(src))
}

// opMovDirectInd implements MOV direct,@Ri (0x86/0x87).
func opMovDirectInd(n uint8) opFunc {
	return func(c *Chip) {
		dst := c.fetch8()
		c.ram.Write(dst, c.ram.Read(c.indirectAddr(n)))
	}
}

// opMovDirectRn implements MOV direct,Rn (0x88-0x8F).
func opMovDirectRn(n uint8) opFunc {
	return func(c *Chip) {
		dst := c.fetch8()
		c.ram.Write(dst, c.ram.R(n))
	}
}

// opMovIndDirect implements MOV @Ri,direct (0xA6/0xA7).
func opMovIndDirect(n uint8) opFunc {
	return func(c *Chip) {
		src := c.fetch8()
		c.ram.Write(c.indirectAddr(n), c.ram.Read(src))
	}
}

// opMovRnDirect implements MOV Rn,direct (0xA8-0xAF).
func opMovRnDirect(n uint8) opFunc {
	return func(c *Chip) {
		src := c.fetch8()
		c.ram.SetR(n, c.ram.Read(src))
	}
}

// opMovADirect implements MOV A,direct (0xE5).
func opMovADirect(c *Chip) {
	addr := c.fetch8()
	c.ram.Write(memory.ACC, c.ram.Read(addr))
}

// opMovAInd implements MOV A,@Ri (0xE6/0xE7).
func opMovAInd(n uint8) opFunc {
	return func(c *Chip) {
		c.ram.Write(memory.ACC, c.ram.Read(c.indirectAddr(n)))
	}
}

// opMovARn implements MOV A,Rn (0xE8-0xEF).
func opMovARn(n uint8) opFunc {
	return func(c *Chip) {
		c.ram.Write(memory.ACC, c.ram.R(n))
	}
}

// opMovDirectA implements MOV direct,A (0xF5).
func opMovDirectA(c *Chip) {
	addr := c.fetch8()
	c.ram.Write(addr, c.ram.Read(memory.ACC))
}

// opMovIndA implements MOV @Ri,A (0xF6/0xF7).
func opMovIndA(n uint8) opFunc {
	return func(c *Chip) {
		c.ram.Write(c.indirectAddr(n), c.ram.Read(memory.ACC))
	}
}

// opMovRnA implements MOV Rn,A (0xF8-0xFF).
func opMovRnA(n uint8) opFunc {
	return func(c *Chip) {
		c.ram.SetR(n, c.ram.Read(memory.ACC))
	}
}

// opMovDPTRImm implements MOV DPTR,#data16 (0x90).
func opMovDPTRImm(c *Chip) {
	c.ram.SetDPTR(c.fetch16())
}

// opMOVCPC implements MOVC A,@A+PC (0x83): PC is advanced an extra step
// beyond the one the main fetch loop already did for this one-byte
// instruction, then ACC <- ROM[ACC+PC]. This second increment is a real
// quirk of this addressing mode, not a typo: spec.md §4.C calls it out
// explicitly ("advance PC, then ACC <- ROM[ACC+PC]"), and
// original_source/cpu.cpp's opcode_83 performs the same extra `++pc`
// before the table read.
func opMOVCPC(c *Chip) {
	c.pc++
	a := c.ram.Read(memory.ACC)
	addr := c.pc + uint16(a)
	c.ram.Write(memory.ACC, c.rom.Read(addr))
}

// opMOVCDPTR implements MOVC A,@A+DPTR (0x93).
func opMOVCDPTR(c *Chip) {
	a := c.ram.Read(memory.ACC)
	addr := c.ram.DPTR() + uint16(a)
	c.ram.Write(memory.ACC, c.rom.Read(addr))
}

// opXCHDirect implements XCH A,direct (0xC5).
func opXCHDirect(c *Chip) {
	addr := c.fetch8()
	a := c.ram.Read(memory.ACC)
	c.ram.Write(memory.ACC, c.ram.Read(addr))
	c.ram.Write(addr, a)
}

// opXCHInd implements XCH A,@Ri (0xC6/0xC7).
func opXCHInd(n uint8) opFunc {
	return func(c *Chip) {
		addr := c.indirectAddr(n)
		a := c.ram.Read(memory.ACC)
		c.ram.Write(memory.ACC, c.ram.Read(addr))
		c.ram.Write(addr, a)
	}
}

// opXCHRn implements XCH A,Rn (0xC8-0xCF).
func opXCHRn(n uint8) opFunc {
	return func(c *Chip) {
		a := c.ram.Read(memory.ACC)
		c.ram.Write(memory.ACC, c.ram.R(n))
		c.ram.SetR(n, a)
	}
}

// opXCHD implements XCHD A,@Ri (0xD6/0xD7): exchanges only the low nibble
// of ACC with the low nibble of the addressed byte.
func opXCHD(n uint8) opFunc {
	return func(c *Chip) {
		addr := c.indirectAddr(n)
		a := c.ram.Read(memory.ACC)
		m := c.ram.Read(addr)
		c.ram.Write(memory.ACC, (a&0xF0)|(m&0x0F))
		c.ram.Write(addr, (m&0xF0)|(a&0x0F))
	}
}

// opSWAP implements SWAP A (0xC4): exchanges the nibbles of ACC.
func opSWAP(c *Chip) {
	a := c.ram.Read(memory.ACC)
	c.ram.Write(memory.ACC, (a<<4)|(a>>4))
}
