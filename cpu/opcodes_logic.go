package cpu

import "github.com/jmchacon/mcs51/memory"

// doORL, doANL and doXRL implement the ACC-destination forms of ORL/ANL/XRL:
// ACC <- ACC op val. They are the exec functions opImm/opDirect/opInd/opRn
// close over to build the twelve "A,<src>" opcodes each family has.
func (c *Chip) doORL(val uint8) {
	c.ram.Write(memory.ACC, c.ram.Read(memory.ACC)|val)
}

func (c *Chip) doANL(val uint8) {
	c.ram.Write(memory.ACC, c.ram.Read(memory.ACC)&val)
}

func (c *Chip) doXRL(val uint8) {
	c.ram.Write(memory.ACC, c.ram.Read(memory.ACC)^val)
}

// opLogicDirectA builds the "direct,A" destination form (ORL/ANL/XRL direct,A).
func opLogicDirectA(op func(a, b uint8) uint8) opFunc {
	return func(c *Chip) {
		addr := c.fetch8()
		c.ram.Write(addr, op(c.ram.Read(addr), c.ram.Read(memory.ACC)))
	}
}

// opLogicDirectImm builds the "direct,#data" destination form (ORL/ANL/XRL
// direct,#data).
func opLogicDirectImm(op func(a, b uint8) uint8) opFunc {
	return func(c *Chip) {
		addr := c.fetch8()
		imm := c.fetch8()
		c.ram.Write(addr, op(c.ram.Read(addr), imm))
	}
}

func bitOr(a, b uint8) uint8  { return a | b }
func bitAnd(a, b uint8) uint8 { return a & b }
func bitXor(a, b uint8) uint8 { return a ^ b }

// opCPLA implements CPL A (0xF4): complements every bit of ACC.
func opCPLA(c *Chip) {
	c.ram.Write(memory.ACC, ^c.ram.Read(memory.ACC))
}

// opCLRA implements CLR A (0xE4).
func opCLRA(c *Chip) {
	c.ram.Write(memory.ACC, 0)
}

// opCLRC implements CLR C (0xC3).
func opCLRC(c *Chip) {
	c.ram.SetPSWC(0)
}

// opSETBC implements SETB C (0xD3).
func opSETBC(c *Chip) {
	c.ram.SetPSWC(1)
}

// opCPLC implements CPL C (0xB3).
func opCPLC(c *Chip) {
	if c.ram.PSWC() != 0 {
		c.ram.SetPSWC(0)
	} else {
		c.ram.SetPSWC(1)
	}
}

// opRR implements RR A (0x03): rotate ACC right one bit, no carry involved.
func opRR(c *Chip) {
	a := c.ram.Read(memory.ACC)
	c.ram.Write(memory.ACC, (a>>1)|(a<<7))
}

// opRRC implements RRC A (0x13): rotate ACC right through PSW.C.
func opRRC(c *Chip) {
	a := c.ram.Read(memory.ACC)
	cy := c.ram.PSWC()
	newCy := a & 0x01
	res := (a >> 1) | (cy << 7)
	c.ram.Write(memory.ACC, res)
	c.ram.SetPSWC(newCy)
}

// opRL implements RL A (0x23): rotate ACC left one bit, no carry involved.
func opRL(c *Chip) {
	a := c.ram.Read(memory.ACC)
	c.ram.Write(memory.ACC, (a<<1)|(a>>7))
}

// opRLC implements RLC A (0x33): rotate ACC left through PSW.C.
func opRLC(c *Chip) {
	a := c.ram.Read(memory.ACC)
	cy := c.ram.PSWC()
	newCy := (a >> 7) & 0x01
	res := (a << 1) | cy
	c.ram.Write(memory.ACC, res)
	c.ram.SetPSWC(newCy)
}
