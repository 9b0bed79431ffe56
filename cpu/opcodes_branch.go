package cpu

import "github.com/jmchacon/mcs51/memory"

// ajmpTarget computes the 11 bit paged jump target AJMP/ACALL share: the top
// 3 bits come from the opcode itself (passed in as page, 0-7), the low 8
// bits are the next ROM byte, and the remaining high bits of PC are taken
// from PC as it stands after the two-byte instruction has been fetched.
func ajmpTarget(c *Chip, page uint8) uint16 {
	low := c.fetch8()
	return (c.pc & 0xF800) | (uint16(page) << 8) | uint16(low)
}

// opAJMP builds the AJMP opcode at 0x01+page*0x20 (page 0-7), one of the 8
// slots of this family spread across the opcode map in steps of 0x20.
func opAJMP(page uint8) opFunc {
	return func(c *Chip) {
		c.pc = ajmpTarget(c, page)
	}
}

// opACALL builds the ACALL opcode at 0x11+page*0x20: pushes the return
// address (already past this instruction) before jumping, same addressing
// as AJMP.
func opACALL(page uint8) opFunc {
	return func(c *Chip) {
		target := ajmpTarget(c, page)
		c.push(uint8(c.pc))
		c.push(uint8(c.pc >> 8))
		c.pc = target
	}
}

// opLJMP implements LJMP addr16 (0x02): PC <- the 16 bit absolute operand,
// high byte first.
func opLJMP(c *Chip) {
	c.pc = c.fetch16()
}

// opLCALL implements LCALL addr16 (0x12): push the return address, then
// jump absolute.
func opLCALL(c *Chip) {
	target := c.fetch16()
	c.push(uint8(c.pc))
	c.push(uint8(c.pc >> 8))
	c.pc = target
}

// opRET implements RET (0x22): pop the return address pushed by
// LCALL/ACALL, high byte first (LIFO of the push order).
func opRET(c *Chip) {
	hi := c.pop()
	lo := c.pop()
	c.pc = uint16(hi)<<8 | uint16(lo)
}

// opRETI implements RETI (0x32). Interrupt-priority bookkeeping is not
// modeled (no interrupt controller exists; see DESIGN.md), so this behaves
// identically to RET.
func opRETI(c *Chip) {
	opRET(c)
}

// opSJMP implements SJMP rel (0x80): an unconditional relative branch.
func opSJMP(c *Chip) {
	disp := c.fetch8()
	c.rel(disp)
}

// opJMPDPTR implements JMP @A+DPTR (0x73).
func opJMPDPTR(c *Chip) {
	a := c.ram.Read(memory.ACC)
	c.pc = c.ram.DPTR() + uint16(a)
}

// opJZ implements JZ rel (0x60): branch if ACC is zero.
func opJZ(c *Chip) {
	disp := c.fetch8()
	if c.ram.Read(memory.ACC) == 0 {
		c.rel(disp)
	}
}

// opJNZ implements JNZ rel (0x70): branch if ACC is nonzero.
func opJNZ(c *Chip) {
	disp := c.fetch8()
	if c.ram.Read(memory.ACC) != 0 {
		c.rel(disp)
	}
}

// opJC implements JC rel (0x40): branch if PSW.C is set.
func opJC(c *Chip) {
	disp := c.fetch8()
	if c.ram.PSWC() != 0 {
		c.rel(disp)
	}
}

// opJNC implements JNC rel (0x50): branch if PSW.C is clear.
func opJNC(c *Chip) {
	disp := c.fetch8()
	if c.ram.PSWC() == 0 {
		c.rel(disp)
	}
}

// cjne is the shared CJNE comparison: branch if a != b, and clear/set
// PSW.C according to an unsigned a < b regardless of whether the branch is
// taken, matching the MCS-51 definition of CJNE.
func (c *Chip) cjne(a, b, disp uint8) {
	if a < b {
		c.ram.SetPSWC(1)
	} else {
		c.ram.SetPSWC(0)
	}
	if a != b {
		c.rel(disp)
	}
}

// opCJNEAImm implements CJNE A,#data,rel (0xB4).
func opCJNEAImm(c *Chip) {
	imm := c.fetch8()
	disp := c.fetch8()
	c.cjne(c.ram.Read(memory.ACC), imm, disp)
}

// opCJNEADirect implements CJNE A,direct,rel (0xB5).
func opCJNEADirect(c *Chip) {
	addr := c.fetch8()
	disp := c.fetch8()
	c.cjne(c.ram.Read(memory.ACC), c.ram.Read(addr), disp)
}

// opCJNEIndImm builds CJNE @Ri,#data,rel (0xB6/0xB7).
func opCJNEIndImm(n uint8) opFunc {
	return func(c *Chip) {
		imm := c.fetch8()
		disp := c.fetch8()
		c.cjne(c.ram.Read(c.indirectAddr(n)), imm, disp)
	}
}

// opCJNERnImm builds CJNE Rn,#data,rel (0xB8-0xBF).
func opCJNERnImm(n uint8) opFunc {
	return func(c *Chip) {
		imm := c.fetch8()
		disp := c.fetch8()
		c.cjne(c.ram.R(n), imm, disp)
	}
}

// opDJNZDirect implements DJNZ direct,rel (0xD5): decrement the addressed
// byte, branch if the result is nonzero.
func opDJNZDirect(c *Chip) {
	addr := c.fetch8()
	disp := c.fetch8()
	v := c.ram.Read(addr) - 1
	c.ram.Write(addr, v)
	if v != 0 {
		c.rel(disp)
	}
}

// opDJNZRn builds DJNZ Rn,rel (0xD8-0xDF).
func opDJNZRn(n uint8) opFunc {
	return func(c *Chip) {
		disp := c.fetch8()
		v := c.ram.R(n) - 1
		c.ram.SetR(n, v)
		if v != 0 {
			c.rel(disp)
		}
	}
}

// opPUSH implements PUSH direct (0xC0).
func opPUSH(c *Chip) {
	addr := c.fetch8()
	c.push(c.ram.Read(addr))
}

// opPOP implements POP direct (0xD0).
func opPOP(c *Chip) {
	addr := c.fetch8()
	c.ram.Write(addr, c.pop())
}
