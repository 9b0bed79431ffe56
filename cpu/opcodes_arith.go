package cpu

import "github.com/jmchacon/mcs51/memory"

// opIncAddr implements INC against a fixed RAM address: INC A (0x04) and
// INC Rn (0x08-0x0F) both resolve to a byte address and share this path,
// since the working registers are ordinary RAM cells.
func opIncAddr(addr uint8) opFunc {
	return func(c *Chip) {
		c.ram.Write(addr, c.ram.Read(addr)+1)
	}
}

// opIncDirect implements INC direct (0x05).
func opIncDirect(c *Chip) {
	addr := c.fetch8()
	c.ram.Write(addr, c.ram.Read(addr)+1)
}

// opIncIndirect implements INC @Ri (0x06/0x07).
func opIncIndirect(n uint8) opFunc {
	return func(c *Chip) {
		addr := c.indirectAddr(n)
		c.ram.Write(addr, c.ram.Read(addr)+1)
	}
}

// opIncDPTR implements INC DPTR (0xA3), the one 16 bit increment in the
// instruction set.
func opIncDPTR(c *Chip) {
	c.ram.SetDPTR(c.ram.DPTR() + 1)
}

// opDecAddr implements DEC against a fixed RAM address (DEC A, DEC Rn).
func opDecAddr(addr uint8) opFunc {
	return func(c *Chip) {
		c.ram.Write(addr, c.ram.Read(addr)-1)
	}
}

// opDecDirect implements DEC direct (0x15).
func opDecDirect(c *Chip) {
	addr := c.fetch8()
	c.ram.Write(addr, c.ram.Read(addr)-1)
}

// opDecIndirect implements DEC @Ri (0x16/0x17).
func opDecIndirect(n uint8) opFunc {
	return func(c *Chip) {
		addr := c.indirectAddr(n)
		c.ram.Write(addr, c.ram.Read(addr)-1)
	}
}

// opMUL implements MUL AB (0xA4): the 16 bit product of ACC*B is split
// across B:ACC (B holds the high byte), C is always cleared, and OV is set
// iff the product doesn't fit in 8 bits.
func opMUL(c *Chip) {
	a := c.ram.Read(memory.ACC)
	b := c.ram.Read(memory.B)
	product := uint16(a) * uint16(b)
	c.ram.Write(memory.ACC, uint8(product))
	c.ram.Write(memory.B, uint8(product>>8))
	c.ram.SetPSWC(0)
	if product > 0xFF {
		c.ram.SetPSWOV(1)
	} else {
		c.ram.SetPSWOV(0)
	}
}

// opDIV implements DIV AB (0x84): ACC <- ACC/B, B <- ACC%B. C is always
// cleared; OV is set in place of a divide trap when B is zero, leaving
// ACC and B unchanged in that case.
func opDIV(c *Chip) {
	a := c.ram.Read(memory.ACC)
	b := c.ram.Read(memory.B)
	c.ram.SetPSWC(0)
	if b == 0 {
		c.ram.SetPSWOV(1)
		return
	}
	c.ram.SetPSWOV(0)
	c.ram.Write(memory.ACC, a/b)
	c.ram.Write(memory.B, a%b)
}

// opDAA implements DA A (0xD4).
func opDAA(c *Chip) {
	c.daa()
}
