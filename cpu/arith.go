package cpu

import "github.com/jmchacon/mcs51/memory"

// addFlags computes a+b+carryIn as an 8 bit MCS-51 addition, returning the
// result and the three flags ADD/ADDC affect: carry out of bit 7, auxiliary
// carry out of bit 3, and signed overflow.
func addFlags(a, b, carryIn uint8) (result, c, ac, ov uint8) {
	sum := uint16(a) + uint16(b) + uint16(carryIn)
	result = uint8(sum)
	if sum > 0xFF {
		c = 1
	}
	if (a&0x0F)+(b&0x0F)+carryIn > 0x0F {
		ac = 1
	}
	if (a^result)&(b^result)&0x80 != 0 {
		ov = 1
	}
	return result, c, ac, ov
}

// subFlags computes a-b-borrowIn as an 8 bit MCS-51 subtraction (used by
// SUBB), returning the result and the borrow/auxiliary-borrow/overflow
// flags.
func subFlags(a, b, borrowIn uint8) (result, c, ac, ov uint8) {
	full := int32(a) - int32(b) - int32(borrowIn)
	result = uint8(full)
	if full < 0 {
		c = 1
	}
	if int32(a&0x0F)-int32(b&0x0F)-int32(borrowIn) < 0 {
		ac = 1
	}
	if (a^b)&(a^result)&0x80 != 0 {
		ov = 1
	}
	return result, c, ac, ov
}

// daa implements DA A: the BCD adjustment applied to ACC after an ADD or
// ADDC whose operands were packed BCD digits.
func (c *Chip) daa() {
	a := c.ram.Read(memory.ACC)
	cy := c.ram.PSWC()
	ac := c.ram.PSWAC()

	if a&0x0F > 9 || ac != 0 {
		if uint16(a)+6 > 0xFF {
			cy = 1
		}
		a += 6
	}
	if (a&0xF0)>>4 > 9 || cy != 0 {
		a += 0x60
		cy = 1
	}

	c.ram.Write(memory.ACC, a)
	c.ram.SetPSWC(cy)
}

// doADD implements ADD A,<src>: no carry-in.
func (c *Chip) doADD(val uint8) {
	c.execAdd(val, 0)
}

// doADDC implements ADDC A,<src>: carry-in taken from PSW.C.
func (c *Chip) doADDC(val uint8) {
	c.execAdd(val, c.ram.PSWC())
}

// execAdd is the shared implementation behind doADD/doADDC: it computes
// ACC+val+carryIn and updates ACC and the C/AC/OV flags.
func (c *Chip) execAdd(val, carryIn uint8) {
	a := c.ram.Read(memory.ACC)
	res, cy, ac, ov := addFlags(a, val, carryIn)
	c.ram.Write(memory.ACC, res)
	c.ram.SetPSWC(cy)
	c.ram.SetPSWAC(ac)
	c.ram.SetPSWOV(ov)
}

// doSUBB implements SUBB A,<src>: ACC <- ACC - val - PSW.C.
func (c *Chip) doSUBB(val uint8) {
	a := c.ram.Read(memory.ACC)
	cy := c.ram.PSWC()
	res, ncy, ac, ov := subFlags(a, val, cy)
	c.ram.Write(memory.ACC, res)
	c.ram.SetPSWC(ncy)
	c.ram.SetPSWAC(ac)
	c.ram.SetPSWOV(ov)
}
