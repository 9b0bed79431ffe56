package cpu

import "github.com/jmchacon/mcs51/memory"

// fetch8 reads the byte at PC and advances PC past it.
func (c *Chip) fetch8() uint8 {
	v := c.rom.Read(c.pc)
	c.pc++
	return v
}

// fetch16 reads a big-endian 16 bit immediate (high byte first, low byte
// second), the encoding MOV DPTR,#data16 and LJMP/LCALL addr16 use.
func (c *Chip) fetch16() uint16 {
	hi := c.fetch8()
	lo := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

// rel applies a signed 8 bit displacement, read as the next instruction
// byte, to PC. PC at the time of the addition is already positioned past
// the displacement byte itself, matching the MCS-51 relative-branch rule
// (the offset is relative to the address of the instruction *following*
// the branch).
func (c *Chip) rel(disp uint8) {
	c.pc = uint16(int32(c.pc) + int32(int8(disp)))
}

// indirectAddr returns the RAM address held in working register n (0 or
// 1), used by the @R0/@R1 addressing mode.
func (c *Chip) indirectAddr(n uint8) uint8 {
	return c.ram.R(n)
}

// push writes val to the byte above SP and increments SP (the MCS-51 stack
// grows upward, the opposite of the 6502's downward-growing page 1 stack).
func (c *Chip) push(val uint8) {
	sp := c.ram.Read(memory.SP) + 1
	c.ram.Write(memory.SP, sp)
	c.ram.Write(sp, val)
}

// pop reads the byte at SP and decrements SP.
func (c *Chip) pop() uint8 {
	sp := c.ram.Read(memory.SP)
	val := c.ram.Read(sp)
	c.ram.Write(memory.SP, sp-1)
	return val
}

// opImm builds an opFunc for the "A,#data" addressing mode shared by
// ADD/ADDC/SUBB/ORL/ANL/XRL: fetch an immediate and hand it to exec.
func opImm(exec func(*Chip, uint8)) opFunc {
	return func(c *Chip) {
		exec(c, c.fetch8())
	}
}

// opDirect builds an opFunc for the "A,direct" addressing mode shared by the
// same arithmetic/logic families.
func opDirect(exec func(*Chip, uint8)) opFunc {
	return func(c *Chip) {
		addr := c.fetch8()
		exec(c, c.ram.Read(addr))
	}
}

// opInd builds an opFunc for the "A,@Ri" addressing mode, closing over the
// working register index n (0 or 1) rather than capturing a loop variable.
func opInd(n uint8, exec func(*Chip, uint8)) opFunc {
	return func(c *Chip) {
		exec(c, c.ram.Read(c.indirectAddr(n)))
	}
}

// opRn builds an opFunc for the "A,Rn" addressing mode, closing over the
// working register index n (0-7).
func opRn(n uint8, exec func(*Chip, uint8)) opFunc {
	return func(c *Chip) {
		exec(c, c.ram.R(n))
	}
}

// bitAddress resolves a bit-addressable operand to its backing byte
// address and bit mask. Bit addresses 0x00-0x7F index the 16 byte
// bit-addressable area starting at RAM 0x20 (8 bits per byte); bit
// addresses 0x80-0xFF index bit-addressable SFRs directly, where the byte
// address is the bit address with its low 3 bits cleared.
func bitAddress(bitAddr uint8) (byteAddr uint8, mask uint8) {
	if bitAddr < 0x80 {
		return 0x20 + bitAddr/8, 1 << (bitAddr % 8)
	}
	return bitAddr &^ 0x07, 1 << (bitAddr % 8)
}

// readBit returns 1 if the addressed bit is set, 0 otherwise.
func (c *Chip) readBit(bitAddr uint8) uint8 {
	byteAddr, mask := bitAddress(bitAddr)
	if c.ram.Read(byteAddr)&mask != 0 {
		return 1
	}
	return 0
}

// writeBit sets or clears the addressed bit, leaving the rest of its byte
// untouched.
func (c *Chip) writeBit(bitAddr uint8, val uint8) {
	byteAddr, mask := bitAddress(bitAddr)
	b := c.ram.Read(byteAddr)
	if val != 0 {
		b |= mask
	} else {
		b &^= mask
	}
	c.ram.Write(byteAddr, b)
}
