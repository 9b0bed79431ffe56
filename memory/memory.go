// Package memory defines the MCS-51 address spaces: the 256 byte internal
// RAM (which overlays the working register banks, the bit-addressable area
// and the special function registers) and the 4096 byte code ROM.
//
// Unlike a banked memory map these two spaces never alias or page; a single
// flat byte array backs each one and addresses simply index into it.
package memory

import "fmt"

// RAMSize is the size in bytes of the internal data memory.
const RAMSize = 256

// ROMSize is the size in bytes of the code memory loaded from a HEX file.
const ROMSize = 4096

// SFR addresses that the interpreter gives architectural meaning to. Any
// other address in 0x80..0xFF is still readable/writable but carries no
// defined behavior beyond storage.
const (
	P0   = uint8(0x80) // Port 0 latch
	SP   = uint8(0x81) // Stack pointer
	DPL  = uint8(0x82) // Data pointer, low byte
	DPH  = uint8(0x83) // Data pointer, high byte
	PCON = uint8(0x87) // Power control
	TCON = uint8(0x88) // Timer/counter control
	TMOD = uint8(0x89) // Timer/counter mode
	TL0  = uint8(0x8A)
	TL1  = uint8(0x8B)
	TH0  = uint8(0x8C)
	TH1  = uint8(0x8D)
	P1   = uint8(0x90) // Port 1 latch, wired to the observer's LED display
	P2   = uint8(0xA0) // Port 2 latch
	IE   = uint8(0xA8) // Interrupt enable
	P3   = uint8(0xB0) // Port 3 latch
	IP   = uint8(0xB8) // Interrupt priority
	PSW  = uint8(0xD0) // Program status word
	ACC  = uint8(0xE0) // Accumulator
	B    = uint8(0xF0) // B register
)

// R0Base is the fixed RAM address of working register R0. R0..R7 are hard
// coded at R0Base..R0Base+7 regardless of the PSW.RS0/RS1 bank-select bits;
// see the Open Question ledger in DESIGN.md for why bank switching is not
// implemented.
const R0Base = uint8(0x00)

// PSW bit masks, matching the layout C|AC|F0|RS1|RS0|OV|-|P (bit 7 is C).
const (
	pswC   = uint8(0x80)
	pswAC  = uint8(0x40)
	pswF0  = uint8(0x20)
	pswRS1 = uint8(0x10)
	pswRS0 = uint8(0x08)
	pswOV  = uint8(0x04)
	pswP   = uint8(0x01)
)

// RAM is the 256 byte internal data memory of an MCS-51 core.
type RAM struct {
	data [RAMSize]uint8
}

// PowerOn zeroes the RAM. Unlike the 6502-family machines the corpus's
// teacher repo models (where power-on state is random), the MCS-51 spec
// requires a deterministic all-zero reset so that register accessors have
// well-defined post-Init values (spec.md §3 "Lifecycle").
func (r *RAM) PowerOn() {
	for i := range r.data {
		r.data[i] = 0
	}
}

// Read returns the byte stored at addr.
func (r *RAM) Read(addr uint8) uint8 {
	return r.data[addr]
}

// Write stores val at addr.
func (r *RAM) Write(addr uint8, val uint8) {
	r.data[addr] = val
}

// R reads working register n (0..7) of the fixed bank at R0Base.
func (r *RAM) R(n uint8) uint8 {
	return r.data[R0Base+n]
}

// SetR writes working register n (0..7) of the fixed bank at R0Base.
func (r *RAM) SetR(n uint8, val uint8) {
	r.data[R0Base+n] = val
}

// DPTR returns the 16 bit data pointer formed from DPH:DPL.
func (r *RAM) DPTR() uint16 {
	return uint16(r.data[DPH])<<8 | uint16(r.data[DPL])
}

// SetDPTR writes v into DPH:DPL. The original source masked the low byte
// with 0x0F before writing, losing the high nibble of DPL; spec.md §9
// identifies this as "almost certainly a bug" and the intended mask is
// 0xFF, which is what this implementation does.
func (r *RAM) SetDPTR(v uint16) {
	r.data[DPL] = uint8(v & 0xFF)
	r.data[DPH] = uint8(v >> 8)
}

// pswBit reports whether the named bit of PSW is set.
func (r *RAM) pswBit(mask uint8) uint8 {
	if r.data[PSW]&mask != 0 {
		return 1
	}
	return 0
}

// setPSWBit sets or clears the named bit of PSW, preserving the other seven.
func (r *RAM) setPSWBit(mask uint8, b uint8) {
	if b != 0 {
		r.data[PSW] |= mask
	} else {
		r.data[PSW] &^= mask
	}
}

// PSWC returns the Carry flag (nonzero iff set).
func (r *RAM) PSWC() uint8 { return r.pswBit(pswC) }

// SetPSWC sets or clears Carry.
func (r *RAM) SetPSWC(b uint8) { r.setPSWBit(pswC, b) }

// PSWAC returns the Auxiliary Carry flag.
func (r *RAM) PSWAC() uint8 { return r.pswBit(pswAC) }

// SetPSWAC sets or clears Auxiliary Carry.
func (r *RAM) SetPSWAC(b uint8) { r.setPSWBit(pswAC, b) }

// PSWF0 returns the user flag F0.
func (r *RAM) PSWF0() uint8 { return r.pswBit(pswF0) }

// SetPSWF0 sets or clears F0.
func (r *RAM) SetPSWF0(b uint8) { r.setPSWBit(pswF0, b) }

// PSWRS1 returns register-bank select bit 1. The bank this selects is not
// actually switched to (see R/SetR above); this accessor exists so a
// caller can still observe the bit a program sets.
func (r *RAM) PSWRS1() uint8 { return r.pswBit(pswRS1) }

// SetPSWRS1 sets or clears RS1.
func (r *RAM) SetPSWRS1(b uint8) { r.setPSWBit(pswRS1, b) }

// PSWRS0 returns register-bank select bit 0.
func (r *RAM) PSWRS0() uint8 { return r.pswBit(pswRS0) }

// SetPSWRS0 sets or clears RS0.
func (r *RAM) SetPSWRS0(b uint8) { r.setPSWBit(pswRS0, b) }

// PSWOV returns the Overflow flag.
func (r *RAM) PSWOV() uint8 { return r.pswBit(pswOV) }

// SetPSWOV sets or clears Overflow.
func (r *RAM) SetPSWOV(b uint8) { r.setPSWBit(pswOV, b) }

// PSWP returns the Parity flag (set iff ACC has an odd number of one bits).
func (r *RAM) PSWP() uint8 { return r.pswBit(pswP) }

// SetPSWP sets or clears Parity directly. RecomputeParity is normally used
// instead since real hardware derives P from ACC on every instruction.
func (r *RAM) SetPSWP(b uint8) { r.setPSWBit(pswP, b) }

// RecomputeParity sets PSW.P to match the current parity of ACC, as real
// MCS-51 hardware does after every instruction that touches the accumulator.
func (r *RAM) RecomputeParity() {
	acc := r.data[ACC]
	ones := 0
	for acc != 0 {
		ones += int(acc & 1)
		acc >>= 1
	}
	r.SetPSWP(uint8(ones % 2))
}

// ROM is the 4096 byte code memory an MCS-51 core fetches instructions and
// MOVC operands from. It is written only by the HEX loader.
type ROM struct {
	data [ROMSize]uint8
}

// PowerOn zeroes the ROM image.
func (r *ROM) PowerOn() {
	for i := range r.data {
		r.data[i] = 0
	}
}

// Read returns the byte stored at addr, wrapping into the 4096 byte space.
func (r *ROM) Read(addr uint16) uint8 {
	return r.data[addr%ROMSize]
}

// WriteAt loads val at addr, used only by the HEX loader. Returns an error
// if addr is outside the ROM's address space.
func (r *ROM) WriteAt(addr uint16, val uint8) error {
	if int(addr) >= ROMSize {
		return fmt.Errorf("rom write address 0x%04X exceeds %d byte ROM", addr, ROMSize)
	}
	r.data[addr] = val
	return nil
}
