package memory

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestRAMPowerOnIsZero(t *testing.T) {
	r := &RAM{}
	for i := range r.data {
		r.data[i] = 0xFF
	}
	r.PowerOn()
	for i, v := range r.data {
		if v != 0x00 {
			t.Fatalf("RAM[0x%02X] = 0x%02X after PowerOn, want 0x00\n%s", i, v, spew.Sdump(r))
		}
	}
}

func TestRegisterWindow(t *testing.T) {
	r := &RAM{}
	r.PowerOn()
	for i := uint8(0); i < 8; i++ {
		r.SetR(i, 0x10+i)
	}
	for i := uint8(0); i < 8; i++ {
		if got, want := r.R(i), uint8(0x10+i); got != want {
			t.Errorf("R%d = 0x%02X, want 0x%02X", i, got, want)
		}
		if got, want := r.Read(R0Base+i), uint8(0x10+i); got != want {
			t.Errorf("RAM[0x%02X] = 0x%02X, want 0x%02X", R0Base+i, got, want)
		}
	}
}

func TestDPTR(t *testing.T) {
	r := &RAM{}
	r.PowerOn()
	r.SetDPTR(0xBEEF)
	if got, want := r.DPTR(), uint16(0xBEEF); got != want {
		t.Errorf("DPTR = 0x%04X, want 0x%04X", got, want)
	}
	if got, want := r.Read(DPH), uint8(0xBE); got != want {
		t.Errorf("DPH = 0x%02X, want 0x%02X", got, want)
	}
	if got, want := r.Read(DPL), uint8(0xEF); got != want {
		t.Errorf("DPL = 0x%02X, want 0x%02X", got, want)
	}
}

// TestPSWBitRoundTrip verifies every PSW accessor: set(b); get() == normalized(b)
// and that no other bit is disturbed (spec.md §8 "PSW setter/getter round-trip").
func TestPSWBitRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		set  func(r *RAM, b uint8)
		get  func(r *RAM) uint8
		mask uint8
	}{
		{"C", (*RAM).SetPSWC, (*RAM).PSWC, pswC},
		{"AC", (*RAM).SetPSWAC, (*RAM).PSWAC, pswAC},
		{"F0", (*RAM).SetPSWF0, (*RAM).PSWF0, pswF0},
		{"RS1", (*RAM).SetPSWRS1, (*RAM).PSWRS1, pswRS1},
		{"RS0", (*RAM).SetPSWRS0, (*RAM).PSWRS0, pswRS0},
		{"OV", (*RAM).SetPSWOV, (*RAM).PSWOV, pswOV},
		{"P", (*RAM).SetPSWP, (*RAM).PSWP, pswP},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := &RAM{}
			r.PowerOn()
			r.Write(PSW, 0x00)
			test.set(r, 1)
			if got := test.get(r); got != 1 {
				t.Errorf("after set(1): get() = %d, want 1", got)
			}
			if got, want := r.Read(PSW), test.mask; got != want {
				t.Errorf("PSW = 0x%02X, want only 0x%02X set", got, want)
			}
			test.set(r, 0)
			if got := test.get(r); got != 0 {
				t.Errorf("after set(0): get() = %d, want 0", got)
			}
			if got := r.Read(PSW); got != 0x00 {
				t.Errorf("PSW = 0x%02X, want 0x00", got)
			}
		})
	}
}

func TestRecomputeParity(t *testing.T) {
	tests := []struct {
		acc  uint8
		want uint8
	}{
		{0x00, 0},
		{0x01, 1},
		{0x03, 0},
		{0xFF, 0}, // 8 ones -> even
		{0x80, 1}, // 1 one -> odd
	}
	for _, test := range tests {
		r := &RAM{}
		r.PowerOn()
		r.Write(ACC, test.acc)
		r.RecomputeParity()
		if got := r.PSWP(); got != test.want {
			t.Errorf("RecomputeParity(ACC=0x%02X): P = %d, want %d", test.acc, got, test.want)
		}
	}
}

func TestROMWriteAtBounds(t *testing.T) {
	rom := &ROM{}
	rom.PowerOn()
	if err := rom.WriteAt(ROMSize-1, 0xAB); err != nil {
		t.Fatalf("WriteAt(last valid addr): unexpected error %v", err)
	}
	if got, want := rom.Read(ROMSize-1), uint8(0xAB); got != want {
		t.Errorf("ROM[last] = 0x%02X, want 0x%02X", got, want)
	}
	if err := rom.WriteAt(ROMSize, 0x00); err == nil {
		t.Errorf("WriteAt(ROMSize): expected out-of-range error, got nil")
	}
}
