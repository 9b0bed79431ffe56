// Package functionality exercises the full load-and-run path end to end:
// an Intel HEX program written out to disk, loaded through cpu.Init, and
// stepped until a known halting pattern is reached, the same style of
// black-box check the teacher's root functionality_test.go runs against
// its 6502 variants.
package functionality

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmchacon/mcs51/cpu"
	"github.com/jmchacon/mcs51/memory"
)

// writeProgram writes an Intel HEX program (one data record holding prog,
// plus an EOF record) to a temp file and returns its path.
func writeProgram(t *testing.T, prog []byte) string {
	t.Helper()
	sum := byte(len(prog))
	s := ":"
	hexDigits := "0123456789ABCDEF"
	hexByte := func(b byte) string {
		return string([]byte{hexDigits[b>>4], hexDigits[b&0x0F]})
	}
	s += hexByte(byte(len(prog)))
	s += "0000"
	s += "00"
	for _, b := range prog {
		s += hexByte(b)
		sum += b
	}
	checksum := byte(-int8(sum))
	s += hexByte(checksum)

	dir := t.TempDir()
	path := filepath.Join(dir, "prog.hex")
	if err := os.WriteFile(path, []byte(s+"\n:00000001FF\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// TestCountdownLoop assembles a small program that counts R0 down from 5 to
// 0 and leaves ACC holding the iteration count, verifying MOV/INC/DJNZ/SJMP
// all cooperate correctly end to end rather than in isolation.
func TestCountdownLoop(t *testing.T) {
	prog := []byte{
		0x74, 0x00, // 0000 MOV A,#0
		0x78, 0x05, // 0002 MOV R0,#5
		0x04,       // 0004 loop: INC A
		0xD8, 0xFD, // 0005 DJNZ R0,loop
		0x80, 0xFE, // 0007 done: SJMP done
	}
	path := writeProgram(t, prog)
	chip, err := cpu.Init(cpu.Config{HexPath: path})
	if err != nil {
		t.Fatalf("cpu.Init: %v", err)
	}
	for i := 0; i < 32; i++ {
		chip.Step()
	}
	if got, want := chip.GetACC(), uint8(5); got != want {
		t.Errorf("ACC after countdown loop = %d, want %d", got, want)
	}
	if got, want := chip.GetR(0), uint8(0); got != want {
		t.Errorf("R0 after countdown loop = %d, want %d", got, want)
	}
}

// TestCallReturnPreservesStack runs a subroutine call/return sequence and
// checks the stack pointer returns to its pre-call value and the expected
// byte was left in RAM by the callee.
func TestCallReturnPreservesStack(t *testing.T) {
	prog := []byte{
		0x12, 0x00, 0x08, // 0000 LCALL 0x0008
		0x80, 0xFE, // 0003 halt: SJMP halt
		0x00, 0x00, // 0005-0006 padding
		0x00,       // 0007 padding
		0x75, 0x40, 0x2A, // 0008 sub: MOV 0x40,#0x2A
		0x22, // 000B RET
	}
	path := writeProgram(t, prog)
	chip, err := cpu.Init(cpu.Config{HexPath: path})
	if err != nil {
		t.Fatalf("cpu.Init: %v", err)
	}
	startSP := chip.GetSP()
	for i := 0; i < 3; i++ {
		chip.Step()
	}
	if got, want := chip.PC(), uint16(3); got != want {
		t.Fatalf("PC after call/return = %#x, want %#x", got, want)
	}
	if got := chip.GetSP(); got != startSP {
		t.Errorf("SP after call/return = %#x, want %#x", got, startSP)
	}
	if got, want := chip.RAM().Read(0x40), uint8(0x2A); got != want {
		t.Errorf("RAM[0x40] = %#x, want %#x", got, want)
	}
}

// TestPSWStartsZero checks PowerOn leaves PSW fully clear, the precondition
// every other flag-affecting test relies on.
func TestPSWStartsZero(t *testing.T) {
	path := writeProgram(t, []byte{0x00})
	chip, err := cpu.Init(cpu.Config{HexPath: path})
	if err != nil {
		t.Fatalf("cpu.Init: %v", err)
	}
	if got := chip.RAM().Read(memory.PSW); got != 0 {
		t.Errorf("PSW at power-on = %#x, want 0", got)
	}
}
