// Package cpu implements the MCS-51 (8051) CPU model: its register file,
// program-status-word flags, the 256-entry opcode dispatch table, and the
// cycle-paced driver that fetches, decodes and executes instructions until
// asked to stop.
//
// The overall shape — a Chip type constructed once by Init, accessor
// methods for every architectural register, a Step single-instruction
// primitive driven by a Run loop, and small named error types instead of
// panics — follows github.com/jmchacon/6502's cpu package. Where that
// teacher models a cycle-accurate 6502 (per-Tick partial instructions,
// IRQ/NMI lines, a Chip holding its own discrete A/X/Y/S/P fields) this
// Chip instead executes one whole instruction per Step (the cycle driver
// budgets whole instructions, not T-states) and keeps no register fields
// of its own beyond PC: ACC, B, SP, DPTR, the working registers and PSW
// all live in RAM exactly once, at their SFR addresses, so a write through
// the addressable path and a write through a typed accessor are the same
// memory cell.
package cpu

import (
	"fmt"

	"github.com/jmchacon/mcs51/hexload"
	"github.com/jmchacon/mcs51/memory"
	"github.com/jmchacon/mcs51/observer"
)

// DefaultCyclesPerSecond is the nominal instruction budget between observer
// callbacks used when a Config leaves CyclesPerSecond at zero: the cycle
// driver approximates "instructions per second", not real T-state timing.
const DefaultCyclesPerSecond = 1000000

// stackStart is the initial stack pointer value: the stack grows upward
// starting just above the R0-R7 window.
const stackStart = uint8(0x08)

// InvalidCPUState represents a construction-time contract violation.
type InvalidCPUState struct {
	Reason string
}

// Error implements the error interface.
func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// Config holds Init's construction parameters. Fields left at their zero
// value fall back to a documented default, so callers that only care about
// HexPath can leave the rest unset.
type Config struct {
	// HexPath is the Intel HEX program to load into ROM.
	HexPath string
	// CyclesPerSecond is the instruction budget between Observer callbacks.
	// Zero means DefaultCyclesPerSecond.
	CyclesPerSecond int
	// InstructionLogDepth is how many of the most recently executed PCs
	// Step keeps in a circular buffer, readable via InstructionLog for
	// debugging. Zero disables the log entirely.
	InstructionLogDepth int
	// Observer is called once every CyclesPerSecond instructions once Run
	// starts; it may be nil if the caller has no use for the callback.
	Observer observer.CycleObserver
}

// Chip is a single MCS-51 core. It is not a process-wide singleton the way
// the original C++ source's cpu::getInstance() is — callers construct one
// with Init and keep it as long as they need it, threading it by reference
// instead of reaching for lazy global mutable state.
type Chip struct {
	ram *memory.RAM
	rom *memory.ROM
	pc  uint16

	dispatch [256]opFunc

	cyclesPerSecond int
	budget          int
	observer        observer.CycleObserver
	stop            observer.StopSignal

	instructionLog []uint16
	logPos         int
}

// Init resets ram and rom, builds the dispatch table, seeds PC and SP, and
// loads rom from the Intel HEX file named in cfg.
//
// On load failure the Chip is returned with RAM/ROM already reset and an
// error describing why.
func Init(cfg Config) (*Chip, error) {
	cyclesPerSecond := cfg.CyclesPerSecond
	if cyclesPerSecond <= 0 {
		cyclesPerSecond = DefaultCyclesPerSecond
	}

	c := &Chip{
		ram:             &memory.RAM{},
		rom:             &memory.ROM{},
		observer:        cfg.Observer,
		cyclesPerSecond: cyclesPerSecond,
	}
	c.ram.PowerOn()
	c.rom.PowerOn()
	buildDispatch(&c.dispatch)

	c.ram.Write(memory.SP, stackStart)
	c.pc = 0x0000
	c.budget = cyclesPerSecond
	c.stop.Reset()
	if cfg.InstructionLogDepth > 0 {
		c.instructionLog = make([]uint16, 0, cfg.InstructionLogDepth)
	}

	if err := hexload.Load(cfg.HexPath, c.rom); err != nil {
		return c, fmt.Errorf("cpu.Init: %w", err)
	}
	return c, nil
}

// Run executes instructions until Stop is observed. Each iteration fetches
// the opcode at PC, advances PC past it, invokes the opcode's handler, and
// decrements the instruction budget; when the budget reaches zero the
// observer (if any) is invoked and the budget is refilled.
//
// Stop takes effect at the next iteration boundary, never mid-instruction;
// Run does not return until that boundary is reached.
func (c *Chip) Run() {
	c.stop.Reset()
	for !c.stop.Requested() {
		c.Step()
		c.budget--
		if c.budget <= 0 {
			if c.observer != nil {
				c.observer.OnCycleBoundary()
			}
			c.budget = c.cyclesPerSecond
		}
	}
}

// Stop asynchronously requests that Run terminate at its next iteration
// boundary. Safe to call from a goroutine other than the one running Run.
func (c *Chip) Stop() {
	c.stop.Set()
}

// Step executes exactly one instruction: fetch the opcode at PC, advance
// PC past it, and invoke the opcode's handler. The handler is responsible
// for consuming any further operand bytes and leaving PC at the next
// opcode.
func (c *Chip) Step() {
	if c.instructionLog != nil {
		c.recordInstruction(c.pc)
	}
	op := c.rom.Read(c.pc)
	c.pc++
	c.dispatch[op](c)
	// Real hardware derives PSW.P from ACC combinationally, so it is
	// always current rather than something individual opcodes set; doing
	// it once per instruction here matches that instead of threading a
	// recompute call through every handler that might touch ACC.
	c.ram.RecomputeParity()
}

// recordInstruction appends pc to the circular instruction log, dropping
// the oldest entry once the configured depth is reached.
func (c *Chip) recordInstruction(pc uint16) {
	if len(c.instructionLog) < cap(c.instructionLog) {
		c.instructionLog = append(c.instructionLog, pc)
		return
	}
	c.instructionLog[c.logPos] = pc
	c.logPos = (c.logPos + 1) % cap(c.instructionLog)
}

// InstructionLog returns the PCs of the most recently executed
// instructions, oldest first, up to the Config.InstructionLogDepth given to
// Init. Empty if logging was not enabled.
func (c *Chip) InstructionLog() []uint16 {
	if c.instructionLog == nil || len(c.instructionLog) < cap(c.instructionLog) {
		return c.instructionLog
	}
	ordered := make([]uint16, 0, len(c.instructionLog))
	ordered = append(ordered, c.instructionLog[c.logPos:]...)
	ordered = append(ordered, c.instructionLog[:c.logPos]...)
	return ordered
}

// PC returns the current program counter.
func (c *Chip) PC() uint16 { return c.pc }

// SetPC overwrites the program counter. Exposed for test harnesses that
// need to seed execution at a specific address without going through a
// jump instruction.
func (c *Chip) SetPC(pc uint16) { c.pc = pc }

// RAM exposes the raw 256 byte data memory, e.g. for an observer that wants
// to sample a wider window than the named accessors below provide.
func (c *Chip) RAM() *memory.RAM { return c.ram }

// ROM exposes the raw 4096 byte code memory, read-only from the caller's
// perspective (nothing outside hexload.Load ever calls ROM.WriteAt).
func (c *Chip) ROM() *memory.ROM { return c.rom }

// The following accessors are the typed SFR getters. Each is a read of the
// backing RAM cell at the SFR's address — there is no separate storage, so
// these always agree with whatever the last instruction wrote through the
// addressable path.

func (c *Chip) GetP0() uint8   { return c.ram.Read(memory.P0) }
func (c *Chip) GetP1() uint8   { return c.ram.Read(memory.P1) }
func (c *Chip) GetP2() uint8   { return c.ram.Read(memory.P2) }
func (c *Chip) GetP3() uint8   { return c.ram.Read(memory.P3) }
func (c *Chip) GetSP() uint8   { return c.ram.Read(memory.SP) }
func (c *Chip) GetDPL() uint8  { return c.ram.Read(memory.DPL) }
func (c *Chip) GetDPH() uint8  { return c.ram.Read(memory.DPH) }
func (c *Chip) GetPCON() uint8 { return c.ram.Read(memory.PCON) }
func (c *Chip) GetTCON() uint8 { return c.ram.Read(memory.TCON) }
func (c *Chip) GetTMOD() uint8 { return c.ram.Read(memory.TMOD) }
func (c *Chip) GetTL0() uint8  { return c.ram.Read(memory.TL0) }
func (c *Chip) GetTL1() uint8  { return c.ram.Read(memory.TL1) }
func (c *Chip) GetTH0() uint8  { return c.ram.Read(memory.TH0) }
func (c *Chip) GetTH1() uint8  { return c.ram.Read(memory.TH1) }
func (c *Chip) GetIE() uint8   { return c.ram.Read(memory.IE) }
func (c *Chip) GetIP() uint8   { return c.ram.Read(memory.IP) }
func (c *Chip) GetPSW() uint8  { return c.ram.Read(memory.PSW) }
func (c *Chip) GetACC() uint8  { return c.ram.Read(memory.ACC) }
func (c *Chip) GetB() uint8    { return c.ram.Read(memory.B) }
func (c *Chip) DPTR() uint16   { return c.ram.DPTR() }

// GetR returns working register n (0..7) of the fixed bank (PSW.RS0/RS1
// bank switching is not implemented; see DESIGN.md).
func (c *Chip) GetR(n uint8) uint8 { return c.ram.R(n) }

// PSW bit accessors. Each masks a single bit of RAM[PSW] and returns
// nonzero iff set.

func (c *Chip) PSWC() uint8   { return c.ram.PSWC() }
func (c *Chip) PSWAC() uint8  { return c.ram.PSWAC() }
func (c *Chip) PSWF0() uint8  { return c.ram.PSWF0() }
func (c *Chip) PSWRS1() uint8 { return c.ram.PSWRS1() }
func (c *Chip) PSWRS0() uint8 { return c.ram.PSWRS0() }
func (c *Chip) PSWOV() uint8  { return c.ram.PSWOV() }
func (c *Chip) PSWP() uint8   { return c.ram.PSWP() }
