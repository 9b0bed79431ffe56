// Package observer defines the capability an external collaborator
// implements to be notified once per cycle-budget boundary, and the
// stop signal it uses to asynchronously request that emulation halt.
//
// Both types are re-expressions of a single pattern the teacher corpus
// uses for exactly this kind of cross-goroutine signaling: a one-method
// interface for a unidirectional, level-style signal (github.com/jmchacon/6502's
// irq.Sender, which a Chip polls once per Tick via Raised()). CycleObserver
// plays the same role for the cycle driver's callback, and StopSignal plays
// it for the asynchronous stop request, backed by an atomic flag instead of
// a hardware line.
package observer

import "sync/atomic"

// CycleObserver is implemented by whatever drives emulation forward from the
// outside (a UI, a tracer, a test harness). OnCycleBoundary is invoked
// exactly once every time the cycle driver's instruction budget is
// exhausted. It runs synchronously on the driver's own goroutine: it must
// not call back into Run or Init, and it must return promptly since its
// duration directly delays the next instruction (spec.md §6).
type CycleObserver interface {
	// OnCycleBoundary is called once the budget is exhausted, before it is
	// refilled; all register/RAM accessors may be read freely here since no
	// instruction is concurrently in flight.
	OnCycleBoundary()
}

// StopSignal is an asynchronously settable flag read once per cycle driver
// iteration. A Set from one goroutine and a Requested from another are
// safe to race against each other; acquire/release ordering (provided by
// sync/atomic) is the only guarantee needed since no other memory is
// synchronized through this flag (spec.md §5).
type StopSignal struct {
	requested atomic.Bool
}

// Requested reports whether Set has been called since the last Reset.
func (s *StopSignal) Requested() bool {
	return s.requested.Load()
}

// Set asynchronously requests that the cycle driver stop at the next
// iteration boundary. Safe to call from any goroutine.
func (s *StopSignal) Set() {
	s.requested.Store(true)
}

// Reset clears the flag, done once per Run so a Chip can be restarted.
func (s *StopSignal) Reset() {
	s.requested.Store(false)
}
