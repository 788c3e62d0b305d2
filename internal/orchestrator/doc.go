// Package orchestrator applies fixes one at a time against an external
// linter.
//
// An [Orchestrator] owns at most one run. [Orchestrator.Start] snapshots the
// [RunConfiguration], launches the run loop on its own goroutine and returns a
// [Handle] immediately, so an interactive caller never blocks. The caller can
// poll [Orchestrator.Observe] at any time and request early termination with
// [Orchestrator.Cancel].
//
// # Run Loop
//
// For every enabled fix, in order:
//
//  1. stop as Cancelled if cancellation was requested
//  2. write the lint configuration selecting only this fix (fatal on error)
//  3. invoke the linter and wait for it (failures are recorded, not fatal)
//  4. advance progress by 100/N
//
// # Cancellation
//
// Cancel is cooperative: it is checked between fixes and never interrupts a
// subprocess that is already running, so the worst-case latency is one
// linter invocation. Cancelling the context passed to Start is the forceful
// path; the invoker is expected to kill its subprocess when that context is
// done.
package orchestrator
