package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/fixcpp/fixcpp/internal/fix"
)

// ErrAlreadyRunning is returned by Start while a run is in flight.
var ErrAlreadyRunning = errors.New("a fix run is already in progress")

// State is the lifecycle state of an orchestrator.
type State int

const (
	// Idle means no run has been started yet.
	Idle State = iota
	// Running means the run loop is active.
	Running
	// Completed means every enabled fix was attempted.
	Completed
	// Cancelled means the run stopped early on request.
	Cancelled
	// Failed means a fatal error ended the run.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ParseState maps a String() value back to its State.
// Unknown strings map to Idle.
func ParseState(s string) State {
	for _, st := range []State{Running, Completed, Cancelled, Failed} {
		if st.String() == s {
			return st
		}
	}
	return Idle
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == Completed || s == Cancelled || s == Failed
}

// RunConfiguration is the input to a single run.
type RunConfiguration struct {
	ToolPath    string
	ProjectPath string
	Fixes       []fix.Fix
}

// Invocation describes one linter call.
type Invocation struct {
	ToolPath    string
	ProjectPath string
	Fix         string
}

// Result is what the invoker reports about a finished linter call.
// Output is opaque diagnostic data.
type Result struct {
	ExitCode int
	Output   string
}

// ArtifactWriter materializes the lint configuration that selects exactly
// one check in dir.
type ArtifactWriter interface {
	Write(dir, check string) error
}

// Invoker runs the linter in the mode that applies fixes and blocks until it
// exits. A non-nil error means the process could not be launched or waited
// for; a non-zero ExitCode with a nil error means it ran and failed.
type Invoker interface {
	Invoke(ctx context.Context, inv Invocation) (Result, error)
}

// ArtifactError is the fatal error raised when the lint configuration for a
// fix cannot be written.
type ArtifactError struct {
	Fix string
	Dir string
	Err error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("write lint config for %s in %s: %v", e.Fix, e.Dir, e.Err)
}

func (e *ArtifactError) Unwrap() error { return e.Err }

// FixError records a non-fatal failure applying a single fix.
type FixError struct {
	Fix      string
	ExitCode int    // -1 if the process never ran to completion
	Output   string // captured linter output
	Err      error  // launch/wait error, nil for a plain non-zero exit
}

func (e FixError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Fix, e.Err)
	}
	return fmt.Sprintf("%s: exit status %d", e.Fix, e.ExitCode)
}

// Status is a point-in-time snapshot of the orchestrator.
type Status struct {
	State    State
	Running  bool
	Progress float64 // 0..100
	Current  string  // fix being applied, empty between fixes
	Applied  int     // fixes attempted so far
	Total    int     // enabled fixes in this run
	Err      error   // fatal error when State is Failed
	Failures []FixError

	// CancelRequested is set once Cancel was called during this run.
	CancelRequested bool
}

// Outcome is the final status of a finished run.
type Outcome = Status
