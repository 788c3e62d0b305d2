package orchestrator

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/fixcpp/fixcpp/internal/fix"
	"github.com/fixcpp/fixcpp/internal/log"
)

// Orchestrator runs fixes sequentially on a background goroutine.
// All methods are safe for concurrent use.
type Orchestrator struct {
	writer   ArtifactWriter
	invoker  Invoker
	observer func(Status)

	mu     sync.Mutex
	status Status
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithObserver registers fn to receive a status snapshot after every state
// change of a run. fn is called on the run goroutine, in order, and must not
// block for long.
func WithObserver(fn func(Status)) Option {
	return func(o *Orchestrator) {
		o.observer = fn
	}
}

// New creates an idle orchestrator.
func New(writer ArtifactWriter, invoker Invoker, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		writer:  writer,
		invoker: invoker,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Handle refers to a single run started by Start.
type Handle struct {
	done    chan struct{}
	outcome Outcome
}

// Done is closed once the run has reached a terminal state.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the run finishes and returns its final status.
func (h *Handle) Wait() Outcome {
	<-h.done
	return h.outcome
}

// Start begins a run of cfg and returns immediately.
// It returns ErrAlreadyRunning, leaving the in-flight run untouched, if a run
// is active. cfg is copied; later changes by the caller do not affect the run.
// ctx is handed to the invoker and checked between fixes.
func (o *Orchestrator) Start(ctx context.Context, cfg RunConfiguration) (*Handle, error) {
	o.mu.Lock()
	if o.status.Running {
		o.mu.Unlock()
		return nil, ErrAlreadyRunning
	}

	snapshot := RunConfiguration{
		ToolPath:    cfg.ToolPath,
		ProjectPath: cfg.ProjectPath,
		Fixes:       slices.Clone(cfg.Fixes),
	}

	o.status = Status{State: Running, Running: true}
	started := o.snapshotLocked()
	o.mu.Unlock()

	h := &Handle{done: make(chan struct{})}

	go func() {
		o.notify(started)
		o.run(ctx, snapshot, h)
	}()

	return h, nil
}

// Cancel asks the active run to stop before its next fix.
// It is a no-op when nothing is running and safe to call repeatedly.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.status.Running {
		o.status.CancelRequested = true
	}
}

// Observe returns the current status without blocking on the run.
func (o *Orchestrator) Observe() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orchestrator) run(ctx context.Context, cfg RunConfiguration, h *Handle) {
	l := log.FromContext(ctx)

	// A panicking writer or invoker must still leave the run terminal.
	defer func() {
		if r := recover(); r != nil {
			select {
			case <-h.done:
				panic(r)
			default:
			}
			o.finish(h, Failed, fmt.Errorf("fix run panicked: %v", r))
		}
	}()

	enabled := fix.Enabled(cfg.Fixes)
	n := len(enabled)
	o.update(func(s *Status) { s.Total = n })

	if n == 0 {
		l.Debug("no fixes enabled, nothing to apply")
		o.finish(h, Completed, nil)
		return
	}

	for i, f := range enabled {
		if o.cancelRequested() || ctx.Err() != nil {
			l.Debug("run cancelled", "applied", i, "total", n)
			o.finish(h, Cancelled, nil)
			return
		}

		o.update(func(s *Status) { s.Current = f.Name })
		l.Debug("applying fix", "index", i+1, "total", n, "fix", f.Name)

		if err := o.writer.Write(cfg.ProjectPath, f.Name); err != nil {
			o.finish(h, Failed, &ArtifactError{Fix: f.Name, Dir: cfg.ProjectPath, Err: err})
			return
		}

		res, err := o.invoker.Invoke(ctx, Invocation{
			ToolPath:    cfg.ToolPath,
			ProjectPath: cfg.ProjectPath,
			Fix:         f.Name,
		})

		var failure *FixError
		switch {
		case err != nil:
			failure = &FixError{Fix: f.Name, ExitCode: -1, Output: res.Output, Err: err}
		case res.ExitCode != 0:
			failure = &FixError{Fix: f.Name, ExitCode: res.ExitCode, Output: res.Output}
		}
		if failure != nil {
			l.Debug("fix failed", "fix", f.Name, "exit", failure.ExitCode, "err", failure.Err)
		}

		progress := float64(i+1) / float64(n) * 100.0
		o.update(func(s *Status) {
			s.Current = ""
			s.Applied = i + 1
			s.Progress = progress
			if failure != nil {
				s.Failures = append(s.Failures, *failure)
			}
		})
	}

	o.finish(h, Completed, nil)
}

func (o *Orchestrator) cancelRequested() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status.CancelRequested
}

// update applies fn to the status and notifies the observer.
func (o *Orchestrator) update(fn func(*Status)) {
	o.mu.Lock()
	fn(&o.status)
	snap := o.snapshotLocked()
	o.mu.Unlock()

	o.notify(snap)
}

// finish moves the run into a terminal state. Running flips to false in the
// same critical section, so no snapshot pairs Running=true with a terminal
// state.
func (o *Orchestrator) finish(h *Handle, state State, err error) {
	o.mu.Lock()
	o.status.State = state
	o.status.Err = err
	o.status.Current = ""
	if state == Completed {
		o.status.Progress = 100.0
	}
	o.status.Running = false
	snap := o.snapshotLocked()
	o.mu.Unlock()

	h.outcome = snap
	o.notify(snap)
	close(h.done)
}

func (o *Orchestrator) notify(s Status) {
	if o.observer != nil {
		o.observer(s)
	}
}

func (o *Orchestrator) snapshotLocked() Status {
	s := o.status
	s.Failures = slices.Clone(o.status.Failures)
	return s
}
