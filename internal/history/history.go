// Package history keeps a log of past fix runs in ~/.fixcpp/history.json.
// `fixcpp history` reads it to show what was applied to which project.
package history

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/fixcpp/fixcpp/internal/fix"
	"github.com/fixcpp/fixcpp/internal/lock"
	"github.com/fixcpp/fixcpp/internal/orchestrator"
	"github.com/fixcpp/fixcpp/internal/storage"
)

// MaxRecords is how many runs are kept; older ones are dropped.
const MaxRecords = 50

// Failure is a fix that ran but did not succeed.
type Failure struct {
	Fix      string `json:"fix"`
	ExitCode int    `json:"exit_code"`
	Message  string `json:"message,omitempty"`
}

// Record describes one finished run.
type Record struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	ProjectPath string    `json:"project_path"`
	ToolPath    string    `json:"tool_path"`
	State       string    `json:"state"`
	Progress    float64   `json:"progress"`
	Total       int       `json:"total"`
	Applied     []string  `json:"applied"` // fixes that ran and exited 0
	Failures    []Failure `json:"failures,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// History stores recorded runs, newest first.
type History struct {
	Runs []Record `json:"runs"`
}

// Path returns the path to the history file.
func Path() (string, error) {
	dir, err := storage.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.json"), nil
}

// NewRecord builds a record for a run of cfg that started at startedAt and
// ended with out.
func NewRecord(cfg orchestrator.RunConfiguration, startedAt time.Time, out orchestrator.Outcome) Record {
	enabled := fix.Names(fix.Enabled(cfg.Fixes))
	failed := make(map[string]bool, len(out.Failures))
	for _, f := range out.Failures {
		failed[f.Fix] = true
	}

	applied := []string{}
	for _, name := range enabled[:min(out.Applied, len(enabled))] {
		if !failed[name] {
			applied = append(applied, name)
		}
	}

	r := Record{
		ID:          uuid.NewString(),
		StartedAt:   startedAt,
		FinishedAt:  time.Now(),
		ProjectPath: cfg.ProjectPath,
		ToolPath:    cfg.ToolPath,
		State:       out.State.String(),
		Progress:    out.Progress,
		Total:       out.Total,
		Applied:     applied,
	}
	for _, f := range out.Failures {
		failure := Failure{Fix: f.Fix, ExitCode: f.ExitCode}
		if f.Err != nil {
			failure.Message = f.Err.Error()
		}
		r.Failures = append(r.Failures, failure)
	}
	if out.Err != nil {
		r.Error = out.Err.Error()
	}
	return r
}

// Load reads the history at path.
// A missing or corrupted file yields an empty history.
func Load(path string) (*History, error) {
	var h History
	if err := storage.LoadJSON(path, &h); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &History{}, nil
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, err
		}
		// Corrupted - start fresh
		return &History{}, nil
	}
	return &h, nil
}

// Add prepends r and trims the history to MaxRecords.
func (h *History) Add(r Record) {
	h.Runs = append([]Record{r}, h.Runs...)
	if len(h.Runs) > MaxRecords {
		h.Runs = h.Runs[:MaxRecords]
	}
}

// Latest returns up to n most recent records (all if n <= 0).
func (h *History) Latest(n int) []Record {
	if n <= 0 || n >= len(h.Runs) {
		return h.Runs
	}
	return h.Runs[:n]
}

// Append records r in the history file at path under a file lock.
func Append(path string, r Record) error {
	return lock.With(path+".lock", func() error {
		h, err := Load(path)
		if err != nil {
			return err
		}
		h.Add(r)
		return storage.SaveJSON(path, h)
	})
}
