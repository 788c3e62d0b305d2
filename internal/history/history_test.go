package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/fixcpp/fixcpp/internal/fix"
	"github.com/fixcpp/fixcpp/internal/orchestrator"
)

func TestNewRecord(t *testing.T) {
	t.Parallel()

	cfg := orchestrator.RunConfiguration{
		ToolPath:    "/llvm/run-clang-tidy",
		ProjectPath: "/src/app",
		Fixes: []fix.Fix{
			{Name: "modernize-use-override", Enabled: true},
			{Name: "modernize-use-auto"},
			{Name: "modernize-use-nullptr", Enabled: true},
			{Name: "readability-braces-around-statements", Enabled: true},
		},
	}
	out := orchestrator.Outcome{
		State:    orchestrator.Cancelled,
		Progress: 200.0 / 3,
		Applied:  2,
		Total:    3,
		Failures: []orchestrator.FixError{
			{Fix: "modernize-use-nullptr", ExitCode: -1, Err: errors.New("exec: not found")},
		},
	}
	started := time.Now().Add(-time.Minute)

	r := NewRecord(cfg, started, out)

	if r.ID == "" {
		t.Error("expected a run ID")
	}
	if r.State != "cancelled" || r.Total != 3 || r.ProjectPath != "/src/app" {
		t.Errorf("unexpected record: %+v", r)
	}
	if want := []string{"modernize-use-override"}; !reflect.DeepEqual(r.Applied, want) {
		t.Errorf("Applied = %v, want %v", r.Applied, want)
	}
	if len(r.Failures) != 1 || r.Failures[0].Message != "exec: not found" {
		t.Errorf("Failures = %+v", r.Failures)
	}
	if !r.StartedAt.Equal(started) || r.FinishedAt.Before(started) {
		t.Errorf("timestamps not set correctly: %v -> %v", r.StartedAt, r.FinishedAt)
	}

	if other := NewRecord(cfg, started, out); other.ID == r.ID {
		t.Error("expected unique run IDs")
	}
}

func TestAppendAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.json")

	for i := 0; i < 3; i++ {
		if err := Append(path, Record{ID: fmt.Sprintf("run-%d", i), State: "completed"}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	h, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(h.Runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(h.Runs))
	}
	if h.Runs[0].ID != "run-2" {
		t.Errorf("newest run first: got %q", h.Runs[0].ID)
	}
	if got := h.Latest(2); len(got) != 2 || got[1].ID != "run-1" {
		t.Errorf("Latest(2) = %+v", got)
	}
	if got := h.Latest(0); len(got) != 3 {
		t.Errorf("Latest(0) should return all, got %d", len(got))
	}
}

func TestAdd_CapsRecords(t *testing.T) {
	t.Parallel()

	h := &History{}
	for i := 0; i < MaxRecords+5; i++ {
		h.Add(Record{ID: fmt.Sprintf("run-%d", i)})
	}

	if len(h.Runs) != MaxRecords {
		t.Errorf("len = %d, want %d", len(h.Runs), MaxRecords)
	}
	if h.Runs[0].ID != fmt.Sprintf("run-%d", MaxRecords+4) {
		t.Errorf("newest = %q", h.Runs[0].ID)
	}
}

func TestLoad_MissingAndCorrupted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	h, err := Load(filepath.Join(dir, "missing.json"))
	if err != nil || len(h.Runs) != 0 {
		t.Errorf("Load(missing) = %+v, %v; want empty history", h, err)
	}

	corrupted := filepath.Join(dir, "corrupted.json")
	if err := os.WriteFile(corrupted, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	h, err = Load(corrupted)
	if err != nil || len(h.Runs) != 0 {
		t.Errorf("Load(corrupted) = %+v, %v; want empty history", h, err)
	}
}

func TestPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("FIXCPP_HOME", home)

	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, "history.json"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}
