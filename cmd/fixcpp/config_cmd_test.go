package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/fixcpp/fixcpp/internal/config"
)

func TestConfigSetGet(t *testing.T) {
	env := newTestEnv(t)

	cmd := newConfigCmd()
	cmd.SetArgs([]string{"set", "jobs", "16"})
	if err := cmd.ExecuteContext(env.ctx); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	if saved := env.reload(t); saved.Jobs != 16 {
		t.Errorf("saved jobs = %d, want 16", saved.Jobs)
	}

	cmd = newConfigCmd()
	cmd.SetArgs([]string{"get", "jobs"})
	if err := cmd.ExecuteContext(env.ctx); err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if got := strings.TrimSpace(env.out.String()); got != "16" {
		t.Errorf("config get jobs = %q, want 16", got)
	}
}

func TestConfigSet_Invalid(t *testing.T) {
	env := newTestEnv(t)

	tests := [][]string{
		{"set", "tool_path", "relative/path"},
		{"set", "jobs", "-1"},
		{"set", "no_such_key", "x"},
	}
	for _, args := range tests {
		cmd := newConfigCmd()
		cmd.SetArgs(args)
		if err := cmd.ExecuteContext(env.ctx); err == nil {
			t.Errorf("config %v: expected error", args)
		}
	}
}

func TestConfigShow(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.ToolPath = "/usr/bin/run-clang-tidy"

	cmd := newConfigCmd()
	cmd.SetArgs([]string{"show"})
	if err := cmd.ExecuteContext(env.ctx); err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(env.out.String(), `tool_path = "/usr/bin/run-clang-tidy"`) {
		t.Errorf("output = %q", env.out.String())
	}
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "fixcpp", "config.toml")
	t.Setenv(config.EnvConfig, path)

	cmd := newConfigCmd()
	cmd.SetArgs([]string{"init"})
	if err := cmd.ExecuteContext(env.ctx); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := config.Load(path); err != nil {
		t.Fatalf("generated config invalid: %v", err)
	}

	cmd = newConfigCmd()
	cmd.SetArgs([]string{"init"})
	if err := cmd.ExecuteContext(env.ctx); err == nil {
		t.Fatal("second init without --force should fail")
	}

	cmd = newConfigCmd()
	cmd.SetArgs([]string{"init", "--force"})
	if err := cmd.ExecuteContext(env.ctx); err != nil {
		t.Fatalf("config init --force failed: %v", err)
	}
}

func TestConfigImport(t *testing.T) {
	env := newTestEnv(t)

	legacy := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, legacy, `{
  "run_clang_tidy_path": "/opt/llvm/run-clang-tidy",
  "project_path": "/src/app",
  "fixes": [{"name": "modernize-use-override", "enabled": true}]
}`, 0o644)

	cmd := newConfigCmd()
	cmd.SetArgs([]string{"import", legacy})
	if err := cmd.ExecuteContext(env.ctx); err != nil {
		t.Fatalf("config import failed: %v", err)
	}

	saved := env.reload(t)
	if saved.ToolPath != "/opt/llvm/run-clang-tidy" || saved.ProjectPath != "/src/app" {
		t.Errorf("saved paths = %q, %q", saved.ToolPath, saved.ProjectPath)
	}
	if len(saved.Fixes) != 1 || !saved.Fixes[0].Enabled {
		t.Errorf("saved fixes = %v", saved.Fixes)
	}
}
