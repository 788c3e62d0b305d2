package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/fixcpp/fixcpp/internal/fix"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if got := cfg.InterpreterOrDefault(); got != DefaultInterpreter {
		t.Errorf("InterpreterOrDefault() = %q, want %q", got, DefaultInterpreter)
	}
	if got := cfg.JobsOrDefault(); got != DefaultJobs {
		t.Errorf("JobsOrDefault() = %d, want %d", got, DefaultJobs)
	}
	if cfg.KeepGenerated {
		t.Error("KeepGenerated should default to false")
	}
}

func TestLoadNonexistent(t *testing.T) {
	t.Setenv(EnvToolPath, "")
	t.Setenv(EnvProjectPath, "")

	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
	if len(cfg.Fixes) != 0 {
		t.Errorf("Fixes = %v, want empty", cfg.Fixes)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvToolPath, "")
	t.Setenv(EnvProjectPath, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
tool_path = "/usr/bin/run-clang-tidy"
project_path = "/src/app"
build_commands_path = "/src/app/build"
interpreter = ""
jobs = 4
keep_generated = true

[theme]
name = "nord"
mode = "dark"

[[fixes]]
name = "modernize-use-override"
enabled = true

[[fixes]]
name = "readability-braces-around-statements"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ToolPath != "/usr/bin/run-clang-tidy" {
		t.Errorf("ToolPath = %q", cfg.ToolPath)
	}
	if cfg.ProjectPath != "/src/app" {
		t.Errorf("ProjectPath = %q", cfg.ProjectPath)
	}
	if got := cfg.InterpreterOrDefault(); got != "" {
		t.Errorf("InterpreterOrDefault() = %q, want empty (explicitly disabled)", got)
	}
	if got := cfg.JobsOrDefault(); got != 4 {
		t.Errorf("JobsOrDefault() = %d, want 4", got)
	}
	if !cfg.KeepGenerated {
		t.Error("KeepGenerated = false, want true")
	}
	if cfg.Theme != (ThemeConfig{Name: "nord", Mode: "dark"}) {
		t.Errorf("Theme = %+v", cfg.Theme)
	}
	want := []fix.Fix{
		{Name: "modernize-use-override", Enabled: true},
		{Name: "readability-braces-around-statements", Enabled: false},
	}
	if len(cfg.Fixes) != len(want) {
		t.Fatalf("Fixes = %v, want %v", cfg.Fixes, want)
	}
	for i := range want {
		if cfg.Fixes[i] != want[i] {
			t.Errorf("Fixes[%d] = %+v, want %+v", i, cfg.Fixes[i], want[i])
		}
	}
	if got := cfg.CompileCommandsPath(); got != "/src/app/build/compile_commands.json" {
		t.Errorf("CompileCommandsPath() = %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(EnvToolPath, "")
	t.Setenv(EnvProjectPath, "")
	t.Setenv(EnvTheme, "")
	t.Setenv(EnvThemeMode, "")

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"invalid toml", `tool_path = `, "failed to parse"},
		{"unknown key", `run_clang_tidy_path = "/x"`, "unknown config key"},
		{"relative path", `project_path = "./app"`, "must be absolute"},
		{"negative jobs", `jobs = -1`, "jobs"},
		{"bad theme", "[theme]\nname = \"solarized\"", "theme.name"},
		{"bad mode", "[theme]\nmode = \"dim\"", "theme.mode"},
		{"empty fix name", "[[fixes]]\nname = \"\"", "name must not be empty"},
		{"duplicate fix", "[[fixes]]\nname = \"a\"\n[[fixes]]\nname = \"a\"", "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			writeFile(t, path, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadExpandsTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvToolPath, "")
	t.Setenv(EnvProjectPath, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `project_path = "~/src/app"`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(home, "src", "app"); cfg.ProjectPath != want {
		t.Errorf("ProjectPath = %q, want %q", cfg.ProjectPath, want)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	// Cannot use t.Parallel() because t.Setenv mutates process env
	t.Run("tool and project paths", func(t *testing.T) {
		t.Setenv(EnvToolPath, "/opt/llvm/run-clang-tidy")
		t.Setenv(EnvProjectPath, "/work/proj")
		cfg := Config{ToolPath: "/usr/bin/run-clang-tidy", ProjectPath: "/src"}
		applyEnv(&cfg)
		if cfg.ToolPath != "/opt/llvm/run-clang-tidy" {
			t.Errorf("ToolPath = %q", cfg.ToolPath)
		}
		if cfg.ProjectPath != "/work/proj" {
			t.Errorf("ProjectPath = %q", cfg.ProjectPath)
		}
	})

	t.Run("theme", func(t *testing.T) {
		t.Setenv(EnvTheme, "dracula")
		t.Setenv(EnvThemeMode, "light")
		cfg := Default()
		applyEnv(&cfg)
		if cfg.Theme.Name != "dracula" || cfg.Theme.Mode != "light" {
			t.Errorf("Theme = %+v", cfg.Theme)
		}
	})

	t.Run("empty env vars leave config unchanged", func(t *testing.T) {
		t.Setenv(EnvToolPath, "")
		t.Setenv(EnvProjectPath, "")
		t.Setenv(EnvTheme, "")
		t.Setenv(EnvThemeMode, "")
		cfg := Config{ToolPath: "/a", ProjectPath: "/b", Theme: ThemeConfig{Name: "nord"}}
		applyEnv(&cfg)
		if cfg.ToolPath != "/a" || cfg.ProjectPath != "/b" || cfg.Theme.Name != "nord" {
			t.Errorf("config changed: %+v", cfg)
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvToolPath, "")
	t.Setenv(EnvProjectPath, "")

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.ToolPath = "/usr/bin/run-clang-tidy"
	cfg.Jobs = 2
	cfg.Reconcile([]string{"a", "b"})
	cfg.Fixes, _ = fix.SetEnabled(cfg.Fixes, "b", true)

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.ToolPath != cfg.ToolPath || got.Jobs != 2 {
		t.Errorf("reloaded = %+v", got)
	}
	if got.Interpreter != nil {
		t.Errorf("Interpreter = %q, want unset", *got.Interpreter)
	}
	if len(got.Fixes) != 2 || got.Fixes[0].Enabled || !got.Fixes[1].Enabled {
		t.Errorf("Fixes = %+v", got.Fixes)
	}
}

func TestSaveWithoutPath(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := cfg.Save(); err == nil {
		t.Error("expected error saving config without path")
	}
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	cfg := Config{Fixes: []fix.Fix{{Name: "a", Enabled: true}}}
	if added := cfg.Reconcile([]string{"a", "b", "c", "b"}); added != 2 {
		t.Errorf("added = %d, want 2", added)
	}
	if added := cfg.Reconcile([]string{"a", "b", "c"}); added != 0 {
		t.Errorf("second reconcile added = %d, want 0", added)
	}
	if !cfg.Fixes[0].Enabled {
		t.Error("existing fix lost its enabled flag")
	}
}

func TestRunConfigurationCopiesFixes(t *testing.T) {
	t.Parallel()

	cfg := Config{
		ToolPath:    "/t",
		ProjectPath: "/p",
		Fixes:       []fix.Fix{{Name: "a", Enabled: true}},
	}
	rc := cfg.RunConfiguration()
	cfg.Fixes[0].Enabled = false

	if rc.ToolPath != "/t" || rc.ProjectPath != "/p" {
		t.Errorf("RunConfiguration() = %+v", rc)
	}
	if !rc.Fixes[0].Enabled {
		t.Error("RunConfiguration shares the fix slice with the config")
	}
}

func TestSetGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key     string
		value   string
		want    string
		wantErr bool
	}{
		{"tool_path", "/usr/bin/run-clang-tidy", "/usr/bin/run-clang-tidy", false},
		{"project_path", "relative/dir", "", true},
		{"build_commands_path", "/b", "/b", false},
		{"build_commands_file_path", "/b/compile_commands.json", "/b/compile_commands.json", false},
		{"catalog_path", "/c/fixes.txt", "/c/fixes.txt", false},
		{"interpreter", "python3", "python3", false},
		{"interpreter", "", "", false},
		{"jobs", "8", "8", false},
		{"jobs", "many", "", true},
		{"keep_generated", "true", "true", false},
		{"keep_generated", "sometimes", "", true},
		{"theme", "nord", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			err := cfg.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q): %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fixcpp", "config.toml")
	if err := Init(path, false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := Init(path, false); err == nil {
		t.Error("second Init without force should fail")
	}
	if err := Init(path, true); err != nil {
		t.Errorf("Init with force: %v", err)
	}
}

func TestDefaultConfigIsValidTOML(t *testing.T) {
	t.Parallel()

	var cfg Config
	md, err := toml.Decode(defaultConfig, &cfg)
	if err != nil {
		t.Fatalf("default config is not valid TOML: %v", err)
	}
	if len(md.Undecoded()) != 0 {
		t.Errorf("default config has unknown keys: %v", md.Undecoded())
	}
}

func TestImportJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{
  "run_clang_tidy_path": "/usr/bin/run-clang-tidy",
  "build_commands_path": "/src/build",
  "project_path": "/src",
  "build_commands_file_path": "",
  "fixes": [
    {"name": "a", "enabled": true},
    {"name": "b", "enabled": false}
  ]
}`)

	cfg := Config{
		BuildCommandsFilePath: "/keep/compile_commands.json",
		Fixes:                 []fix.Fix{{Name: "b", Enabled: true}},
	}
	added, err := cfg.ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
	if cfg.ToolPath != "/usr/bin/run-clang-tidy" || cfg.ProjectPath != "/src" {
		t.Errorf("paths not imported: %+v", cfg)
	}
	if cfg.BuildCommandsFilePath != "/keep/compile_commands.json" {
		t.Errorf("empty legacy value overwrote existing path: %q", cfg.BuildCommandsFilePath)
	}
	want := []fix.Fix{{Name: "b", Enabled: true}, {Name: "a", Enabled: true}}
	if len(cfg.Fixes) != 2 || cfg.Fixes[0] != want[0] || cfg.Fixes[1] != want[1] {
		t.Errorf("Fixes = %+v, want %+v", cfg.Fixes, want)
	}
}

func TestImportJSONInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{not json`)
	cfg := Default()
	if _, err := cfg.ImportJSON(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestIsValidThemeName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"none", true},
		{"default", true},
		{"dracula", true},
		{"nord", true},
		{"gruvbox", true},
		{"catppuccin", true},
		{"invalid", false},
		{"", false},
		{"DRACULA", false}, // case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isValidThemeName(tt.name)
			if result != tt.valid {
				t.Errorf("isValidThemeName(%q) = %v, want %v", tt.name, result, tt.valid)
			}
		})
	}
}

func TestValidThemeModes(t *testing.T) {
	expected := []string{"auto", "light", "dark"}

	if len(ValidThemeModes) != len(expected) {
		t.Errorf("len(ValidThemeModes) = %d, want %d", len(ValidThemeModes), len(expected))
	}

	for i, name := range expected {
		if ValidThemeModes[i] != name {
			t.Errorf("ValidThemeModes[%d] = %q, want %q", i, ValidThemeModes[i], name)
		}
	}
}

func TestWithConfig_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{ProjectPath: "/src"}
		ctx := WithConfig(context.Background(), cfg)
		got := FromContext(ctx)
		if got != cfg {
			t.Error("FromContext did not return the stored config")
		}
	})

	t.Run("nil when not set", func(t *testing.T) {
		t.Parallel()
		if got := FromContext(context.Background()); got != nil {
			t.Errorf("FromContext on empty context = %v, want nil", got)
		}
	})
}

func TestValidateEnum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		allowed []string
		wantErr bool
	}{
		{"empty value is ok", "", []string{"a", "b"}, false},
		{"valid value", "a", []string{"a", "b"}, false},
		{"invalid value", "c", []string{"a", "b"}, true},
		{"case sensitive", "A", []string{"a", "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateEnum(tt.value, "test", tt.allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateEnum(%q, %v) error = %v, wantErr %v", tt.value, tt.allowed, err, tt.wantErr)
			}
		})
	}
}

func TestFormatOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []string
		want string
	}{
		{"single option", []string{"a"}, `"a"`},
		{"two options", []string{"a", "b"}, `"a" or "b"`},
		{"three options", []string{"a", "b", "c"}, `"a", "b", or "c"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatOptions(tt.opts); got != tt.want {
				t.Errorf("formatOptions(%v) = %q, want %q", tt.opts, got, tt.want)
			}
		})
	}
}
