package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/fixcpp/fixcpp/internal/fix"
	"github.com/fixcpp/fixcpp/internal/lock"
	"github.com/fixcpp/fixcpp/internal/orchestrator"
	"github.com/fixcpp/fixcpp/internal/storage"
)

// Environment variables read by Load.
const (
	EnvConfig      = "FIXCPP_CONFIG"
	EnvToolPath    = "FIXCPP_TOOL_PATH"
	EnvProjectPath = "FIXCPP_PROJECT_PATH"
	EnvTheme       = "FIXCPP_THEME"
	EnvThemeMode   = "FIXCPP_THEME_MODE"
)

// Defaults for empty values.
const (
	DefaultInterpreter = "python"
	DefaultJobs        = 10
)

// ThemeConfig holds UI theme settings.
type ThemeConfig struct {
	Name    string `toml:"name" json:"name,omitempty"`       // preset family: "default", "dracula", "nord", ...
	Mode    string `toml:"mode" json:"mode,omitempty"`       // "auto", "light" or "dark"
	Primary string `toml:"primary" json:"primary,omitempty"` // optional color override
	Accent  string `toml:"accent" json:"accent,omitempty"`   // optional color override
}

// Config holds the fixcpp configuration.
type Config struct {
	ToolPath              string      `toml:"tool_path" json:"tool_path,omitempty"`
	BuildCommandsPath     string      `toml:"build_commands_path" json:"build_commands_path,omitempty"`
	ProjectPath           string      `toml:"project_path" json:"project_path,omitempty"`
	BuildCommandsFilePath string      `toml:"build_commands_file_path" json:"build_commands_file_path,omitempty"`
	CatalogPath           string      `toml:"catalog_path" json:"catalog_path,omitempty"`
	Interpreter           *string     `toml:"interpreter" json:"interpreter,omitempty"` // nil = DefaultInterpreter
	Jobs                  int         `toml:"jobs" json:"jobs,omitempty"`
	KeepGenerated         bool        `toml:"keep_generated" json:"keep_generated"`
	Theme                 ThemeConfig `toml:"theme" json:"theme"`
	Fixes                 []fix.Fix   `toml:"fixes" json:"fixes"`

	path string // file the config was loaded from
}

// Default returns the default configuration.
func Default() Config {
	return Config{}
}

// Path returns the file this config was loaded from or will be saved to.
func (c *Config) Path() string {
	return c.path
}

// InterpreterOrDefault returns the interpreter used to run the tool.
func (c *Config) InterpreterOrDefault() string {
	if c.Interpreter == nil {
		return DefaultInterpreter
	}
	return *c.Interpreter
}

// JobsOrDefault returns the configured parallelism.
func (c *Config) JobsOrDefault() int {
	if c.Jobs < 1 {
		return DefaultJobs
	}
	return c.Jobs
}

// CompileCommandsPath returns where compile_commands.json is expected.
// An explicit build_commands_file_path wins over build_commands_path.
func (c *Config) CompileCommandsPath() string {
	if c.BuildCommandsFilePath != "" {
		return c.BuildCommandsFilePath
	}
	if c.BuildCommandsPath != "" {
		return filepath.Join(c.BuildCommandsPath, "compile_commands.json")
	}
	return ""
}

// RunConfiguration returns the orchestrator input for the current settings.
// The fix list is copied.
func (c *Config) RunConfiguration() orchestrator.RunConfiguration {
	return orchestrator.RunConfiguration{
		ToolPath:    c.ToolPath,
		ProjectPath: c.ProjectPath,
		Fixes:       append([]fix.Fix(nil), c.Fixes...),
	}
}

// Reconcile merges discovered check names into the fix list and returns how
// many were added.
func (c *Config) Reconcile(discovered []string) int {
	before := len(c.Fixes)
	c.Fixes = fix.Reconcile(c.Fixes, discovered)
	return len(c.Fixes) - before
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// DefaultPath returns the config file location: $FIXCPP_CONFIG or
// ~/.config/fixcpp/config.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fixcpp", "config.toml"), nil
}

// Load reads config from path.
// Returns Default() if file doesn't exist (no error).
// Returns error only if file exists but is invalid.
func Load(path string) (Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err == nil {
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return withPath(Default(), path), fmt.Errorf("failed to parse config file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return withPath(Default(), path), fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
		}
	}

	applyEnv(&cfg)

	if err := cfg.normalize(); err != nil {
		return withPath(Default(), path), err
	}

	return cfg, nil
}

func withPath(c Config, path string) Config {
	c.path = path
	return c
}

func applyEnv(c *Config) {
	if v := os.Getenv(EnvToolPath); v != "" {
		c.ToolPath = v
	}
	if v := os.Getenv(EnvProjectPath); v != "" {
		c.ProjectPath = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		c.Theme.Name = v
	}
	if v := os.Getenv(EnvThemeMode); v != "" {
		c.Theme.Mode = v
	}
}

// normalize validates the config and expands ~ in path fields.
func (c *Config) normalize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	for _, p := range c.pathFields() {
		expanded, err := expandPath(*p.value)
		if err != nil {
			return fmt.Errorf("expand %s: %w", p.name, err)
		}
		*p.value = expanded
	}
	return nil
}

type pathField struct {
	name  string
	value *string
}

func (c *Config) pathFields() []pathField {
	return []pathField{
		{"tool_path", &c.ToolPath},
		{"build_commands_path", &c.BuildCommandsPath},
		{"project_path", &c.ProjectPath},
		{"build_commands_file_path", &c.BuildCommandsFilePath},
		{"catalog_path", &c.CatalogPath},
	}
}

// SettableKeys lists the keys accepted by Set.
var SettableKeys = []string{
	"tool_path",
	"project_path",
	"build_commands_path",
	"build_commands_file_path",
	"catalog_path",
	"interpreter",
	"jobs",
	"keep_generated",
}

// Set updates a single setting from its string form and validates it.
func (c *Config) Set(key, value string) error {
	for _, p := range c.pathFields() {
		if p.name != key {
			continue
		}
		if err := ValidatePath(value, key); err != nil {
			return err
		}
		expanded, err := expandPath(value)
		if err != nil {
			return err
		}
		*p.value = expanded
		return nil
	}

	switch key {
	case "interpreter":
		v := value
		c.Interpreter = &v
	case "jobs":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid jobs %q: must be a non-negative integer", value)
		}
		c.Jobs = n
	case "keep_generated":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid keep_generated %q: must be true or false", value)
		}
		c.KeepGenerated = b
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(SettableKeys, ", "))
	}
	return nil
}

// Get returns the string form of a settable key.
func (c *Config) Get(key string) (string, error) {
	for _, p := range c.pathFields() {
		if p.name == key {
			return *p.value, nil
		}
	}
	switch key {
	case "interpreter":
		return c.InterpreterOrDefault(), nil
	case "jobs":
		return strconv.Itoa(c.JobsOrDefault()), nil
	case "keep_generated":
		return strconv.FormatBool(c.KeepGenerated), nil
	}
	return "", fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(SettableKeys, ", "))
}

// Encode renders the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the config back to its path atomically, holding a file lock
// so concurrent fixcpp processes don't interleave writes.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no file path")
	}
	if err := c.Validate(); err != nil {
		return err
	}

	data, err := c.Encode()
	if err != nil {
		return err
	}

	return lock.With(c.path+".lock", func() error {
		return storage.WriteAtomic(c.path, data, 0o644)
	})
}

// DefaultConfig returns the commented template written by Init.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at path.
// If force is true, overwrites existing file.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}
	return storage.WriteAtomic(path, []byte(defaultConfig), 0o644)
}

const defaultConfig = `# fixcpp configuration

# run-clang-tidy script shipped with LLVM.
# Paths must be absolute or start with ~ (no relative paths like "." or "..")
# tool_path = "/usr/lib/llvm-18/bin/run-clang-tidy"

# Project to apply fixes to. A .clang-tidy selecting one check at a time is
# written here and run-clang-tidy runs with this as working directory.
# project_path = "~/src/app"

# Build directory containing compile_commands.json, or the file itself.
# build_commands_path = "~/src/app/build"
# build_commands_file_path = "~/src/app/build/compile_commands.json"

# Text file listing available checks, one per line (# starts a comment).
# Run "fixcpp fixes sync" after editing it.
# catalog_path = "~/.config/fixcpp/fixes.txt"

# Interpreter used to run tool_path. Set to "" to execute the tool directly.
# interpreter = "python"

# Parallel jobs passed to run-clang-tidy (-j).
# jobs = 10

# Leave the generated .clang-tidy in place after a run instead of restoring
# the project's original one.
# keep_generated = false

# UI theme
# [theme]
# name = "default"   # none, default, dracula, nord, gruvbox, catppuccin
# mode = "auto"      # auto, light, dark

# Checks known to fixcpp. Toggle with "fixcpp fixes enable/disable" or pick
# interactively with "fixcpp fixes select".
# [[fixes]]
# name = "modernize-use-override"
# enabled = true
`
