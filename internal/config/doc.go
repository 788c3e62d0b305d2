// Package config handles loading, validation and saving of the fixcpp
// configuration.
//
// Configuration is read from ~/.config/fixcpp/config.toml. The location can
// be changed with --config or the FIXCPP_CONFIG environment variable.
//
// # Configuration Sources (highest priority first)
//
//   - FIXCPP_TOOL_PATH env var: path to run-clang-tidy
//   - FIXCPP_PROJECT_PATH env var: project to apply fixes to
//   - FIXCPP_THEME, FIXCPP_THEME_MODE env vars: UI theme
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - tool_path: run-clang-tidy script or binary
//   - project_path: directory fixes are applied in; .clang-tidy is written here
//   - build_commands_path: build directory holding compile_commands.json
//   - build_commands_file_path: explicit compile_commands.json location
//   - catalog_path: text file listing available checks, one per line
//   - interpreter: runs tool_path (default "python"; "" runs it directly)
//   - jobs: parallelism passed to run-clang-tidy (default 10)
//   - keep_generated: leave the generated .clang-tidy after a run
//
// # Fixes
//
// Each known check is stored with its enabled flag:
//
//	[[fixes]]
//	name = "modernize-use-override"
//	enabled = true
//
// New checks from the catalog are appended disabled; existing entries are
// never removed or reset.
//
// # Path Validation
//
// Paths must be absolute or start with ~ (no relative paths like "." or
// "..") to avoid confusion about the working directory. ~ is expanded on
// load.
package config
