package config

import (
	"fmt"

	"github.com/fixcpp/fixcpp/internal/fix"
	"github.com/fixcpp/fixcpp/internal/storage"
)

// legacyConfig is the JSON layout written by earlier releases (config.json).
type legacyConfig struct {
	RunClangTidyPath      string    `json:"run_clang_tidy_path"`
	BuildCommandsPath     string    `json:"build_commands_path"`
	ProjectPath           string    `json:"project_path"`
	BuildCommandsFilePath string    `json:"build_commands_file_path"`
	Fixes                 []fix.Fix `json:"fixes"`
}

// ImportJSON merges a legacy config.json into c. Non-empty paths replace the
// current ones. Imported fixes keep their enabled flag; fixes already known
// to c are left untouched. Returns the number of fixes added.
func (c *Config) ImportJSON(path string) (int, error) {
	var legacy legacyConfig
	if err := storage.LoadJSON(path, &legacy); err != nil {
		return 0, fmt.Errorf("import %s: %w", path, err)
	}

	for _, kv := range []struct {
		dst *string
		val string
	}{
		{&c.ToolPath, legacy.RunClangTidyPath},
		{&c.BuildCommandsPath, legacy.BuildCommandsPath},
		{&c.ProjectPath, legacy.ProjectPath},
		{&c.BuildCommandsFilePath, legacy.BuildCommandsFilePath},
	} {
		if kv.val != "" {
			*kv.dst = kv.val
		}
	}

	added := 0
	for _, f := range legacy.Fixes {
		if f.Name == "" {
			continue
		}
		if fix.Find(c.Fixes, f.Name) >= 0 {
			continue
		}
		c.Fixes = append(c.Fixes, f)
		added++
	}

	if err := c.normalize(); err != nil {
		return added, fmt.Errorf("import %s: %w", path, err)
	}
	return added, nil
}
