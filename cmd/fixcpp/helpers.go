package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fixcpp/fixcpp/internal/config"
	"github.com/fixcpp/fixcpp/internal/fix"
)

var errNoConfig = errors.New("no configuration loaded")

// setFixes enables or disables the named fixes in cfg. All names must exist.
func setFixes(cfg *config.Config, names []string, enabled bool) error {
	fixes := cfg.Fixes
	var missing []string
	for _, name := range names {
		var found bool
		fixes, found = fix.SetEnabled(fixes, name, enabled)
		if !found {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("unknown fix: %s (run 'fixcpp fixes sync' to import new checks)", strings.Join(missing, ", "))
	}
	cfg.Fixes = fixes
	return nil
}
