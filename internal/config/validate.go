package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fixcpp/fixcpp/internal/fix"
)

// Valid enum values for configuration fields.
var (
	ValidThemeNames = []string{"none", "default", "dracula", "nord", "gruvbox", "catppuccin"}
	ValidThemeModes = []string{"auto", "light", "dark"}
)

func isValidThemeName(name string) bool {
	return slices.Contains(ValidThemeNames, name)
}

// Validate checks paths, enums and the fix list.
func (c *Config) Validate() error {
	for _, p := range c.pathFields() {
		if err := ValidatePath(*p.value, p.name); err != nil {
			return err
		}
	}
	if c.Jobs < 0 {
		return fmt.Errorf("invalid jobs %d: must not be negative", c.Jobs)
	}
	if c.Theme.Name != "" && !isValidThemeName(c.Theme.Name) {
		return fmt.Errorf("invalid theme.name %q: must be %s", c.Theme.Name, formatOptions(ValidThemeNames))
	}
	if err := validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes); err != nil {
		return err
	}
	return validateFixes(c.Fixes)
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

func validateFixes(fixes []fix.Fix) error {
	seen := make(map[string]bool, len(fixes))
	for i, f := range fixes {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("invalid fixes[%d]: name must not be empty", i)
		}
		if seen[f.Name] {
			return fmt.Errorf("invalid fixes[%d]: duplicate name %q", i, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
