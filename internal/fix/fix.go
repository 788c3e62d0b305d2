package fix

import "slices"

// Fix is a single clang-tidy check and whether the user wants it applied.
type Fix struct {
	Name    string `toml:"name" json:"name"`
	Enabled bool   `toml:"enabled" json:"enabled"`
}

// Enabled returns the enabled fixes in their original order.
func Enabled(fixes []Fix) []Fix {
	var out []Fix
	for _, f := range fixes {
		if f.Enabled {
			out = append(out, f)
		}
	}
	return out
}

// Names returns the names of the given fixes.
func Names(fixes []Fix) []string {
	names := make([]string, len(fixes))
	for i, f := range fixes {
		names[i] = f.Name
	}
	return names
}

// Find returns the index of the fix with the given name, or -1.
func Find(fixes []Fix, name string) int {
	return slices.IndexFunc(fixes, func(f Fix) bool { return f.Name == name })
}

// SetEnabled returns a copy of fixes with the named fix set to enabled.
// The second return value reports whether the fix was found; when it is
// false the returned slice equals the input.
func SetEnabled(fixes []Fix, name string, enabled bool) ([]Fix, bool) {
	out := slices.Clone(fixes)
	idx := Find(out, name)
	if idx < 0 {
		return out, false
	}
	out[idx].Enabled = enabled
	return out, true
}

// EnableOnly returns a copy of fixes where exactly the named fixes are
// enabled. Names not present in fixes are returned as missing.
func EnableOnly(fixes []Fix, names []string) ([]Fix, []string) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	out := slices.Clone(fixes)
	for i := range out {
		out[i].Enabled = want[out[i].Name]
		delete(want, out[i].Name)
	}

	var missing []string
	for _, n := range names {
		if want[n] {
			missing = append(missing, n)
			delete(want, n)
		}
	}
	return out, missing
}
