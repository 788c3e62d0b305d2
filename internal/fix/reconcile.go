package fix

// Reconcile merges a freshly discovered catalog into the known fixes.
//
// Known fixes are kept unchanged and in order, including ones the catalog no
// longer lists. Discovered names that are not known yet are appended in
// catalog order with Enabled=false; duplicates in the catalog are collapsed
// to their first occurrence. Neither input is modified.
func Reconcile(known []Fix, discovered []string) []Fix {
	out := make([]Fix, 0, len(known)+len(discovered))
	seen := make(map[string]bool, len(known)+len(discovered))

	for _, f := range known {
		out = append(out, f)
		seen[f.Name] = true
	}

	for _, name := range discovered {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, Fix{Name: name, Enabled: false})
	}

	return out
}
