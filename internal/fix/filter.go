package fix

import "github.com/sahilm/fuzzy"

// fixSource implements fuzzy.Source over fix names.
type fixSource []Fix

func (s fixSource) String(i int) string { return s[i].Name }
func (s fixSource) Len() int            { return len(s) }

// Match is a fix matched by a query: its index in the searched slice and
// the rune positions of matched characters in its name.
type Match struct {
	Index     int
	Positions []int
}

// Search returns the matches for query, best match first.
// An empty query matches every fix in original order with no positions.
func Search(fixes []Fix, query string) []Match {
	if query == "" {
		out := make([]Match, len(fixes))
		for i := range fixes {
			out[i] = Match{Index: i}
		}
		return out
	}

	found := fuzzy.FindFrom(query, fixSource(fixes))
	out := make([]Match, len(found))
	for i, m := range found {
		out[i] = Match{Index: m.Index, Positions: m.MatchedIndexes}
	}
	return out
}

// Filter returns the fixes whose names fuzzy-match query, best match first.
// An empty query returns all fixes in their original order.
func Filter(fixes []Fix, query string) []Fix {
	matches := Search(fixes, query)
	out := make([]Fix, len(matches))
	for i, m := range matches {
		out[i] = fixes[m.Index]
	}
	return out
}
