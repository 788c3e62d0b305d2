package fix

import (
	"reflect"
	"strings"
	"testing"
)

func TestEnabled(t *testing.T) {
	t.Parallel()

	fixes := []Fix{
		{Name: "a", Enabled: true},
		{Name: "b"},
		{Name: "c", Enabled: true},
	}

	got := Names(Enabled(fixes))
	want := []string{"a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Enabled() = %v, want %v", got, want)
	}

	if got := Enabled([]Fix{{Name: "a"}}); len(got) != 0 {
		t.Errorf("Enabled() with none enabled = %v, want empty", got)
	}
}

func TestSetEnabled(t *testing.T) {
	t.Parallel()

	fixes := []Fix{{Name: "a"}, {Name: "b"}}

	out, ok := SetEnabled(fixes, "b", true)
	if !ok {
		t.Fatal("expected fix b to be found")
	}
	if !out[1].Enabled {
		t.Error("expected b to be enabled in result")
	}
	if fixes[1].Enabled {
		t.Error("SetEnabled mutated its input")
	}

	if _, ok := SetEnabled(fixes, "missing", true); ok {
		t.Error("expected missing fix to report not found")
	}
}

func TestEnableOnly(t *testing.T) {
	t.Parallel()

	fixes := []Fix{
		{Name: "a", Enabled: true},
		{Name: "b"},
		{Name: "c"},
	}

	out, missing := EnableOnly(fixes, []string{"c", "zzz", "b"})

	want := []Fix{{Name: "a"}, {Name: "b", Enabled: true}, {Name: "c", Enabled: true}}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("EnableOnly() = %+v, want %+v", out, want)
	}
	if !reflect.DeepEqual(missing, []string{"zzz"}) {
		t.Errorf("missing = %v, want [zzz]", missing)
	}
	if !fixes[0].Enabled {
		t.Error("EnableOnly mutated its input")
	}
}

func TestParseCatalog(t *testing.T) {
	t.Parallel()

	input := `# modernize
modernize-use-override

  modernize-use-nullptr  
# readability
readability-braces-around-statements
`
	got, err := ParseCatalog(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCatalog failed: %v", err)
	}

	want := []string{
		"modernize-use-override",
		"modernize-use-nullptr",
		"readability-braces-around-statements",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseCatalog() = %v, want %v", got, want)
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	fixes := []Fix{
		{Name: "modernize-use-override"},
		{Name: "readability-braces-around-statements"},
		{Name: "modernize-use-nullptr"},
	}

	if got := Filter(fixes, ""); !reflect.DeepEqual(got, fixes) {
		t.Errorf("Filter(\"\") = %v, want all fixes", got)
	}

	got := Names(Filter(fixes, "nullptr"))
	if !reflect.DeepEqual(got, []string{"modernize-use-nullptr"}) {
		t.Errorf("Filter(nullptr) = %v", got)
	}

	if got := Filter(fixes, "qqqq"); len(got) != 0 {
		t.Errorf("Filter(qqqq) = %v, want empty", got)
	}
}

func TestSearchPositions(t *testing.T) {
	t.Parallel()

	fixes := []Fix{{Name: "modernize-use-nullptr"}, {Name: "readability-braces-around-statements"}}

	all := Search(fixes, "")
	if len(all) != 2 || all[0].Index != 0 || all[1].Index != 1 {
		t.Fatalf("Search(\"\") = %+v, want every fix in order", all)
	}
	if all[0].Positions != nil {
		t.Errorf("empty query should have no positions, got %v", all[0].Positions)
	}

	got := Search(fixes, "braces")
	if len(got) != 1 || got[0].Index != 1 {
		t.Fatalf("Search(braces) = %+v", got)
	}
	if len(got[0].Positions) != len("braces") {
		t.Errorf("Positions = %v, want %d entries", got[0].Positions, len("braces"))
	}
}
