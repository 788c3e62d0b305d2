package picker

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/fixcpp/fixcpp/internal/fix"
)

func keyMsg(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "home":
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case "end":
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "space":
		return tea.KeyPressMsg{Code: ' ', Text: " "}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "ctrl+a":
		return tea.KeyPressMsg{Code: 'a', Mod: tea.ModCtrl}
	default:
		r := []rune(key)[0]
		return tea.KeyPressMsg{Code: r, Text: key}
	}
}

func update(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned unexpected type: %T", next)
		}
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, string(r))
	}
	return m
}

var testFixes = []fix.Fix{
	{Name: "modernize-use-override", Enabled: true},
	{Name: "readability-braces-around-statements"},
	{Name: "modernize-use-nullptr"},
}

func TestNew_PreselectsEnabled(t *testing.T) {
	t.Parallel()

	m := New(testFixes)
	if got := m.SelectedCount(); got != 1 {
		t.Errorf("SelectedCount() = %d, want 1", got)
	}
	if !strings.Contains(m.render(), "1/3 enabled") {
		t.Errorf("view should show counts, got:\n%s", m.render())
	}
}

func TestToggleAndSave(t *testing.T) {
	t.Parallel()

	m := update(t, New(testFixes), "space", "down", "down", "space", "enter")
	if !m.done || m.cancelled {
		t.Fatalf("done = %v, cancelled = %v", m.done, m.cancelled)
	}

	got := m.Result()
	want := []fix.Fix{
		{Name: "modernize-use-override", Enabled: false},
		{Name: "readability-braces-around-statements", Enabled: false},
		{Name: "modernize-use-nullptr", Enabled: true},
	}
	for i := range want {
		if got.Fixes[i] != want[i] {
			t.Errorf("Fixes[%d] = %+v, want %+v", i, got.Fixes[i], want[i])
		}
	}
}

func TestCancelKeepsInput(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"esc", "ctrl+c"} {
		m := update(t, New(testFixes), "space", key)
		res := m.Result()
		if !res.Cancelled {
			t.Errorf("%s: Cancelled = false", key)
		}
		if !res.Fixes[0].Enabled {
			t.Errorf("%s: cancelled result should keep original flags", key)
		}
	}
}

func TestFilterNarrowsAndToggles(t *testing.T) {
	t.Parallel()

	m := typeText(t, New(testFixes), "nullptr")
	if len(m.matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(m.matches))
	}
	m = update(t, m, "space", "enter")

	res := m.Result()
	if !res.Fixes[2].Enabled {
		t.Error("filtered toggle should enable modernize-use-nullptr")
	}
	if !res.Fixes[0].Enabled {
		t.Error("fixes outside the filter keep their selection")
	}
}

func TestBackspaceWidensFilter(t *testing.T) {
	t.Parallel()

	m := typeText(t, New(testFixes), "zzz")
	if len(m.matches) != 0 {
		t.Fatalf("matches = %d, want 0", len(m.matches))
	}
	if !strings.Contains(m.render(), "No matching fixes") {
		t.Error("empty filter result should be reported")
	}
	// space on an empty list must not panic
	m = update(t, m, "space", "backspace", "backspace", "backspace")
	if len(m.matches) != 3 {
		t.Errorf("matches after clearing filter = %d, want 3", len(m.matches))
	}
}

func TestToggleVisible(t *testing.T) {
	t.Parallel()

	m := typeText(t, New(testFixes), "modernize")
	m = update(t, m, "ctrl+a")
	if got := m.SelectedCount(); got != 2 {
		t.Errorf("after select shown: SelectedCount() = %d, want 2", got)
	}
	m = update(t, m, "ctrl+a")
	if got := m.SelectedCount(); got != 0 {
		t.Errorf("after clear shown: SelectedCount() = %d, want 0", got)
	}
}

func TestCursorBounds(t *testing.T) {
	t.Parallel()

	m := update(t, New(testFixes), "up")
	if m.cursor != 0 {
		t.Errorf("cursor after up at top = %d, want 0", m.cursor)
	}
	m = update(t, m, "end", "down")
	if m.cursor != 2 {
		t.Errorf("cursor after end+down = %d, want 2", m.cursor)
	}
	m = update(t, m, "home")
	if m.cursor != 0 {
		t.Errorf("cursor after home = %d, want 0", m.cursor)
	}
}

func TestScrollWindow(t *testing.T) {
	t.Parallel()

	var many []fix.Fix
	for i := range 30 {
		many = append(many, fix.Fix{Name: "check-" + string(rune('a'+i%26)) + string(rune('a'+i/26))})
	}
	m := New(many)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 11})
	m = next.(Model)
	if m.visible != 5 {
		t.Fatalf("visible = %d, want 5", m.visible)
	}

	m = update(t, m, "end")
	view := m.render()
	if !strings.Contains(view, "more above") {
		t.Error("expected scroll marker above")
	}
	if strings.Contains(view, "more below") {
		t.Error("no marker below expected at end of list")
	}
}

func TestDoneViewIsEmpty(t *testing.T) {
	t.Parallel()

	m := update(t, New(testFixes), "enter")
	if m.render() != "" {
		t.Errorf("view after done = %q, want empty", m.render())
	}
}
