// Package picker provides the interactive fix selector used by
// `fixcpp fixes select`.
//
// The list is filtered with fuzzy matching as the user types. Space toggles
// the fix under the cursor, enter saves the selection.
package picker

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/fixcpp/fixcpp/internal/fix"
	"github.com/fixcpp/fixcpp/internal/ui/styles"
)

const defaultVisible = 12

// Result holds the outcome of a picker session.
type Result struct {
	// Fixes is the full list in original order with Enabled reflecting the
	// user's choice. Equal to the input when Cancelled.
	Fixes     []fix.Fix
	Cancelled bool
}

// Model is the bubbletea model behind Run.
type Model struct {
	fixes    []fix.Fix
	selected map[int]bool
	matches  []fix.Match
	cursor   int // position in matches
	filter   string
	visible  int

	done      bool
	cancelled bool
}

// New creates a picker over fixes with currently enabled ones preselected.
func New(fixes []fix.Fix) Model {
	m := Model{
		fixes:    append([]fix.Fix(nil), fixes...),
		selected: make(map[int]bool, len(fixes)),
		visible:  defaultVisible,
	}
	for i, f := range fixes {
		if f.Enabled {
			m.selected[i] = true
		}
	}
	m.applyFilter()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// title, filter, blank, two scroll markers, help
		m.visible = max(3, msg.Height-6)
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "esc":
		m.cancelled = true
		m.done = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "ctrl+n":
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}
	case "home", "pgup":
		m.cursor = 0
	case "end", "pgdown":
		m.cursor = max(0, len(m.matches)-1)
	case "space", " ":
		if len(m.matches) > 0 {
			idx := m.matches[m.cursor].Index
			m.selected[idx] = !m.selected[idx]
		}
	case "ctrl+a":
		m.toggleVisible()
	case "backspace":
		if len(m.filter) > 0 {
			m.filter = m.filter[:len(m.filter)-1]
			m.applyFilter()
		}
	default:
		if msg.Text != "" && isPrintable(msg.Text) {
			m.filter += msg.Text
			m.applyFilter()
		}
	}
	return m, nil
}

// toggleVisible selects every matched fix, or clears them if all already are.
func (m *Model) toggleVisible() {
	all := true
	for _, match := range m.matches {
		if !m.selected[match.Index] {
			all = false
			break
		}
	}
	for _, match := range m.matches {
		m.selected[match.Index] = !all
	}
}

func isPrintable(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}

func (m *Model) applyFilter() {
	m.matches = fix.Search(m.fixes, m.filter)
	if m.cursor >= len(m.matches) {
		m.cursor = max(0, len(m.matches)-1)
	}
}

// SelectedCount returns how many fixes are selected.
func (m Model) SelectedCount() int {
	n := 0
	for _, v := range m.selected {
		if v {
			n++
		}
	}
	return n
}

// Result returns the fixes with the current selection applied.
func (m Model) Result() Result {
	if m.cancelled {
		return Result{Fixes: m.fixes, Cancelled: true}
	}
	out := make([]fix.Fix, len(m.fixes))
	for i, f := range m.fixes {
		out[i] = fix.Fix{Name: f.Name, Enabled: m.selected[i]}
	}
	return Result{Fixes: out}
}

func (m Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m Model) render() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Select fixes (%d/%d enabled)", m.SelectedCount(), len(m.fixes))))
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render("Filter: ") + styles.AccentStyle.Render(m.filter) + "\n\n")

	start := 0
	if m.cursor >= m.visible {
		start = m.cursor - m.visible + 1
	}
	end := min(start+m.visible, len(m.matches))

	if start > 0 {
		b.WriteString(styles.MutedStyle.Render("  ↑ more above") + "\n")
	}

	for i := start; i < end; i++ {
		match := m.matches[i]
		name := m.fixes[match.Index].Name
		isCursor := i == m.cursor

		cursor := "  "
		if isCursor {
			cursor = styles.AccentStyle.Render("> ")
		}
		b.WriteString(cursor + styles.Checkbox(m.selected[match.Index]) + " " + highlight(name, match.Positions, isCursor) + "\n")
	}

	if end < len(m.matches) {
		b.WriteString(styles.MutedStyle.Render("  ↓ more below") + "\n")
	}
	if len(m.matches) == 0 {
		b.WriteString(styles.MutedStyle.Render("  No matching fixes") + "\n")
	}

	b.WriteString("\n" + styles.MutedStyle.Render("↑/↓ move • space toggle • ctrl+a toggle shown • type to filter • enter save • esc cancel"))
	return b.String()
}

// highlight renders name with matched byte positions emphasized.
func highlight(name string, positions []int, isCursor bool) string {
	base := styles.NormalStyle
	if isCursor {
		base = styles.AccentStyle
	}
	if len(positions) == 0 {
		return base.Render(name)
	}

	matched := make(map[int]bool, len(positions))
	for _, p := range positions {
		matched[p] = true
	}

	var b strings.Builder
	for i, r := range name {
		if matched[i] {
			b.WriteString(styles.HighlightStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// Run shows the picker on stderr and returns the user's selection.
func Run(fixes []fix.Fix) (Result, error) {
	p := tea.NewProgram(New(fixes), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("fix picker: %w", err)
	}
	return final.(Model).Result(), nil
}
