package styles

import "github.com/fixcpp/fixcpp/internal/orchestrator"

// Symbols used in run output and fix lists.
const (
	SymbolApplied   = "✓"
	SymbolFailed    = "✗"
	SymbolPending   = "○"
	SymbolCurrent   = "●"
	SymbolCancelled = "⊘"
	SymbolChecked   = "[x]"
	SymbolUnchecked = "[ ]"
)

// Checkbox returns the checkbox for an enabled flag.
func Checkbox(enabled bool) string {
	if enabled {
		return SymbolChecked
	}
	return SymbolUnchecked
}

// FormatState returns a colored symbol and label for a run state.
func FormatState(s orchestrator.State) string {
	switch s {
	case orchestrator.Completed:
		return SuccessStyle.Render(SymbolApplied + " " + s.String())
	case orchestrator.Failed:
		return ErrorStyle.Render(SymbolFailed + " " + s.String())
	case orchestrator.Cancelled:
		return WarningStyle.Render(SymbolCancelled + " " + s.String())
	case orchestrator.Running:
		return AccentStyle.Render(SymbolCurrent + " " + s.String())
	default:
		return MutedStyle.Render(SymbolPending + " " + s.String())
	}
}
