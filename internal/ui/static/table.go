// Package static provides non-interactive terminal output components.
//
// This package renders formatted output that does not require user
// interaction, such as the fix list and run history tables.
package static

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/fixcpp/fixcpp/internal/fix"
	"github.com/fixcpp/fixcpp/internal/history"
	"github.com/fixcpp/fixcpp/internal/orchestrator"
	"github.com/fixcpp/fixcpp/internal/ui/styles"
)

// FixHeaders are the column headers for FixTableRow.
var FixHeaders = []string{"#", "ENABLED", "FIX"}

// HistoryHeaders are the column headers for HistoryTableRow.
var HistoryHeaders = []string{"ID", "STARTED", "STATE", "APPLIED", "FAILED", "PROJECT"}

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// FixTableRow returns the cells for one fix. idx is zero-based.
func FixTableRow(f fix.Fix, idx int) []string {
	name := f.Name
	if !f.Enabled {
		name = styles.MutedStyle.Render(name)
	}
	return []string{strconv.Itoa(idx + 1), styles.Checkbox(f.Enabled), name}
}

// FixRows returns the table rows for fixes.
func FixRows(fixes []fix.Fix) [][]string {
	rows := make([][]string, len(fixes))
	for i, f := range fixes {
		rows[i] = FixTableRow(f, i)
	}
	return rows
}

// HistoryTableRow returns the cells for one recorded run.
func HistoryTableRow(r history.Record) []string {
	id := r.ID
	if len(id) > 8 {
		id = id[:8]
	}

	failed := strconv.Itoa(len(r.Failures))
	if len(r.Failures) > 0 {
		failed = styles.ErrorStyle.Render(failed)
	}

	return []string{
		id,
		r.StartedAt.Local().Format(time.DateTime),
		styles.FormatState(orchestrator.ParseState(r.State)),
		fmt.Sprintf("%d/%d", len(r.Applied), r.Total),
		failed,
		r.ProjectPath,
	}
}
