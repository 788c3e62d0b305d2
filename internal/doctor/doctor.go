package doctor

import (
	"context"
	"errors"

	"github.com/fixcpp/fixcpp/internal/config"
	"github.com/fixcpp/fixcpp/internal/log"
	"github.com/fixcpp/fixcpp/internal/output"
	"github.com/fixcpp/fixcpp/internal/ui/styles"
)

// ErrUnhealthy is returned by Run when a failing issue remains.
var ErrUnhealthy = errors.New("doctor found problems")

// Run checks cfg, prints a report to the context printer and, when fix is
// set, repairs issues that have a fix action.
func Run(ctx context.Context, cfg *config.Config, fix bool) error {
	out := output.FromContext(ctx)
	l := log.FromContext(ctx)

	report := Check(cfg)

	for _, p := range report.Passed {
		out.Println("  " + styles.SuccessStyle.Render("✓") + " " + p)
	}

	if len(report.Issues) == 0 {
		out.Println("\n" + styles.SuccessStyle.Render("✓ No issues found"))
		return nil
	}

	out.Printf("\nFound %d issues:\n", len(report.Issues))
	printIssuesByCategory(out, report.Issues)

	if !fix {
		if hasFixable(report.Issues) {
			out.Println("\nRun 'fixcpp doctor --fix' to repair.")
		}
		if report.Failed() {
			return ErrUnhealthy
		}
		return nil
	}

	out.Println()
	var remaining []Issue
	for _, issue := range report.Issues {
		if issue.FixAction == ActionNone {
			remaining = append(remaining, issue)
			continue
		}
		done, err := fixIssue(cfg, issue)
		if err != nil {
			l.Printf("Warning: could not fix %s: %v\n", issue.Key, err)
			remaining = append(remaining, issue)
			continue
		}
		out.Println("  " + styles.SuccessStyle.Render("✓") + " " + done)
	}

	if (Report{Issues: remaining}).Failed() {
		return ErrUnhealthy
	}
	return nil
}

func hasFixable(issues []Issue) bool {
	for _, i := range issues {
		if i.FixAction != ActionNone {
			return true
		}
	}
	return false
}

// printIssuesByCategory groups and prints issues.
func printIssuesByCategory(out *output.Printer, issues []Issue) {
	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	categoryNames := map[IssueCategory]string{
		CategoryTool:    "Tool",
		CategoryProject: "Project",
		CategoryFixes:   "Fixes",
	}

	for _, cat := range []IssueCategory{CategoryTool, CategoryProject, CategoryFixes} {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		out.Printf("\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			mark := styles.WarningStyle.Render("⚠")
			if issue.Severity == SeverityFail {
				mark = styles.ErrorStyle.Render("✗")
			}
			out.Printf("  %s %s: %s\n", mark, issue.Key, issue.Description)
		}
	}
}
