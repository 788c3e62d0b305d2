package doctor

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryTool covers the linter script and interpreter.
	CategoryTool IssueCategory = "tool"
	// CategoryProject covers the project directory and its .clang-tidy.
	CategoryProject IssueCategory = "project"
	// CategoryFixes covers the catalog and fix selection.
	CategoryFixes IssueCategory = "fixes"
)

// Severity says how much an issue matters.
type Severity int

const (
	SeverityWarn Severity = iota // fixcpp can run, results may surprise
	SeverityFail                 // fixcpp run will not work
)

func (s Severity) String() string {
	if s == SeverityFail {
		return "fail"
	}
	return "warn"
}

// Fix actions understood by fixIssue.
const (
	ActionNone    = ""
	ActionSync    = "sync"    // add catalog checks missing from config
	ActionRestore = "restore" // restore .clang-tidy from an interrupted run's stash
	ActionRemove  = "remove"  // delete a generated .clang-tidy with no stash
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Key         string // path or setting the issue is about
	Description string
	Category    IssueCategory
	Severity    Severity
	FixAction   string // what --fix would do, empty if nothing
}

// Report is the outcome of all checks.
type Report struct {
	Passed []string // descriptions of checks that passed
	Issues []Issue
}

// Failed reports whether any issue has SeverityFail.
func (r Report) Failed() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityFail {
			return true
		}
	}
	return false
}
