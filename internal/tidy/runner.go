package tidy

import (
	"context"
	"strconv"

	"github.com/fixcpp/fixcpp/internal/cmd"
	"github.com/fixcpp/fixcpp/internal/orchestrator"
)

// DefaultJobs is the parallelism passed to run-clang-tidy when none is set.
const DefaultJobs = 10

// Runner invokes run-clang-tidy in fix mode on the current directory.
type Runner struct {
	// Interpreter runs the tool script, typically "python". When empty the
	// tool is executed directly.
	Interpreter string
	// Jobs is the -j value; values below 1 use DefaultJobs.
	Jobs int
}

// Command returns the executable and arguments for applying fixes with the
// tool at toolPath.
func (r Runner) Command(toolPath string) (string, []string) {
	jobs := r.Jobs
	if jobs < 1 {
		jobs = DefaultJobs
	}
	args := []string{".", "-fix", "-j", strconv.Itoa(jobs)}

	if r.Interpreter == "" {
		return toolPath, args
	}
	return r.Interpreter, append([]string{toolPath}, args...)
}

// Invoke runs the tool in inv.ProjectPath and waits for it to exit.
// Cancelling ctx kills the process.
func (r Runner) Invoke(ctx context.Context, inv orchestrator.Invocation) (orchestrator.Result, error) {
	name, args := r.Command(inv.ToolPath)

	res, err := cmd.CombinedContext(ctx, inv.ProjectPath, name, args...)
	return orchestrator.Result{ExitCode: res.ExitCode, Output: res.Output}, err
}
