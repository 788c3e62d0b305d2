package doctor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"

	"github.com/fixcpp/fixcpp/internal/config"
	"github.com/fixcpp/fixcpp/internal/fix"
	"github.com/fixcpp/fixcpp/internal/tidy"
)

// Check runs every diagnostic against cfg without changing anything.
func Check(cfg *config.Config) Report {
	var r Report
	checkTool(cfg, &r)
	checkProject(cfg, &r)
	checkFixes(cfg, &r)
	return r
}

func (r *Report) pass(format string, a ...any) {
	r.Passed = append(r.Passed, fmt.Sprintf(format, a...))
}

func (r *Report) add(i Issue) {
	r.Issues = append(r.Issues, i)
}

func checkTool(cfg *config.Config, r *Report) {
	switch info, err := os.Stat(cfg.ToolPath); {
	case cfg.ToolPath == "":
		r.add(Issue{
			Key:         "tool_path",
			Description: "not configured (fixcpp config set tool_path /path/to/run-clang-tidy)",
			Category:    CategoryTool,
			Severity:    SeverityFail,
		})
	case err != nil:
		r.add(Issue{
			Key:         cfg.ToolPath,
			Description: fmt.Sprintf("tool not found: %v", err),
			Category:    CategoryTool,
			Severity:    SeverityFail,
		})
	case info.IsDir():
		r.add(Issue{
			Key:         cfg.ToolPath,
			Description: "tool_path is a directory",
			Category:    CategoryTool,
			Severity:    SeverityFail,
		})
	default:
		r.pass("tool %s", cfg.ToolPath)
	}

	interp := cfg.InterpreterOrDefault()
	if interp == "" {
		return
	}
	if path, err := exec.LookPath(interp); err != nil {
		r.add(Issue{
			Key:         "interpreter",
			Description: fmt.Sprintf("%q not found on PATH", interp),
			Category:    CategoryTool,
			Severity:    SeverityFail,
		})
	} else {
		r.pass("interpreter %s", path)
	}
}

func checkProject(cfg *config.Config, r *Report) {
	if cfg.ProjectPath == "" {
		r.add(Issue{
			Key:         "project_path",
			Description: "not configured (fixcpp config set project_path /path/to/project)",
			Category:    CategoryProject,
			Severity:    SeverityFail,
		})
		return
	}

	info, err := os.Stat(cfg.ProjectPath)
	if err != nil || !info.IsDir() {
		r.add(Issue{
			Key:         cfg.ProjectPath,
			Description: "project directory does not exist",
			Category:    CategoryProject,
			Severity:    SeverityFail,
		})
		return
	}
	r.pass("project %s", cfg.ProjectPath)

	if cc := cfg.CompileCommandsPath(); cc == "" {
		r.add(Issue{
			Key:         "build_commands_path",
			Description: "not configured; run-clang-tidy searches parent directories for compile_commands.json",
			Category:    CategoryProject,
			Severity:    SeverityWarn,
		})
	} else if _, err := os.Stat(cc); err != nil {
		r.add(Issue{
			Key:         cc,
			Description: "compile_commands.json not found (configure the build with CMAKE_EXPORT_COMPILE_COMMANDS=ON)",
			Category:    CategoryProject,
			Severity:    SeverityWarn,
		})
	} else {
		r.pass("compile commands %s", cc)
	}

	checkLeftovers(cfg.ProjectPath, r)
}

// checkLeftovers looks for state an interrupted run leaves behind: a stashed
// backup, or a generated single-check .clang-tidy.
func checkLeftovers(project string, r *Report) {
	stash, err := tidy.StashPath(project)
	if err == nil {
		if _, err := os.Stat(stash); err == nil {
			r.add(Issue{
				Key:         tidy.Path(project),
				Description: "an interrupted run left a generated .clang-tidy; the original is stashed in " + stash,
				Category:    CategoryProject,
				Severity:    SeverityFail,
				FixAction:   ActionRestore,
			})
			return
		}
	}

	data, err := os.ReadFile(tidy.Path(project))
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		r.add(Issue{
			Key:         tidy.Path(project),
			Description: fmt.Sprintf("cannot read: %v", err),
			Category:    CategoryProject,
			Severity:    SeverityWarn,
		})
		return
	}
	c, err := tidy.Parse(data)
	if err != nil {
		r.add(Issue{
			Key:         tidy.Path(project),
			Description: err.Error(),
			Category:    CategoryProject,
			Severity:    SeverityWarn,
		})
		return
	}
	if check, ok := c.SingleCheck(); ok {
		r.add(Issue{
			Key:         tidy.Path(project),
			Description: fmt.Sprintf("enables only %s, probably left by a previous run", check),
			Category:    CategoryProject,
			Severity:    SeverityWarn,
			FixAction:   ActionRemove,
		})
	}
}

func checkFixes(cfg *config.Config, r *Report) {
	if cfg.CatalogPath == "" {
		r.add(Issue{
			Key:         "catalog_path",
			Description: "not configured; new checks must be added with fixcpp fixes sync FILE",
			Category:    CategoryFixes,
			Severity:    SeverityWarn,
		})
	} else if names, err := fix.LoadCatalog(cfg.CatalogPath); err != nil {
		r.add(Issue{
			Key:         cfg.CatalogPath,
			Description: fmt.Sprintf("catalog unreadable: %v", err),
			Category:    CategoryFixes,
			Severity:    SeverityFail,
		})
	} else {
		r.pass("catalog %s (%d checks)", cfg.CatalogPath, len(names))
		if missing := len(fix.Reconcile(cfg.Fixes, names)) - len(cfg.Fixes); missing > 0 {
			r.add(Issue{
				Key:         cfg.CatalogPath,
				Description: fmt.Sprintf("%d catalog checks not yet in config", missing),
				Category:    CategoryFixes,
				Severity:    SeverityWarn,
				FixAction:   ActionSync,
			})
		}
	}

	if n := len(fix.Enabled(cfg.Fixes)); n == 0 {
		r.add(Issue{
			Key:         "fixes",
			Description: "no fixes enabled (fixcpp fixes select)",
			Category:    CategoryFixes,
			Severity:    SeverityWarn,
		})
	} else {
		r.pass("%d of %d fixes enabled", n, len(cfg.Fixes))
	}
}
