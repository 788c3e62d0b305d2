package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/fixcpp/fixcpp/internal/config"
	"github.com/fixcpp/fixcpp/internal/fix"
	"github.com/fixcpp/fixcpp/internal/history"
	"github.com/fixcpp/fixcpp/internal/lock"
	"github.com/fixcpp/fixcpp/internal/log"
	"github.com/fixcpp/fixcpp/internal/orchestrator"
	"github.com/fixcpp/fixcpp/internal/output"
	"github.com/fixcpp/fixcpp/internal/tidy"
	"github.com/fixcpp/fixcpp/internal/ui/prompt"
	"github.com/fixcpp/fixcpp/internal/ui/runview"
)

// errRunFailed is returned when a run ends in the Failed state.
var errRunFailed = errors.New("fix run failed")

type runOptions struct {
	fixes  []string
	plain  bool
	yes    bool
	keep   bool
	dryRun bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Apply the enabled fixes to the project",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Apply the enabled fixes to the configured project, one check at a time.

New checks from catalog_path are added (disabled) before the run starts.
The project's own .clang-tidy is restored afterwards unless keep_generated
is set or --keep is given.

Press q or esc to stop after the current fix. Press ctrl+c twice to abort
the fix that is running.`,
		Example: `  fixcpp run                                # Apply all enabled fixes
  fixcpp run --fix modernize-use-override   # Apply a single fix
  fixcpp run --plain --yes                  # Non-interactive, for CI
  fixcpp run --dry-run                      # Show what would run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixes(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.fixes, "fix", nil, "Apply only the named fix (repeatable)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print progress lines instead of the interactive view")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&opts.keep, "keep", false, "Leave the generated .clang-tidy in place")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Print the commands without running them")
	cmd.RegisterFlagCompletionFunc("fix", completeFixNames)

	return cmd
}

func runFixes(ctx context.Context, opts runOptions) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	cfg := config.FromContext(ctx)
	if cfg == nil {
		return errNoConfig
	}

	if err := syncCatalog(ctx, cfg); err != nil {
		return err
	}

	runCfg, err := buildRunConfiguration(cfg, opts.fixes)
	if err != nil {
		return err
	}

	enabled := fix.Names(fix.Enabled(runCfg.Fixes))
	if len(enabled) == 0 {
		l.Println("No fixes enabled, nothing to do. Use 'fixcpp fixes select' to pick some.")
		return nil
	}

	runner := tidy.Runner{Interpreter: cfg.InterpreterOrDefault(), Jobs: cfg.JobsOrDefault()}

	if opts.dryRun {
		name, args := runner.Command(runCfg.ToolPath)
		for _, f := range enabled {
			out.Printf("%s: (cd %s && %s %s)\n", f, runCfg.ProjectPath, name, strings.Join(args, " "))
		}
		return nil
	}

	interactive := !opts.plain && !l.IsVerbose() && isatty.IsTerminal(os.Stderr.Fd())

	if !opts.yes && isatty.IsTerminal(os.Stdin.Fd()) {
		res, err := prompt.Confirm(fmt.Sprintf("Apply %d fixes to %s?", len(enabled), runCfg.ProjectPath))
		if err != nil {
			return err
		}
		if !res.Confirmed {
			l.Println("Aborted")
			return nil
		}
	}

	stash, err := tidy.StashPath(runCfg.ProjectPath)
	if err != nil {
		return err
	}

	runLock := lock.New(stash + ".lock")
	if err := runLock.TryLock(); err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return fmt.Errorf("another fixcpp run is in progress for %s", runCfg.ProjectPath)
		}
		return fmt.Errorf("lock project: %w", err)
	}
	defer runLock.Unlock()

	var backup *tidy.Backup
	if !opts.keep && !cfg.KeepGenerated {
		if _, err := tidy.LoadStash(stash); err == nil {
			return fmt.Errorf("a previous run on %s did not finish; run 'fixcpp doctor --fix' to restore its .clang-tidy", runCfg.ProjectPath)
		}

		backup, err = tidy.TakeBackup(runCfg.ProjectPath)
		if err != nil {
			return err
		}
		if err := backup.Stash(stash); err != nil {
			return fmt.Errorf("save backup: %w", err)
		}
	}

	// The run outlives a cancelled command context: interrupts request a
	// cooperative stop first and only kill() aborts the running linter.
	runCtx, kill := context.WithCancel(context.WithoutCancel(ctx))
	defer kill()

	if interactive {
		runCtx = log.WithLogger(runCtx, log.New(io.Discard, false, true))
	}

	var view *runview.View
	orch := newOrchestrator(runner, func(cancel func()) func(orchestrator.Status) {
		if !interactive {
			return runview.Plain(logWriter{l})
		}
		view = runview.Start(runview.Options{
			Project: runCfg.ProjectPath,
			Fixes:   enabled,
			Cancel:  cancel,
			Kill:    kill,
		})
		return view.Observe
	})

	stopSignals := handleInterrupts(l, orch.Cancel, kill)
	defer stopSignals()

	startedAt := time.Now()
	h, err := orch.Start(runCtx, runCfg)
	if err != nil {
		if view != nil {
			view.Stop()
		}
		return err
	}

	outcome := h.Wait()
	if view != nil {
		if err := view.Wait(); err != nil {
			l.Printf("Warning: run view: %v\n", err)
		}
	}

	if backup != nil {
		if err := backup.Restore(); err != nil {
			l.Printf("Warning: %v (backup kept in %s)\n", err, stash)
		} else if err := tidy.RemoveStash(stash); err != nil {
			l.Printf("Warning: remove backup: %v\n", err)
		}
	}

	recordRun(l, runCfg, startedAt, outcome)

	out.Print(runview.Summary(outcome))

	if outcome.State == orchestrator.Failed {
		return fmt.Errorf("%w: %w", errRunFailed, outcome.Err)
	}
	return nil
}

// newOrchestrator creates an orchestrator and then calls attach once with
// its Cancel method. attach returns the observer for status updates. It
// runs before any run can start.
func newOrchestrator(invoker orchestrator.Invoker, attach func(cancel func()) func(orchestrator.Status)) *orchestrator.Orchestrator {
	var observe func(orchestrator.Status)
	orch := orchestrator.New(tidy.Writer{}, invoker, orchestrator.WithObserver(func(s orchestrator.Status) {
		observe(s)
	}))
	observe = attach(orch.Cancel)
	return orch
}

// buildRunConfiguration snapshots cfg for a run. When only is non-empty,
// exactly those fixes are enabled.
func buildRunConfiguration(cfg *config.Config, only []string) (orchestrator.RunConfiguration, error) {
	runCfg := cfg.RunConfiguration()

	if runCfg.ToolPath == "" {
		return runCfg, errors.New("tool_path is not configured (use 'fixcpp config set tool_path PATH')")
	}
	if runCfg.ProjectPath == "" {
		return runCfg, errors.New("project_path is not configured (use 'fixcpp config set project_path PATH')")
	}

	if len(only) > 0 {
		fixes, missing := fix.EnableOnly(runCfg.Fixes, only)
		if len(missing) > 0 {
			return runCfg, fmt.Errorf("unknown fix: %s", strings.Join(missing, ", "))
		}
		runCfg.Fixes = fixes
	}
	return runCfg, nil
}

// syncCatalog adds checks listed in the catalog file to the config and
// saves it when anything was added.
func syncCatalog(ctx context.Context, cfg *config.Config) error {
	if cfg.CatalogPath == "" {
		return nil
	}
	added, err := syncFrom(cfg, cfg.CatalogPath)
	if err != nil {
		return err
	}
	if added > 0 {
		log.FromContext(ctx).Printf("Added %d new fixes from %s (disabled)\n", added, cfg.CatalogPath)
	}
	return nil
}

func syncFrom(cfg *config.Config, catalog string) (int, error) {
	names, err := fix.LoadCatalog(catalog)
	if err != nil {
		return 0, fmt.Errorf("load catalog: %w", err)
	}
	added := cfg.Reconcile(names)
	if added == 0 {
		return 0, nil
	}
	if err := cfg.Save(); err != nil {
		return 0, fmt.Errorf("save config: %w", err)
	}
	return added, nil
}

// handleInterrupts turns the first SIGINT into a cooperative cancel and a
// second one (or SIGTERM) into killing the running linter.
func handleInterrupts(l *log.Logger, cancel, kill func()) (stop func()) {
	sigs := make(chan os.Signal, 2)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		interrupts := 0
		for {
			select {
			case <-done:
				return
			case sig := <-sigs:
				if sig == syscall.SIGTERM {
					kill()
					continue
				}
				interrupts++
				if interrupts == 1 {
					l.Println("Stopping after the current fix (interrupt again to abort it)")
					cancel()
				} else {
					kill()
				}
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

func recordRun(l *log.Logger, runCfg orchestrator.RunConfiguration, startedAt time.Time, outcome orchestrator.Outcome) {
	path, err := history.Path()
	if err != nil {
		l.Printf("Warning: history: %v\n", err)
		return
	}
	if err := history.Append(path, history.NewRecord(runCfg, startedAt, outcome)); err != nil {
		l.Printf("Warning: history: %v\n", err)
	}
}

// logWriter sends plain progress lines through the logger so --quiet
// silences them.
type logWriter struct{ l *log.Logger }

func (w logWriter) Write(p []byte) (int, error) {
	w.l.Printf("%s", p)
	return len(p), nil
}
