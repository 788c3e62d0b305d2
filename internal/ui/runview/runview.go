// Package runview renders a fix run while it is in progress.
//
// The interactive view is a bubbletea program fed with orchestrator status
// snapshots. The first q, esc or ctrl+c requests cancellation after the
// current fix; a second ctrl+c aborts the running linter as well.
// Plain renders the same information as one line per event for
// non-terminal output.
package runview

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/fixcpp/fixcpp/internal/orchestrator"
	"github.com/fixcpp/fixcpp/internal/ui/styles"
)

// Options configure a run view.
type Options struct {
	Project string
	Fixes   []string // enabled fix names in run order
	Cancel  func()   // requests a cooperative stop
	Kill    func()   // aborts the in-flight linter
}

// statusMsg carries an orchestrator snapshot into the program.
type statusMsg orchestrator.Status

// Model is the bubbletea model for the interactive run screen.
type Model struct {
	opts     Options
	progress progress.Model
	spinner  spinner.Model
	status   orchestrator.Status

	cancelling bool
	killed     bool
	quit       bool
}

// NewModel creates the run screen model.
func NewModel(opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		opts: opts,
		progress: progress.New(
			progress.WithWidth(40),
			progress.WithoutPercentage(),
			progress.WithColors(styles.Primary, styles.Accent),
		),
		spinner: sp,
		status:  orchestrator.Status{State: orchestrator.Running, Running: true, Total: len(opts.Fixes)},
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.status = orchestrator.Status(msg)
		if m.status.State.Terminal() {
			m.quit = true
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.requestCancel()
	case "ctrl+c":
		if m.cancelling && !m.killed {
			m.killed = true
			if m.opts.Kill != nil {
				m.opts.Kill()
			}
			return m, nil
		}
		m.requestCancel()
	}
	return m, nil
}

func (m *Model) requestCancel() {
	if m.cancelling {
		return
	}
	m.cancelling = true
	if m.opts.Cancel != nil {
		m.opts.Cancel()
	}
}

func (m Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m Model) render() string {
	if m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Applying %d fixes", len(m.opts.Fixes))))
	if m.opts.Project != "" {
		b.WriteString(styles.MutedStyle.Render(" in " + m.opts.Project))
	}
	b.WriteString("\n\n")

	failed := make(map[string]bool, len(m.status.Failures))
	for _, f := range m.status.Failures {
		failed[f.Fix] = true
	}

	for i, name := range m.opts.Fixes {
		switch {
		case i < m.status.Applied && failed[name]:
			b.WriteString(styles.ErrorStyle.Render(styles.SymbolFailed+" "+name) + "\n")
		case i < m.status.Applied:
			b.WriteString(styles.SuccessStyle.Render(styles.SymbolApplied) + " " + name + "\n")
		case name == m.status.Current && i == m.status.Applied:
			b.WriteString(m.spinner.View() + " " + styles.AccentStyle.Render(name) + "\n")
		default:
			b.WriteString(styles.MutedStyle.Render(styles.SymbolPending+" "+name) + "\n")
		}
	}

	pct := m.status.Progress / 100
	b.WriteString("\n" + m.progress.ViewAs(pct) + fmt.Sprintf(" %3.0f%%\n", m.status.Progress))

	switch {
	case m.killed:
		b.WriteString(styles.WarningStyle.Render("Aborting current fix..."))
	case m.cancelling:
		b.WriteString(styles.WarningStyle.Render("Stopping after the current fix... (ctrl+c again to abort it)"))
	default:
		b.WriteString(styles.MutedStyle.Render("q/esc stop after current fix • ctrl+c twice to abort"))
	}
	return b.String()
}

// View drives an interactive run screen on stderr.
type View struct {
	program *tea.Program
	done    chan struct{}
	err     error
}

// Start launches the run screen in the background.
func Start(opts Options) *View {
	profile := colorprofile.Detect(os.Stderr, os.Environ())
	v := &View{
		program: tea.NewProgram(NewModel(opts),
			tea.WithOutput(os.Stderr),
			tea.WithColorProfile(profile),
			tea.WithoutSignalHandler(),
		),
		done: make(chan struct{}),
	}
	go func() {
		_, v.err = v.program.Run()
		close(v.done)
	}()
	return v
}

// Observe forwards a status snapshot to the screen. It is meant to be
// passed to orchestrator.WithObserver.
func (v *View) Observe(s orchestrator.Status) {
	v.program.Send(statusMsg(s))
}

// Wait blocks until the screen has exited and returns its error.
func (v *View) Wait() error {
	<-v.done
	return v.err
}

// Stop quits the screen without waiting for a terminal status.
func (v *View) Stop() {
	v.program.Quit()
	<-v.done
}

// Plain returns an observer that prints one line per fix start, failure
// and terminal state to w.
func Plain(w io.Writer) func(orchestrator.Status) {
	var (
		mu       sync.Mutex
		started  = -1
		failures int
	)
	return func(s orchestrator.Status) {
		mu.Lock()
		defer mu.Unlock()

		for ; failures < len(s.Failures); failures++ {
			f := s.Failures[failures]
			fmt.Fprintf(w, "  %s %s\n", styles.SymbolFailed, describeFailure(f))
		}

		if s.Current != "" && s.Applied > started {
			started = s.Applied
			fmt.Fprintf(w, "[%d/%d] %s\n", s.Applied+1, s.Total, s.Current)
		}

		if s.State.Terminal() {
			fmt.Fprintf(w, "%s (%.0f%%)\n", s.State, s.Progress)
		}
	}
}

func describeFailure(f orchestrator.FixError) string {
	if f.Err != nil {
		return fmt.Sprintf("%s failed: %v", f.Fix, f.Err)
	}
	return fmt.Sprintf("%s failed with exit status %d", f.Fix, f.ExitCode)
}

// Summary renders a short report of a finished run.
func Summary(out orchestrator.Outcome) string {
	var b strings.Builder
	b.WriteString(styles.FormatState(out.State))
	fmt.Fprintf(&b, ": %d/%d fixes processed", out.Applied, out.Total)
	if n := len(out.Failures); n > 0 {
		fmt.Fprintf(&b, ", %s", styles.ErrorStyle.Render(fmt.Sprintf("%d failed", n)))
	}
	b.WriteString("\n")

	for _, f := range out.Failures {
		b.WriteString("  " + styles.ErrorStyle.Render(styles.SymbolFailed) + " " + describeFailure(f) + "\n")
	}
	if out.Err != nil {
		b.WriteString(styles.ErrorStyle.Render("Error: "+out.Err.Error()) + "\n")
	}
	if out.State == orchestrator.Cancelled {
		remaining := out.Total - out.Applied
		b.WriteString(styles.WarningStyle.Render(fmt.Sprintf("%d fixes not applied", remaining)) + "\n")
	}
	return b.String()
}

// FailedNames returns the names of failed fixes in run order.
func FailedNames(out orchestrator.Outcome) []string {
	names := make([]string, 0, len(out.Failures))
	for _, f := range out.Failures {
		if !slices.Contains(names, f.Fix) {
			names = append(names, f.Fix)
		}
	}
	return names
}
