package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"billable-timer/internal/api"
	"billable-timer/internal/domain"
)

// IsTerminal reports whether both ends are interactive terminals
func IsTerminal(in io.Reader, out io.Writer) bool {
	inFile, ok := in.(*os.File)
	if !ok {
		return false
	}
	outFile, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isTTY(inFile) && isTTY(outFile)
}

func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type trackKeyMap struct {
	Start  key.Binding
	Toggle key.Binding
	Stop   key.Binding
	Flush  key.Binding
	Quit   key.Binding
	Abort  key.Binding
}

func defaultTrackKeyMap() trackKeyMap {
	return trackKeyMap{
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Toggle: key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause/resume")),
		Stop:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Flush:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flush")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Abort:  key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k trackKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Toggle, k.Stop, k.Flush, k.Quit}
}

// tickMsg drives the periodic display refresh
type tickMsg time.Time

// actionMsg carries the result of a transition run off the event loop
type actionMsg struct {
	line string
	err  error
}

// trackModel renders one session and maps keys to session commands. The
// refresh tick only reads Status; every mutation goes through the API.
type trackModel struct {
	app      *App
	ctx      context.Context
	keys     trackKeyMap
	help     help.Model
	interval time.Duration

	status      api.SessionStatus
	message     string
	failed      bool
	busy        bool
	confirmQuit bool
	quitting    bool
}

func newTrackModel(ctx context.Context, app *App) trackModel {
	interval := app.config.Display.RefreshInterval
	if interval <= 0 {
		interval = time.Second
	}
	return trackModel{
		app:      app,
		ctx:      ctx,
		keys:     defaultTrackKeyMap(),
		help:     help.New(),
		interval: interval,
		status:   app.api.Status(),
	}
}

func (m trackModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m trackModel) Init() tea.Cmd {
	return m.tick()
}

func (m trackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.status = m.app.api.Status()
		return m, m.tick()

	case actionMsg:
		m.busy = false
		m.status = m.app.api.Status()
		if msg.err != nil {
			m.message = m.app.errorHandler.HandleSimple(msg.err).Error()
			if msg.line != "" {
				m.message = msg.line + "\n" + m.message
			}
			m.failed = true
		} else {
			m.message = msg.line
			m.failed = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m trackModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Abort) {
		m.quitting = true
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Quit) {
		active := m.status.State == domain.StateRunning || m.status.State == domain.StatePaused
		if active && !m.confirmQuit {
			m.confirmQuit = true
			m.message = "session is still open; press q again to quit without recording it"
			m.failed = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	m.confirmQuit = false

	if m.busy {
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Start):
		cmd = m.run("start", nil)
	case key.Matches(msg, m.keys.Toggle):
		if m.status.State == domain.StatePaused {
			cmd = m.run("resume", nil)
		} else {
			cmd = m.run("pause", nil)
		}
	case key.Matches(msg, m.keys.Stop):
		cmd = m.run("stop", nil)
	case key.Matches(msg, m.keys.Flush):
		cmd = m.run("flush", nil)
	default:
		return m, nil
	}

	m.busy = true
	return m, cmd
}

// run executes a registered command against a buffer so its result line can
// be shown in the view instead of being written over the screen.
func (m trackModel) run(name string, args []string) tea.Cmd {
	app := m.app
	ctx := m.ctx
	return func() tea.Msg {
		var buf strings.Builder
		sub := *app
		sub.out = &buf
		sub.registry = NewCommandRegistry(&sub)

		err := sub.registry.Execute(ctx, name, args)
		return actionMsg{line: strings.TrimSpace(buf.String()), err: err}
	}
}

func (m trackModel) View() string {
	if m.quitting {
		return ""
	}

	ts := m.app.services.TimeService
	var b strings.Builder

	title := "bt"
	if m.status.ProjectName != "" {
		title += "  " + m.status.ProjectName
		if m.status.Description != "" {
			title += ": " + m.status.Description
		}
	} else if m.app.defaults.ProjectName != "" {
		title += "  " + m.app.defaults.ProjectName
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(stateBadge(m.status.State))
	b.WriteString(clockStyle.Render(ts.FormatClock(m.status.ElapsedSeconds)))
	b.WriteString(dimStyle.Render(" active   "))
	b.WriteString(clockStyle.Render(ts.FormatClock(m.status.PausedSeconds)))
	b.WriteString(dimStyle.Render(" paused"))
	b.WriteString("\n")

	terms := fmt.Sprintf("rate %s/h", orDefault(m.app.defaults.Rate, "0"))
	if floor := m.app.defaults.MinimumMinutes; floor != "" && floor != "0" {
		terms += fmt.Sprintf(", minimum %s min", floor)
	}
	if m.status.PendingCount > 0 {
		terms += fmt.Sprintf("   %d pending", m.status.PendingCount)
	}
	b.WriteString(dimStyle.Render(terms))
	b.WriteString("\n\n")

	if m.message != "" {
		if m.failed {
			b.WriteString(errorStyle.Render(m.message))
		} else {
			b.WriteString(successStyle.Render(m.message))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return frameStyle.Render(b.String())
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// RunTracker runs the interactive tracker until the user quits
func (a *App) RunTracker(ctx context.Context, in io.Reader, out io.Writer) error {
	program := tea.NewProgram(
		newTrackModel(ctx, a),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := program.Run(); err != nil {
		return err
	}

	return a.checkUnsaved()
}
