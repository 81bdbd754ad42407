package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	domain "github.com/oshokin/clock-widget/internal/domain/clock"
	"github.com/oshokin/clock-widget/internal/logger"
)

// Actions are the controller operations the model forwards input to.
type Actions interface {
	SetAlarm(ctx context.Context, input string) (domain.Snapshot, error)
	StartTimer(ctx context.Context) (domain.Snapshot, error)
	StopTimer(ctx context.Context) (domain.Snapshot, error)
	ResetTimer(ctx context.Context) (domain.Snapshot, error)
}

type (
	// clockMsg carries a new clock text.
	clockMsg string
	// timerMsg carries a new stopwatch text.
	timerMsg string
	// statusMsg carries a confirmation or warning line.
	statusMsg struct {
		text string
		warn bool
	}
	// alarmFiredMsg raises the blocking notification.
	alarmFiredMsg string
)

//nolint:gochecknoglobals // Styles are immutable after init.
var (
	clockStyle  = lipgloss.NewStyle().Bold(true).Padding(1, 2)
	timerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4DAF7C"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#61DAFB"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6F61"))
	noticeStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6F61")).
			Padding(1, 4)
	helpStyle = lipgloss.NewStyle().Faint(true)
)

// helpText lists the key bindings.
const helpText = "enter: set alarm • s: start • x: stop • r: reset • q: quit"

// Model is the bubbletea model. It is used through a pointer so Bind can
// reach the instance the program owns.
type Model struct {
	// ctx carries the logger and bounds forwarded actions.
	ctx context.Context //nolint:containedctx // bubbletea callbacks have no context of their own.
	// actions receives forwarded input; nil until Bind.
	actions Actions

	// input edits the alarm time.
	input textinput.Model
	// clock is the last clock text.
	clock string
	// timer is the last stopwatch text.
	timer string
	// status is the last confirmation or warning.
	status statusMsg
	// notice is the pending alarm notification, empty when none.
	notice string
}

var _ tea.Model = (*Model)(nil)

// newModel creates a model with an empty display.
func newModel(ctx context.Context) *Model {
	input := textinput.New()
	input.Placeholder = "HH:MM"
	input.CharLimit = len("HH:MM")
	input.Prompt = "Set Alarm: "
	input.Focus()

	return &Model{
		ctx:   ctx,
		input: input,
		timer: domain.FormatTimer(0),
	}
}

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update applies a message.
//
//nolint:ireturn // tea.Model is the bubbletea contract.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clockMsg:
		m.clock = string(msg)
	case timerMsg:
		m.timer = string(msg)
	case statusMsg:
		m.status = msg
	case alarmFiredMsg:
		m.notice = fmt.Sprintf("Time's up! (%s)", string(msg))
	case tea.KeyMsg:
		return m, m.onKey(msg)
	}

	return m, nil
}

// onKey handles a key press.
func (m *Model) onKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	// The notification is modal: any key dismisses it and does nothing else.
	if m.notice != "" {
		m.notice = ""

		return nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		input := m.input.Value()
		m.input.SetValue("")

		return m.forward("set alarm", func(a Actions, ctx context.Context) (domain.Snapshot, error) {
			return a.SetAlarm(ctx, input)
		})
	case tea.KeyBackspace, tea.KeyLeft, tea.KeyRight:
		return m.updateInput(msg)
	case tea.KeyRunes:
	default:
		return nil
	}

	switch msg.String() {
	case "s":
		return m.forward("start timer", Actions.StartTimer)
	case "x":
		return m.forward("stop timer", Actions.StopTimer)
	case "r":
		return m.forward("reset timer", Actions.ResetTimer)
	case "q":
		return tea.Quit
	}

	for _, r := range msg.Runes {
		if (r < '0' || r > '9') && r != ':' {
			return nil
		}
	}

	return m.updateInput(msg)
}

// updateInput passes msg to the text input.
func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return cmd
}

// forward returns a command calling action off the bubbletea loop.
// Results come back through the presenter, so only failures are logged.
func (m *Model) forward(what string, action func(Actions, context.Context) (domain.Snapshot, error)) tea.Cmd {
	actions, ctx := m.actions, m.ctx
	if actions == nil {
		logger.WarnKV(ctx, "Input ignored, model is not bound", "action", what)

		return nil
	}

	return func() tea.Msg {
		if _, err := action(actions, ctx); err != nil {
			logger.DebugKV(ctx, "Action finished with error", "action", what, "error", err)
		}

		return nil
	}
}

// View renders the widget.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(clockStyle.Render(m.clock))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.status.text != "" {
		style := okStyle
		if m.status.warn {
			style = warnStyle
		}

		b.WriteString(style.Render(m.status.text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(timerStyle.Render(m.timer))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice + "\n\npress any key"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(helpText))
	b.WriteString("\n")

	return b.String()
}
