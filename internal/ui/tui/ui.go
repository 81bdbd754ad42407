package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oshokin/clock-widget/internal/logger"
)

// UI runs the terminal program and implements the controller's presenter contract.
type UI struct {
	// ctx stops the program when canceled.
	ctx context.Context //nolint:containedctx // Needed to tell cancellation from a failure.
	// model is the program's model.
	model *Model
	// program is the bubbletea program.
	program *tea.Program
}

// New creates the terminal UI. Extra options are appended to the defaults
// (alternate screen, cancellation by ctx).
func New(ctx context.Context, opts ...tea.ProgramOption) *UI {
	ctx = logger.WithName(ctx, "tui")
	model := newModel(ctx)

	options := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}, opts...)

	return &UI{
		ctx:     ctx,
		model:   model,
		program: tea.NewProgram(model, options...),
	}
}

// Bind sets the actions that receive forwarded input. Call it before Run.
func (u *UI) Bind(actions Actions) {
	u.model.actions = actions
}

// Run blocks until the user quits or ctx is canceled.
func (u *UI) Run() error {
	if _, err := u.program.Run(); err != nil {
		if u.ctx.Err() != nil {
			return nil
		}

		return fmt.Errorf("run terminal ui: %w", err)
	}

	return nil
}

// ShowClock publishes the wall clock.
func (u *UI) ShowClock(text string) {
	u.program.Send(clockMsg(text))
}

// ShowTimer publishes the stopwatch.
func (u *UI) ShowTimer(text string) {
	u.program.Send(timerMsg(text))
}

// AlarmArmed confirms the alarm.
func (u *UI) AlarmArmed(at string) {
	u.program.Send(statusMsg{text: fmt.Sprintf("Alarm set for %s.", at)})
}

// AlarmRejected warns about a malformed alarm time.
func (u *UI) AlarmRejected(_ string, _ error) {
	u.program.Send(statusMsg{text: "Please enter a valid time in HH:MM format.", warn: true})
}

// AlarmFired raises the notification.
func (u *UI) AlarmFired(at string) {
	u.program.Send(alarmFiredMsg(at))
}
