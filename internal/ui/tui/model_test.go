package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/clock-widget/internal/domain/clock"
)

// fakeActions records forwarded input.
type fakeActions struct {
	// calls lists forwarded actions in order.
	calls []string
}

func (f *fakeActions) SetAlarm(_ context.Context, input string) (domain.Snapshot, error) {
	f.calls = append(f.calls, "set:"+input)

	return domain.Snapshot{}, nil
}

func (f *fakeActions) StartTimer(context.Context) (domain.Snapshot, error) {
	f.calls = append(f.calls, "start")

	return domain.Snapshot{}, nil
}

func (f *fakeActions) StopTimer(context.Context) (domain.Snapshot, error) {
	f.calls = append(f.calls, "stop")

	return domain.Snapshot{}, nil
}

func (f *fakeActions) ResetTimer(context.Context) (domain.Snapshot, error) {
	f.calls = append(f.calls, "reset")

	return domain.Snapshot{}, nil
}

// runes builds a key message for typed characters.
func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends msg and runs the resulting command, if any.
func press(m *Model, msg tea.Msg) {
	_, cmd := m.Update(msg)
	if cmd != nil {
		cmd()
	}
}

// TestModel_SetAlarmFromTypedInput types a time, submits it and expects a cleared input.
func TestModel_SetAlarmFromTypedInput(t *testing.T) {
	t.Parallel()

	actions := new(fakeActions)
	m := newModel(context.Background())
	m.actions = actions

	for _, r := range "07:3a0" {
		m.Update(runes(string(r)))
	}

	require.Equal(t, "07:30", m.input.Value())

	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, []string{"set:07:30"}, actions.calls)
	require.Empty(t, m.input.Value())
}

// TestModel_TimerKeys maps s/x/r to the stopwatch actions.
func TestModel_TimerKeys(t *testing.T) {
	t.Parallel()

	actions := new(fakeActions)
	m := newModel(context.Background())
	m.actions = actions

	press(m, runes("s"))
	press(m, runes("x"))
	press(m, runes("r"))

	require.Equal(t, []string{"start", "stop", "reset"}, actions.calls)
	require.Empty(t, m.input.Value())
}

// TestModel_NoticeIsModal checks an alarm notice swallows the next key.
func TestModel_NoticeIsModal(t *testing.T) {
	t.Parallel()

	actions := new(fakeActions)
	m := newModel(context.Background())
	m.actions = actions

	m.Update(alarmFiredMsg("07:00"))
	require.Contains(t, m.View(), "Time's up!")

	press(m, runes("s"))
	require.Empty(t, actions.calls)
	require.NotContains(t, m.View(), "Time's up!")

	press(m, runes("s"))
	require.Equal(t, []string{"start"}, actions.calls)
}

// TestModel_RendersPublishedValues checks clock, timer and status lines reach the view.
func TestModel_RendersPublishedValues(t *testing.T) {
	t.Parallel()

	m := newModel(context.Background())
	require.Contains(t, m.View(), "Timer: 0 seconds")

	m.Update(clockMsg("07:00:00"))
	m.Update(timerMsg("Timer: 3 seconds"))
	m.Update(statusMsg{text: "Please enter a valid time in HH:MM format.", warn: true})

	view := m.View()
	require.Contains(t, view, "07:00:00")
	require.Contains(t, view, "Timer: 3 seconds")
	require.Contains(t, view, "Please enter a valid time in HH:MM format.")
}

// TestModel_QuitKeys returns tea.Quit for q and ctrl+c.
func TestModel_QuitKeys(t *testing.T) {
	t.Parallel()

	m := newModel(context.Background())

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

// TestModel_UnboundIgnoresInput ensures keys before Bind produce no command.
func TestModel_UnboundIgnoresInput(t *testing.T) {
	t.Parallel()

	m := newModel(context.Background())

	_, cmd := m.Update(runes("s"))
	require.Nil(t, cmd)
}
