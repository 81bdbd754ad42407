package gui

import (
	"context"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/clock-widget/internal/domain/clock"
)

// fakeActions records forwarded input on a channel.
type fakeActions struct {
	// calls receives one entry per forwarded action.
	calls chan string
}

func newFakeActions() *fakeActions {
	return &fakeActions{
		calls: make(chan string, 8),
	}
}

func (f *fakeActions) SetAlarm(_ context.Context, input string) (domain.Snapshot, error) {
	f.calls <- "set:" + input

	return domain.Snapshot{}, nil
}

func (f *fakeActions) StartTimer(context.Context) (domain.Snapshot, error) {
	f.calls <- "start"

	return domain.Snapshot{}, nil
}

func (f *fakeActions) StopTimer(context.Context) (domain.Snapshot, error) {
	f.calls <- "stop"

	return domain.Snapshot{}, nil
}

func (f *fakeActions) ResetTimer(context.Context) (domain.Snapshot, error) {
	f.calls <- "reset"

	return domain.Snapshot{}, nil
}

// next waits for the next forwarded action.
func (f *fakeActions) next(t *testing.T) string {
	t.Helper()

	select {
	case call := <-f.calls:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("action was not forwarded")

		return ""
	}
}

// newTestView builds a view in a headless fyne test app.
func newTestView(t *testing.T) *View {
	t.Helper()

	a := test.NewApp()
	t.Cleanup(a.Quit)

	w := a.NewWindow("clock")
	t.Cleanup(w.Close)

	return NewView(context.Background(), w)
}

// TestView_ForwardsInput taps every control and expects the matching action.
func TestView_ForwardsInput(t *testing.T) {
	v := newTestView(t)
	actions := newFakeActions()
	v.Bind(actions)

	v.alarmEntry.SetText("07:00")
	test.Tap(v.setAlarmButton)
	require.Equal(t, "set:07:00", actions.next(t))

	test.Tap(v.startButton)
	require.Equal(t, "start", actions.next(t))

	test.Tap(v.stopButton)
	require.Equal(t, "stop", actions.next(t))

	test.Tap(v.resetButton)
	require.Equal(t, "reset", actions.next(t))
}

// TestView_UnboundIgnoresInput ensures taps before Bind do not panic.
func TestView_UnboundIgnoresInput(t *testing.T) {
	v := newTestView(t)

	test.Tap(v.startButton)
	test.Tap(v.setAlarmButton)
}

// TestView_RendersPublishedValues checks the presenter methods update the displays.
func TestView_RendersPublishedValues(t *testing.T) {
	v := newTestView(t)

	require.Equal(t, "Timer: 0 seconds", v.TimerText())

	v.ShowClock("07:00:00")
	v.ShowTimer("Timer: 3 seconds")

	require.Eventually(t, func() bool {
		return v.ClockText() == "07:00:00" && v.TimerText() == "Timer: 3 seconds"
	}, time.Second, 10*time.Millisecond)
}

// overlayCount returns the number of dialogs on the window canvas.
func overlayCount(v *View) int {
	var count int

	fyne.DoAndWait(func() {
		count = len(v.window.Canvas().Overlays().List())
	})

	return count
}

// currentNotice returns the last dialog the view put up.
func currentNotice(v *View) notice {
	var n notice

	fyne.DoAndWait(func() {
		n = v.lastNotice
	})

	return n
}

// TestView_AlarmDialogs expects a dialog with the right kind, title and text
// for each alarm notification.
func TestView_AlarmDialogs(t *testing.T) {
	cases := []struct {
		name string
		show func(v *View)
		want notice
	}{
		{
			name: "armed",
			show: func(v *View) { v.AlarmArmed("07:00") },
			want: notice{title: "Alarm Set", message: "Alarm set for 07:00."},
		},
		{
			name: "rejected",
			show: func(v *View) { v.AlarmRejected("7:00", domain.ErrInvalidAlarmFormat) },
			want: notice{warning: true, title: "Invalid Time", message: "Please enter a valid time in HH:MM format."},
		},
		{
			name: "fired",
			show: func(v *View) { v.AlarmFired("07:00") },
			want: notice{title: "Alarm", message: "Time's up!"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newTestView(t)
			before := overlayCount(v)

			tc.show(v)

			require.Eventually(t, func() bool {
				return overlayCount(v) == before+1
			}, time.Second, 10*time.Millisecond)
			require.Equal(t, tc.want, currentNotice(v))
		})
	}
}

// TestView_RejectedUsesWarningDialog keeps the invalid-time dialog distinct
// from the confirmation.
func TestView_RejectedUsesWarningDialog(t *testing.T) {
	v := newTestView(t)

	v.AlarmArmed("07:00")
	require.Eventually(t, func() bool {
		return !currentNotice(v).warning && currentNotice(v).title == "Alarm Set"
	}, time.Second, 10*time.Millisecond)

	v.AlarmRejected("24:00", domain.ErrInvalidAlarmFormat)
	require.Eventually(t, func() bool {
		return currentNotice(v).warning
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, 2, overlayCount(v))
}
