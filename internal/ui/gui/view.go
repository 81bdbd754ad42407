package gui

import (
	"context"
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	domain "github.com/oshokin/clock-widget/internal/domain/clock"
	"github.com/oshokin/clock-widget/internal/logger"
)

// Actions are the controller operations the view forwards input to.
type Actions interface {
	SetAlarm(ctx context.Context, input string) (domain.Snapshot, error)
	StartTimer(ctx context.Context) (domain.Snapshot, error)
	StopTimer(ctx context.Context) (domain.Snapshot, error)
	ResetTimer(ctx context.Context) (domain.Snapshot, error)
}

// Text sizes for the two displays.
const (
	clockTextSize = 100
	timerTextSize = 48
)

// Dialog texts.
const (
	alarmSetTitle     = "Alarm Set"
	invalidTimeTitle  = "Invalid Time"
	invalidTimeText   = "Please enter a valid time in HH:MM format."
	alarmTitle        = "Alarm"
	alarmFiredText    = "Time's up!"
	alarmPlaceholder  = "Set Alarm (HH:MM)"
	initialTimerLabel = "Timer: 0 seconds"
	dismissText       = "OK"
)

// notice is a dialog the view has shown.
type notice struct {
	// warning selects the warning dialog over the information one.
	warning bool
	// title is the dialog title.
	title string
	// message is the dialog body.
	message string
}

// View is the desktop window content.
type View struct {
	// ctx carries the logger and bounds forwarded actions.
	ctx context.Context //nolint:containedctx // Widget callbacks have no context of their own.
	// window hosts the content and the dialogs.
	window fyne.Window
	// actions receives forwarded input; nil until Bind.
	actions Actions

	// clockText shows HH:MM:SS.
	clockText *canvas.Text
	// alarmEntry accepts the alarm time.
	alarmEntry *widget.Entry
	// setAlarmButton submits alarmEntry.
	setAlarmButton *widget.Button
	// timerText shows the stopwatch.
	timerText *canvas.Text
	// startButton starts the stopwatch.
	startButton *widget.Button
	// stopButton stops the stopwatch.
	stopButton *widget.Button
	// resetButton resets the stopwatch.
	resetButton *widget.Button

	// lastNotice is the most recent dialog; fyne thread only.
	lastNotice notice
}

// NewView builds the widget layout and sets it as the window content.
func NewView(ctx context.Context, window fyne.Window) *View {
	v := &View{
		ctx:    logger.WithName(ctx, "gui"),
		window: window,
	}

	v.clockText = canvas.NewText("", color.White)
	v.clockText.TextSize = clockTextSize
	v.clockText.Alignment = fyne.TextAlignCenter
	v.clockText.TextStyle = fyne.TextStyle{Monospace: true}

	v.alarmEntry = widget.NewEntry()
	v.alarmEntry.SetPlaceHolder(alarmPlaceholder)
	v.alarmEntry.OnSubmitted = func(string) { v.submitAlarm() }

	v.setAlarmButton = widget.NewButton("Set Alarm", v.submitAlarm)
	v.setAlarmButton.Importance = widget.HighImportance

	v.timerText = canvas.NewText(initialTimerLabel, color.White)
	v.timerText.TextSize = timerTextSize
	v.timerText.Alignment = fyne.TextAlignCenter

	v.startButton = widget.NewButton("Start Timer", func() { v.forward("start timer", Actions.StartTimer) })
	v.startButton.Importance = widget.SuccessImportance

	v.stopButton = widget.NewButton("Stop Timer", func() { v.forward("stop timer", Actions.StopTimer) })
	v.stopButton.Importance = widget.DangerImportance

	v.resetButton = widget.NewButton("Reset Timer", func() { v.forward("reset timer", Actions.ResetTimer) })
	v.resetButton.Importance = widget.DangerImportance

	content := container.NewVBox(
		v.clockText,
		v.alarmEntry,
		v.setAlarmButton,
		v.timerText,
		v.startButton,
		v.stopButton,
		v.resetButton,
	)

	window.SetContent(container.NewPadded(content))

	return v
}

// Bind sets the actions that receive forwarded input.
func (v *View) Bind(actions Actions) {
	v.actions = actions
}

// ShowClock publishes the wall clock.
func (v *View) ShowClock(text string) {
	fyne.Do(func() {
		v.clockText.Text = text
		v.clockText.Refresh()
	})
}

// ShowTimer publishes the stopwatch.
func (v *View) ShowTimer(text string) {
	fyne.Do(func() {
		v.timerText.Text = text
		v.timerText.Refresh()
	})
}

// AlarmArmed confirms the alarm in a dialog.
func (v *View) AlarmArmed(at string) {
	fyne.Do(func() {
		v.showNotice(notice{title: alarmSetTitle, message: fmt.Sprintf("Alarm set for %s.", at)})
	})
}

// AlarmRejected warns about a malformed alarm time.
func (v *View) AlarmRejected(_ string, _ error) {
	fyne.Do(func() {
		v.showNotice(notice{warning: true, title: invalidTimeTitle, message: invalidTimeText})
	})
}

// AlarmFired shows the modal notification and raises the window.
func (v *View) AlarmFired(_ string) {
	fyne.Do(func() {
		v.window.RequestFocus()
		v.showNotice(notice{title: alarmTitle, message: alarmFiredText})
	})
}

// showNotice puts n up as a dialog. It runs on the fyne thread.
func (v *View) showNotice(n notice) {
	v.lastNotice = n

	if !n.warning {
		dialog.ShowInformation(n.title, n.message, v.window)

		return
	}

	content := container.NewHBox(
		widget.NewIcon(theme.WarningIcon()),
		widget.NewLabel(n.message),
	)

	dialog.NewCustom(n.title, dismissText, content, v.window).Show()
}

// ClockText returns the displayed clock text.
func (v *View) ClockText() string {
	var text string

	fyne.DoAndWait(func() {
		text = v.clockText.Text
	})

	return text
}

// TimerText returns the displayed stopwatch text.
func (v *View) TimerText() string {
	var text string

	fyne.DoAndWait(func() {
		text = v.timerText.Text
	})

	return text
}

// submitAlarm forwards the entry text. It runs on the fyne thread.
func (v *View) submitAlarm() {
	input := v.alarmEntry.Text

	v.forward("set alarm", func(a Actions, ctx context.Context) (domain.Snapshot, error) {
		return a.SetAlarm(ctx, input)
	})
}

// forward calls action off the fyne thread. Results reach the screen through
// the presenter methods, so only unexpected failures are logged here.
func (v *View) forward(what string, action func(Actions, context.Context) (domain.Snapshot, error)) {
	actions := v.actions
	if actions == nil {
		logger.WarnKV(v.ctx, "Input ignored, view is not bound", "action", what)

		return
	}

	go func() {
		if _, err := action(actions, v.ctx); err != nil {
			logger.DebugKV(v.ctx, "Action finished with error", "action", what, "error", err)
		}
	}()
}
