package widget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oshokin/clock-widget/internal/domain/clock"
	"github.com/oshokin/clock-widget/internal/logger"
	"github.com/oshokin/clock-widget/internal/scheduler"
)

// Event names handled by the controller.
const (
	// EventClockTick redraws the wall clock and checks the alarm.
	EventClockTick scheduler.Name = "clock.tick"
	// EventTimerTick advances the stopwatch.
	EventTimerTick scheduler.Name = "timer.tick"
	// EventRender publishes the current clock and stopwatch text.
	EventRender scheduler.Name = "render"
	// EventSetAlarm arms the alarm from a string payload.
	EventSetAlarm scheduler.Name = "alarm.set"
	// EventTimerStart starts the stopwatch.
	EventTimerStart scheduler.Name = "timer.start"
	// EventTimerStop stops the stopwatch.
	EventTimerStop scheduler.Name = "timer.stop"
	// EventTimerReset stops and zeroes the stopwatch.
	EventTimerReset scheduler.Name = "timer.reset"
	// EventSnapshot returns the current state.
	EventSnapshot scheduler.Name = "snapshot"
)

// TickInterval is the period of both the display tick and the stopwatch tick.
const TickInterval = time.Second

// errUnexpectedPayload is returned when an event carries the wrong payload type.
var errUnexpectedPayload = errors.New("unexpected event payload")

// Presenter renders controller output. Methods are called on the scheduler
// loop goroutine; implementations that touch a toolkit must hand the work
// to the toolkit's own thread.
type Presenter interface {
	// ShowClock publishes the HH:MM:SS wall clock text.
	ShowClock(text string)
	// ShowTimer publishes the stopwatch text.
	ShowTimer(text string)
	// AlarmArmed confirms that the alarm is set for at.
	AlarmArmed(at string)
	// AlarmRejected warns that input is not a valid alarm time.
	AlarmRejected(input string, err error)
	// AlarmFired notifies that the alarm set for at went off.
	AlarmFired(at string)
}

// Controller is the presentation-agnostic core of the widget.
//
// The alarm, stopwatch and clock text are touched only by handlers running on
// the scheduler loop, so they need no locking.
type Controller struct {
	// scheduler delivers tick and input events.
	scheduler *scheduler.Scheduler
	// presenter renders published values.
	presenter Presenter
	// clock is the wall-clock source.
	clock clockwork.Clock
	// location is the time zone the clock is rendered in.
	location *time.Location

	// alarm is the one-shot alarm.
	alarm clock.Alarm
	// stopwatch is the start/stop/reset counter.
	stopwatch clock.Stopwatch
	// clockText is the last published HH:MM:SS.
	clockText string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLocation renders the clock and matches the alarm in loc.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		if loc != nil {
			c.location = loc
		}
	}
}

// NewController creates a controller and registers its handlers on s.
func NewController(s *scheduler.Scheduler, presenter Presenter, opts ...Option) *Controller {
	c := &Controller{
		scheduler: s,
		presenter: presenter,
		clock:     s.Clock(),
		location:  time.Local,
	}

	for _, opt := range opts {
		opt(c)
	}

	s.Handle(EventClockTick, c.onClockTick)
	s.Handle(EventTimerTick, c.onTimerTick)
	s.Handle(EventRender, c.onRender)
	s.Handle(EventSetAlarm, c.onSetAlarm)
	s.Handle(EventTimerStart, c.onTimerStart)
	s.Handle(EventTimerStop, c.onTimerStop)
	s.Handle(EventTimerReset, c.onTimerReset)
	s.Handle(EventSnapshot, c.onSnapshot)

	return c
}

// Start queues an initial render and starts the display tick.
func (c *Controller) Start() error {
	if err := c.scheduler.Post(EventRender, nil); err != nil {
		return fmt.Errorf("queue initial render: %w", err)
	}

	if err := c.scheduler.Every(EventClockTick, TickInterval); err != nil {
		return fmt.Errorf("start display tick: %w", err)
	}

	return nil
}

// SetAlarm arms the alarm for input (strict HH:MM).
// It returns an error wrapping clock.ErrInvalidAlarmFormat when input is rejected.
func (c *Controller) SetAlarm(ctx context.Context, input string) (clock.Snapshot, error) {
	return c.dispatch(ctx, EventSetAlarm, input)
}

// StartTimer starts the stopwatch from zero unless it is already running.
func (c *Controller) StartTimer(ctx context.Context) (clock.Snapshot, error) {
	return c.dispatch(ctx, EventTimerStart, nil)
}

// StopTimer halts the stopwatch and keeps its value.
func (c *Controller) StopTimer(ctx context.Context) (clock.Snapshot, error) {
	return c.dispatch(ctx, EventTimerStop, nil)
}

// ResetTimer halts the stopwatch and zeroes it.
func (c *Controller) ResetTimer(ctx context.Context) (clock.Snapshot, error) {
	return c.dispatch(ctx, EventTimerReset, nil)
}

// Snapshot returns the current state.
func (c *Controller) Snapshot(ctx context.Context) (clock.Snapshot, error) {
	return c.dispatch(ctx, EventSnapshot, nil)
}

// dispatch sends an input event through the loop and unwraps the snapshot result.
func (c *Controller) dispatch(ctx context.Context, name scheduler.Name, payload any) (clock.Snapshot, error) {
	value, err := c.scheduler.Dispatch(ctx, name, payload)

	snapshot, _ := value.(clock.Snapshot)
	if err != nil {
		return snapshot, fmt.Errorf("%s: %w", name, err)
	}

	return snapshot, nil
}

// now returns the wall-clock time in the controller's location.
func (c *Controller) now() time.Time {
	return c.clock.Now().In(c.location)
}

// snapshot captures the loop-owned state.
func (c *Controller) snapshot() clock.Snapshot {
	at, armed := c.alarm.Time()

	return clock.Snapshot{
		Timestamp:    c.now(),
		Clock:        c.clockText,
		AlarmTime:    at,
		AlarmArmed:   armed,
		TimerRunning: c.stopwatch.Running(),
		TimerElapsed: c.stopwatch.Elapsed(),
	}
}

// onClockTick publishes the wall clock and fires the alarm on the first matching tick.
func (c *Controller) onClockTick(ctx context.Context, _ scheduler.Event) (any, error) {
	now := c.now()

	c.clockText = clock.FormatClock(now)
	c.presenter.ShowClock(c.clockText)

	at, _ := c.alarm.Time()
	if c.alarm.Check(clock.FormatMinute(now)) {
		logger.InfoKV(ctx, "Alarm fired", "alarm_time", at)
		c.presenter.AlarmFired(at)
	}

	return nil, nil //nolint:nilnil // Ticks have no result.
}

// onRender publishes the current clock and stopwatch text.
func (c *Controller) onRender(_ context.Context, _ scheduler.Event) (any, error) {
	c.clockText = clock.FormatClock(c.now())
	c.presenter.ShowClock(c.clockText)
	c.presenter.ShowTimer(c.stopwatch.Text())

	return c.snapshot(), nil
}

// onSetAlarm arms the alarm or reports the invalid input.
func (c *Controller) onSetAlarm(ctx context.Context, ev scheduler.Event) (any, error) {
	input, ok := ev.Payload.(string)
	if !ok {
		return c.snapshot(), fmt.Errorf("%s: %T: %w", ev.Name, ev.Payload, errUnexpectedPayload)
	}

	previous, replaced := c.alarm.Time()

	if err := c.alarm.Set(input); err != nil {
		logger.WarnKV(ctx, "Alarm time rejected", "input", input, "error", err)
		c.presenter.AlarmRejected(input, err)

		return c.snapshot(), err
	}

	if replaced {
		logger.InfoKV(ctx, "Alarm armed", "alarm_time", input, "replaced", previous)
	} else {
		logger.InfoKV(ctx, "Alarm armed", "alarm_time", input)
	}

	c.presenter.AlarmArmed(input)

	return c.snapshot(), nil
}

// onTimerStart starts the stopwatch and its tick source.
func (c *Controller) onTimerStart(ctx context.Context, _ scheduler.Event) (any, error) {
	if !c.stopwatch.Start() {
		logger.Debug(ctx, "Timer already running")

		return c.snapshot(), nil
	}

	if err := c.scheduler.Every(EventTimerTick, TickInterval); err != nil {
		c.stopwatch.Stop()

		return c.snapshot(), fmt.Errorf("start timer tick: %w", err)
	}

	logger.Info(ctx, "Timer started")
	c.presenter.ShowTimer(c.stopwatch.Text())

	return c.snapshot(), nil
}

// onTimerTick counts one second while the stopwatch runs.
func (c *Controller) onTimerTick(_ context.Context, _ scheduler.Event) (any, error) {
	if c.stopwatch.Tick() {
		c.presenter.ShowTimer(c.stopwatch.Text())
	}

	return nil, nil //nolint:nilnil // Ticks have no result.
}

// onTimerStop halts the stopwatch.
func (c *Controller) onTimerStop(ctx context.Context, _ scheduler.Event) (any, error) {
	c.scheduler.Stop(EventTimerTick)

	if c.stopwatch.Running() {
		logger.InfoKV(ctx, "Timer stopped", "elapsed", c.stopwatch.Elapsed())
	}

	c.stopwatch.Stop()

	return c.snapshot(), nil
}

// onTimerReset halts and zeroes the stopwatch.
func (c *Controller) onTimerReset(ctx context.Context, _ scheduler.Event) (any, error) {
	c.scheduler.Stop(EventTimerTick)
	c.stopwatch.Reset()

	logger.Info(ctx, "Timer reset")
	c.presenter.ShowTimer(c.stopwatch.Text())

	return c.snapshot(), nil
}

// onSnapshot returns the current state.
func (c *Controller) onSnapshot(_ context.Context, _ scheduler.Event) (any, error) {
	return c.snapshot(), nil
}
