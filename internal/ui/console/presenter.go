// Package console renders the widget as log lines, for hosts without a display.
package console

import (
	"context"

	"github.com/oshokin/clock-widget/internal/logger"
)

// Presenter writes controller output to the context logger.
// Clock and timer frames are logged at debug level, alarm events at info/warn.
type Presenter struct {
	// ctx carries the named logger.
	ctx context.Context //nolint:containedctx // Presenter callbacks have no context of their own.
	// lastTimer suppresses duplicate timer lines.
	lastTimer string
}

// NewPresenter creates a presenter logging through ctx.
func NewPresenter(ctx context.Context) *Presenter {
	return &Presenter{
		ctx: logger.WithName(ctx, "console"),
	}
}

// ShowClock logs the clock text.
func (p *Presenter) ShowClock(text string) {
	logger.DebugKV(p.ctx, "Clock", "time", text)
}

// ShowTimer logs the timer text when it changes.
func (p *Presenter) ShowTimer(text string) {
	if text == p.lastTimer {
		return
	}

	p.lastTimer = text
	logger.DebugKV(p.ctx, "Timer", "text", text)
}

// AlarmArmed logs the confirmation.
func (p *Presenter) AlarmArmed(at string) {
	logger.Infof(p.ctx, "Alarm set for %s.", at)
}

// AlarmRejected logs the warning.
func (p *Presenter) AlarmRejected(input string, err error) {
	logger.WarnKV(p.ctx, "Please enter a valid time in HH:MM format.", "input", input, "error", err)
}

// AlarmFired logs the notification.
func (p *Presenter) AlarmFired(at string) {
	logger.InfoKV(p.ctx, "Time's up!", "alarm_time", at)
}
