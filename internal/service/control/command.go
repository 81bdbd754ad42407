package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/clock-widget/internal/config"
	domain "github.com/oshokin/clock-widget/internal/domain/clock"
	"github.com/oshokin/clock-widget/internal/logger"
	"github.com/oshokin/clock-widget/internal/service/common"
)

// Action names the remote operation clockctl performs.
type Action string

const (
	// ActionSetAlarm arms the alarm for Options.AlarmTime.
	ActionSetAlarm Action = "alarm"
	// ActionStartTimer starts the stopwatch.
	ActionStartTimer Action = "start"
	// ActionStopTimer stops the stopwatch.
	ActionStopTimer Action = "stop"
	// ActionResetTimer resets the stopwatch.
	ActionResetTimer Action = "reset"
	// ActionStatus prints the widget state.
	ActionStatus Action = "status"
)

// Options configures a single clockctl invocation.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string

	// ServerAddress overrides the control address from config when specified.
	ServerAddress string

	// Action is the operation to perform.
	Action Action

	// AlarmTime is the HH:MM value for ActionSetAlarm.
	AlarmTime string

	// Output receives the resulting status line, os.Stdout when nil.
	Output io.Writer
}

var (
	// errUnknownAction is returned for an Action outside the known set.
	errUnknownAction = errors.New("unknown action")
	// errAlarmTimeRequired is returned when ActionSetAlarm has no time.
	errAlarmTimeRequired = errors.New("alarm time must be provided")
)

// Run connects to the widget, performs opts.Action and prints the resulting state.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "clockctl")

	if err := validate(opts); err != nil {
		return err
	}

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	// Use control address from options if provided, otherwise use config.
	if opts.ServerAddress != "" {
		cfg.ControlAddress = opts.ServerAddress
	}

	serverAddress, err := cfg.RequireControlAddress()
	if err != nil {
		return err
	}

	// Identify current user and hostname for the widget's log.
	actor, err := common.DetectActor()
	if err != nil {
		return err
	}

	client, err := common.Dial(
		ctx,
		serverAddress,
		common.WithCallTimeout(cfg.Timeout),
		common.WithActor(actor),
	)
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	logger.DebugKV(ctx, "Sending command", "server_address", serverAddress, "action", opts.Action)

	snapshot, err := perform(ctx, client, opts)
	if err != nil {
		logger.ErrorKV(ctx, "Command failed", "action", opts.Action, "error", err)

		return err
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	_, err = fmt.Fprintln(out, FormatSnapshot(snapshot))

	return err
}

// validate rejects options that cannot produce a call.
func validate(opts *Options) error {
	switch opts.Action {
	case ActionSetAlarm:
		if opts.AlarmTime == "" {
			return errAlarmTimeRequired
		}
	case ActionStartTimer, ActionStopTimer, ActionResetTimer, ActionStatus:
	default:
		return fmt.Errorf("%w: %q", errUnknownAction, opts.Action)
	}

	return nil
}

// perform dispatches opts.Action to the matching client call.
func perform(ctx context.Context, client *common.Client, opts *Options) (domain.Snapshot, error) {
	switch opts.Action {
	case ActionSetAlarm:
		return client.SetAlarm(ctx, opts.AlarmTime)
	case ActionStartTimer:
		return client.StartTimer(ctx)
	case ActionStopTimer:
		return client.StopTimer(ctx)
	case ActionResetTimer:
		return client.ResetTimer(ctx)
	case ActionStatus:
		return client.Status(ctx)
	default:
		return domain.Snapshot{}, fmt.Errorf("%w: %q", errUnknownAction, opts.Action)
	}
}

// FormatSnapshot converts a widget snapshot to a readable status line.
func FormatSnapshot(snapshot domain.Snapshot) string {
	// Timestamp with fallback for missing data.
	timestamp := "<unknown>"
	if !snapshot.Timestamp.IsZero() {
		timestamp = snapshot.Timestamp.Format(time.RFC3339)
	}

	clockText := snapshot.Clock
	if clockText == "" {
		clockText = "--:--:--"
	}

	alarm := "alarm off"
	if snapshot.AlarmArmed {
		alarm = "alarm at " + snapshot.AlarmTime
	}

	stopwatch := "stopped"
	if snapshot.TimerRunning {
		stopwatch = "running"
	}

	return fmt.Sprintf("%s, %s, %s (%s) (%s)", clockText, alarm, snapshot.TimerText(), stopwatch, timestamp)
}
