package integration

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oshokin/clock-widget/internal/config"
	"github.com/oshokin/clock-widget/internal/service/common"
	"github.com/oshokin/clock-widget/internal/service/control"
	"github.com/oshokin/clock-widget/internal/service/widget"
)

// reservePort returns a free loopback address.
func reservePort(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	return addr
}

// startWidget runs a headless widget serving control on addr.
// Returns the settings path and a stop function that waits for Run to return.
func startWidget(t *testing.T, addr string) (cfgPath string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	cfgPath = filepath.Join(t.TempDir(), "clock-widget-settings.yaml")

	require.NoError(
		t,
		config.Save(cfgPath, &config.Config{
			Mode:           config.ModeHeadless,
			Location:       "UTC",
			LogLevel:       "warn",
			ControlAddress: addr,
			Timeout:        3 * time.Second,
		}),
	)

	done := make(chan error, 1)

	go func() {
		done <- widget.Run(ctx, &widget.Options{ConfigPath: cfgPath})
	}()

	return cfgPath, func() {
		cancel()
		require.NoError(t, <-done)
	}
}

// TestWidget_RemoteControl drives a live headless widget over gRPC.
func TestWidget_RemoteControl(t *testing.T) {
	t.Parallel()

	addr := reservePort(t)

	cfgPath, stop := startWidget(t, addr)
	defer stop()

	ctx := context.Background()

	c, err := common.Dial(
		ctx,
		addr,
		common.WithCallTimeout(time.Second),
		common.WithActor(common.Actor{Hostname: "test-host", Username: "test-user"}),
	)
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	// Wait until the control server is listening and the clock has rendered.
	require.Eventually(t, func() bool {
		snapshot, err := c.Status(ctx)

		return err == nil && snapshot.Clock != ""
	}, 5*time.Second, 50*time.Millisecond)

	// Invalid input is rejected and leaves the alarm disarmed.
	_, err = c.SetAlarm(ctx, "24:00")
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	snapshot, err := c.SetAlarm(ctx, "07:30")
	require.NoError(t, err)
	require.True(t, snapshot.AlarmArmed)
	require.Equal(t, "07:30", snapshot.AlarmTime)

	snapshot, err = c.StartTimer(ctx)
	require.NoError(t, err)
	require.True(t, snapshot.TimerRunning)
	require.Equal(t, 0, snapshot.TimerElapsed)

	require.Eventually(t, func() bool {
		snapshot, err := c.Status(ctx)

		return err == nil && snapshot.TimerElapsed >= 1
	}, 5*time.Second, 50*time.Millisecond)

	snapshot, err = c.StopTimer(ctx)
	require.NoError(t, err)
	require.False(t, snapshot.TimerRunning)

	stopped := snapshot.TimerElapsed

	time.Sleep(1200 * time.Millisecond)

	snapshot, err = c.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, stopped, snapshot.TimerElapsed)

	// clockctl resets and prints the resulting state.
	var out bytes.Buffer

	err = control.Run(ctx, &control.Options{
		ConfigPath: cfgPath,
		Action:     control.ActionResetTimer,
		Output:     &out,
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "alarm at 07:30")
	require.Contains(t, out.String(), "Timer: 0 seconds (stopped)")
}
