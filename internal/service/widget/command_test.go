package widget

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/clock-widget/internal/config"
	"github.com/oshokin/clock-widget/internal/logger"
)

// TestLoadSettings_Overrides applies command-line values over the file.
func TestLoadSettings_Overrides(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "clock-widget-settings.yaml")
	require.NoError(t, config.Save(cfgPath, &config.Config{Mode: config.ModeGUI, Location: "UTC"}))

	settings, err := loadSettings(&Options{
		ConfigPath:     cfgPath,
		Mode:           string(config.ModeTUI),
		ControlAddress: "127.0.0.1:50071",
		LogLevel:       "debug",
		LogFile:        "clock-widget.log",
	})
	require.NoError(t, err)
	require.Equal(t, config.ModeTUI, settings.Mode)
	require.Equal(t, "127.0.0.1:50071", settings.ControlAddress)
	require.Equal(t, "debug", settings.LogLevel)
	require.Equal(t, "clock-widget.log", settings.LogFile)

	_, err = loadSettings(&Options{ConfigPath: cfgPath, Mode: "kiosk"})
	require.Error(t, err)
}

// TestRedirectLogs_TerminalModeKeepsTerminalClean ensures tui mode writes
// nothing to stdout or stderr when no log file is configured.
//
//nolint:paralleltest // Swaps os.Stdout, os.Stderr and the global logger.
func TestRedirectLogs_TerminalModeKeepsTerminalClean(t *testing.T) {
	stdoutReader, stdoutWriter, err := os.Pipe()
	require.NoError(t, err)

	stderrReader, stderrWriter, err := os.Pipe()
	require.NoError(t, err)

	origStdout, origStderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = stdoutWriter, stderrWriter

	closeLogs, err := redirectLogs(&config.Config{Mode: config.ModeTUI})

	logger.InfoKV(context.Background(), "Alarm armed", "alarm_time", "07:00")
	logger.ErrorKV(context.Background(), "Control call failed", "error", "boom")

	os.Stdout, os.Stderr = origStdout, origStderr

	require.NoError(t, err)
	require.NoError(t, closeLogs())
	require.NoError(t, stdoutWriter.Close())
	require.NoError(t, stderrWriter.Close())

	written, err := io.ReadAll(stdoutReader)
	require.NoError(t, err)
	require.Empty(t, written)

	written, err = io.ReadAll(stderrReader)
	require.NoError(t, err)
	require.Empty(t, written)
}

// TestRedirectLogs_WritesToLogFile sends log lines to the configured file.
//
//nolint:paralleltest // Swaps the global logger.
func TestRedirectLogs_WritesToLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "clock-widget.log")

	closeLogs, err := redirectLogs(&config.Config{Mode: config.ModeTUI, LogFile: logPath})
	require.NoError(t, err)

	logger.InfoKV(context.Background(), "Timer started")
	require.NoError(t, closeLogs())

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(contents), "Timer started")
}

// TestRedirectLogs_MissingDirectory fails instead of logging to the terminal.
//
//nolint:paralleltest // May swap the global logger.
func TestRedirectLogs_MissingDirectory(t *testing.T) {
	_, err := redirectLogs(&config.Config{
		Mode:    config.ModeTUI,
		LogFile: filepath.Join(t.TempDir(), "missing", "clock-widget.log"),
	})
	require.Error(t, err)
}
