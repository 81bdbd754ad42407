package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/clock-widget/internal/config"
	"github.com/oshokin/clock-widget/internal/service/widget"
	"github.com/oshokin/clock-widget/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// mode overrides the configured front end.
	mode string
	// controlAddress overrides the configured remote-control address.
	controlAddress string
	// logLevel overrides the configured log level.
	logLevel string
	// logFile overrides the configured log file.
	logFile string

	// rootCmd represents the base command for running the widget.
	rootCmd = &cobra.Command{
		Use:   "clock-widget",
		Short: "Show a clock with a one-shot alarm and a stopwatch.",
		Long: `Runs the clock widget: a 24-hour clock refreshed every second,
a one-shot alarm set as HH:MM, and a seconds stopwatch.

The front end is a desktop window (gui), a terminal UI (tui) or log output only (headless).
When a control address is configured, the widget also serves a gRPC API used by clockctl.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return widget.Run(ctx, &widget.Options{
				ConfigPath:     configPath,
				Mode:           mode,
				ControlAddress: controlAddress,
				LogLevel:       logLevel,
				LogFile:        logFile,
			})
		},
	}
)

// Execute runs the clock-widget CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", "", "front end: gui, tui or headless")
	rootCmd.Flags().StringVar(&controlAddress, "control-addr", "", "address for the remote-control gRPC server")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file (tui mode drops logs without it)")
}
