package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/clock-widget/internal/config"
	"github.com/oshokin/clock-widget/internal/service/control"
	"github.com/oshokin/clock-widget/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// serverAddress overrides the control address from config.
	serverAddress string

	// rootCmd represents the base command for remote control.
	rootCmd = &cobra.Command{
		Use:   "clockctl",
		Short: "Control a running clock widget.",
		Long: `Sends commands to a clock widget started with a control address.

The address is read from the configuration file or given with --server.
Every command prints the widget state after it has been applied.`,
	}
)

// newActionCommand builds a subcommand that runs a single control action.
func newActionCommand(use, short string, action control.Action, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &control.Options{
				ConfigPath:    cfgPath,
				ServerAddress: serverAddress,
				Action:        action,
				Output:        cmd.OutOrStdout(),
			}

			if len(args) > 0 {
				options.AlarmTime = args[0]
			}

			return control.Run(ctx, options)
		},
	}
}

// Execute runs the clockctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&serverAddress, "server", "s", "", "control address of the widget (overrides config)")

	rootCmd.AddCommand(
		newActionCommand("alarm HH:MM", "Arm the one-shot alarm.", control.ActionSetAlarm, cobra.ExactArgs(1)),
		newActionCommand("start", "Start the stopwatch from zero.", control.ActionStartTimer, cobra.NoArgs),
		newActionCommand("stop", "Stop the stopwatch.", control.ActionStopTimer, cobra.NoArgs),
		newActionCommand("reset", "Stop the stopwatch and reset it to zero.", control.ActionResetTimer, cobra.NoArgs),
		newActionCommand("status", "Print the widget state.", control.ActionStatus, cobra.NoArgs),
	)
}
