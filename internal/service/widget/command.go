package widget

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	api "github.com/oshokin/clock-widget/internal/api/grpc/clock"
	"github.com/oshokin/clock-widget/internal/config"
	"github.com/oshokin/clock-widget/internal/logger"
	"github.com/oshokin/clock-widget/internal/scheduler"
	"github.com/oshokin/clock-widget/internal/version"
)

// Options controls the clock-widget process.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Mode overrides the configured presenter mode when not empty.
	Mode string
	// ControlAddress overrides the configured remote-control address when not empty.
	ControlAddress string
	// LogLevel overrides the configured log level when not empty.
	LogLevel string
	// LogFile overrides the configured log file when not empty.
	LogFile string
}

// Run loads configuration, starts the scheduler loop and the optional control
// server, and blocks in the configured front end until ctx is canceled or the
// user closes the widget.
func Run(ctx context.Context, opts *Options) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	closeLogs, err := redirectLogs(settings)
	if err != nil {
		return err
	}

	defer func() {
		_ = closeLogs()
	}()

	level, _ := logger.ParseLogLevel(settings.LogLevel)
	logger.SetLevel(level)

	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "clock-widget")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	location := settings.TimeLocation()
	sched := scheduler.New(nil)
	front := newFrontend(ctx, cancel, settings)
	controller := NewController(sched, front, WithLocation(location))
	front.bind(controller)

	logger.InfoKV(
		ctx,
		"Starting clock widget",
		"version", version.Short(),
		"mode", settings.Mode,
		"location", location.String(),
	)

	group.Go(func() error {
		return sched.Run(ctx)
	})

	if settings.ControlAddress != "" {
		group.Go(func() error {
			return serveControl(ctx, settings.ControlAddress, controller)
		})
	}

	if err := controller.Start(); err != nil {
		cancel()
		_ = group.Wait()

		return fmt.Errorf("start controller: %w", err)
	}

	uiErr := front.run(ctx)

	cancel()

	if err := group.Wait(); err != nil {
		return err
	}

	logger.Info(ctx, "Clock widget stopped")

	return uiErr
}

// loadSettings loads the configuration and applies command-line overrides.
func loadSettings(opts *Options) (*config.Config, error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if opts.Mode != "" {
		settings.Mode = config.Mode(opts.Mode)
	}

	if opts.ControlAddress != "" {
		settings.ControlAddress = opts.ControlAddress
	}

	if opts.LogLevel != "" {
		settings.LogLevel = opts.LogLevel
	}

	if opts.LogFile != "" {
		settings.LogFile = opts.LogFile
	}

	if err := config.Validate(settings); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	return settings, nil
}

// redirectLogs moves the global logger to settings.LogFile when it is set.
// The terminal UI draws on both stdout and stderr, so without a file its logs are dropped.
// The returned function restores stdout and closes the file.
func redirectLogs(settings *config.Config) (func() error, error) {
	if settings.LogFile == "" {
		if settings.Mode == config.ModeTUI {
			logger.Redirect(io.Discard)

			return func() error {
				logger.Redirect(os.Stdout)

				return nil
			}, nil
		}

		return func() error { return nil }, nil
	}

	file, err := os.OpenFile(
		filepath.Clean(settings.LogFile),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		config.DefaultFilePermissions,
	)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger.Redirect(file)

	return func() error {
		logger.Redirect(os.Stdout)

		return file.Close()
	}, nil
}

// serveControl runs the remote-control gRPC server until ctx is canceled.
func serveControl(ctx context.Context, address string, service api.Service) error {
	ctx = logger.WithName(ctx, "control")

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", address, err)
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(api.LoggingInterceptor(ctx)))
	api.RegisterControlServer(grpcServer, api.NewServer(service))

	logger.InfoKV(ctx, "Control server listening", "listen_address", lis.Addr().String())

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down control server")
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "Control server stopped")

	return nil
}
