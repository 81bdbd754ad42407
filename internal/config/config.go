package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/clock-widget/internal/logger"
)

// Mode selects how the widget is presented.
type Mode string

const (
	// ModeGUI opens a desktop window.
	ModeGUI Mode = "gui"
	// ModeTUI draws the widget in the terminal.
	ModeTUI Mode = "tui"
	// ModeHeadless only logs clock, timer and alarm events.
	ModeHeadless Mode = "headless"
)

// Config holds the settings shared by clock-widget and clockctl.
type Config struct {
	// Mode is the presenter the widget runs with.
	Mode Mode `yaml:"mode"`
	// Location is the IANA time zone the clock is shown in ("Local" for the system zone).
	Location string `yaml:"location"`
	// LogLevel is the minimum zap level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
	// LogFile receives log output when set. In tui mode logs are dropped without it.
	LogFile string `yaml:"log_file"`
	// ControlAddress is the gRPC remote-control address. Empty disables the server.
	ControlAddress string `yaml:"control_addr"`
	// Timeout is the per-RPC timeout used by clockctl.
	Timeout time.Duration `yaml:"timeout"`
	// Window holds desktop window settings.
	Window Window `yaml:"window"`
}

// Window holds desktop window settings.
type Window struct {
	// Title is the window title.
	Title string `yaml:"title"`
	// Width is the initial window width.
	Width float32 `yaml:"width"`
	// Height is the initial window height.
	Height float32 `yaml:"height"`
}

const (
	// DefaultConfigFilename is the default settings filename.
	DefaultConfigFilename = "clock-widget-settings.yaml"

	// DefaultLocation renders the clock in the system time zone.
	DefaultLocation = "Local"

	// DefaultLogLevel is used when log_level is empty.
	DefaultLogLevel = "info"

	// DefaultTimeout is the default duration for remote-control calls.
	DefaultTimeout = 5 * time.Second

	// DefaultWindowTitle is the default window title.
	DefaultWindowTitle = "Ultimate Clock App"

	// DefaultWindowWidth is the default window width.
	DefaultWindowWidth = 800

	// DefaultWindowHeight is the default window height.
	DefaultWindowHeight = 600

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownMode is returned for modes other than gui, tui and headless.
	errUnknownMode = errors.New("unknown mode")
	// errUnknownLogLevel is returned for unparsable log levels.
	errUnknownLogLevel = errors.New("unknown log level")
	// errControlAddressRequired is returned when a client needs an address and none is set.
	errControlAddressRequired = errors.New("control address must be provided")
)

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := new(Config)

	// Defaults always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from path and validates it.
// When path is empty or names the default file, a missing file yields Default().
func Load(path string) (*Config, error) {
	optional := path == "" || path == DefaultConfigFilename
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks settings and fills defaults for empty fields.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	switch settings.Mode {
	case "":
		settings.Mode = ModeGUI
	case ModeGUI, ModeTUI, ModeHeadless:
	default:
		return fmt.Errorf("%q: %w", settings.Mode, errUnknownMode)
	}

	if settings.Location == "" {
		settings.Location = DefaultLocation
	}

	if _, err := time.LoadLocation(settings.Location); err != nil {
		return fmt.Errorf("invalid location: %w", err)
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("%q: %w", settings.LogLevel, errUnknownLogLevel)
	}

	if settings.ControlAddress != "" {
		if _, err := net.ResolveTCPAddr("tcp", settings.ControlAddress); err != nil {
			return fmt.Errorf("invalid control address: %w", err)
		}
	}

	// Set default timeout if not specified.
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.Window.Title == "" {
		settings.Window.Title = DefaultWindowTitle
	}

	if settings.Window.Width <= 0 {
		settings.Window.Width = DefaultWindowWidth
	}

	if settings.Window.Height <= 0 {
		settings.Window.Height = DefaultWindowHeight
	}

	return nil
}

// TimeLocation resolves Location. Validate has already checked it.
func (c *Config) TimeLocation() *time.Location {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return time.Local
	}

	return loc
}

// RequireControlAddress returns the control address or an error when it is unset.
func (c *Config) RequireControlAddress() (string, error) {
	if c.ControlAddress == "" {
		return "", errControlAddressRequired
	}

	return c.ControlAddress, nil
}
