// Package config defines the widget settings and provides helpers to load,
// validate and save them in YAML format.
//
// Config selects the presenter mode, the clock time zone, the log level and
// the optional remote-control gRPC address shared with clockctl.
package config
