// Package version holds build metadata injected with -ldflags -X and the
// cobra `version` subcommand shared by clock-widget and clockctl.
package version
