// Package common holds helpers shared by several services.
//
// It provides a lightweight gRPC client for the widget's remote-control API
// with per-call timeouts, and detects the current system actor
// (hostname/username) so the widget can log who issued a command.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
