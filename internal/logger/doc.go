// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder and a redirectable output,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing utilities,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// The scheduler, controller and presenters take a context and extract the
// logger from it, so every line carries the name of the component that wrote it.
package logger
