// Package widget wires the clock widget together.
//
// Controller owns the alarm and stopwatch state and reacts to scheduler
// events; a Presenter (GUI, terminal or log output) only renders what the
// controller publishes and forwards user input back to it. Run loads the
// configuration, picks the presenter for the configured mode and optionally
// serves the remote-control gRPC API.
package widget
