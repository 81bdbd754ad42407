// Package gui is the fyne desktop front end of the widget.
//
// View lays out the clock, the alarm entry and the stopwatch controls, and
// implements the controller's presenter contract. Presenter calls arrive on
// the scheduler goroutine and are marshalled onto the fyne thread with
// fyne.Do; button presses are forwarded to the bound Actions off the fyne
// thread so the UI never waits on the scheduler.
package gui
