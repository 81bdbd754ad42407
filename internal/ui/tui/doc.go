// Package tui is the terminal front end of the widget, built on bubbletea.
//
// Keys: digits and ':' edit the alarm time, enter sets it, s/x/r start, stop
// and reset the stopwatch, q or ctrl+c quits. An alarm notification blocks
// all other keys until it is dismissed.
package tui
