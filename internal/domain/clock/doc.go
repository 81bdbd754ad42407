// Package clock contains the widget's domain state: the one-shot Alarm, the
// Stopwatch and the Snapshot a presenter or remote client can read.
//
// Types here are plain values with no locking; the scheduler loop is their
// only writer.
package clock
