package clock

import "time"

// Snapshot is a read-only view of the controller state at a point in time.
type Snapshot struct {
	// Timestamp is when the snapshot was taken.
	Timestamp time.Time
	// Clock is the last published HH:MM:SS text.
	Clock string
	// AlarmTime is the armed HH:MM, empty when disarmed.
	AlarmTime string
	// AlarmArmed reports whether AlarmTime is set.
	AlarmArmed bool
	// TimerRunning reports whether the stopwatch is counting.
	TimerRunning bool
	// TimerElapsed is the stopwatch count in seconds.
	TimerElapsed int
}

// TimerText renders the stopwatch part of the snapshot.
func (s Snapshot) TimerText() string {
	return FormatTimer(s.TimerElapsed)
}
