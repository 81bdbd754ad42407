package clock

import "time"

const (
	// ClockLayout renders the live wall clock (24-hour, zero-padded).
	ClockLayout = "15:04:05"
	// MinuteLayout renders the minute used for alarm matching.
	MinuteLayout = "15:04"
)

// FormatClock renders t as HH:MM:SS.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// FormatMinute renders t as HH:MM.
func FormatMinute(t time.Time) string {
	return t.Format(MinuteLayout)
}
