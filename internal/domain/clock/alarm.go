package clock

import (
	"errors"
	"fmt"
)

// alarmTimeLength is len("HH:MM").
const alarmTimeLength = 5

// ErrInvalidAlarmFormat is returned when an alarm time is not a strict 24-hour HH:MM.
var ErrInvalidAlarmFormat = errors.New("alarm time must be HH:MM (00:00-23:59)")

// ParseAlarmTime validates input as a strict HH:MM and returns it unchanged.
// Single-digit hours ("9:30") and surrounding whitespace are rejected so
// an accepted value always compares equal to FormatMinute output.
func ParseAlarmTime(input string) (string, error) {
	if len(input) != alarmTimeLength || input[2] != ':' {
		return "", fmt.Errorf("%q: %w", input, ErrInvalidAlarmFormat)
	}

	hours, ok := twoDigits(input[0], input[1])
	if !ok || hours > 23 {
		return "", fmt.Errorf("%q: %w", input, ErrInvalidAlarmFormat)
	}

	minutes, ok := twoDigits(input[3], input[4])
	if !ok || minutes > 59 {
		return "", fmt.Errorf("%q: %w", input, ErrInvalidAlarmFormat)
	}

	return input, nil
}

// twoDigits decodes two ASCII digits.
func twoDigits(hi, lo byte) (int, bool) {
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return 0, false
	}

	return int(hi-'0')*10 + int(lo-'0'), true
}

// Alarm is a single one-shot alarm keyed to a minute of the day.
// The zero value is disarmed.
type Alarm struct {
	// at is the armed HH:MM, empty when disarmed.
	at string
}

// Set arms the alarm for input, replacing any armed time.
// On error the previous state is kept.
func (a *Alarm) Set(input string) error {
	at, err := ParseAlarmTime(input)
	if err != nil {
		return err
	}

	a.at = at

	return nil
}

// Check reports whether the alarm fires at currentHHMM.
// A firing alarm disarms itself, so later ticks in the same minute do not fire again.
func (a *Alarm) Check(currentHHMM string) bool {
	if a.at == "" || a.at != currentHHMM {
		return false
	}

	a.at = ""

	return true
}

// Time returns the armed HH:MM and whether the alarm is armed.
func (a *Alarm) Time() (string, bool) {
	return a.at, a.at != ""
}

// Armed reports whether an alarm time is set.
func (a *Alarm) Armed() bool {
	return a.at != ""
}
