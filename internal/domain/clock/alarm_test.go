package clock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseAlarmTime covers the strict HH:MM grammar and range checks.
func TestParseAlarmTime(t *testing.T) {
	t.Parallel()

	valid := []string{"00:00", "07:00", "12:30", "23:59", "09:05"}
	for _, in := range valid {
		got, err := ParseAlarmTime(in)
		require.NoError(t, err, in)
		require.Equal(t, in, got)
	}

	invalid := []string{
		"", "24:00", "9:30", "23:60", "7:00", "07:0", "07-00", "0700",
		" 07:00", "07:00 ", "aa:bb", "-1:00", "07:5x", "123:00", "07:000",
	}
	for _, in := range invalid {
		_, err := ParseAlarmTime(in)
		require.ErrorIs(t, err, ErrInvalidAlarmFormat, in)
	}
}

// TestAlarm_SetKeepsPreviousOnError ensures a rejected input leaves the armed time alone.
func TestAlarm_SetKeepsPreviousOnError(t *testing.T) {
	t.Parallel()

	var a Alarm

	require.False(t, a.Armed())
	require.NoError(t, a.Set("06:45"))

	err := a.Set("25:00")
	require.ErrorIs(t, err, ErrInvalidAlarmFormat)

	at, armed := a.Time()
	require.True(t, armed)
	require.Equal(t, "06:45", at)
}

// TestAlarm_SetReplaces verifies that arming again silently replaces the old time.
func TestAlarm_SetReplaces(t *testing.T) {
	t.Parallel()

	var a Alarm

	require.NoError(t, a.Set("06:45"))
	require.NoError(t, a.Set("07:00"))

	require.False(t, a.Check("06:45"))
	require.True(t, a.Check("07:00"))
}

// TestAlarm_CheckFiresOnce asserts the one-shot contract within a matching minute.
func TestAlarm_CheckFiresOnce(t *testing.T) {
	t.Parallel()

	var a Alarm

	require.NoError(t, a.Set("07:00"))

	require.False(t, a.Check("06:59"))
	require.True(t, a.Armed())

	require.True(t, a.Check("07:00"))
	require.False(t, a.Armed())

	// Second tick in the same minute.
	require.False(t, a.Check("07:00"))
}

// TestAlarm_CheckDisarmed verifies a zero Alarm never fires.
func TestAlarm_CheckDisarmed(t *testing.T) {
	t.Parallel()

	var a Alarm

	require.False(t, a.Check(""))
	require.False(t, a.Check("00:00"))
}
