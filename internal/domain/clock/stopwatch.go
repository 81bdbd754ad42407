package clock

import "fmt"

// Stopwatch counts whole seconds while running.
// It is one-shot per start: Start always counts from zero, there is no resume.
type Stopwatch struct {
	// running is true between Start and Stop/Reset.
	running bool
	// elapsed is the number of ticks accepted since the last Start or Reset.
	elapsed int
}

// Start zeroes the count and starts running.
// It returns false and changes nothing if the stopwatch is already running.
func (s *Stopwatch) Start() bool {
	if s.running {
		return false
	}

	s.running = true
	s.elapsed = 0

	return true
}

// Tick adds one second while running. Ticks delivered while stopped are ignored.
func (s *Stopwatch) Tick() bool {
	if !s.running {
		return false
	}

	s.elapsed++

	return true
}

// Stop halts counting and keeps the elapsed value.
func (s *Stopwatch) Stop() {
	s.running = false
}

// Reset halts counting and zeroes the elapsed value.
func (s *Stopwatch) Reset() {
	s.running = false
	s.elapsed = 0
}

// Running reports whether ticks are being counted.
func (s *Stopwatch) Running() bool {
	return s.running
}

// Elapsed returns the counted seconds.
func (s *Stopwatch) Elapsed() int {
	return s.elapsed
}

// Text renders the stopwatch for display.
func (s *Stopwatch) Text() string {
	return FormatTimer(s.elapsed)
}

// FormatTimer renders an elapsed second count for display.
func FormatTimer(elapsed int) string {
	return fmt.Sprintf("Timer: %d seconds", elapsed)
}
