package state

// RoundTimer counts down the seconds of a timed round
type RoundTimer struct {
	duration  float64
	remaining float64
}

// NewRoundTimer creates a full timer. Negative durations are treated as zero.
func NewRoundTimer(duration float64) RoundTimer {
	duration = max(duration, 0)
	return RoundTimer{duration: duration, remaining: duration}
}

// Tick advances the timer by dt seconds and reports whether it reached
// zero on this tick
func (t *RoundTimer) Tick(dt float64) bool {
	if t.remaining <= 0 {
		return false
	}
	t.remaining = min(max(t.remaining-dt, 0), t.duration)
	return t.remaining == 0
}

// Reset refills the timer
func (t *RoundTimer) Reset() {
	t.remaining = t.duration
}

// Remaining returns the seconds left
func (t *RoundTimer) Remaining() float64 {
	return t.remaining
}

// Duration returns the full length of the timer
func (t *RoundTimer) Duration() float64 {
	return t.duration
}

// Expired reports whether the timer has reached zero
func (t *RoundTimer) Expired() bool {
	return t.remaining <= 0
}
