package disclosure

import "time"

// DefaultRevealLatency is the base delay between reveal steps.
const DefaultRevealLatency = 50 * time.Millisecond

// Timing holds the delays derived from a single reveal latency.
type Timing struct {
	// Unlock is the delay from visible to unlocked.
	Unlock time.Duration
	// Scroll is the delay from visible until the view scrolls to the stage.
	Scroll time.Duration
	// Feedback is how long quiz feedback is held before the final stage
	// appears.
	Feedback time.Duration
}

// NewTiming derives all delays from latency.
func NewTiming(latency time.Duration) Timing {
	if latency <= 0 {
		latency = DefaultRevealLatency
	}
	return Timing{
		Unlock:   latency,
		Scroll:   2 * latency,
		Feedback: 12 * latency,
	}
}
