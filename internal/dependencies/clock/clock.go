package clock

import "time"

// Clock is the time source for session stamps and provider login delays
type Clock interface {
	Now() time.Time
	// After sends the current time once d has elapsed
	After(d time.Duration) <-chan time.Time
}

// System reads the wall clock
type System struct{}

var _ Clock = System{}

// New returns the system clock
func New() System {
	return System{}
}

func (System) Now() time.Time { return time.Now() }

func (System) After(d time.Duration) <-chan time.Time { return time.After(d) }
