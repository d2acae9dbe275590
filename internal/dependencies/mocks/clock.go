package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/haunt/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing.
// Timers created with After only fire when the clock is advanced past them.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	timers      []mockTimer
}

type mockTimer struct {
	deadline time.Time
	ch       chan time.Time
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

// After returns a channel that receives once the clock reaches now+d.
// A non-positive duration fires immediately.
func (c *MockClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.currentTime
		return ch
	}
	c.timers = append(c.timers, mockTimer{deadline: c.currentTime.Add(d), ch: ch})
	return ch
}

// PendingTimers returns the number of timers that have not fired yet
func (c *MockClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Advance moves the clock forward by the given duration, firing due timers
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
	c.fireDue()
}

// Set sets the clock to the given time, firing due timers
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
	c.fireDue()
}

func (c *MockClock) fireDue() {
	remaining := c.timers[:0]
	for _, t := range c.timers {
		if !t.deadline.After(c.currentTime) {
			t.ch <- c.currentTime
			continue
		}
		remaining = append(remaining, t)
	}
	c.timers = remaining
}
