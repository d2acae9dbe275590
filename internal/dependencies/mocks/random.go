package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/haunt/internal/dependencies/random"
)

// MockRandom replays queued values. A drained queue yields 0.
// A queued value outside [0, n) for the call that consumes it panics.
type MockRandom struct {
	mu     sync.Mutex
	intn   queue[int]
	int63n queue[int64]
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom with empty queues
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.intn.pop("Intn", n)
}

func (r *MockRandom) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.int63n.pop("Int63n", n)
}

// QueueIntn appends results for Intn
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intn.values = append(r.intn.values, values...)
}

// QueueInt63n appends results for Int63n
func (r *MockRandom) QueueInt63n(values ...int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.int63n.values = append(r.int63n.values, values...)
}

// Pending reports how many queued values have not been consumed
func (r *MockRandom) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.intn.values) + len(r.int63n.values)
}

// Reset drops everything queued
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intn = queue[int]{}
	r.int63n = queue[int64]{}
}

type queue[T int | int64] struct {
	values []T
}

func (q *queue[T]) pop(method string, n T) T {
	if len(q.values) == 0 {
		return 0
	}
	v := q.values[0]
	q.values = q.values[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("mocks: %s(%d) got queued value %d", method, n, v))
	}
	return v
}
