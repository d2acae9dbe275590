package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt63nStaysInRange(t *testing.T) {
	r := New()
	for i := 0; i < 1000; i++ {
		v := r.Int63n(9_000_000_000)
		assert.GreaterOrEqual(t, v, int64(0))
		assert.Less(t, v, int64(9_000_000_000))
	}
}

func TestIntnStaysInRange(t *testing.T) {
	r := New()
	for i := 0; i < 1000; i++ {
		v := r.Intn(10)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 10)
	}
}

func TestNonPositiveBoundReturnsZero(t *testing.T) {
	r := New()
	assert.Equal(t, int64(0), r.Int63n(0))
	assert.Equal(t, 0, r.Intn(-5))
}
