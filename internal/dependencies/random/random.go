package random

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Random draws the uniform integers player ids are built from
type Random interface {
	// Intn returns a value in [0, n)
	Intn(n int) int
	// Int63n returns a value in [0, n)
	Int63n(n int64) int64
}

// Crypto draws from crypto/rand
type Crypto struct{}

var _ Random = Crypto{}

// New returns a crypto/rand backed Random
func New() Crypto {
	return Crypto{}
}

// Intn returns 0 for n <= 0
func (c Crypto) Intn(n int) int {
	return int(c.Int63n(int64(n)))
}

// Int63n returns 0 for n <= 0
func (Crypto) Int63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		// rand.Reader only fails when the OS entropy source is broken
		panic(fmt.Sprintf("random: read entropy: %v", err))
	}
	return v.Int64()
}
