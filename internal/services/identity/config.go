package identity

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/mcoot/haunt/internal/model"
)

// Config holds configuration for the identity manager
type Config struct {
	// MinNameLength and MaxNameLength bound player names, counted in characters
	MinNameLength int
	MaxNameLength int

	// ProviderLoginTimeout bounds a provider login round trip.
	// Expiry is reported as a failed provider login.
	ProviderLoginTimeout time.Duration
}

// DefaultConfig returns default identity configuration
func DefaultConfig() Config {
	return Config{
		MinNameLength:        5,
		MaxNameLength:        12,
		ProviderLoginTimeout: 30 * time.Second,
	}
}

// Validate checks the configuration is usable
func (c Config) Validate() error {
	if c.MinNameLength < 1 {
		return errors.New("minimum name length must be at least 1")
	}
	if c.MaxNameLength < c.MinNameLength {
		return fmt.Errorf("maximum name length %d is below minimum %d", c.MaxNameLength, c.MinNameLength)
	}
	if c.ProviderLoginTimeout <= 0 {
		return errors.New("provider login timeout must be positive")
	}
	return nil
}

// ValidateName checks name against the configured length bound
func (c Config) ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < c.MinNameLength || n > c.MaxNameLength {
		return fmt.Errorf("%w: got %d characters, want %d to %d",
			model.ErrInvalidNameLength, n, c.MinNameLength, c.MaxNameLength)
	}
	return nil
}
