package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Profile namespaces the preference keys so several players can share one server
	Profile string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL applied to every preference key; zero means no expiry
	TTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		Profile:      "default",
		PoolSize:     4,
		MinIdleConns: 1,
	}
}
