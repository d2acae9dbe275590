package redis

import "fmt"

// Key prefix for all preference data
const keyPrefix = "haunt"

// prefKey returns the Redis key for a preference within a profile
func prefKey(profile, key string) string {
	return fmt.Sprintf("%s:prefs:%s:%s", keyPrefix, profile, key)
}
