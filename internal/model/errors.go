package model

import "errors"

// Common errors used across the application
var (
	// Name errors
	ErrInvalidNameLength = errors.New("player name length is out of bounds")
	ErrNameUnavailable   = errors.New("player name is not available")

	// Session errors
	ErrInvalidState        = errors.New("operation not valid in current state")
	ErrProviderLoginFailed = errors.New("provider login failed")

	// Storage errors
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrKeyNotFound        = errors.New("key not found")
)
