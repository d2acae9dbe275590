package provider

import (
	"context"
	"errors"

	"github.com/mcoot/haunt/internal/model"
)

// ErrNotSignedIn is returned when the provider has no signed-in user
var ErrNotSignedIn = errors.New("no user signed in with provider")

// LoginResult is the single-shot outcome of a provider login.
// Exactly one of ProviderID and Err is set.
type LoginResult struct {
	ProviderID string
	Err        error
}

// SocialProvider is a third-party account provider
type SocialProvider interface {
	// Name is a human readable provider name, e.g. "facebook"
	Name() string

	// IDPrefix is prepended to player ids derived for new provider players
	IDPrefix() string

	// FindExistingPlayer looks up the identity already owned by providerID.
	// The bool is false when the provider knows no such player.
	FindExistingPlayer(ctx context.Context, providerID string) (*model.IdentityRecord, bool, error)

	// Login starts an asynchronous login. The returned channel receives exactly
	// one result and is never closed without one.
	Login(ctx context.Context) <-chan LoginResult
}
