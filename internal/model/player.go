package model

import "time"

// PlayerID identifies a player. Guest ids are 10 decimal digits, provider ids
// carry the provider prefix (e.g. "FB_123456").
type PlayerID string

// GuestIDLength is the number of digits in a guest player id
const GuestIDLength = 10

// Provider says how an identity was obtained
type Provider int

const (
	ProviderGuest Provider = iota
	ProviderSocial
)

func (p Provider) String() string {
	switch p {
	case ProviderGuest:
		return "guest"
	case ProviderSocial:
		return "social"
	default:
		return "unknown"
	}
}

// ProviderForID derives the provider from the shape of a persisted id.
// Only the name and id are stored, so this is how a restored record gets its provider.
func ProviderForID(id PlayerID) Provider {
	if IsGuestID(id) {
		return ProviderGuest
	}
	return ProviderSocial
}

// IsGuestID reports whether id is a 10-digit numeric token without a leading zero
func IsGuestID(id PlayerID) bool {
	if len(id) != GuestIDLength || id[0] == '0' {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// IdentityRecord is the player's local identity. A record is either fully
// populated or absent; there is no partial record.
type IdentityRecord struct {
	PlayerName string   `json:"player_name"`
	PlayerID   PlayerID `json:"player_id"`
	Provider   Provider `json:"provider"`
}

// Valid reports whether both fields are set
func (r IdentityRecord) Valid() bool {
	return r.PlayerName != "" && r.PlayerID != ""
}

// Session is the lifetime of a logged in identity within this process
type Session struct {
	// ID is a random uuid, fresh for every login or restore
	ID        string
	Record    IdentityRecord
	StartedAt time.Time
}
