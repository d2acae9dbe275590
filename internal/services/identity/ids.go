package identity

import (
	"strconv"

	"github.com/mcoot/haunt/internal/dependencies/random"
	"github.com/mcoot/haunt/internal/model"
)

const (
	// Guest ids are uniform in [GuestIDMin, GuestIDMax]
	GuestIDMin int64 = 1_000_000_000
	GuestIDMax int64 = 9_999_999_999

	// Provider-derived ids end in a 6-digit number
	providerSuffixMin = 100_000
	providerSuffixMax = 999_999
)

// GenerateGuestID returns a fresh 10-digit guest player id
func GenerateGuestID(r random.Random) model.PlayerID {
	n := GuestIDMin + r.Int63n(GuestIDMax-GuestIDMin+1)
	return model.PlayerID(strconv.FormatInt(n, 10))
}

// DeriveProviderID returns prefix followed by a random 6-digit number
func DeriveProviderID(r random.Random, prefix string) model.PlayerID {
	n := providerSuffixMin + r.Intn(providerSuffixMax-providerSuffixMin+1)
	return model.PlayerID(prefix + strconv.Itoa(n))
}
