package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mcoot/haunt/internal/dependencies/clock"
	"github.com/mcoot/haunt/internal/model"
)

// SimulatedConfig configures a Simulated provider
type SimulatedConfig struct {
	Name     string
	IDPrefix string

	// UserID is the provider user id returned by Login; empty means nobody is signed in
	UserID string

	// LoginDelay simulates the network round trip of Login
	LoginDelay time.Duration

	// Accounts is the provider's directory of players that already own an identity
	Accounts map[string]model.IdentityRecord
}

// DefaultSimulatedConfig returns a facebook-like provider with an empty directory
func DefaultSimulatedConfig() SimulatedConfig {
	return SimulatedConfig{
		Name:     "facebook",
		IDPrefix: "FB_",
	}
}

// Simulated is an in-process SocialProvider standing in for a real SDK
type Simulated struct {
	cfg   SimulatedConfig
	clock clock.Clock
}

// Ensure Simulated implements SocialProvider
var _ SocialProvider = (*Simulated)(nil)

// NewSimulated creates a Simulated provider
func NewSimulated(cfg SimulatedConfig, clk clock.Clock) *Simulated {
	defaults := DefaultSimulatedConfig()
	if cfg.Name == "" {
		cfg.Name = defaults.Name
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = defaults.IDPrefix
	}
	if cfg.Accounts == nil {
		cfg.Accounts = make(map[string]model.IdentityRecord)
	}
	return &Simulated{cfg: cfg, clock: clk}
}

func (p *Simulated) Name() string {
	return p.cfg.Name
}

func (p *Simulated) IDPrefix() string {
	return p.cfg.IDPrefix
}

// FindExistingPlayer looks providerID up in the configured directory
func (p *Simulated) FindExistingPlayer(ctx context.Context, providerID string) (*model.IdentityRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	rec, ok := p.cfg.Accounts[providerID]
	if !ok {
		return nil, false, nil
	}
	rec.Provider = model.ProviderSocial
	return &rec, true, nil
}

// Login resolves after LoginDelay with the configured user, or with the
// context error if ctx ends first
func (p *Simulated) Login(ctx context.Context) <-chan LoginResult {
	result := make(chan LoginResult, 1)
	go func() {
		select {
		case <-ctx.Done():
			result <- LoginResult{Err: ctx.Err()}
			return
		case <-p.clock.After(p.cfg.LoginDelay):
		}

		if p.cfg.UserID == "" {
			result <- LoginResult{Err: ErrNotSignedIn}
			return
		}
		result <- LoginResult{ProviderID: p.cfg.UserID}
	}()
	return result
}

// CheckIDPrefix rejects a prefix whose derived ids would read back as guest
// ids. Derived ids are the prefix followed by six digits.
func CheckIDPrefix(prefix string) error {
	if model.IsGuestID(model.PlayerID(prefix + "100000")) {
		return fmt.Errorf("invalid provider id prefix %q: derived ids would have the guest id format", prefix)
	}
	return nil
}

// ParseAccounts turns "providerID" -> "name/playerID" pairs into directory records
func ParseAccounts(raw map[string]string) (map[string]model.IdentityRecord, error) {
	accounts := make(map[string]model.IdentityRecord, len(raw))
	for providerID, entry := range raw {
		name, id, ok := strings.Cut(entry, "/")
		name = strings.TrimSpace(name)
		id = strings.TrimSpace(id)
		if !ok || name == "" || id == "" {
			return nil, fmt.Errorf("invalid provider account %q: want name/playerID", providerID)
		}
		if model.IsGuestID(model.PlayerID(id)) {
			return nil, fmt.Errorf("invalid provider account %q: player id %s has the guest id format", providerID, id)
		}
		accounts[strings.TrimSpace(providerID)] = model.IdentityRecord{
			PlayerName: name,
			PlayerID:   model.PlayerID(id),
			Provider:   model.ProviderSocial,
		}
	}
	return accounts, nil
}
