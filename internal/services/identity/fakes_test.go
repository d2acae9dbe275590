package identity

import (
	"context"
	"errors"

	"github.com/mcoot/haunt/internal/model"
	"github.com/mcoot/haunt/internal/services/provider"
)

var errDiskFull = errors.New("disk full")

// fakeProvider is a scriptable SocialProvider
type fakeProvider struct {
	prefix   string
	accounts map[string]model.IdentityRecord
	findErr  error
	// blockLookup makes FindExistingPlayer wait for its context to end
	blockLookup bool

	// loginResult is delivered by Login; nil means Login never resolves
	loginResult *provider.LoginResult
	lookups     []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		prefix:   "FB_",
		accounts: make(map[string]model.IdentityRecord),
	}
}

func (p *fakeProvider) Name() string     { return "fake" }
func (p *fakeProvider) IDPrefix() string { return p.prefix }

func (p *fakeProvider) FindExistingPlayer(ctx context.Context, providerID string) (*model.IdentityRecord, bool, error) {
	p.lookups = append(p.lookups, providerID)
	if p.blockLookup {
		<-ctx.Done()
		return nil, false, ctx.Err()
	}
	if p.findErr != nil {
		return nil, false, p.findErr
	}
	rec, ok := p.accounts[providerID]
	if !ok {
		return nil, false, nil
	}
	return &rec, true, nil
}

func (p *fakeProvider) Login(ctx context.Context) <-chan provider.LoginResult {
	ch := make(chan provider.LoginResult, 1)
	if p.loginResult != nil {
		ch <- *p.loginResult
	}
	return ch
}

// fakeNames reports names in taken as unavailable
type fakeNames struct {
	taken map[string]bool
	err   error
	calls int
}

func (n *fakeNames) IsAvailable(ctx context.Context, name string) (bool, error) {
	n.calls++
	if n.err != nil {
		return false, n.err
	}
	return !n.taken[name], nil
}

// plainStore is a Store without batch support whose operations can be made to fail
type plainStore struct {
	values map[string]string
	// failures keyed by "get:<key>", "set:<key>" or "delete:<key>"
	failures map[string]error
}

func newPlainStore() *plainStore {
	return &plainStore{
		values:   make(map[string]string),
		failures: make(map[string]error),
	}
}

func (s *plainStore) Get(ctx context.Context, key string) (string, error) {
	if err := s.failures["get:"+key]; err != nil {
		return "", err
	}
	v, ok := s.values[key]
	if !ok {
		return "", model.ErrKeyNotFound
	}
	return v, nil
}

func (s *plainStore) Set(ctx context.Context, key, value string) error {
	if err := s.failures["set:"+key]; err != nil {
		return err
	}
	s.values[key] = value
	return nil
}

func (s *plainStore) Delete(ctx context.Context, key string) error {
	if err := s.failures["delete:"+key]; err != nil {
		return err
	}
	delete(s.values, key)
	return nil
}
