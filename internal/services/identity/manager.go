package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/haunt/internal/dependencies/clock"
	"github.com/mcoot/haunt/internal/dependencies/random"
	"github.com/mcoot/haunt/internal/model"
	"github.com/mcoot/haunt/internal/services/availability"
	"github.com/mcoot/haunt/internal/services/launcher"
	"github.com/mcoot/haunt/internal/services/provider"
	"github.com/mcoot/haunt/internal/storage"
)

var (
	errNoProvider = errors.New("no social provider configured")
	errNoLauncher = errors.New("no game launcher configured")
)

// Transition describes a state change. Record is set when To is StateLoggedIn.
type Transition struct {
	From   model.State
	To     model.State
	Record *model.IdentityRecord
}

// Observer is notified of every state transition
type Observer interface {
	OnTransition(t Transition)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(t Transition)

// OnTransition calls f(t)
func (f ObserverFunc) OnTransition(t Transition) {
	f(t)
}

// Deps are the collaborators of a Manager. Names defaults to
// availability.AlwaysAvailable; Provider and Launcher may be nil, in which case
// provider login and game start fail.
type Deps struct {
	Store    storage.Store
	Names    availability.Service
	Provider provider.SocialProvider
	Launcher launcher.GameLauncher
	Clock    clock.Clock
	Random   random.Random
	Logger   *slog.Logger
}

// Manager owns the local player identity and its login state machine:
// LoggedOut -> AwaitingName -> LoggedIn, with AwaitingProviderLogin while a
// provider is consulted. A Manager is not safe for concurrent use.
type Manager struct {
	store    storage.Store
	names    availability.Service
	provider provider.SocialProvider
	launcher launcher.GameLauncher
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
	cfg      Config

	observers []Observer

	state     model.State
	record    *model.IdentityRecord
	sessionID string
	startedAt time.Time

	// pending identity while awaiting a name
	pendingID       model.PlayerID
	pendingProvider model.Provider
}

// New creates a Manager in the LoggedOut state
func New(deps Deps, cfg Config) *Manager {
	if deps.Names == nil {
		deps.Names = availability.AlwaysAvailable{}
	}
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}
	if deps.Random == nil {
		deps.Random = random.New()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if cfg.ProviderLoginTimeout <= 0 {
		cfg.ProviderLoginTimeout = DefaultConfig().ProviderLoginTimeout
	}
	return &Manager{
		store:    deps.Store,
		names:    deps.Names,
		provider: deps.Provider,
		launcher: deps.Launcher,
		clock:    deps.Clock,
		random:   deps.Random,
		logger:   deps.Logger,
		cfg:      cfg,
		state:    model.StateLoggedOut,
	}
}

// AddObserver registers o for state transitions
func (m *Manager) AddObserver(o Observer) {
	m.observers = append(m.observers, o)
}

// State returns the current state
func (m *Manager) State() model.State {
	return m.state
}

// CurrentRecord returns a copy of the active record, or false when not logged in
func (m *Manager) CurrentRecord() (*model.IdentityRecord, bool) {
	if m.state != model.StateLoggedIn || m.record == nil {
		return nil, false
	}
	rec := *m.record
	return &rec, true
}

// Session returns the active session, or false when not logged in
func (m *Manager) Session() (model.Session, bool) {
	rec, ok := m.CurrentRecord()
	if !ok {
		return model.Session{}, false
	}
	return model.Session{ID: m.sessionID, Record: *rec, StartedAt: m.startedAt}, true
}

// PendingID returns the id waiting to be paired with a name
func (m *Manager) PendingID() (model.PlayerID, bool) {
	if m.state != model.StateAwaitingName {
		return "", false
	}
	return m.pendingID, true
}

// RestoreSession loads a previously persisted record and logs it in.
// Storage failures count as no saved session so startup never fails.
func (m *Manager) RestoreSession(ctx context.Context) (*model.IdentityRecord, bool) {
	if m.state == model.StateLoggedIn {
		return m.CurrentRecord()
	}

	rec, err := m.load(ctx)
	if err != nil {
		m.logger.WarnContext(ctx, "could not restore session", slog.String("error", err.Error()))
		return nil, false
	}
	if rec == nil {
		return nil, false
	}

	m.logIn(ctx, *rec)
	return m.CurrentRecord()
}

// BeginGuestLogin generates a fresh guest id and waits for a name
func (m *Manager) BeginGuestLogin(ctx context.Context) (model.PlayerID, error) {
	if err := m.checkCanBegin(); err != nil {
		return "", err
	}

	m.pendingID = GenerateGuestID(m.random)
	m.pendingProvider = model.ProviderGuest
	m.setState(ctx, model.StateAwaitingName)
	return m.pendingID, nil
}

// BeginProviderLogin resolves providerID against the provider. A player the
// provider already knows is logged in directly and returned; otherwise the
// result is nil and the manager waits for a name, with a provider-derived id.
func (m *Manager) BeginProviderLogin(ctx context.Context, providerID string) (*model.IdentityRecord, error) {
	if err := m.checkCanBegin(); err != nil {
		return nil, err
	}
	if m.provider == nil {
		return nil, fmt.Errorf("%w: %w", model.ErrProviderLoginFailed, errNoProvider)
	}

	m.clearPending()
	m.setState(ctx, model.StateAwaitingProviderLogin)

	lookupCtx, cancel := context.WithTimeout(ctx, m.cfg.ProviderLoginTimeout)
	defer cancel()
	return m.resolveProviderPlayer(lookupCtx, providerID)
}

// LoginWithProvider runs the provider's asynchronous login, bounded by the
// configured timeout, then continues as BeginProviderLogin. Failure,
// cancellation and expiry all return ErrProviderLoginFailed and leave the
// manager LoggedOut.
func (m *Manager) LoginWithProvider(ctx context.Context) (*model.IdentityRecord, error) {
	if err := m.checkCanBegin(); err != nil {
		return nil, err
	}
	if m.provider == nil {
		return nil, fmt.Errorf("%w: %w", model.ErrProviderLoginFailed, errNoProvider)
	}

	m.clearPending()
	m.setState(ctx, model.StateAwaitingProviderLogin)

	loginCtx, cancel := context.WithTimeout(ctx, m.cfg.ProviderLoginTimeout)
	defer cancel()

	var res provider.LoginResult
	select {
	case res = <-m.provider.Login(loginCtx):
	case <-loginCtx.Done():
		res = provider.LoginResult{Err: loginCtx.Err()}
	}
	if res.Err == nil && res.ProviderID == "" {
		res.Err = errors.New("provider returned an empty user id")
	}
	if res.Err != nil {
		return nil, m.failProviderLogin(ctx, res.Err)
	}

	m.logger.DebugContext(ctx, "provider login succeeded",
		slog.String("provider", m.provider.Name()),
		slog.String("provider_id", res.ProviderID),
	)
	return m.resolveProviderPlayer(loginCtx, res.ProviderID)
}

// ConfirmName pairs name with the pending id, persists the record and logs in
func (m *Manager) ConfirmName(ctx context.Context, name string) (*model.IdentityRecord, error) {
	if m.state != model.StateAwaitingName {
		return nil, fmt.Errorf("%w: cannot confirm a name while %s", model.ErrInvalidState, m.state)
	}

	if err := m.cfg.ValidateName(name); err != nil {
		return nil, err
	}

	available, err := m.names.IsAvailable(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check name availability: %w", err)
	}
	if !available {
		return nil, fmt.Errorf("%w: %q", model.ErrNameUnavailable, name)
	}

	rec := model.IdentityRecord{
		PlayerName: name,
		PlayerID:   m.pendingID,
		Provider:   m.pendingProvider,
	}
	if err := m.persist(ctx, rec); err != nil {
		return nil, err
	}

	m.logIn(ctx, rec)
	return &rec, nil
}

// CancelPendingLogin abandons a login that is waiting for a name
func (m *Manager) CancelPendingLogin(ctx context.Context) {
	if m.state != model.StateAwaitingName {
		return
	}
	m.clearPending()
	m.setState(ctx, model.StateLoggedOut)
}

// Logout clears the persisted record. It is a no-op unless logged in.
func (m *Manager) Logout(ctx context.Context) error {
	if m.state != model.StateLoggedIn {
		return nil
	}

	if err := m.clear(ctx); err != nil {
		return err
	}

	m.logger.InfoContext(ctx, "player logged out", slog.String("player_id", string(m.record.PlayerID)))
	m.record = nil
	m.sessionID = ""
	m.startedAt = time.Time{}
	m.setState(ctx, model.StateLoggedOut)
	return nil
}

// StartGame hands the logged in player to the game launcher
func (m *Manager) StartGame(ctx context.Context, scene string) error {
	rec, ok := m.CurrentRecord()
	if !ok {
		return fmt.Errorf("%w: cannot start a game while %s", model.ErrInvalidState, m.state)
	}
	if m.launcher == nil {
		return errNoLauncher
	}
	return m.launcher.ConnectAndLoad(ctx, launcher.LaunchParams{
		SessionID:  m.sessionID,
		PlayerName: rec.PlayerName,
		PlayerID:   rec.PlayerID,
		Scene:      scene,
	})
}

func (m *Manager) checkCanBegin() error {
	switch m.state {
	case model.StateLoggedIn, model.StateAwaitingProviderLogin:
		return fmt.Errorf("%w: cannot begin a login while %s", model.ErrInvalidState, m.state)
	}
	return nil
}

func (m *Manager) resolveProviderPlayer(ctx context.Context, providerID string) (*model.IdentityRecord, error) {
	if providerID == "" {
		return nil, m.failProviderLogin(ctx, errors.New("provider id is required"))
	}

	existing, found, err := m.provider.FindExistingPlayer(ctx, providerID)
	if err != nil {
		return nil, m.failProviderLogin(ctx, fmt.Errorf("find existing player: %w", err))
	}

	if found {
		if existing == nil || !existing.Valid() {
			return nil, m.failProviderLogin(ctx, errors.New("provider returned an incomplete record"))
		}
		// A guest-shaped id would be restored as a guest
		if model.IsGuestID(existing.PlayerID) {
			return nil, m.failProviderLogin(ctx, fmt.Errorf("provider player id %s has the guest id format", existing.PlayerID))
		}
		rec := *existing
		rec.Provider = model.ProviderSocial
		if err := m.persist(ctx, rec); err != nil {
			m.setState(ctx, model.StateLoggedOut)
			return nil, err
		}
		m.logIn(ctx, rec)
		return &rec, nil
	}

	id := DeriveProviderID(m.random, m.provider.IDPrefix())
	if model.IsGuestID(id) {
		return nil, m.failProviderLogin(ctx, fmt.Errorf("provider id prefix %q yields guest format ids", m.provider.IDPrefix()))
	}
	m.pendingID = id
	m.pendingProvider = model.ProviderSocial
	m.setState(ctx, model.StateAwaitingName)
	return nil, nil
}

func (m *Manager) failProviderLogin(ctx context.Context, cause error) error {
	m.logger.WarnContext(ctx, "provider login failed", slog.String("error", cause.Error()))
	m.clearPending()
	m.setState(ctx, model.StateLoggedOut)
	return fmt.Errorf("%w: %w", model.ErrProviderLoginFailed, cause)
}

func (m *Manager) logIn(ctx context.Context, rec model.IdentityRecord) {
	m.clearPending()
	m.record = &rec
	m.sessionID = uuid.NewString()
	m.startedAt = m.clock.Now()
	m.logger.InfoContext(ctx, "player logged in",
		slog.String("session_id", m.sessionID),
		slog.String("player_name", rec.PlayerName),
		slog.String("player_id", string(rec.PlayerID)),
		slog.String("provider", rec.Provider.String()),
	)
	m.setState(ctx, model.StateLoggedIn)
}

func (m *Manager) clearPending() {
	m.pendingID = ""
	m.pendingProvider = model.ProviderGuest
}

func (m *Manager) setState(ctx context.Context, to model.State) {
	from := m.state
	if from == to {
		return
	}
	m.state = to
	m.logger.DebugContext(ctx, "identity state changed",
		slog.String("from", from.String()),
		slog.String("to", to.String()),
	)

	t := Transition{From: from, To: to}
	if rec, ok := m.CurrentRecord(); ok {
		t.Record = rec
	}
	for _, o := range m.observers {
		o.OnTransition(t)
	}
}

// Persistence

func storageUnavailable(err error) error {
	return fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
}

// load returns nil when no complete record is stored. A lone key left by an
// interrupted write is removed.
func (m *Manager) load(ctx context.Context) (*model.IdentityRecord, error) {
	name, nameErr := m.store.Get(ctx, storage.KeyPlayerName)
	id, idErr := m.store.Get(ctx, storage.KeyPlayerID)

	for _, err := range []error{nameErr, idErr} {
		if err != nil && !errors.Is(err, model.ErrKeyNotFound) {
			return nil, storageUnavailable(err)
		}
	}

	switch {
	case nameErr == nil && idErr == nil && name != "" && id != "":
		return &model.IdentityRecord{
			PlayerName: name,
			PlayerID:   model.PlayerID(id),
			Provider:   model.ProviderForID(model.PlayerID(id)),
		}, nil
	case nameErr != nil && idErr != nil:
		return nil, nil
	default:
		m.logger.WarnContext(ctx, "discarding incomplete saved identity")
		if err := m.clear(ctx); err != nil {
			m.logger.WarnContext(ctx, "could not discard incomplete identity", slog.String("error", err.Error()))
		}
		return nil, nil
	}
}

// persist writes both keys or neither
func (m *Manager) persist(ctx context.Context, rec model.IdentityRecord) error {
	if bs, ok := m.store.(storage.BatchStore); ok {
		err := bs.SetMany(ctx, map[string]string{
			storage.KeyPlayerName: rec.PlayerName,
			storage.KeyPlayerID:   string(rec.PlayerID),
		})
		if err != nil {
			return storageUnavailable(err)
		}
		return nil
	}

	if err := m.store.Set(ctx, storage.KeyPlayerID, string(rec.PlayerID)); err != nil {
		return storageUnavailable(err)
	}
	if err := m.store.Set(ctx, storage.KeyPlayerName, rec.PlayerName); err != nil {
		if delErr := m.store.Delete(ctx, storage.KeyPlayerID); delErr != nil {
			m.logger.WarnContext(ctx, "could not roll back partial identity write", slog.String("error", delErr.Error()))
		}
		return storageUnavailable(err)
	}
	return nil
}

func (m *Manager) clear(ctx context.Context) error {
	if bs, ok := m.store.(storage.BatchStore); ok {
		if err := bs.DeleteMany(ctx, storage.KeyPlayerName, storage.KeyPlayerID); err != nil {
			return storageUnavailable(err)
		}
		return nil
	}

	err := errors.Join(
		m.store.Delete(ctx, storage.KeyPlayerName),
		m.store.Delete(ctx, storage.KeyPlayerID),
	)
	if err != nil {
		return storageUnavailable(err)
	}
	return nil
}
