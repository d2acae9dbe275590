package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mcoot/haunt/internal/config"
	"github.com/mcoot/haunt/internal/dependencies/clock"
	"github.com/mcoot/haunt/internal/dependencies/random"
	"github.com/mcoot/haunt/internal/services/availability"
	"github.com/mcoot/haunt/internal/services/identity"
	"github.com/mcoot/haunt/internal/services/launcher"
	"github.com/mcoot/haunt/internal/services/provider"
	"github.com/mcoot/haunt/internal/storage"
	"github.com/mcoot/haunt/internal/storage/memory"
	redisstorage "github.com/mcoot/haunt/internal/storage/redis"
	sqlitestorage "github.com/mcoot/haunt/internal/storage/sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Names    availability.Service
	Provider *provider.Simulated
	Launcher *launcher.Logging
	Identity *identity.Manager

	closers []io.Closer
}

// New creates a new application with all dependencies wired from cfg.
// A nil logger discards output.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clk := clock.New()
	rnd := random.New()

	store, closer, err := newStorage(cfg, clk)
	if err != nil {
		return nil, err
	}

	app, err := newWithDependencies(cfg, store, clk, rnd, logger)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	if closer != nil {
		app.closers = append(app.closers, closer)
	}
	return app, nil
}

// Close releases storage connections
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func newStorage(cfg config.Config, clk clock.Clock) (storage.Store, io.Closer, error) {
	switch cfg.StorageType {
	case config.StorageTypeMemory:
		return memory.New(), nil, nil
	case config.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.Profile = cfg.Profile
		store, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return store, store, nil
	case config.StorageTypeSQLite:
		path := cfg.ProfilePrefsPath()
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("create prefs dir: %w", err)
		}
		store, err := sqlitestorage.Open(path, clk)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("invalid storage type %q", cfg.StorageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(cfg config.Config, store storage.Store, clk clock.Clock, rnd random.Random, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	names, err := newNameService(cfg)
	if err != nil {
		return nil, err
	}

	if err := provider.CheckIDPrefix(cfg.ProviderIDPrefix); err != nil {
		return nil, err
	}
	accounts, err := provider.ParseAccounts(cfg.ProviderAccounts)
	if err != nil {
		return nil, err
	}
	socialProvider := provider.NewSimulated(provider.SimulatedConfig{
		Name:       cfg.ProviderName,
		IDPrefix:   cfg.ProviderIDPrefix,
		UserID:     cfg.ProviderUser,
		LoginDelay: cfg.ProviderLoginDelay,
		Accounts:   accounts,
	}, clk)

	gameLauncher := launcher.NewLogging(logger)

	identityCfg := identity.Config{
		MinNameLength:        cfg.MinNameLength,
		MaxNameLength:        cfg.MaxNameLength,
		ProviderLoginTimeout: cfg.ProviderLoginTimeout,
	}
	if err := identityCfg.Validate(); err != nil {
		return nil, fmt.Errorf("identity config: %w", err)
	}

	manager := identity.New(identity.Deps{
		Store:    store,
		Names:    names,
		Provider: socialProvider,
		Launcher: gameLauncher,
		Clock:    clk,
		Random:   rnd,
		Logger:   logger,
	}, identityCfg)

	return &App{
		Storage:  store,
		Clock:    clk,
		Random:   rnd,
		Names:    names,
		Provider: socialProvider,
		Launcher: gameLauncher,
		Identity: manager,
	}, nil
}

func newNameService(cfg config.Config) (availability.Service, error) {
	if len(cfg.ReservedNames) == 0 && cfg.ReservedNamesFile == "" {
		return availability.AlwaysAvailable{}, nil
	}
	reserved := availability.NewReserved(cfg.ReservedNames...)
	if cfg.ReservedNamesFile != "" {
		if err := reserved.LoadFromFile(cfg.ReservedNamesFile); err != nil {
			return nil, fmt.Errorf("load reserved names: %w", err)
		}
	}
	return reserved, nil
}
