package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// DefaultProfile is the profile used when none is configured
const DefaultProfile = "default"

// Config is the application configuration read from the environment
type Config struct {
	// StorageType selects the preference store backend
	StorageType string `env:"HAUNT_STORAGE_TYPE" envDefault:"sqlite"`
	// PrefsPath is the sqlite preference file; defaults to ~/.haunt/prefs.db
	PrefsPath string `env:"HAUNT_PREFS_PATH"`
	RedisURL  string `env:"HAUNT_REDIS_URL" envDefault:"redis://localhost:6379"`
	// Profile namespaces redis keys and selects the sqlite file
	Profile string `env:"HAUNT_PROFILE" envDefault:"default"`

	MinNameLength     int      `env:"HAUNT_MIN_NAME_LENGTH" envDefault:"5"`
	MaxNameLength     int      `env:"HAUNT_MAX_NAME_LENGTH" envDefault:"12"`
	ReservedNames     []string `env:"HAUNT_RESERVED_NAMES" envSeparator:","`
	ReservedNamesFile string   `env:"HAUNT_RESERVED_NAMES_FILE"`

	ProviderName         string        `env:"HAUNT_PROVIDER_NAME" envDefault:"facebook"`
	ProviderIDPrefix     string        `env:"HAUNT_PROVIDER_ID_PREFIX" envDefault:"FB_"`
	ProviderUser         string        `env:"HAUNT_PROVIDER_USER"`
	ProviderLoginDelay   time.Duration `env:"HAUNT_PROVIDER_LOGIN_DELAY" envDefault:"0s"`
	ProviderLoginTimeout time.Duration `env:"HAUNT_PROVIDER_LOGIN_TIMEOUT" envDefault:"30s"`
	// ProviderAccounts maps provider user ids to existing "name/playerID" pairs,
	// e.g. HAUNT_PROVIDER_ACCOUNTS=FB123=Vex/FB_998877
	ProviderAccounts map[string]string `env:"HAUNT_PROVIDER_ACCOUNTS" envSeparator:"," envKeyValSeparator:"="`

	Scene string `env:"HAUNT_SCENE" envDefault:"Lobby"`
}

// Load reads the configuration from the environment and fills derived defaults
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.PrefsPath == "" {
		cfg.PrefsPath = DefaultPrefsPath()
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ProfilePrefsPath returns the preference file for the configured profile.
// The default profile uses PrefsPath as is; any other profile gets a sibling
// file named after it, so prefs.db becomes prefs-alice.db.
func (c Config) ProfilePrefsPath() string {
	if c.Profile == "" || c.Profile == DefaultProfile {
		return c.PrefsPath
	}
	ext := filepath.Ext(c.PrefsPath)
	return strings.TrimSuffix(c.PrefsPath, ext) + "-" + c.Profile + ext
}

// DefaultPrefsPath returns the per-user preference file location
func DefaultPrefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".haunt", "prefs.db")
	}
	return filepath.Join(home, ".haunt", "prefs.db")
}

// Validate checks the settings that do not depend on other packages
func (c Config) Validate() error {
	switch c.StorageType {
	case StorageTypeMemory, StorageTypeRedis, StorageTypeSQLite:
	default:
		return fmt.Errorf("invalid storage type %q: must be %q, %q or %q",
			c.StorageType, StorageTypeMemory, StorageTypeRedis, StorageTypeSQLite)
	}
	if c.StorageType == StorageTypeSQLite && c.PrefsPath == "" {
		return fmt.Errorf("prefs path required when storage type is %q", StorageTypeSQLite)
	}
	if strings.ContainsAny(c.Profile, `/\`) {
		return fmt.Errorf("invalid profile %q: must not contain path separators", c.Profile)
	}
	if c.StorageType == StorageTypeRedis && c.RedisURL == "" {
		return fmt.Errorf("redis url required when storage type is %q", StorageTypeRedis)
	}
	return nil
}
