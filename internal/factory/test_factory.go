package factory

import (
	"time"

	"github.com/mcoot/haunt/internal/config"
	"github.com/mcoot/haunt/internal/dependencies/mocks"
	"github.com/mcoot/haunt/internal/storage/memory"
	"github.com/mcoot/haunt/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Memory is the backing store
	Memory *memory.Storage

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// TestConfig returns the default configuration with in-memory storage
func TestConfig() config.Config {
	return config.Config{
		StorageType:          config.StorageTypeMemory,
		Profile:              "test",
		MinNameLength:        5,
		MaxNameLength:        12,
		ProviderName:         "facebook",
		ProviderIDPrefix:     "FB_",
		ProviderLoginTimeout: time.Second,
		Scene:                "Lobby",
	}
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// It panics on an invalid cfg.
func NewTestApp(cfg config.Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app, err := newWithDependencies(cfg, store, mockClock, mockRandom, testutil.NopLogger())
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:        app,
		Memory:     store,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
