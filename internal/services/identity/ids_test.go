package identity

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/haunt/internal/dependencies/random"
	"github.com/mcoot/haunt/internal/model"
)

func TestGuestIDsAreTenDigitsInRange(t *testing.T) {
	r := random.New()
	for i := 0; i < 2000; i++ {
		id := GenerateGuestID(r)
		require.Len(t, string(id), model.GuestIDLength)
		n, err := strconv.ParseInt(string(id), 10, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, GuestIDMin)
		assert.LessOrEqual(t, n, GuestIDMax)
		assert.True(t, model.IsGuestID(id))
	}
}

func TestProviderIDsCarryPrefixAndSixDigits(t *testing.T) {
	r := random.New()
	for i := 0; i < 500; i++ {
		id := string(DeriveProviderID(r, "FB_"))
		require.True(t, strings.HasPrefix(id, "FB_"))
		suffix := strings.TrimPrefix(id, "FB_")
		require.Len(t, suffix, 6)
		_, err := strconv.Atoi(suffix)
		require.NoError(t, err)
		assert.False(t, model.IsGuestID(model.PlayerID(id)))
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", DefaultConfig(), false},
		{"single length", Config{MinNameLength: 1, MaxNameLength: 1, ProviderLoginTimeout: time.Second}, false},
		{"wide bound", Config{MinNameLength: 1, MaxNameLength: 15, ProviderLoginTimeout: time.Second}, false},
		{"zero minimum", Config{MinNameLength: 0, MaxNameLength: 12, ProviderLoginTimeout: time.Second}, true},
		{"inverted bound", Config{MinNameLength: 8, MaxNameLength: 5, ProviderLoginTimeout: time.Second}, true},
		{"no timeout", Config{MinNameLength: 5, MaxNameLength: 12}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateNameWithWideBound(t *testing.T) {
	cfg := Config{MinNameLength: 1, MaxNameLength: 15, ProviderLoginTimeout: time.Second}

	assert.NoError(t, cfg.ValidateName("Vex"))
	assert.NoError(t, cfg.ValidateName(strings.Repeat("x", 15)))
	assert.ErrorIs(t, cfg.ValidateName(""), model.ErrInvalidNameLength)
	assert.ErrorIs(t, cfg.ValidateName(strings.Repeat("x", 16)), model.ErrInvalidNameLength)
}
