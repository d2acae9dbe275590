package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderForID(t *testing.T) {
	tests := []struct {
		id   PlayerID
		want Provider
	}{
		{"4821093567", ProviderGuest},
		{"1000000000", ProviderGuest},
		{"9999999999", ProviderGuest},
		{"0999999999", ProviderSocial},
		{"482109356", ProviderSocial},
		{"48210935670", ProviderSocial},
		{"FB_998877", ProviderSocial},
		{"48210a3567", ProviderSocial},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			assert.Equal(t, tt.want, ProviderForID(tt.id))
		})
	}
}

func TestIdentityRecordValid(t *testing.T) {
	assert.True(t, IdentityRecord{PlayerName: "Shadow", PlayerID: "4821093567"}.Valid())
	assert.False(t, IdentityRecord{PlayerName: "Shadow"}.Valid())
	assert.False(t, IdentityRecord{PlayerID: "4821093567"}.Valid())
}

func TestStateAndProviderStrings(t *testing.T) {
	assert.Equal(t, "awaiting_provider_login", StateAwaitingProviderLogin.String())
	assert.Equal(t, "logged_in", StateLoggedIn.String())
	assert.Equal(t, "guest", ProviderGuest.String())
	assert.Equal(t, "social", ProviderSocial.String())
}
