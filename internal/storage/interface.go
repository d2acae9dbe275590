package storage

import (
	"context"
)

// Well-known preference keys for the persisted identity
const (
	KeyPlayerName = "PlayerName"
	KeyPlayerID   = "PlayerID"
)

// Store is a string key-value preference store.
// Get returns model.ErrKeyNotFound when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// BatchStore is a Store that can write or remove several keys atomically.
// Callers that need all-or-nothing writes should use it when available.
type BatchStore interface {
	Store

	SetMany(ctx context.Context, values map[string]string) error
	DeleteMany(ctx context.Context, keys ...string) error
}
