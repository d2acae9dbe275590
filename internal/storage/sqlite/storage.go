// Package sqlite provides an on-disk preference store backed by SQLite.
//
// It plays the role of a local preferences file holding a single key/value
// table. Callers open one database per player profile.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mcoot/haunt/internal/dependencies/clock"
	"github.com/mcoot/haunt/internal/model"
	"github.com/mcoot/haunt/internal/storage"
)

const schema = `CREATE TABLE IF NOT EXISTS prefs (
	pref_key   TEXT PRIMARY KEY,
	pref_value TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

const upsertPref = `INSERT INTO prefs (pref_key, pref_value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(pref_key) DO UPDATE SET
		pref_value = excluded.pref_value,
		updated_at = excluded.updated_at`

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	sqlDB *sql.DB
	clock clock.Clock
}

// Open opens (creating if needed) the preference database at path
func Open(path string, clk clock.Clock) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create prefs table: %w", err)
	}

	return &Storage{sqlDB: sqlDB, clock: clk}, nil
}

// Close releases the underlying SQLite connection
func (s *Storage) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ensure Storage implements the interface
var _ storage.BatchStore = (*Storage)(nil)

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT pref_value FROM prefs WHERE pref_key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.ErrKeyNotFound
		}
		return "", fmt.Errorf("get pref %q: %w", key, err)
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if _, err := s.sqlDB.ExecContext(ctx, upsertPref, key, value, s.now()); err != nil {
		return fmt.Errorf("set pref %q: %w", key, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM prefs WHERE pref_key = ?`, key); err != nil {
		return fmt.Errorf("delete pref %q: %w", key, err)
	}
	return nil
}

// Batch operations

// SetMany upserts all values in one transaction
func (s *Storage) SetMany(ctx context.Context, values map[string]string) error {
	now := s.now()
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for k, v := range values {
			if _, err := tx.ExecContext(ctx, upsertPref, k, v, now); err != nil {
				return fmt.Errorf("set pref %q: %w", k, err)
			}
		}
		return nil
	})
}

// DeleteMany removes all keys in one transaction
func (s *Storage) DeleteMany(ctx context.Context, keys ...string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM prefs WHERE pref_key = ?`, k); err != nil {
				return fmt.Errorf("delete pref %q: %w", k, err)
			}
		}
		return nil
	})
}

func (s *Storage) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Storage) now() int64 {
	return s.clock.Now().UTC().UnixMilli()
}
