// Package store persists the profile as a single JSON document in a
// local SQLite database. Every save also writes a secondary copy under
// a backup key; the backup is never read automatically and exists for
// manual recovery only.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Snapshot keys. PrimaryKey is the authoritative document;
// BackupKey is the emergency copy written on every save.
const (
	PrimaryKey = "profile"
	BackupKey  = "profile.backup"
)

// ErrNotFound is returned by Load when no snapshot has been saved yet.
var ErrNotFound = errors.New("snapshot not found")

// SnapshotStore reads and writes profile documents in SQLite.
type SnapshotStore struct {
	db *sqlx.DB
}

// Open opens (or creates) the snapshot database at dbPath, enables WAL
// mode, and runs any pending schema migrations.
func Open(dbPath string) (*SnapshotStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SnapshotStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SnapshotStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Save writes the document under both the primary and backup keys in a
// single transaction, so the two copies can never diverge on disk.
func (s *SnapshotStore) Save(ctx context.Context, payload []byte) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO snapshots (key, payload, saved_at)
		VALUES (?, ?, ?)`

	now := time.Now().UTC()
	for _, key := range []string{PrimaryKey, BackupKey} {
		if _, err := tx.ExecContext(ctx, query, key, string(payload), now); err != nil {
			return fmt.Errorf("saving snapshot %q: %w", key, err)
		}
	}

	return tx.Commit()
}

// Load reads the primary snapshot document. Returns ErrNotFound when
// nothing has been saved yet.
func (s *SnapshotStore) Load(ctx context.Context) ([]byte, error) {
	return s.loadKey(ctx, PrimaryKey)
}

// LoadBackup reads the backup copy for manual recovery.
func (s *SnapshotStore) LoadBackup(ctx context.Context) ([]byte, error) {
	return s.loadKey(ctx, BackupKey)
}

func (s *SnapshotStore) loadKey(ctx context.Context, key string) ([]byte, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload,
		"SELECT payload FROM snapshots WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %q: %w", key, err)
	}
	return []byte(payload), nil
}

// Wipe removes every stored snapshot, including the backup.
func (s *SnapshotStore) Wipe(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM snapshots"); err != nil {
		return fmt.Errorf("wiping snapshots: %w", err)
	}
	return nil
}
