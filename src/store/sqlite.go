package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// DefaultSQLitePath is the database file used by the sqlite driver when no path is set.
const DefaultSQLitePath = "data_store.db"

const snapshotKey = "snapshot"

// SQLiteBackend keeps the snapshot as one row of a key/payload table.
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

// NewSQLiteBackend opens (and if needed creates) the database at path.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if path == "" {
		path = DefaultSQLitePath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SQLiteBackend{db: db, path: path}, nil
}

func (s *SQLiteBackend) Read(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE key = ?`, snapshotKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select state: %w", err)
	}
	return payload, nil
}

func (s *SQLiteBackend) Write(ctx context.Context, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO state (key, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`, snapshotKey, blob)
	if err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM state WHERE key = ?`, snapshotKey); err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) Describe() string { return "sqlite:" + s.path }

// Close releases the database handle.
func (s *SQLiteBackend) Close() error { return s.db.Close() }
