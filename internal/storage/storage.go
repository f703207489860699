// Package storage persists the client's credentials between runs. It is the
// session's durable key-value store: two keys, written on successful login
// and cleared on logout, last-write-wins.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var ErrNoRows = errors.New("no rows")

const dbFileName = "larktalk.db"

type Store struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a sqlite DB file.
func NewSQLiteStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec(`PRAGMA synchronous = NORMAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set synchronous: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}

	return &Store{db: db}, nil
}

// InitStore opens the store under dataDir, creating the directory and
// running migrations. An empty dataDir defaults to ~/.larktalk.
func InitStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(homeDir, ".larktalk")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}

	store, err := NewSQLiteStore(filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

// Migrate creates the credentials table. Idempotent.
func (s *Store) Migrate() error {
	const sqlStmt = `
CREATE TABLE IF NOT EXISTS credentials (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at INTEGER NOT NULL -- unix micro
);
`
	_, err := s.db.Exec(sqlStmt)
	return err
}

// Get returns the stored value for key, or ErrNoRows.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM credentials WHERE key = ? LIMIT 1;`
	var value string
	if err := s.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoRows
		}
		return "", fmt.Errorf("get credential: %w", err)
	}
	return value, nil
}

// Set writes or replaces a key. Last write wins.
func (s *Store) Set(ctx context.Context, key, value string) error {
	const q = `
INSERT INTO credentials (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value = excluded.value,
  updated_at = excluded.updated_at;
`
	if _, err := s.db.ExecContext(ctx, q, key, value, time.Now().UnixMicro()); err != nil {
		return fmt.Errorf("set credential: %w", err)
	}
	return nil
}

// Delete removes a single key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM credentials WHERE key = ?;`
	if _, err := s.db.ExecContext(ctx, q, key); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

// Clear removes every stored credential.
func (s *Store) Clear(ctx context.Context) error {
	const q = `DELETE FROM credentials;`
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
