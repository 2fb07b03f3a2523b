// Package store persists all app state in a SQLite-backed key-value table.
// Values are JSON documents keyed by record type (day records under a date
// prefix). Read corruption never surfaces as an error: callers get defaults
// and a registered callback is notified.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// ErrorKind classifies storage failures for the observability callback.
type ErrorKind string

const (
	ErrQuotaExceeded ErrorKind = "quota_exceeded"
	ErrWriteFailed   ErrorKind = "write_failed"
	ErrReadCorrupted ErrorKind = "read_corrupted"
)

// ErrorFunc receives storage failures. It must not block.
type ErrorFunc func(kind ErrorKind, key string)

type Store struct {
	db      *sql.DB
	onError ErrorFunc
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SetErrorHandler registers the failure callback. Pass nil to clear.
func (s *Store) SetErrorHandler(f ErrorFunc) {
	s.onError = f
}

func (s *Store) notify(kind ErrorKind, key string) {
	if s.onError != nil {
		s.onError(kind, key)
	}
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS records (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// Get returns the raw value for a key. False when the key is absent.
func (s *Store) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set writes a value. Failure is reported through the error callback rather
// than an error return so the session stays usable in-memory.
func (s *Store) Set(key, value string) bool {
	_, err := s.db.Exec(
		`INSERT INTO records (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		kind := ErrWriteFailed
		if strings.Contains(err.Error(), "database or disk is full") {
			kind = ErrQuotaExceeded
		}
		s.notify(kind, key)
		return false
	}
	return true
}

// Remove deletes a key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) {
	s.db.Exec(`DELETE FROM records WHERE key = ?`, key)
}

// KeysWithPrefix lists all keys under a prefix in ascending order.
func (s *Store) KeysWithPrefix(prefix string) []string {
	rows, err := s.db.Query(
		`SELECT key FROM records WHERE key LIKE ? ESCAPE '\' ORDER BY key`,
		escapeLike(prefix)+"%",
	)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return keys
		}
		keys = append(keys, k)
	}
	return keys
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// DefaultDBPath returns ~/.config/proteinpal/proteinpal.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "proteinpal", "proteinpal.db"), nil
}
