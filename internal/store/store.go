// Package store is the sqlite-backed relational store for groups, members,
// key-pair history, interactions and profiles. All protocol handlers go
// through the Read/Write transaction closures; Write serializes writers so
// no two control messages for the same group apply concurrently.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database.
type Store struct {
	db      *sql.DB
	writeMu sync.Mutex
}

const schema = `
CREATE TABLE IF NOT EXISTS closed_group (
	group_id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	formed_at_ms INTEGER NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 1,
	is_invited INTEGER NOT NULL DEFAULT 0,
	admin_secret BLOB
);
CREATE TABLE IF NOT EXISTS group_member (
	group_id TEXT NOT NULL,
	profile_id TEXT NOT NULL,
	role INTEGER NOT NULL,
	role_status INTEGER NOT NULL,
	is_hidden INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (group_id, profile_id)
);
CREATE TABLE IF NOT EXISTS group_key_pair (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	group_id TEXT NOT NULL,
	public_key BLOB NOT NULL,
	secret_key BLOB NOT NULL,
	received_at_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_group_key_pair_group ON group_key_pair (group_id, received_at_ms);
CREATE TABLE IF NOT EXISTS interaction (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	thread_id TEXT NOT NULL,
	author_id TEXT NOT NULL,
	variant INTEGER NOT NULL,
	body TEXT NOT NULL DEFAULT '',
	timestamp_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_interaction_thread ON interaction (thread_id, timestamp_ms);
CREATE TABLE IF NOT EXISTS profile (
	profile_id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	picture_url TEXT NOT NULL DEFAULT '',
	profile_key BLOB,
	is_approved INTEGER NOT NULL DEFAULT 0
);
`

// DefaultDataDir returns the default data directory.
// Uses $XDG_DATA_HOME/groupcore, falling back to ~/.local/share/groupcore.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "groupcore")
}

// Open opens or creates a SQLite store at the given path.
// If dbPath is empty, it defaults to $XDG_DATA_HOME/groupcore/default.db.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = filepath.Join(DefaultDataDir(), "default.db")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("store: create dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}

	// WAL for concurrent readers against the single writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Tx exposes the typed store operations inside one transaction.
type Tx struct {
	tx *sql.Tx
}

// Read runs fn in a transaction that is rolled back at the end.
func (s *Store) Read(fn func(*Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin read: %w", err)
	}
	defer tx.Rollback()
	return fn(&Tx{tx: tx})
}

// Write runs fn in a writable transaction. An error from fn rolls the
// whole transaction back; write failures are never swallowed.
func (s *Store) Write(fn func(*Tx) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin write: %w", err)
	}
	if err := fn(&Tx{tx: tx}); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}
