// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// SQLITE SLOT
// =============================================================================

// SQLiteSlot persists key-value pairs in a SQLite database shared by
// all sessions, one row per (session, key). Callers should Close it
// when done.
type SQLiteSlot struct {
	db      *sql.DB
	session string
}

// NewSQLiteSlot opens (creating if needed) the history database under
// dir and scopes reads and writes to the given session.
func NewSQLiteSlot(dir, session string) (*SQLiteSlot, error) {
	if session == "" {
		session = NewSessionID()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			session TEXT NOT NULL,
			key     TEXT NOT NULL,
			value   TEXT NOT NULL,
			PRIMARY KEY (session, key)
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteSlot{db: db, session: session}, nil
}

// Get returns the value for key and whether it was present.
func (s *SQLiteSlot) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM kv WHERE session = ? AND key = ?",
		s.session, key,
	).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set stores value under key. Write failures are dropped.
func (s *SQLiteSlot) Set(key, value string) {
	_, _ = s.db.Exec(
		`INSERT INTO kv (session, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (session, key) DO UPDATE SET value = excluded.value`,
		s.session, key, value,
	)
}

// Close releases the database handle.
func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
