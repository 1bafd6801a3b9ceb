package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// storageKey matches the key the original web client used in
// localStorage.
const storageKey = "sb_auth_user"

// SQLiteStore keeps the snapshot as a JSON value under a single key
// in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("session: opening store: %w", err)
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("session: creating table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (*Snapshot, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session WHERE key = ?`, storageKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: loading snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(value, &snap); err != nil {
		return nil, fmt.Errorf("session: corrupt snapshot: %w", err)
	}
	return &snap, nil
}

func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	value, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("session: marshaling snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, storageKey, value)
	if err != nil {
		return fmt.Errorf("session: saving snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session WHERE key = ?`, storageKey,
	)
	if err != nil {
		return fmt.Errorf("session: clearing snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
