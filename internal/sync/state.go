// Package sync implements the wearable sync agent: it pulls daily data
// from the Oura API and pushes it to the server's ingest endpoint,
// tracking finished days in a local SQLite database.
package sync

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// StateDB tracks which days have been fully synced to avoid re-sending.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS synced_days (
		day       TEXT PRIMARY KEY,
		complete  INTEGER NOT NULL DEFAULT 0,
		synced_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// IsComplete reports whether a day has been synced after its data was
// final. Incomplete days (synced while still in progress) return false so
// they are fetched again.
func (s *StateDB) IsComplete(day string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM synced_days WHERE day = ? AND complete = 1`,
		day,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkSynced records that a day was successfully synced. complete marks
// the day's data as final.
func (s *StateDB) MarkSynced(day string, complete bool) error {
	c := 0
	if complete {
		c = 1
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO synced_days (day, complete) VALUES (?, ?)`,
		day, c,
	)
	return err
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}
