// Package history keeps a local record of deploy attempts in a SQLite
// database under the user's home directory.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded deploy attempt.
type Entry struct {
	ID         int64     `json:"id"`
	DeployedAt time.Time `json:"deployed_at"`
	Path       string    `json:"path"`
	Production bool      `json:"production"`
	Success    bool      `json:"success"`
	URL        string    `json:"url,omitempty"`
}

// Store is a deploy-history database handle.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS deploys (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	deployed_at TEXT NOT NULL,
	path TEXT NOT NULL,
	production INTEGER NOT NULL,
	success INTEGER NOT NULL,
	url TEXT NOT NULL DEFAULT ''
);
`

// DefaultPath returns the standard history database location,
// $HOME/.deploykit/history.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".deploykit", "history.db"), nil
}

// Open opens (and initializes if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one deploy attempt. The timestamp is stored in RFC 3339
// UTC so ordering survives timezone changes.
func (s *Store) Record(ctx context.Context, e Entry) error {
	at := e.DeployedAt
	if at.IsZero() {
		at = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO deploys (deployed_at, path, production, success, url) VALUES (?, ?, ?, ?, ?)`,
		at.UTC().Format(time.RFC3339), e.Path, e.Production, e.Success, e.URL,
	)
	if err != nil {
		return fmt.Errorf("failed to record deploy: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, deployed_at, path, production, success, url FROM deploys ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query deploy history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.ID, &at, &e.Path, &e.Production, &e.Success, &e.URL); err != nil {
			return nil, fmt.Errorf("failed to scan deploy row: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339, at); perr == nil {
			e.DeployedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
