// Package storage provides SQLite-based persistence for generated commentary.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the line cache.
type Store struct {
	db *sql.DB
}

// Line is one piece of end-screen commentary.
type Line struct {
	ID        int64
	Survived  bool
	Watts     int
	Text      string
	Model     string
	CreatedAt time.Time
}

// LineStats summarizes the cache.
type LineStats struct {
	Total     int
	Survived  int
	Failed    int
	LastSaved time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS lines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			survived INTEGER NOT NULL,
			watts INTEGER NOT NULL,
			text TEXT NOT NULL,
			model TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_lines_text ON lines(survived, watts, text);
		CREATE INDEX IF NOT EXISTS idx_lines_outcome ON lines(survived, watts);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveLine records a generated line. Saving the same text for the same
// outcome twice keeps a single row; the returned ID is 0 in that case.
func (s *Store) SaveLine(l Line) (int64, error) {
	result, err := s.db.Exec(
		"INSERT OR IGNORE INTO lines (survived, watts, text, model) VALUES (?, ?, ?, ?)",
		l.Survived, l.Watts, l.Text, l.Model,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save line: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return 0, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RandomLine picks a cached line written for the same outcome and score.
// Returns nil if there is none.
func (s *Store) RandomLine(survived bool, watts int) (*Line, error) {
	row := s.db.QueryRow(
		`SELECT id, survived, watts, text, model, created_at
		 FROM lines
		 WHERE survived = ? AND watts = ?
		 ORDER BY RANDOM()
		 LIMIT 1`,
		survived, watts,
	)

	l, err := scanLine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query line: %w", err)
	}
	return l, nil
}

// RecentLines retrieves the most recently saved lines, newest first.
func (s *Store) RecentLines(limit int) ([]Line, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, survived, watts, text, model, created_at
		 FROM lines
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query lines: %w", err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		lines = append(lines, *l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return lines, nil
}

// Stats returns line counts per outcome and the time of the last save.
func (s *Store) Stats() (*LineStats, error) {
	stats := &LineStats{}
	var lastSaved any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(survived), 0),
		        COALESCE(SUM(1 - survived), 0),
		        MAX(created_at)
		 FROM lines`,
	).Scan(&stats.Total, &stats.Survived, &stats.Failed, &lastSaved)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get line stats: %w", err)
	}
	stats.LastSaved = parseTime(lastSaved)
	return stats, nil
}

// ClearLines deletes every cached line.
func (s *Store) ClearLines() error {
	_, err := s.db.Exec("DELETE FROM lines")
	if err != nil {
		return fmt.Errorf("storage: cannot clear lines: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLine(row scanner) (*Line, error) {
	var l Line
	var createdAt any
	if err := row.Scan(&l.ID, &l.Survived, &l.Watts, &l.Text, &l.Model, &createdAt); err != nil {
		return nil, err
	}
	l.CreatedAt = parseTime(createdAt)
	return &l, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
