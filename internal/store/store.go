// Package store handles SQLite persistence of exploration history.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/bikeshare/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for exploration history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS explorations (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			city TEXT NOT NULL,
			month TEXT NOT NULL,
			day TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			pages_viewed INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_explorations_ended_at ON explorations(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_explorations_city ON explorations(city);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertExploration stores a completed exploration and returns its id.
func (s *Store) InsertExploration(ctx context.Context, e model.Exploration) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO explorations (started_at, ended_at, city, month, day, row_count, pages_viewed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.StartedAt.Format(time.RFC3339Nano),
		e.EndedAt.Format(time.RFC3339Nano),
		e.City,
		e.Month,
		e.Day,
		e.Rows,
		e.PagesViewed,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListExplorations returns explorations oldest first, optionally filtered by
// city and limited to the most recent last entries.
func (s *Store) ListExplorations(ctx context.Context, city string, last int) ([]model.Exploration, error) {
	if last <= 0 {
		last = -1
	}
	query := `SELECT id, started_at, ended_at, city, month, day, row_count, pages_viewed FROM (
		SELECT * FROM explorations
		WHERE (? = '' OR city = ?)
		ORDER BY ended_at DESC, id DESC
		LIMIT ?
	) ORDER BY ended_at ASC, id ASC`
	rows, err := s.db.QueryContext(ctx, query, city, city, last)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.Exploration
	for rows.Next() {
		var e model.Exploration
		var startedAt, endedAt string
		if err := rows.Scan(&e.ID, &startedAt, &endedAt, &e.City, &e.Month, &e.Day, &e.Rows, &e.PagesViewed); err != nil {
			return nil, err
		}
		if e.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if e.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
