// Package store handles SQLite persistence of fetched school records.
package store

import (
	"database/sql"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	_ "modernc.org/sqlite" // SQLite driver.
)

const dateLayout = "2006-01-02"

// Store wraps SQLite access for lessons, announced tests and evaluations.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, log: log}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	log.Debug("store opened", zap.String("path", path))
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lessons (
			id INTEGER PRIMARY KEY,
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			slot INTEGER NOT NULL,
			subject TEXT NOT NULL,
			topic TEXT NOT NULL DEFAULT '',
			start_at TEXT NOT NULL DEFAULT '',
			end_at TEXT NOT NULL DEFAULT '',
			room TEXT NOT NULL DEFAULT '',
			teacher TEXT NOT NULL DEFAULT '',
			substitute TEXT NOT NULL DEFAULT '',
			cancelled INTEGER NOT NULL DEFAULT 0,
			absent INTEGER NOT NULL DEFAULT 0,
			placeholder INTEGER NOT NULL DEFAULT 0,
			test_id TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS announced_tests (
			id INTEGER PRIMARY KEY,
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			slot INTEGER NOT NULL,
			subject TEXT NOT NULL,
			mode TEXT NOT NULL DEFAULT '',
			topic TEXT NOT NULL DEFAULT '',
			teacher TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS evaluations (
			id INTEGER PRIMARY KEY,
			user_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			subject TEXT NOT NULL,
			topic TEXT NOT NULL DEFAULT '',
			mode TEXT NOT NULL DEFAULT '',
			kind TEXT NOT NULL DEFAULT '',
			value INTEGER NOT NULL DEFAULT 0,
			text_value TEXT NOT NULL DEFAULT '',
			weight REAL NOT NULL DEFAULT 1,
			year_end INTEGER NOT NULL DEFAULT 0,
			semester INTEGER NOT NULL DEFAULT 0,
			teacher TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_lessons_user_date ON lessons(user_id, date, slot);`,
		`CREATE INDEX IF NOT EXISTS idx_tests_user_date ON announced_tests(user_id, date);`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_user_created ON evaluations(user_id, created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func closeRows(rows *sql.Rows) {
	if cerr := rows.Close(); cerr != nil {
		// Best-effort rows close.
		_ = cerr
	}
}
