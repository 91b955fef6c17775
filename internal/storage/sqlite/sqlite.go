// Package sqlite provides SQLite-based storage implementation.
package sqlite

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Storage implements the storage.Storage interface using SQLite
type Storage struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// New creates a new SQLite storage instance
func New(dbPath string) (*Storage, error) {
	// _time_format=sqlite writes DATETIME values SQLite's date functions understand.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	storage := &Storage{db: db}

	if err := storage.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return storage, nil
}

// createSchema creates the database schema
func (s *Storage) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS generation_logs (
		id                 TEXT PRIMARY KEY,
		request_id         TEXT NOT NULL,
		model              TEXT NOT NULL,
		provider           TEXT NOT NULL,
		prompt_fingerprint TEXT NOT NULL,
		prompt_tokens      INTEGER DEFAULT 0,
		completion_tokens  INTEGER DEFAULT 0,
		total_tokens       INTEGER DEFAULT 0,
		chunk_count        INTEGER DEFAULT 0,
		malformed_count    INTEGER DEFAULT 0,
		status_code        INTEGER,
		outcome            TEXT NOT NULL,
		error_message      TEXT,
		duration_ms        INTEGER,
		created_at         DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS usage_daily (
		date              TEXT NOT NULL,
		model             TEXT NOT NULL,
		request_count     INTEGER DEFAULT 0,
		prompt_tokens     INTEGER DEFAULT 0,
		completion_tokens INTEGER DEFAULT 0,
		total_tokens      INTEGER DEFAULT 0,
		error_count       INTEGER DEFAULT 0,
		PRIMARY KEY (date, model)
	);

	CREATE INDEX IF NOT EXISTS idx_logs_created ON generation_logs(created_at);
	CREATE INDEX IF NOT EXISTS idx_logs_model ON generation_logs(model);
	CREATE INDEX IF NOT EXISTS idx_logs_fingerprint ON generation_logs(prompt_fingerprint);
	CREATE INDEX IF NOT EXISTS idx_usage_date ON usage_daily(date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
