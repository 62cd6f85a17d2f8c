package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store persists generated summaries and run records in SQLite so unchanged
// files skip model calls across invocations.
type Store struct {
	db *sql.DB
}

// Run is one recorded generation run.
type Run struct {
	ID          string
	StartedAt   time.Time
	Duration    time.Duration
	SourceFiles int
	Symbols     int
	Score       int
}

// DefaultPath returns the cache location inside a workspace.
func DefaultPath(rootDir string) string {
	return filepath.Join(rootDir, ".prdgen", "cache.db")
}

// Open opens (or creates) the store at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// createSchema creates all tables and indexes. Uses a transaction for
// atomicity - all schema creation succeeds or fails together.
func createSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	statements := []string{
		`CREATE TABLE IF NOT EXISTS summaries (
			file_path    TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			symbol_key   TEXT NOT NULL,
			summary      TEXT NOT NULL,
			created_at   TIMESTAMP NOT NULL,
			PRIMARY KEY (file_path, symbol_key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_hash ON summaries(file_path, content_hash)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id           TEXT PRIMARY KEY,
			started_at   TIMESTAMP NOT NULL,
			duration_ms  INTEGER NOT NULL,
			source_files INTEGER NOT NULL,
			symbols      INTEGER NOT NULL,
			score        INTEGER NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

// GetSummaries returns the cached summaries for a file, keyed by symbol key.
// The second return value reports whether the cache entry is still valid for
// the given content hash; a hash mismatch means the file changed and the
// entry is stale.
func (s *Store) GetSummaries(filePath, contentHash string) (map[string]string, bool, error) {
	rows, err := s.db.Query(
		`SELECT symbol_key, summary, content_hash FROM summaries WHERE file_path = ?`,
		filePath)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	summaries := make(map[string]string)
	valid := false
	for rows.Next() {
		var key, summary, hash string
		if err := rows.Scan(&key, &summary, &hash); err != nil {
			return nil, false, fmt.Errorf("failed to scan summary row: %w", err)
		}
		if hash != contentHash {
			return nil, false, rows.Err()
		}
		summaries[key] = summary
		valid = true
	}

	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	if !valid {
		return nil, false, nil
	}
	return summaries, true, nil
}

// PutSummaries replaces the cached summaries for one file atomically.
func (s *Store) PutSummaries(filePath, contentHash string, summaries map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM summaries WHERE file_path = ?`, filePath); err != nil {
		return fmt.Errorf("failed to clear stale summaries: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO summaries (file_path, content_hash, symbol_key, summary, created_at)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for key, summary := range summaries {
		if _, err := stmt.Exec(filePath, contentHash, key, summary, now); err != nil {
			return fmt.Errorf("failed to insert summary for %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// RecordRun stores a run record and returns its generated id.
func (s *Store) RecordRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, started_at, duration_ms, source_files, symbols, score)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.Duration.Milliseconds(),
		run.SourceFiles, run.Symbols, run.Score)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return run.ID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, started_at, duration_ms, source_files, symbols, score
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var durationMs int64
		if err := rows.Scan(&run.ID, &run.StartedAt, &durationMs,
			&run.SourceFiles, &run.Symbols, &run.Score); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Prune deletes cached summaries older than the given age.
func (s *Store) Prune(maxAge time.Duration) error {
	cutoff := time.Now().UTC().Add(-maxAge)
	_, err := s.db.Exec(`DELETE FROM summaries WHERE created_at < ?`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune summaries: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
