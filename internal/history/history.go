// Package history persists workflow run outcomes in a local SQLite database
// so past executions can be inspected after the fact.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"flowcap/internal/manifest"
)

// DefaultDBPath is the default relative path for the history DB.
// Open() creates the parent dir (e.g. .flowcap).
const DefaultDBPath = ".flowcap/history.db"

// Run is one recorded execution.
type Run struct {
	ID            int64
	WorkflowName  string
	Success       bool
	Error         string
	ArtifactCount int
	Duration      float64 // seconds
	RanAt         string  // RFC 3339
}

// Store is the run-history persistence facade.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite DB at path and runs migrations.
// Creates the parent directory if it does not exist.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	workflow_name TEXT NOT NULL,
	success INTEGER NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	artifact_count INTEGER NOT NULL DEFAULT 0,
	duration_seconds REAL NOT NULL DEFAULT 0,
	ran_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_workflow ON runs(workflow_name);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate history schema: %w", err)
	}
	return nil
}

// Close releases the underlying DB handle.
func (s *Store) Close() error { return s.db.Close() }

// RecordRun appends one result to the history.
func (s *Store) RecordRun(res manifest.Result) (int64, error) {
	success := 0
	if res.Success {
		success = 1
	}
	r, err := s.db.Exec(
		`INSERT INTO runs (workflow_name, success, error, artifact_count, duration_seconds, ran_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.WorkflowName, success, res.Error, len(res.Artifacts), res.ExecutionTime,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := r.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 means 20.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, workflow_name, success, error, artifact_count, duration_seconds, ran_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var success int
		if err := rows.Scan(&run.ID, &run.WorkflowName, &success, &run.Error,
			&run.ArtifactCount, &run.Duration, &run.RanAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Success = success == 1
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
