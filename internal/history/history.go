// Package history records migration runs in a SQLite journal so past
// rewrites stay auditable after the fact.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ludos1978/lexera/internal/migrate"
)

// Store is the SQLite history handle.
type Store struct {
	db *sql.DB
}

// Run is one recorded migration run.
type Run struct {
	ID            int64     `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	Root          string    `json:"root"`
	DryRun        bool      `json:"dry_run"`
	FilesScanned  int       `json:"files_scanned"`
	FilesModified int       `json:"files_modified"`
	TotalChanges  int       `json:"total_changes"`
}

// ChangeEntry is one recorded token substitution.
type ChangeEntry struct {
	RunID int64  `json:"run_id"`
	File  string `json:"file"`
	Line  int    `json:"line"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// Open opens or creates the history database under root's .lexera directory.
func Open(root string) (*Store, error) {
	base := root
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		base = filepath.Dir(root)
	}
	dbDir := filepath.Join(base, ".lexera")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .lexera directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dbDir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		root TEXT NOT NULL,
		dry_run INTEGER NOT NULL,
		files_scanned INTEGER NOT NULL,
		files_modified INTEGER NOT NULL,
		total_changes INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS changes (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		file TEXT NOT NULL,
		line INTEGER NOT NULL,
		old_text TEXT NOT NULL,
		new_text TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_changes_run ON changes(run_id);
	CREATE INDEX IF NOT EXISTS idx_changes_file ON changes(file);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return nil
}

// RecordRun persists a migration report and all its changes in one
// transaction. Returns the new run's ID.
func (s *Store) RecordRun(report *migrate.Report) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (started_at, root, dry_run, files_scanned, files_modified, total_changes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		report.StartedAt.UTC().Format(time.RFC3339),
		report.Root,
		boolToInt(report.DryRun),
		report.FilesScanned,
		report.FilesModified(),
		report.TotalChanges(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO changes (run_id, file, line, old_text, new_text) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, f := range report.Files {
		for _, c := range f.Changes {
			if _, err := stmt.Exec(runID, f.RelativePath, c.Line, c.Old, c.New); err != nil {
				return 0, fmt.Errorf("failed to record change: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit history: %w", err)
	}
	return runID, nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, started_at, root, dry_run, files_scanned, files_modified, total_changes
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		var dryRun int
		if err := rows.Scan(&r.ID, &startedAt, &r.Root, &dryRun, &r.FilesScanned, &r.FilesModified, &r.TotalChanges); err != nil {
			return nil, err
		}
		r.DryRun = dryRun != 0
		r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ChangesForRun returns all changes recorded for one run.
func (s *Store) ChangesForRun(runID int64) ([]ChangeEntry, error) {
	return s.queryChanges(
		`SELECT run_id, file, line, old_text, new_text FROM changes WHERE run_id = ? ORDER BY file, line`,
		runID)
}

// ChangesForFile returns every recorded change for a file, across runs.
func (s *Store) ChangesForFile(file string) ([]ChangeEntry, error) {
	return s.queryChanges(
		`SELECT run_id, file, line, old_text, new_text FROM changes WHERE file = ? ORDER BY run_id, line`,
		file)
}

func (s *Store) queryChanges(query string, arg interface{}) ([]ChangeEntry, error) {
	rows, err := s.db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ChangeEntry
	for rows.Next() {
		var e ChangeEntry
		if err := rows.Scan(&e.RunID, &e.File, &e.Line, &e.Old, &e.New); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
