// Package history keeps a local record of past analysis runs in a
// sqlite database.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mastercactapus/gcheck/check"
)

// Store handles sqlite operations for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded analysis.
type Run struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	StartedAt time.Time `json:"started_at"`
	Lines     int       `json:"lines"`
	Commands  int       `json:"commands"`
	Errors    int       `json:"errors"`
	Warnings  int       `json:"warnings"`
	Passed    bool      `json:"passed"`
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		file TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		lines INTEGER NOT NULL,
		commands INTEGER NOT NULL,
		errors INTEGER NOT NULL,
		warnings INTEGER NOT NULL,
		passed INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_issues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		severity TEXT NOT NULL,
		file TEXT NOT NULL,
		line INTEGER NOT NULL,
		message TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_run_issues_run ON run_issues(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores an analysis result and its merged issues, returning
// the new run row.
func (s *Store) Record(res *check.Result) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		File:      res.File,
		StartedAt: time.Now().UTC(),
		Lines:     res.TotalLines(),
		Commands:  res.TotalCommands(),
		Errors:    res.Errors(),
		Warnings:  res.Warnings(),
		Passed:    res.Passed(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Run{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, file, started_at, lines, commands, errors, warnings, passed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.File, run.StartedAt, run.Lines, run.Commands, run.Errors, run.Warnings, run.Passed,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	for _, is := range res.MergedIssues() {
		_, err = tx.Exec(
			`INSERT INTO run_issues (run_id, severity, file, line, message) VALUES (?, ?, ?, ?, ?)`,
			run.ID, string(is.Severity), is.File, is.Line, is.Message,
		)
		if err != nil {
			return Run{}, fmt.Errorf("insert issue: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit: %w", err)
	}
	return run, nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, file, started_at, lines, commands, errors, warnings, passed
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.File, &r.StartedAt, &r.Lines, &r.Commands,
			&r.Errors, &r.Warnings, &r.Passed); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Issues returns the stored issues of one run, in report order.
func (s *Store) Issues(runID string) ([]check.Issue, error) {
	rows, err := s.db.Query(
		`SELECT severity, file, line, message FROM run_issues WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []check.Issue
	for rows.Next() {
		var is check.Issue
		var sev string
		if err := rows.Scan(&sev, &is.File, &is.Line, &is.Message); err != nil {
			return nil, err
		}
		is.Severity = check.Severity(sev)
		issues = append(issues, is)
	}
	return issues, rows.Err()
}
