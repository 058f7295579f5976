package runlog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"tkkunify/internal/unify"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped on incompatible schema changes; an old database
// must be deleted by the user.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was written by an incompatible
// tool version.
var ErrSchemaMismatch = errors.New("run history schema version mismatch")

// Run is one recorded unification run.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	DocumentPath string
	Entries      int
	Renames      int
	Failures     int
	Issues       int
}

// IssueRecord is one residual issue attached to a run.
type IssueRecord struct {
	RunID   string
	Kind    string
	EntryID string
	File    string
	Value   string
}

// Store persists run history in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to (or creates) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Record stores a completed run together with its residual issues.
func (s *Store) Record(ctx context.Context, run Run, issues []unify.Issue) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, document_path, entries, renames, failures, issues)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.DocumentPath,
		run.Entries,
		run.Renames,
		run.Failures,
		run.Issues,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, issue := range issues {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_issues (run_id, kind, entry_id, file, value) VALUES (?, ?, ?, ?, ?)`,
			run.ID, string(issue.Kind), issue.EntryID, issue.File, issue.Value,
		)
		if err != nil {
			return fmt.Errorf("insert run issue: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run record: %w", err)
	}
	return nil
}

const runColumns = "id, started_at, finished_at, document_path, entries, renames, failures, issues"

// Recent returns the latest runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get fetches one run and its issues. Both a full id and an unambiguous id
// prefix resolve.
func (s *Store) Get(ctx context.Context, id string) (*Run, []IssueRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR id LIKE ? ORDER BY started_at DESC LIMIT 2`,
		id, id+"%")
	if err != nil {
		return nil, nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	switch {
	case len(matches) == 0:
		return nil, nil, fmt.Errorf("run %s not found", id)
	case len(matches) > 1:
		return nil, nil, fmt.Errorf("run id %s is ambiguous", id)
	}
	run := matches[0]

	issueRows, err := s.db.QueryContext(ctx,
		`SELECT run_id, kind, entry_id, file, value FROM run_issues WHERE run_id = ? ORDER BY rowid`, run.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("query run issues: %w", err)
	}
	defer issueRows.Close()

	var issues []IssueRecord
	for issueRows.Next() {
		var rec IssueRecord
		if err := issueRows.Scan(&rec.RunID, &rec.Kind, &rec.EntryID, &rec.File, &rec.Value); err != nil {
			return nil, nil, err
		}
		issues = append(issues, rec)
	}
	return &run, issues, issueRows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run         Run
		startedRaw  string
		finishedRaw string
	)
	if err := scanner.Scan(
		&run.ID,
		&startedRaw,
		&finishedRaw,
		&run.DocumentPath,
		&run.Entries,
		&run.Renames,
		&run.Failures,
		&run.Issues,
	); err != nil {
		return Run{}, err
	}
	if t, err := time.Parse(time.RFC3339Nano, startedRaw); err == nil {
		run.StartedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, finishedRaw); err == nil {
		run.FinishedAt = t
	}
	return run, nil
}
