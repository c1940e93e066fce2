// Package journal persists the history of sort runs in SQLite.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gallerysort/internal/journal/migrations"
	"gallerysort/internal/model"
	"gallerysort/internal/sorter"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteJournal implements the Journal interface using SQLite.
type SQLiteJournal struct {
	db   *sql.DB
	path string
}

// NewSQLiteJournal opens the journal at path and applies pending migrations.
// path can be a file path or ":memory:" for an in-memory journal.
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	version, dirty, err := migrations.Version(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("reading journal version: %w", err)
	}
	if dirty {
		db.Close()
		return nil, fmt.Errorf("journal %s is dirty at schema version %d: repair or remove it", path, version)
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating journal: %w", err)
	}

	return &SQLiteJournal{
		db:   db,
		path: path,
	}, nil
}

// OpenConnection opens and configures a SQLite database connection with appropriate PRAGMAs.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == ":memory:" {
		// Every pooled connection to :memory: would get its own empty database
		db.SetMaxOpenConns(1)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// Run operations

func (s *SQLiteJournal) StartRun(run *model.Run) error {
	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO runs (id, started_at, destination, sources, event_threshold, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.Destination, strings.Join(run.Sources, "\n"), run.EventThreshold, run.Status,
	)
	if err != nil {
		return fmt.Errorf("creating run: %w", err)
	}
	return nil
}

func (s *SQLiteJournal) FinishRun(run *model.Run) error {
	var finished sql.NullTime
	if run.FinishedAt != nil {
		finished = sql.NullTime{Time: run.FinishedAt.UTC(), Valid: true}
	}

	res, err := s.db.ExecContext(context.Background(), `
		UPDATE runs
		SET finished_at = ?, status = ?, files_total = ?, files_copied = ?, files_failed = ?, files_unsorted = ?
		WHERE id = ?`,
		finished, run.Status, run.FilesTotal, run.FilesCopied, run.FilesFailed, run.FilesUnsorted, run.ID,
	)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finishing run: run not found: %s", run.ID)
	}
	return nil
}

func (s *SQLiteJournal) ListRuns(limit int) ([]*model.Run, error) {
	rows, err := s.db.QueryContext(context.Background(), `
		SELECT id, started_at, finished_at, destination, sources, event_threshold, status,
		       files_total, files_copied, files_failed, files_unsorted
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		var (
			run      model.Run
			finished sql.NullTime
			sources  string
		)
		if err := rows.Scan(&run.ID, &run.StartedAt, &finished, &run.Destination, &sources, &run.EventThreshold,
			&run.Status, &run.FilesTotal, &run.FilesCopied, &run.FilesFailed, &run.FilesUnsorted); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		if sources != "" {
			run.Sources = strings.Split(sources, "\n")
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// Placement operations

func (s *SQLiteJournal) RecordPlacement(p *model.Placement) error {
	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO placements (run_id, source_path, folder, name, status, error)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.RunID, p.SourcePath, p.Folder, p.Name, p.Status, p.Error,
	)
	if err != nil {
		return fmt.Errorf("recording placement: %w", err)
	}
	return nil
}

func (s *SQLiteJournal) ListPlacements(runID string) ([]*model.Placement, error) {
	rows, err := s.db.QueryContext(context.Background(), `
		SELECT run_id, source_path, folder, name, status, error
		FROM placements
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing placements: %w", err)
	}
	defer rows.Close()

	var placements []*model.Placement
	for rows.Next() {
		var p model.Placement
		if err := rows.Scan(&p.RunID, &p.SourcePath, &p.Folder, &p.Name, &p.Status, &p.Error); err != nil {
			return nil, fmt.Errorf("scanning placement: %w", err)
		}
		placements = append(placements, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing placements: %w", err)
	}
	return placements, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteJournal) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteJournal) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteJournal implements sorter.Journal interface
var _ sorter.Journal = (*SQLiteJournal)(nil)
