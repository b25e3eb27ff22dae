// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSink stores each run's rows in a SQLite database. Runs accumulate
// in the same file and are keyed by run ID. The database is an output only;
// nothing in the pipeline reads it back.
type SQLiteSink struct {
	db    *sql.DB
	runID string
}

// OpenSQLite opens or creates the report database at path and ensures the
// schema exists.
func OpenSQLite(path, runID string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteSink{db: db, runID: runID}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteSink) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			paper_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			run_id TEXT NOT NULL REFERENCES runs(run_id),
			position INTEGER NOT NULL,
			pubmed_id TEXT NOT NULL,
			title TEXT,
			publication_date TEXT,
			non_academic_authors TEXT,
			company_affiliations TEXT,
			corresponding_author_email TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (run_id, pubmed_id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func (s *SQLiteSink) Write(rows []Row) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (run_id, created_at, paper_count) VALUES (?, ?, ?)`,
		s.runID, time.Now().UTC().Format(time.RFC3339), len(rows),
	); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO papers
		(run_id, position, pubmed_id, title, publication_date,
		 non_academic_authors, company_affiliations, corresponding_author_email)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.Exec(s.runID, i, r.PubmedID, r.Title, r.PublicationDate,
			r.NonAcademicAuthors, r.Companies, r.CorrespondingEmail); err != nil {
			return fmt.Errorf("inserting paper %s: %w", r.PubmedID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing report: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
