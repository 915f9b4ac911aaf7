package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens the SQLite database with WAL mode enabled and creates any
// missing tables. Opening repeatedly against the same file is safe.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS eod_prices (
	date TEXT,
	open REAL,
	high REAL,
	low REAL,
	close REAL,
	volume INTEGER,
	symbol TEXT
);

CREATE TABLE IF NOT EXISTS securities (
	ticker TEXT PRIMARY KEY,
	company TEXT,
	sector TEXT,
	industry TEXT
);

CREATE TABLE IF NOT EXISTS corporate_filings (
	company_name TEXT,
	symbol TEXT,
	disclosure_title TEXT,
	disclosure_type TEXT,
	disclosure_date TEXT,
	source_url TEXT,
	pdf_url TEXT,
	local_pdf_path TEXT
);

CREATE TABLE IF NOT EXISTS ingestion_runs (
	run_id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	started_at TEXT NOT NULL,
	rows_processed INTEGER NOT NULL
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// dateLayout is the calendar-date storage format for every date column.
const dateLayout = "2006-01-02"

// sqlDate renders a date for storage; the zero time becomes NULL.
func sqlDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}

// scanDate parses a stored date; NULL or unparseable text yields the zero time.
func scanDate(v sql.NullString) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	d, err := time.Parse(dateLayout, v.String)
	if err != nil {
		return time.Time{}
	}
	return d
}

// sqlText renders an optional string; empty becomes NULL.
func sqlText(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// RecordRun appends one ingestion audit row.
func (s *sqliteStore) RecordRun(ctx context.Context, run store.IngestionRun) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO ingestion_runs (run_id, kind, started_at, rows_processed)
VALUES (?, ?, ?, ?);
`, run.ID, run.Kind, run.StartedAt.UTC().Format(time.RFC3339), run.Rows)
	return err
}
