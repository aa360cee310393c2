// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest records extraction runs in a SQLite database so that
// previous outputs can be listed, compared by digest, and exported.
package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/schema-extractor/pkg/types"
)

const defaultMaxRuns = 20

// Store manages the manifest SQLite database.
type Store struct {
	db      *sql.DB
	path    string
	maxRuns int
}

// Open opens or creates the manifest database at cfg.Path, creating
// parent directories and the schema as needed.
func Open(cfg types.ManifestConfig) (*Store, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("manifest path not configured")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating manifest directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxRuns := cfg.MaxRuns
	if maxRuns <= 0 {
		maxRuns = defaultMaxRuns
	}

	s := &Store{db: db, path: cfg.Path, maxRuns: maxRuns}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			started_at TEXT NOT NULL,
			extracted INTEGER NOT NULL,
			missing TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS schemas (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			output_path TEXT NOT NULL,
			property_count INTEGER NOT NULL,
			sha256 TEXT NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_schemas_name ON schemas(name)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores run and its schemas in one transaction and returns the
// assigned run ID.
func (s *Store) Record(ctx context.Context, run types.ExtractionRun) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	started := run.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	missingJSON, err := json.Marshal(run.Missing)
	if err != nil {
		return 0, fmt.Errorf("encoding missing names: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (source, output_dir, started_at, extracted, missing)
		 VALUES (?, ?, ?, ?, ?)`,
		run.Source, run.OutputDir, started.UTC().Format(time.RFC3339Nano),
		len(run.Schemas), string(missingJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO schemas (run_id, position, name, output_path, property_count, sha256)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, sc := range run.Schemas {
		if _, err := stmt.ExecContext(ctx, id, i, sc.Name, sc.OutputPath, sc.PropertyCount, sc.SHA256); err != nil {
			return 0, fmt.Errorf("inserting schema %s: %w", sc.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}
