// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/pdiddy/schema-extractor/pkg/types"
)

// QueryOptions filters the runs returned by Runs.
type QueryOptions struct {
	// Schema keeps only runs that wrote this definition name.
	Schema string

	// Source keeps only runs that read this document path.
	Source string

	// MaxRuns limits result count. Zero uses the store default.
	MaxRuns int
}

// Runs returns recorded runs, newest first, each with its schemas in
// extraction order.
func (s *Store) Runs(ctx context.Context, opts QueryOptions) ([]types.ExtractionRun, error) {
	maxRuns := opts.MaxRuns
	if maxRuns <= 0 {
		maxRuns = s.maxRuns
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, source, output_dir, started_at, missing FROM runs WHERE 1=1`)
	if opts.Source != "" {
		qb.WriteString(` AND source = ?`)
		args = append(args, opts.Source)
	}
	if opts.Schema != "" {
		qb.WriteString(` AND id IN (SELECT run_id FROM schemas WHERE name = ?)`)
		args = append(args, opts.Schema)
	}
	qb.WriteString(` ORDER BY id DESC LIMIT ?`)
	args = append(args, maxRuns)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.ExtractionRun
	for rows.Next() {
		var (
			run         types.ExtractionRun
			started     string
			missingJSON string
		)
		if err := rows.Scan(&run.ID, &run.Source, &run.OutputDir, &started, &missingJSON); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("run %d: parsing started_at: %w", run.ID, err)
		}
		if err := json.Unmarshal([]byte(missingJSON), &run.Missing); err != nil {
			return nil, fmt.Errorf("run %d: decoding missing names: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range runs {
		schemas, err := s.schemas(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Schemas = schemas
	}
	return runs, nil
}

func (s *Store) schemas(ctx context.Context, runID int64) ([]types.ExtractedSchema, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, output_path, property_count, sha256
		 FROM schemas WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying schemas for run %d: %w", runID, err)
	}
	defer rows.Close()

	var out []types.ExtractedSchema
	for rows.Next() {
		var sc types.ExtractedSchema
		if err := rows.Scan(&sc.Name, &sc.OutputPath, &sc.PropertyCount, &sc.SHA256); err != nil {
			return nil, fmt.Errorf("scanning schema: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Changed compares run against the most recent earlier run that wrote the
// same output directory and returns the names whose digest differs or
// that were not written before.
func (s *Store) Changed(ctx context.Context, run types.ExtractionRun) ([]string, error) {
	var prevID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM runs WHERE output_dir = ? AND id < ? ORDER BY id DESC LIMIT 1`,
		run.OutputDir, run.ID,
	).Scan(&prevID)
	if errors.Is(err, sql.ErrNoRows) {
		names := make([]string, len(run.Schemas))
		for i, sc := range run.Schemas {
			names[i] = sc.Name
		}
		return names, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding previous run: %w", err)
	}

	prev, err := s.schemas(ctx, prevID)
	if err != nil {
		return nil, err
	}
	digests := make(map[string]string, len(prev))
	for _, sc := range prev {
		digests[sc.Name] = sc.SHA256
	}

	var changed []string
	for _, sc := range run.Schemas {
		if digests[sc.Name] != sc.SHA256 {
			changed = append(changed, sc.Name)
		}
	}
	return changed, nil
}
