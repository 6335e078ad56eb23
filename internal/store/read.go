package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/dosio/internal/catalog"
	"github.com/roach88/dosio/internal/signal"
)

// Sample is one recorded signal.
type Sample struct {
	Tick   int64
	Stage  string
	Signal signal.Vector
}

// ReadRun returns the header of a run.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, scenario, catalog_fingerprint, catalog_size, status, ticks, error
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns every run ordered by ID. Run IDs are UUIDv7, so this is
// start order.
//
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scenario, catalog_fingerprint, catalog_size, status, ticks, error
		FROM runs
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadSamples returns the samples of one kind in a run, ordered by
// tick ASC, id ASC.
//
// Returns an empty slice (not nil) if the kind was never recorded, and
// ErrRunNotFound if the run does not exist.
func (s *Store) ReadSamples(ctx context.Context, runID string, kind catalog.Kind) ([]Sample, error) {
	if _, err := s.ReadRun(ctx, runID); err != nil {
		return nil, err
	}
	return s.querySamples(ctx, `
		SELECT tick, stage, kind, payload
		FROM samples
		WHERE run_id = ? AND kind = ?
		ORDER BY tick ASC, id ASC
	`, runID, kind.String())
}

// ReadRunSamples returns every sample of a run, ordered by tick ASC, id ASC.
func (s *Store) ReadRunSamples(ctx context.Context, runID string) ([]Sample, error) {
	if _, err := s.ReadRun(ctx, runID); err != nil {
		return nil, err
	}
	return s.querySamples(ctx, `
		SELECT tick, stage, kind, payload
		FROM samples
		WHERE run_id = ?
		ORDER BY tick ASC, id ASC
	`, runID)
}

// RecordedKinds returns the distinct kinds recorded in a run, in catalog
// order.
func (s *Store) RecordedKinds(ctx context.Context, runID string) ([]catalog.Kind, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT kind FROM samples WHERE run_id = ?
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query kinds: %w", err)
	}
	defer rows.Close()

	var kinds []catalog.Kind
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan kind: %w", err)
		}
		k, err := resolveKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate kinds: %w", err)
	}
	slices.Sort(kinds)
	return kinds, nil
}

func (s *Store) querySamples(ctx context.Context, query string, args ...any) ([]Sample, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	samples := []Sample{}
	for rows.Next() {
		var (
			smp     Sample
			name    string
			payload sql.NullString
		)
		if err := rows.Scan(&smp.Tick, &smp.Stage, &name, &payload); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		kind, err := resolveKind(name)
		if err != nil {
			return nil, err
		}
		values, ok, err := unmarshalPayload(payload)
		if err != nil {
			return nil, fmt.Errorf("tick %d %s: %w", smp.Tick, name, err)
		}
		if ok {
			smp.Signal = signal.With(kind, values)
		} else {
			smp.Signal = signal.New[[]float64](kind)
		}
		samples = append(samples, smp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}
	return samples, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run    Run
		status string
		errMsg sql.NullString
	)
	err := row.Scan(&run.ID, &run.Scenario, &run.CatalogFingerprint, &run.CatalogSize, &status, &run.Ticks, &errMsg)
	if err != nil {
		return Run{}, err
	}
	run.Status = RunStatus(status)
	run.Error = errMsg.String
	return run, nil
}

func resolveKind(name string) (catalog.Kind, error) {
	k, ok := catalog.Lookup(name)
	if !ok {
		return catalog.Invalid, fmt.Errorf("%w: %q", ErrCatalogMismatch, name)
	}
	return k, nil
}
