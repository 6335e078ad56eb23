package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/dosio/internal/engine"
)

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusExhausted RunStatus = "exhausted"
	StatusFailed    RunStatus = "failed"
)

// Run is the header of a recorded run.
type Run struct {
	ID                 string    `json:"id"`
	Scenario           string    `json:"scenario"`
	CatalogFingerprint string    `json:"catalog_fingerprint"`
	CatalogSize        int       `json:"catalog_size"`
	Status             RunStatus `json:"status"`
	Ticks              int64     `json:"ticks"`
	Error              string    `json:"error,omitempty"`
}

// BeginRun inserts a run header in the running state.
// Returns ErrRunExists if the ID is already recorded.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, scenario, catalog_fingerprint, catalog_size, status, ticks)
		VALUES (?, ?, ?, ?, ?, 0)
	`,
		run.ID,
		run.Scenario,
		run.CatalogFingerprint,
		run.CatalogSize,
		string(StatusRunning),
	)
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("begin run %s: %w", run.ID, ErrRunExists)
		}
		return fmt.Errorf("begin run %s: %w", run.ID, err)
	}
	return nil
}

// FinishRun records the final status of a run. errMsg is stored only for
// failed runs.
func (s *Store) FinishRun(ctx context.Context, id string, status RunStatus, ticks int64, errMsg string) error {
	var errCol any
	if status == StatusFailed {
		errCol = errMsg
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET status = ?, ticks = ?, error = ?
		WHERE id = ?
	`, string(status), ticks, errCol, id)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("finish run %s: %w", id, ErrRunNotFound)
	}
	return nil
}

// RecordTick stores every output of one completed tick in a single
// transaction. Implements engine.Recorder.
//
// A stage producing the same kind twice in one tick keeps the last value.
func (s *Store) RecordTick(ctx context.Context, runID string, tick int64, records []engine.StageRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record tick %d: begin: %w", tick, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE runs SET ticks = ticks + 1 WHERE id = ?`, runID)
	if err != nil {
		return fmt.Errorf("record tick %d: %w", tick, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("record tick %d: %w", tick, err)
	} else if n == 0 {
		return fmt.Errorf("record tick %d of run %s: %w", tick, runID, ErrRunNotFound)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO samples (run_id, tick, stage, kind, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(run_id, tick, stage, kind) DO UPDATE SET payload = excluded.payload
	`)
	if err != nil {
		return fmt.Errorf("record tick %d: prepare: %w", tick, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		for _, io := range rec.Outputs {
			payload, err := marshalPayload(io)
			if err != nil {
				return fmt.Errorf("record tick %d stage %s: %w", tick, rec.Stage, err)
			}
			if _, err := stmt.ExecContext(ctx, runID, tick, rec.Stage, io.Name(), payload); err != nil {
				return fmt.Errorf("record tick %d stage %s kind %s: %w", tick, rec.Stage, io.Kind(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record tick %d: commit: %w", tick, err)
	}
	return nil
}

var _ engine.Recorder = (*Store)(nil)
