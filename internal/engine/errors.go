package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/dosio/internal/dos"
)

// RuntimeError represents a failure detected while building or running a
// pipeline. It carries enough context to locate the failing stage and tick.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// RunID identifies the affected run, empty for build errors.
	RunID string

	// Stage names the failing stage, if any.
	Stage string

	// Tick is the tick being executed, 0 for build errors.
	Tick int64

	// Err is the underlying cause.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeInvalidPipeline indicates the stage list cannot be run.
	ErrCodeInvalidPipeline RuntimeErrorCode = "INVALID_PIPELINE"

	// ErrCodeStageFailed indicates a component failed one of its phases.
	ErrCodeStageFailed RuntimeErrorCode = "STAGE_FAILED"

	// ErrCodeRecordFailed indicates the recorder rejected a tick.
	ErrCodeRecordFailed RuntimeErrorCode = "RECORD_FAILED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Stage != "" {
		msg += fmt.Sprintf(" (run=%s, tick=%d, stage=%s)", e.RunID, e.Tick, e.Stage)
	} else if e.RunID != "" {
		msg += fmt.Sprintf(" (run=%s, tick=%d)", e.RunID, e.Tick)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsStageError returns true if err is a stage failure.
// Uses errors.As to handle wrapped errors.
func IsStageError(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeStageFailed
	}
	return false
}

// IsRecordError returns true if err is a recorder failure.
func IsRecordError(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeRecordFailed
	}
	return false
}

// IsExhausted reports whether err ends a run normally: a Step failure whose
// cause is dos.ErrExhausted.
func IsExhausted(err error) bool {
	return dos.IsStep(err) && errors.Is(err, dos.ErrExhausted)
}

func newPipelineError(format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeInvalidPipeline,
		Message: fmt.Sprintf(format, args...),
	}
}

func newStageError(runID string, tick int64, stage string, err error) *RuntimeError {
	phase, _ := dos.PhaseOf(err)
	return &RuntimeError{
		Code:    ErrCodeStageFailed,
		Message: fmt.Sprintf("%s phase failed", phase),
		RunID:   runID,
		Stage:   stage,
		Tick:    tick,
		Err:     err,
	}
}

func newRecordError(runID string, tick int64, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeRecordFailed,
		Message: "recording tick failed",
		RunID:   runID,
		Tick:    tick,
		Err:     err,
	}
}
