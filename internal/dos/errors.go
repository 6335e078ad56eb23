package dos

import (
	"errors"
	"fmt"
)

// Phase identifies which protocol method failed.
type Phase string

const (
	PhaseInputs  Phase = "Inputs"
	PhaseOutputs Phase = "Outputs"
	PhaseStep    Phase = "Step"
)

var (
	// ErrUnknownSignal is wrapped by Inputs failures for kinds a component
	// does not handle.
	ErrUnknownSignal = errors.New("unknown signal")

	// ErrExhausted is wrapped by Step failures of components whose input
	// sequence has ended. Drivers treat it as a normal end of run.
	ErrExhausted = errors.New("DOS next step has issued None")

	// ErrNotConfigured is wrapped by failures of components asked for
	// something they were not built to produce.
	ErrNotConfigured = errors.New("not configured")
)

// Error is a protocol failure tagged with the phase that produced it.
type Error struct {
	Phase Phase
	Err   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("An error occurred with the %s method from Dos", e.Phase)
	if e.Err == nil {
		return msg
	}
	return msg + "\nCaused by: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InputsError tags err with the Inputs phase.
func InputsError(err error) *Error {
	return &Error{Phase: PhaseInputs, Err: err}
}

// OutputsError tags err with the Outputs phase.
func OutputsError(err error) *Error {
	return &Error{Phase: PhaseOutputs, Err: err}
}

// StepError tags err with the Step phase.
func StepError(err error) *Error {
	return &Error{Phase: PhaseStep, Err: err}
}

// PhaseOf returns the phase of the outermost *Error in err's chain.
func PhaseOf(err error) (Phase, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Phase, true
	}
	return "", false
}

// IsInputs reports whether err is an Inputs failure.
func IsInputs(err error) bool {
	p, ok := PhaseOf(err)
	return ok && p == PhaseInputs
}

// IsOutputs reports whether err is an Outputs failure.
func IsOutputs(err error) bool {
	p, ok := PhaseOf(err)
	return ok && p == PhaseOutputs
}

// IsStep reports whether err is a Step failure.
func IsStep(err error) bool {
	p, ok := PhaseOf(err)
	return ok && p == PhaseStep
}

// wrap tags err with phase unless it already carries one.
func wrap(phase Phase, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Phase: phase, Err: err}
}
