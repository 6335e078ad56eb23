package dos

import (
	"fmt"

	"github.com/roach88/dosio/internal/catalog"
	"github.com/roach88/dosio/internal/signal"
)

// Component is a simulation element driven once per tick.
//
// Inputs with a nil collection is a no-op. Signals of kinds the component
// does not handle are rejected; signals with an absent payload are skipped.
// Step advances exactly one time step and fails with ErrExhausted in its
// chain once the component's input sequence is over. Outputs returns the
// signals for the current state; nil means no outputs this phase.
type Component[I, O any] interface {
	Inputs(data signal.Signals[I]) error
	Step() error
	Outputs() (signal.Signals[O], error)
}

// Tagger is implemented by components that declare the kinds they consume
// and produce.
type Tagger interface {
	InputsTags() []signal.Tag
	OutputsTags() []signal.Tag
}

// InStepOut runs Inputs, Step and Outputs in order and returns the outputs.
// It stops at the first failing phase; later phases are not invoked.
// Returned errors are always *Error values.
func InStepOut[I, O any](c Component[I, O], data signal.Signals[I]) (signal.Signals[O], error) {
	if err := c.Inputs(data); err != nil {
		return nil, wrap(PhaseInputs, err)
	}
	if err := c.Step(); err != nil {
		return nil, wrap(PhaseStep, err)
	}
	out, err := c.Outputs()
	if err != nil {
		return nil, wrap(PhaseOutputs, err)
	}
	return out, nil
}

// StepIterator adapts an iterator-style advance function to Step. next
// reports whether a value was produced.
func StepIterator(next func() bool) error {
	if !next() {
		return StepError(ErrExhausted)
	}
	return nil
}

// Handler ingests the payload of one recognized signal.
type Handler[I any] func(v I) error

// RouteInputs dispatches every signal in data to the handler registered for
// its kind. A nil collection is a no-op and absent payloads are skipped.
// A kind with no handler fails the whole call with ErrUnknownSignal; signals
// before it have already been handled.
func RouteInputs[I any](data signal.Signals[I], handlers map[catalog.Kind]Handler[I]) error {
	for _, io := range data {
		h, ok := handlers[io.Kind()]
		if !ok {
			return InputsError(fmt.Errorf("%w: %s", ErrUnknownSignal, io.Kind()))
		}
		v, ok := io.Get()
		if !ok {
			continue
		}
		if err := h(v); err != nil {
			return InputsError(fmt.Errorf("%s: %w", io.Kind(), err))
		}
	}
	return nil
}
