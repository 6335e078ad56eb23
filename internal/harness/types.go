package harness

import (
	"encoding/json"
	"math"

	"github.com/roach88/dosio/internal/store"
)

// Value is a recorded sample element. It marshals NaN and ±Inf as the
// strings "NaN", "+Inf" and "-Inf".
type Value float64

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(f)
}

// TraceEvent is one recorded output of one stage on one tick.
// Values is nil when the payload was absent.
type TraceEvent struct {
	Tick   int64   `json:"tick"`
	Stage  string  `json:"stage"`
	Kind   string  `json:"kind"`
	Values []Value `json:"values"`
}

// Present reports whether the event carried a payload.
func (e TraceEvent) Present() bool {
	return e.Values != nil
}

// Floats returns the payload as plain float64s.
func (e TraceEvent) Floats() []float64 {
	if e.Values == nil {
		return nil
	}
	out := make([]float64, len(e.Values))
	for i, v := range e.Values {
		out[i] = float64(v)
	}
	return out
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	RunID     string          `json:"run_id"`
	Status    store.RunStatus `json:"status"`
	Ticks     int64           `json:"ticks"`
	Exhausted bool            `json:"exhausted"`

	// Trace holds every recorded sample, by tick then recording order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains assertion failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// RunErr is the error that stopped the run, if any.
	RunErr error `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddSample appends a recorded sample to the trace.
func (r *Result) AddSample(smp store.Sample) {
	ev := TraceEvent{
		Tick:  smp.Tick,
		Stage: smp.Stage,
		Kind:  smp.Signal.Name(),
	}
	if values, ok := smp.Signal.Get(); ok {
		ev.Values = make([]Value, len(values))
		for i, v := range values {
			ev.Values[i] = Value(v)
		}
	}
	r.Trace = append(r.Trace, ev)
}
