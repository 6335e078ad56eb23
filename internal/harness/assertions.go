package harness

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/roach88/dosio/internal/dos"
	"github.com/roach88/dosio/internal/engine"
	"github.com/roach88/dosio/internal/signal"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Samples of the asserted kind, if any
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nRecorded samples:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [tick %d] %s %s %v\n", ev.Tick, ev.Stage, ev.Kind, ev.Floats())
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns the
// failure messages.
//
// A run that failed without an error assertion expecting it is itself a
// failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	expectsError := false
	for _, a := range assertions {
		if a.Type == AssertError {
			expectsError = true
		}
		if err := evaluate(result, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if result.RunErr != nil && !expectsError {
		errs = append(errs, fmt.Sprintf("run failed: %v", result.RunErr))
	}
	return errs
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertTicks:
		return assertTicks(result, a)
	case AssertExhausted:
		return assertExhausted(result)
	case AssertLastValue:
		return assertLastValue(result.Trace, a)
	case AssertMean:
		return assertMean(result.Trace, a)
	case AssertError:
		return assertError(result.RunErr, a)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func assertTicks(result *Result, a Assertion) error {
	if result.Ticks != a.Count {
		return &AssertionError{
			Type:     AssertTicks,
			Expected: fmt.Sprintf("%d ticks", a.Count),
			Actual:   fmt.Sprintf("%d ticks", result.Ticks),
		}
	}
	return nil
}

func assertExhausted(result *Result) error {
	if !result.Exhausted {
		return &AssertionError{
			Type:     AssertExhausted,
			Expected: "a component exhausted",
			Actual:   fmt.Sprintf("run %s after %d ticks", result.Status, result.Ticks),
		}
	}
	return nil
}

// samplesOf returns the trace events of a.Kind, restricted to a.Stage when
// set.
func samplesOf(trace []TraceEvent, a Assertion) []TraceEvent {
	var out []TraceEvent
	for _, ev := range trace {
		if ev.Kind != a.Kind.String() {
			continue
		}
		if a.Stage != "" && ev.Stage != a.Stage {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func assertLastValue(trace []TraceEvent, a Assertion) error {
	samples := samplesOf(trace, a)
	if len(samples) == 0 {
		return &AssertionError{
			Type:     AssertLastValue,
			Expected: fmt.Sprintf("%s recorded", a.Kind),
			Actual:   "not found in trace",
		}
	}
	last := samples[len(samples)-1]

	if a.Absent {
		if last.Present() {
			return &AssertionError{
				Type:     AssertLastValue,
				Expected: fmt.Sprintf("%s absent", a.Kind),
				Actual:   fmt.Sprintf("%v", last.Floats()),
				Trace:    samples,
			}
		}
		return nil
	}

	got := last.Floats()
	if !last.Present() || !closeTo(got, a.Values, tolerance(a)) {
		actual := "absent"
		if last.Present() {
			actual = fmt.Sprintf("%v", got)
		}
		return &AssertionError{
			Type:     AssertLastValue,
			Expected: fmt.Sprintf("%s = %v", a.Kind, a.Values),
			Actual:   actual,
			Trace:    samples,
		}
	}
	return nil
}

func assertMean(trace []TraceEvent, a Assertion) error {
	samples := samplesOf(trace, a)
	var all []float64
	for _, ev := range samples {
		all = append(all, ev.Floats()...)
	}
	mean := signal.Mean(signal.With(a.Kind, all))
	if math.IsNaN(mean) || math.Abs(mean-a.Value) > tolerance(a) {
		return &AssertionError{
			Type:     AssertMean,
			Expected: fmt.Sprintf("mean of %s = %g ± %g", a.Kind, a.Value, tolerance(a)),
			Actual:   fmt.Sprintf("%g over %d samples", mean, len(samples)),
			Trace:    samples,
		}
	}
	return nil
}

func assertError(runErr error, a Assertion) error {
	if runErr == nil {
		return &AssertionError{
			Type:     AssertError,
			Expected: "run failure",
			Actual:   "run succeeded",
		}
	}
	if a.Phase != "" {
		phase, ok := dos.PhaseOf(runErr)
		if !ok || phase != dos.Phase(a.Phase) {
			actual := "not a protocol error"
			if ok {
				actual = fmt.Sprintf("%s phase", phase)
			}
			return &AssertionError{
				Type:     AssertError,
				Expected: fmt.Sprintf("%s phase", a.Phase),
				Actual:   fmt.Sprintf("%s: %v", actual, runErr),
			}
		}
	}
	if a.Stage != "" {
		var re *engine.RuntimeError
		if !errors.As(runErr, &re) || re.Stage != a.Stage {
			return &AssertionError{
				Type:     AssertError,
				Expected: fmt.Sprintf("failure in stage %s", a.Stage),
				Actual:   runErr.Error(),
			}
		}
	}
	return nil
}

func tolerance(a Assertion) float64 {
	if a.Tolerance > 0 {
		return a.Tolerance
	}
	return DefaultTolerance
}

func closeTo(got, want []float64, tol float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(got[i]) {
				return false
			}
			continue
		}
		if math.Abs(got[i]-want[i]) > tol {
			return false
		}
	}
	return true
}
