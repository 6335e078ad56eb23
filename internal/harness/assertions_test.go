package harness

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dosio/internal/catalog"
	"github.com/roach88/dosio/internal/dos"
	"github.com/roach88/dosio/internal/engine"
)

func values(vs ...float64) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Value(v)
	}
	return out
}

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Tick: 1, Stage: "a", Kind: "M1HPLC", Values: values(1, 2)},
		{Tick: 1, Stage: "b", Kind: "M1HPLC", Values: values(10, 20)},
		{Tick: 2, Stage: "a", Kind: "M1HPLC", Values: values(3, 4)},
		{Tick: 2, Stage: "a", Kind: "TTcmd", Values: nil},
	}
}

func TestAssertLastValue(t *testing.T) {
	hplc := catalog.MustLookup("M1HPLC")
	tests := []struct {
		name      string
		assertion Assertion
		wantErr   bool
	}{
		{"last of kind", Assertion{Kind: hplc, Values: []float64{3, 4}}, false},
		{"within tolerance", Assertion{Kind: hplc, Values: []float64{3.01, 4}, Tolerance: 0.1}, false},
		{"outside tolerance", Assertion{Kind: hplc, Values: []float64{3.01, 4}}, true},
		{"restricted to stage", Assertion{Kind: hplc, Stage: "b", Values: []float64{10, 20}}, false},
		{"length mismatch", Assertion{Kind: hplc, Values: []float64{3}}, true},
		{"absent expected", Assertion{Kind: catalog.MustLookup("TTcmd"), Absent: true}, false},
		{"absent but present", Assertion{Kind: hplc, Absent: true}, true},
		{"present but absent", Assertion{Kind: catalog.MustLookup("TTcmd"), Values: []float64{}}, true},
		{"never recorded", Assertion{Kind: catalog.MustLookup("TTSP"), Values: []float64{1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.assertion.Type = AssertLastValue
			err := assertLastValue(sampleTrace(), tt.assertion)
			if tt.wantErr {
				require.Error(t, err)
				var ae *AssertionError
				assert.True(t, errors.As(err, &ae))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssertLastValue_NaN(t *testing.T) {
	trace := []TraceEvent{{Tick: 1, Stage: "m", Kind: "Pssn", Values: values(math.NaN(), 1)}}
	a := Assertion{Type: AssertLastValue, Kind: catalog.MustLookup("Pssn"), Values: []float64{math.NaN(), 1}}
	assert.NoError(t, assertLastValue(trace, a))

	a.Values = []float64{0, 1}
	assert.Error(t, assertLastValue(trace, a))
}

func TestAssertMean(t *testing.T) {
	hplc := catalog.MustLookup("M1HPLC")

	// every element of every recorded M1HPLC: (1+2+10+20+3+4)/6
	a := Assertion{Type: AssertMean, Kind: hplc, Value: 40.0 / 6}
	assert.NoError(t, assertMean(sampleTrace(), a))

	a.Stage = "a"
	a.Value = 2.5
	assert.NoError(t, assertMean(sampleTrace(), a))

	a.Value = 2.6
	assert.Error(t, assertMean(sampleTrace(), a))
}

func TestAssertMean_NoSamples(t *testing.T) {
	a := Assertion{Type: AssertMean, Kind: catalog.MustLookup("TTcmd")}
	err := assertMean(sampleTrace(), a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NaN")
}

func TestAssertError(t *testing.T) {
	stageErr := &engine.RuntimeError{
		Code:  engine.ErrCodeStageFailed,
		Stage: "monitor",
		Tick:  1,
		Err:   dos.OutputsError(dos.ErrNotConfigured),
	}

	assert.NoError(t, assertError(stageErr, Assertion{Type: AssertError}))
	assert.NoError(t, assertError(stageErr, Assertion{Type: AssertError, Phase: "Outputs"}))
	assert.NoError(t, assertError(stageErr, Assertion{Type: AssertError, Stage: "monitor"}))
	assert.Error(t, assertError(stageErr, Assertion{Type: AssertError, Phase: "Step"}))
	assert.Error(t, assertError(stageErr, Assertion{Type: AssertError, Stage: "cmd"}))
	assert.Error(t, assertError(nil, Assertion{Type: AssertError}))

	plain := fmt.Errorf("run x cancelled after 0 ticks: %w", errors.New("boom"))
	assert.Error(t, assertError(plain, Assertion{Type: AssertError, Phase: "Inputs"}))
	assert.NoError(t, assertError(plain, Assertion{Type: AssertError}))
}

func TestEvaluateAssertions(t *testing.T) {
	result := NewResult()
	result.Ticks = 2
	result.Trace = sampleTrace()

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertTicks, Count: 2},
		{Type: AssertExhausted},
		{Type: AssertLastValue, Kind: catalog.MustLookup("M1HPLC"), Values: []float64{3, 4}},
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Assertion failed: exhausted")
}

func TestEvaluateAssertions_UnexpectedRunError(t *testing.T) {
	result := NewResult()
	result.RunErr = errors.New("stage blew up")

	errs := EvaluateAssertions(result, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "run failed: stage blew up", errs[0])

	assert.Empty(t, EvaluateAssertions(result, []Assertion{{Type: AssertError}}))
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertLastValue,
		Expected: "M1HPLC = [1]",
		Actual:   "[2]",
		Trace:    []TraceEvent{{Tick: 3, Stage: "a", Kind: "M1HPLC", Values: values(2)}},
	}
	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: last_value")
	assert.Contains(t, msg, "Expected: M1HPLC = [1]")
	assert.Contains(t, msg, "Actual: [2]")
	assert.Contains(t, msg, "[tick 3] a M1HPLC [2]")
}
