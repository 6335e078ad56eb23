package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/dosio/internal/store"
)

// TraceSnapshot captures the recorded run of a scenario.
type TraceSnapshot struct {
	ScenarioName string          `json:"scenario_name"`
	RunID        string          `json:"run_id"`
	Status       store.RunStatus `json:"status"`
	Ticks        int64           `json:"ticks"`
	Trace        []TraceEvent    `json:"trace"`
}

// Snapshot returns the golden form of result.
func Snapshot(scenarioName string, result *Result) TraceSnapshot {
	trace := result.Trace
	if trace == nil {
		trace = []TraceEvent{}
	}
	return TraceSnapshot{
		ScenarioName: scenarioName,
		RunID:        result.RunID,
		Status:       result.Status,
		Ticks:        result.Ticks,
		Trace:        trace,
	}
}

// MarshalSnapshot renders s as indented JSON with a trailing newline.
func MarshalSnapshot(s TraceSnapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result's trace against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result against a golden file without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(Snapshot(scenarioName, result))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
