package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/dosio/internal/catalog"
	"github.com/roach88/dosio/internal/dos"
)

// Scenario defines a pipeline run and the expectations on its trace.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RunID is an optional fixed run ID for deterministic tests.
	// If empty, Run uses testutil.DefaultRunID.
	RunID string `yaml:"run_id,omitempty"`

	// Steps bounds the run. Zero means engine.DefaultMaxTicks.
	Steps int64 `yaml:"steps,omitempty"`

	// Stages lists the pipeline in execution order.
	Stages []StageSpec `yaml:"stages"`

	// Initial seeds the bus before the first tick.
	Initial []InitialSignal `yaml:"initial,omitempty"`

	// Assertions validate the recorded run.
	// Supported types: ticks, exhausted, last_value, mean, error
	Assertions []Assertion `yaml:"assertions"`
}

// StageSpec names one pipeline stage and the component behind it.
type StageSpec struct {
	Name      string `yaml:"name"`
	Component string `yaml:"component"`

	// Params is handed to the component factory, decoded strictly.
	Params yaml.Node `yaml:"params,omitempty"`
}

// strictParams decodes a params block rejecting keys the component's
// config does not declare. (*yaml.Node).Decode ignores KnownFields.
type strictParams struct {
	node *yaml.Node
}

func (p strictParams) Decode(v any) error {
	raw, err := yaml.Marshal(p.node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(v)
}

// InitialSignal is a payload placed on the bus before the first tick.
type InitialSignal struct {
	Kind   catalog.Kind `yaml:"kind"`
	Values []float64    `yaml:"values"`
}

// Assertion validates the recorded run.
type Assertion struct {
	// Type specifies the assertion type:
	// - "ticks": Check the number of completed ticks
	// - "exhausted": Check that a component ran out of input
	// - "last_value": Check the last recorded payload of a kind
	// - "mean": Check the mean of every recorded element of a kind
	// - "error": Check that the run failed
	Type string `yaml:"type"`

	// Kind is the signal kind (used by last_value, mean).
	Kind catalog.Kind `yaml:"kind,omitempty"`

	// Stage restricts last_value to one stage's output, and error to one
	// failing stage.
	Stage string `yaml:"stage,omitempty"`

	// Values is the expected payload (used by last_value).
	Values []float64 `yaml:"values,omitempty"`

	// Absent expects a missing payload (used by last_value).
	Absent bool `yaml:"absent,omitempty"`

	// Value is the expected mean (used by mean).
	Value float64 `yaml:"value,omitempty"`

	// Tolerance bounds numeric comparisons. Default: DefaultTolerance.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Count is the expected number of ticks (used by ticks).
	Count int64 `yaml:"count,omitempty"`

	// Phase is the failing protocol phase: Inputs, Step or Outputs
	// (used by error).
	Phase string `yaml:"phase,omitempty"`
}

// Assertion type constants.
const (
	AssertTicks     = "ticks"
	AssertExhausted = "exhausted"
	AssertLastValue = "last_value"
	AssertMean      = "mean"
	AssertError     = "error"
)

// DefaultTolerance is used when an assertion sets no tolerance.
const DefaultTolerance = 1e-9

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
// Component parameters are checked later, when the stages are built.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", s.Steps)
	}

	if len(s.Stages) == 0 {
		return fmt.Errorf("stages list is required and must be non-empty")
	}

	names := make(map[string]bool, len(s.Stages))
	for i, st := range s.Stages {
		if st.Name == "" {
			return fmt.Errorf("stages[%d]: name is required", i)
		}
		if names[st.Name] {
			return fmt.Errorf("stages[%d]: duplicate stage name %q", i, st.Name)
		}
		names[st.Name] = true
		if st.Component == "" {
			return fmt.Errorf("stages[%d]: component is required", i)
		}
	}

	for i, in := range s.Initial {
		if !in.Kind.Valid() {
			return fmt.Errorf("initial[%d]: kind is required", i)
		}
		if in.Values == nil {
			return fmt.Errorf("initial[%d]: values is required (use [] for an empty payload)", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, names); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, stages map[string]bool) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	if a.Tolerance < 0 {
		return fmt.Errorf("assertions[%d]: tolerance must be non-negative", index)
	}
	if a.Stage != "" && !stages[a.Stage] {
		return fmt.Errorf("assertions[%d]: unknown stage %q", index, a.Stage)
	}

	switch a.Type {
	case AssertTicks:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for ticks", index)
		}
	case AssertExhausted:
	case AssertLastValue:
		if !a.Kind.Valid() {
			return fmt.Errorf("assertions[%d]: kind is required for last_value", index)
		}
		if a.Absent && a.Values != nil {
			return fmt.Errorf("assertions[%d]: last_value takes values or absent, not both", index)
		}
		if !a.Absent && a.Values == nil {
			return fmt.Errorf("assertions[%d]: values is required for last_value", index)
		}
	case AssertMean:
		if !a.Kind.Valid() {
			return fmt.Errorf("assertions[%d]: kind is required for mean", index)
		}
	case AssertError:
		switch dos.Phase(a.Phase) {
		case "", dos.PhaseInputs, dos.PhaseStep, dos.PhaseOutputs:
		default:
			return fmt.Errorf("assertions[%d]: unknown phase %q", index, a.Phase)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
