package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/dosio/internal/catalog"
	"github.com/roach88/dosio/internal/component"
	"github.com/roach88/dosio/internal/engine"
	"github.com/roach88/dosio/internal/signal"
	"github.com/roach88/dosio/internal/store"
	"github.com/roach88/dosio/internal/testutil"
)

// Runner executes scenarios against a store.
type Runner struct {
	// Store receives the run header and every completed tick. Required.
	Store *store.Store

	// Registry resolves stage components. Default: component.Default().
	Registry *component.Registry

	// RunIDs supplies the run ID when the scenario does not pin one.
	// Default: engine.UUIDv7Generator.
	RunIDs engine.RunIDGenerator

	// Clock numbers the recorded ticks. Default: a fresh engine.Clock per
	// Execute.
	Clock engine.TickClock

	// Logger is handed to the engine. Default: slog.Default().
	Logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation, with the
// scenario's run ID or testutil.DefaultRunID, and logs discarded.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	r := &Runner{
		Store:  st,
		RunIDs: testutil.NewFixedRunGenerator(scenario.RunID),
		Clock:  testutil.NewDeterministicClock(),
		Logger: testutil.QuietLogger(),
	}
	return r.Execute(context.Background(), scenario)
}

// BuildStages instantiates the scenario's pipeline from reg.
func BuildStages(reg *component.Registry, scenario *Scenario) ([]engine.Stage, error) {
	stages := make([]engine.Stage, 0, len(scenario.Stages))
	for i := range scenario.Stages {
		spec := &scenario.Stages[i]
		var params component.Params
		if spec.Params.Kind != 0 {
			params = strictParams{&spec.Params}
		}
		c, err := reg.Build(spec.Component, params)
		if err != nil {
			return nil, fmt.Errorf("stage %q: %w", spec.Name, err)
		}
		stages = append(stages, engine.Stage{Name: spec.Name, Component: c})
	}
	return stages, nil
}

// Execute runs the scenario, records it to the runner's store and
// evaluates the scenario's assertions.
//
// A failing pipeline is not an error of Execute: it is reported in
// Result.RunErr and fails the result unless an error assertion expects it.
// Execute returns an error only when the scenario cannot be run or
// recorded.
func (r *Runner) Execute(ctx context.Context, scenario *Scenario) (*Result, error) {
	if r.Store == nil {
		return nil, errors.New("runner has no store")
	}
	reg := r.Registry
	if reg == nil {
		reg = component.Default()
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	stages, err := BuildStages(reg, scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	opts := []engine.Option{
		engine.WithRecorder(r.Store),
		engine.WithLogger(logger),
		engine.WithInitial(initialSignals(scenario.Initial)),
	}
	switch {
	case scenario.RunID != "":
		opts = append(opts, engine.WithRunID(scenario.RunID))
	case r.RunIDs != nil:
		opts = append(opts, engine.WithRunIDGenerator(r.RunIDs))
	}
	if scenario.Steps > 0 {
		opts = append(opts, engine.WithMaxTicks(scenario.Steps))
	}
	if r.Clock != nil {
		opts = append(opts, engine.WithClock(r.Clock))
	}

	eng, err := engine.New(stages, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	err = r.Store.BeginRun(ctx, store.Run{
		ID:                 eng.RunID(),
		Scenario:           scenario.Name,
		CatalogFingerprint: catalog.Fingerprint(),
		CatalogSize:        catalog.Len(),
	})
	if err != nil {
		return nil, err
	}

	summary, runErr := eng.Run(ctx)

	// A cancelled run is still finished and read back.
	ctx = context.WithoutCancel(ctx)

	result := NewResult()
	result.RunID = eng.RunID()
	result.Ticks = summary.Ticks
	result.Exhausted = summary.Exhausted
	result.RunErr = runErr

	var errMsg string
	switch {
	case runErr != nil:
		result.Status = store.StatusFailed
		errMsg = runErr.Error()
	case summary.Exhausted:
		result.Status = store.StatusExhausted
	default:
		result.Status = store.StatusCompleted
	}
	if err := r.Store.FinishRun(ctx, result.RunID, result.Status, summary.Ticks, errMsg); err != nil {
		return nil, err
	}

	samples, err := r.Store.ReadRunSamples(ctx, result.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	for _, smp := range samples {
		result.AddSample(smp)
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	logger.Info("scenario finished",
		"scenario", scenario.Name,
		"run", result.RunID,
		"status", result.Status,
		"ticks", result.Ticks,
		"pass", result.Pass,
	)
	return result, nil
}

func initialSignals(initial []InitialSignal) signal.Signals[[]float64] {
	if len(initial) == 0 {
		return nil
	}
	out := make(signal.Signals[[]float64], 0, len(initial))
	for _, in := range initial {
		out = append(out, signal.With(in.Kind, in.Values))
	}
	return out
}
