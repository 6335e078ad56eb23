package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/dosio/internal/dos"
	"github.com/roach88/dosio/internal/signal"
)

// DefaultMaxTicks bounds a run whose components never exhaust.
const DefaultMaxTicks = 1000

// Component is the payload-typed protocol every stage implements.
type Component = dos.Component[[]float64, []float64]

// Stage is one named component of a pipeline.
type Stage struct {
	Name      string
	Component Component
}

// StageRecord holds what one stage produced during a tick.
type StageRecord struct {
	Stage   string
	Outputs signal.Signals[[]float64]
}

// Recorder persists completed ticks. Implemented by store.Store.
type Recorder interface {
	RecordTick(ctx context.Context, runID string, tick int64, records []StageRecord) error
}

// Summary describes a finished run.
type Summary struct {
	RunID string

	// Ticks counts the ticks every stage completed.
	Ticks int64

	// Exhausted is set when a component ran out of input.
	Exhausted bool

	// Bus is the final state of the signal bus.
	Bus signal.Signals[[]float64]
}

// Engine runs a fixed pipeline of stages.
//
// The engine exclusively owns its components. Tick and Run must be called
// from one goroutine.
type Engine struct {
	stages   []Stage
	clock    TickClock
	runID    string
	recorder Recorder
	logger   *slog.Logger
	maxTicks int64
	bus      signal.Signals[[]float64]
	ticks    int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRecorder sends every completed tick to r.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithClock replaces the tick clock.
func WithClock(c TickClock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithRunID fixes the run ID.
func WithRunID(id string) Option {
	return func(e *Engine) {
		e.runID = id
	}
}

// WithRunIDGenerator draws the run ID from gen.
func WithRunIDGenerator(gen RunIDGenerator) Option {
	return func(e *Engine) {
		e.runID = gen.Generate()
	}
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithMaxTicks bounds Run.
//
// Default: 1000 ticks (DefaultMaxTicks).
func WithMaxTicks(n int64) Option {
	return func(e *Engine) {
		e.maxTicks = n
	}
}

// WithInitial seeds the bus before the first tick.
func WithInitial(initial signal.Signals[[]float64]) Option {
	return func(e *Engine) {
		for _, io := range initial {
			e.bus.Upsert(signal.Cloned(io))
		}
	}
}

// New creates an Engine for stages, in pipeline order.
//
// Stage names must be non-empty and unique, and every stage needs a
// component. The stage slice is copied.
func New(stages []Stage, opts ...Option) (*Engine, error) {
	if len(stages) == 0 {
		return nil, newPipelineError("pipeline has no stages")
	}
	seen := make(map[string]bool, len(stages))
	for i, s := range stages {
		if s.Name == "" {
			return nil, newPipelineError("stage %d has no name", i)
		}
		if seen[s.Name] {
			return nil, newPipelineError("duplicate stage name %q", s.Name)
		}
		if s.Component == nil {
			return nil, newPipelineError("stage %q has no component", s.Name)
		}
		seen[s.Name] = true
	}

	e := &Engine{
		stages:   append([]Stage(nil), stages...),
		clock:    NewClock(),
		logger:   slog.Default(),
		maxTicks: DefaultMaxTicks,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.runID == "" {
		e.runID = UUIDv7Generator{}.Generate()
	}
	if e.maxTicks <= 0 {
		return nil, newPipelineError("max ticks must be positive, got %d", e.maxTicks)
	}
	return e, nil
}

// RunID returns the identifier of this engine's run.
func (e *Engine) RunID() string {
	return e.runID
}

// Bus returns a copy of the current signal bus.
func (e *Engine) Bus() signal.Signals[[]float64] {
	out := make(signal.Signals[[]float64], len(e.bus))
	for i, io := range e.bus {
		out[i] = signal.Cloned(io)
	}
	return out
}

// Tick runs every stage once.
//
// The returned error is the stage's *dos.Error as produced by
// dos.InStepOut, wrapped in a *RuntimeError naming the stage and tick.
// A recorder failure is a *RuntimeError with ErrCodeRecordFailed.
func (e *Engine) Tick(ctx context.Context) error {
	tick := e.clock.Next()
	records := make([]StageRecord, 0, len(e.stages))

	for _, s := range e.stages {
		out, err := dos.InStepOut(s.Component, e.inputsFor(s.Component))
		if err != nil {
			return newStageError(e.runID, tick, s.Name, err)
		}
		e.logger.Debug("stage stepped",
			"run", e.runID,
			"tick", tick,
			"stage", s.Name,
			"outputs", len(out),
		)

		rec := StageRecord{Stage: s.Name}
		if out != nil {
			rec.Outputs = make(signal.Signals[[]float64], 0, len(out))
		}
		for _, io := range out {
			e.bus.Upsert(signal.Cloned(io))
			rec.Outputs = append(rec.Outputs, signal.Cloned(io))
		}
		records = append(records, rec)
	}

	if e.recorder != nil {
		if err := e.recorder.RecordTick(ctx, e.runID, tick, records); err != nil {
			return newRecordError(e.runID, tick, err)
		}
	}
	e.ticks++
	return nil
}

// Run ticks until the tick budget is spent, a component is exhausted, the
// context is cancelled or a stage fails.
//
// Exhaustion is not an error: Run returns a nil error with
// Summary.Exhausted set. Every other failure is returned alongside the
// summary of the ticks completed before it.
func (e *Engine) Run(ctx context.Context) (Summary, error) {
	e.logger.Info("run starting",
		"run", e.runID,
		"stages", len(e.stages),
		"max_ticks", e.maxTicks,
	)

	var exhausted bool
	for e.ticks < e.maxTicks {
		if err := ctx.Err(); err != nil {
			e.logger.Info("run stopping: context cancelled", "run", e.runID, "ticks", e.ticks)
			return e.summary(false), fmt.Errorf("run %s cancelled after %d ticks: %w", e.runID, e.ticks, err)
		}
		err := e.Tick(ctx)
		if IsExhausted(err) {
			e.logger.Info("run exhausted", "run", e.runID, "ticks", e.ticks, "error", err)
			exhausted = true
			break
		}
		if err != nil {
			e.logger.Error("run failed", "run", e.runID, "ticks", e.ticks, "error", err)
			return e.summary(false), err
		}
	}

	e.logger.Info("run finished", "run", e.runID, "ticks", e.ticks, "exhausted", exhausted)
	return e.summary(exhausted), nil
}

func (e *Engine) summary(exhausted bool) Summary {
	return Summary{
		RunID:     e.runID,
		Ticks:     e.ticks,
		Exhausted: exhausted,
		Bus:       e.Bus(),
	}
}

// inputsFor assembles a stage's inputs from the bus. Every payload is a
// copy.
func (e *Engine) inputsFor(c Component) signal.Signals[[]float64] {
	if t, ok := c.(dos.Tagger); ok {
		tags := t.InputsTags()
		if tags == nil {
			return nil
		}
		in := make(signal.Signals[[]float64], len(tags))
		for i, tag := range tags {
			if j, ok := e.bus.Find(tag); ok {
				in[i] = signal.Cloned(e.bus[j])
			} else {
				in[i] = signal.Retag[[]float64](tag)
			}
		}
		return in
	}
	if len(e.bus) == 0 {
		return nil
	}
	return e.Bus()
}
