package store

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dosio/internal/catalog"
	"github.com/roach88/dosio/internal/dos"
	"github.com/roach88/dosio/internal/engine"
	"github.com/roach88/dosio/internal/signal"
)

func outputs(ios ...signal.Vector) signal.Signals[[]float64] {
	return signal.Signals[[]float64](ios)
}

func TestBeginAndReadRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	beginTestRun(t, s, "run-1")

	run, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, Run{
		ID:                 "run-1",
		Scenario:           "test",
		CatalogFingerprint: catalog.Fingerprint(),
		CatalogSize:        catalog.Len(),
		Status:             StatusRunning,
	}, run)
}

func TestBeginRun_Duplicate(t *testing.T) {
	s := createTestStore(t)
	beginTestRun(t, s, "run-1")

	err := s.BeginRun(context.Background(), Run{ID: "run-1", Scenario: "again"})
	assert.ErrorIs(t, err, ErrRunExists)
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.ReadRun(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)

	_, err = s.ReadSamples(context.Background(), "nope", catalog.TTFB)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestFinishRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	beginTestRun(t, s, "ok")
	beginTestRun(t, s, "bad")

	require.NoError(t, s.FinishRun(ctx, "ok", StatusExhausted, 12, "ignored"))
	require.NoError(t, s.FinishRun(ctx, "bad", StatusFailed, 3, "STAGE_FAILED: boom"))

	ok, err := s.ReadRun(ctx, "ok")
	require.NoError(t, err)
	assert.Equal(t, StatusExhausted, ok.Status)
	assert.Equal(t, int64(12), ok.Ticks)
	assert.Empty(t, ok.Error)

	bad, err := s.ReadRun(ctx, "bad")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, bad.Status)
	assert.Equal(t, "STAGE_FAILED: boom", bad.Error)

	assert.ErrorIs(t, s.FinishRun(ctx, "missing", StatusCompleted, 0, ""), ErrRunNotFound)
}

func TestListRuns(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)

	beginTestRun(t, s, "b")
	beginTestRun(t, s, "a")

	runs, err = s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "a", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
}

func TestRecordTick_ReadBack(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	beginTestRun(t, s, "run-1")

	for tick := int64(1); tick <= 3; tick++ {
		err := s.RecordTick(ctx, "run-1", tick, []engine.StageRecord{
			{Stage: "wind", Outputs: outputs(signal.With(catalog.OSSM1Lcl6F, []float64{float64(tick), 0}))},
			{Stage: "ctrl", Outputs: outputs(
				signal.With(catalog.M1HPCmd, []float64{-float64(tick)}),
				signal.New[[]float64](catalog.TTFB),
			)},
			{Stage: "quiet"},
		})
		require.NoError(t, err)
	}

	run, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), run.Ticks)

	wind, err := s.ReadSamples(ctx, "run-1", catalog.OSSM1Lcl6F)
	require.NoError(t, err)
	require.Len(t, wind, 3)
	for i, smp := range wind {
		assert.Equal(t, int64(i+1), smp.Tick)
		assert.Equal(t, "wind", smp.Stage)
		v, ok := smp.Signal.Get()
		require.True(t, ok)
		assert.Equal(t, []float64{float64(i + 1), 0}, v)
	}

	all, err := s.ReadRunSamples(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, all, 9)
	assert.Equal(t, catalog.OSSM1Lcl6F, all[0].Signal.Kind())
	assert.Equal(t, catalog.M1HPCmd, all[1].Signal.Kind())
	assert.Equal(t, catalog.TTFB, all[2].Signal.Kind())
	assert.False(t, all[2].Signal.Has(), "absent payload round-trips as absent")
	assert.Equal(t, int64(2), all[3].Tick)

	kinds, err := s.RecordedKinds(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, []catalog.Kind{catalog.M1HPCmd, catalog.OSSM1Lcl6F, catalog.TTFB}, kinds)

	none, err := s.ReadSamples(ctx, "run-1", catalog.Pssn)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRecordTick_LastValueWins(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	beginTestRun(t, s, "run-1")

	err := s.RecordTick(ctx, "run-1", 1, []engine.StageRecord{{
		Stage: "dup",
		Outputs: outputs(
			signal.With(catalog.TTFB, []float64{1}),
			signal.With(catalog.TTFB, []float64{2}),
		),
	}})
	require.NoError(t, err)

	got, err := s.ReadSamples(ctx, "run-1", catalog.TTFB)
	require.NoError(t, err)
	require.Len(t, got, 1)
	v, _ := got[0].Signal.Get()
	assert.Equal(t, []float64{2}, v)
}

func TestRecordTick_UnknownRun(t *testing.T) {
	s := createTestStore(t)
	err := s.RecordTick(context.Background(), "ghost", 1, nil)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestRecordTick_NonFinite(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	beginTestRun(t, s, "run-1")

	err := s.RecordTick(ctx, "run-1", 1, []engine.StageRecord{{
		Stage:   "monitor",
		Outputs: outputs(signal.With(catalog.Pssn, []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0.5})),
	}})
	require.NoError(t, err)

	got, err := s.ReadSamples(ctx, "run-1", catalog.Pssn)
	require.NoError(t, err)
	require.Len(t, got, 1)
	v, ok := got[0].Signal.Get()
	require.True(t, ok)
	require.Len(t, v, 4)
	assert.True(t, math.IsNaN(v[0]))
	assert.True(t, math.IsInf(v[1], 1))
	assert.True(t, math.IsInf(v[2], -1))
	assert.Equal(t, 0.5, v[3])
}

func TestReadSamples_CatalogMismatch(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	beginTestRun(t, s, "run-1")

	_, err := s.db.Exec(`INSERT INTO samples (run_id, tick, stage, kind, payload) VALUES ('run-1', 1, 'old', 'RetiredKind', '[1]')`)
	require.NoError(t, err)

	_, err = s.ReadRunSamples(ctx, "run-1")
	assert.ErrorIs(t, err, ErrCatalogMismatch)
	assert.ErrorContains(t, err, `"RetiredKind"`)
}

func TestRecordTick_WithEngine(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	beginTestRun(t, s, "engine-run")

	src := &countdown{n: 3}
	e, err := engine.New(
		[]engine.Stage{{Name: "count", Component: src}},
		engine.WithRunID("engine-run"),
		engine.WithRecorder(s),
	)
	require.NoError(t, err)

	sum, err := e.Run(ctx)
	require.NoError(t, err)
	assert.True(t, sum.Exhausted)

	samples, err := s.ReadSamples(ctx, "engine-run", catalog.M1modes)
	require.NoError(t, err)
	require.Len(t, samples, 3)
	v, _ := samples[2].Signal.Get()
	assert.Equal(t, []float64{1}, v)
}

// countdown emits M1modes = n, n-1, ..., 1 and is then exhausted.
type countdown struct {
	n int
}

func (c *countdown) Inputs(signal.Signals[[]float64]) error { return nil }

func (c *countdown) Step() error {
	return dos.StepIterator(func() bool {
		if c.n == 0 {
			return false
		}
		c.n--
		return true
	})
}

func (c *countdown) Outputs() (signal.Signals[[]float64], error) {
	return signal.Signals[[]float64]{signal.With(catalog.M1modes, []float64{float64(c.n + 1)})}, nil
}
