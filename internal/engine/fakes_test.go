package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/roach88/dosio/internal/catalog"
	"github.com/roach88/dosio/internal/dos"
	"github.com/roach88/dosio/internal/signal"
)

// source emits one recorded value of kind per tick and is exhausted after
// the last.
type source struct {
	kind   catalog.Kind
	values [][]float64
	pos    int
	cur    []float64
}

func (s *source) Inputs(data signal.Signals[[]float64]) error {
	if len(data) > 0 {
		return dos.InputsError(dos.ErrUnknownSignal)
	}
	return nil
}

func (s *source) Step() error {
	return dos.StepIterator(func() bool {
		if s.pos >= len(s.values) {
			return false
		}
		s.cur = s.values[s.pos]
		s.pos++
		return true
	})
}

func (s *source) Outputs() (signal.Signals[[]float64], error) {
	return signal.Signals[[]float64]{signal.With(s.kind, s.cur)}, nil
}

func (s *source) InputsTags() []signal.Tag  { return nil }
func (s *source) OutputsTags() []signal.Tag { return signal.Tags(s.kind) }

// scaler multiplies in by factor into out. It scribbles over its input to
// prove the engine hands it a copy.
type scaler struct {
	in, out catalog.Kind
	factor  float64
	cur     signal.Vector
	absent  int
}

func newScaler(in, out catalog.Kind, factor float64) *scaler {
	return &scaler{in: in, out: out, factor: factor, cur: signal.New[[]float64](out)}
}

func (s *scaler) Inputs(data signal.Signals[[]float64]) error {
	for _, io := range data {
		if io.Kind() != s.in {
			return dos.InputsError(dos.ErrUnknownSignal)
		}
		v, ok := io.Get()
		if !ok {
			s.absent++
			continue
		}
		s.cur = signal.RetagWith(signal.NewTag(s.out), append([]float64(nil), v...))
		for i := range v {
			v[i] = -1
		}
	}
	return nil
}

func (s *scaler) Step() error {
	if s.cur.Has() {
		return signal.Scale(&s.cur, s.factor)
	}
	return nil
}

func (s *scaler) Outputs() (signal.Signals[[]float64], error) {
	if !s.cur.Has() {
		return nil, nil
	}
	return signal.Signals[[]float64]{s.cur}, nil
}

func (s *scaler) InputsTags() []signal.Tag  { return signal.Tags(s.in) }
func (s *scaler) OutputsTags() []signal.Tag { return signal.Tags(s.out) }

// sink accepts any signal and records the kinds it saw. It does not
// implement dos.Tagger.
type sink struct {
	seen [][]catalog.Kind
}

func (s *sink) Inputs(data signal.Signals[[]float64]) error {
	s.seen = append(s.seen, data.Kinds())
	return nil
}
func (s *sink) Step() error                                 { return nil }
func (s *sink) Outputs() (signal.Signals[[]float64], error) { return nil, nil }

// failing fails the given phase at tick failAt.
type failing struct {
	phase  dos.Phase
	failAt int
	ticks  int
}

var errBoom = errors.New("boom")

func (f *failing) Inputs(signal.Signals[[]float64]) error {
	f.ticks++
	if f.phase == dos.PhaseInputs && f.ticks == f.failAt {
		return errBoom
	}
	return nil
}

func (f *failing) Step() error {
	if f.phase == dos.PhaseStep && f.ticks == f.failAt {
		return errBoom
	}
	return nil
}

func (f *failing) Outputs() (signal.Signals[[]float64], error) {
	if f.phase == dos.PhaseOutputs && f.ticks == f.failAt {
		return nil, errBoom
	}
	return nil, nil
}

type recordedTick struct {
	runID   string
	tick    int64
	records []StageRecord
}

type memRecorder struct {
	ticks []recordedTick
	err   error
}

func (r *memRecorder) RecordTick(_ context.Context, runID string, tick int64, records []StageRecord) error {
	if r.err != nil {
		return r.err
	}
	r.ticks = append(r.ticks, recordedTick{runID: runID, tick: tick, records: records})
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
