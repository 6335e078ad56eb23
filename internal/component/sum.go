package component

import (
	"fmt"

	"github.com/roach88/dosio/internal/catalog"
	"github.com/roach88/dosio/internal/dos"
	"github.com/roach88/dosio/internal/engine"
	"github.com/roach88/dosio/internal/signal"
)

// SumConfig configures the sum component: Out = A + B, or A - B when Op is
// "sub".
type SumConfig struct {
	A   catalog.Kind `yaml:"a"`
	B   catalog.Kind `yaml:"b"`
	Out catalog.Kind `yaml:"out"`
	Op  string       `yaml:"op"`
}

// Sum combines two signals elementwise.
//
// Arithmetic failures (length mismatch) are not protocol errors: the output
// keeps the first operand and the failure is logged by the signal package.
type Sum struct {
	cfg  SumConfig
	a, b signal.Vector
	out  signal.Vector
	op   func(dst *signal.Vector, src signal.Vector) error
}

// NewSum builds a sum component from cfg.
func NewSum(cfg SumConfig) (*Sum, error) {
	if !cfg.A.Valid() || !cfg.B.Valid() || !cfg.Out.Valid() {
		return nil, invalid("sum needs a, b and out")
	}
	if cfg.A == cfg.B {
		return nil, invalid("sum operands must differ, got %s twice", cfg.A)
	}
	s := &Sum{
		cfg: cfg,
		a:   signal.New[[]float64](cfg.A),
		b:   signal.New[[]float64](cfg.B),
		out: signal.New[[]float64](cfg.Out),
	}
	switch cfg.Op {
	case "", "add":
		s.op = signal.AddAssign
	case "sub":
		s.op = signal.SubAssign
	default:
		return nil, invalid("unknown sum op %q", cfg.Op)
	}
	return s, nil
}

func newSum(params Params) (engine.Component, error) {
	var cfg SumConfig
	if err := params.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return NewSum(cfg)
}

// Inputs keeps the latest payload of each operand.
func (s *Sum) Inputs(data signal.Signals[[]float64]) error {
	return dos.RouteInputs(data, map[catalog.Kind]dos.Handler[[]float64]{
		s.cfg.A: func(v []float64) error { s.a.Set(v); return nil },
		s.cfg.B: func(v []float64) error { s.b.Set(v); return nil },
	})
}

// Step combines the operands. The output is absent until both have arrived.
func (s *Sum) Step() error {
	av, aok := s.a.Get()
	bv, bok := s.b.Get()
	if !aok || !bok {
		s.out.Clear()
		return nil
	}
	out := signal.RetagWith(s.out, append([]float64(nil), av...))
	_ = s.op(&out, signal.RetagWith(s.out, bv))
	s.out = out
	return nil
}

// Outputs returns the combined signal.
func (s *Sum) Outputs() (signal.Signals[[]float64], error) {
	return signal.Signals[[]float64]{s.out}, nil
}

// InputsTags returns the two operand kinds.
func (s *Sum) InputsTags() []signal.Tag { return signal.Tags(s.cfg.A, s.cfg.B) }

// OutputsTags returns the output kind.
func (s *Sum) OutputsTags() []signal.Tag { return signal.Tags(s.cfg.Out) }
