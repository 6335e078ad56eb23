package component

import (
	"fmt"

	"github.com/roach88/dosio/internal/catalog"
	"github.com/roach88/dosio/internal/dos"
	"github.com/roach88/dosio/internal/engine"
	"github.com/roach88/dosio/internal/signal"
)

// GainPair scales In into Out.
type GainPair struct {
	In   catalog.Kind `yaml:"in"`
	Out  catalog.Kind `yaml:"out"`
	Gain float64      `yaml:"gain"`
}

// GainConfig configures the gain component.
type GainConfig struct {
	Pairs []GainPair `yaml:"pairs"`
}

// Gain multiplies each configured input by a constant. Outputs stay absent
// until their input has been received.
type Gain struct {
	pairs  []GainPair
	latest map[catalog.Kind][]float64
	out    signal.Signals[[]float64]
}

// NewGain builds a gain component from cfg.
func NewGain(cfg GainConfig) (*Gain, error) {
	if len(cfg.Pairs) == 0 {
		return nil, invalid("gain needs at least one pair")
	}
	outs := make(map[catalog.Kind]bool, len(cfg.Pairs))
	for i, p := range cfg.Pairs {
		if !p.In.Valid() || !p.Out.Valid() {
			return nil, invalid("pair %d needs both in and out", i)
		}
		if outs[p.Out] {
			return nil, invalid("output %s produced twice", p.Out)
		}
		outs[p.Out] = true
	}
	g := &Gain{
		pairs:  append([]GainPair(nil), cfg.Pairs...),
		latest: make(map[catalog.Kind][]float64),
	}
	for _, p := range g.pairs {
		g.out = append(g.out, signal.New[[]float64](p.Out))
	}
	return g, nil
}

func newGain(params Params) (engine.Component, error) {
	var cfg GainConfig
	if err := params.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return NewGain(cfg)
}

// Inputs keeps the latest payload of every input kind.
func (g *Gain) Inputs(data signal.Signals[[]float64]) error {
	handlers := make(map[catalog.Kind]dos.Handler[[]float64], len(g.pairs))
	for _, p := range g.pairs {
		in := p.In
		handlers[in] = func(v []float64) error {
			g.latest[in] = v
			return nil
		}
	}
	return dos.RouteInputs(data, handlers)
}

// Step scales each held input into its output.
func (g *Gain) Step() error {
	for i, p := range g.pairs {
		v, ok := g.latest[p.In]
		if !ok {
			continue
		}
		out := signal.With(p.Out, append([]float64(nil), v...))
		// Scale only fails on an absent payload, which cannot happen here.
		_ = signal.Scale(&out, p.Gain)
		g.out[i] = out
	}
	return nil
}

// Outputs returns a copy of the scaled signals, in pair order.
func (g *Gain) Outputs() (signal.Signals[[]float64], error) {
	return append(signal.Signals[[]float64](nil), g.out...), nil
}

// InputsTags lists the distinct input kinds.
func (g *Gain) InputsTags() []signal.Tag {
	var tags []signal.Tag
	seen := make(map[catalog.Kind]bool)
	for _, p := range g.pairs {
		if !seen[p.In] {
			seen[p.In] = true
			tags = append(tags, signal.NewTag(p.In))
		}
	}
	return tags
}

// OutputsTags lists the output kinds, in pair order.
func (g *Gain) OutputsTags() []signal.Tag {
	return g.out.Tags()
}
