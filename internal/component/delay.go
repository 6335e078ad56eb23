package component

import (
	"fmt"

	"github.com/roach88/dosio/internal/catalog"
	"github.com/roach88/dosio/internal/dos"
	"github.com/roach88/dosio/internal/engine"
	"github.com/roach88/dosio/internal/signal"
)

// DelayPair delays In into Out. Initial, when set, is emitted on the first
// tick; otherwise Out starts absent.
type DelayPair struct {
	In      catalog.Kind `yaml:"in"`
	Out     catalog.Kind `yaml:"out"`
	Initial []float64    `yaml:"initial"`
}

// DelayConfig configures the delay component.
type DelayConfig struct {
	Pairs []DelayPair `yaml:"pairs"`
}

// Delay is a unit delay: each output carries the payload its input had on
// the previous tick. An input missing on one tick is a missing output on the
// next.
type Delay struct {
	pairs    []DelayPair
	incoming signal.Signals[[]float64] // this tick's inputs, kinds are In
	pending  signal.Signals[[]float64] // last tick's inputs, kinds are In
	out      signal.Signals[[]float64] // kinds are Out
}

// NewDelay builds a delay component from cfg.
func NewDelay(cfg DelayConfig) (*Delay, error) {
	if len(cfg.Pairs) == 0 {
		return nil, invalid("delay needs at least one pair")
	}
	d := &Delay{pairs: append([]DelayPair(nil), cfg.Pairs...)}
	ins := make(map[catalog.Kind]bool)
	for i, p := range d.pairs {
		if !p.In.Valid() || !p.Out.Valid() {
			return nil, invalid("pair %d needs both in and out", i)
		}
		if p.In == p.Out {
			return nil, invalid("pair %d delays %s onto itself", i, p.In)
		}
		if ins[p.In] {
			return nil, invalid("input %s delayed twice", p.In)
		}
		ins[p.In] = true

		pending := signal.New[[]float64](p.In)
		if p.Initial != nil {
			pending.Set(append([]float64(nil), p.Initial...))
		}
		d.pending = append(d.pending, pending)
		d.out = append(d.out, signal.New[[]float64](p.Out))
	}
	d.incoming = d.absentInputs()
	return d, nil
}

func newDelay(params Params) (engine.Component, error) {
	var cfg DelayConfig
	if err := params.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return NewDelay(cfg)
}

// Inputs collects this tick's payloads. Absent payloads are skipped.
func (d *Delay) Inputs(data signal.Signals[[]float64]) error {
	for _, io := range data {
		i, ok := d.incoming.Find(io)
		if !ok {
			return dos.InputsError(fmt.Errorf("%w: %s", dos.ErrUnknownSignal, io.Kind()))
		}
		if io.Has() {
			d.incoming[i] = io
		}
	}
	return nil
}

// Step releases the payloads collected on the previous tick.
func (d *Delay) Step() error {
	for i := range d.pairs {
		d.out[i] = signal.Retag[[]float64](d.out[i])
		if v, ok := d.pending[i].Get(); ok {
			d.out[i].Set(v)
		}
	}
	d.pending = d.incoming
	d.incoming = d.absentInputs()
	return nil
}

// Outputs returns a copy of the delayed signals, in pair order.
func (d *Delay) Outputs() (signal.Signals[[]float64], error) {
	return append(signal.Signals[[]float64](nil), d.out...), nil
}

// InputsTags lists the input kinds, in pair order.
func (d *Delay) InputsTags() []signal.Tag { return d.pending.Tags() }

// OutputsTags lists the output kinds, in pair order.
func (d *Delay) OutputsTags() []signal.Tag { return d.out.Tags() }

func (d *Delay) absentInputs() signal.Signals[[]float64] {
	in := make(signal.Signals[[]float64], len(d.pairs))
	for i, p := range d.pairs {
		in[i] = signal.New[[]float64](p.In)
	}
	return in
}
