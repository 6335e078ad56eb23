package component

import (
	"fmt"
	"math"

	"github.com/roach88/dosio/internal/catalog"
	"github.com/roach88/dosio/internal/dos"
	"github.com/roach88/dosio/internal/engine"
	"github.com/roach88/dosio/internal/signal"
)

// Statistics a monitor can compute on each payload.
var statistics = map[string]func(signal.Vector) float64{
	"mean":  signal.Mean,
	"var":   signal.Var,
	"std":   signal.Std,
	"ms":    signal.MeanSumSquared,
	"sumsq": signal.SumSquared,
	"rms": func(v signal.Vector) float64 {
		return math.Sqrt(signal.MeanSumSquared(v))
	},
}

// MonitorConfig configures the monitor component. Stat may be left empty:
// the monitor then accepts its input but fails to produce an output.
type MonitorConfig struct {
	In   catalog.Kind `yaml:"in"`
	Out  catalog.Kind `yaml:"out"`
	Stat string       `yaml:"stat"`
}

// Monitor reduces its input to a statistic every tick and keeps the running
// mean of that statistic over the run. Its output is [current, running mean].
//
// Ticks where the statistic is NaN, before the first input or on an empty
// payload, do not enter the running mean.
type Monitor struct {
	cfg  MonitorConfig
	stat func(signal.Vector) float64
	in   signal.Vector

	current float64
	mean    float64
	n       int
}

// NewMonitor builds a monitor from cfg.
func NewMonitor(cfg MonitorConfig) (*Monitor, error) {
	if !cfg.In.Valid() || !cfg.Out.Valid() {
		return nil, invalid("monitor needs in and out")
	}
	m := &Monitor{
		cfg:     cfg,
		in:      signal.New[[]float64](cfg.In),
		current: math.NaN(),
		mean:    math.NaN(),
	}
	if cfg.Stat != "" {
		stat, ok := statistics[cfg.Stat]
		if !ok {
			return nil, invalid("unknown statistic %q", cfg.Stat)
		}
		m.stat = stat
	}
	return m, nil
}

func newMonitor(params Params) (engine.Component, error) {
	var cfg MonitorConfig
	if err := params.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return NewMonitor(cfg)
}

// Inputs keeps the latest payload of the monitored kind.
func (m *Monitor) Inputs(data signal.Signals[[]float64]) error {
	return dos.RouteInputs(data, map[catalog.Kind]dos.Handler[[]float64]{
		m.cfg.In: func(v []float64) error { m.in.Set(v); return nil },
	})
}

// Step reduces the held payload and folds it into the running mean.
func (m *Monitor) Step() error {
	if m.stat == nil {
		return nil
	}
	m.current = m.stat(m.in)
	if math.IsNaN(m.current) {
		return nil
	}
	m.n++
	if m.n == 1 {
		m.mean = m.current
	} else {
		m.mean += (m.current - m.mean) / float64(m.n)
	}
	return nil
}

// Outputs returns [current, running mean] under the output kind.
func (m *Monitor) Outputs() (signal.Signals[[]float64], error) {
	if m.stat == nil {
		return nil, dos.OutputsError(fmt.Errorf("%w: no statistic accumulates into %s", dos.ErrNotConfigured, m.cfg.Out))
	}
	return signal.Signals[[]float64]{
		signal.With(m.cfg.Out, []float64{m.current, m.mean}),
	}, nil
}

// Samples returns how many ticks entered the running mean.
func (m *Monitor) Samples() int { return m.n }

// InputsTags returns the monitored kind.
func (m *Monitor) InputsTags() []signal.Tag { return signal.Tags(m.cfg.In) }

// OutputsTags returns the output kind.
func (m *Monitor) OutputsTags() []signal.Tag { return signal.Tags(m.cfg.Out) }
