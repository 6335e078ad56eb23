package component

import (
	"fmt"

	"github.com/roach88/dosio/internal/catalog"
	"github.com/roach88/dosio/internal/dos"
	"github.com/roach88/dosio/internal/engine"
	"github.com/roach88/dosio/internal/signal"
)

// SeriesConfig is one recorded signal: a payload per tick.
type SeriesConfig struct {
	Kind   catalog.Kind `yaml:"kind"`
	Values [][]float64  `yaml:"values"`
}

// PlaybackConfig configures the playback component.
type PlaybackConfig struct {
	Series []SeriesConfig `yaml:"series"`
}

// Playback replays recorded series. The run is exhausted as soon as the
// shortest series ends.
type Playback struct {
	streams []signal.IO[signal.Stream[[]float64]]
	current signal.Signals[[]float64]
}

// NewPlayback builds a playback component from cfg.
func NewPlayback(cfg PlaybackConfig) (*Playback, error) {
	if len(cfg.Series) == 0 {
		return nil, invalid("playback needs at least one series")
	}
	p := &Playback{}
	seen := make(map[catalog.Kind]bool, len(cfg.Series))
	for i, s := range cfg.Series {
		if !s.Kind.Valid() {
			return nil, invalid("series %d has no kind", i)
		}
		if seen[s.Kind] {
			return nil, invalid("series %s given twice", s.Kind)
		}
		seen[s.Kind] = true
		p.streams = append(p.streams, signal.StreamOf[[]float64](s.Kind, signal.NewSliceStream(s.Values...)))
	}
	return p, nil
}

func newPlayback(params Params) (engine.Component, error) {
	var cfg PlaybackConfig
	if err := params.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return NewPlayback(cfg)
}

// Inputs accepts no signals.
func (p *Playback) Inputs(data signal.Signals[[]float64]) error {
	return dos.RouteInputs(data, nil)
}

// Step pulls the next payload of every series.
func (p *Playback) Step() error {
	next := make(signal.Signals[[]float64], 0, len(p.streams))
	for i := range p.streams {
		io, ok := signal.PullNext(&p.streams[i])
		if !ok {
			return dos.StepError(fmt.Errorf("%s: %w", p.streams[i].Kind(), dos.ErrExhausted))
		}
		next = append(next, io)
	}
	p.current = next
	return nil
}

// Outputs returns the payloads pulled by the last Step, nil before the first.
func (p *Playback) Outputs() (signal.Signals[[]float64], error) {
	return p.current, nil
}

// InputsTags is empty: playback takes no inputs.
func (p *Playback) InputsTags() []signal.Tag { return nil }

// OutputsTags lists the series kinds, in configuration order.
func (p *Playback) OutputsTags() []signal.Tag {
	tags := make([]signal.Tag, len(p.streams))
	for i := range p.streams {
		tags[i] = p.streams[i].Tag()
	}
	return tags
}
