package engine

import "sync/atomic"

// TickClock numbers the ticks of a run.
// Implemented by Clock (production) and testutil.DeterministicClock (tests).
type TickClock interface {
	Next() int64
	Current() int64
}

// Clock is a monotonic logical tick counter.
//
// Ticks are numbered from 1. Wall-clock time never enters a run, so a replay
// of the same scenario produces identical tick numbers.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations), though
// only the engine's driving goroutine advances it.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock whose first tick is 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock whose next tick is start+1.
// Used to continue numbering when a run is resumed.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next advances the clock and returns the new tick.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last tick handed out, 0 before the first.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
