// Package engine drives a pipeline of dos components tick by tick.
//
// A pipeline is an ordered list of stages. Every tick the engine runs each
// stage once, in pipeline order, through dos.InStepOut:
//
//  1. The stage's inputs are taken from the signal bus. Stages implementing
//     dos.Tagger receive exactly the kinds they declare, with an absent
//     payload for kinds nothing has produced yet; other stages receive the
//     whole bus.
//  2. The stage's outputs are written back to the bus, replacing the
//     previous value of the same kind.
//
// The bus latches: a value stays visible until its kind is produced again,
// so a stage late in the pipeline feeds earlier stages on the next tick.
// Payloads are copied at every hand-off; components never share memory.
//
// Execution is single-threaded. Run checks its context between ticks and
// stops at the first protocol error. A Step failure wrapping
// dos.ErrExhausted ends the run normally.
//
// Completed ticks are reported to an optional Recorder, one call per tick,
// so a recorded run never holds a partial tick.
package engine
