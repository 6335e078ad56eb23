// Package component provides reference dos components and the registry that
// builds them from scenario configuration.
//
// Every component works on []float64 payloads, implements dos.Tagger and
// rejects input kinds it did not declare.
//
//	playback  replays recorded series, one payload per tick
//	gain      out = gain * in
//	sum       out = a + b, or a - b
//	delay     out(t) = in(t-1)
//	monitor   running statistic of a signal
//
// Components are configured from YAML parameter blocks; kinds are written by
// catalog name.
package component
