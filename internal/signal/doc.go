// Package signal implements tagged signals: a catalog kind paired with an
// optional payload.
//
// IO[T] is the unit of exchange between simulation components. Its kind is
// fixed at construction; only the payload (or its type, through Retag) may
// change. Identity is the kind alone: KindEqual ignores payload value and
// payload type, so an IO[struct{}] marker can locate an IO[[]float64] value
// in a collection.
//
// Payload types in use across a pipeline:
//
//	struct{}          bare tag (see Tag)
//	int               index assignment (see Assign)
//	[]float64         physical values (see the numeric helpers)
//	Stream[T]         a lazy per-signal sequence (see PullNext)
//
// Signals[T] is an ordered collection with lookup, all-or-nothing removal
// (PopThese) and lenient replacement (SwapThese).
package signal
