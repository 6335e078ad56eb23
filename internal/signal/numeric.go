package signal

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/roach88/dosio/internal/catalog"
)

// Vector is a signal carrying physical values.
type Vector = IO[[]float64]

// Statistics over an absent payload are NaN, never an error: "no data"
// propagates silently through reductions. An empty payload divides by zero
// and is NaN as well, except SumSquared which is 0.

// SumSquared returns the sum of squared payload elements.
func SumSquared(v Vector) float64 {
	values, ok := v.Get()
	if !ok {
		return math.NaN()
	}
	var sum float64
	for _, x := range values {
		sum += x * x
	}
	return sum
}

// MeanSumSquared returns the mean of squared payload elements.
func MeanSumSquared(v Vector) float64 {
	values, ok := v.Get()
	if !ok {
		return math.NaN()
	}
	return SumSquared(v) / float64(len(values))
}

// Mean returns the arithmetic mean of the payload.
func Mean(v Vector) float64 {
	values, ok := v.Get()
	if !ok {
		return math.NaN()
	}
	var sum float64
	for _, x := range values {
		sum += x
	}
	return sum / float64(len(values))
}

// Var returns the population variance (1/n normalization) of the payload.
func Var(v Vector) float64 {
	values, ok := v.Get()
	if !ok {
		return math.NaN()
	}
	n := float64(len(values))
	mean := Mean(v)
	var sum float64
	for _, x := range values {
		d := x - mean
		sum += d * d
	}
	return sum / n
}

// Std returns the population standard deviation of the payload.
func Std(v Vector) float64 {
	return math.Sqrt(Var(v))
}

// Cloned returns a copy of v whose payload does not share memory with v.
func Cloned(v Vector) Vector {
	values, ok := v.Get()
	if !ok {
		return New[[]float64](v.kind)
	}
	return With(v.kind, slices.Clone(values))
}

// ArithmeticError describes an elementwise operation that was skipped.
// The destination signal is left unchanged when one is returned.
type ArithmeticError struct {
	Op     string
	Kind   catalog.Kind
	Other  catalog.Kind
	Reason string
}

func (e *ArithmeticError) Error() string {
	if e.Other != catalog.Invalid && e.Other != e.Kind {
		return fmt.Sprintf("failed %s %s with %s: %s", e.Op, e.Kind, e.Other, e.Reason)
	}
	return fmt.Sprintf("failed %s %s: %s", e.Op, e.Kind, e.Reason)
}

// AddAssign adds src to dst elementwise.
//
// The operation is lenient: on kind mismatch, absent payloads or length
// mismatch dst is left untouched, the failure is logged and returned as an
// *ArithmeticError. Callers may ignore the error; it is never escalated to a
// protocol failure.
func AddAssign(dst *Vector, src Vector) error {
	return combine("adding", dst, src, func(x, y float64) float64 { return x + y })
}

// SubAssign subtracts src from dst elementwise. Failure policy as AddAssign.
func SubAssign(dst *Vector, src Vector) error {
	return combine("subtracting", dst, src, func(x, y float64) float64 { return x - y })
}

// Scale multiplies every payload element of dst by rhs. An absent payload is
// logged and reported as an *ArithmeticError.
func Scale(dst *Vector, rhs float64) error {
	values, ok := dst.Get()
	if !ok {
		return report(&ArithmeticError{Op: "scaling", Kind: dst.kind, Reason: "payload absent"})
	}
	out := make([]float64, len(values))
	for i, x := range values {
		out[i] = x * rhs
	}
	dst.Set(out)
	return nil
}

func combine(op string, dst *Vector, src Vector, f func(x, y float64) float64) error {
	fail := func(reason string) error {
		return report(&ArithmeticError{Op: op, Kind: dst.kind, Other: src.kind, Reason: reason})
	}
	if !KindEqual(dst, src) {
		return fail("kind mismatch")
	}
	x, ok := dst.Get()
	if !ok {
		return fail("payload absent")
	}
	y, ok := src.Get()
	if !ok {
		return fail("operand payload absent")
	}
	if len(x) != len(y) {
		return fail(fmt.Sprintf("length mismatch %d != %d", len(x), len(y)))
	}
	out := make([]float64, len(x))
	for i := range x {
		out[i] = f(x[i], y[i])
	}
	dst.Set(out)
	return nil
}

func report(err *ArithmeticError) error {
	slog.Warn("signal arithmetic skipped",
		"op", err.Op,
		"kind", err.Kind.String(),
		"reason", err.Reason,
	)
	return err
}
