package signal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/dosio/internal/catalog"
)

// ErrMissing matches every MissingError.
var ErrMissing = errors.New("signal payload missing")

// MissingError reports a signal whose payload was required but absent.
type MissingError struct {
	Kind catalog.Kind
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s is missing", e.Kind)
}

// Is makes errors.Is(err, ErrMissing) hold for any MissingError.
func (e *MissingError) Is(target error) bool {
	return target == ErrMissing
}

// Tagged is anything that carries a catalog kind. IO[T] for every T
// satisfies it, as does catalog.Kind itself.
type Tagged interface {
	Kind() catalog.Kind
}

// IO is a catalog kind with an optional payload of type T.
//
// The zero IO has the Invalid kind and no payload.
type IO[T any] struct {
	kind catalog.Kind
	data T
	ok   bool
}

// Tag is a signal used purely as a kind marker.
type Tag = IO[struct{}]

// New returns a signal of kind k with no payload.
func New[T any](k catalog.Kind) IO[T] {
	return IO[T]{kind: k}
}

// With returns a signal of kind k holding v.
func With[T any](k catalog.Kind, v T) IO[T] {
	return IO[T]{kind: k, data: v, ok: true}
}

// NewTag returns the marker for kind k.
func NewTag(k catalog.Kind) Tag {
	return Tag{kind: k}
}

// Tags returns one marker per kind, in order.
func Tags(kinds ...catalog.Kind) []Tag {
	tags := make([]Tag, len(kinds))
	for i, k := range kinds {
		tags[i] = NewTag(k)
	}
	return tags
}

// KindEqual reports whether a and b carry the same kind. Payloads, and the
// payload types, are not compared.
func KindEqual(a, b Tagged) bool {
	return a.Kind() == b.Kind()
}

// Retag returns a signal of the same kind as from with an absent payload of
// a different type. It converts between pipeline stages, e.g. an index-typed
// marker into a value-typed slot.
func Retag[T, U any](from IO[U]) IO[T] {
	return IO[T]{kind: from.kind}
}

// RetagWith is Retag followed by setting the payload to v.
func RetagWith[T, U any](from IO[U], v T) IO[T] {
	return IO[T]{kind: from.kind, data: v, ok: true}
}

// Assign sets the payload of an index signal to n, whatever it held before.
func Assign(io *IO[int], n int) {
	io.Set(n)
}

// Kind returns the catalog kind of the signal.
func (io IO[T]) Kind() catalog.Kind {
	return io.kind
}

// Name returns the catalog name of the signal's kind.
func (io IO[T]) Name() string {
	return io.kind.String()
}

// String implements fmt.Stringer. Only the kind is printed.
func (io IO[T]) String() string {
	return io.kind.String()
}

// Has reports whether the payload is present.
func (io IO[T]) Has() bool {
	return io.ok
}

// Get returns the payload and whether it is present.
func (io IO[T]) Get() (T, bool) {
	return io.data, io.ok
}

// Ref returns a pointer to the payload held by io, or nil when absent.
func (io *IO[T]) Ref() *T {
	if !io.ok {
		return nil
	}
	return &io.data
}

// Set replaces the payload.
func (io *IO[T]) Set(v T) {
	io.data = v
	io.ok = true
}

// Clear drops the payload, keeping the kind.
func (io *IO[T]) Clear() {
	var zero T
	io.data = zero
	io.ok = false
}

// Tag returns the marker of the signal's kind.
func (io IO[T]) Tag() Tag {
	return NewTag(io.kind)
}

// Result returns the payload, or a *MissingError naming the kind when absent.
func (io IO[T]) Result() (T, error) {
	if !io.ok {
		var zero T
		return zero, &MissingError{Kind: io.kind}
	}
	return io.data, nil
}

type ioJSON[T any] struct {
	Kind catalog.Kind `json:"kind"`
	Data *T           `json:"data"`
}

// MarshalJSON encodes the signal as {"kind": name, "data": payload|null}.
func (io IO[T]) MarshalJSON() ([]byte, error) {
	out := ioJSON[T]{Kind: io.kind}
	if io.ok {
		out.Data = &io.data
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (io *IO[T]) UnmarshalJSON(data []byte) error {
	var in ioJSON[T]
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	io.kind = in.Kind
	io.Clear()
	if in.Data != nil {
		io.Set(*in.Data)
	}
	return nil
}
