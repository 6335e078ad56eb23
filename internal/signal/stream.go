package signal

import "github.com/roach88/dosio/internal/catalog"

// Stream is a finite, stateful, non-restartable sequence of values.
// Next returns false once the sequence is exhausted and keeps returning false.
type Stream[T any] interface {
	Next() (T, bool)
}

// StreamOf wraps s as the payload of a signal of kind k.
func StreamOf[T any](k catalog.Kind, s Stream[T]) IO[Stream[T]] {
	return With[Stream[T]](k, s)
}

// PullNext draws one value from the stream carried by from and wraps it in a
// signal of the same kind. It returns false when the payload is absent or the
// stream is exhausted.
func PullNext[T any](from *IO[Stream[T]]) (IO[T], bool) {
	s := from.Ref()
	if s == nil || *s == nil {
		return IO[T]{}, false
	}
	v, ok := (*s).Next()
	if !ok {
		return IO[T]{}, false
	}
	return With(from.kind, v), true
}

// SliceStream yields the elements of a slice in order.
type SliceStream[T any] struct {
	items []T
	pos   int
}

// NewSliceStream returns a stream over items. The slice is not copied.
func NewSliceStream[T any](items ...T) *SliceStream[T] {
	return &SliceStream[T]{items: items}
}

func (s *SliceStream[T]) Next() (T, bool) {
	if s.pos >= len(s.items) {
		var zero T
		return zero, false
	}
	v := s.items[s.pos]
	s.pos++
	return v, true
}

// Remaining returns how many values are left.
func (s *SliceStream[T]) Remaining() int {
	return len(s.items) - s.pos
}

// FuncStream adapts a generator function to Stream.
type FuncStream[T any] func() (T, bool)

func (f FuncStream[T]) Next() (T, bool) {
	return f()
}
