package signal

import (
	"fmt"

	"github.com/roach88/dosio/internal/catalog"
)

// Signals is an ordered collection of tagged signals.
//
// A nil Signals means "no signals this phase"; a non-nil empty one is present
// but empty. Kinds need not be unique, but lookups always resolve to the first
// kind-equal entry.
type Signals[T any] []IO[T]

// Find returns the index of the first entry kind-equal to k.
func (s Signals[T]) Find(k Tagged) (int, bool) {
	kind := k.Kind()
	for i := range s {
		if s[i].kind == kind {
			return i, true
		}
	}
	return -1, false
}

// Contains reports whether an entry kind-equal to k exists.
func (s Signals[T]) Contains(k Tagged) bool {
	_, ok := s.Find(k)
	return ok
}

// Lookup returns the first entry kind-equal to k.
//
// Every declared signal is expected to be present, so a miss is a
// programming error: Lookup panics rather than return an empty signal.
func (s Signals[T]) Lookup(k Tagged) IO[T] {
	return *s.Ptr(k)
}

// Ptr is the mutable form of Lookup. The pointer refers to the collection's
// backing array. It panics when no entry matches.
func (s Signals[T]) Ptr(k Tagged) *IO[T] {
	i, ok := s.Find(k)
	if !ok {
		panic(fmt.Sprintf("No %s entry in Signals", k.Kind()))
	}
	return &s[i]
}

// PopThese removes and returns one entry per requested kind, in request order.
//
// Removal is all-or-nothing: if any kind is absent PopThese returns
// (nil, false) and the collection is left exactly as it was. Requesting a
// kind twice consumes two distinct entries of that kind.
//
// Contrast with SwapThese, which silently skips kinds it cannot find.
func (s *Signals[T]) PopThese(kinds ...Tagged) (Signals[T], bool) {
	taken := make([]bool, len(*s))
	picked := make([]int, 0, len(kinds))
	for _, k := range kinds {
		kind := k.Kind()
		found := -1
		for i := range *s {
			if !taken[i] && (*s)[i].kind == kind {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		taken[found] = true
		picked = append(picked, found)
	}

	out := make(Signals[T], len(picked))
	for j, i := range picked {
		out[j] = (*s)[i]
	}
	kept := make(Signals[T], 0, len(*s)-len(picked))
	for i := range *s {
		if !taken[i] {
			kept = append(kept, (*s)[i])
		}
	}
	*s = kept
	return out, true
}

// PopThis removes and returns the first entry kind-equal to k.
func (s *Signals[T]) PopThis(k Tagged) (IO[T], bool) {
	out, ok := s.PopThese(k)
	if !ok {
		return IO[T]{}, false
	}
	return out[0], true
}

// SwapThese replaces, for each value, the first kind-equal entry with that
// value. Values without a match are ignored; length and order never change.
//
// Unlike PopThese this is lenient: a partially matching request still applies
// the replacements it can.
func (s Signals[T]) SwapThese(vals ...IO[T]) {
	for _, v := range vals {
		if i, ok := s.Find(v); ok {
			s[i] = v
		}
	}
}

// SwapThis replaces the first entry kind-equal to v with v.
func (s Signals[T]) SwapThis(v IO[T]) {
	s.SwapThese(v)
}

// Upsert replaces the first kind-equal entry or appends v when none exists.
func (s *Signals[T]) Upsert(v IO[T]) {
	if i, ok := s.Find(v); ok {
		(*s)[i] = v
		return
	}
	*s = append(*s, v)
}

// Tags returns the kind markers of the collection, in order.
func (s Signals[T]) Tags() []Tag {
	tags := make([]Tag, len(s))
	for i := range s {
		tags[i] = s[i].Tag()
	}
	return tags
}

// Kinds returns the kinds of the collection, in order.
func (s Signals[T]) Kinds() []catalog.Kind {
	kinds := make([]catalog.Kind, len(s))
	for i := range s {
		kinds[i] = s[i].kind
	}
	return kinds
}
