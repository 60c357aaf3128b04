package windowz

import (
	"iter"
	"maps"
	"time"
)

// Set is a windowed set keyed on the (timestamp, value) pair. Uniqueness is
// over the pair, not the value alone: inserting the same value at two
// distinct instants produces two storage entries, and observations report
// storage entries except for Drain, which collapses duplicates. Iteration
// order is unspecified.
type Set[T comparable] struct {
	clock   Clock
	entries map[setEntry[T]]struct{}
	window  time.Duration
}

type setEntry[T comparable] struct {
	at  time.Time
	val T
}

// NewSet creates a windowed set that retains inserted values for the given
// duration. Like every collection in the package it purges lazily, at the
// head of each observation.
//
// When to use:
//   - Tracking distinct values seen within a recent interval
//   - Recent-membership checks with automatic expiry
//   - Feeding deduplicated batches downstream via Drain
//
// Example:
//
//	seen := windowz.NewSet[string](5*time.Minute, windowz.RealClock)
//
//	seen.Insert("client-a")
//	seen.Insert("client-b")
//
//	// Drain yields each distinct surviving value once and empties the set.
//	for _, id := range seen.Drain() {
//		notify(id)
//	}
//
// Parameters:
//   - window: How long an inserted value stays visible (negative is clamped to 0)
//   - clock: Clock interface for time operations
func NewSet[T comparable](window time.Duration, clock Clock) *Set[T] {
	if window < 0 {
		window = 0
	}
	return &Set[T]{
		window:  window,
		entries: make(map[setEntry[T]]struct{}),
		clock:   clock,
	}
}

// NewSetFrom creates a windowed set seeded with items. The clock is read
// once and every seed value shares that instant, so duplicate seeds collapse
// to a single entry and the whole batch expires together.
func NewSetFrom[T comparable](items []T, window time.Duration, clock Clock) *Set[T] {
	s := NewSet[T](window, clock)
	now := clock.Now()
	for _, v := range items {
		s.entries[setEntry[T]{at: now, val: v}] = struct{}{}
	}
	return s
}

// Insert adds v stamped with the current clock reading. A value already
// present under an earlier timestamp is not refreshed; the set simply holds
// both entries until they age out individually.
func (s *Set[T]) Insert(v T) {
	s.entries[setEntry[T]{at: s.clock.Now(), val: v}] = struct{}{}
}

// InsertAt adds v stamped with a caller-supplied instant. The timestamp is
// not validated; see Sequence.PushAt for the semantics of past and future
// stamps.
func (s *Set[T]) InsertAt(v T, at time.Time) {
	s.entries[setEntry[T]{at: at, val: v}] = struct{}{}
}

// Len evicts expired entries and returns the number of storage entries that
// survive. A value inserted twice within the window counts twice.
func (s *Set[T]) Len() int {
	s.purge()
	return len(s.entries)
}

// Window returns the duration entries remain visible after their timestamp.
func (s *Set[T]) Window() time.Duration {
	return s.window
}

// All returns an iterator over the surviving values in unspecified order,
// one yield per storage entry: a value present under several live timestamps
// is yielded once per timestamp. Eviction runs each time the iterator is
// ranged. The iterator borrows the set: do not mutate the set while ranging.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		s.purge()
		for e := range s.entries {
			if !yield(e.val) {
				return
			}
		}
	}
}

// Drain evicts expired entries, then moves the surviving values out with a
// fresh uniqueness pass: each distinct value appears once regardless of how
// many live timestamps it was stored under. Order is unspecified. The set is
// empty afterwards and may be reused.
func (s *Set[T]) Drain() []T {
	s.purge()
	uniq := make(map[T]struct{}, len(s.entries))
	out := make([]T, 0, len(s.entries))
	for e := range s.entries {
		if _, dup := uniq[e.val]; dup {
			continue
		}
		uniq[e.val] = struct{}{}
		out = append(out, e.val)
	}
	clear(s.entries)
	return out
}

// Clone returns a set with a copy of the storage, sharing the clock and
// window. Expired entries are copied as-is; they fall to the clone's first
// observation.
func (s *Set[T]) Clone() *Set[T] {
	return &Set[T]{
		window:  s.window,
		entries: maps.Clone(s.entries),
		clock:   s.clock,
	}
}

func (s *Set[T]) purge() {
	now := s.clock.Now()
	for e := range s.entries {
		if !live(now, e.at, s.window) {
			delete(s.entries, e)
		}
	}
}
