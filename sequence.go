package windowz

import (
	"iter"
	"slices"
	"time"
)

// Sequence is a windowed append-only sequence. Elements need no equality or
// hashing, duplicates are permitted, and surviving entries are observed in
// insertion order.
type Sequence[T any] struct {
	clock   Clock
	entries []seqEntry[T]
	window  time.Duration
}

type seqEntry[T any] struct {
	at  time.Time
	val T
}

// NewSequence creates a windowed sequence that retains pushed values for the
// given duration. Values are purged lazily: eviction runs when the sequence
// is observed, never when it is written, so an unobserved sequence grows
// until the next Len, All, or Drain call.
//
// When to use:
//   - Rolling windows of recent samples (latencies, readings, events)
//   - Computing statistics over the last N milliseconds of data
//   - Recent-history buffers where duplicates matter
//
// Example:
//
//	// Keep the last second of latency samples
//	window := windowz.NewSequence[time.Duration](time.Second, windowz.RealClock)
//
//	window.Push(42 * time.Millisecond)
//	window.Push(17 * time.Millisecond)
//
//	// Observation evicts anything older than a second, then yields
//	// survivors in insertion order.
//	for sample := range window.All() {
//		record(sample)
//	}
//
// Parameters:
//   - window: How long a pushed value stays visible (negative is clamped to 0)
//   - clock: Clock interface for time operations
//
// A zero window makes every observation see an empty sequence.
func NewSequence[T any](window time.Duration, clock Clock) *Sequence[T] {
	if window < 0 {
		window = 0
	}
	return &Sequence[T]{
		window: window,
		clock:  clock,
	}
}

// Push appends v stamped with the current clock reading. It never evicts.
func (s *Sequence[T]) Push(v T) {
	s.entries = append(s.entries, seqEntry[T]{at: s.clock.Now(), val: v})
}

// PushAt appends v stamped with a caller-supplied instant. The timestamp is
// not validated: a stamp older than the window is legal and simply falls to
// the next observation's eviction pass, and a future stamp counts as age
// zero until the clock catches up.
func (s *Sequence[T]) PushAt(v T, at time.Time) {
	s.entries = append(s.entries, seqEntry[T]{at: at, val: v})
}

// Len evicts expired entries and returns the number that survive.
func (s *Sequence[T]) Len() int {
	s.purge()
	return len(s.entries)
}

// Window returns the duration entries remain visible after their timestamp.
func (s *Sequence[T]) Window() time.Duration {
	return s.window
}

// All returns an iterator over the surviving values in insertion order.
// Eviction runs each time the iterator is ranged, so every range observes
// the window as of that moment. The iterator borrows the sequence: do not
// mutate the sequence while ranging.
func (s *Sequence[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		s.purge()
		for _, e := range s.entries {
			if !yield(e.val) {
				return
			}
		}
	}
}

// Drain evicts expired entries, then moves the surviving values out in
// insertion order. The sequence is empty afterwards and may be reused.
func (s *Sequence[T]) Drain() []T {
	s.purge()
	out := make([]T, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.val
	}
	s.entries = nil
	return out
}

// purge drops every entry whose age meets or exceeds the window. The clock
// is read once so the whole pass shares a single observation instant.
func (s *Sequence[T]) purge() {
	now := s.clock.Now()
	s.entries = slices.DeleteFunc(s.entries, func(e seqEntry[T]) bool {
		return !live(now, e.at, s.window)
	})
}
