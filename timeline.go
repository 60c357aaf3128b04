package windowz

import (
	"iter"
	"time"

	"github.com/google/btree"
)

// Timeline is a windowed sequence ordered by event time rather than
// insertion order. Entries are kept in a B-tree keyed on their timestamp, so
// out-of-order arrivals slot into place, observations yield values in
// event-time order, and eviction removes an aged prefix instead of scanning
// the whole collection.
type Timeline[T any] struct {
	clock   Clock
	entries *btree.BTreeG[timelineEntry[T]]
	seq     uint64
	window  time.Duration
}

// timelineEntry orders by timestamp with an insertion serial as tiebreaker,
// so entries sharing an instant coexist and stay in arrival order.
type timelineEntry[T any] struct {
	at  time.Time
	seq uint64
	val T
}

// NewTimeline creates a windowed timeline that retains pushed values for the
// given duration, ordered by their timestamps.
//
// When to use:
//   - Recent-event caches fed by sources that deliver out of order
//   - Reconstructing event-time order from arrival order
//   - Windows over caller-supplied timestamps where eviction cost matters
//
// Example:
//
//	feed := windowz.NewTimeline[Event](time.Minute, windowz.RealClock)
//
//	// Arrival order does not matter; observation order is event time.
//	feed.PushAt(e2, e2.OccurredAt)
//	feed.PushAt(e1, e1.OccurredAt)
//
//	for e := range feed.All() {
//		apply(e)
//	}
//
// Parameters:
//   - window: How long a value stays visible after its timestamp (negative is clamped to 0)
//   - clock: Clock interface for time operations
func NewTimeline[T any](window time.Duration, clock Clock) *Timeline[T] {
	if window < 0 {
		window = 0
	}
	return &Timeline[T]{
		window: window,
		clock:  clock,
		entries: btree.NewG[timelineEntry[T]](2, func(a, b timelineEntry[T]) bool {
			if !a.at.Equal(b.at) {
				return a.at.Before(b.at)
			}
			return a.seq < b.seq
		}),
	}
}

// Push appends v stamped with the current clock reading.
func (tl *Timeline[T]) Push(v T) {
	tl.PushAt(v, tl.clock.Now())
}

// PushAt inserts v stamped with a caller-supplied instant, in O(log n). The
// timestamp is not validated; see Sequence.PushAt for the semantics of past
// and future stamps.
func (tl *Timeline[T]) PushAt(v T, at time.Time) {
	tl.seq++
	tl.entries.ReplaceOrInsert(timelineEntry[T]{at: at, seq: tl.seq, val: v})
}

// Len evicts expired entries and returns the number that survive.
func (tl *Timeline[T]) Len() int {
	tl.purge()
	return tl.entries.Len()
}

// Window returns the duration entries remain visible after their timestamp.
func (tl *Timeline[T]) Window() time.Duration {
	return tl.window
}

// All returns an iterator over the surviving values in ascending event-time
// order. Eviction runs each time the iterator is ranged. The iterator
// borrows the timeline: do not mutate the timeline while ranging.
func (tl *Timeline[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		tl.purge()
		tl.entries.Ascend(func(e timelineEntry[T]) bool {
			return yield(e.val)
		})
	}
}

// Drain evicts expired entries, then moves the surviving values out in
// ascending event-time order. The timeline is empty afterwards and may be
// reused.
func (tl *Timeline[T]) Drain() []T {
	tl.purge()
	out := make([]T, 0, tl.entries.Len())
	tl.entries.Ascend(func(e timelineEntry[T]) bool {
		out = append(out, e.val)
		return true
	})
	tl.entries.Clear(false)
	return out
}

// purge pops the tree minimum while it is expired. Entries are ordered by
// timestamp, so once the oldest survives the rest do too.
func (tl *Timeline[T]) purge() {
	now := tl.clock.Now()
	for {
		min, ok := tl.entries.Min()
		if !ok || live(now, min.at, tl.window) {
			return
		}
		tl.entries.DeleteMin()
	}
}
