// Package windowz provides generic in-memory collections bounded by a
// sliding time window: every stored element carries a timestamp, and entries
// older than a fixed duration are evicted lazily when the collection is
// observed.
//
// The core contract is shared by every collection in the package: an entry
// stamped t is visible to an observation at time now exactly when
// now − t < window. Eviction runs at the head of every observing operation
// (Len, All, Drain, membership checks) and never on insertion, so inserts
// stay O(1) and all eviction cost is paid at the point the caller already
// pays for a read.
//
// Basic usage:
//
//	seq := windowz.NewSequence[string](100*time.Millisecond, windowz.RealClock)
//
//	seq.Push("a")
//	seq.Push("b")
//
//	// Only entries younger than the window are visible.
//	for v := range seq.All() {
//		fmt.Println(v)
//	}
//
//	fmt.Println(seq.Len())
//
// The package provides collections for common rolling-window patterns:
//   - Sequence: append-only values in insertion order, duplicates allowed
//   - Set: unique (timestamp, value) entries, unordered
//   - Dedupe: first-seen tracking over a recent interval
//   - Counter: event counting for rate decisions
//   - Timeline: event-time ordered values, tolerant of out-of-order arrival
//
// Collections are single-owner data structures: they hold no locks, start no
// goroutines, and must not be used concurrently. Because eviction mutates
// storage, even read-only observations require exclusive access; callers that
// share a collection across goroutines wrap it in their own mutex.
//
// Time is always read through a Clock, so tests control eviction
// deterministically with a fake clock instead of sleeping.
package windowz
