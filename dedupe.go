package windowz

import (
	"iter"
	"time"
)

// Dedupe tracks first sightings of items over a sliding window. The keyFunc
// extracts a comparable key from each item, so element types that are not
// themselves comparable can still be deduplicated. One record is kept per
// key: a re-sight within the window does not refresh the record, and a key
// becomes reportable again only after its original sighting ages out.
type Dedupe[T any, K comparable] struct {
	keyFunc func(T) K
	seen    map[K]time.Time
	clock   Clock
	window  time.Duration
}

// NewDedupe creates a windowed first-seen tracker. The keyFunc extracts the
// deduplication key from each item; the window determines how long a
// sighting suppresses repeats.
//
// When to use:
//   - Suppressing duplicate events or notifications over a recent interval
//   - Idempotency checks keyed on request or message IDs
//   - Alert storm damping
//
// Example:
//
//	// Deduplicate events by ID with 5-minute memory
//	dedupe := windowz.NewDedupe(func(e Event) string {
//		return e.ID
//	}, 5*time.Minute, windowz.RealClock)
//
//	for e := range events {
//		if dedupe.Seen(e) {
//			continue
//		}
//		handle(e)
//	}
//
// Parameters:
//   - keyFunc: Extracts a comparable key from each item
//   - window: How long a sighting suppresses repeats (negative is clamped to 0)
//   - clock: Clock interface for time operations
//
// With a zero window nothing is ever suppressed: every sighting is a first
// sighting.
func NewDedupe[T any, K comparable](keyFunc func(T) K, window time.Duration, clock Clock) *Dedupe[T, K] {
	if window < 0 {
		window = 0
	}
	return &Dedupe[T, K]{
		keyFunc: keyFunc,
		window:  window,
		seen:    make(map[K]time.Time),
		clock:   clock,
	}
}

// Seen reports whether the item's key has a live sighting, recording the
// current clock reading as its first sighting when it does not. The check is
// O(1): only the item's own record is examined and, if stale, replaced.
func (d *Dedupe[T, K]) Seen(item T) bool {
	return d.SeenAt(item, d.clock.Now())
}

// SeenAt is Seen with a caller-supplied instant for the recorded sighting.
// Liveness of an existing record is still judged against the clock, exactly
// as eviction is everywhere else in the package; the instant only stamps the
// new record. A stamp already older than the window therefore suppresses
// nothing beyond the current call.
func (d *Dedupe[T, K]) SeenAt(item T, at time.Time) bool {
	key := d.keyFunc(item)
	if prev, ok := d.seen[key]; ok && live(d.clock.Now(), prev, d.window) {
		return true
	}
	d.seen[key] = at
	return false
}

// Contains reports whether the item's key has a live sighting without
// recording anything. A stale record found on the way is dropped.
func (d *Dedupe[T, K]) Contains(item T) bool {
	key := d.keyFunc(item)
	prev, ok := d.seen[key]
	if !ok {
		return false
	}
	if !live(d.clock.Now(), prev, d.window) {
		delete(d.seen, key)
		return false
	}
	return true
}

// Forget removes the item's key so its next sighting reports unseen, window
// or not.
func (d *Dedupe[T, K]) Forget(item T) {
	delete(d.seen, d.keyFunc(item))
}

// Len prunes stale records and returns the number of live sightings.
func (d *Dedupe[T, K]) Len() int {
	d.prune()
	return len(d.seen)
}

// Keys returns an iterator over the keys with live sightings, in unspecified
// order. Stale records are pruned each time the iterator is ranged. The
// iterator borrows the tracker: do not mutate it while ranging.
func (d *Dedupe[T, K]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		d.prune()
		for k := range d.seen {
			if !yield(k) {
				return
			}
		}
	}
}

// Window returns the duration a sighting suppresses repeats.
func (d *Dedupe[T, K]) Window() time.Duration {
	return d.window
}

// prune drops every record whose age meets or exceeds the window. Seen and
// Contains drop stale records individually; churn-heavy callers that rarely
// observe should call Len or Keys periodically to bound memory, the same
// advice lazy eviction gives every collection here.
func (d *Dedupe[T, K]) prune() {
	now := d.clock.Now()
	for key, at := range d.seen {
		if !live(now, at, d.window) {
			delete(d.seen, key)
		}
	}
}
