package windowz

import (
	"sort"
	"time"
)

// Counter counts events over a sliding window. It records one timestamp per
// event and reports how many fall inside the window, which is the shape a
// rate-limit decision needs: "how many times did this happen in the last D".
type Counter struct {
	clock  Clock
	stamps []time.Time
	window time.Duration
}

// NewCounter creates a windowed event counter.
//
// When to use:
//   - Rate-limit decision inputs (requests per client per interval)
//   - Rolling event rates for dashboards or health checks
//   - Threshold alerts ("more than N errors in the last minute")
//
// Example:
//
//	requests := windowz.NewCounter(time.Second, windowz.RealClock)
//
//	requests.Inc()
//	if requests.Count() > limit {
//		reject()
//	}
//
// Parameters:
//   - window: How long an event contributes to the count (negative is clamped to 0)
//   - clock: Clock interface for time operations
func NewCounter(window time.Duration, clock Clock) *Counter {
	if window < 0 {
		window = 0
	}
	return &Counter{
		window: window,
		clock:  clock,
	}
}

// Inc records one event at the current clock reading. Events are only ever
// stamped with the clock, so the recorded timestamps are non-decreasing;
// eviction relies on that ordering.
func (c *Counter) Inc() {
	c.stamps = append(c.stamps, c.clock.Now())
}

// Count evicts expired events and returns the number that remain in the
// window.
func (c *Counter) Count() int {
	c.purge()
	return len(c.stamps)
}

// Window returns the duration an event contributes to the count.
func (c *Counter) Window() time.Duration {
	return c.window
}

// purge drops the expired prefix. Because stamps are non-decreasing, the
// survivors are always a suffix: binary search finds the first live stamp
// and one copy discards everything before it.
func (c *Counter) purge() {
	now := c.clock.Now()
	idx := sort.Search(len(c.stamps), func(i int) bool {
		return live(now, c.stamps[i], c.window)
	})
	if idx == 0 {
		return
	}
	n := copy(c.stamps, c.stamps[idx:])
	clear(c.stamps[n:])
	c.stamps = c.stamps[:n]
}
