package windowz

import "time"

// live reports whether an entry stamped at is still inside the window as of
// now. Every collection in the package routes its eviction decision through
// this predicate.
func live(now, at time.Time, window time.Duration) bool {
	return elapsedSince(now, at) < window
}

// elapsedSince returns the duration between at and now, saturating at zero.
// Out-of-order readings and future timestamps never produce a negative age,
// so an entry stamped ahead of the clock counts as just inserted rather than
// expired.
func elapsedSince(now, at time.Time) time.Duration {
	d := now.Sub(at)
	if d < 0 {
		return 0
	}
	return d
}
