// Package testing provides test utilities for windowz.
package testing

import (
	"cmp"
	"iter"
	"slices"
	"time"

	windowz "github.com/zoobzio/windowz"
)

// AdvancingClock is a Clock whose time the test controls. The fake clocks
// used across the suite satisfy it.
type AdvancingClock interface {
	windowz.Clock
	Advance(d time.Duration)
}

// PushSpaced pushes values onto the sequence, advancing the clock by gap
// after each push. This is a shared utility for integration tests to avoid
// duplicating the push/advance scaffolding.
func PushSpaced[T any](seq *windowz.Sequence[T], clock AdvancingClock, gap time.Duration, values ...T) {
	for _, v := range values {
		seq.Push(v)
		clock.Advance(gap)
	}
}

// InsertSpaced inserts values into the set, advancing the clock by gap after
// each insert so every value lands on a distinct instant.
func InsertSpaced[T comparable](set *windowz.Set[T], clock AdvancingClock, gap time.Duration, values ...T) {
	for _, v := range values {
		set.Insert(v)
		clock.Advance(gap)
	}
}

// IncSpaced records n counter events, advancing the clock by gap after each.
func IncSpaced(counter *windowz.Counter, clock AdvancingClock, gap time.Duration, n int) {
	for i := 0; i < n; i++ {
		counter.Inc()
		clock.Advance(gap)
	}
}

// SortedValues collects an iterator into a sorted slice, for comparing
// collections whose iteration order is unspecified.
func SortedValues[T cmp.Ordered](it iter.Seq[T]) []T {
	out := slices.Collect(it)
	slices.Sort(out)
	return out
}
