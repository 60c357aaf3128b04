package windowz

import (
	"slices"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func TestSequence_AllFresh(t *testing.T) {
	clock := clockz.NewFakeClock()
	seq := NewSequence[string](100*time.Millisecond, clock)

	seq.Push("a")
	seq.Push("b")
	clock.Advance(10 * time.Millisecond)

	if got := seq.Len(); got != 2 {
		t.Errorf("expected 2 live entries, got %d", got)
	}
	if got := slices.Collect(seq.All()); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %v", got)
	}
}

func TestSequence_PartialExpiry(t *testing.T) {
	clock := clockz.NewFakeClock()
	seq := NewSequence[string](100*time.Millisecond, clock)

	seq.Push("a")
	clock.Advance(80 * time.Millisecond)
	seq.Push("b")
	clock.Advance(40 * time.Millisecond)

	// "a" is 120ms old, "b" is 40ms old.
	if got := seq.Len(); got != 1 {
		t.Errorf("expected 1 live entry, got %d", got)
	}
	if got := slices.Collect(seq.All()); !slices.Equal(got, []string{"b"}) {
		t.Errorf("expected [b], got %v", got)
	}
}

func TestSequence_ExplicitPastTimestamp(t *testing.T) {
	clock := clockz.NewFakeClock()
	seq := NewSequence[string](100*time.Millisecond, clock)

	seq.PushAt("old", clock.Now().Add(-200*time.Millisecond))
	seq.Push("new")

	if got := seq.Len(); got != 1 {
		t.Errorf("expected 1 live entry, got %d", got)
	}
	if got := slices.Collect(seq.All()); !slices.Equal(got, []string{"new"}) {
		t.Errorf("expected [new], got %v", got)
	}
}

func TestSequence_FutureTimestamp(t *testing.T) {
	clock := clockz.NewFakeClock()
	seq := NewSequence[int](100*time.Millisecond, clock)

	// A stamp ahead of the clock has age zero until the clock catches up.
	seq.PushAt(1, clock.Now().Add(50*time.Millisecond))

	if got := seq.Len(); got != 1 {
		t.Errorf("expected future-stamped entry to be live, got %d", got)
	}

	clock.Advance(149 * time.Millisecond)
	if got := seq.Len(); got != 1 {
		t.Errorf("expected entry still live just before expiry, got %d", got)
	}

	clock.Advance(1 * time.Millisecond)
	if got := seq.Len(); got != 0 {
		t.Errorf("expected entry evicted at window boundary, got %d", got)
	}
}

func TestSequence_OrderPreserved(t *testing.T) {
	clock := clockz.NewFakeClock()
	seq := NewSequence[int](100*time.Millisecond, clock)

	for i := 1; i <= 5; i++ {
		seq.Push(i)
		clock.Advance(10 * time.Millisecond)
	}

	// 40ms have passed since the last push; everything survives.
	want := []int{1, 2, 3, 4, 5}
	if got := slices.Collect(seq.All()); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	// Expire the first three and check survivors keep their order.
	clock.Advance(35 * time.Millisecond)
	want = []int{4, 5}
	if got := slices.Collect(seq.All()); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSequence_IdempotentPurge(t *testing.T) {
	clock := clockz.NewFakeClock()
	seq := NewSequence[int](100*time.Millisecond, clock)

	seq.Push(1)
	clock.Advance(60 * time.Millisecond)
	seq.Push(2)

	first := slices.Collect(seq.All())
	second := slices.Collect(seq.All())
	if !slices.Equal(first, second) {
		t.Errorf("back-to-back observations differ: %v then %v", first, second)
	}
	if got := seq.Len(); got != len(second) {
		t.Errorf("Len disagrees with iteration: %d vs %d", got, len(second))
	}
}

func TestSequence_ExactWindowBoundary(t *testing.T) {
	clock := clockz.NewFakeClock()
	seq := NewSequence[string](100*time.Millisecond, clock)

	seq.Push("edge")
	clock.Advance(99 * time.Millisecond)
	if got := seq.Len(); got != 1 {
		t.Errorf("expected entry live at 99ms, got %d", got)
	}

	// An age exactly equal to the window is expired: the contract is
	// now - t < window, strictly.
	clock.Advance(1 * time.Millisecond)
	if got := seq.Len(); got != 0 {
		t.Errorf("expected entry expired at exactly 100ms, got %d", got)
	}
}

func TestSequence_ZeroWindow(t *testing.T) {
	clock := clockz.NewFakeClock()
	seq := NewSequence[string](0, clock)

	seq.Push("a")
	if got := seq.Len(); got != 0 {
		t.Errorf("expected zero-window sequence to be empty, got %d", got)
	}
	if got := slices.Collect(seq.All()); len(got) != 0 {
		t.Errorf("expected empty iteration, got %v", got)
	}

	// Even future stamps are invisible with a zero window.
	seq.PushAt("b", clock.Now().Add(time.Hour))
	if got := seq.Len(); got != 0 {
		t.Errorf("expected future stamp invisible with zero window, got %d", got)
	}
}

func TestSequence_NegativeWindowClamped(t *testing.T) {
	clock := clockz.NewFakeClock()
	seq := NewSequence[int](-time.Second, clock)

	if got := seq.Window(); got != 0 {
		t.Errorf("expected negative window clamped to 0, got %v", got)
	}
	seq.Push(1)
	if got := seq.Len(); got != 0 {
		t.Errorf("expected clamped sequence to be empty, got %d", got)
	}
}

func TestSequence_Drain(t *testing.T) {
	clock := clockz.NewFakeClock()
	seq := NewSequence[string](100*time.Millisecond, clock)

	seq.Push("a")
	clock.Advance(80 * time.Millisecond)
	seq.Push("b")
	seq.Push("c")
	clock.Advance(40 * time.Millisecond)

	got := seq.Drain()
	if !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("expected drain [b c], got %v", got)
	}

	// Drain consumes: the sequence is empty afterwards but reusable.
	if got := seq.Len(); got != 0 {
		t.Errorf("expected empty sequence after drain, got %d", got)
	}
	seq.Push("d")
	if got := slices.Collect(seq.All()); !slices.Equal(got, []string{"d"}) {
		t.Errorf("expected sequence reusable after drain, got %v", got)
	}
}

func TestSequence_DrainEmpty(t *testing.T) {
	clock := clockz.NewFakeClock()
	seq := NewSequence[string](100*time.Millisecond, clock)

	if got := seq.Drain(); len(got) != 0 {
		t.Errorf("expected empty drain, got %v", got)
	}
}

func TestSequence_AllReusable(t *testing.T) {
	clock := clockz.NewFakeClock()
	seq := NewSequence[int](100*time.Millisecond, clock)

	seq.Push(1)
	all := seq.All()

	if got := len(slices.Collect(all)); got != 1 {
		t.Errorf("expected 1 value on first range, got %d", got)
	}

	// Ranging again is a fresh observation: eviction re-runs.
	clock.Advance(150 * time.Millisecond)
	if got := len(slices.Collect(all)); got != 0 {
		t.Errorf("expected 0 values after expiry, got %d", got)
	}
}

func TestSequence_AllEarlyBreak(t *testing.T) {
	clock := clockz.NewFakeClock()
	seq := NewSequence[int](100*time.Millisecond, clock)

	for i := 0; i < 10; i++ {
		seq.Push(i)
	}

	var got []int
	for v := range seq.All() {
		got = append(got, v)
		if len(got) == 3 {
			break
		}
	}
	if !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("expected [0 1 2], got %v", got)
	}
}

func TestSequence_NoEvictionOnPush(t *testing.T) {
	clock := clockz.NewFakeClock()
	seq := NewSequence[int](100*time.Millisecond, clock)

	seq.Push(1)
	clock.Advance(200 * time.Millisecond)

	// Writes never purge: the expired entry sits in storage until the
	// next observation.
	seq.Push(2)
	if got := len(seq.entries); got != 2 {
		t.Errorf("expected 2 storage entries before observation, got %d", got)
	}

	if got := seq.Len(); got != 1 {
		t.Errorf("expected 1 live entry after observation, got %d", got)
	}
}

func TestSequence_Window(t *testing.T) {
	seq := NewSequence[int](42*time.Millisecond, clockz.NewFakeClock())
	if got := seq.Window(); got != 42*time.Millisecond {
		t.Errorf("expected window 42ms, got %v", got)
	}
}
