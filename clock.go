package windowz

import "github.com/zoobzio/clockz"

// Clock provides time operations for deterministic testing.
type Clock = clockz.Clock

// RealClock is the default Clock using standard time.
var RealClock Clock = clockz.RealClock
