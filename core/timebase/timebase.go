// Package timebase holds the process-wide local clock and the
// reference instant that anchors time stamps. The reference instant is
// latched on first use, so all stamps produced afterwards measure
// elapsed time against the same epoch.
package timebase

import (
	"sync/atomic"
	"time"

	"example.com/game-time/base/timebase"
	"example.com/game-time/core/timeval"
)

var (
	lclk  atomic.Value
	epoch atomic.Pointer[time.Time]
)

// RegisterClock installs c as the process-wide local clock. It must be
// called exactly once, before the first call to Now.
func RegisterClock(c timebase.LocalClock) {
	if c == nil {
		panic("local clock must not be nil")
	}
	swapped := lclk.CompareAndSwap(nil, c)
	if !swapped {
		panic("local clock already registered")
	}
}

// Now returns the current time stamp: the elapsed time between the
// reference instant and the registered clock's current reading. The
// first call latches the reference instant, making its own stamp the
// zero stamp.
func Now() timeval.TimeStamp {
	c := lclk.Load().(timebase.LocalClock)
	if c == nil {
		panic("no local clock registered")
	}
	now := c.Now()
	d := now.Sub(latchEpoch(now))
	// A reading raced against the latch can be marginally earlier than
	// the latched instant.
	if d < 0 {
		d = 0
	}
	return timeval.FromObservedDuration(d)
}

// Epoch returns the reference instant, latching it from the registered
// clock if no stamp has been produced yet.
func Epoch() time.Time {
	c := lclk.Load().(timebase.LocalClock)
	if c == nil {
		panic("no local clock registered")
	}
	return latchEpoch(c.Now())
}

func latchEpoch(now time.Time) time.Time {
	if e := epoch.Load(); e != nil {
		return *e
	}
	epoch.CompareAndSwap(nil, &now)
	return *epoch.Load()
}
