//go:build linux

package clock

import (
	"time"

	"go.uber.org/zap"

	"golang.org/x/sys/unix"

	"example.com/game-time/base/timebase"
)

type SystemClock struct {
	Log *zap.Logger
}

var _ timebase.LocalClock = (*SystemClock)(nil)

// Now reads CLOCK_MONOTONIC directly, so readings are immune to wall
// clock steps. The returned value is boot-relative; only differences
// between readings are meaningful.
func (c *SystemClock) Now() time.Time {
	var ts unix.Timespec
	err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)
	if err != nil {
		c.Log.Fatal("unix.ClockGettime failed", zap.Error(err))
	}
	return time.Unix(ts.Unix())
}
