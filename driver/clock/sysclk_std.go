//go:build !linux

package clock

import (
	"time"

	"go.uber.org/zap"

	"example.com/game-time/base/timebase"
)

type SystemClock struct {
	Log *zap.Logger
}

var _ timebase.LocalClock = (*SystemClock)(nil)

// Now returns the system time. The monotonic reading embedded by the
// runtime makes differences between readings step-free.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
