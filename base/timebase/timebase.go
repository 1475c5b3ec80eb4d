package timebase

import (
	"time"
)

// LocalClock is a monotonic wall-clock source.
// Readings are only ever compared against each other, so the
// absolute value returned by Now carries no meaning on its own.
type LocalClock interface {
	Now() time.Time
}
