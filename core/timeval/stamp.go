package timeval

import (
	"math"
	"time"

	"example.com/game-time/base/timemath"
)

// TimeStamp is a fixed point in time, stored as a non-negative
// nanosecond offset from a reference point. What the reference point
// is depends on how the stamp was created: clock-driven stamps are
// relative to the clock start, stamps from the timebase package are
// relative to the process-wide reference instant.
type TimeStamp struct {
	nanos int64
}

// Start returns the smallest possible time stamp, the reference point
// itself.
func Start() TimeStamp {
	return TimeStamp{}
}

// Never returns the largest possible time stamp. It is practically
// impossible to reach without artificially large time spans.
func Never() TimeStamp {
	return TimeStamp{nanos: math.MaxInt64}
}

// FromElapsed returns the stamp at the given nanosecond offset from
// the reference point. Reports false for negative offsets.
func FromElapsed(nanos int64) (TimeStamp, bool) {
	if nanos < 0 {
		return TimeStamp{}, false
	}
	return TimeStamp{nanos: nanos}, true
}

// StampFromDuration returns the stamp at the given offset from the
// reference point. Reports false for negative durations.
func StampFromDuration(d time.Duration) (TimeStamp, bool) {
	return FromElapsed(d.Nanoseconds())
}

// FromObservedDuration returns the stamp at the given offset from the
// reference point, where the offset was actually observed by the
// running process. Panics if the duration is negative or not
// representable; for an observed duration that would mean an uptime of
// roughly 292 years.
func FromObservedDuration(d time.Duration) TimeStamp {
	ts, ok := StampFromDuration(d)
	if !ok {
		impressiveUptime()
	}
	return ts
}

// SinceStart returns the span between the reference point and t.
func (t TimeStamp) SinceStart() TimeSpan {
	return TimeSpan(t.nanos)
}

// NanosSinceStart returns the nanosecond offset from the reference
// point.
func (t TimeStamp) NanosSinceStart() int64 {
	return t.nanos
}

// CheckedSub returns the span elapsed between since and t.
// Reports false if since is after t.
func (t TimeStamp) CheckedSub(since TimeStamp) (TimeSpan, bool) {
	if since.nanos > t.nanos {
		return 0, false
	}
	return TimeSpan(t.nanos - since.nanos), true
}

// Sub returns the span elapsed between earlier and t.
// Panics if earlier is after t.
func (t TimeStamp) Sub(earlier TimeStamp) TimeSpan {
	s, ok := t.CheckedSub(earlier)
	if !ok {
		panic("invalid argument: earlier time stamp is after this time stamp")
	}
	return s
}

// CheckedAdd returns the stamp shifted forward by span. Reports false
// if the result overflows or precedes the reference point.
func (t TimeStamp) CheckedAdd(span TimeSpan) (TimeStamp, bool) {
	n, ok := timemath.CheckedAdd(t.nanos, int64(span))
	if !ok || n < 0 {
		return TimeStamp{}, false
	}
	return TimeStamp{nanos: n}, true
}

// Add returns the stamp shifted forward by span.
// Panics on overflow.
func (t TimeStamp) Add(span TimeSpan) TimeStamp {
	ts, ok := t.CheckedAdd(span)
	if !ok {
		panic("overflow when adding time span to time stamp")
	}
	return ts
}

// CheckedSubSpan returns the stamp shifted backward by span. Reports
// false if the result overflows or precedes the reference point.
func (t TimeStamp) CheckedSubSpan(span TimeSpan) (TimeStamp, bool) {
	n, ok := timemath.CheckedSub(t.nanos, int64(span))
	if !ok || n < 0 {
		return TimeStamp{}, false
	}
	return TimeStamp{nanos: n}, true
}

// SubSpan returns the stamp shifted backward by span.
// Panics on overflow.
func (t TimeStamp) SubSpan(span TimeSpan) TimeStamp {
	ts, ok := t.CheckedSubSpan(span)
	if !ok {
		panic("overflow when subtracting time span from time stamp")
	}
	return ts
}

func (t TimeStamp) Before(u TimeStamp) bool { return t.nanos < u.nanos }
func (t TimeStamp) After(u TimeStamp) bool  { return t.nanos > u.nanos }
func (t TimeStamp) Equal(u TimeStamp) bool  { return t.nanos == u.nanos }

// Compare returns -1, 0 or 1 depending on whether t is before, equal
// to or after u.
func (t TimeStamp) Compare(u TimeStamp) int {
	switch {
	case t.nanos < u.nanos:
		return -1
	case t.nanos > u.nanos:
		return 1
	default:
		return 0
	}
}

func (t TimeStamp) String() string {
	return t.SinceStart().String() + " since start"
}

func impressiveUptime() {
	panic("elapsed time exceeds the 64-bit nanosecond range; " +
		"a process observing this has been running for roughly 292 years")
}
