// Package timeval provides the time value types used throughout the
// module: TimeSpan for durations, TimeStamp for fixed points in time
// and ClockStep for the result of advancing a clock.
//
// All values are nanosecond counts backed by 64-bit integers. The
// arithmetic either reports overflow explicitly (Checked variants) or
// fails fast by panicking, it never wraps silently.
package timeval

import (
	"time"

	"example.com/game-time/base/timemath"
)

// TimeSpan is an interval between time stamps with nanosecond
// precision. Similar to time.Duration, with checked arithmetic and a
// different text form.
type TimeSpan int64

const (
	Zero        TimeSpan = 0
	Nanosecond  TimeSpan = 1
	Microsecond          = 1_000 * Nanosecond
	Millisecond          = 1_000 * Microsecond
	Second               = 1_000 * Millisecond
	Minute               = 60 * Second
	Hour                 = 60 * Minute
	Day                  = 24 * Hour
	Week                 = 7 * Day

	// JulianYear is the average year length in the Julian calendar,
	// 365.25 days.
	JulianYear TimeSpan = 31_557_600_000_000_000
	// GregorianYear is the average year length in the Gregorian
	// calendar, 365.2425 days.
	GregorianYear TimeSpan = 31_556_952_000_000_000
	// SolarYear is the tropical year, 365.24219 days.
	SolarYear TimeSpan = 31_556_925_216_000_000
	// Year is the closest value to the average length of a year on
	// Earth.
	Year = SolarYear
)

// Hms returns the span covering the given hours, minutes and seconds.
func Hms(hours, minutes, seconds int64) TimeSpan {
	return TimeSpan(hours)*Hour + TimeSpan(minutes)*Minute + TimeSpan(seconds)*Second
}

// FromDuration converts a stdlib duration. The two types share the
// same range, so the conversion is exact.
func FromDuration(d time.Duration) TimeSpan {
	return TimeSpan(d.Nanoseconds())
}

func (s TimeSpan) Duration() time.Duration {
	return time.Duration(s)
}

func (s TimeSpan) Nanos() int64   { return int64(s) }
func (s TimeSpan) Micros() int64  { return int64(s / Microsecond) }
func (s TimeSpan) Millis() int64  { return int64(s / Millisecond) }
func (s TimeSpan) Seconds() int64 { return int64(s / Second) }
func (s TimeSpan) Minutes() int64 { return int64(s / Minute) }
func (s TimeSpan) Hours() int64   { return int64(s / Hour) }
func (s TimeSpan) Days() int64    { return int64(s / Day) }
func (s TimeSpan) Weeks() int64   { return int64(s / Week) }

// SecondsF64 returns the span in seconds as a high precision floating
// point value.
func (s TimeSpan) SecondsF64() float64 {
	return float64(s) / float64(Second)
}

// SecondsF32 returns the span in seconds as a floating point value.
// Intended for small-ish spans where precision does not matter.
func (s TimeSpan) SecondsF32() float32 {
	return float32(float64(s) / float64(Second))
}

func (s TimeSpan) CheckedAdd(o TimeSpan) (TimeSpan, bool) {
	n, ok := timemath.CheckedAdd(int64(s), int64(o))
	return TimeSpan(n), ok
}

func (s TimeSpan) CheckedSub(o TimeSpan) (TimeSpan, bool) {
	n, ok := timemath.CheckedSub(int64(s), int64(o))
	return TimeSpan(n), ok
}

func (s TimeSpan) CheckedMul(v int64) (TimeSpan, bool) {
	n, ok := timemath.CheckedMul(int64(s), v)
	return TimeSpan(n), ok
}

func (s TimeSpan) CheckedDiv(v int64) (TimeSpan, bool) {
	if v == 0 {
		return 0, false
	}
	return s / TimeSpan(v), true
}

// Add returns s + o.
// Panics on overflow.
func (s TimeSpan) Add(o TimeSpan) TimeSpan {
	n, ok := s.CheckedAdd(o)
	if !ok {
		panic("overflow when adding time spans")
	}
	return n
}

// Sub returns s - o.
// Panics on overflow.
func (s TimeSpan) Sub(o TimeSpan) TimeSpan {
	n, ok := s.CheckedSub(o)
	if !ok {
		panic("overflow when subtracting time spans")
	}
	return n
}

// Mul returns the span scaled by v.
// Panics on overflow.
func (s TimeSpan) Mul(v int64) TimeSpan {
	n, ok := s.CheckedMul(v)
	if !ok {
		panic("overflow when scaling time span")
	}
	return n
}

// Div returns the span divided by v.
// Panics if v is 0.
func (s TimeSpan) Div(v int64) TimeSpan {
	n, ok := s.CheckedDiv(v)
	if !ok {
		panic("invalid argument: divisor must not be 0")
	}
	return n
}

// DivSpan returns how many whole spans o fit into s.
// Panics if o is 0.
func (s TimeSpan) DivSpan(o TimeSpan) int64 {
	if o == 0 {
		panic("invalid argument: divisor span must not be 0")
	}
	return int64(s / o)
}

// RemSpan returns the remainder of s after removing whole spans o.
// Panics if o is 0.
func (s TimeSpan) RemSpan(o TimeSpan) TimeSpan {
	if o == 0 {
		panic("invalid argument: divisor span must not be 0")
	}
	return s % o
}
