// Package tick generates exact periodic tick events from rational
// frequencies. A Frequency is a reduced fraction count/period meaning
// "count ticks every period nanoseconds"; a FrequencyTicker consumes
// elapsed time spans and reports precisely how many ticks occurred and
// when, carrying the fractional remainder forward without drift.
package tick

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"example.com/game-time/base/timemath"
	"example.com/game-time/core/timeval"
)

// elements is the internal tick-timing unit: nanoseconds scaled by the
// frequency count. One period of elements equals exactly one tick, so
// tick boundaries are integral and no rounding accumulates. The
// distinct type keeps elements from mixing with plain nanosecond
// counts.
type elements uint64

// Frequency is a tick rate as a reduced positive rational number:
// count ticks per period nanoseconds. count and period are always
// coprime after construction, which keeps element arithmetic from
// overflowing prematurely and makes equivalent ratios compare equal.
//
// A count of 0 is the valid "never ticks" frequency. The zero value of
// Frequency is not valid; use New or one of the unit constructors.
type Frequency struct {
	count  uint64
	period uint64
}

// New returns the frequency of count ticks per period, reduced to
// canonical form. Fails if period is not positive.
func New(count uint64, period timeval.TimeSpan) (Frequency, error) {
	if period <= 0 {
		return Frequency{}, errors.New("invalid frequency: period must be positive")
	}
	g := timemath.Gcd(count, uint64(period))
	return Frequency{count: count / g, period: uint64(period) / g}, nil
}

func mustNew(count uint64, period timeval.TimeSpan) Frequency {
	f, err := New(count, period)
	if err != nil {
		panic(err)
	}
	return f
}

func FromHz(v uint64) Frequency  { return mustNew(v, timeval.Second) }
func FromKHz(v uint64) Frequency { return mustNew(v, timeval.Millisecond) }
func FromMHz(v uint64) Frequency { return mustNew(v, timeval.Microsecond) }
func FromGHz(v uint64) Frequency { return mustNew(v, timeval.Nanosecond) }

// Count returns the number of ticks per period.
func (f Frequency) Count() uint64 { return f.count }

// Period returns the length of one cycle of Count ticks.
func (f Frequency) Period() timeval.TimeSpan { return timeval.TimeSpan(f.period) }

// PeriodsInSpan returns the number of whole ticks that fit into span.
// The computation is exact: the span is converted to elements first
// and divided once, with no intermediate rounding.
func (f Frequency) PeriodsInSpan(span timeval.TimeSpan) uint64 {
	n, _ := f.periodsInElems(f.elems(span))
	return n
}

// Ticker returns a new ticker with this frequency starting at start.
func (f Frequency) Ticker(start timeval.TimeStamp) FrequencyTicker {
	return NewTicker(f, start)
}

// elems converts a span to elements. span must be non-negative and
// span*count must fit in 64 bits; both are preconditions of the hot
// path and deliberately not checked here.
func (f Frequency) elems(span timeval.TimeSpan) elements {
	return elements(uint64(span) * f.count)
}

func (f Frequency) periodElems() elements {
	return elements(f.period)
}

func (f Frequency) periodsElems(n uint64) elements {
	return elements(f.period * n)
}

// periodsInElems returns the whole periods in e and the remaining
// elements.
func (f Frequency) periodsInElems(e elements) (uint64, elements) {
	return uint64(e) / f.period, elements(uint64(e) % f.period)
}

// untilNextElems returns the elements left until the tick following
// the one at offset e.
func (f Frequency) untilNextElems(e elements) elements {
	return elements(f.period - uint64(e)%f.period)
}

// spanFittingElems returns the shortest span covering e elements,
// rounding up to whole nanoseconds. Reports false when the frequency
// never ticks and e is non-zero: no finite span covers it.
func (f Frequency) spanFittingElems(e elements) (timeval.TimeSpan, bool) {
	switch {
	case e == 0:
		return timeval.Zero, true
	case f.count == 0:
		return 0, false
	default:
		return timeval.TimeSpan(timemath.CeilDiv(uint64(e), f.count)), true
	}
}

// String renders the frequency as "count/period Hz", the fraction
// being over nanoseconds: 3 Hz renders as "3/1000000000 Hz".
// ParseFrequency accepts this form.
func (f Frequency) String() string {
	return fmt.Sprintf("%d/%d Hz", f.count, f.period)
}

// ParseFrequency parses "N Hz" (N ticks per second) and "N/M Hz"
// (N ticks per M nanoseconds).
func ParseFrequency(s string) (Frequency, error) {
	v, ok := strings.CutSuffix(strings.TrimSpace(s), "Hz")
	if !ok {
		return Frequency{}, errors.New("invalid frequency format: missing Hz suffix")
	}
	num, den, slash := strings.Cut(v, "/")
	count, err := strconv.ParseUint(strings.TrimSpace(num), 10, 64)
	if err != nil {
		return Frequency{}, fmt.Errorf("invalid frequency count: %w", err)
	}
	if !slash {
		return FromHz(count), nil
	}
	period, err := strconv.ParseUint(strings.TrimSpace(den), 10, 64)
	if err != nil {
		return Frequency{}, fmt.Errorf("invalid frequency period: %w", err)
	}
	if period > math.MaxInt64 {
		return Frequency{}, errors.New("invalid frequency: period out of range")
	}
	return New(count, timeval.TimeSpan(period))
}

func (f Frequency) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Frequency) UnmarshalText(text []byte) error {
	v, err := ParseFrequency(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
