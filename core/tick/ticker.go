package tick

import (
	"example.com/game-time/core/timeval"
)

// FrequencyTicker produces tick events at an exact rational frequency
// as elapsed time is fed in. The ticker is a plain value with no
// internal locking; concurrent use requires external synchronization.
type FrequencyTicker struct {
	freq Frequency

	// Elements until the next tick fires.
	untilNext elements

	// Time stamp of the last advancement.
	now timeval.TimeStamp
}

// NewTicker returns a ticker with the given frequency whose first tick
// fires one full period after start.
func NewTicker(freq Frequency, start timeval.TimeStamp) FrequencyTicker {
	return NewTickerWithDelay(freq, 0, start)
}

// NewTickerWithDelay returns a ticker whose first tick is postponed by
// the given number of whole extra periods. Useful for staggering
// several tickers created at the same instant.
func NewTickerWithDelay(freq Frequency, periods uint64, start timeval.TimeStamp) FrequencyTicker {
	return FrequencyTicker{
		freq:      freq,
		untilNext: freq.periodsElems(1 + periods),
		now:       start,
	}
}

// NextTick returns the time stamp at which the next tick will fire
// without consuming it. Reports false if the ticker never ticks.
func (t *FrequencyTicker) NextTick() (timeval.TimeStamp, bool) {
	span, ok := t.freq.spanFittingElems(t.untilNext)
	if !ok {
		return timeval.TimeStamp{}, false
	}
	return t.now.Add(span), true
}

// Ticks advances the ticker by step and returns an iterator over the
// ticks that fired during the advancement. The ticker state is updated
// by this call; the returned iterator is independent of further ticker
// use. step must not be negative.
func (t *FrequencyTicker) Ticks(step timeval.TimeSpan) *TickIter {
	if step < 0 {
		panic("invalid argument: step must not be negative")
	}
	span := t.freq.elems(step)

	it := &TickIter{
		span:      span,
		freq:      t.freq,
		untilNext: t.untilNext,
		now:       t.now,
	}

	if span >= t.untilNext {
		t.untilNext = t.freq.untilNextElems(span - t.untilNext)
	} else {
		t.untilNext -= span
	}
	t.now = t.now.Add(step)

	return it
}

// TickCount advances the ticker by step and returns the number of
// ticks that fired. Computed in closed form, not by iterating.
func (t *FrequencyTicker) TickCount(step timeval.TimeSpan) uint64 {
	return t.Ticks(step).Count()
}

// WithTicks advances the ticker by step and calls f for every tick.
func (t *FrequencyTicker) WithTicks(step timeval.TimeSpan, f func(timeval.ClockStep)) {
	it := t.Ticks(step)
	for {
		cs, ok := it.Next()
		if !ok {
			return
		}
		f(cs)
	}
}

// Frequency returns the ticker's frequency.
func (t *FrequencyTicker) Frequency() Frequency {
	return t.freq
}

// Now returns the time stamp of the last advancement.
func (t *FrequencyTicker) Now() timeval.TimeStamp {
	return t.now
}

// SetFrequency replaces the ticker's frequency. The remaining wait is
// reinterpreted in the new frequency's element units. If clipPeriod is
// true the wait is additionally clamped to at most one period of the
// new frequency, so that a sharp frequency increase does not leave an
// oversized stale wait in place.
func (t *FrequencyTicker) SetFrequency(freq Frequency, clipPeriod bool) {
	t.freq = freq
	if clipPeriod {
		if period := freq.periodElems(); t.untilNext > period {
			t.untilNext = period
		}
	}
}

// TickIter iterates over the ticks produced by one advancement of a
// FrequencyTicker. Each tick carries the time stamp at which it
// conceptually fired, rounded up to the next whole nanosecond.
// Consecutive ticks may share an identical stamp when the frequency
// count exceeds one tick per nanosecond.
type TickIter struct {
	span        elements
	freq        Frequency
	untilNext   elements
	accumulated uint64
	now         timeval.TimeStamp
}

// Count returns the number of ticks remaining in the iterator, in
// closed form without materializing them.
func (it *TickIter) Count() uint64 {
	if it.span < it.untilNext {
		return it.accumulated
	}
	n, _ := it.freq.periodsInElems(it.span - it.untilNext)
	return it.accumulated + 1 + n
}

// Next returns the next tick. The second result is false once the
// iterator is exhausted; it stays false on subsequent calls.
func (it *TickIter) Next() (timeval.ClockStep, bool) {
	if it.accumulated > 0 {
		it.accumulated--
		return timeval.ClockStep{Now: it.now, Step: timeval.Zero}, true
	}

	if it.span < it.untilNext {
		return timeval.ClockStep{}, false
	}

	// Cannot fail here: with count 0 the span is always 0 elements,
	// which only passes the guard above when untilNext is 0.
	next, _ := it.freq.spanFittingElems(it.untilNext)

	// Advance by a whole number of nanoseconds worth of elements.
	advance := it.freq.elems(next)

	periods, remaining := it.freq.periodsInElems(advance - it.untilNext)
	it.accumulated = periods
	it.untilNext = it.freq.periodElems() - remaining
	it.span -= advance
	it.now = it.now.Add(next)

	return timeval.ClockStep{Now: it.now, Step: next}, true
}
