// Package clock provides the system clock driver and a stepper that
// turns successive clock readings into time spans for advancing
// tickers and rate clocks.
package clock

import (
	"time"

	"example.com/game-time/base/timebase"
	"example.com/game-time/core/timeval"
)

// Clock reads a local clock and reports, per Step call, the span
// elapsed since the previous call together with the accumulated stamp.
type Clock struct {
	lclk timebase.LocalClock
	last time.Time
	now  timeval.TimeStamp
}

// NewClock returns a stepper positioned at the start stamp, with the
// first elapsed span measured from the moment of this call.
func NewClock(lclk timebase.LocalClock) *Clock {
	return &Clock{
		lclk: lclk,
		last: lclk.Now(),
		now:  timeval.Start(),
	}
}

// Step reads the clock and returns the elapsed span since the previous
// reading and the stamp it advanced to. Readings that appear to go
// backwards produce a zero span.
func (c *Clock) Step() timeval.ClockStep {
	t := c.lclk.Now()
	d := t.Sub(c.last)
	if d < 0 {
		d = 0
	}
	c.last = t

	span := timeval.FromDuration(d)
	c.now = c.now.Add(span)
	return timeval.ClockStep{Now: c.now, Step: span}
}

// Now returns the stamp of the last Step call.
func (c *Clock) Now() timeval.TimeStamp {
	return c.now
}
