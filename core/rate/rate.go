// Package rate provides ClockRate, a virtual clock that advances by a
// rational multiple of externally supplied wall-clock spans. The
// scaling uses the same lossless remainder-carrying arithmetic as the
// tick package, so no drift accumulates regardless of step size or
// rate.
package rate

import (
	"math"

	"lukechampine.com/uint128"

	"example.com/game-time/base/timemath"
	"example.com/game-time/core/tick"
	"example.com/game-time/core/timeval"
)

// ClockRate scales incoming time spans by a rational rate nom/denom
// before advancing its own time stamp. A rate below 1 accumulates
// sub-nanosecond progress across steps and only advances the clock
// once a whole output nanosecond is covered.
//
// ClockRate is a single-owner mutable value; concurrent use requires
// external synchronization.
type ClockRate struct {
	now   timeval.TimeStamp
	nom   uint64
	denom uint64

	// Elements (input nanoseconds scaled by nom) left until the next
	// whole output nanosecond; always in 1..=denom.
	untilNext uint64
}

// New returns a clock with rate 1/1 positioned at the start stamp.
func New() *ClockRate {
	return &ClockRate{
		now:       timeval.Start(),
		nom:       1,
		denom:     1,
		untilNext: 1,
	}
}

// Reset moves the clock back to the start stamp and discards any
// accumulated sub-nanosecond progress. The rate is kept.
func (c *ClockRate) Reset() {
	c.now = timeval.Start()
	c.untilNext = c.denom
}

// SetNow repositions the clock at the given stamp.
func (c *ClockRate) SetNow(now timeval.TimeStamp) {
	c.now = now
}

// Now returns the stamp corresponding to "now" of the last step.
func (c *ClockRate) Now() timeval.TimeStamp {
	return c.now
}

// SetRate sets the rate to the closest rational approximation of the
// given multiplier, within 1e-6 for any rate of practical magnitude.
// Special cases: NaN and negative rates pause the clock; +Inf and
// rates too large to represent saturate to the largest representable
// rate.
func (c *ClockRate) SetRate(rate float64) {
	nom, denom := rateToRatio(rate)
	c.setRatio(nom, denom)
}

// Rate returns the current rate as a floating point multiplier.
func (c *ClockRate) Rate() float64 {
	return float64(c.nom) / float64(c.denom)
}

// SetRateRatio sets the rate to exactly nom/denom.
// Panics if denom is 0.
func (c *ClockRate) SetRateRatio(nom, denom uint64) {
	if denom == 0 {
		panic("invalid argument: rate denominator must not be 0")
	}
	c.setRatio(nom, denom)
}

// RateRatio returns the current rate as a ratio.
func (c *ClockRate) RateRatio() (nom, denom uint64) {
	return c.nom, c.denom
}

// Pause sets the rate to 0. Time stops advancing, but the accumulated
// sub-nanosecond progress is preserved so the clock resumes exactly
// where it stopped.
func (c *ClockRate) Pause() {
	c.nom = 0
}

func (c *ClockRate) setRatio(nom, denom uint64) {
	c.nom = nom
	c.denom = denom
	// The carry is reinterpreted in the new rate's units, clamped to
	// one output nanosecond.
	if c.untilNext > denom {
		c.untilNext = denom
	}
}

// Step advances the clock by span scaled with the current rate and
// returns the resulting stamp and the scaled span actually applied.
// The scaled span is zero while a rate below 1 is still accumulating
// a whole output nanosecond. span must not be negative; span times the
// rate numerator must fit in 64 bits.
func (c *ClockRate) Step(span timeval.TimeSpan) timeval.ClockStep {
	if span < 0 {
		panic("invalid argument: span must not be negative")
	}
	nomNanos := uint64(span) * c.nom

	if nomNanos < c.untilNext {
		// Not yet a whole output nanosecond.
		c.untilNext -= nomNanos
		return timeval.ClockStep{Now: c.now, Step: timeval.Zero}
	}

	clockNanos := 1 + (nomNanos-c.untilNext)/c.denom
	left := (nomNanos - c.untilNext) % c.denom
	c.untilNext = c.denom - left

	step := timeval.TimeSpan(clockNanos)
	c.now = c.now.Add(step)

	return timeval.ClockStep{Now: c.now, Step: step}
}

// Ticker returns a ticker whose frequency is the given frequency
// multiplied by the clock's current rate, so ticks generated from raw
// wall-clock spans already account for the rate scaling. The composed
// ratio is computed with 128-bit intermediates and reduced; panics in
// the practically unreachable case that the reduced ratio does not fit
// in 64 bits.
func (c *ClockRate) Ticker(freq tick.Frequency) tick.FrequencyTicker {
	g1 := timemath.Gcd(c.nom, uint64(freq.Period()))
	nom := c.nom / g1
	period := uint64(freq.Period()) / g1

	g2 := timemath.Gcd(freq.Count(), c.denom)
	count := freq.Count() / g2
	denom := c.denom / g2

	cw := uint128.From64(nom).Mul64(count)
	pw := uint128.From64(denom).Mul64(period)
	if g := gcd128(cw, pw); g.Cmp64(1) > 0 {
		cw = cw.Div(g)
		pw = pw.Div(g)
	}
	if cw.Hi != 0 || pw.Hi != 0 || pw.Lo > math.MaxInt64 {
		panic("rate and frequency compose to a ratio outside the 64-bit range")
	}

	f, err := tick.New(cw.Lo, timeval.TimeSpan(pw.Lo))
	if err != nil {
		panic(err)
	}
	return tick.NewTicker(f, c.now)
}

func gcd128(a, b uint128.Uint128) uint128.Uint128 {
	for !b.IsZero() {
		a, b = b, a.Mod(b)
	}
	return a
}

// rateToRatio converts a floating point rate into a rational
// approximation with a bounded search: it stops once the remaining
// fractional error is below 1e-6, the denominator would exceed 2^32-1,
// or 50 iterations have run, and returns the best ratio found, reduced.
func rateToRatio(rate float64) (nom, denom uint64) {
	const (
		epsilon = 1e-6
		maxIter = 50
	)

	if math.IsNaN(rate) || rate <= 0 {
		return 0, 1
	}
	if rate > float64(math.MaxUint64) {
		return math.MaxUint64, 1
	}

	d := uint64(1)
	n := rate

	for i := 0; i < maxIter; i++ {
		f := n - math.Trunc(n)
		if f < epsilon {
			break
		}
		if d > math.MaxUint32 {
			break
		}
		d = uint64(math.Ceil(float64(d) / f))
		n = rate * float64(d)
		if n > float64(math.MaxUint64) {
			// Precision exhausted; fall back to the previous best.
			return ratioReduced(uint64(rate*float64(d/2)), d/2)
		}
	}

	return ratioReduced(uint64(math.Trunc(n)), d)
}

func ratioReduced(nom, denom uint64) (uint64, uint64) {
	if denom == 0 {
		denom = 1
	}
	g := timemath.Gcd(nom, denom)
	return nom / g, denom / g
}
