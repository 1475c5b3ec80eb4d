package rate_test

import (
	"math"
	"testing"

	"example.com/game-time/core/rate"
	"example.com/game-time/core/tick"
	"example.com/game-time/core/timeval"
)

func TestRateIdentity(t *testing.T) {
	c := rate.New()
	if c.Rate() != 1.0 {
		t.Fatalf("Rate == %v; want 1", c.Rate())
	}

	var elapsed timeval.TimeSpan
	for _, step := range []timeval.TimeSpan{
		timeval.Nanosecond, timeval.Second, 333 * timeval.Millisecond, timeval.Zero, timeval.Hour,
	} {
		elapsed += step
		cs := c.Step(step)
		if cs.Step != step {
			t.Errorf("Step(%v).Step == %v; want identity", step, cs.Step)
		}
		if cs.Now.SinceStart() != elapsed {
			t.Errorf("now == %v; want %v", cs.Now.SinceStart(), elapsed)
		}
	}
}

func TestRateHalfAlternates(t *testing.T) {
	c := rate.New()
	c.SetRateRatio(1, 2)
	c.Reset()

	want := []timeval.TimeSpan{0, 1, 0, 1, 0, 1, 0, 1}
	for i, w := range want {
		if cs := c.Step(timeval.Nanosecond); cs.Step != w {
			t.Fatalf("step %d: scaled == %v; want %v", i, cs.Step, w)
		}
	}
	if c.Now().SinceStart() != 4*timeval.Nanosecond {
		t.Errorf("now == %v; want 4ns", c.Now().SinceStart())
	}
}

func TestRateThirdPattern(t *testing.T) {
	c := rate.New()
	c.SetRateRatio(1, 3)
	c.Reset()

	pattern := []timeval.TimeSpan{0, 0, 1}
	for cycle := 0; cycle < 100; cycle++ {
		for i, w := range pattern {
			if cs := c.Step(timeval.Nanosecond); cs.Step != w {
				t.Fatalf("cycle %d, step %d: scaled == %v; want %v", cycle, i, cs.Step, w)
			}
		}
	}
}

func TestRateDouble(t *testing.T) {
	c := rate.New()
	c.SetRateRatio(2, 1)
	cs := c.Step(timeval.Second)
	if cs.Step != 2*timeval.Second {
		t.Errorf("scaled == %v; want 2s", cs.Step)
	}
}

// Scaling by nom/denom never drifts: after any sequence of steps the
// clock position equals the closed-form scaled total.
func TestRateNoDrift(t *testing.T) {
	c := rate.New()
	c.SetRateRatio(997, 1009)
	c.Reset()

	var total timeval.TimeSpan
	for i := 0; i < 10_000; i++ {
		step := timeval.TimeSpan(1 + i%7)
		total += step
		c.Step(step)
	}

	// ceil(total*nom/denom) is where a single equivalent step lands.
	single := rate.New()
	single.SetRateRatio(997, 1009)
	single.Reset()
	want := single.Step(total).Now
	if !c.Now().Equal(want) {
		t.Errorf("incremental now == %v; single step now == %v", c.Now(), want)
	}
}

func TestRatePauseAndResume(t *testing.T) {
	c := rate.New()
	c.SetRateRatio(1, 2)
	c.Reset()

	c.Step(timeval.Nanosecond) // halfway to the next whole nanosecond

	c.Pause()
	if c.Rate() != 0 {
		t.Fatalf("Rate == %v; want 0 while paused", c.Rate())
	}
	for i := 0; i < 10; i++ {
		if cs := c.Step(timeval.Hour); cs.Step != timeval.Zero {
			t.Fatal("a paused clock must not advance")
		}
	}

	// The half-accumulated nanosecond survives the pause.
	c.SetRateRatio(1, 2)
	if cs := c.Step(timeval.Nanosecond); cs.Step != timeval.Nanosecond {
		t.Errorf("resumed step == %v; want 1ns", cs.Step)
	}
}

func TestRateReset(t *testing.T) {
	c := rate.New()
	c.Step(42 * timeval.Second)
	c.Reset()
	if !c.Now().Equal(timeval.Start()) {
		t.Errorf("now == %v after Reset; want start", c.Now())
	}
}

func TestRateSetNow(t *testing.T) {
	c := rate.New()
	ts := timeval.Start().Add(timeval.Minute)
	c.SetNow(ts)
	if !c.Now().Equal(ts) {
		t.Errorf("now == %v; want %v", c.Now(), ts)
	}
}

func TestSetRateApproximation(t *testing.T) {
	cases := []float64{1.0, 0.5, 0.25, 2.0, 3.0, 1.0 / 3.0, 1.0 / 7.0, 1.0 / 13.0, 1.001, 1234.1234}
	for _, want := range cases {
		c := rate.New()
		c.SetRate(want)
		got := c.Rate()
		if math.Abs(got-want)/want > 1e-6 {
			t.Errorf("SetRate(%v): Rate == %v; relative error above 1e-6", want, got)
		}
	}
}

func TestSetRateSpecialValues(t *testing.T) {
	for _, v := range []float64{math.NaN(), -1.0, 0.0} {
		c := rate.New()
		c.SetRate(v)
		if nom, denom := c.RateRatio(); nom != 0 || denom != 1 {
			t.Errorf("SetRate(%v) == %d/%d; want 0/1", v, nom, denom)
		}
	}

	c := rate.New()
	c.SetRate(math.Inf(1))
	if nom, denom := c.RateRatio(); nom != math.MaxUint64 || denom != 1 {
		t.Errorf("SetRate(+Inf) == %d/%d; want MaxUint64/1", nom, denom)
	}
}

func TestRateRatioPanicsOnZeroDenom(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("SetRateRatio must panic for a zero denominator")
		}
	}()
	rate.New().SetRateRatio(1, 0)
}

func TestRateNegativeStepPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Step must panic for negative spans")
		}
	}()
	rate.New().Step(-timeval.Nanosecond)
}

// A ticker derived from a half-rate clock ticks at half the frequency
// measured in raw spans.
func TestRateTickerComposition(t *testing.T) {
	c := rate.New()
	c.SetRateRatio(1, 2)
	ticker := c.Ticker(tick.FromHz(3))

	if n := ticker.TickCount(2 * timeval.Second); n != 3 {
		t.Errorf("half-rate 3 Hz over 2s == %d ticks; want 3", n)
	}

	c = rate.New()
	c.SetRateRatio(2, 1)
	ticker = c.Ticker(tick.FromHz(3))
	if n := ticker.TickCount(timeval.Second); n != 6 {
		t.Errorf("double-rate 3 Hz over 1s == %d ticks; want 6", n)
	}
}

// The composed ticker frequency is reduced the same as the equivalent
// directly constructed frequency.
func TestRateTickerReduction(t *testing.T) {
	c := rate.New()
	c.SetRateRatio(2, 1)
	ticker := c.Ticker(tick.FromHz(3))

	want, err := tick.New(3, 500*timeval.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if ticker.Frequency() != want {
		t.Errorf("composed frequency == %v; want %v", ticker.Frequency(), want)
	}
}
