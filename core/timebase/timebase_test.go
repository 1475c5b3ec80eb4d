package timebase_test

import (
	"testing"
	"time"

	"example.com/game-time/core/timebase"
	"example.com/game-time/core/timeval"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func TestTimebase(t *testing.T) {
	clk := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	timebase.RegisterClock(clk)

	first := timebase.Now()
	if !first.Equal(timeval.Start()) {
		t.Errorf("first stamp == %v; want start", first)
	}
	if !timebase.Epoch().Equal(clk.now) {
		t.Errorf("epoch == %v; want %v", timebase.Epoch(), clk.now)
	}

	clk.now = clk.now.Add(3 * time.Second)
	ts := timebase.Now()
	if ts.SinceStart() != 3*timeval.Second {
		t.Errorf("stamp after 3s == %v; want 3s", ts.SinceStart())
	}

	// The epoch stays latched.
	if !timebase.Epoch().Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("epoch must not move after the first stamp")
	}
}

func TestRegisterClockGuards(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("double registration must panic")
		}
	}()
	timebase.RegisterClock(&fakeClock{now: time.Now()})
}

func TestRegisterNilClockPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("nil registration must panic")
		}
	}()
	timebase.RegisterClock(nil)
}
