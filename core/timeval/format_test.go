package timeval_test

import (
	"testing"

	"example.com/game-time/core/timeval"
)

func TestSpanString(t *testing.T) {
	cases := []struct {
		span timeval.TimeSpan
		want string
	}{
		{timeval.Zero, "0"},
		{5 * timeval.Nanosecond, "5ns"},
		{12 * timeval.Microsecond, "12us"},
		{12*timeval.Microsecond + 500*timeval.Nanosecond, "12.500us"},
		{17 * timeval.Millisecond, "17ms"},
		{timeval.Millisecond + 500*timeval.Microsecond, "1.500ms"},
		{2 * timeval.Second, "2s"},
		{2*timeval.Second + 345*timeval.Millisecond, "2.345s"},
		{timeval.Hms(0, 2, 3), "2:03"},
		{timeval.Hms(0, 2, 3) + 250*timeval.Millisecond, "2:03.250"},
		{timeval.Hms(1, 2, 11), "1:02:11"},
		{timeval.Day, "1d00:00"},
		{timeval.Day + timeval.Hms(2, 3, 0), "1d02:03"},
		{timeval.Day + timeval.Hms(2, 3, 4), "1d02:03:04"},
		{timeval.Day + timeval.Hms(2, 3, 4) + 5*timeval.Millisecond, "1d02:03:04.005"},
		{-2 * timeval.Second, "-2s"},
	}
	for _, c := range cases {
		got := c.span.String()
		if got != c.want {
			t.Errorf("TimeSpan(%d).String() == %q; want %q", c.span.Nanos(), got, c.want)
		}
	}
}

func TestSpanFullString(t *testing.T) {
	cases := []struct {
		span timeval.TimeSpan
		want string
	}{
		{timeval.Zero, "0d00:00:00.000000000"},
		{timeval.Day + timeval.Hms(2, 3, 4) + 5, "1d02:03:04.000000005"},
		{timeval.Hms(23, 59, 59) + 999_999_999, "0d23:59:59.999999999"},
	}
	for _, c := range cases {
		got := c.span.FullString()
		if got != c.want {
			t.Errorf("TimeSpan(%d).FullString() == %q; want %q", c.span.Nanos(), got, c.want)
		}
	}
}

func TestSpanStringParseRoundTrip(t *testing.T) {
	spans := []timeval.TimeSpan{
		timeval.Zero,
		5 * timeval.Nanosecond,
		12*timeval.Microsecond + 500*timeval.Nanosecond,
		17 * timeval.Millisecond,
		2*timeval.Second + 345*timeval.Millisecond,
		timeval.Hms(0, 2, 3),
		timeval.Hms(1, 2, 11),
		timeval.Day + timeval.Hms(2, 3, 4) + 5*timeval.Millisecond,
		2 * timeval.Year,
	}
	for _, s := range spans {
		text := s.String()
		v, err := timeval.ParseSpan(text)
		if err != nil {
			t.Errorf("ParseSpan(%q) failed: %v", text, err)
			continue
		}
		if v != s {
			t.Errorf("ParseSpan(%q) == %d; want %d", text, v.Nanos(), s.Nanos())
		}
	}
}
