package timeval

import "fmt"

// String renders the span in the most compact human-readable form:
// "2d03:04", "1:02:11", "2:03.250", "2.345s", "17ms", "12.500us",
// "5ns" or "0". Negative spans carry a leading minus.
func (s TimeSpan) String() string {
	if s == 0 {
		return "0"
	}
	if s < 0 {
		// Conversion through uint64 is exact even for MinInt64.
		return "-" + formatNanos(-uint64(s))
	}
	return formatNanos(uint64(s))
}

// FullString renders the span in the fixed form "Dd HH:MM:SS.NNNNNNNNN".
func (s TimeSpan) FullString() string {
	sign := ""
	u := uint64(s)
	if s < 0 {
		sign = "-"
		u = -uint64(s)
	}
	days := u / uint64(Day)
	u %= uint64(Day)
	hours := u / uint64(Hour)
	u %= uint64(Hour)
	minutes := u / uint64(Minute)
	u %= uint64(Minute)
	seconds := u / uint64(Second)
	u %= uint64(Second)
	return fmt.Sprintf("%s%01dd%02d:%02d:%02d.%09d",
		sign, days, hours, minutes, seconds, u)
}

func formatNanos(u uint64) string {
	switch {
	case u >= uint64(Day):
		days := u / uint64(Day)
		u %= uint64(Day)
		hours := u / uint64(Hour)
		u %= uint64(Hour)
		minutes := u / uint64(Minute)
		u %= uint64(Minute)
		seconds := u / uint64(Second)
		u %= uint64(Second)
		millis := u / uint64(Millisecond)
		switch {
		case millis > 0:
			return fmt.Sprintf("%dd%02d:%02d:%02d.%03d", days, hours, minutes, seconds, millis)
		case seconds > 0:
			return fmt.Sprintf("%dd%02d:%02d:%02d", days, hours, minutes, seconds)
		default:
			return fmt.Sprintf("%dd%02d:%02d", days, hours, minutes)
		}
	case u >= uint64(Hour):
		hours := u / uint64(Hour)
		u %= uint64(Hour)
		minutes := u / uint64(Minute)
		u %= uint64(Minute)
		seconds := u / uint64(Second)
		u %= uint64(Second)
		millis := u / uint64(Millisecond)
		if millis > 0 {
			return fmt.Sprintf("%d:%02d:%02d.%03d", hours, minutes, seconds, millis)
		}
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	case u >= uint64(Minute):
		minutes := u / uint64(Minute)
		u %= uint64(Minute)
		seconds := u / uint64(Second)
		u %= uint64(Second)
		millis := u / uint64(Millisecond)
		if millis > 0 {
			return fmt.Sprintf("%d:%02d.%03d", minutes, seconds, millis)
		}
		return fmt.Sprintf("%d:%02d", minutes, seconds)
	case u >= uint64(Second):
		seconds := u / uint64(Second)
		u %= uint64(Second)
		millis := u / uint64(Millisecond)
		if millis > 0 {
			return fmt.Sprintf("%d.%03ds", seconds, millis)
		}
		return fmt.Sprintf("%ds", seconds)
	case u >= uint64(Millisecond):
		millis := u / uint64(Millisecond)
		u %= uint64(Millisecond)
		micros := u / uint64(Microsecond)
		if micros > 0 {
			return fmt.Sprintf("%d.%03dms", millis, micros)
		}
		return fmt.Sprintf("%dms", millis)
	case u >= uint64(Microsecond):
		micros := u / uint64(Microsecond)
		u %= uint64(Microsecond)
		if u > 0 {
			return fmt.Sprintf("%d.%03dus", micros, u)
		}
		return fmt.Sprintf("%dus", micros)
	default:
		return fmt.Sprintf("%dns", u)
	}
}

func (s TimeSpan) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TimeSpan) UnmarshalText(text []byte) error {
	v, err := ParseSpan(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
