package timeval

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Longest string ParseSpan accepts.
const maxSpanString = 48

var errSpanOverflow = errors.New("time span overflows the nanosecond range")

// ParseSpan parses the textual forms produced by String and FullString
// as well as a few convenience forms:
//
//	"1d02:03", "1d02:03:04", "1d02:03:04.5"
//	"1:02:03", "1:02:03.5"
//	"2:03", "2:03.5"
//	"2.345"               seconds with fraction
//	"42s", "2.345s"       seconds
//	"17ms", "1.5ms"       milliseconds
//	"12us", "12.500us"    microseconds
//	"5ns"                 nanoseconds
//	"42"                  bare integer, seconds
//
// Fractions below one nanosecond are truncated. When a larger unit is
// present the smaller one is range checked (hours 0-23, minutes and
// seconds 0-59).
func ParseSpan(s string) (TimeSpan, error) {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return 0, errors.New("time span strings are always ASCII")
		}
	}
	if len(s) > maxSpanString {
		return 0, fmt.Errorf("time span string longer than %d bytes", maxSpanString)
	}

	seps := spanSeps(s)

	if n := len(seps); n > 0 {
		switch last := seps[n-1]; last.c {
		case ':', '.', 'd', 'D', 't', 'T':
			if strings.TrimSpace(s[last.pos+1:]) == "" {
				return 0, errors.New("unexpected end of string")
			}
		}
	}

	if len(seps) == 0 {
		n, err := parseSpanField(s, "seconds")
		if err != nil {
			return 0, err
		}
		return unitsSpan(0, 0, 0, n, 0)
	}

	switch seps[0].c {
	case 'd', 'D', 't', 'T':
		return parseDaySpan(s, seps)
	case ':':
		return parseColonSpan(s, seps)
	case '.':
		return parseFractionSpan(s, seps)
	case 's', 'm', 'u', 'n':
		return suffixSpan(s, s[:seps[0].pos], "", seps[0].pos)
	default:
		return 0, fmt.Errorf("unexpected delimiter %q at %d", seps[0].c, seps[0].pos)
	}
}

type spanSep struct {
	pos int
	c   byte
}

func spanSeps(s string) []spanSep {
	var seps []spanSep
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		seps = append(seps, spanSep{i, c})
	}
	return seps
}

func parseSpanField(s, name string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return v, nil
}

// "1d02:03[:04[.frac]]"
func parseDaySpan(s string, seps []spanSep) (TimeSpan, error) {
	if len(seps) < 2 || seps[1].c != ':' {
		return 0, errors.New("expected ':' after hours in day form")
	}
	dh, hm := seps[0].pos, seps[1].pos
	days, err := parseSpanField(s[:dh], "days")
	if err != nil {
		return 0, err
	}
	switch {
	case len(seps) == 2:
		return boundedSpan(days, s[dh+1:hm], s[hm+1:], "", "", 0, true)
	case seps[2].c == ':':
		ms := seps[2].pos
		if len(seps) == 3 {
			return boundedSpan(days, s[dh+1:hm], s[hm+1:ms], s[ms+1:], "", 0, true)
		}
		if seps[3].c == '.' && len(seps) == 4 {
			sf := seps[3].pos
			return boundedSpan(days, s[dh+1:hm], s[hm+1:ms], s[ms+1:sf], s[sf+1:], len(s)-sf-1, true)
		}
		return 0, fmt.Errorf("unexpected delimiter %q at %d", seps[3].c, seps[3].pos)
	default:
		return 0, fmt.Errorf("unexpected delimiter %q at %d", seps[2].c, seps[2].pos)
	}
}

// "1:02[:03][.frac]" with leading colon form.
func parseColonSpan(s string, seps []spanSep) (TimeSpan, error) {
	hms := seps[0].pos
	switch {
	case len(seps) == 1:
		// m:s
		return boundedSpan(0, "", s[:hms], s[hms+1:], "", 0, false)
	case seps[1].c == ':':
		ms := seps[1].pos
		if len(seps) == 2 {
			return boundedSpan(0, s[:hms], s[hms+1:ms], s[ms+1:], "", 0, false)
		}
		if seps[2].c == '.' && len(seps) == 3 {
			sf := seps[2].pos
			return boundedSpan(0, s[:hms], s[hms+1:ms], s[ms+1:sf], s[sf+1:], len(s)-sf-1, false)
		}
		return 0, fmt.Errorf("unexpected delimiter %q at %d", seps[2].c, seps[2].pos)
	case seps[1].c == '.':
		sf := seps[1].pos
		if len(seps) == 2 {
			return boundedSpan(0, "", s[:hms], s[hms+1:sf], s[sf+1:], len(s)-sf-1, false)
		}
		return 0, fmt.Errorf("unexpected delimiter %q at %d", seps[2].c, seps[2].pos)
	default:
		return 0, fmt.Errorf("unexpected delimiter %q at %d", seps[1].c, seps[1].pos)
	}
}

// "2.345" or "2.345s"/"1.5ms"/"12.500us" with a unit suffix.
func parseFractionSpan(s string, seps []spanSep) (TimeSpan, error) {
	sf := seps[0].pos
	if len(seps) == 1 {
		return boundedSpan(0, "", "", s[:sf], s[sf+1:], len(s)-sf-1, false)
	}
	return suffixSpan(s, s[:sf], s[sf+1:seps[1].pos], seps[1].pos)
}

// Forms ending in a unit suffix: "42s", "17ms", "3us", "5ns" and the
// fractional variants "2.345s", "1.5ms", "12.500us".
func suffixSpan(s, whole, frac string, sufStart int) (TimeSpan, error) {
	var unit TimeSpan
	var unitDigits int
	switch suffix := strings.TrimSpace(s[sufStart:]); suffix {
	case "s":
		unit, unitDigits = Second, 9
	case "ms":
		unit, unitDigits = Millisecond, 6
	case "us":
		unit, unitDigits = Microsecond, 3
	case "ns":
		unit, unitDigits = Nanosecond, 0
	default:
		return 0, errors.New("unexpected suffix; only `s`, `ms`, `us` and `ns` are supported")
	}

	n, err := parseSpanField(whole, "value")
	if err != nil {
		return 0, err
	}
	if n > uint64(math.MaxInt64) {
		return 0, errSpanOverflow
	}
	span, ok := unit.CheckedMul(int64(n))
	if !ok {
		return 0, errSpanOverflow
	}

	if frac != "" {
		f, err := parseSpanField(frac, "fraction")
		if err != nil {
			return 0, err
		}
		d := len(strings.TrimSpace(frac))
		// Digits below nanosecond resolution are truncated.
		for d > unitDigits {
			f /= 10
			d--
		}
		fracNanos := f * pow10(unitDigits-d)
		span, ok = span.CheckedAdd(TimeSpan(fracNanos))
		if !ok {
			return 0, errSpanOverflow
		}
	}
	return span, nil
}

// boundedSpan combines parsed positional fields, range checking each
// field against the next larger present unit. frac is interpreted as a
// fraction of a second with denom digits.
func boundedSpan(days uint64, hours, minutes, seconds, frac string, denom int, hasDays bool) (TimeSpan, error) {
	var h, m, sec, f uint64
	var err error

	hasHours := hours != ""
	hasMinutes := minutes != ""

	if seconds != "" {
		sec, err = parseSpanField(seconds, "seconds")
		if err != nil {
			return 0, err
		}
		if hasMinutes && sec > 59 {
			return 0, fmt.Errorf("seconds must be in range 0-59 when minutes are specified, got %d", sec)
		}
	}
	if hasMinutes {
		m, err = parseSpanField(minutes, "minutes")
		if err != nil {
			return 0, err
		}
		if hasHours && m > 59 {
			return 0, fmt.Errorf("minutes must be in range 0-59 when hours are specified, got %d", m)
		}
	}
	if hasHours {
		h, err = parseSpanField(hours, "hours")
		if err != nil {
			return 0, err
		}
		if hasDays && h > 23 {
			return 0, fmt.Errorf("hours must be in range 0-23 when days are specified, got %d", h)
		}
	}
	if frac != "" {
		f, err = parseSpanField(frac, "fraction")
		if err != nil {
			return 0, err
		}
	}

	// The fraction is carried at microsecond resolution.
	var micros uint64
	if denom > 6 {
		micros = f / pow10(denom-6)
	} else {
		p := pow10(6 - denom)
		if f > math.MaxUint64/p {
			return 0, errSpanOverflow
		}
		micros = f * p
	}

	return unitsSpan(days, h, m, sec, micros)
}

func unitsSpan(days, hours, minutes, seconds, micros uint64) (TimeSpan, error) {
	total := Zero
	for _, part := range []struct {
		n    uint64
		unit TimeSpan
	}{
		{days, Day},
		{hours, Hour},
		{minutes, Minute},
		{seconds, Second},
		{micros, Microsecond},
	} {
		if part.n > uint64(math.MaxInt64) {
			return 0, errSpanOverflow
		}
		v, ok := part.unit.CheckedMul(int64(part.n))
		if !ok {
			return 0, errSpanOverflow
		}
		total, ok = total.CheckedAdd(v)
		if !ok {
			return 0, errSpanOverflow
		}
	}
	return total, nil
}

func pow10(n int) uint64 {
	p := uint64(1)
	for ; n > 0; n-- {
		p *= 10
	}
	return p
}
