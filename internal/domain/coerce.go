package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// dateLayouts are tried in order when parsing eventDate. ISO 8601 intervals
// ("2019-05-01/2019-05-03") match none of them and parse as absent.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"2006-01",
	"2006",
}

// blankLike are the literals a trimmed free-text value is treated as missing for.
var blankLike = map[string]bool{"": true, "nan": true, "None": true}

// ParseFloat coerces a cell to a float. Absent cells, unparsable text and NaN
// are absent.
func ParseFloat(c Cell) Opt[float64] {
	s, ok := c.Get()
	if !ok {
		return None[float64]()
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return None[float64]()
	}
	v, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(v) {
		return None[float64]()
	}
	return Some(v)
}

// ParseInt coerces a cell to an integer. Integral floats ("1999.0") are
// accepted; anything with a fractional part is absent.
func ParseInt(c Cell) Opt[int64] {
	f, ok := ParseFloat(c).Get()
	if !ok || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return None[int64]()
	}
	return Some(int64(f))
}

// ParseDate coerces a cell to a time using the accepted eventDate layouts.
func ParseDate(c Cell) Opt[time.Time] {
	s, ok := c.Get()
	if !ok {
		return None[time.Time]()
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return None[time.Time]()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Some(t)
		}
	}
	return None[time.Time]()
}

// FormatFloat renders a float in canonical form.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatInt renders an integer in canonical form.
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// FormatBool renders a boolean in canonical form.
func FormatBool(v bool) string {
	return strconv.FormatBool(v)
}

// FormatDate renders a time as a date when it falls on UTC midnight and as
// RFC 3339 (second precision) otherwise.
func FormatDate(t time.Time) string {
	if _, off := t.Zone(); off == 0 && t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}

// IsBlankLike reports whether a free-text cell counts as missing: absent, or
// one of "", "nan", "None" after trimming.
func IsBlankLike(c Cell) bool {
	s, ok := c.Get()
	if !ok {
		return true
	}
	return blankLike[strings.TrimSpace(s)]
}

// NormalizeText trims a free-text cell and maps blank-like values to absent.
func NormalizeText(c Cell) Cell {
	if IsBlankLike(c) {
		return Absent()
	}
	s, _ := c.Get()
	return Text(strings.TrimSpace(s))
}

// floatCell coerces a cell to a number and writes back canonical text.
func floatCell(c Cell) Cell {
	if v, ok := ParseFloat(c).Get(); ok {
		return Text(FormatFloat(v))
	}
	return Absent()
}
