package models

import (
	"fmt"
	"math"
	"time"

	"github.com/jinzhu/now"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD calendar date. The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatClock renders the wall-clock time of t as HH:MM.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// InclusiveDaySpan counts calendar days from a to b with both ends included.
// Time-of-day components are dropped before counting, so a same-day pair is 1.
// The result is zero or negative when b falls on a day before a.
func InclusiveDaySpan(a, b time.Time) int {
	start := now.With(a).BeginningOfDay()
	end := now.With(b.In(a.Location())).BeginningOfDay()

	// DST shifts make some local days 23 or 25 hours long.
	days := int(math.Round(end.Sub(start).Hours() / 24))
	return days + 1
}

// DateSpan is InclusiveDaySpan over two YYYY-MM-DD strings.
func DateSpan(startDate, endDate string) (int, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, err
	}
	return InclusiveDaySpan(start, end), nil
}
