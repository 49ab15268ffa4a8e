package timeutil

import (
	"fmt"
	"math"
	"time"
)

const DateLayout = "2006-01-02"

type RoundDirection string

const (
	RoundUp      RoundDirection = "UP"
	RoundDown    RoundDirection = "DOWN"
	RoundNearest RoundDirection = "NEAREST"
)

// RoundToInterval snaps t to a multiple of interval. An interval of zero or
// less returns t unchanged. Ties in NEAREST mode round up, matching how wall
// clocks are usually read.
func RoundToInterval(t time.Time, interval time.Duration, dir RoundDirection) time.Time {
	if interval <= 0 {
		return t
	}

	ms := t.UnixMilli()
	intervalMs := interval.Milliseconds()
	remainder := ms % intervalMs
	if remainder < 0 {
		remainder += intervalMs
	}
	if remainder == 0 {
		return t
	}

	var rounded int64
	switch dir {
	case RoundUp:
		rounded = ms - remainder + intervalMs
	case RoundDown:
		rounded = ms - remainder
	default:
		if remainder*2 >= intervalMs {
			rounded = ms - remainder + intervalMs
		} else {
			rounded = ms - remainder
		}
	}

	return time.UnixMilli(rounded).In(t.Location())
}

// DurationMinutes returns the span from start to end in whole minutes,
// rounded to the nearest minute. A negative result means end precedes start.
func DurationMinutes(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

// FormatMinutesToHHMM renders a minute count as "H:MM", e.g. 510 -> "8:30".
func FormatMinutesToHHMM(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%d:%02d", sign, minutes/60, minutes%60)
}

// MinutesToHours converts minutes to fractional hours.
func MinutesToHours(minutes int) float64 {
	return float64(minutes) / 60
}

// ParseDate parses a YYYY-MM-DD string in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
