// Package timeutil converts between wall-clock strings, minutes since
// midnight, calendar dates and human-friendly durations.
package timeutil

import (
	"fmt"
	"time"
)

const (
	// MinutesPerDay is the length of a clock day in minutes.
	MinutesPerDay = 24 * 60

	layoutDate = "2006-01-02"
)

// ParseError reports a malformed "HH:MM" clock string.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid time %q: %s", e.Input, e.Reason)
}

// ToMinutes parses a zero-padded "HH:MM" string into minutes since midnight.
func ToMinutes(hhmm string) (int, error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, &ParseError{Input: hhmm, Reason: "expected HH:MM"}
	}
	h, ok := twoDigits(hhmm[0], hhmm[1])
	if !ok {
		return 0, &ParseError{Input: hhmm, Reason: "hour is not a number"}
	}
	m, ok := twoDigits(hhmm[3], hhmm[4])
	if !ok {
		return 0, &ParseError{Input: hhmm, Reason: "minute is not a number"}
	}
	if h > 23 {
		return 0, &ParseError{Input: hhmm, Reason: "hour out of range 00-23"}
	}
	if m > 59 {
		return 0, &ParseError{Input: hhmm, Reason: "minute out of range 00-59"}
	}
	return h*60 + m, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// Normalize wraps minutes into [0, MinutesPerDay).
func Normalize(minutes int) int {
	m := minutes % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return m
}

// ToClockString formats minutes since midnight as "HH:MM", wrapping values
// outside a single day.
func ToClockString(minutes int) string {
	m := Normalize(minutes)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// FormatDuration renders minutes as "7h" or "7h 30m".
func FormatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// MinutesOf returns the minutes since local midnight for t.
func MinutesOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// DateKey renders the calendar date of t in its own location.
func DateKey(t time.Time) string {
	return t.Format(layoutDate)
}

// ParseDateKey parses a DateKey in loc.
func ParseDateKey(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(layoutDate, s, loc)
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}

// At returns the instant on t's calendar day that is minutes past midnight.
// Minutes may exceed a day; the result then falls on a later date.
func At(t time.Time, minutes int) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, minutes, 0, 0, t.Location())
}

// SameDay reports whether a and b share a calendar date in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return DateKey(a) == DateKey(b)
}
