package model

import (
	"fmt"
	"time"
)

// DayLayout is the canonical calendar-day format used on the wire and in
// every same-day comparison.
const DayLayout = "2006-01-02"

// Day is a calendar date in YYYY-MM-DD form. Two days are the same day
// exactly when their strings are equal; no timezone normalization happens.
type Day string

// Today returns the current local calendar day.
func Today() Day {
	return DayOf(time.Now())
}

// DayOf returns the calendar day of t in t's location.
func DayOf(t time.Time) Day {
	return Day(t.Format(DayLayout))
}

// ParseDay validates s as a YYYY-MM-DD date.
func ParseDay(s string) (Day, error) {
	if _, err := time.Parse(DayLayout, s); err != nil {
		return "", fmt.Errorf("invalid day %q, use YYYY-MM-DD: %w", s, err)
	}
	return Day(s), nil
}

// String implements fmt.Stringer.
func (d Day) String() string { return string(d) }

// Valid reports whether d parses as a YYYY-MM-DD date.
func (d Day) Valid() bool {
	_, err := time.Parse(DayLayout, string(d))
	return err == nil
}

// Time returns midnight UTC of d.
func (d Day) Time() (time.Time, error) {
	return time.Parse(DayLayout, string(d))
}

// AddDays returns the day n days after d (before, for negative n).
// An invalid day yields the empty Day.
func (d Day) AddDays(n int) Day {
	t, err := d.Time()
	if err != nil {
		return ""
	}
	return DayOf(t.AddDate(0, 0, n))
}

// Weekday returns the day of the week of d. Invalid days report Sunday.
func (d Day) Weekday() time.Weekday {
	t, err := d.Time()
	if err != nil {
		return time.Sunday
	}
	return t.Weekday()
}

// StartOfWeek returns the Monday of the ISO week containing d.
func (d Day) StartOfWeek() Day {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// Label formats d for headers, e.g. "Monday, Jan 2".
func (d Day) Label() string {
	t, err := d.Time()
	if err != nil {
		return string(d)
	}
	return t.Format("Monday, Jan 2")
}
