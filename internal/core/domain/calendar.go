package domain

import (
	"fmt"
	"time"
)

// DayLayout is the canonical CalendarDay format.
const DayLayout = "2006-01-02"

// CalendarDay identifies a local calendar day in YYYY-MM-DD form.
//
// Days compare as strings: the fixed-width layout sorts chronologically.
// Arithmetic runs on the year/month/day components in UTC so that DST
// transitions in the local zone never shift a day.
type CalendarDay string

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) CalendarDay {
	return CalendarDay(t.Format(DayLayout))
}

// Today returns the current day in the process' local time zone.
func Today() CalendarDay {
	return DayOf(time.Now())
}

func ParseDay(s string) (CalendarDay, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDay, s)
	}
	return DayOf(t), nil
}

func (d CalendarDay) Valid() bool {
	_, err := ParseDay(string(d))
	return err == nil
}

func (d CalendarDay) String() string {
	return string(d)
}

// midnight returns d at 00:00 UTC. Invalid days yield the zero time.
func (d CalendarDay) midnight() time.Time {
	t, err := time.Parse(DayLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d CalendarDay) AddDays(n int) CalendarDay {
	return DayOf(d.midnight().AddDate(0, 0, n))
}

func (d CalendarDay) Before(other CalendarDay) bool {
	return d < other
}

func (d CalendarDay) After(other CalendarDay) bool {
	return d > other
}

// Weekday returns Sunday=0 .. Saturday=6.
func (d CalendarDay) Weekday() time.Weekday {
	return d.midnight().Weekday()
}

func (d CalendarDay) Year() int {
	return d.midnight().Year()
}

func (d CalendarDay) Month() time.Month {
	return d.midnight().Month()
}

// DaysBetween returns the signed number of days from a to b.
func DaysBetween(a, b CalendarDay) int {
	return int(b.midnight().Sub(a.midnight()).Hours() / 24)
}

// GenerateWindow returns n consecutive days ending at anchor, oldest first.
func GenerateWindow(n int, anchor CalendarDay) []CalendarDay {
	if n <= 0 {
		return []CalendarDay{}
	}

	days := make([]CalendarDay, n)
	for i := 0; i < n; i++ {
		days[i] = anchor.AddDays(i - n + 1)
	}
	return days
}
