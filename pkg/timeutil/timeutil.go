package timeutil

import (
	"errors"
	"time"
)

// ErrTooManyDays is returned when a day iteration would exceed MaxDays.
var ErrTooManyDays = errors.New("date range spans too many days")

// MaxDays bounds day iteration as a guard against malformed ranges.
const MaxDays = 500

// StartOfDay returns midnight of the day containing t, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the first moment of the day after t.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// StartOfWeek returns midnight of the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // ISO: Sunday is the last day of the week
	}
	return StartOfDay(t).AddDate(0, 0, -(wd - 1))
}

// EndOfWeek returns the first moment of the week after t.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 7)
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the first moment of the month after t.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0)
}

// StartOfYear returns midnight of January 1st of t's year.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// EndOfYear returns the first moment of the year after t.
func EndOfYear(t time.Time) time.Time {
	return StartOfYear(t).AddDate(1, 0, 0)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DayKey returns the canonical map key for the day containing t.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// DaysBetween lists the midnights of every day touched by [start, end).
// An end exactly at midnight does not include that day, so a full-day
// range [May 1 00:00, May 2 00:00) yields only May 1. Iteration is
// capped at MaxDays; longer ranges return ErrTooManyDays.
func DaysBetween(start, end time.Time) ([]time.Time, error) {
	end = end.Add(-time.Microsecond)
	if end.Before(start) {
		return nil, nil
	}
	var days []time.Time
	day := StartOfDay(start)
	last := StartOfDay(end)
	for !day.After(last) {
		if len(days) >= MaxDays {
			return nil, ErrTooManyDays
		}
		days = append(days, day)
		day = day.AddDate(0, 0, 1)
	}
	return days, nil
}
