package utils

import "time"

// DateOnly truncates t to midnight UTC, the canonical form for calendar
// dates. Reservation and override dates are day-granular; storing anything
// finer makes the overlap and uniqueness checks lie.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInclusive returns every day from start through end, both inclusive.
// Returns nil when end is before start.
func DaysInclusive(start, end time.Time) []time.Time {
	start = DateOnly(start)
	end = DateOnly(end)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
