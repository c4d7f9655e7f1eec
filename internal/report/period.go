// Package report computes summaries over snapshots of a user's transactions.
// Everything here is pure: no I/O, no ambient clock.
package report

import "time"

// Period selects a calendar month. A zero Month or Year means "all time".
type Period struct {
	Month int
	Year  int
}

// AllTime is the unfiltered period.
var AllTime = Period{}

// MonthOf returns the period containing t, in t's location.
func MonthOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// IsAllTime reports whether p leaves records unfiltered.
func (p Period) IsAllTime() bool {
	return p.Month == 0 || p.Year == 0
}

// Range returns the first and last instants of the month in loc. The last day
// comes from day 0 of the following month.
func (p Period) Range(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, loc)
	end := time.Date(p.Year, time.Month(p.Month)+1, 0, 23, 59, 59, int(time.Second-time.Nanosecond), loc)
	return start, end
}

// Contains reports whether t falls inside p, using the month boundaries of t's own location.
func (p Period) Contains(t time.Time) bool {
	if p.IsAllTime() {
		return true
	}
	start, end := p.Range(t.Location())
	return !t.Before(start) && !t.After(end)
}

// FilterByPeriod returns the records whose date lies in p, preserving order.
// The input slice is never modified.
func FilterByPeriod[T any](records []T, p Period, dateOf func(T) time.Time) []T {
	if p.IsAllTime() {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if p.Contains(dateOf(r)) {
			out = append(out, r)
		}
	}
	return out
}
