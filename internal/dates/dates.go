// Package dates holds the pure calendar predicates behind order filtering.
// Weeks run Monday through Sunday in local time.
package dates

import "time"

// StartOfWeek returns Monday 00:00:00.000 of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := (int(t.Weekday()) + 6) % 7 // Monday as start
	return time.Date(t.Year(), t.Month(), t.Day()-day, 0, 0, 0, 0, t.Location())
}

// EndOfWeek returns Sunday 23:59:59.999 of the week containing t.
func EndOfWeek(t time.Time) time.Time {
	s := StartOfWeek(t)
	return time.Date(s.Year(), s.Month(), s.Day()+6, 23, 59, 59, 999*int(time.Millisecond), s.Location())
}

// SameDay reports whether candidate falls on the same local calendar day as
// ref. Candidates carry whatever location they were parsed with (UTC for
// RFC3339 "Z" strings), so both sides are converted to local time before the
// calendar fields are compared. A nil candidate never matches.
func SameDay(candidate *time.Time, ref time.Time) bool {
	if candidate == nil {
		return false
	}
	y1, m1, d1 := candidate.In(time.Local).Date()
	y2, m2, d2 := ref.In(time.Local).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SameWeek reports whether candidate falls within ref's week, boundaries
// inclusive. A nil candidate never matches.
func SameWeek(candidate *time.Time, ref time.Time) bool {
	if candidate == nil {
		return false
	}
	start := StartOfWeek(ref)
	end := EndOfWeek(ref)
	return !candidate.Before(start) && !candidate.After(end)
}

// SameMonth reports whether candidate falls in the same year and month as
// ref, both read in local time. A nil candidate never matches.
func SameMonth(candidate *time.Time, ref time.Time) bool {
	if candidate == nil {
		return false
	}
	c := candidate.In(time.Local)
	r := ref.In(time.Local)
	return c.Year() == r.Year() && c.Month() == r.Month()
}
