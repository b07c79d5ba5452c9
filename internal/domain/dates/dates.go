// Package dates provides ISO (YYYY-MM-DD) calendar arithmetic.
//
// Every record in the ledger carries dates as plain ISO strings, so the
// helpers here work on strings and only drop to time.Time where day math
// requires it. ISO strings compare chronologically under plain string
// comparison, which the scoring windows rely on.
package dates

import (
	"time"
)

// ISOLayout is the wire format for all ledger dates.
const ISOLayout = "2006-01-02"

const (
	daysPerWeek = 7
	hoursPerDay = 24
)

// Format renders t as an ISO date, dropping the time-of-day component.
func Format(t time.Time) string {
	return t.Format(ISOLayout)
}

// Parse reads an ISO date string into a midnight-UTC time.
func Parse(iso string) (time.Time, error) {
	t, err := time.Parse(ISOLayout, iso)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// StartOfWeek returns the Monday-aligned start of the ISO week containing t.
func StartOfWeek(t time.Time) time.Time {
	// Weekday is Sunday=0; shift so Monday=0.
	back := (int(t.Weekday()) + 6) % daysPerWeek
	y, m, d := t.AddDate(0, 0, -back).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOfWeekISO returns the Monday of the week containing the given ISO
// date. An unparseable input is returned unchanged.
func StartOfWeekISO(iso string) string {
	t, err := Parse(iso)
	if err != nil {
		return iso
	}
	return Format(StartOfWeek(t))
}

// AddDays shifts an ISO date by a number of days (negative to go back).
// An unparseable input is returned unchanged.
func AddDays(iso string, days int) string {
	t, err := Parse(iso)
	if err != nil {
		return iso
	}
	return Format(t.AddDate(0, 0, days))
}

// DaysBetween returns b minus a in whole days. If either input is
// unparseable the difference degrades to zero rather than failing.
func DaysBetween(a, b string) int {
	ta, errA := Parse(a)
	tb, errB := Parse(b)
	if errA != nil || errB != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / hoursPerDay)
}

// Today renders the current wall-clock date as ISO.
func Today() string {
	return Format(time.Now())
}
