package domain

import "time"

// Calendar-day helpers. All ledger dates are YYYY-MM-DD strings; windows and
// streak gaps are calendar-day arithmetic, not wall-clock durations.

// Day formats a time as its calendar day.
func Day(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// DaysBetween returns the signed calendar-day difference a − b.
// Returns 0 for unparseable input; callers validate dates at the boundary.
func DaysBetween(a, b string) int {
	ta, err := ParseDay(a)
	if err != nil {
		return 0
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0
	}
	return int(ta.Sub(tb).Hours() / 24)
}

// WeekStart returns the start of the inclusive 7-day trailing window.
func WeekStart(now time.Time) string {
	return Day(now.AddDate(0, 0, -6))
}

// MonthStart returns the first day of now's calendar month.
func MonthStart(now time.Time) string {
	return Day(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))
}
