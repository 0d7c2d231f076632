package booking

import "time"

// Stay boundaries carry date-only semantics. All dates are normalized to
// UTC midnight before they are stored or compared.

// NormalizeDate truncates t to UTC midnight.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current date at UTC midnight.
func Today() time.Time {
	return NormalizeDate(time.Now())
}

// EndOfToday returns the last instant of the current UTC day, used as the
// inclusive upper bound of created-at range queries.
func EndOfToday() time.Time {
	return Today().AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// NightsBetween returns the number of nights in the half-open range
// [start, end).
func NightsBetween(start, end time.Time) int {
	return int(NormalizeDate(end).Sub(NormalizeDate(start)).Hours() / 24)
}
