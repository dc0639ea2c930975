package analytics

import (
	"strings"
	"time"
)

// Stored date format and the calendar month format accepted as a period
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// ParseDate parses a stored date in loc. RFC3339 timestamps are accepted too.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), true
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// MonthRange returns the calendar month containing t
func MonthRange(t time.Time) DateRange {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return DateRange{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
	}
}

// YearToDate returns Jan 1 of t's year through the end of t's day
func YearToDate(t time.Time) DateRange {
	return DateRange{
		Start: time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location()),
		End:   endOfDay(t),
	}
}

// LastMonths returns n whole calendar months, oldest first, ending with t's month
func LastMonths(t time.Time, n int) []DateRange {
	if n <= 0 {
		return []DateRange{}
	}

	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, -(n - 1), 0)
	ranges := make([]DateRange, 0, n)
	for i := 0; i < n; i++ {
		ranges = append(ranges, MonthRange(first.AddDate(0, i, 0)))
	}
	return ranges
}

// GetDateRange returns a date range for a named period relative to now, or
// for a calendar month given as YYYY-MM. ok is false for an unknown period.
func GetDateRange(period string, now time.Time) (DateRange, bool) {
	var start, end time.Time

	switch period {
	case "today":
		start, end = startOfDay(now), endOfDay(now)

	case "this_week":
		// Start of week (Monday)
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = startOfDay(now.AddDate(0, 0, -weekday+1))
		end = endOfDay(now)

	case "this_month":
		return MonthRange(now), true

	case "last_month":
		return MonthRange(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)), true

	case "this_year":
		return YearToDate(now), true

	case "last_30_days":
		start, end = startOfDay(now.AddDate(0, 0, -30)), endOfDay(now)

	case "last_90_days":
		start, end = startOfDay(now.AddDate(0, 0, -90)), endOfDay(now)

	default:
		// a calendar month, "2026-09"
		if month, err := time.ParseInLocation(MonthLayout, period, now.Location()); err == nil {
			return MonthRange(month), true
		}
		return DateRange{}, false
	}

	return DateRange{Start: start, End: end}, true
}
