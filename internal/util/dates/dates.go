package dates_util

import "time"

// StartOfDay truncates a timestamp to UTC midnight. Burndown points and
// reminder gating both key on this normalized date.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// InclusiveDays returns the number of calendar days between two dates,
// counting both endpoints. Returns 0 when end is before start.
func InclusiveDays(start, end time.Time) int {
	start = StartOfDay(start)
	end = StartOfDay(end)

	if end.Before(start) {
		return 0
	}

	return int(end.Sub(start).Hours()/24) + 1
}

// DaysUntil returns whole calendar days from now until the given date,
// floored at zero.
func DaysUntil(now, until time.Time) int {
	days := InclusiveDays(now, until) - 1
	if days < 0 {
		return 0
	}

	return days
}

// WorkingDaysInMonth counts Monday-Friday days for the given month.
func WorkingDaysInMonth(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	count := 0

	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		weekday := day.Weekday()
		if weekday != time.Saturday && weekday != time.Sunday {
			count++
		}
	}

	return count
}
