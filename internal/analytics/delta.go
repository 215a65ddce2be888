package analytics

import (
	"math"
	"time"
)

// PercentDelta returns the month-over-month change as a signed integer
// percent. A zero previous value yields +100 when anything was gained and 0
// otherwise, never a division by zero.
func PercentDelta(current, previous float64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round((current - previous) / previous * 100))
}

// CountDelta is the raw signed difference between two counts.
func CountDelta(current, previous int) int { return current - previous }

// monthWindow returns the inclusive calendar-month bounds containing t.
func monthWindow(t time.Time) (from, to time.Time) {
	from = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	to = from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return from, to
}

// dayWindow returns the inclusive bounds of the calendar day containing t.
func dayWindow(t time.Time) (from, to time.Time) {
	from = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	to = from.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return from, to
}

// previousMonth returns a time inside the calendar month before t's.
func previousMonth(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.Add(-time.Hour)
}

func inWindow(ts, from, to time.Time) bool {
	return !ts.Before(from) && !ts.After(to)
}

func roundPct(num, den float64) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(num / den * 100))
}
