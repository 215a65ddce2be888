package analytics

import "time"

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthName returns the short display name for a calendar month.
func MonthName(m time.Month) string { return monthNames[m-1] }

// InferYear picks the reporting year for a time series. When the requested
// year has at least one dated record it is kept as-is. Otherwise the most
// populated year wins, most recent year on a tie; with no records at all the
// requested year comes back unchanged. Demo data and real usage rarely align
// with the literal current year, and twelve zero months is a worse answer
// than the most populated year.
func InferYear(dates []time.Time, requested int) int {
	counts := make(map[int]int, 4)
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		counts[d.Year()]++
	}
	if counts[requested] > 0 || len(counts) == 0 {
		return requested
	}
	best, bestCount := requested, 0
	for year, n := range counts {
		if n > bestCount || (n == bestCount && year > best) {
			best, bestCount = year, n
		}
	}
	return best
}

// groupByMonth buckets records into the twelve calendar months of year,
// dropping records dated outside it.
func groupByMonth[T any](items []T, date func(T) time.Time, year int) [12][]T {
	var buckets [12][]T
	for _, it := range items {
		d := date(it)
		if d.IsZero() || d.Year() != year {
			continue
		}
		m := d.Month() - 1
		buckets[m] = append(buckets[m], it)
	}
	return buckets
}
