package analytics

import (
	"context"
	"testing"
	"time"
)

func TestClassRevenueRollup(t *testing.T) {
	svc := newTestService(t, fixtureStore())
	got := svc.ClassRevenueRollup(context.Background(), Options{})

	if len(got) != 2 {
		t.Fatalf("classes = %d, want 2", len(got))
	}
	for _, row := range got {
		if row.Collected+row.Outstanding != row.TotalExpected {
			t.Errorf("%s: collected %v + outstanding %v != expected %v",
				row.Class, row.Collected, row.Outstanding, row.TotalExpected)
		}
	}
	// 5ème B holds s2's transport assignment: 40000 of 100000.
	if row := got[0]; row.Class != "5ème B" || row.Collected != 40000 || row.CollectionRate != 40 {
		t.Errorf("5ème B = %+v, want collected 40000 rate 40", row)
	}
	if row := got[1]; row.Class != "6ème A" || row.Collected != 70000 || row.CollectionRate != 70 {
		t.Errorf("6ème A = %+v, want collected 70000 rate 70", row)
	}
}

// With a date range the collected figure must come from payments inside the
// range, never the cumulative paid amount.
func TestClassRevenueRollupRanged(t *testing.T) {
	svc := newTestService(t, fixtureStore())
	got := svc.ClassRevenueRollup(context.Background(), Options{
		From: date(2024, 3, 1),
		To:   time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
	})

	for _, row := range got {
		switch row.Class {
		case "6ème A": // s1 paid 50000 in March, cumulative is 70000
			if row.Collected != 50000 {
				t.Errorf("6ème A ranged collected = %v, want 50000", row.Collected)
			}
		case "5ème B": // s2 paid 30000 in March, cumulative is 40000
			if row.Collected != 30000 {
				t.Errorf("5ème B ranged collected = %v, want 30000", row.Collected)
			}
		}
	}
}
