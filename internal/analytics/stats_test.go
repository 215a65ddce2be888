package analytics

import (
	"context"
	"testing"
)

func TestStatsSummary(t *testing.T) {
	svc := newTestService(t, fixtureStore())
	got := svc.StatsSummary(context.Background(), Options{})

	if got.TotalStudents != 2 || got.TotalTeachers != 1 || got.TotalClasses != 2 || got.TotalParents != 2 {
		t.Errorf("counts = %+v", got)
	}
	if got.TotalRevenue != 100000 {
		t.Errorf("TotalRevenue = %v, want 100000", got.TotalRevenue)
	}
	if got.OutstandingFees != 90000 {
		t.Errorf("OutstandingFees = %v, want 90000", got.OutstandingFees)
	}
	// Paid 110000 of 200000 expected, from the assignment ledger.
	if got.CollectionRate != 55 {
		t.Errorf("CollectionRate = %d, want 55", got.CollectionRate)
	}
	// Mean of the fixture register ratios 0.5 and 1.0.
	if got.AttendanceRate != 75 {
		t.Errorf("AttendanceRate = %d, want 75", got.AttendanceRate)
	}
}

func TestStatsSummaryDeltas(t *testing.T) {
	svc := newTestService(t, fixtureStore())
	got := svc.StatsSummary(context.Background(), Options{})

	// One admission in April, none in March: +100, never a division error.
	if got.StudentsChange != 100 {
		t.Errorf("StudentsChange = %d, want 100", got.StudentsChange)
	}
	// No hires in April or March.
	if got.TeachersChange != 0 {
		t.Errorf("TeachersChange = %d, want 0", got.TeachersChange)
	}
	// April collected nothing, March collected 80000.
	if got.RevenueChange != -100 {
		t.Errorf("RevenueChange = %d, want -100", got.RevenueChange)
	}
}

// A failed attendance fetch zeroes only the attendance rate; every other
// figure still comes through.
func TestStatsSummaryDegradesAttendance(t *testing.T) {
	svc := newTestService(t, noAttendanceStore{fixtureStore()})
	got := svc.StatsSummary(context.Background(), Options{})

	if got.AttendanceRate != 0 {
		t.Errorf("AttendanceRate = %d, want degraded 0", got.AttendanceRate)
	}
	if got.TotalStudents != 2 || got.TotalRevenue != 100000 {
		t.Errorf("sibling figures degraded too: %+v", got)
	}
}

func TestStatsSummaryAllUpstreamsDown(t *testing.T) {
	svc := newTestService(t, errStore{})
	got := svc.StatsSummary(context.Background(), Options{})

	if got != (StatsSummary{}) {
		t.Fatalf("fully degraded summary not zero: %+v", got)
	}
}
