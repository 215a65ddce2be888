package analytics

import (
	"context"
	"testing"
)

func TestAdminDashboard(t *testing.T) {
	svc := newTestService(t, fixtureStore())
	got := svc.AdminDashboard(context.Background(), Options{Year: 2024})

	if got.Stats.TotalStudents != 2 {
		t.Errorf("stats section empty: %+v", got.Stats)
	}
	if got.Revenue.Months[2].Amount != 80000 {
		t.Errorf("revenue section = %+v", got.Revenue.Months[2])
	}
	if got.Demographics.Total != 2 {
		t.Errorf("demographics section = %+v", got.Demographics)
	}
	if len(got.Attendance) != 7 || len(got.Activity) != 3 {
		t.Errorf("attendance/activity sections = %d/%d", len(got.Attendance), len(got.Activity))
	}
}

// The worst possible backend yields an all-zero dashboard, never a panic or
// an error.
func TestAdminDashboardFullyDegraded(t *testing.T) {
	svc := newTestService(t, errStore{})
	got := svc.AdminDashboard(context.Background(), Options{})

	if got.Stats != (StatsSummary{}) {
		t.Errorf("stats not zero: %+v", got.Stats)
	}
	if len(got.Activity) != 0 {
		t.Errorf("activity not empty: %+v", got.Activity)
	}
	for _, m := range got.Revenue.Months {
		if m.Amount != 0 {
			t.Errorf("revenue not zero: %+v", m)
		}
	}
}

func TestFinanceDashboard(t *testing.T) {
	svc := newTestService(t, fixtureStore())
	got := svc.FinanceDashboard(context.Background(), Options{Year: 2024})

	if !got.CollectedVsPending.Approximate {
		t.Error("pending estimate not labeled approximate")
	}
	if len(got.CategoryRollup) == 0 || len(got.PaymentMethods) == 0 {
		t.Errorf("finance sections empty: %+v", got)
	}
	if len(got.Transactions) != 3 || len(got.ClassRevenue) != 2 {
		t.Errorf("transactions/classes = %d/%d", len(got.Transactions), len(got.ClassRevenue))
	}
}

func TestParentDashboardScoped(t *testing.T) {
	svc := newTestService(t, fixtureStore())
	got := svc.ParentDashboard(context.Background(), "par1", Options{})

	if len(got.Children) != 1 {
		t.Fatalf("children = %d, want only par1's child", len(got.Children))
	}
	child := got.Children[0]
	if child.Name != "Awa Diallo" || child.Class != "6ème A" {
		t.Errorf("child = %+v", child)
	}
	if child.Expected != 100000 || child.Paid != 70000 || child.Outstanding != 30000 {
		t.Errorf("child ledger = %+v", child)
	}
	for _, p := range got.RecentPayments {
		if p.studentID != "s1" {
			t.Errorf("payment of another family leaked: %+v", p)
		}
	}
	if len(got.RecentPayments) != 2 {
		t.Errorf("recent payments = %d, want 2", len(got.RecentPayments))
	}
	for _, n := range got.Notices {
		if n.Title == "Staff meeting" {
			t.Error("teacher notice leaked into parent feed")
		}
	}
}

func TestStudentDashboard(t *testing.T) {
	svc := newTestService(t, fixtureStore())
	got := svc.StudentDashboard(context.Background(), "s2", Options{})

	if got.Name != "Seydou Traoré" || got.Class != "5ème B" {
		t.Errorf("identity = %q %q", got.Name, got.Class)
	}
	if len(got.Fees) != 1 {
		t.Fatalf("fees = %d, want 1", len(got.Fees))
	}
	fee := got.Fees[0]
	if fee.FeeType != "Frais de Transport" || fee.Category != "transport" {
		t.Errorf("fee = %+v", fee)
	}
	if fee.Outstanding != 60000 {
		t.Errorf("outstanding = %v, want 60000", fee.Outstanding)
	}
	// s2 was absent Monday, present Tuesday.
	if got.AttendanceRate != 50 {
		t.Errorf("AttendanceRate = %d, want 50", got.AttendanceRate)
	}
}

func TestTeacherDashboard(t *testing.T) {
	svc := newTestService(t, fixtureStore())
	got := svc.TeacherDashboard(context.Background(), "t1", Options{})

	if got.Name != "Fatou Ndiaye" {
		t.Errorf("name = %q", got.Name)
	}
	if got.TotalClasses != 2 || got.TotalStudents != 2 {
		t.Errorf("totals = %d classes %d students", got.TotalClasses, got.TotalStudents)
	}
	found := false
	for _, n := range got.Notices {
		if n.Title == "Staff meeting" {
			found = true
		}
	}
	if !found {
		t.Error("teacher notice missing from feed")
	}
}

func TestRoleDashboardsFullyDegraded(t *testing.T) {
	svc := newTestService(t, errStore{})
	ctx := context.Background()

	if got := svc.ParentDashboard(ctx, "par1", Options{}); len(got.Children) != 0 {
		t.Errorf("parent children not empty: %+v", got.Children)
	}
	if got := svc.StudentDashboard(ctx, "s1", Options{}); got.Name != "" || len(got.Fees) != 0 {
		t.Errorf("student dashboard not zero: %+v", got)
	}
	if got := svc.TeacherDashboard(ctx, "t1", Options{}); got.TotalClasses != 0 {
		t.Errorf("teacher dashboard not zero: %+v", got)
	}
}
