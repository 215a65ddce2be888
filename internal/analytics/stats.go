package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"ecole/internal/core"
	applog "ecole/internal/log"
	"ecole/internal/store"
)

// StatsSummary is the headline card row of the admin dashboard.
type StatsSummary struct {
	TotalStudents int `json:"totalStudents"`
	TotalTeachers int `json:"totalTeachers"`
	TotalClasses  int `json:"totalClasses"`
	TotalParents  int `json:"totalParents"`

	TotalRevenue float64 `json:"totalRevenue"`
	RevenueToday float64 `json:"revenueToday"`

	// AttendanceRate is the mean presence ratio of the recent registers,
	// as an integer percent. Late counts as attended.
	AttendanceRate int `json:"attendanceRate"`

	OutstandingFees float64 `json:"outstandingFees"`
	// CollectionRate is cumulative paid over expected from the assignment
	// ledger, as an integer percent.
	CollectionRate int `json:"collectionRate"`

	// Month-over-month changes, integer percent (counts compare new
	// admissions and hires per calendar month; the collection-rate change
	// is in percentage points).
	StudentsChange       int `json:"studentsChange"`
	TeachersChange       int `json:"teachersChange"`
	RevenueChange        int `json:"revenueChange"`
	CollectionRateChange int `json:"collectionRateChange"`
}

// StatsSummary aggregates counts, revenue, attendance and collection figures.
// A failed fetch zeroes only the figures derived from it.
func (s *Service) StatsSummary(ctx context.Context, o Options) StatsSummary {
	var (
		students    []core.Student
		teachers    []core.Teacher
		classes     []core.Class
		parents     []core.Parent
		payments    []core.Payment
		assignments []core.FeeAssignment
		attendance  []core.Attendance
	)
	g := &errgroup.Group{}
	settle(ctx, g, s.log, "students", &students, func(ctx context.Context) ([]core.Student, error) {
		return s.store.ListStudents(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "teachers", &teachers, func(ctx context.Context) ([]core.Teacher, error) {
		return s.store.ListTeachers(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "classes", &classes, func(ctx context.Context) ([]core.Class, error) {
		return s.store.ListClasses(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "parents", &parents, func(ctx context.Context) ([]core.Parent, error) {
		return s.store.ListParents(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "payments", &payments, func(ctx context.Context) ([]core.Payment, error) {
		return s.store.ListPayments(ctx, o.window())
	})
	settle(ctx, g, s.log, "assignments", &assignments, func(ctx context.Context) ([]core.FeeAssignment, error) {
		return s.store.ListAssignments(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "attendance", &attendance, func(ctx context.Context) ([]core.Attendance, error) {
		return s.store.ListAttendance(ctx, store.Filter{Limit: s.window, NewestFirst: true})
	})
	_ = g.Wait()

	now := s.now()
	out := StatsSummary{
		TotalStudents: len(students),
		TotalTeachers: len(teachers),
		TotalClasses:  len(classes),
		TotalParents:  len(parents),
	}

	dayFrom, dayTo := dayWindow(now)
	curFrom, curTo := monthWindow(now)
	prevFrom, prevTo := monthWindow(previousMonth(now))
	var revenueCurMonth, revenuePrevMonth float64
	for _, p := range payments {
		out.TotalRevenue += p.Amount
		if inWindow(p.PaidAt, dayFrom, dayTo) {
			out.RevenueToday += p.Amount
		}
		if inWindow(p.PaidAt, curFrom, curTo) {
			revenueCurMonth += p.Amount
		}
		if inWindow(p.PaidAt, prevFrom, prevTo) {
			revenuePrevMonth += p.Amount
		}
	}
	out.RevenueChange = PercentDelta(revenueCurMonth, revenuePrevMonth)

	var paidSum, expectedSum float64
	for _, a := range assignments {
		paidSum += a.PaidAmount
		expectedSum += a.TotalAmount
		if outstanding := a.Outstanding(); outstanding > 0 {
			out.OutstandingFees += outstanding
		}
	}
	out.CollectionRate = roundPct(paidSum, expectedSum)
	// Rate before this month's payments landed, so the change reflects the
	// calendar month just like the other deltas.
	prevRate := roundPct(paidSum-revenueCurMonth, expectedSum)
	out.CollectionRateChange = out.CollectionRate - prevRate

	if len(attendance) > 0 {
		var sum float64
		for _, a := range attendance {
			sum += a.PresenceRatio()
		}
		out.AttendanceRate = roundPct(sum, float64(len(attendance)))
	}

	out.StudentsChange = PercentDelta(
		float64(countAdmitted(students, curFrom, curTo)),
		float64(countAdmitted(students, prevFrom, prevTo)))
	out.TeachersChange = PercentDelta(
		float64(countJoined(teachers, curFrom, curTo)),
		float64(countJoined(teachers, prevFrom, prevTo)))

	s.log.DebugContext(ctx, "stats summary built",
		applog.FieldReport, "stats",
		applog.FieldCount, out.TotalStudents)
	return out
}

func countAdmitted(students []core.Student, from, to time.Time) int {
	n := 0
	for _, st := range students {
		if inWindow(st.AdmittedAt, from, to) {
			n++
		}
	}
	return n
}

func countJoined(teachers []core.Teacher, from, to time.Time) int {
	n := 0
	for _, t := range teachers {
		if inWindow(t.JoinedAt, from, to) {
			n++
		}
	}
	return n
}
