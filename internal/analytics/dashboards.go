package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ecole/internal/core"
	"ecole/internal/store"
)

// AdminDashboard is the full admin landing view.
type AdminDashboard struct {
	Stats        StatsSummary        `json:"stats"`
	Revenue      RevenueTimeSeries   `json:"revenue"`
	Demographics Demographics        `json:"demographics"`
	Attendance   []WeekdayAttendance `json:"attendance"`
	Activity     []ActivityItem      `json:"activity"`
}

// AdminDashboard runs its section builders in parallel; a degraded section
// keeps its zero value while the rest of the view renders normally.
func (s *Service) AdminDashboard(ctx context.Context, o Options) AdminDashboard {
	var out AdminDashboard
	g := &errgroup.Group{}
	settleTask(g, func() { out.Stats = s.StatsSummary(ctx, o) })
	settleTask(g, func() { out.Revenue = s.RevenueTimeSeries(ctx, o) })
	settleTask(g, func() { out.Demographics = s.Demographics(ctx, o) })
	settleTask(g, func() { out.Attendance = s.AttendanceByWeekday(ctx, o) })
	settleTask(g, func() { out.Activity = s.RecentActivity(ctx, o) })
	_ = g.Wait()
	return out
}

// FinanceDashboard is the finance-office view.
type FinanceDashboard struct {
	Stats              StatsSummary       `json:"stats"`
	RevenueByCategory  RevenueByCategory  `json:"revenueByCategory"`
	CollectedVsPending CollectedVsPending `json:"collectedVsPending"`
	CategoryRollup     []CategoryRollup   `json:"categoryRollup"`
	PaymentMethods     []MethodSlice      `json:"paymentMethods"`
	Transactions       []Transaction      `json:"transactions"`
	ClassRevenue       []ClassRevenue     `json:"classRevenue"`
}

func (s *Service) FinanceDashboard(ctx context.Context, o Options) FinanceDashboard {
	var out FinanceDashboard
	g := &errgroup.Group{}
	settleTask(g, func() { out.Stats = s.StatsSummary(ctx, o) })
	settleTask(g, func() { out.RevenueByCategory = s.RevenueByCategory(ctx, o) })
	settleTask(g, func() { out.CollectedVsPending = s.CollectedVsPending(ctx, o) })
	settleTask(g, func() { out.CategoryRollup = s.FeeCategoryRollup(ctx, o) })
	settleTask(g, func() { out.PaymentMethods = s.PaymentMethodBreakdown(ctx, o) })
	settleTask(g, func() { out.Transactions = s.RecentTransactions(ctx, o) })
	settleTask(g, func() { out.ClassRevenue = s.ClassRevenueRollup(ctx, o) })
	_ = g.Wait()
	return out
}

// ChildSummary is one child's fee position on the parent dashboard.
type ChildSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Class       string  `json:"class"`
	Expected    float64 `json:"expected"`
	Paid        float64 `json:"paid"`
	Outstanding float64 `json:"outstanding"`
}

type ParentDashboard struct {
	Children       []ChildSummary `json:"children"`
	RecentPayments []Transaction  `json:"recentPayments"`
	Notices        []ActivityItem `json:"notices"`
}

// ParentDashboard scopes everything to the requesting parent's children. The
// parent id arrives as an explicit parameter; there is no ambient identity.
func (s *Service) ParentDashboard(ctx context.Context, parentID core.ID, o Options) ParentDashboard {
	var (
		children    []core.Student
		classes     []core.Class
		assignments []core.FeeAssignment
	)
	g := &errgroup.Group{}
	settle(ctx, g, s.log, "students", &children, func(ctx context.Context) ([]core.Student, error) {
		return s.store.ListStudents(ctx, store.Filter{ParentID: parentID})
	})
	settle(ctx, g, s.log, "classes", &classes, func(ctx context.Context) ([]core.Class, error) {
		return s.store.ListClasses(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "assignments", &assignments, func(ctx context.Context) ([]core.FeeAssignment, error) {
		return s.store.ListAssignments(ctx, store.Filter{})
	})
	var out ParentDashboard
	settleTask(g, func() { out.Notices = s.noticesFor(ctx, o, "Parents") })
	_ = g.Wait()

	className := classNames(classes)
	childIDs := make(map[core.ID]bool, len(children))
	out.Children = make([]ChildSummary, 0, len(children))
	for _, child := range children {
		childIDs[child.ID] = true
		summary := ChildSummary{
			ID:    string(child.ID),
			Name:  child.FullName(),
			Class: refName(child.Class, className),
		}
		for _, a := range assignments {
			if !a.Student.Is(child.ID) {
				continue
			}
			summary.Expected += a.TotalAmount
			summary.Paid += a.PaidAmount
			if outstanding := a.Outstanding(); outstanding > 0 {
				summary.Outstanding += outstanding
			}
		}
		out.Children = append(out.Children, summary)
	}

	transactions := s.RecentTransactions(ctx, o)
	out.RecentPayments = make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if childIDs[core.ID(t.studentID)] {
			out.RecentPayments = append(out.RecentPayments, t)
		}
	}
	return out
}

// FeeStatus is one assignment row on the student dashboard.
type FeeStatus struct {
	FeeType     string        `json:"feeType"`
	Category    core.Category `json:"category"`
	Total       float64       `json:"total"`
	Paid        float64       `json:"paid"`
	Outstanding float64       `json:"outstanding"`
}

type StudentDashboard struct {
	Name           string         `json:"name"`
	Class          string         `json:"class"`
	Fees           []FeeStatus    `json:"fees"`
	AttendanceRate int            `json:"attendanceRate"`
	Notices        []ActivityItem `json:"notices"`
}

func (s *Service) StudentDashboard(ctx context.Context, studentID core.ID, o Options) StudentDashboard {
	var (
		students    []core.Student
		classes     []core.Class
		assignments []core.FeeAssignment
		feeTypes    []core.FeeType
		registers   []core.Attendance
	)
	g := &errgroup.Group{}
	settle(ctx, g, s.log, "students", &students, func(ctx context.Context) ([]core.Student, error) {
		return s.store.ListStudents(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "classes", &classes, func(ctx context.Context) ([]core.Class, error) {
		return s.store.ListClasses(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "assignments", &assignments, func(ctx context.Context) ([]core.FeeAssignment, error) {
		return s.store.ListAssignments(ctx, store.Filter{StudentID: studentID})
	})
	settle(ctx, g, s.log, "feetypes", &feeTypes, func(ctx context.Context) ([]core.FeeType, error) {
		return s.store.ListFeeTypes(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "attendance", &registers, func(ctx context.Context) ([]core.Attendance, error) {
		return s.store.ListAttendance(ctx, store.Filter{Limit: s.window, NewestFirst: true})
	})
	var out StudentDashboard
	settleTask(g, func() { out.Notices = s.noticesFor(ctx, o, "Students") })
	_ = g.Wait()

	className := classNames(classes)
	for _, st := range students {
		if st.ID == studentID {
			out.Name = st.FullName()
			out.Class = refName(st.Class, className)
			break
		}
	}

	feeTypeName := make(map[core.ID]string, len(feeTypes))
	for _, ft := range feeTypes {
		feeTypeName[ft.ID] = ft.Name
	}
	out.Fees = make([]FeeStatus, 0, len(assignments))
	for _, a := range assignments {
		name := refName(a.FeeType, feeTypeName)
		fee := FeeStatus{
			FeeType:  name,
			Category: core.Categorize(name),
			Total:    a.TotalAmount,
			Paid:     a.PaidAmount,
		}
		if outstanding := a.Outstanding(); outstanding > 0 {
			fee.Outstanding = outstanding
		}
		out.Fees = append(out.Fees, fee)
	}

	attended, recorded := 0, 0
	for _, reg := range registers {
		for _, e := range reg.Entries {
			if !e.Student.Is(studentID) {
				continue
			}
			recorded++
			if e.Status == core.StatusPresent || e.Status == core.StatusLate {
				attended++
			}
		}
	}
	out.AttendanceRate = roundPct(float64(attended), float64(recorded))
	return out
}

type TeacherDashboard struct {
	Name          string              `json:"name"`
	TotalClasses  int                 `json:"totalClasses"`
	TotalStudents int                 `json:"totalStudents"`
	Attendance    []WeekdayAttendance `json:"attendance"`
	Notices       []ActivityItem      `json:"notices"`
}

func (s *Service) TeacherDashboard(ctx context.Context, teacherID core.ID, o Options) TeacherDashboard {
	var (
		teachers []core.Teacher
		classes  []core.Class
	)
	var out TeacherDashboard
	g := &errgroup.Group{}
	settle(ctx, g, s.log, "teachers", &teachers, func(ctx context.Context) ([]core.Teacher, error) {
		return s.store.ListTeachers(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "classes", &classes, func(ctx context.Context) ([]core.Class, error) {
		return s.store.ListClasses(ctx, store.Filter{})
	})
	settleTask(g, func() { out.Attendance = s.AttendanceByWeekday(ctx, o) })
	settleTask(g, func() { out.Notices = s.noticesFor(ctx, o, "Teachers") })
	_ = g.Wait()

	for _, t := range teachers {
		if t.ID == teacherID {
			out.Name = t.FullName()
			break
		}
	}
	out.TotalClasses = len(classes)
	for _, c := range classes {
		out.TotalStudents += c.TotalStudents
	}
	return out
}

func classNames(classes []core.Class) map[core.ID]string {
	names := make(map[core.ID]string, len(classes))
	for _, c := range classes {
		names[c.ID] = c.Name
	}
	return names
}
