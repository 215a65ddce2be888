package analytics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"ecole/internal/core"
	applog "ecole/internal/log"
	"ecole/internal/store"
	"ecole/internal/store/memory"
)

var testNow = time.Date(2024, 4, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, st store.Store) *Service {
	t.Helper()
	logger := applog.FromSlog(slog.New(slog.NewTextHandler(io.Discard, nil)), applog.ComponentAnalytics)
	svc := New(st, logger, 0, 0)
	svc.now = func() time.Time { return testNow }
	return svc
}

// fixtureStore is a small 2024 school: two students, two classes, two fee
// assignments, three payments (Jan and Mar), two registers, three notices.
func fixtureStore() *memory.Store {
	return memory.New(memory.Dataset{
		Students: []core.Student{
			{ID: "s1", FirstName: "Awa", LastName: "Diallo", Gender: core.GenderFemale,
				AdmittedAt: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
				Class:      core.RefTo("c1"), Parent: core.RefTo("par1")},
			{ID: "s2", FirstName: "Seydou", LastName: "Traoré", Gender: core.GenderMale,
				AdmittedAt: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
				Class:      core.RefTo("c2"), Parent: core.RefTo("par2")},
		},
		Teachers: []core.Teacher{
			{ID: "t1", FirstName: "Fatou", LastName: "Ndiaye", JoinedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
		Classes: []core.Class{
			{ID: "c1", Name: "6ème A", TotalStudents: 1},
			{ID: "c2", Name: "5ème B", TotalStudents: 1},
		},
		Parents: []core.Parent{
			{ID: "par1", FirstName: "Mariam", LastName: "Diallo"},
			{ID: "par2", FirstName: "Ousmane", LastName: "Traoré"},
		},
		FeeTypes: []core.FeeType{
			{ID: "ft1", Name: "Frais de Scolarité"},
			{ID: "ft2", Name: "Frais de Transport"},
		},
		Assignments: []core.FeeAssignment{
			{ID: "a1", Student: core.RefTo("s1"), FeeType: core.RefTo("ft1"), TotalAmount: 100000, PaidAmount: 70000},
			{ID: "a2", Student: core.RefTo("s2"), FeeType: core.RefTo("ft2"), TotalAmount: 100000, PaidAmount: 40000},
		},
		Payments: []core.Payment{
			{ID: "p1", Student: core.PopulatedRef("s1", "Awa Diallo"), Assignment: core.RefTo("a1"),
				Amount: 20000, Method: "Cash", PaidAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
			{ID: "p2", Student: core.PopulatedRef("s1", "Awa Diallo"), Assignment: core.RefTo("a1"),
				Amount: 50000, Method: "Cash", PaidAt: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
			{ID: "p3", Student: core.RefTo("s2"), Assignment: core.RefTo("a2"),
				Amount: 30000, Method: "Mobile Money", PaidAt: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
		},
		Attendance: []core.Attendance{
			{ID: "r1", Class: core.RefTo("c1"), Date: time.Date(2024, 4, 8, 8, 0, 0, 0, time.UTC), // Monday
				Entries: []core.AttendanceEntry{
					{Student: core.RefTo("s1"), Status: core.StatusPresent},
					{Student: core.RefTo("s2"), Status: core.StatusAbsent},
				}},
			{ID: "r2", Class: core.RefTo("c1"), Date: time.Date(2024, 4, 9, 8, 0, 0, 0, time.UTC), // Tuesday
				Entries: []core.AttendanceEntry{
					{Student: core.RefTo("s1"), Status: core.StatusLate},
					{Student: core.RefTo("s2"), Status: core.StatusPresent},
				}},
		},
		Notices: []core.Notice{
			{ID: "n1", Title: "Urgent repairs", Content: "The east wing is closed for urgent repairs until further notice.",
				Priority: core.PriorityHigh, Audience: "All", PublishedAt: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)},
			{ID: "n2", Title: "Fee reminder", Content: "Second-term fees are due at the end of the month.",
				Priority: core.PriorityNormal, Audience: "Parents", PublishedAt: time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC)},
			{ID: "n3", Title: "Staff meeting", Content: "Staff meeting Thursday after classes.",
				Priority: core.PriorityLow, Audience: "Teachers", PublishedAt: time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC)},
		},
	})
}

var errUpstream = errors.New("upstream unavailable")

// errStore fails every listing, simulating a fully degraded backend.
type errStore struct{}

var _ store.Store = errStore{}

func (errStore) ListStudents(context.Context, store.Filter) ([]core.Student, error) {
	return nil, errUpstream
}
func (errStore) ListTeachers(context.Context, store.Filter) ([]core.Teacher, error) {
	return nil, errUpstream
}
func (errStore) ListClasses(context.Context, store.Filter) ([]core.Class, error) {
	return nil, errUpstream
}
func (errStore) ListParents(context.Context, store.Filter) ([]core.Parent, error) {
	return nil, errUpstream
}
func (errStore) ListPayments(context.Context, store.Filter) ([]core.Payment, error) {
	return nil, errUpstream
}
func (errStore) ListFeeTypes(context.Context, store.Filter) ([]core.FeeType, error) {
	return nil, errUpstream
}
func (errStore) ListAssignments(context.Context, store.Filter) ([]core.FeeAssignment, error) {
	return nil, errUpstream
}
func (errStore) ListAttendance(context.Context, store.Filter) ([]core.Attendance, error) {
	return nil, errUpstream
}
func (errStore) ListNotices(context.Context, store.Filter) ([]core.Notice, error) {
	return nil, errUpstream
}

// noAttendanceStore degrades only the attendance listing.
type noAttendanceStore struct{ store.Store }

func (noAttendanceStore) ListAttendance(context.Context, store.Filter) ([]core.Attendance, error) {
	return nil, errUpstream
}
