package analytics

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"ecole/internal/core"
	"ecole/internal/store"
)

// ClassRevenue is one class's expected/collected/outstanding rollup.
// Collected + Outstanding always reconciles to TotalExpected within the
// snapshot, except when an explicit date range under-counts collected, in
// which case Outstanding absorbs the difference.
type ClassRevenue struct {
	Class          string  `json:"class"`
	Students       int     `json:"students"`
	TotalExpected  float64 `json:"totalExpected"`
	Collected      float64 `json:"collected"`
	Outstanding    float64 `json:"outstanding"`
	CollectionRate int     `json:"collectionRate"`
}

// ClassRevenueRollup sums each class's fee assignments through the
// assignment's student. With a date range the collected figure comes from
// the payments ledger inside that range; without one it is the cumulative
// paid amount on the assignments.
func (s *Service) ClassRevenueRollup(ctx context.Context, o Options) []ClassRevenue {
	var (
		classes     []core.Class
		students    []core.Student
		assignments []core.FeeAssignment
		payments    []core.Payment
	)
	g := &errgroup.Group{}
	settle(ctx, g, s.log, "classes", &classes, func(ctx context.Context) ([]core.Class, error) {
		return s.store.ListClasses(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "students", &students, func(ctx context.Context) ([]core.Student, error) {
		return s.store.ListStudents(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "assignments", &assignments, func(ctx context.Context) ([]core.FeeAssignment, error) {
		return s.store.ListAssignments(ctx, store.Filter{})
	})
	if o.ranged() {
		settle(ctx, g, s.log, "payments", &payments, func(ctx context.Context) ([]core.Payment, error) {
			return s.store.ListPayments(ctx, o.window())
		})
	}
	_ = g.Wait()

	classOfStudent := make(map[core.ID]core.ID, len(students))
	for _, st := range students {
		if st.Class.Resolved() {
			classOfStudent[st.ID] = core.ID(st.Class.ID)
		}
	}

	type rollup struct{ expected, collected float64 }
	byClass := make(map[core.ID]*rollup, len(classes))
	for _, c := range classes {
		byClass[c.ID] = &rollup{}
	}
	classOf := func(student core.Ref) (*rollup, bool) {
		if !student.Resolved() {
			return nil, false
		}
		classID, ok := classOfStudent[core.ID(student.ID)]
		if !ok {
			return nil, false
		}
		r, ok := byClass[classID]
		return r, ok
	}

	for _, a := range assignments {
		r, ok := classOf(a.Student)
		if !ok {
			continue
		}
		r.expected += a.TotalAmount
		if !o.ranged() {
			r.collected += a.PaidAmount
		}
	}
	for _, p := range payments {
		if r, ok := classOf(p.Student); ok {
			r.collected += p.Amount
		}
	}

	out := make([]ClassRevenue, 0, len(classes))
	for _, c := range classes {
		r := byClass[c.ID]
		row := ClassRevenue{
			Class:          c.Name,
			Students:       c.TotalStudents,
			TotalExpected:  r.expected,
			Collected:      r.collected,
			Outstanding:    r.expected - r.collected,
			CollectionRate: roundPct(r.collected, r.expected),
		}
		if row.Outstanding < 0 {
			row.Outstanding = 0
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Class < out[j].Class })
	return out
}
