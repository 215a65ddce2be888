package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"ecole/internal/core"
	applog "ecole/internal/log"
	"ecole/internal/store"
)

// MonthAmount is one point of a monthly series.
type MonthAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// RevenueTimeSeries is the collected sum per calendar month of Year. Always
// twelve points, January first.
type RevenueTimeSeries struct {
	Year   int           `json:"year"`
	Months []MonthAmount `json:"months"`
}

func (s *Service) RevenueTimeSeries(ctx context.Context, o Options) RevenueTimeSeries {
	payments := s.fetchPayments(ctx, store.Filter{})
	year := InferYear(paymentDates(payments), s.yearOr(o))

	out := RevenueTimeSeries{Year: year, Months: make([]MonthAmount, 12)}
	buckets := groupByMonth(payments, paymentDate, year)
	for i, bucket := range buckets {
		point := MonthAmount{Month: monthNames[i]}
		for _, p := range bucket {
			point.Amount += p.Amount
		}
		out.Months[i] = point
	}
	return out
}

// CategoryMonth carries one month's collected sum split by fee category.
// Totals always sums to Total: payments whose assignment or fee type cannot
// be resolved land on the fallback category.
type CategoryMonth struct {
	Month  string                    `json:"month"`
	Totals map[core.Category]float64 `json:"totals"`
	Total  float64                   `json:"total"`
}

type RevenueByCategory struct {
	Year       int             `json:"year"`
	Categories []core.Category `json:"categories"`
	Months     []CategoryMonth `json:"months"`
}

// RevenueByCategory attributes each payment's amount to the category of its
// assignment's fee type, via Payment -> Assignment -> FeeType -> Categorize.
func (s *Service) RevenueByCategory(ctx context.Context, o Options) RevenueByCategory {
	var (
		payments    []core.Payment
		assignments []core.FeeAssignment
		feeTypes    []core.FeeType
	)
	g := &errgroup.Group{}
	settle(ctx, g, s.log, "payments", &payments, func(ctx context.Context) ([]core.Payment, error) {
		return s.store.ListPayments(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "assignments", &assignments, func(ctx context.Context) ([]core.FeeAssignment, error) {
		return s.store.ListAssignments(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "feetypes", &feeTypes, func(ctx context.Context) ([]core.FeeType, error) {
		return s.store.ListFeeTypes(ctx, store.Filter{})
	})
	_ = g.Wait()

	categoryOf := categoryLookup(assignments, feeTypes)
	year := InferYear(paymentDates(payments), s.yearOr(o))

	out := RevenueByCategory{Year: year, Categories: core.Categories(), Months: make([]CategoryMonth, 12)}
	buckets := groupByMonth(payments, paymentDate, year)
	for i, bucket := range buckets {
		month := CategoryMonth{Month: monthNames[i], Totals: make(map[core.Category]float64, len(out.Categories))}
		for _, p := range bucket {
			month.Totals[categoryOf(p)] += p.Amount
			month.Total += p.Amount
		}
		out.Months[i] = month
	}
	return out
}

// CollectedPendingPoint is one month of the collected-vs-pending estimate.
type CollectedPendingPoint struct {
	Month     string  `json:"month"`
	Collected float64 `json:"collected"`
	Pending   float64 `json:"pending"`
}

// CollectedVsPending spreads the expected total evenly across the months
// with payment activity. Approximate stays true to flag that pending is an
// estimate, not a ledger figure: the data model has no per-month expected
// amount to do better with.
type CollectedVsPending struct {
	Year        int                     `json:"year"`
	Approximate bool                    `json:"approximate"`
	Months      []CollectedPendingPoint `json:"months"`
}

func (s *Service) CollectedVsPending(ctx context.Context, o Options) CollectedVsPending {
	var (
		payments    []core.Payment
		assignments []core.FeeAssignment
	)
	g := &errgroup.Group{}
	settle(ctx, g, s.log, "payments", &payments, func(ctx context.Context) ([]core.Payment, error) {
		return s.store.ListPayments(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "assignments", &assignments, func(ctx context.Context) ([]core.FeeAssignment, error) {
		return s.store.ListAssignments(ctx, store.Filter{})
	})
	_ = g.Wait()

	year := InferYear(paymentDates(payments), s.yearOr(o))
	var totalExpected float64
	for _, a := range assignments {
		totalExpected += a.TotalAmount
	}

	buckets := groupByMonth(payments, paymentDate, year)
	activeMonths := 0
	for _, bucket := range buckets {
		if len(bucket) > 0 {
			activeMonths++
		}
	}

	now := s.now()
	out := CollectedVsPending{Year: year, Approximate: true, Months: make([]CollectedPendingPoint, 12)}
	for i, bucket := range buckets {
		point := CollectedPendingPoint{Month: monthNames[i]}
		for _, p := range bucket {
			point.Collected += p.Amount
		}
		future := year == now.Year() && i+1 > int(now.Month())
		if len(bucket) > 0 && !future {
			point.Pending = totalExpected/float64(activeMonths) - point.Collected
			if point.Pending < 0 {
				point.Pending = 0
			}
		}
		out.Months[i] = point
	}
	s.log.DebugContext(ctx, "collected-vs-pending built",
		applog.FieldReport, "collected-vs-pending",
		applog.FieldYear, year)
	return out
}

// CategoryRollup is one fee category's ledger position.
type CategoryRollup struct {
	Category  core.Category `json:"category"`
	Expected  float64       `json:"expected"`
	Collected float64       `json:"collected"`
	Pending   float64       `json:"pending"`
	Rate      int           `json:"rate"`
}

// FeeCategoryRollup sums the assignment ledger per derived category. With a
// date range the collected side comes from the payments ledger inside the
// range; Pending always reconciles Expected - Collected, floored at zero.
func (s *Service) FeeCategoryRollup(ctx context.Context, o Options) []CategoryRollup {
	var (
		assignments []core.FeeAssignment
		feeTypes    []core.FeeType
		payments    []core.Payment
	)
	g := &errgroup.Group{}
	settle(ctx, g, s.log, "assignments", &assignments, func(ctx context.Context) ([]core.FeeAssignment, error) {
		return s.store.ListAssignments(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "feetypes", &feeTypes, func(ctx context.Context) ([]core.FeeType, error) {
		return s.store.ListFeeTypes(ctx, store.Filter{})
	})
	if o.ranged() {
		settle(ctx, g, s.log, "payments", &payments, func(ctx context.Context) ([]core.Payment, error) {
			return s.store.ListPayments(ctx, o.window())
		})
	}
	_ = g.Wait()

	nameByFeeType := make(map[core.ID]string, len(feeTypes))
	for _, ft := range feeTypes {
		nameByFeeType[ft.ID] = ft.Name
	}
	assignmentCategory := func(a core.FeeAssignment) core.Category {
		if !a.FeeType.Resolved() {
			return core.FallbackCategory
		}
		name, ok := nameByFeeType[core.ID(a.FeeType.ID)]
		if !ok {
			if a.FeeType.Kind == core.RefPopulated && a.FeeType.Name != "" {
				name = a.FeeType.Name
			} else {
				return core.FallbackCategory
			}
		}
		return core.Categorize(name)
	}

	type sums struct{ expected, collected float64 }
	totals := make(map[core.Category]*sums)
	categoryOfAssignment := make(map[core.ID]core.Category, len(assignments))
	for _, a := range assignments {
		cat := assignmentCategory(a)
		categoryOfAssignment[a.ID] = cat
		t, ok := totals[cat]
		if !ok {
			t = &sums{}
			totals[cat] = t
		}
		t.expected += a.TotalAmount
		if !o.ranged() {
			t.collected += a.PaidAmount
		}
	}
	for _, p := range payments {
		cat := core.FallbackCategory
		if p.Assignment.Resolved() {
			if c, ok := categoryOfAssignment[core.ID(p.Assignment.ID)]; ok {
				cat = c
			}
		}
		t, ok := totals[cat]
		if !ok {
			t = &sums{}
			totals[cat] = t
		}
		t.collected += p.Amount
	}

	out := make([]CategoryRollup, 0, len(totals))
	for _, cat := range core.Categories() {
		t, ok := totals[cat]
		if !ok {
			continue
		}
		row := CategoryRollup{
			Category:  cat,
			Expected:  t.expected,
			Collected: t.collected,
			Pending:   t.expected - t.collected,
			Rate:      roundPct(t.collected, t.expected),
		}
		if row.Pending < 0 {
			row.Pending = 0
		}
		out = append(out, row)
	}
	return out
}

// fetchPayments is the single-fetch settle used by builders that only need
// the payments ledger.
func (s *Service) fetchPayments(ctx context.Context, f store.Filter) []core.Payment {
	var payments []core.Payment
	g := &errgroup.Group{}
	settle(ctx, g, s.log, "payments", &payments, func(ctx context.Context) ([]core.Payment, error) {
		return s.store.ListPayments(ctx, f)
	})
	_ = g.Wait()
	return payments
}

func paymentDate(p core.Payment) time.Time { return p.PaidAt }

func paymentDates(payments []core.Payment) []time.Time {
	dates := make([]time.Time, len(payments))
	for i, p := range payments {
		dates[i] = p.PaidAt
	}
	return dates
}

// categoryLookup prebuilds the join chain so categorizing each payment is a
// map hit. Unresolvable joins fall back to core.FallbackCategory.
func categoryLookup(assignments []core.FeeAssignment, feeTypes []core.FeeType) func(core.Payment) core.Category {
	nameByFeeType := make(map[core.ID]string, len(feeTypes))
	for _, ft := range feeTypes {
		nameByFeeType[ft.ID] = ft.Name
	}
	feeTypeByAssignment := make(map[core.ID]core.Ref, len(assignments))
	for _, a := range assignments {
		feeTypeByAssignment[a.ID] = a.FeeType
	}
	return func(p core.Payment) core.Category {
		if !p.Assignment.Resolved() {
			return core.FallbackCategory
		}
		ref, ok := feeTypeByAssignment[core.ID(p.Assignment.ID)]
		if !ok || !ref.Resolved() {
			return core.FallbackCategory
		}
		name, ok := nameByFeeType[core.ID(ref.ID)]
		if !ok {
			if ref.Kind == core.RefPopulated && ref.Name != "" {
				name = ref.Name
			} else {
				return core.FallbackCategory
			}
		}
		return core.Categorize(name)
	}
}
