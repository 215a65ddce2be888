package analytics

import (
	"context"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"ecole/internal/core"
	"ecole/internal/store"
)

// ActivityItem is one entry of the recent-activity feed.
type ActivityItem struct {
	Title     string    `json:"title"`
	Preview   string    `json:"preview"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Notice priorities map to feed severity tiers.
const (
	activityNotice = "notice"
	activitySystem = "system"
	activityInfo   = "info"
)

func activityType(priority string) string {
	switch priority {
	case core.PriorityHigh:
		return activityNotice
	case core.PriorityNormal:
		return activitySystem
	default:
		return activityInfo
	}
}

// RecentActivity maps the newest notices to feed items, optionally scoped to
// an audience through noticesFor.
func (s *Service) RecentActivity(ctx context.Context, o Options) []ActivityItem {
	return s.noticesFor(ctx, o, "")
}

func (s *Service) noticesFor(ctx context.Context, o Options, audience string) []ActivityItem {
	var notices []core.Notice
	g := &errgroup.Group{}
	settle(ctx, g, s.log, "notices", &notices, func(ctx context.Context) ([]core.Notice, error) {
		f := o.window()
		f.Audience = audience
		f.Limit = s.limitOr(o)
		f.NewestFirst = true
		return s.store.ListNotices(ctx, f)
	})
	_ = g.Wait()

	out := make([]ActivityItem, 0, len(notices))
	for _, n := range notices {
		out = append(out, ActivityItem{
			Title:     n.Title,
			Preview:   truncate(n.Content, previewLength),
			Type:      activityType(n.Priority),
			Timestamp: n.PublishedAt,
		})
	}
	return out
}

// truncate cuts s to at most n runes, appending an ellipsis when it cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

// Transaction is one row of the recent-transactions table. Status is always
// Completed: the ledger has no failed or pending payment state.
type Transaction struct {
	// studentID keeps the raw reference for identity-scoped filtering; it
	// never leaves the JSON surface.
	studentID string

	ID      string    `json:"id"`
	Student string    `json:"student"`
	FeeType string    `json:"feeType"`
	Amount  float64   `json:"amount"`
	Method  string    `json:"method"`
	Date    time.Time `json:"date"`
	Status  string    `json:"status"`
}

const transactionStatus = "Completed"

// RecentTransactions joins the newest payments to student and fee-type
// display names. Unresolvable references are reported as Unknown rather than
// dropping the row.
func (s *Service) RecentTransactions(ctx context.Context, o Options) []Transaction {
	var (
		payments    []core.Payment
		students    []core.Student
		assignments []core.FeeAssignment
		feeTypes    []core.FeeType
	)
	g := &errgroup.Group{}
	settle(ctx, g, s.log, "payments", &payments, func(ctx context.Context) ([]core.Payment, error) {
		f := o.window()
		f.Limit = s.limitOr(o)
		f.NewestFirst = true
		return s.store.ListPayments(ctx, f)
	})
	settle(ctx, g, s.log, "students", &students, func(ctx context.Context) ([]core.Student, error) {
		return s.store.ListStudents(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "assignments", &assignments, func(ctx context.Context) ([]core.FeeAssignment, error) {
		return s.store.ListAssignments(ctx, store.Filter{})
	})
	settle(ctx, g, s.log, "feetypes", &feeTypes, func(ctx context.Context) ([]core.FeeType, error) {
		return s.store.ListFeeTypes(ctx, store.Filter{})
	})
	_ = g.Wait()

	studentName := make(map[core.ID]string, len(students))
	for _, st := range students {
		studentName[st.ID] = st.FullName()
	}
	feeTypeName := make(map[core.ID]string, len(feeTypes))
	for _, ft := range feeTypes {
		feeTypeName[ft.ID] = ft.Name
	}
	assignmentFeeType := make(map[core.ID]core.Ref, len(assignments))
	for _, a := range assignments {
		assignmentFeeType[a.ID] = a.FeeType
	}

	out := make([]Transaction, 0, len(payments))
	for _, p := range payments {
		out = append(out, Transaction{
			studentID: p.Student.ID,
			ID:        string(p.ID),
			Student:   refName(p.Student, studentName),
			FeeType:   feeTypeOf(p.Assignment, assignmentFeeType, feeTypeName),
			Amount:    p.Amount,
			Method:    p.MethodOrDefault(),
			Date:      p.PaidAt,
			Status:    transactionStatus,
		})
	}
	return out
}

// refName resolves a reference to a display name: populated name first, then
// the lookup table, then the Unknown placeholder.
func refName(r core.Ref, names map[core.ID]string) string {
	if r.Kind == core.RefPopulated && r.Name != "" {
		return r.Name
	}
	if r.Resolved() {
		if name, ok := names[core.ID(r.ID)]; ok && name != "" {
			return name
		}
	}
	return core.UnknownName
}

func feeTypeOf(assignment core.Ref, feeTypeRefs map[core.ID]core.Ref, names map[core.ID]string) string {
	if !assignment.Resolved() {
		return core.UnknownName
	}
	ref, ok := feeTypeRefs[core.ID(assignment.ID)]
	if !ok {
		return core.UnknownName
	}
	return refName(ref, names)
}
