package memory

import (
	"context"
	"testing"
	"time"

	"ecole/internal/core"
	"ecole/internal/store"
)

func TestListStudentsByParent(t *testing.T) {
	s := NewDemo()

	got, err := s.ListStudents(context.Background(), store.Filter{ParentID: "parent-1"})
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 students for parent-1, got %d", len(got))
	}
	for _, st := range got {
		if !st.Parent.Is("parent-1") {
			t.Errorf("student %s has parent %q", st.ID, st.Parent.ID)
		}
	}
}

func TestListPaymentsWindowAndOrder(t *testing.T) {
	s := New(Dataset{Payments: []core.Payment{
		{ID: "a", Amount: 1, PaidAt: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Amount: 2, PaidAt: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "c", Amount: 3, PaidAt: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
	}})

	got, err := s.ListPayments(context.Background(), store.Filter{
		From:        time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		NewestFirst: true,
		Limit:       1,
	})
	if err != nil {
		t.Fatalf("ListPayments: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("expected newest in-window payment c, got %+v", got)
	}
}

func TestListPaymentsByStudent(t *testing.T) {
	s := NewDemo()

	got, err := s.ListPayments(context.Background(), store.Filter{StudentID: "student-2"})
	if err != nil {
		t.Fatalf("ListPayments: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 payments for student-2, got %d", len(got))
	}
}

func TestListNoticesAudienceIncludesAll(t *testing.T) {
	s := NewDemo()

	got, err := s.ListNotices(context.Background(), store.Filter{Audience: "Parents"})
	if err != nil {
		t.Fatalf("ListNotices: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected parent notice plus All notice, got %d", len(got))
	}
	for _, n := range got {
		if n.Audience != "Parents" && n.Audience != "All" {
			t.Errorf("unexpected audience %q", n.Audience)
		}
	}
}

func TestReturnedSlicesDoNotAliasStore(t *testing.T) {
	s := NewDemo()
	ctx := context.Background()

	first, err := s.ListFeeTypes(ctx, store.Filter{})
	if err != nil {
		t.Fatalf("ListFeeTypes: %v", err)
	}
	first[0].Name = "mutated"

	second, _ := s.ListFeeTypes(ctx, store.Filter{})
	if second[0].Name == "mutated" {
		t.Fatal("store data mutated through returned slice")
	}
}

func TestDemoDatasetIsCoherent(t *testing.T) {
	s := NewDemo()
	ctx := context.Background()

	assignments, _ := s.ListAssignments(ctx, store.Filter{})
	students, _ := s.ListStudents(ctx, store.Filter{})
	byID := make(map[core.ID]bool, len(students))
	for _, st := range students {
		byID[st.ID] = true
	}
	for _, a := range assignments {
		if !byID[core.ID(a.Student.ID)] {
			t.Errorf("assignment %s references unknown student %q", a.ID, a.Student.ID)
		}
	}
}
