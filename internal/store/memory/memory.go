// Package memory implements the store ports over in-memory slices. It is the
// default backend for local runs (seeded via NewDemo) and the test seam for
// the analytics package.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ecole/internal/core"
	"ecole/internal/store"
)

// Dataset is the full snapshot a memory store serves.
type Dataset struct {
	Students    []core.Student
	Teachers    []core.Teacher
	Classes     []core.Class
	Parents     []core.Parent
	Payments    []core.Payment
	FeeTypes    []core.FeeType
	Assignments []core.FeeAssignment
	Attendance  []core.Attendance
	Notices     []core.Notice
}

type Store struct {
	mu   sync.Mutex
	data Dataset
}

var _ store.Store = (*Store)(nil)

func New(data Dataset) *Store {
	return &Store{data: data}
}

func (s *Store) ListStudents(_ context.Context, f store.Filter) ([]core.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return listFiltered(s.data.Students, f,
		func(st core.Student) time.Time { return st.AdmittedAt },
		func(st core.Student) bool { return f.ParentID == "" || st.Parent.Is(f.ParentID) }), nil
}

func (s *Store) ListTeachers(_ context.Context, f store.Filter) ([]core.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return listFiltered(s.data.Teachers, f,
		func(t core.Teacher) time.Time { return t.JoinedAt }, nil), nil
}

func (s *Store) ListClasses(_ context.Context, f store.Filter) ([]core.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return listFiltered(s.data.Classes, f, nil, nil), nil
}

func (s *Store) ListParents(_ context.Context, f store.Filter) ([]core.Parent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return listFiltered(s.data.Parents, f, nil, nil), nil
}

func (s *Store) ListPayments(_ context.Context, f store.Filter) ([]core.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return listFiltered(s.data.Payments, f,
		func(p core.Payment) time.Time { return p.PaidAt },
		func(p core.Payment) bool { return f.StudentID == "" || p.Student.Is(f.StudentID) }), nil
}

func (s *Store) ListFeeTypes(_ context.Context, f store.Filter) ([]core.FeeType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return listFiltered(s.data.FeeTypes, f, nil, nil), nil
}

func (s *Store) ListAssignments(_ context.Context, f store.Filter) ([]core.FeeAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return listFiltered(s.data.Assignments, f, nil,
		func(a core.FeeAssignment) bool { return f.StudentID == "" || a.Student.Is(f.StudentID) }), nil
}

func (s *Store) ListAttendance(_ context.Context, f store.Filter) ([]core.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return listFiltered(s.data.Attendance, f,
		func(a core.Attendance) time.Time { return a.Date }, nil), nil
}

func (s *Store) ListNotices(_ context.Context, f store.Filter) ([]core.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return listFiltered(s.data.Notices, f,
		func(n core.Notice) time.Time { return n.PublishedAt },
		func(n core.Notice) bool {
			return f.Audience == "" || n.Audience == f.Audience || n.Audience == "All"
		}), nil
}

// listFiltered applies the keep predicate, the date window, ordering and
// limit, returning a fresh slice so callers never alias store internals.
func listFiltered[T any](items []T, f store.Filter, date func(T) time.Time, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep != nil && !keep(it) {
			continue
		}
		if date != nil && (!f.From.IsZero() || !f.To.IsZero()) && !f.InWindow(date(it)) {
			continue
		}
		out = append(out, it)
	}
	if f.NewestFirst && date != nil {
		sort.SliceStable(out, func(i, j int) bool { return date(out[i]).After(date(out[j])) })
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}
