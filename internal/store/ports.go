// Package store defines the repository ports the analytics service reads
// from, and the listing filter shared by every backend. The portal's CRUD
// layer owns the data; everything here is read-only.
package store

import (
	"context"
	"time"

	"ecole/internal/core"
)

// Filter narrows a repository listing. Zero values mean "no constraint".
// Backends ignore fields that do not apply to the entity being listed.
type Filter struct {
	StudentID   core.ID   // records referencing this student
	ParentID    core.ID   // students whose parent reference matches
	Audience    string    // notices targeted at this audience (or "All")
	From, To    time.Time // window on the record's primary date, inclusive
	Limit       int       // maximum records returned, 0 = unlimited
	NewestFirst bool      // sort by primary date, most recent first
}

// Ports for the school document store, one per entity.
type (
	StudentRepository interface {
		ListStudents(ctx context.Context, f Filter) ([]core.Student, error)
	}

	TeacherRepository interface {
		ListTeachers(ctx context.Context, f Filter) ([]core.Teacher, error)
	}

	ClassRepository interface {
		ListClasses(ctx context.Context, f Filter) ([]core.Class, error)
	}

	ParentRepository interface {
		ListParents(ctx context.Context, f Filter) ([]core.Parent, error)
	}

	PaymentRepository interface {
		ListPayments(ctx context.Context, f Filter) ([]core.Payment, error)
	}

	FeeTypeRepository interface {
		ListFeeTypes(ctx context.Context, f Filter) ([]core.FeeType, error)
	}

	AssignmentRepository interface {
		ListAssignments(ctx context.Context, f Filter) ([]core.FeeAssignment, error)
	}

	AttendanceRepository interface {
		ListAttendance(ctx context.Context, f Filter) ([]core.Attendance, error)
	}

	NoticeRepository interface {
		ListNotices(ctx context.Context, f Filter) ([]core.Notice, error)
	}

	// Store bundles every port; both backends satisfy it.
	Store interface {
		StudentRepository
		TeacherRepository
		ClassRepository
		ParentRepository
		PaymentRepository
		FeeTypeRepository
		AssignmentRepository
		AttendanceRepository
		NoticeRepository
	}
)

// InWindow reports whether ts falls inside the filter's date window.
func (f Filter) InWindow(ts time.Time) bool {
	if !f.From.IsZero() && ts.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && ts.After(f.To) {
		return false
	}
	return true
}
