package memory

import (
	"time"

	"ecole/internal/core"
)

// NewDemo returns a store seeded with a small coherent school so the server
// renders meaningful dashboards without a database.
func NewDemo() *Store {
	now := time.Now().UTC()
	year := now.Year()
	day := func(month time.Month, d int) time.Time {
		return time.Date(year, month, d, 9, 0, 0, 0, time.UTC)
	}

	classA := core.Class{ID: "class-6a", Name: "6ème A", TotalStudents: 3}
	classB := core.Class{ID: "class-5b", Name: "5ème B", TotalStudents: 2}

	parents := []core.Parent{
		{ID: "parent-1", FirstName: "Mariam", LastName: "Diallo"},
		{ID: "parent-2", FirstName: "Ousmane", LastName: "Traoré"},
		{ID: "parent-3", FirstName: "Grace", LastName: "Okafor"},
	}

	students := []core.Student{
		{ID: "student-1", FirstName: "Awa", LastName: "Diallo", Gender: core.GenderFemale,
			AdmittedAt: day(time.January, 8), Class: core.RefTo("class-6a"), Parent: core.RefTo("parent-1")},
		{ID: "student-2", FirstName: "Ibrahim", LastName: "Diallo", Gender: core.GenderMale,
			AdmittedAt: day(time.January, 8), Class: core.RefTo("class-5b"), Parent: core.RefTo("parent-1")},
		{ID: "student-3", FirstName: "Seydou", LastName: "Traoré", Gender: core.GenderMale,
			AdmittedAt: day(time.February, 2), Class: core.RefTo("class-6a"), Parent: core.RefTo("parent-2")},
		{ID: "student-4", FirstName: "Chioma", LastName: "Okafor", Gender: core.GenderFemale,
			AdmittedAt: day(time.March, 15), Class: core.RefTo("class-6a"), Parent: core.RefTo("parent-3")},
		{ID: "student-5", FirstName: "Daniel", LastName: "Okafor", Gender: core.GenderMale,
			AdmittedAt: now.AddDate(0, -1, 0), Class: core.RefTo("class-5b"), Parent: core.RefTo("parent-3")},
	}

	teachers := []core.Teacher{
		{ID: "teacher-1", FirstName: "Fatou", LastName: "Ndiaye", JoinedAt: day(time.January, 3)},
		{ID: "teacher-2", FirstName: "Paul", LastName: "Mensah", JoinedAt: now.AddDate(0, -2, 0)},
	}

	feeTypes := []core.FeeType{
		{ID: "fee-tuition", Name: "Frais de Scolarité"},
		{ID: "fee-transport", Name: "Frais de Transport"},
		{ID: "fee-exam", Name: "Examen Trimestriel"},
		{ID: "fee-insurance", Name: "Assurance Scolaire"},
	}

	assignments := []core.FeeAssignment{
		{ID: "assign-1", Student: core.RefTo("student-1"), FeeType: core.RefTo("fee-tuition"), TotalAmount: 1200, PaidAmount: 900},
		{ID: "assign-2", Student: core.RefTo("student-2"), FeeType: core.RefTo("fee-tuition"), TotalAmount: 1200, PaidAmount: 1200},
		{ID: "assign-3", Student: core.RefTo("student-3"), FeeType: core.RefTo("fee-transport"), TotalAmount: 300, PaidAmount: 150},
		{ID: "assign-4", Student: core.RefTo("student-4"), FeeType: core.RefTo("fee-exam"), TotalAmount: 80, PaidAmount: 80},
		{ID: "assign-5", Student: core.RefTo("student-5"), FeeType: core.RefTo("fee-insurance"), TotalAmount: 60, PaidAmount: 0},
	}

	payments := []core.Payment{
		{ID: "pay-1", Student: core.PopulatedRef("student-1", "Awa Diallo"), Assignment: core.RefTo("assign-1"),
			Amount: 450, Method: "Cash", PaidAt: day(time.January, 12)},
		{ID: "pay-2", Student: core.PopulatedRef("student-2", "Ibrahim Diallo"), Assignment: core.RefTo("assign-2"),
			Amount: 600, Method: "Bank Transfer", PaidAt: day(time.February, 3)},
		{ID: "pay-3", Student: core.PopulatedRef("student-2", "Ibrahim Diallo"), Assignment: core.RefTo("assign-2"),
			Amount: 600, Method: "Bank Transfer", PaidAt: day(time.March, 3)},
		{ID: "pay-4", Student: core.PopulatedRef("student-1", "Awa Diallo"), Assignment: core.RefTo("assign-1"),
			Amount: 450, Method: "Mobile Money", PaidAt: day(time.March, 20)},
		{ID: "pay-5", Student: core.PopulatedRef("student-3", "Seydou Traoré"), Assignment: core.RefTo("assign-3"),
			Amount: 150, Method: "Cash", PaidAt: day(time.April, 7)},
		{ID: "pay-6", Student: core.PopulatedRef("student-4", "Chioma Okafor"), Assignment: core.RefTo("assign-4"),
			Amount: 80, Method: "Cash", PaidAt: day(time.April, 21)},
	}

	attendance := []core.Attendance{
		{ID: "att-1", Class: core.RefTo("class-6a"), Date: day(time.April, 14), Entries: []core.AttendanceEntry{
			{Student: core.RefTo("student-1"), Status: core.StatusPresent},
			{Student: core.RefTo("student-3"), Status: core.StatusLate},
			{Student: core.RefTo("student-4"), Status: core.StatusAbsent},
		}},
		{ID: "att-2", Class: core.RefTo("class-6a"), Date: day(time.April, 15), Entries: []core.AttendanceEntry{
			{Student: core.RefTo("student-1"), Status: core.StatusPresent},
			{Student: core.RefTo("student-3"), Status: core.StatusPresent},
			{Student: core.RefTo("student-4"), Status: core.StatusPresent},
		}},
		{ID: "att-3", Class: core.RefTo("class-5b"), Date: day(time.April, 15), Entries: []core.AttendanceEntry{
			{Student: core.RefTo("student-2"), Status: core.StatusPresent},
			{Student: core.RefTo("student-5"), Status: core.StatusAbsent},
		}},
	}

	notices := []core.Notice{
		{ID: "notice-1", Title: "Réunion des parents", Content: "La réunion trimestrielle des parents aura lieu vendredi à 17h dans la grande salle.",
			Priority: core.PriorityHigh, Audience: "Parents", PublishedAt: now.AddDate(0, 0, -2)},
		{ID: "notice-2", Title: "Exam timetable published", Content: "The end-of-term exam timetable is now available at the school office.",
			Priority: core.PriorityNormal, Audience: "Students", PublishedAt: now.AddDate(0, 0, -5)},
		{ID: "notice-3", Title: "Staff workshop", Content: "Pedagogy workshop for all teaching staff next Wednesday afternoon.",
			Priority: core.PriorityLow, Audience: "Teachers", PublishedAt: now.AddDate(0, 0, -9)},
		{ID: "notice-4", Title: "School reopens", Content: "Classes resume Monday for all levels.",
			Priority: core.PriorityNormal, Audience: "All", PublishedAt: now.AddDate(0, 0, -12)},
	}

	return New(Dataset{
		Students:    students,
		Teachers:    teachers,
		Classes:     []core.Class{classA, classB},
		Parents:     parents,
		Payments:    payments,
		FeeTypes:    feeTypes,
		Assignments: assignments,
		Attendance:  attendance,
		Notices:     notices,
	})
}
