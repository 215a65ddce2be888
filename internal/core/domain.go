// Package core holds the read-only domain records of the school portal and
// the pure helpers (reference resolution, fee categorization) shared by every
// report builder. Records are owned and mutated by the portal's CRUD layer;
// this service only ever reads them.
package core

import "time"

// Gender values used by demographics reports. Anything else counts as "Other".
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Attendance statuses recorded per student per day.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

// Notice priorities as stored by the CRUD layer.
const (
	PriorityHigh   = "High"
	PriorityNormal = "Normal"
	PriorityLow    = "Low"
)

// DefaultPaymentMethod is assumed when a payment carries an empty method
// string. Centralized here so the policy is visible and testable.
const DefaultPaymentMethod = "Cash"

type (
	// Student as stored in the `students` collection.
	Student struct {
		ID         ID        `bson:"_id" json:"id"`
		FirstName  string    `bson:"firstName" json:"firstName"`
		LastName   string    `bson:"lastName" json:"lastName"`
		Gender     string    `bson:"gender" json:"gender"`
		AdmittedAt time.Time `bson:"admissionDate" json:"admissionDate"`
		Class      Ref       `bson:"class" json:"class"`
		Section    Ref       `bson:"section" json:"section"`
		Parent     Ref       `bson:"parent" json:"parent"`
	}

	Teacher struct {
		ID        ID        `bson:"_id" json:"id"`
		FirstName string    `bson:"firstName" json:"firstName"`
		LastName  string    `bson:"lastName" json:"lastName"`
		JoinedAt  time.Time `bson:"joinDate" json:"joinDate"`
	}

	// Class carries a denormalized student count maintained by the CRUD layer.
	Class struct {
		ID            ID     `bson:"_id" json:"id"`
		Name          string `bson:"name" json:"name"`
		TotalStudents int    `bson:"totalStudents" json:"totalStudents"`
	}

	Parent struct {
		ID        ID     `bson:"_id" json:"id"`
		FirstName string `bson:"firstName" json:"firstName"`
		LastName  string `bson:"lastName" json:"lastName"`
	}

	// Payment is an immutable ledger entry: the only valid source of
	// "collected" money whenever a date range is involved.
	Payment struct {
		ID         ID        `bson:"_id" json:"id"`
		Student    Ref       `bson:"student" json:"student"`
		Assignment Ref       `bson:"feeAssignment" json:"feeAssignment"`
		Amount     float64   `bson:"amount" json:"amount"`
		Method     string    `bson:"paymentMethod" json:"paymentMethod"`
		PaidAt     time.Time `bson:"paymentDate" json:"paymentDate"`
	}

	// FeeType has no stored category; categories are always derived from the
	// free-text name via Categorize.
	FeeType struct {
		ID   ID     `bson:"_id" json:"id"`
		Name string `bson:"name" json:"name"`
	}

	// FeeAssignment links a student to a fee type and carries the expected
	// (TotalAmount) and cumulative paid (PaidAmount) sides of the ledger.
	FeeAssignment struct {
		ID          ID       `bson:"_id" json:"id"`
		Student     Ref      `bson:"student" json:"student"`
		FeeType     Ref      `bson:"feeType" json:"feeType"`
		TotalAmount float64  `bson:"totalAmount" json:"totalAmount"`
		PaidAmount  float64  `bson:"paidAmount" json:"paidAmount"`
		Balance     *float64 `bson:"balance,omitempty" json:"balance,omitempty"`
	}

	AttendanceEntry struct {
		Student Ref    `bson:"student" json:"student"`
		Status  string `bson:"status" json:"status"`
	}

	// Attendance is one dated register for a class: a list of per-student
	// status entries.
	Attendance struct {
		ID      ID                `bson:"_id" json:"id"`
		Class   Ref               `bson:"class" json:"class"`
		Date    time.Time         `bson:"date" json:"date"`
		Entries []AttendanceEntry `bson:"records" json:"records"`
	}

	Notice struct {
		ID          ID        `bson:"_id" json:"id"`
		Title       string    `bson:"title" json:"title"`
		Content     string    `bson:"content" json:"content"`
		Priority    string    `bson:"priority" json:"priority"`
		Audience    string    `bson:"targetAudience" json:"targetAudience"`
		PublishedAt time.Time `bson:"publishDate" json:"publishDate"`
	}
)

// FullName joins first and last name, tolerating either being empty.
func (s Student) FullName() string { return joinName(s.FirstName, s.LastName) }

func (t Teacher) FullName() string { return joinName(t.FirstName, t.LastName) }

func (p Parent) FullName() string { return joinName(p.FirstName, p.LastName) }

// MethodOrDefault returns the payment method, falling back to
// DefaultPaymentMethod for legacy entries recorded without one.
func (p Payment) MethodOrDefault() string {
	if p.Method == "" {
		return DefaultPaymentMethod
	}
	return p.Method
}

// Outstanding returns the explicit balance when the CRUD layer stored one,
// otherwise totalAmount - paidAmount. May be negative on overpaid
// assignments; callers floor at zero where the report requires it.
func (a FeeAssignment) Outstanding() float64 {
	if a.Balance != nil {
		return *a.Balance
	}
	return a.TotalAmount - a.PaidAmount
}

// PresenceRatio is the share of entries marked present or late.
// An empty register yields 0, never NaN.
func (a Attendance) PresenceRatio() float64 {
	if len(a.Entries) == 0 {
		return 0
	}
	attended := 0
	for _, e := range a.Entries {
		if e.Status == StatusPresent || e.Status == StatusLate {
			attended++
		}
	}
	return float64(attended) / float64(len(a.Entries))
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
