package analytics

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"ecole/internal/core"
	"ecole/internal/store"
)

// Demographics counts enrolled students by gender.
type Demographics struct {
	Male   int `json:"male"`
	Female int `json:"female"`
	Other  int `json:"other"`
	Total  int `json:"total"`
}

func (s *Service) Demographics(ctx context.Context, o Options) Demographics {
	var students []core.Student
	g := &errgroup.Group{}
	settle(ctx, g, s.log, "students", &students, func(ctx context.Context) ([]core.Student, error) {
		return s.store.ListStudents(ctx, store.Filter{})
	})
	_ = g.Wait()

	out := Demographics{Total: len(students)}
	for _, st := range students {
		switch st.Gender {
		case core.GenderMale:
			out.Male++
		case core.GenderFemale:
			out.Female++
		default:
			out.Other++
		}
	}
	return out
}

// WeekdayAttendance is one weekday's presence split, integer percents.
// Late counts as present; a weekday with no recorded statuses is 0/0.
type WeekdayAttendance struct {
	Day        string `json:"day"`
	PresentPct int    `json:"presentPct"`
	AbsentPct  int    `json:"absentPct"`
}

// AttendanceByWeekday groups the most recent registers by weekday name,
// Monday first. Only the configured window of registers is read so the
// report reflects recent patterns, not the whole school year.
func (s *Service) AttendanceByWeekday(ctx context.Context, o Options) []WeekdayAttendance {
	var registers []core.Attendance
	g := &errgroup.Group{}
	settle(ctx, g, s.log, "attendance", &registers, func(ctx context.Context) ([]core.Attendance, error) {
		f := o.window()
		f.Limit = s.window
		f.NewestFirst = true
		return s.store.ListAttendance(ctx, f)
	})
	_ = g.Wait()

	type tally struct{ present, total int }
	var byDay [7]tally
	for _, reg := range registers {
		day := weekdayIndex(reg.Date.Weekday())
		for _, e := range reg.Entries {
			byDay[day].total++
			if e.Status == core.StatusPresent || e.Status == core.StatusLate {
				byDay[day].present++
			}
		}
	}

	out := make([]WeekdayAttendance, 7)
	for i, t := range byDay {
		out[i] = WeekdayAttendance{
			Day:        weekdayNames[i],
			PresentPct: roundPct(float64(t.present), float64(t.total)),
			AbsentPct:  roundPct(float64(t.total-t.present), float64(t.total)),
		}
	}
	return out
}

var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// weekdayIndex remaps time.Weekday (Sunday-first) to Monday-first.
func weekdayIndex(d time.Weekday) int { return (int(d) + 6) % 7 }

// MethodSlice is one wedge of the payment-method chart.
type MethodSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// methodColors keeps chart colors stable across requests. Methods outside
// the table get the neutral grey.
var methodColors = map[string]string{
	"Cash":          "#22c55e",
	"Bank Transfer": "#3b82f6",
	"Mobile Money":  "#f59e0b",
	"Cheque":        "#8b5cf6",
	"Card":          "#ec4899",
}

const methodColorDefault = "#9ca3af"

// PaymentMethodBreakdown sums payment amounts per method string, largest
// first. Payments recorded without a method count as Cash.
func (s *Service) PaymentMethodBreakdown(ctx context.Context, o Options) []MethodSlice {
	payments := s.fetchPayments(ctx, o.window())

	totals := make(map[string]float64)
	for _, p := range payments {
		totals[p.MethodOrDefault()] += p.Amount
	}

	out := make([]MethodSlice, 0, len(totals))
	for name, value := range totals {
		color, ok := methodColors[name]
		if !ok {
			color = methodColorDefault
		}
		out = append(out, MethodSlice{Name: name, Value: value, Color: color})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}
