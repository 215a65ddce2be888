package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"ecole/internal/analytics"
	"ecole/internal/core"
	"ecole/internal/export"
	applog "ecole/internal/log"
	"ecole/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleHealth is the basic liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleReady verifies the store answers a cheap listing before reporting
// ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	status, httpStatus := "ready", http.StatusOK
	checks := map[string]string{"store": "ok"}
	if _, err := s.store.ListClasses(ctx, store.Filter{Limit: 1}); err != nil {
		checks["store"] = fmt.Sprintf("failed: %v", err)
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, map[string]any{"status": status, "checks": checks})
}

func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.AdminDashboard(r.Context(), parseOptions(r)))
}

func (s *Server) handleFinanceDashboard(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.FinanceDashboard(r.Context(), parseOptions(r)))
}

func (s *Server) handleParentDashboard(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.ParentDashboard(r.Context(), id, parseOptions(r)))
}

func (s *Server) handleStudentDashboard(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.StudentDashboard(r.Context(), id, parseOptions(r)))
}

func (s *Server) handleTeacherDashboard(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.TeacherDashboard(r.Context(), id, parseOptions(r)))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.StatsSummary(r.Context(), parseOptions(r)))
}

func (s *Server) handleRevenue(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.RevenueTimeSeries(r.Context(), parseOptions(r)))
}

func (s *Server) handleRevenueByCategory(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.RevenueByCategory(r.Context(), parseOptions(r)))
}

func (s *Server) handleCollectedVsPending(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.CollectedVsPending(r.Context(), parseOptions(r)))
}

func (s *Server) handleCategoryRollup(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.FeeCategoryRollup(r.Context(), parseOptions(r)))
}

func (s *Server) handleDemographics(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.Demographics(r.Context(), parseOptions(r)))
}

func (s *Server) handleAttendance(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.AttendanceByWeekday(r.Context(), parseOptions(r)))
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.RecentActivity(r.Context(), parseOptions(r)))
}

func (s *Server) handlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.PaymentMethodBreakdown(r.Context(), parseOptions(r)))
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.RecentTransactions(r.Context(), parseOptions(r)))
}

func (s *Server) handleClassRevenue(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.ClassRevenueRollup(r.Context(), parseOptions(r)))
}

func (s *Server) handleTransactionsExport(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	transactions := s.analytics.RecentTransactions(r.Context(), parseOptions(r))
	f, err := export.TransactionsWorkbook(transactions)
	if err != nil {
		s.exportError(w, r, "transactions", err)
		return
	}
	defer f.Close()
	s.writeWorkbook(w, r, f, "transactions.xlsx")
}

func (s *Server) handleClassRevenueExport(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	rollup := s.analytics.ClassRevenueRollup(r.Context(), parseOptions(r))
	f, err := export.ClassRevenueWorkbook(rollup)
	if err != nil {
		s.exportError(w, r, "class-revenue", err)
		return
	}
	defer f.Close()
	s.writeWorkbook(w, r, f, "class-revenue.xlsx")
}

func (s *Server) writeWorkbook(w http.ResponseWriter, r *http.Request, f *excelize.File, filename string) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		// Headers are gone at this point; all we can do is log.
		s.log.ErrorContext(r.Context(), "workbook write failed",
			applog.FieldError, err)
	}
}

func (s *Server) exportError(w http.ResponseWriter, r *http.Request, report string, err error) {
	s.log.ErrorContext(r.Context(), "export failed",
		applog.FieldReport, report,
		applog.FieldError, err)
	http.Error(w, "export failed", http.StatusInternalServerError)
}

// parseOptions reads the year/from/to/limit query parameters. Malformed
// values fall back to their zero defaults rather than failing the request.
func parseOptions(r *http.Request) analytics.Options {
	q := r.URL.Query()
	var o analytics.Options
	if v := strings.TrimSpace(q.Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y > 0 {
			o.Year = y
		}
	}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			o.Limit = n
		}
	}
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		if ts, err := time.Parse("2006-01-02", v); err == nil {
			o.From = ts
		}
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		if ts, err := time.Parse("2006-01-02", v); err == nil {
			// Inclusive end of day.
			o.To = ts.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
	}
	return o
}

// requireID reads the mandatory id query parameter of the role dashboards.
func requireID(w http.ResponseWriter, r *http.Request) (core.ID, bool) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		http.Error(w, "missing id parameter", http.StatusBadRequest)
		return "", false
	}
	return core.ID(id), true
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
