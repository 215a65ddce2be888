// Package http exposes the analytics service as a JSON API: role dashboards,
// individual reports, xlsx export, health and readiness probes.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"ecole/internal/analytics"
	applog "ecole/internal/log"
	"ecole/internal/store"
)

type Server struct {
	http.Server

	analytics   *analytics.Service
	store       store.Store
	log         *applog.Logger
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

// NewServer configures the route table and returns a ready-to-run server.
func NewServer(addr string, svc *analytics.Service, st store.Store, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		analytics:   svc,
		store:       st,
		log:         logger.WithComponent(applog.ComponentHTTP),
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	mux.HandleFunc("/api/dashboard/admin", s.secured(s.handleAdminDashboard))
	mux.HandleFunc("/api/dashboard/finance", s.secured(s.handleFinanceDashboard))
	mux.HandleFunc("/api/dashboard/parent", s.secured(s.handleParentDashboard))
	mux.HandleFunc("/api/dashboard/student", s.secured(s.handleStudentDashboard))
	mux.HandleFunc("/api/dashboard/teacher", s.secured(s.handleTeacherDashboard))

	mux.HandleFunc("/api/reports/stats", s.secured(s.handleStats))
	mux.HandleFunc("/api/reports/revenue", s.secured(s.handleRevenue))
	mux.HandleFunc("/api/reports/revenue-by-category", s.secured(s.handleRevenueByCategory))
	mux.HandleFunc("/api/reports/collected-vs-pending", s.secured(s.handleCollectedVsPending))
	mux.HandleFunc("/api/reports/category-rollup", s.secured(s.handleCategoryRollup))
	mux.HandleFunc("/api/reports/demographics", s.secured(s.handleDemographics))
	mux.HandleFunc("/api/reports/attendance", s.secured(s.handleAttendance))
	mux.HandleFunc("/api/reports/activity", s.secured(s.handleActivity))
	mux.HandleFunc("/api/reports/payment-methods", s.secured(s.handlePaymentMethods))
	mux.HandleFunc("/api/reports/transactions", s.secured(s.handleTransactions))
	mux.HandleFunc("/api/reports/transactions/export", s.secured(s.handleTransactionsExport))
	mux.HandleFunc("/api/reports/class-revenue", s.secured(s.handleClassRevenue))
	mux.HandleFunc("/api/reports/class-revenue/export", s.secured(s.handleClassRevenueExport))

	return s
}

// Shutdown stops the rate limiter's cleanup goroutine and drains the HTTP
// server. Safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
