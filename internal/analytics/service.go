// Package analytics derives every dashboard figure on the fly from the raw
// school collections: totals, rates, categorized breakdowns, month-keyed time
// series and deltas. It holds no state between requests and never fails a
// caller: a broken fetch degrades its own section to empty, nothing more.
package analytics

import (
	"log/slog"
	"time"

	applog "ecole/internal/log"
	"ecole/internal/store"
)

const (
	defaultLimit            = 10
	defaultAttendanceWindow = 50
	previewLength           = 100
)

// Service computes reports against the store ports. Safe for concurrent use.
type Service struct {
	store  store.Store
	log    *applog.Logger
	limit  int
	window int
	now    func() time.Time
}

// New builds a Service. limit caps the recent-activity and transaction feeds,
// attendanceWindow caps how many registers the weekday report reads; zero
// picks the defaults.
func New(st store.Store, logger *applog.Logger, limit, attendanceWindow int) *Service {
	if logger == nil {
		logger = applog.New(slog.LevelInfo, applog.ComponentAnalytics)
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if attendanceWindow <= 0 {
		attendanceWindow = defaultAttendanceWindow
	}
	return &Service{
		store:  st,
		log:    logger.WithComponent(applog.ComponentAnalytics),
		limit:  limit,
		window: attendanceWindow,
		now:    time.Now,
	}
}

// Options narrows a report. Zero values mean current year, all time and the
// service default limit.
type Options struct {
	Year     int
	From, To time.Time
	Limit    int
}

func (o Options) ranged() bool { return !o.From.IsZero() || !o.To.IsZero() }

func (o Options) window() store.Filter {
	return store.Filter{From: o.From, To: o.To}
}

func (s *Service) limitOr(o Options) int {
	if o.Limit > 0 {
		return o.Limit
	}
	return s.limit
}

// yearOr resolves the target reporting year before inference runs.
func (s *Service) yearOr(o Options) int {
	if o.Year > 0 {
		return o.Year
	}
	return s.now().Year()
}
