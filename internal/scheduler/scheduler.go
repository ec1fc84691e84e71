package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/domain/models"
	"github.com/mamadbah2/aquashop/internal/service/notify"
	"github.com/mamadbah2/aquashop/internal/service/reporting"
)

const jobTimeout = 2 * time.Minute

// MonthCloser freezes the previous month's billing report.
type MonthCloser interface {
	CloseMonth(ctx context.Context, now time.Time) (models.MonthlyReportSnapshot, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	closer   MonthCloser
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a scheduler that runs the monthly close on schedule, a
// standard five field cron expression evaluated in loc.
func NewScheduler(schedule string, loc *time.Location, closer MonthCloser, notifier notify.Notifier, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: schedule,
		closer:   closer,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.closeMonth); err != nil {
		return fmt.Errorf("schedule monthly close %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("monthly_close", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) closeMonth() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.RunMonthlyClose(ctx); err != nil {
		s.logger.Error("monthly close failed", zap.Error(err))
	}
}

// RunMonthlyClose closes the previous month and tells the owner about it.
func (s *Scheduler) RunMonthlyClose(ctx context.Context) error {
	s.logger.Info("closing previous month")

	closed, err := s.closer.CloseMonth(ctx, s.now())
	if err != nil {
		return fmt.Errorf("close month: %w", err)
	}

	if err := s.notifier.Notify(ctx, reporting.ClosingSummary(closed)); err != nil {
		return fmt.Errorf("notify month %s closed: %w", closed.MonthKey, err)
	}

	s.logger.Info("monthly close sent", zap.String("month", closed.MonthKey))
	return nil
}
