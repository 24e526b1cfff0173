package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a job on a standard five-field cron schedule until its context ends.
type Scheduler struct {
	schedule cron.Schedule
	job      func(ctx context.Context) error
	logger   *slog.Logger
	now      func() time.Time
}

func NewScheduler(expr string, job func(ctx context.Context) error, logger *slog.Logger) (*Scheduler, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", expr, err)
	}
	return &Scheduler{
		schedule: sched,
		job:      job,
		logger:   logger.With("component", "report_scheduler"),
		now:      time.Now,
	}, nil
}

func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("report scheduler started")

	for {
		next := s.schedule.Next(s.now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("report scheduler shut down")
			return
		case <-timer.C:
			if err := s.job(ctx); err != nil {
				s.logger.Error("scheduled report failed", "error", err)
				continue
			}
			s.logger.Info("scheduled report done", "next_run", s.schedule.Next(s.now()))
		}
	}
}
