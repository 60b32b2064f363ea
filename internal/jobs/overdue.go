// Package jobs runs scheduled background work against the services.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// OverdueSweeper is the slice of the invoice service the sweep needs.
type OverdueSweeper interface {
	SweepOverdue(ctx context.Context, asOf time.Time) (int, error)
}

type OverdueJob struct {
	invoices OverdueSweeper
	logger   *slog.Logger
	now      func() time.Time
	timeout  time.Duration
}

func NewOverdueJob(invoices OverdueSweeper, logger *slog.Logger) *OverdueJob {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OverdueJob{invoices: invoices, logger: logger, now: time.Now, timeout: time.Minute}
}

// WithClock replaces the sweep's reference time source.
func (j *OverdueJob) WithClock(now func() time.Time) *OverdueJob {
	j.now = now
	return j
}

// Run marks sent invoices past their due date as overdue once.
func (j *OverdueJob) Run(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()
	n, err := j.invoices.SweepOverdue(ctx, j.now())
	if err != nil {
		return 0, fmt.Errorf("overdue sweep: %w", err)
	}
	return n, nil
}

// Scheduler owns the cron runner for background jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewScheduler registers the overdue sweep on schedule, a standard
// five-field cron expression evaluated in loc.
func NewScheduler(job *OverdueJob, schedule string, loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(schedule, func() {
		n, err := job.Run(context.Background())
		if err != nil {
			job.logger.Error("overdue_sweep", "error", err.Error())
			return
		}
		job.logger.Info("overdue_sweep", "marked", n)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid overdue schedule %q: %w", schedule, err)
	}
	return &Scheduler{cron: c, logger: job.logger}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler_started", "jobs", len(s.cron.Entries()))
}

// Stop halts the scheduler and waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Next reports when the sweep will next fire; zero before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
