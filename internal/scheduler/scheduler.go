// Package scheduler runs periodic capture jobs on cron expressions.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled task.
type Job func(ctx context.Context) error

// Scheduler manages periodic tasks in a fixed timezone.
type Scheduler struct {
	cron *cron.Cron
	jobs map[string]cron.EntryID
	log  *slog.Logger
}

// New creates a scheduler. timezone accepts anything time.LoadLocation
// does, including "Local".
func New(timezone string, log *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %s: %w", timezone, err)
	}

	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		jobs: make(map[string]cron.EntryID),
		log:  log,
	}, nil
}

// AddJob registers a job under a cron schedule like "0 */2 * * *".
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	entryID, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		s.log.Info("starting scheduled job", "job", name)
		start := time.Now()
		if err := job(ctx); err != nil {
			s.log.Error("scheduled job failed", "job", name, "error", err)
			return
		}
		s.log.Info("scheduled job completed", "job", name, "elapsed", time.Since(start))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	s.log.Info("scheduled job added", "job", name, "schedule", schedule)
	return nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
