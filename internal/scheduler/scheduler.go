package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Job is one scheduled run. ctx is the context passed to Start.
type Job func(ctx context.Context)

// Scheduler periodically runs a weather lookup.
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	job       Job
	logger    *zap.Logger
}

// New creates a new Scheduler.
func New(interval time.Duration, job Job, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
		job:       job,
		logger:    logger,
	}
}

// Start schedules the job to run now and then every interval. Runs never overlap.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return errors.New("scheduler: interval must be greater than zero")
	}
	if s.job == nil {
		return errors.New("scheduler: no job configured")
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(func() {
		if ctx.Err() != nil {
			return
		}
		s.logger.Debug("scheduler: running weather job")
		s.job(ctx)
		s.logger.Debug("scheduler: completed weather job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future runs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
