package scheduler

import (
	"fmt"

	"genset-rental-backend/internal/jobs"
	"genset-rental-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler running in the business timezone with
// seconds precision. A malformed schedule is an error.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(jobRunner.Config().Location()),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	entries := []struct {
		name     string
		schedule string
		run      func() error
	}{
		{jobs.JobSendDueSoonReminders, cfg.SendDueSoonReminders, s.jobs.SendDueSoonReminders},
		{jobs.JobReportOverdueReturns, cfg.ReportOverdueReturns, s.jobs.ReportOverdueReturns},
	}

	for _, e := range entries {
		run := e.run
		if _, err := s.cron.AddFunc(e.schedule, func() { _ = run() }); err != nil {
			return fmt.Errorf("register %s job (%q): %w", e.name, e.schedule, err)
		}
		logger.Info("Registered cron job", "job", e.name, "schedule", e.schedule)
	}
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop waits for running jobs and stops the scheduler.
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Entries returns the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
