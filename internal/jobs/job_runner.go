package jobs

import (
	"context"
	"fmt"
	"time"

	"genset-rental-backend/internal/config"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/service"
)

const (
	JobSendDueSoonReminders = "send-due-soon-reminders"
	JobReportOverdueReturns = "report-overdue-returns"
	JobAll                  = "all"
)

// Names lists the jobs accepted by RunJob.
var Names = []string{JobSendDueSoonReminders, JobReportOverdueReturns, JobAll}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Reports service.ReportService
	Email   service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
	}
}

// Config returns the configuration the runner was built with.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (err error) {
	started := time.Now()
	ctx := logger.NewContext(context.Background(), logger.Get().With("job", jobName))

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	if err = jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err, "duration_ms", time.Since(started).Milliseconds())
		return err
	}
	logger.Info("Job completed", "job", jobName, "duration_ms", time.Since(started).Milliseconds())
	return nil
}

// RunJob runs the named job once.
func (jr *JobRunner) RunJob(name string) error {
	switch name {
	case JobSendDueSoonReminders:
		return jr.SendDueSoonReminders()
	case JobReportOverdueReturns:
		return jr.ReportOverdueReturns()
	case JobAll:
		return jr.RunAllDailyJobs()
	default:
		return fmt.Errorf("unknown job %q", name)
	}
}

// RunAllDailyJobs runs every daily job (for manual execution)
func (jr *JobRunner) RunAllDailyJobs() error {
	dueErr := jr.SendDueSoonReminders()
	overdueErr := jr.ReportOverdueReturns()
	if dueErr != nil {
		return dueErr
	}
	return overdueErr
}
