package scheduler

import (
	"time"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/jobs"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config()

	// Daily jobs
	if _, err := s.cron.AddFunc(cfg.Scheduler.RefreshDaysLeft, s.jobs.RefreshDaysLeft); err != nil {
		logger.Error("Failed to register RefreshDaysLeft job", "error", err)
	}
	if _, err := s.cron.AddFunc(cfg.Scheduler.CheckLowUtilization, s.jobs.CheckLowUtilization); err != nil {
		logger.Error("Failed to register CheckLowUtilization job", "error", err)
	}

	if cfg.Simulation.Enabled {
		if _, err := s.cron.AddFunc(cfg.Scheduler.SimulateTelemetry, s.jobs.SimulateTelemetry); err != nil {
			logger.Error("Failed to register SimulateTelemetry job", "error", err)
		}
	}

	logger.Info("Cron jobs registered", "count", len(s.cron.Entries()))
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// EntryCount returns the number of registered jobs.
func (s *Scheduler) EntryCount() int {
	return len(s.cron.Entries())
}
