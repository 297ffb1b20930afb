package jobs

import (
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/config"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services  *Services
	config    *config.Config
	simulator *UsageSimulator
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Registry    service.RegistryService
	Utilization service.UtilizationService
}

// NewJobRunner creates a new job runner. The usage simulator is only built when
// simulation is enabled.
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	jr := &JobRunner{
		services: services,
		config:   cfg,
	}
	if cfg.Simulation.Enabled {
		jr.simulator = NewUsageSimulator(services.Registry, cfg.Simulation)
	}
	return jr
}

// Config returns the configuration the runner was built with.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// Simulator returns the usage simulator, or nil when simulation is disabled.
func (jr *JobRunner) Simulator() *UsageSimulator {
	return jr.simulator
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllDailyJobs runs all daily jobs (for manual execution)
func (jr *JobRunner) RunAllDailyJobs() {
	jr.RefreshDaysLeft()
	jr.CheckLowUtilization()
}
