package jobs

import (
	"context"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"
)

// RefreshDaysLeft recomputes days left on every rented unit against today's date.
func (jr *JobRunner) RefreshDaysLeft() {
	jr.runWithRecovery("RefreshDaysLeft", func() {
		ctx := context.Background()

		n, err := jr.services.Registry.RefreshDaysLeft(ctx)
		if err != nil {
			logger.Error("Failed to refresh days left", "error", err)
			return
		}
		logger.Info("Refreshed days left on rented units", "count", n)
	})
}

// CheckLowUtilization emails sites whose per-type average usage is below the
// configured threshold.
func (jr *JobRunner) CheckLowUtilization() {
	jr.runWithRecovery("CheckLowUtilization", func() {
		ctx := context.Background()
		threshold := jr.config.Utilization.Threshold

		alerted, err := jr.services.Utilization.CheckLowUtilization(ctx, threshold)
		if err != nil {
			logger.Error("Low utilization check finished with errors", "alerted", len(alerted), "error", err)
			return
		}
		logger.Info("Low utilization check finished", "threshold", threshold, "alerted", len(alerted))
	})
}

// SimulateTelemetry nudges the usage and fuel of one random rented unit.
func (jr *JobRunner) SimulateTelemetry() {
	if jr.simulator == nil {
		logger.Debug("Telemetry simulation disabled, skipping")
		return
	}
	jr.runWithRecovery("SimulateTelemetry", func() {
		if _, err := jr.simulator.Step(context.Background()); err != nil {
			logger.Error("Telemetry simulation step failed", "error", err)
		}
	})
}
