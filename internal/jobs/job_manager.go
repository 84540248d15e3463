// Package jobs provides scheduled background tasks, implemented as cron jobs
// using github.com/robfig/cron/v3 and coordinated by JobManager:
//
//	jobManager := jobs.NewJobManager(reader, notifier, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs

import (
	"fmt"
	"log/slog"

	"carrycampus/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	pendingSettlementJob *PendingSettlementJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	reader ports.PendingSettlementReader,
	notifier ports.Notifier,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		pendingSettlementJob: NewPendingSettlementJob(reader, notifier, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.pendingSettlementJob.Start(); err != nil {
		return fmt.Errorf("failed to start pending settlement job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pendingSettlementJob.Stop()
}
