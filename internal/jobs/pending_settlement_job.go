package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"carrycampus/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// pendingSettlementSchedule fires at the top of every hour. Reminders are
// nudges, not alerts; hourly keeps them noticeable without being noisy.
const pendingSettlementSchedule = "0 0 * * * *"

// PendingSettlementJob periodically reminds payees of ledger entries still
// waiting for their confirmation. Reminders are best-effort: a failed lookup
// or notification is logged and retried on the next tick.
type PendingSettlementJob struct {
	reader   ports.PendingSettlementReader
	notifier ports.Notifier
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPendingSettlementJob creates the reminder job.
func NewPendingSettlementJob(
	reader ports.PendingSettlementReader,
	notifier ports.Notifier,
	logger *slog.Logger,
) *PendingSettlementJob {
	return &PendingSettlementJob{
		reader:   reader,
		notifier: notifier,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pending_settlement_job"),
	}
}

// Start schedules the hourly reminder sweep.
func (j *PendingSettlementJob) Start() error {
	_, err := j.cron.AddFunc(pendingSettlementSchedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending settlement reminder job started (running hourly)")
	return nil
}

// Stop stops the reminder job.
func (j *PendingSettlementJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending settlement reminder job stopped")
}

func (j *PendingSettlementJob) run() {
	ctx := context.Background()

	summaries, err := j.reader.ListPendingSettlements(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending settlement sweep failed", "error", err)
		return
	}

	for _, summary := range summaries {
		message := fmt.Sprintf(
			"You have %d payment(s) totalling %d awaiting your confirmation.",
			summary.Count, summary.TotalAmount,
		)
		if err := j.notifier.Notify(ctx, summary.PayeeID.String(), message); err != nil {
			j.logger.WarnContext(ctx, "Pending settlement reminder failed",
				"payee_id", summary.PayeeID.String(),
				"error", err)
		}
	}
}
