package commands

import (
	"context"
	"log/slog"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/ports"
)

// notifyBestEffort delivers a notification after the triggering transaction
// has committed. Failures are logged and discarded: notification delivery
// never changes the outcome or error of the lifecycle call that fired it.
func notifyBestEffort(
	ctx context.Context,
	logger *slog.Logger,
	notifier ports.Notifier,
	userID kernel.UUID,
	message string,
) {
	if notifier == nil {
		return
	}

	if err := notifier.Notify(ctx, userID.String(), message); err != nil {
		logger.WarnContext(ctx, "notification delivery failed",
			"user_id", userID.String(), "error", err)
	}
}
