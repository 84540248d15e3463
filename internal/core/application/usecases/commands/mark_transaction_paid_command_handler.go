package commands

import (
	"context"
	"log/slog"

	"carrycampus/internal/core/domain/model/ledger"
	"carrycampus/internal/core/ports"
	"carrycampus/internal/pkg/errs"
)

// MarkTransactionPaidCommandHandler handles the payee confirming an
// out-of-band payment. Only Pending entries pass through here; the automatic
// settlement path records its entries Completed from the start and never
// revisits them.
type MarkTransactionPaidCommandHandler struct {
	uowFactory LedgerUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewMarkTransactionPaidCommandHandler creates a handler for manual settlement.
func NewMarkTransactionPaidCommandHandler(
	uowFactory LedgerUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) MarkTransactionPaidCommandHandler {
	return MarkTransactionPaidCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the settlement command and returns the updated transaction.
//
// The Pending->Completed swap and the wallet credit commit together. Two
// racing confirmations both load the Pending entry, but the conditional
// status write admits exactly one; the loser rolls back with ConflictError
// and the wallet is credited once.
func (h MarkTransactionPaidCommandHandler) Handle(
	ctx context.Context,
	cmd MarkTransactionPaidCommand,
) (*ledger.Transaction, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tx, err := uow.TransactionRepository().Get(ctx, cmd.TransactionID())
	if err != nil {
		return nil, err
	}

	if !tx.IsPayee(cmd.PayeeID()) {
		return nil, errs.NewForbiddenError("only the payee can mark a transaction as paid")
	}

	if err = tx.MarkCompleted(); err != nil {
		return nil, err
	}

	if err = uow.TransactionRepository().CompareAndSwapStatus(
		ctx, tx.ID(), ledger.TransactionCompleted, ledger.TransactionPending,
	); err != nil {
		return nil, err
	}

	if err = uow.WalletRepository().Credit(ctx, tx.PaidTo(), tx.Amount()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notifyBestEffort(ctx, h.logger, h.notifier, tx.PaidBy(),
		"Your payment has been confirmed by the recipient.")

	return tx, nil
}
