package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"carrycampus/internal/core/domain/model/assignment"
	"carrycampus/internal/core/domain/model/request"
	"carrycampus/internal/core/domain/services"
	"carrycampus/internal/core/ports"
	"carrycampus/internal/pkg/errs"
)

// AdvanceStatusCommandHandler handles lifecycle progression by the assigned
// fulfiller. The Delivered branch is the automatic settlement: completion
// stamp, completed ledger entry and wallet credit all commit in the same unit
// of work as the status flip, so the reward is credited exactly once or not
// at all.
type AdvanceStatusCommandHandler struct {
	uowFactory UoWFactory
	settlement services.SettlementService
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewAdvanceStatusCommandHandler creates a handler for status advancement.
func NewAdvanceStatusCommandHandler(
	uowFactory UoWFactory,
	settlement services.SettlementService,
	notifier ports.Notifier,
	logger *slog.Logger,
) AdvanceStatusCommandHandler {
	return AdvanceStatusCommandHandler{
		uowFactory: uowFactory,
		settlement: settlement,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the advancement command and returns the updated request.
//
// The caller must hold the request's assignment; anyone else gets
// ForbiddenError without learning whether the request exists. The domain
// transition validates the move against the loaded status, and the
// conditional status write re-checks it against the persisted row, so a
// repeat of an already-applied transition fails rather than silently
// succeeding twice.
func (h AdvanceStatusCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceStatusCommand,
) (*request.DeliveryRequest, error) {
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

	asg, err := uow.AssignmentRepository().GetByRequestID(ctx, cmd.RequestID())
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.NewForbiddenError("not authorized to update this delivery request")
		}
		return nil, err
	}

	if !asg.IsFulfilledBy(cmd.DeliveryPersonID()) {
		return nil, errs.NewForbiddenError("not authorized to update this delivery request")
	}

	req, err := uow.RequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	prev := req.Status()

	switch cmd.Target() {
	case request.Picked:
		err = req.Pick()
	case request.Delivered:
		err = req.Deliver()
	case request.Cancelled:
		err = req.CancelByFulfiller()
	default:
		err = errs.NewValidationError("target status")
	}
	if err != nil {
		return nil, err
	}

	if err = uow.RequestRepository().CompareAndSwapStatus(
		ctx, req.ID(), cmd.Target(), prev,
	); err != nil {
		return nil, err
	}

	if cmd.Target() == request.Delivered {
		if err = h.settle(ctx, uow, req, asg); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notifyBestEffort(ctx, h.logger, h.notifier, req.RequesterID(),
		fmt.Sprintf("Your delivery request is now %s.", req.Status()))

	return req, nil
}

// settle records the completion stamp, the completed ledger entry and the
// wallet credit inside the caller's open unit of work.
func (h AdvanceStatusCommandHandler) settle(
	ctx context.Context,
	uow UoW,
	req *request.DeliveryRequest,
	asg *assignment.Assignment,
) error {
	if err := asg.Complete(time.Now().UTC()); err != nil {
		return err
	}

	if err := uow.AssignmentRepository().Update(ctx, asg); err != nil {
		return err
	}

	tx, credit, err := h.settlement.Settle(req, asg)
	if err != nil {
		return err
	}

	if err = uow.TransactionRepository().Add(ctx, tx); err != nil {
		return err
	}

	return uow.WalletRepository().Credit(ctx, credit.UserID, credit.Amount)
}
