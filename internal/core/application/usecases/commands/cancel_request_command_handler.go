package commands

import (
	"context"
	"errors"
	"log/slog"

	"carrycampus/internal/core/domain/model/request"
	"carrycampus/internal/core/ports"
	"carrycampus/internal/pkg/errs"
)

// CancelRequestCommandHandler handles the requester withdrawing their own
// request. Cancellation is allowed while the request is Open or Assigned;
// once the parcel is picked up the requester can no longer pull out.
type CancelRequestCommandHandler struct {
	uowFactory AssignmentUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCancelRequestCommandHandler creates a handler for request cancellation.
func NewCancelRequestCommandHandler(
	uowFactory AssignmentUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) CancelRequestCommandHandler {
	return CancelRequestCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the cancellation command and returns the updated request.
//
// Ownership is checked before anything else: a non-owner receives
// NotFoundError, the same answer they would get for a request that does not
// exist. The conditional status write guards against a fulfiller accepting
// or picking up concurrently with the cancel.
func (h CancelRequestCommandHandler) Handle(
	ctx context.Context,
	cmd CancelRequestCommand,
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

	req, err := uow.RequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	if !req.IsOwnedBy(cmd.RequesterID()) {
		return nil, errs.NewNotFoundError("delivery request", cmd.RequestID().String())
	}

	prev := req.Status()

	if err = req.CancelByRequester(); err != nil {
		return nil, err
	}

	if err = uow.RequestRepository().CompareAndSwapStatus(
		ctx, req.ID(), request.Cancelled, prev,
	); err != nil {
		return nil, err
	}

	// An assigned fulfiller learns about the withdrawal; an Open request
	// has nobody to tell.
	asg, asgErr := uow.AssignmentRepository().GetByRequestID(ctx, req.ID())
	if asgErr != nil && !errors.Is(asgErr, errs.ErrNotFound) {
		return nil, asgErr
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if asg != nil {
		notifyBestEffort(ctx, h.logger, h.notifier, asg.DeliveryPersonID(),
			"A delivery request you accepted has been cancelled by the requester.")
	}

	return req, nil
}
