package commands

import (
	"context"
	"log/slog"

	"carrycampus/internal/core/domain/model/assignment"
	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/request"
	"carrycampus/internal/core/ports"
	"carrycampus/internal/pkg/errs"
)

// AcceptRequestCommandHandler handles a fulfiller accepting an open delivery
// request. Acceptance is the contended operation of the lifecycle: any number
// of fulfillers may race for the same request and exactly one must win. The
// handler relies on the repository's conditional status write for that
// guarantee, not on the status it read.
type AcceptRequestCommandHandler struct {
	uowFactory AssignmentUoWFactory
	verifier   ports.VerificationChecker
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewAcceptRequestCommandHandler creates a handler for request acceptance.
func NewAcceptRequestCommandHandler(
	uowFactory AssignmentUoWFactory,
	verifier ports.VerificationChecker,
	notifier ports.Notifier,
	logger *slog.Logger,
) AcceptRequestCommandHandler {
	return AcceptRequestCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the acceptance command and returns the created assignment.
//
// Sequence: verification gate, self-accept guard, domain transition check,
// then the conditional Open->Assigned status write. When two calls race, both
// pass the domain check against their stale reads; the storage-level swap
// admits exactly one and the loser gets ConflictError with nothing persisted.
func (h AcceptRequestCommandHandler) Handle(
	ctx context.Context,
	cmd AcceptRequestCommand,
) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	verified, err := h.verifier.IsVerified(ctx, cmd.DeliveryPersonID())
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, errs.NewForbiddenError("only verified users can accept delivery requests")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	req, err := uow.RequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	if req.IsOwnedBy(cmd.DeliveryPersonID()) {
		return nil, errs.NewForbiddenError("cannot accept your own delivery request")
	}

	if err = req.Assign(); err != nil {
		return nil, err
	}

	if err = uow.RequestRepository().CompareAndSwapStatus(
		ctx, req.ID(), request.Assigned, request.Open,
	); err != nil {
		return nil, err
	}

	asg, err := assignment.NewAssignment(
		kernel.NewUUID(), req.ID(), cmd.DeliveryPersonID(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.AssignmentRepository().Add(ctx, asg); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notifyBestEffort(ctx, h.logger, h.notifier, req.RequesterID(),
		"Your delivery request has been accepted!")

	return asg, nil
}
