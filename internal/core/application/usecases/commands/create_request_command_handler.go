package commands

import (
	"context"

	"carrycampus/internal/core/domain/model/request"
)

// CreateRequestCommandHandler handles the business logic for posting a new
// delivery request. The request starts in Open status and becomes visible to
// fulfillers through the open-requests query.
type CreateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewCreateRequestCommandHandler creates a handler for request creation.
// Requires a RequestUoWFactory for transactional persistence.
func NewCreateRequestCommandHandler(uowFactory RequestUoWFactory) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the creation command and returns the created request.
// Payload validation (required drop location, reward bounds) and defaulting
// happen in the aggregate constructor; a violation surfaces as a
// ValidationError before anything is persisted.
func (h CreateRequestCommandHandler) Handle(
	ctx context.Context,
	cmd CreateRequestCommand,
) (*request.DeliveryRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	req, err := request.NewDeliveryRequest(
		cmd.RequestID(),
		cmd.RequesterID(),
		cmd.PickupLocation(),
		cmd.DropLocation(),
		cmd.RewardAmount(),
		cmd.ParcelWeight(),
		cmd.ParcelType(),
		cmd.ExpectedTime(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RequestRepository().Add(ctx, req); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return req, nil
}
