package commands

import (
	"errors"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/request"
	"carrycampus/internal/pkg/errs"
	"carrycampus/internal/pkg/guard"
)

// ErrAdvanceStatusCommandIsNotConstructed is returned when an
// AdvanceStatusCommand was not built through its constructor.
var ErrAdvanceStatusCommandIsNotConstructed = errors.New(
	"AdvanceStatusCommand must be created via NewAdvanceStatusCommand constructor",
)

// AdvanceStatusCommand represents the assigned fulfiller moving a delivery
// request along its lifecycle: Picked, Delivered, or Cancelled.
type AdvanceStatusCommand struct { //nolint:recvcheck //using for validation
	requestID        kernel.UUID
	deliveryPersonID kernel.UUID
	target           request.Status

	guard guard.ConstructorGuard
}

// NewAdvanceStatusCommand creates a command to advance a request's status.
// Only Picked, Delivered and Cancelled are reachable through this command;
// Open and Assigned are produced by creation and acceptance respectively.
func NewAdvanceStatusCommand(
	requestID, deliveryPersonID kernel.UUID,
	target request.Status,
) (AdvanceStatusCommand, error) {
	cmd := AdvanceStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setDeliveryPersonID(deliveryPersonID),
		cmd.setTarget(target),
	); err != nil {
		return AdvanceStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStatusCommandIsNotConstructed)
}

// RequestID returns the identifier of the request being advanced.
func (c AdvanceStatusCommand) RequestID() kernel.UUID {
	return c.requestID
}

// DeliveryPersonID returns the identifier of the acting fulfiller.
func (c AdvanceStatusCommand) DeliveryPersonID() kernel.UUID {
	return c.deliveryPersonID
}

// Target returns the requested destination status.
func (c AdvanceStatusCommand) Target() request.Status {
	return c.target
}

func (c *AdvanceStatusCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *AdvanceStatusCommand) setDeliveryPersonID(deliveryPersonID kernel.UUID) error {
	if err := deliveryPersonID.Validate(); err != nil {
		return err
	}

	c.deliveryPersonID = deliveryPersonID
	return nil
}

func (c *AdvanceStatusCommand) setTarget(target request.Status) error {
	switch target {
	case request.Picked, request.Delivered, request.Cancelled:
		c.target = target
		return nil
	default:
		return errs.NewValidationError("target status")
	}
}
