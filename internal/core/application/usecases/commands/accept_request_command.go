package commands

import (
	"errors"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/pkg/guard"
)

// ErrAcceptRequestCommandIsNotConstructed is returned when an
// AcceptRequestCommand was not built through its constructor.
var ErrAcceptRequestCommandIsNotConstructed = errors.New(
	"AcceptRequestCommand must be created via NewAcceptRequestCommand constructor",
)

// AcceptRequestCommand represents a fulfiller accepting an open delivery
// request.
type AcceptRequestCommand struct { //nolint:recvcheck //using for validation
	requestID        kernel.UUID
	deliveryPersonID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptRequestCommand creates a command to accept a delivery request.
func NewAcceptRequestCommand(requestID, deliveryPersonID kernel.UUID) (AcceptRequestCommand, error) {
	cmd := AcceptRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setDeliveryPersonID(deliveryPersonID),
	); err != nil {
		return AcceptRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptRequestCommand) Validate() error {
	return c.guard.Validate(ErrAcceptRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request being accepted.
func (c AcceptRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// DeliveryPersonID returns the identifier of the accepting fulfiller.
func (c AcceptRequestCommand) DeliveryPersonID() kernel.UUID {
	return c.deliveryPersonID
}

func (c *AcceptRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *AcceptRequestCommand) setDeliveryPersonID(deliveryPersonID kernel.UUID) error {
	if err := deliveryPersonID.Validate(); err != nil {
		return err
	}

	c.deliveryPersonID = deliveryPersonID
	return nil
}
