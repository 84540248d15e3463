package commands

import (
	"errors"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/pkg/guard"
)

// ErrCancelRequestCommandIsNotConstructed is returned when a
// CancelRequestCommand was not built through its constructor.
var ErrCancelRequestCommandIsNotConstructed = errors.New(
	"CancelRequestCommand must be created via NewCancelRequestCommand constructor",
)

// CancelRequestCommand represents the requester withdrawing their own
// delivery request.
type CancelRequestCommand struct { //nolint:recvcheck //using for validation
	requestID   kernel.UUID
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelRequestCommand creates a command to cancel a delivery request.
func NewCancelRequestCommand(requestID, requesterID kernel.UUID) (CancelRequestCommand, error) {
	cmd := CancelRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setRequesterID(requesterID),
	); err != nil {
		return CancelRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelRequestCommand) Validate() error {
	return c.guard.Validate(ErrCancelRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request being cancelled.
func (c CancelRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// RequesterID returns the identifier of the acting requester.
func (c CancelRequestCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

func (c *CancelRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *CancelRequestCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	c.requesterID = requesterID
	return nil
}
