package commands

import (
	"errors"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/pkg/guard"
)

// ErrCreateRequestCommandIsNotConstructed is returned when a
// CreateRequestCommand was not built through its constructor.
var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand represents a requester posting a new delivery task.
//
// Identifier fields are validated here; the business rules for the payload
// (required drop location, reward bounds, pickup and reward defaults) live in
// the DeliveryRequest constructor so there is exactly one place they are
// enforced.
//
// Example:
//
//	cmd, err := NewCreateRequestCommand(kernel.NewUUID(), requesterID,
//	    "", "Room 5", 50, "1kg", "Documents", "2 hours")
//	if err != nil {
//	    return fmt.Errorf("invalid request data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID   kernel.UUID
	requesterID kernel.UUID

	pickupLocation string
	dropLocation   string
	rewardAmount   int
	parcelWeight   string
	parcelType     string
	expectedTime   string

	guard guard.ConstructorGuard
}

// NewCreateRequestCommand creates a command to post a new delivery request.
// Returns an error if either identifier is invalid.
func NewCreateRequestCommand(
	requestID kernel.UUID,
	requesterID kernel.UUID,
	pickupLocation string,
	dropLocation string,
	rewardAmount int,
	parcelWeight string,
	parcelType string,
	expectedTime string,
) (CreateRequestCommand, error) {
	cmd := CreateRequestCommand{
		pickupLocation: pickupLocation,
		dropLocation:   dropLocation,
		rewardAmount:   rewardAmount,
		parcelWeight:   parcelWeight,
		parcelType:     parcelType,
		expectedTime:   expectedTime,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setRequesterID(requesterID),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

// RequestID returns the identifier assigned to the new request.
func (c CreateRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// RequesterID returns the identifier of the posting user.
func (c CreateRequestCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// PickupLocation returns the pickup location, possibly empty (defaulted later).
func (c CreateRequestCommand) PickupLocation() string {
	return c.pickupLocation
}

// DropLocation returns the drop location.
func (c CreateRequestCommand) DropLocation() string {
	return c.dropLocation
}

// RewardAmount returns the reward, possibly zero (defaulted later).
func (c CreateRequestCommand) RewardAmount() int {
	return c.rewardAmount
}

// ParcelWeight returns the free-text parcel weight.
func (c CreateRequestCommand) ParcelWeight() string {
	return c.parcelWeight
}

// ParcelType returns the free-text parcel type.
func (c CreateRequestCommand) ParcelType() string {
	return c.parcelType
}

// ExpectedTime returns the free-text expected delivery time.
func (c CreateRequestCommand) ExpectedTime() string {
	return c.expectedTime
}

func (c *CreateRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *CreateRequestCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	c.requesterID = requesterID
	return nil
}
