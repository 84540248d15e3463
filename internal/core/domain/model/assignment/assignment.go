// Package assignment contains the Assignment entity binding a delivery
// request to the single fulfiller who accepted it.
package assignment

import (
	"errors"
	"time"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/pkg/errs"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment instance was
// not created through NewAssignment or RestoreAssignment.
var ErrAssignmentIsNotConstructed = errors.New(
	"Assignment must be created via NewAssignment constructor")

// Assignment records the acceptance of a delivery request by a fulfiller.
//
// Exactly one assignment exists per request at any time: the record is
// created in the same atomic unit as the Open -> Assigned transition, and a
// failed acceptance creates no record at all. completedAt is set once, when
// the request reaches Delivered. Assignments are never deleted.
type Assignment struct {
	id                kernel.UUID
	deliveryRequestID kernel.UUID
	deliveryPersonID  kernel.UUID

	acceptedAt  time.Time
	completedAt *time.Time

	isConstructed bool
}

// NewAssignment creates an assignment at acceptance time.
// acceptedAt is set to the current time; completedAt starts unset.
func NewAssignment(id, deliveryRequestID, deliveryPersonID kernel.UUID) (*Assignment, error) {
	if err := errors.Join(
		id.Validate(),
		deliveryRequestID.Validate(),
		deliveryPersonID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Assignment{
		id:                id,
		deliveryRequestID: deliveryRequestID,
		deliveryPersonID:  deliveryPersonID,
		acceptedAt:        time.Now().UTC(),
		isConstructed:     true,
	}, nil
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(
	id, deliveryRequestID, deliveryPersonID kernel.UUID,
	acceptedAt time.Time,
	completedAt *time.Time,
) (*Assignment, error) {
	if err := errors.Join(
		id.Validate(),
		deliveryRequestID.Validate(),
		deliveryPersonID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Assignment{
		id:                id,
		deliveryRequestID: deliveryRequestID,
		deliveryPersonID:  deliveryPersonID,
		acceptedAt:        acceptedAt,
		completedAt:       completedAt,
		isConstructed:     true,
	}, nil
}

// Validate ensures the instance was created through a constructor.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}

	return nil
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// DeliveryRequestID returns the identifier of the bound request.
func (a *Assignment) DeliveryRequestID() kernel.UUID {
	return a.deliveryRequestID
}

// DeliveryPersonID returns the identifier of the fulfiller.
func (a *Assignment) DeliveryPersonID() kernel.UUID {
	return a.deliveryPersonID
}

// AcceptedAt returns when the request was accepted.
func (a *Assignment) AcceptedAt() time.Time {
	return a.acceptedAt
}

// CompletedAt returns when the delivery completed, or nil while in flight.
func (a *Assignment) CompletedAt() *time.Time {
	return a.completedAt
}

// IsFulfilledBy reports whether userID is the fulfiller on this assignment.
func (a *Assignment) IsFulfilledBy(userID kernel.UUID) bool {
	return a.deliveryPersonID.IsEqual(userID)
}

// Complete stamps the completion time. A completed assignment cannot be
// completed again; settlement relies on this running exactly once.
func (a *Assignment) Complete(at time.Time) error {
	if a.completedAt != nil {
		return errs.NewInvalidStateError("assignment", "Completed", "Completed")
	}

	at = at.UTC()
	a.completedAt = &at
	return nil
}
