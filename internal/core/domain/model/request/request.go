// Package request contains the DeliveryRequest aggregate, the root entity of
// the parcel marketplace lifecycle.
package request

import (
	"errors"
	"time"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/pkg/errs"
)

// ErrRequestIsNotConstructed is returned when a DeliveryRequest instance was
// not created through NewDeliveryRequest or RestoreDeliveryRequest.
var ErrRequestIsNotConstructed = errors.New(
	"DeliveryRequest must be created via NewDeliveryRequest constructor")

const (
	// DefaultPickupLocation is used when the requester does not name one.
	DefaultPickupLocation = "Main Gate"

	// MinRewardAmount and MaxRewardAmount bound the cash reward, in whole
	// currency units. Values outside the range fail validation.
	MinRewardAmount = 10
	MaxRewardAmount = 100

	// DefaultRewardAmount is applied when the requester leaves the reward
	// unset (zero).
	DefaultRewardAmount = MinRewardAmount
)

// DeliveryRequest is the aggregate root for a posted delivery task. It owns
// the lifecycle status and the data a fulfiller needs to carry the parcel.
//
// Invariants:
//   - id and requesterID are immutable after construction
//   - dropLocation is never empty
//   - rewardAmount stays within [MinRewardAmount, MaxRewardAmount]
//   - status only changes through the transition methods, which delegate
//     to the Status state machine
//   - createdAt is set once and never mutated
//
// Requests are never physically deleted; cancellation is a status transition.
type DeliveryRequest struct {
	id          kernel.UUID
	requesterID kernel.UUID

	pickupLocation string
	dropLocation   string
	rewardAmount   int

	// descriptive attributes, free text, not validated beyond presence
	parcelWeight string
	parcelType   string
	expectedTime string

	status    Status
	createdAt time.Time

	isConstructed bool
}

// NewDeliveryRequest creates a request in Open status.
//
// Defaults follow the marketplace rules: an absent pickup location becomes
// DefaultPickupLocation and a zero reward becomes DefaultRewardAmount. A
// missing drop location or a reward outside [MinRewardAmount, MaxRewardAmount]
// fails with a validation error.
func NewDeliveryRequest(
	id kernel.UUID,
	requesterID kernel.UUID,
	pickupLocation string,
	dropLocation string,
	rewardAmount int,
	parcelWeight string,
	parcelType string,
	expectedTime string,
) (*DeliveryRequest, error) {
	if pickupLocation == "" {
		pickupLocation = DefaultPickupLocation
	}
	if rewardAmount == 0 {
		rewardAmount = DefaultRewardAmount
	}

	r := &DeliveryRequest{
		parcelWeight:  parcelWeight,
		parcelType:    parcelType,
		expectedTime:  expectedTime,
		status:        Open,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setRequesterID(requesterID),
		r.setPickupLocation(pickupLocation),
		r.setDropLocation(dropLocation),
		r.setRewardAmount(rewardAmount),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreDeliveryRequest reconstructs a request from persistence without
// re-applying creation defaults. The stored status and creation time are
// taken as-is after validation.
func RestoreDeliveryRequest(
	id kernel.UUID,
	requesterID kernel.UUID,
	pickupLocation string,
	dropLocation string,
	rewardAmount int,
	parcelWeight string,
	parcelType string,
	expectedTime string,
	status Status,
	createdAt time.Time,
) (*DeliveryRequest, error) {
	if err := errors.Join(
		id.Validate(),
		requesterID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if dropLocation == "" {
		return nil, errs.NewValidationError("drop_location")
	}
	if rewardAmount < MinRewardAmount || rewardAmount > MaxRewardAmount {
		return nil, errs.NewValueIsOutOfRangeError(
			"reward_amount", rewardAmount, MinRewardAmount, MaxRewardAmount)
	}

	return &DeliveryRequest{
		id:             id,
		requesterID:    requesterID,
		pickupLocation: pickupLocation,
		dropLocation:   dropLocation,
		rewardAmount:   rewardAmount,
		parcelWeight:   parcelWeight,
		parcelType:     parcelType,
		expectedTime:   expectedTime,
		status:         status,
		createdAt:      createdAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the instance was created through a constructor.
// Call when reconstructing requests from external input.
func (r *DeliveryRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}

	return nil
}

// IsEqual compares two requests by identifier.
func (r *DeliveryRequest) IsEqual(other *DeliveryRequest) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the request's unique identifier.
func (r *DeliveryRequest) ID() kernel.UUID {
	return r.id
}

// RequesterID returns the identifier of the user who posted the request.
func (r *DeliveryRequest) RequesterID() kernel.UUID {
	return r.requesterID
}

// PickupLocation returns where the parcel is collected.
func (r *DeliveryRequest) PickupLocation() string {
	return r.pickupLocation
}

// DropLocation returns where the parcel must be delivered.
func (r *DeliveryRequest) DropLocation() string {
	return r.dropLocation
}

// RewardAmount returns the cash reward in whole currency units.
func (r *DeliveryRequest) RewardAmount() int {
	return r.rewardAmount
}

// ParcelWeight returns the free-text weight description.
func (r *DeliveryRequest) ParcelWeight() string {
	return r.parcelWeight
}

// ParcelType returns the free-text parcel type description.
func (r *DeliveryRequest) ParcelType() string {
	return r.parcelType
}

// ExpectedTime returns the free-text expected delivery time.
func (r *DeliveryRequest) ExpectedTime() string {
	return r.expectedTime
}

// Status returns the current lifecycle status.
func (r *DeliveryRequest) Status() Status {
	return r.status
}

// CreatedAt returns the creation timestamp.
func (r *DeliveryRequest) CreatedAt() time.Time {
	return r.createdAt
}

// IsOwnedBy reports whether userID posted this request.
func (r *DeliveryRequest) IsOwnedBy(userID kernel.UUID) bool {
	return r.requesterID.IsEqual(userID)
}

// Assign moves the request from Open to Assigned. Any other starting state
// returns an InvalidStateError.
//
// Accepting also requires the storage-level conditional write to succeed;
// this method only verifies the transition against the loaded state.
func (r *DeliveryRequest) Assign() error {
	newStatus, err := r.status.Assign()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

// Pick records that the fulfiller collected the parcel (Assigned -> Picked).
func (r *DeliveryRequest) Pick() error {
	newStatus, err := r.status.Pick()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

// Deliver records delivery completion (Assigned or Picked -> Delivered).
// The caller is responsible for settling the reward in the same unit of work.
func (r *DeliveryRequest) Deliver() error {
	newStatus, err := r.status.Deliver()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

// CancelByRequester cancels an Open or Assigned request. Once the parcel is
// Picked, or a terminal state is reached, the requester may no longer cancel.
func (r *DeliveryRequest) CancelByRequester() error {
	if r.status != Open && r.status != Assigned {
		return errs.NewInvalidStateError("request", r.status.String(), Cancelled.String())
	}

	newStatus, err := r.status.Cancel()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

// CancelByFulfiller cancels an in-flight request (Assigned or Picked).
func (r *DeliveryRequest) CancelByFulfiller() error {
	if r.status != Assigned && r.status != Picked {
		return errs.NewInvalidStateError("request", r.status.String(), Cancelled.String())
	}

	newStatus, err := r.status.Cancel()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

func (r *DeliveryRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *DeliveryRequest) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}
	r.requesterID = requesterID
	return nil
}

func (r *DeliveryRequest) setPickupLocation(pickupLocation string) error {
	if pickupLocation == "" {
		return errs.NewValidationError("pickup_location")
	}
	r.pickupLocation = pickupLocation
	return nil
}

func (r *DeliveryRequest) setDropLocation(dropLocation string) error {
	if dropLocation == "" {
		return errs.NewValidationError("drop_location")
	}
	r.dropLocation = dropLocation
	return nil
}

func (r *DeliveryRequest) setRewardAmount(rewardAmount int) error {
	if rewardAmount < MinRewardAmount || rewardAmount > MaxRewardAmount {
		return errs.NewValueIsOutOfRangeError(
			"reward_amount", rewardAmount, MinRewardAmount, MaxRewardAmount)
	}
	r.rewardAmount = rewardAmount
	return nil
}
