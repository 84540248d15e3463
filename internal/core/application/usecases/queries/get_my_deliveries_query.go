package queries

import (
	"errors"
	"time"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/pkg/guard"
)

var ErrGetMyDeliveriesQueryIsNotConstructed = errors.New(
	"GetMyDeliveriesQuery must be created via NewGetMyDeliveriesQuery constructor",
)

// GetMyDeliveriesQuery retrieves every delivery the user has taken on:
// their assignments joined with the underlying requests, newest first.
type GetMyDeliveriesQuery struct {
	deliveryPersonID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetMyDeliveriesQuery creates a query for the user's accepted deliveries.
func NewGetMyDeliveriesQuery(deliveryPersonID kernel.UUID) (GetMyDeliveriesQuery, error) {
	if err := deliveryPersonID.Validate(); err != nil {
		return GetMyDeliveriesQuery{}, err
	}

	return GetMyDeliveriesQuery{
		deliveryPersonID: deliveryPersonID,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMyDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetMyDeliveriesQueryIsNotConstructed)
}

// DeliveryPersonID returns the fulfiller whose deliveries are listed.
func (q GetMyDeliveriesQuery) DeliveryPersonID() kernel.UUID {
	return q.deliveryPersonID
}

// GetMyDeliveriesQueryResponse is one delivery the user has accepted,
// combining assignment and request fields with the requester's display info.
type GetMyDeliveriesQueryResponse struct {
	RequestID        kernel.UUID
	RequesterID      kernel.UUID
	RequesterName    string
	RequesterContact string
	PickupLocation   string
	DropLocation     string
	RewardAmount     int
	ParcelWeight     string
	ParcelType       string
	ExpectedTime     string
	Status           string
	AcceptedAt       time.Time
	CompletedAt      *time.Time
}
