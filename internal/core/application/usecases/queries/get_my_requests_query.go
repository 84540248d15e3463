package queries

import (
	"errors"
	"time"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/pkg/guard"
)

var ErrGetMyRequestsQueryIsNotConstructed = errors.New(
	"GetMyRequestsQuery must be created via NewGetMyRequestsQuery constructor",
)

// GetMyRequestsQuery retrieves every request the user has posted, in any
// status, newest first.
type GetMyRequestsQuery struct {
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetMyRequestsQuery creates a query for the user's own requests.
func NewGetMyRequestsQuery(requesterID kernel.UUID) (GetMyRequestsQuery, error) {
	if err := requesterID.Validate(); err != nil {
		return GetMyRequestsQuery{}, err
	}

	return GetMyRequestsQuery{
		requesterID: requesterID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMyRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetMyRequestsQueryIsNotConstructed)
}

// RequesterID returns the owner whose requests are listed.
func (q GetMyRequestsQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// GetMyRequestsQueryResponse is one of the user's posted requests.
type GetMyRequestsQueryResponse struct {
	ID             kernel.UUID
	PickupLocation string
	DropLocation   string
	RewardAmount   int
	ParcelWeight   string
	ParcelType     string
	ExpectedTime   string
	Status         string
	CreatedAt      time.Time
}
