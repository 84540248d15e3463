// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/pkg/guard"
)

var ErrGetOpenRequestsQueryIsNotConstructed = errors.New(
	"GetOpenRequestsQuery must be created via NewGetOpenRequestsQuery constructor",
)

// SortField names a column the open-request listing can be ordered by.
// Anything outside this set falls back to sorting by creation time, so query
// input can never reach the ORDER BY clause verbatim.
type SortField string

const (
	SortByCreatedAt    SortField = "created_at"
	SortByRewardAmount SortField = "reward_amount"
	SortByExpectedTime SortField = "expected_time"
)

// SortOrder is the direction of the listing sort.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// OpenRequestsFilter narrows the open-request listing. String fields match as
// case-insensitive substrings; zero values mean "no constraint".
type OpenRequestsFilter struct {
	Location     string
	ParcelType   string
	ParcelWeight string
	ExpectedTime string
	MinReward    int
	SortBy       SortField
	SortOrder    SortOrder
}

// GetOpenRequestsQuery retrieves the feed of requests a fulfiller can accept:
// every Open request except the viewer's own, filtered and sorted per the
// viewer's choices.
//
// Example:
//
//	query, err := NewGetOpenRequestsQuery(viewerID, OpenRequestsFilter{
//	    ParcelType: "books",
//	    MinReward:  20,
//	    SortBy:     SortByRewardAmount,
//	    SortOrder:  SortDesc,
//	})
//	if err != nil {
//	    return err
//	}
//
//	feed, err := handler.Handle(ctx, query)
type GetOpenRequestsQuery struct {
	viewerID kernel.UUID
	filter   OpenRequestsFilter

	guard guard.ConstructorGuard
}

// NewGetOpenRequestsQuery creates a query for the open-request feed.
// Unknown sort fields and orders are normalized to newest-first.
func NewGetOpenRequestsQuery(viewerID kernel.UUID, filter OpenRequestsFilter) (GetOpenRequestsQuery, error) {
	if err := viewerID.Validate(); err != nil {
		return GetOpenRequestsQuery{}, err
	}

	switch filter.SortBy {
	case SortByCreatedAt, SortByRewardAmount, SortByExpectedTime:
	default:
		filter.SortBy = SortByCreatedAt
	}

	switch filter.SortOrder {
	case SortAsc, SortDesc:
	default:
		filter.SortOrder = SortDesc
	}

	return GetOpenRequestsQuery{
		viewerID: viewerID,
		filter:   filter,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOpenRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenRequestsQueryIsNotConstructed)
}

// ViewerID returns the browsing user, whose own requests are excluded.
func (q GetOpenRequestsQuery) ViewerID() kernel.UUID {
	return q.viewerID
}

// Filter returns the normalized listing filter.
func (q GetOpenRequestsQuery) Filter() OpenRequestsFilter {
	return q.filter
}

// GetOpenRequestsQueryResponse is one row of the open-request feed, with the
// requester's display fields joined on for presentation.
type GetOpenRequestsQueryResponse struct {
	ID               kernel.UUID
	RequesterID      kernel.UUID
	RequesterName    string
	RequesterContact string
	PickupLocation   string
	DropLocation     string
	RewardAmount     int
	ParcelWeight     string
	ParcelType       string
	ExpectedTime     string
	CreatedAt        time.Time
}
