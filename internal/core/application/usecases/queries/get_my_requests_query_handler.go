package queries

import (
	"context"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/request"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMyRequestsQueryHandler serves the user's posted requests from the database.
type GetMyRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetMyRequestsQueryHandler creates a handler for the user's own requests.
func NewGetMyRequestsQueryHandler(db *gorm.DB) GetMyRequestsQueryHandler {
	return GetMyRequestsQueryHandler{db: db}
}

// Handle executes the query and returns the user's requests, newest first.
func (h GetMyRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetMyRequestsQuery,
) ([]GetMyRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			pickup_location,
			drop_location,
			reward_amount,
			parcel_weight,
			parcel_type,
			expected_time,
			status,
			created_at
		FROM delivery_requests
		WHERE requester_id = ?
		ORDER BY created_at DESC
	`, query.RequesterID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetMyRequestsQueryResponse, 0)

	for rows.Next() {
		var resp GetMyRequestsQueryResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&resp.PickupLocation,
			&resp.DropLocation,
			&resp.RewardAmount,
			&resp.ParcelWeight,
			&resp.ParcelType,
			&resp.ExpectedTime,
			&status,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		resp.Status = request.Status(status).String()

		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
