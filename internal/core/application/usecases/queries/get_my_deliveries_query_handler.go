package queries

import (
	"context"
	"errors"
	"time"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/request"
	"carrycampus/internal/core/ports"
	"carrycampus/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMyDeliveriesQueryHandler serves the fulfiller's accepted deliveries.
type GetMyDeliveriesQueryHandler struct {
	db        *gorm.DB
	directory ports.UserDirectory
}

// NewGetMyDeliveriesQueryHandler creates a handler for the fulfiller's deliveries.
func NewGetMyDeliveriesQueryHandler(db *gorm.DB, directory ports.UserDirectory) GetMyDeliveriesQueryHandler {
	return GetMyDeliveriesQueryHandler{db: db, directory: directory}
}

// Handle executes the query and returns the fulfiller's deliveries, most
// recently accepted first.
func (h GetMyDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetMyDeliveriesQuery,
) ([]GetMyDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			r.requester_id,
			r.pickup_location,
			r.drop_location,
			r.reward_amount,
			r.parcel_weight,
			r.parcel_type,
			r.expected_time,
			r.status,
			a.accepted_at,
			a.completed_at
		FROM assignments a
		JOIN delivery_requests r ON r.id = a.delivery_request_id
		WHERE a.delivery_person_id = ?
		ORDER BY a.accepted_at DESC
	`, query.DeliveryPersonID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetMyDeliveriesQueryResponse, 0)
	lookups := make(map[kernel.UUID]ports.UserInfo)

	for rows.Next() {
		var resp GetMyDeliveriesQueryResponse
		var id, requesterID uuid.UUID
		var status int
		var completedAt *time.Time

		err = rows.Scan(
			&id,
			&requesterID,
			&resp.PickupLocation,
			&resp.DropLocation,
			&resp.RewardAmount,
			&resp.ParcelWeight,
			&resp.ParcelType,
			&resp.ExpectedTime,
			&status,
			&resp.AcceptedAt,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.RequestID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.RequesterID, err = kernel.UUIDFromBytes(requesterID[:]); err != nil {
			return nil, err
		}
		resp.Status = request.Status(status).String()
		resp.CompletedAt = completedAt

		info, ok := lookups[resp.RequesterID]
		if !ok {
			var lookupErr error
			info, lookupErr = h.directory.Lookup(ctx, resp.RequesterID)
			if lookupErr != nil && !errors.Is(lookupErr, errs.ErrNotFound) {
				return nil, lookupErr
			}
			lookups[resp.RequesterID] = info
		}
		resp.RequesterName = info.Name
		resp.RequesterContact = info.Contact

		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
