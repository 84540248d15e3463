package queries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/request"
	"carrycampus/internal/core/ports"
	"carrycampus/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenRequestsQueryHandler serves the open-request feed from the database
// and joins requester display fields from the user directory.
type GetOpenRequestsQueryHandler struct {
	db        *gorm.DB
	directory ports.UserDirectory
}

// NewGetOpenRequestsQueryHandler creates a handler for the open-request feed.
func NewGetOpenRequestsQueryHandler(db *gorm.DB, directory ports.UserDirectory) GetOpenRequestsQueryHandler {
	return GetOpenRequestsQueryHandler{db: db, directory: directory}
}

// Handle executes the query and returns the filtered, sorted feed.
// The sort column comes from the whitelisted SortField set, never from raw
// query input.
func (h GetOpenRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetOpenRequestsQuery,
) ([]GetOpenRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := query.Filter()

	var sql strings.Builder
	sql.WriteString(`
		SELECT
			id,
			requester_id,
			pickup_location,
			drop_location,
			reward_amount,
			parcel_weight,
			parcel_type,
			expected_time,
			created_at
		FROM delivery_requests
		WHERE status = ?
		AND requester_id != ?
	`)
	args := []any{int(request.Open), query.ViewerID().Bytes()}

	appendSubstringFilter(&sql, &args, "pickup_location || ' ' || drop_location", filter.Location)
	appendSubstringFilter(&sql, &args, "parcel_type", filter.ParcelType)
	appendSubstringFilter(&sql, &args, "parcel_weight", filter.ParcelWeight)
	appendSubstringFilter(&sql, &args, "expected_time", filter.ExpectedTime)

	if filter.MinReward > 0 {
		sql.WriteString(" AND reward_amount >= ?")
		args = append(args, filter.MinReward)
	}

	fmt.Fprintf(&sql, " ORDER BY %s %s", filter.SortBy, filter.SortOrder)

	rows, err := h.db.WithContext(ctx).Raw(sql.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetOpenRequestsQueryResponse, 0)
	lookups := make(map[kernel.UUID]ports.UserInfo)

	for rows.Next() {
		var resp GetOpenRequestsQueryResponse
		var id, requesterID uuid.UUID

		err = rows.Scan(
			&id,
			&requesterID,
			&resp.PickupLocation,
			&resp.DropLocation,
			&resp.RewardAmount,
			&resp.ParcelWeight,
			&resp.ParcelType,
			&resp.ExpectedTime,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.RequesterID, err = kernel.UUIDFromBytes(requesterID[:]); err != nil {
			return nil, err
		}

		info, lookupErr := h.lookupUser(ctx, lookups, resp.RequesterID)
		if lookupErr != nil {
			return nil, lookupErr
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

// lookupUser resolves display fields once per user per query. An unknown user
// yields blank fields rather than failing the whole feed.
func (h GetOpenRequestsQueryHandler) lookupUser(
	ctx context.Context,
	cache map[kernel.UUID]ports.UserInfo,
	userID kernel.UUID,
) (ports.UserInfo, error) {
	if info, ok := cache[userID]; ok {
		return info, nil
	}

	info, err := h.directory.Lookup(ctx, userID)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return ports.UserInfo{}, err
	}

	cache[userID] = info
	return info, nil
}

// appendSubstringFilter adds a case-insensitive substring condition on expr
// when value is non-empty.
func appendSubstringFilter(sql *strings.Builder, args *[]any, expr, value string) {
	if value == "" {
		return
	}

	fmt.Fprintf(sql, " AND %s ILIKE '%%' || ? || '%%'", expr)
	*args = append(*args, value)
}
