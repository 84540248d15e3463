package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

// GetWalletQueryHandler serves wallet reads from the database.
type GetWalletQueryHandler struct {
	db *gorm.DB
}

// NewGetWalletQueryHandler creates a handler for wallet reads.
func NewGetWalletQueryHandler(db *gorm.DB) GetWalletQueryHandler {
	return GetWalletQueryHandler{db: db}
}

// Handle executes the query. A missing wallet row is not an error: it means
// the user has never earned, and reads as zero balance and zero earnings.
func (h GetWalletQueryHandler) Handle(
	ctx context.Context,
	query GetWalletQuery,
) (GetWalletQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWalletQueryResponse{}, err
	}

	resp := GetWalletQueryResponse{UserID: query.UserID()}

	row := h.db.WithContext(ctx).Raw(`
		SELECT balance, total_earnings, last_updated
		FROM wallets
		WHERE user_id = ?
	`, query.UserID().Bytes()).Row()

	var lastUpdated time.Time
	err := row.Scan(&resp.Balance, &resp.TotalEarnings, &lastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return resp, nil
	}
	if err != nil {
		return GetWalletQueryResponse{}, err
	}

	resp.LastUpdated = &lastUpdated
	return resp, nil
}
