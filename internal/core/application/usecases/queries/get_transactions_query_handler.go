package queries

import (
	"context"
	"database/sql"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTransactionsQueryHandler serves the user's ledger history.
type GetTransactionsQueryHandler struct {
	db *gorm.DB
}

// NewGetTransactionsQueryHandler creates a handler for transaction history reads.
func NewGetTransactionsQueryHandler(db *gorm.DB) GetTransactionsQueryHandler {
	return GetTransactionsQueryHandler{db: db}
}

// Handle executes the query and returns both sides of the user's ledger,
// payments made and payments received, newest first.
func (h GetTransactionsQueryHandler) Handle(
	ctx context.Context,
	query GetTransactionsQuery,
) ([]GetTransactionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	userID := query.UserID().Bytes()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			delivery_request_id,
			paid_by,
			paid_to,
			amount,
			status,
			created_at
		FROM transactions
		WHERE paid_by = ? OR paid_to = ?
		ORDER BY created_at DESC
	`, userID, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactionRows(rows)
}

// scanTransactionRows maps transaction rows to the read model. Shared by the
// full-history and pending-only queries, which select identical columns.
func scanTransactionRows(rows *sql.Rows) ([]GetTransactionsQueryResponse, error) {
	responses := make([]GetTransactionsQueryResponse, 0)

	for rows.Next() {
		var resp GetTransactionsQueryResponse
		var id, deliveryRequestID, paidBy, paidTo uuid.UUID
		var status int

		err := rows.Scan(
			&id,
			&deliveryRequestID,
			&paidBy,
			&paidTo,
			&resp.Amount,
			&status,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.DeliveryRequestID, err = kernel.UUIDFromBytes(deliveryRequestID[:]); err != nil {
			return nil, err
		}
		if resp.PaidBy, err = kernel.UUIDFromBytes(paidBy[:]); err != nil {
			return nil, err
		}
		if resp.PaidTo, err = kernel.UUIDFromBytes(paidTo[:]); err != nil {
			return nil, err
		}
		resp.Status = ledger.TransactionStatus(status).String()

		responses = append(responses, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
