package queries

import (
	"context"

	"carrycampus/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// GetPendingTransactionsQueryHandler serves the payee's unsettled ledger
// entries, the ones the mark-paid operation can still act on.
type GetPendingTransactionsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingTransactionsQueryHandler creates a handler for pending-transaction reads.
func NewGetPendingTransactionsQueryHandler(db *gorm.DB) GetPendingTransactionsQueryHandler {
	return GetPendingTransactionsQueryHandler{db: db}
}

// Handle executes the query and returns the payee's pending entries, oldest
// first so long-outstanding debts surface at the top.
func (h GetPendingTransactionsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingTransactionsQuery,
) ([]GetTransactionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

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
		WHERE paid_to = ? AND status = ?
		ORDER BY created_at ASC
	`, query.PayeeID().Bytes(), int(ledger.TransactionPending)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactionRows(rows)
}
