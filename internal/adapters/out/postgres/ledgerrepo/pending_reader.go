package ledgerrepo

import (
	"context"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/ledger"
	"carrycampus/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPendingSettlementReader lists unconfirmed ledger entries grouped by
// payee. Backed by the same transactions table as the repository but read
// outside any unit of work; the reminder job tolerates slightly stale data.
type GormPendingSettlementReader struct {
	db *gorm.DB
}

// NewGormPendingSettlementReader creates a reader over the transactions table.
func NewGormPendingSettlementReader(db *gorm.DB) GormPendingSettlementReader {
	return GormPendingSettlementReader{db: db}
}

// ListPendingSettlements returns one summary row per payee with pending
// entries, oldest debt first.
func (r GormPendingSettlementReader) ListPendingSettlements(
	ctx context.Context,
) ([]ports.PendingSettlement, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			paid_to,
			COUNT(*),
			SUM(amount),
			MIN(created_at)
		FROM transactions
		WHERE status = ?
		GROUP BY paid_to
		ORDER BY MIN(created_at) ASC`,
		int(ledger.TransactionPending),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]ports.PendingSettlement, 0)

	for rows.Next() {
		var summary ports.PendingSettlement
		var payeeID uuid.UUID

		err = rows.Scan(&payeeID, &summary.Count, &summary.TotalAmount, &summary.OldestAt)
		if err != nil {
			return nil, err
		}

		summary.PayeeID, err = kernel.UUIDFromBytes(payeeID[:])
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
