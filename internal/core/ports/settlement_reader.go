package ports

import (
	"context"
	"time"

	"carrycampus/internal/core/domain/model/kernel"
)

// PendingSettlement summarizes one payee's unconfirmed ledger entries.
type PendingSettlement struct {
	PayeeID     kernel.UUID
	Count       int
	TotalAmount int
	OldestAt    time.Time
}

// PendingSettlementReader lists, per payee, the ledger entries still waiting
// for confirmation. Consumed by the reminder job; a payee with no pending
// entries is simply absent from the result.
type PendingSettlementReader interface {
	ListPendingSettlements(ctx context.Context) ([]PendingSettlement, error)
}
