package ports

import (
	"context"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/ledger"
)

// TransactionRepository defines the persistence contract for ledger entries.
type TransactionRepository interface {
	// Add persists a new transaction. Inserting a second transaction for the
	// same delivery request returns ConflictError (one settlement per request).
	Add(ctx context.Context, aggregate *ledger.Transaction) error

	// Get retrieves a transaction by its unique identifier.
	// Returns NotFoundError when no such transaction exists.
	Get(ctx context.Context, id kernel.UUID) (*ledger.Transaction, error)

	// CompareAndSwapStatus transitions the transaction's status to next only
	// if the persisted status still matches expected at write time; zero
	// affected rows yields ConflictError. Same contract as the request CAS:
	// this is what keeps two racing mark-paid calls from crediting twice.
	CompareAndSwapStatus(
		ctx context.Context,
		id kernel.UUID,
		next ledger.TransactionStatus,
		expected ledger.TransactionStatus,
	) error
}

// WalletRepository defines the persistence contract for the wallet aggregate.
type WalletRepository interface {
	// Credit adds amount to both balance and total earnings of the user's
	// wallet, creating the wallet when none exists. The adapter expresses
	// this as one atomic insert-or-accumulate upsert, never as
	// read-modify-write, so concurrent credits for different requests
	// targeting the same user compose additively.
	Credit(ctx context.Context, userID kernel.UUID, amount int) error

	// Get retrieves a user's wallet. Returns NotFoundError when the user has
	// never been credited; reading never creates a row.
	Get(ctx context.Context, userID kernel.UUID) (*ledger.Wallet, error)
}
