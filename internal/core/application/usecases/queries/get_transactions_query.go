package queries

import (
	"errors"
	"time"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/pkg/guard"
)

var ErrGetTransactionsQueryIsNotConstructed = errors.New(
	"GetTransactionsQuery must be created via NewGetTransactionsQuery constructor",
)

// GetTransactionsQuery retrieves the user's ledger history: every transaction
// where the user is payer or payee, newest first.
type GetTransactionsQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTransactionsQuery creates a query for the user's transaction history.
func NewGetTransactionsQuery(userID kernel.UUID) (GetTransactionsQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetTransactionsQuery{}, err
	}

	return GetTransactionsQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTransactionsQuery) Validate() error {
	return q.guard.Validate(ErrGetTransactionsQueryIsNotConstructed)
}

// UserID returns the user whose history is listed.
func (q GetTransactionsQuery) UserID() kernel.UUID {
	return q.userID
}

// GetTransactionsQueryResponse is one ledger entry in the user's history.
type GetTransactionsQueryResponse struct {
	ID                kernel.UUID
	DeliveryRequestID kernel.UUID
	PaidBy            kernel.UUID
	PaidTo            kernel.UUID
	Amount            int
	Status            string
	CreatedAt         time.Time
}
