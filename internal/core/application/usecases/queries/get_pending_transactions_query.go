package queries

import (
	"errors"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/pkg/guard"
)

var ErrGetPendingTransactionsQueryIsNotConstructed = errors.New(
	"GetPendingTransactionsQuery must be created via NewGetPendingTransactionsQuery constructor",
)

// GetPendingTransactionsQuery retrieves the unsettled transactions awaiting
// the user's confirmation: pending entries where the user is the payee.
type GetPendingTransactionsQuery struct {
	payeeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPendingTransactionsQuery creates a query for the payee's unsettled entries.
func NewGetPendingTransactionsQuery(payeeID kernel.UUID) (GetPendingTransactionsQuery, error) {
	if err := payeeID.Validate(); err != nil {
		return GetPendingTransactionsQuery{}, err
	}

	return GetPendingTransactionsQuery{
		payeeID: payeeID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingTransactionsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingTransactionsQueryIsNotConstructed)
}

// PayeeID returns the user awaiting payment.
func (q GetPendingTransactionsQuery) PayeeID() kernel.UUID {
	return q.payeeID
}
