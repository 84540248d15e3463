package queries

import (
	"errors"
	"time"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/pkg/guard"
)

var ErrGetWalletQueryIsNotConstructed = errors.New(
	"GetWalletQuery must be created via NewGetWalletQuery constructor",
)

// GetWalletQuery retrieves the user's wallet balance and lifetime earnings.
// A user who has never been credited reads as a zero wallet; the read never
// creates a row.
type GetWalletQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWalletQuery creates a query for the user's wallet.
func NewGetWalletQuery(userID kernel.UUID) (GetWalletQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetWalletQuery{}, err
	}

	return GetWalletQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWalletQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletQueryIsNotConstructed)
}

// UserID returns the wallet owner.
func (q GetWalletQuery) UserID() kernel.UUID {
	return q.userID
}

// GetWalletQueryResponse is the user's wallet read model. LastUpdated is nil
// for a wallet that has never been credited.
type GetWalletQueryResponse struct {
	UserID        kernel.UUID
	Balance       int
	TotalEarnings int
	LastUpdated   *time.Time
}
