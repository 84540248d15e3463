package ledger

import (
	"errors"
	"time"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/pkg/errs"
)

// ErrWalletIsNotConstructed is returned when a Wallet instance was not
// created through NewWallet or RestoreWallet.
var ErrWalletIsNotConstructed = errors.New(
	"Wallet must be created via NewWallet or RestoreWallet constructor")

// Wallet is the derived per-user aggregate over completed transactions.
//
// balance and totalEarnings only ever grow, and each completed transaction
// contributes to them exactly once. The credit operation is a commutative
// merge (add to two counters), so concurrent credits for different requests
// compose in any order. Persistence expresses the credit as an atomic
// insert-or-accumulate upsert rather than read-modify-write.
type Wallet struct {
	userID        kernel.UUID
	balance       int
	totalEarnings int
	lastUpdated   time.Time

	isConstructed bool
}

// NewWallet creates an empty wallet for a user.
func NewWallet(userID kernel.UUID) (*Wallet, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	return &Wallet{
		userID:        userID,
		lastUpdated:   time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreWallet reconstructs a wallet from persistence.
func RestoreWallet(userID kernel.UUID, balance, totalEarnings int, lastUpdated time.Time) (*Wallet, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	if balance < 0 || totalEarnings < 0 {
		return nil, errs.NewValidationError("wallet totals")
	}

	return &Wallet{
		userID:        userID,
		balance:       balance,
		totalEarnings: totalEarnings,
		lastUpdated:   lastUpdated,
		isConstructed: true,
	}, nil
}

// Validate ensures the instance was created through a constructor.
func (w *Wallet) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWalletIsNotConstructed
	}

	return nil
}

// UserID returns the wallet owner.
func (w *Wallet) UserID() kernel.UUID {
	return w.userID
}

// Balance returns the spendable total in whole currency units.
func (w *Wallet) Balance() int {
	return w.balance
}

// TotalEarnings returns the lifetime earned total.
func (w *Wallet) TotalEarnings() int {
	return w.totalEarnings
}

// LastUpdated returns when the wallet was last credited.
func (w *Wallet) LastUpdated() time.Time {
	return w.lastUpdated
}

// Credit adds amount to both balance and total earnings.
// Amounts must be positive; wallets are never debited through the ledger.
func (w *Wallet) Credit(amount int, at time.Time) error {
	if amount <= 0 {
		return errs.NewValidationError("amount")
	}

	w.balance += amount
	w.totalEarnings += amount
	w.lastUpdated = at.UTC()
	return nil
}
