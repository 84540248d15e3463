// Package ledger contains the bookkeeping side of the marketplace: the
// append-only Transaction records and the derived per-user Wallet aggregate.
package ledger

import (
	"errors"
	"time"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/pkg/errs"
)

// ErrTransactionIsNotConstructed is returned when a Transaction instance was
// not created through one of the constructors.
var ErrTransactionIsNotConstructed = errors.New(
	"Transaction must be created via NewPendingTransaction, NewCompletedTransaction or RestoreTransaction")

// TransactionStatus represents the settlement state of a ledger entry.
type TransactionStatus int

const (
	// TransactionUnknown represents an invalid or undefined status.
	TransactionUnknown TransactionStatus = iota

	// TransactionPending is an unsettled entry: the debt is recorded but
	// the wallet has not been credited yet. Settled via the manual
	// mark-paid path.
	TransactionPending

	// TransactionCompleted is a settled entry whose amount has been
	// credited to the payee's wallet exactly once.
	TransactionCompleted
)

func getTransactionStatusStrings() map[TransactionStatus]string {
	return map[TransactionStatus]string{
		TransactionUnknown:   "Unknown",
		TransactionPending:   "Pending",
		TransactionCompleted: "Completed",
	}
}

// Validate checks that the status is Pending or Completed.
func (s TransactionStatus) Validate() error {
	if s != TransactionPending && s != TransactionCompleted {
		return errs.NewValidationError("transaction status")
	}
	return nil
}

// String returns the human-readable name of the status.
func (s TransactionStatus) String() string {
	if str, ok := getTransactionStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Transaction is an append-only ledger entry recording a reward payment for
// one completed delivery request.
//
// Invariants:
//   - at most one transaction exists per delivery request
//   - amount is copied from the request's reward at settlement time and is
//     immutable thereafter
//   - payer and payee are distinct users
//   - the only status mutation is Pending -> Completed, exactly once
type Transaction struct {
	id                kernel.UUID
	deliveryRequestID kernel.UUID
	paidBy            kernel.UUID
	paidTo            kernel.UUID
	amount            int
	status            TransactionStatus
	createdAt         time.Time

	isConstructed bool
}

// NewCompletedTransaction creates a settled ledger entry. This is the
// automatic settlement path: the Delivered transition records the entry
// already completed, together with the wallet credit, in one unit of work.
func NewCompletedTransaction(
	id, deliveryRequestID, paidBy, paidTo kernel.UUID,
	amount int,
) (*Transaction, error) {
	return newTransaction(id, deliveryRequestID, paidBy, paidTo, amount, TransactionCompleted)
}

// NewPendingTransaction creates an unsettled ledger entry recording a debt
// the payee later settles through the mark-paid path.
func NewPendingTransaction(
	id, deliveryRequestID, paidBy, paidTo kernel.UUID,
	amount int,
) (*Transaction, error) {
	return newTransaction(id, deliveryRequestID, paidBy, paidTo, amount, TransactionPending)
}

func newTransaction(
	id, deliveryRequestID, paidBy, paidTo kernel.UUID,
	amount int,
	status TransactionStatus,
) (*Transaction, error) {
	if err := errors.Join(
		id.Validate(),
		deliveryRequestID.Validate(),
		paidBy.Validate(),
		paidTo.Validate(),
	); err != nil {
		return nil, err
	}
	if paidBy.IsEqual(paidTo) {
		return nil, errs.NewValidationError("paid_to must differ from paid_by")
	}
	if amount <= 0 {
		return nil, errs.NewValidationError("amount")
	}

	return &Transaction{
		id:                id,
		deliveryRequestID: deliveryRequestID,
		paidBy:            paidBy,
		paidTo:            paidTo,
		amount:            amount,
		status:            status,
		createdAt:         time.Now().UTC(),
		isConstructed:     true,
	}, nil
}

// RestoreTransaction reconstructs a ledger entry from persistence.
func RestoreTransaction(
	id, deliveryRequestID, paidBy, paidTo kernel.UUID,
	amount int,
	status TransactionStatus,
	createdAt time.Time,
) (*Transaction, error) {
	if err := errors.Join(
		id.Validate(),
		deliveryRequestID.Validate(),
		paidBy.Validate(),
		paidTo.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, errs.NewValidationError("amount")
	}

	return &Transaction{
		id:                id,
		deliveryRequestID: deliveryRequestID,
		paidBy:            paidBy,
		paidTo:            paidTo,
		amount:            amount,
		status:            status,
		createdAt:         createdAt,
		isConstructed:     true,
	}, nil
}

// Validate ensures the instance was created through a constructor.
func (t *Transaction) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransactionIsNotConstructed
	}

	return nil
}

// ID returns the transaction's unique identifier.
func (t *Transaction) ID() kernel.UUID {
	return t.id
}

// DeliveryRequestID returns the request this entry settles.
func (t *Transaction) DeliveryRequestID() kernel.UUID {
	return t.deliveryRequestID
}

// PaidBy returns the payer (the requester).
func (t *Transaction) PaidBy() kernel.UUID {
	return t.paidBy
}

// PaidTo returns the payee (the fulfiller).
func (t *Transaction) PaidTo() kernel.UUID {
	return t.paidTo
}

// Amount returns the settled amount in whole currency units.
func (t *Transaction) Amount() int {
	return t.amount
}

// Status returns the settlement status.
func (t *Transaction) Status() TransactionStatus {
	return t.status
}

// CreatedAt returns the creation timestamp.
func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}

// IsPayee reports whether userID is the payee of this entry.
func (t *Transaction) IsPayee(userID kernel.UUID) bool {
	return t.paidTo.IsEqual(userID)
}

// MarkCompleted settles a pending entry. An already-completed entry returns
// an InvalidStateError, which is what keeps the manual path from crediting a
// wallet twice.
func (t *Transaction) MarkCompleted() error {
	if t.status != TransactionPending {
		return errs.NewInvalidStateError("transaction",
			t.status.String(), TransactionCompleted.String())
	}

	t.status = TransactionCompleted
	return nil
}
