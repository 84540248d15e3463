package inmem

import (
	"context"
	"errors"

	"carrycampus/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback when the unit of
// work has no open transaction.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates in-memory units of work over a shared store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory whose units of work share the store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a new UnitOfWork over the shared store.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork implements the transactional contract in memory. Begin takes
// the store lock, staging every write as a closure; Commit applies the
// staged writes and releases the lock; Rollback discards them. Holding the
// lock across the whole unit serializes concurrent units, which is exactly
// the property the conditional status write relies on.
type UnitOfWork struct {
	store  *Store
	active bool
	staged []func(*Store)
}

// Begin opens the transaction, blocking until the store lock is available.
// Calling Begin again on an open unit of work is a no-op.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}

	uow.store.mu.Lock()
	uow.active = true
	uow.staged = nil
	return nil
}

// Commit applies all staged writes and releases the store lock.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	for _, apply := range uow.staged {
		apply(uow.store)
	}

	uow.staged = nil
	uow.active = false
	uow.store.mu.Unlock()
	return nil
}

// Rollback discards all staged writes and releases the store lock.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.staged = nil
	uow.active = false
	uow.store.mu.Unlock()
	return nil
}

// stage records a write to apply at commit.
func (uow *UnitOfWork) stage(apply func(*Store)) {
	uow.staged = append(uow.staged, apply)
}

// RequestRepository provides delivery request persistence within the unit of work.
func (uow *UnitOfWork) RequestRepository() ports.RequestRepository {
	return &requestRepository{uow: uow}
}

// AssignmentRepository provides assignment persistence within the unit of work.
func (uow *UnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return &assignmentRepository{uow: uow}
}

// TransactionRepository provides ledger entry persistence within the unit of work.
func (uow *UnitOfWork) TransactionRepository() ports.TransactionRepository {
	return &transactionRepository{uow: uow}
}

// WalletRepository provides wallet persistence within the unit of work.
func (uow *UnitOfWork) WalletRepository() ports.WalletRepository {
	return &walletRepository{uow: uow}
}
