package inmem

import (
	"context"
	"time"

	"carrycampus/internal/core/domain/model/assignment"
	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/ledger"
	"carrycampus/internal/core/domain/model/request"
	"carrycampus/internal/pkg/errs"
)

type requestRepository struct {
	uow *UnitOfWork
}

func (r *requestRepository) Add(_ context.Context, aggregate *request.DeliveryRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if _, exists := r.uow.store.requests[aggregate.ID()]; exists {
		return errs.NewConflictError("delivery request already exists")
	}

	rec := requestRecordFrom(aggregate)
	r.uow.stage(func(s *Store) {
		s.requests[rec.id] = rec
	})
	return nil
}

func (r *requestRepository) Get(_ context.Context, id kernel.UUID) (*request.DeliveryRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	rec, ok := r.uow.store.requests[id]
	if !ok {
		return nil, errs.NewNotFoundError("delivery request", id.String())
	}

	return rec.toDomain()
}

// CompareAndSwapStatus checks the committed status under the store lock and
// stages the flip. The check-then-stage pair is atomic with respect to other
// units of work because the lock is held until commit or rollback.
func (r *requestRepository) CompareAndSwapStatus(
	_ context.Context,
	id kernel.UUID,
	next request.Status,
	expected ...request.Status,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if len(expected) == 0 {
		return errs.NewValidationError("expected statuses")
	}

	rec, ok := r.uow.store.requests[id]
	if !ok {
		return errs.NewConflictError("request status changed concurrently")
	}

	for _, status := range expected {
		if rec.status == status {
			r.uow.stage(func(s *Store) {
				stored := s.requests[id]
				stored.status = next
				s.requests[id] = stored
			})
			return nil
		}
	}

	return errs.NewConflictError("request status changed concurrently")
}

type assignmentRepository struct {
	uow *UnitOfWork
}

func (r *assignmentRepository) Add(_ context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if _, exists := r.uow.store.assignments[aggregate.DeliveryRequestID()]; exists {
		return errs.NewConflictError("request already has an assignment")
	}

	rec := assignmentRecordFrom(aggregate)
	r.uow.stage(func(s *Store) {
		s.assignments[rec.deliveryRequestID] = rec
	})
	return nil
}

func (r *assignmentRepository) Update(_ context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if _, exists := r.uow.store.assignments[aggregate.DeliveryRequestID()]; !exists {
		return errs.NewNotFoundError("assignment", aggregate.ID().String())
	}

	rec := assignmentRecordFrom(aggregate)
	r.uow.stage(func(s *Store) {
		s.assignments[rec.deliveryRequestID] = rec
	})
	return nil
}

func (r *assignmentRepository) GetByRequestID(
	_ context.Context,
	deliveryRequestID kernel.UUID,
) (*assignment.Assignment, error) {
	if err := deliveryRequestID.Validate(); err != nil {
		return nil, err
	}

	rec, ok := r.uow.store.assignments[deliveryRequestID]
	if !ok {
		return nil, errs.NewNotFoundError("assignment", deliveryRequestID.String())
	}

	return rec.toDomain()
}

type transactionRepository struct {
	uow *UnitOfWork
}

func (r *transactionRepository) Add(_ context.Context, aggregate *ledger.Transaction) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if _, exists := r.uow.store.txByRequest[aggregate.DeliveryRequestID()]; exists {
		return errs.NewConflictError("request already has a settlement")
	}

	rec := transactionRecordFrom(aggregate)
	r.uow.stage(func(s *Store) {
		s.transactions[rec.id] = rec
		s.txByRequest[rec.deliveryRequestID] = rec.id
	})
	return nil
}

func (r *transactionRepository) Get(_ context.Context, id kernel.UUID) (*ledger.Transaction, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	rec, ok := r.uow.store.transactions[id]
	if !ok {
		return nil, errs.NewNotFoundError("transaction", id.String())
	}

	return rec.toDomain()
}

func (r *transactionRepository) CompareAndSwapStatus(
	_ context.Context,
	id kernel.UUID,
	next ledger.TransactionStatus,
	expected ledger.TransactionStatus,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	rec, ok := r.uow.store.transactions[id]
	if !ok || rec.status != expected {
		return errs.NewConflictError("transaction already settled")
	}

	r.uow.stage(func(s *Store) {
		stored := s.transactions[id]
		stored.status = next
		s.transactions[id] = stored
	})
	return nil
}

type walletRepository struct {
	uow *UnitOfWork
}

func (r *walletRepository) Credit(_ context.Context, userID kernel.UUID, amount int) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if amount <= 0 {
		return errs.NewValueIsOutOfRangeError("credit amount", amount, 1, nil)
	}

	r.uow.stage(func(s *Store) {
		rec := s.wallets[userID]
		rec.balance += amount
		rec.totalEarnings += amount
		rec.lastUpdated = time.Now().UTC()
		s.wallets[userID] = rec
	})
	return nil
}

func (r *walletRepository) Get(_ context.Context, userID kernel.UUID) (*ledger.Wallet, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	rec, ok := r.uow.store.wallets[userID]
	if !ok {
		return nil, errs.NewNotFoundError("wallet", userID.String())
	}

	return ledger.RestoreWallet(userID, rec.balance, rec.totalEarnings, rec.lastUpdated)
}
