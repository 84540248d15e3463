// Package inmem provides an in-memory implementation of the unit of work
// and repositories with the same atomicity contract as the postgres
// adapters: conditional status writes evaluate against committed state, a
// unit of work's changes apply all-or-nothing, and units of work serialize
// against each other. It backs handler-level concurrency and scenario tests
// that need real storage semantics without a database.
package inmem

import (
	"sync"
	"time"

	"carrycampus/internal/core/domain/model/assignment"
	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/ledger"
	"carrycampus/internal/core/domain/model/request"
)

// Store holds the committed state shared by all units of work created from
// one factory. All access happens under the store mutex, which a unit of
// work holds from Begin to Commit or Rollback.
type Store struct {
	mu sync.Mutex

	requests     map[kernel.UUID]requestRecord
	assignments  map[kernel.UUID]assignmentRecord // keyed by delivery request id
	transactions map[kernel.UUID]transactionRecord
	txByRequest  map[kernel.UUID]kernel.UUID
	wallets      map[kernel.UUID]walletRecord
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		requests:     make(map[kernel.UUID]requestRecord),
		assignments:  make(map[kernel.UUID]assignmentRecord),
		transactions: make(map[kernel.UUID]transactionRecord),
		txByRequest:  make(map[kernel.UUID]kernel.UUID),
		wallets:      make(map[kernel.UUID]walletRecord),
	}
}

// requestRecord is the stored form of a delivery request. Records are plain
// values; aggregates are rebuilt through the domain restore constructors on
// every read so no caller can mutate stored state in place.
type requestRecord struct {
	id             kernel.UUID
	requesterID    kernel.UUID
	pickupLocation string
	dropLocation   string
	rewardAmount   int
	parcelWeight   string
	parcelType     string
	expectedTime   string
	status         request.Status
	createdAt      time.Time
}

func (rec requestRecord) toDomain() (*request.DeliveryRequest, error) {
	return request.RestoreDeliveryRequest(
		rec.id,
		rec.requesterID,
		rec.pickupLocation,
		rec.dropLocation,
		rec.rewardAmount,
		rec.parcelWeight,
		rec.parcelType,
		rec.expectedTime,
		rec.status,
		rec.createdAt,
	)
}

func requestRecordFrom(aggregate *request.DeliveryRequest) requestRecord {
	return requestRecord{
		id:             aggregate.ID(),
		requesterID:    aggregate.RequesterID(),
		pickupLocation: aggregate.PickupLocation(),
		dropLocation:   aggregate.DropLocation(),
		rewardAmount:   aggregate.RewardAmount(),
		parcelWeight:   aggregate.ParcelWeight(),
		parcelType:     aggregate.ParcelType(),
		expectedTime:   aggregate.ExpectedTime(),
		status:         aggregate.Status(),
		createdAt:      aggregate.CreatedAt(),
	}
}

type assignmentRecord struct {
	id                kernel.UUID
	deliveryRequestID kernel.UUID
	deliveryPersonID  kernel.UUID
	acceptedAt        time.Time
	completedAt       *time.Time
}

func (rec assignmentRecord) toDomain() (*assignment.Assignment, error) {
	var completedAt *time.Time
	if rec.completedAt != nil {
		at := *rec.completedAt
		completedAt = &at
	}

	return assignment.RestoreAssignment(
		rec.id,
		rec.deliveryRequestID,
		rec.deliveryPersonID,
		rec.acceptedAt,
		completedAt,
	)
}

func assignmentRecordFrom(aggregate *assignment.Assignment) assignmentRecord {
	var completedAt *time.Time
	if at := aggregate.CompletedAt(); at != nil {
		copied := *at
		completedAt = &copied
	}

	return assignmentRecord{
		id:                aggregate.ID(),
		deliveryRequestID: aggregate.DeliveryRequestID(),
		deliveryPersonID:  aggregate.DeliveryPersonID(),
		acceptedAt:        aggregate.AcceptedAt(),
		completedAt:       completedAt,
	}
}

type transactionRecord struct {
	id                kernel.UUID
	deliveryRequestID kernel.UUID
	paidBy            kernel.UUID
	paidTo            kernel.UUID
	amount            int
	status            ledger.TransactionStatus
	createdAt         time.Time
}

func (rec transactionRecord) toDomain() (*ledger.Transaction, error) {
	return ledger.RestoreTransaction(
		rec.id,
		rec.deliveryRequestID,
		rec.paidBy,
		rec.paidTo,
		rec.amount,
		rec.status,
		rec.createdAt,
	)
}

func transactionRecordFrom(aggregate *ledger.Transaction) transactionRecord {
	return transactionRecord{
		id:                aggregate.ID(),
		deliveryRequestID: aggregate.DeliveryRequestID(),
		paidBy:            aggregate.PaidBy(),
		paidTo:            aggregate.PaidTo(),
		amount:            aggregate.Amount(),
		status:            aggregate.Status(),
		createdAt:         aggregate.CreatedAt(),
	}
}

type walletRecord struct {
	balance       int
	totalEarnings int
	lastUpdated   time.Time
}
