// Package ledgerrepo provides data transfer objects and mapping functions
// for ledger persistence: transactions and wallets. The wallet write path is
// a single insert-or-accumulate upsert, and the unique index on the
// transaction's delivery request id caps settlements at one per request.
package ledgerrepo

import (
	"time"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// TransactionDTO represents the database structure for persisting ledger entries.
type TransactionDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryRequestID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	PaidBy            uuid.UUID `gorm:"type:uuid;index"`
	PaidTo            uuid.UUID `gorm:"type:uuid;index"`
	Amount            int
	Status            int `gorm:"index"`
	CreatedAt         time.Time
}

// TableName specifies the database table name for ledger entries.
func (TransactionDTO) TableName() string {
	return "transactions"
}

// WalletDTO represents the database structure for persisting wallets.
type WalletDTO struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Balance       int
	TotalEarnings int
	LastUpdated   time.Time
}

// TableName specifies the database table name for wallets.
func (WalletDTO) TableName() string {
	return "wallets"
}

// transactionFromDomain converts a transaction entity to its database representation.
func transactionFromDomain(aggregate *ledger.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:                aggregate.ID().Bytes(),
		DeliveryRequestID: aggregate.DeliveryRequestID().Bytes(),
		PaidBy:            aggregate.PaidBy().Bytes(),
		PaidTo:            aggregate.PaidTo().Bytes(),
		Amount:            aggregate.Amount(),
		Status:            int(aggregate.Status()),
		CreatedAt:         aggregate.CreatedAt(),
	}
}

// transactionToDomain converts a database DTO back to a transaction entity.
func transactionToDomain(dto TransactionDTO) (*ledger.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryRequestID, err := kernel.UUIDFromBytes(dto.DeliveryRequestID[:])
	if err != nil {
		return nil, err
	}

	paidBy, err := kernel.UUIDFromBytes(dto.PaidBy[:])
	if err != nil {
		return nil, err
	}

	paidTo, err := kernel.UUIDFromBytes(dto.PaidTo[:])
	if err != nil {
		return nil, err
	}

	return ledger.RestoreTransaction(
		id,
		deliveryRequestID,
		paidBy,
		paidTo,
		dto.Amount,
		ledger.TransactionStatus(dto.Status),
		dto.CreatedAt,
	)
}

// walletToDomain converts a database DTO back to a wallet aggregate.
func walletToDomain(dto WalletDTO) (*ledger.Wallet, error) {
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	return ledger.RestoreWallet(userID, dto.Balance, dto.TotalEarnings, dto.LastUpdated)
}
