// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"carrycampus/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends only on the repositories its operation
// touches, so the mock surface in tests stays small.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RequestRepoFactory provides access to the request repository within a transaction.
	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// TransactionRepoFactory provides access to the ledger transaction repository within a transaction.
	TransactionRepoFactory interface {
		TransactionRepository() ports.TransactionRepository
	}

	// WalletRepoFactory provides access to the wallet repository within a transaction.
	WalletRepoFactory interface {
		WalletRepository() ports.WalletRepository
	}

	// RequestUoW manages transactions for request-only operations (create).
	RequestUoW interface {
		TxManager
		RequestRepoFactory
	}

	// RequestUoWFactory creates new request unit of work instances.
	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// AssignmentUoW manages transactions spanning the request and assignment
	// tables: accepting a request (status CAS + assignment insert) and
	// cancelling one (status CAS + assignee lookup for notification).
	AssignmentUoW interface {
		TxManager
		RequestRepoFactory
		AssignmentRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// LedgerUoW manages transactions for the manual settlement path
	// (transaction status CAS + wallet credit).
	LedgerUoW interface {
		TxManager
		TransactionRepoFactory
		WalletRepoFactory
	}

	// LedgerUoWFactory creates new ledger unit of work instances.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	// UoW manages transactions across all aggregates. Used by the status
	// advance command, whose Delivered branch touches the request, its
	// assignment, the ledger and the wallet in one atomic unit.
	UoW interface {
		TxManager
		RequestRepoFactory
		AssignmentRepoFactory
		TransactionRepoFactory
		WalletRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
