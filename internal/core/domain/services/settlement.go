// Package services provides domain services that orchestrate business
// operations across multiple domain entities. It implements workflows that
// don't naturally belong to a single aggregate root.
//
// The package includes:
//   - SettlementService: builds the ledger entry and wallet credit for a
//     delivered request
package services

import (
	"carrycampus/internal/core/domain/model/assignment"
	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/ledger"
	"carrycampus/internal/core/domain/model/request"
	"carrycampus/internal/pkg/errs"
)

// SettlementService is the domain service that turns a delivered request into
// its bookkeeping effects: exactly one completed Transaction plus the wallet
// credit for the fulfiller.
//
// The service is pure; the caller persists the result within the same unit of
// work as the Delivered status transition so the settlement is all-or-nothing.
//
// Example:
//
//	tx, credit, err := services.NewSettlementService().Settle(req, asg)
//	if err != nil {
//	    return err
//	}
//	// persist tx and apply credit inside the open transaction
type SettlementService struct{}

// NewSettlementService creates a new SettlementService instance.
func NewSettlementService() SettlementService {
	return SettlementService{}
}

// WalletCredit describes the idempotent wallet upsert for one settlement:
// add Amount to both counters of UserID's wallet, creating the wallet when
// one does not exist yet.
type WalletCredit struct {
	UserID kernel.UUID
	Amount int
}

// Settle builds the completed Transaction and the wallet credit for a request
// that has just transitioned to Delivered.
//
// The amount is copied from the request's reward at this instant; the payer
// is the requester and the payee is the assignment's fulfiller. A request
// that is not Delivered, or an assignment for a different request, is a
// programming error surfaced as InvalidStateError/ValidationError.
func (s SettlementService) Settle(
	req *request.DeliveryRequest,
	asg *assignment.Assignment,
) (*ledger.Transaction, WalletCredit, error) {
	if err := req.Validate(); err != nil {
		return nil, WalletCredit{}, err
	}
	if err := asg.Validate(); err != nil {
		return nil, WalletCredit{}, err
	}

	if req.Status() != request.Delivered {
		return nil, WalletCredit{}, errs.NewInvalidStateError(
			"request", req.Status().String(), request.Delivered.String())
	}
	if !asg.DeliveryRequestID().IsEqual(req.ID()) {
		return nil, WalletCredit{}, errs.NewValidationError("assignment does not belong to request")
	}

	tx, err := ledger.NewCompletedTransaction(
		kernel.NewUUID(),
		req.ID(),
		req.RequesterID(),
		asg.DeliveryPersonID(),
		req.RewardAmount(),
	)
	if err != nil {
		return nil, WalletCredit{}, err
	}

	return tx, WalletCredit{UserID: asg.DeliveryPersonID(), Amount: req.RewardAmount()}, nil
}
