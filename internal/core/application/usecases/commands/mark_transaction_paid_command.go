package commands

import (
	"errors"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/pkg/guard"
)

// ErrMarkTransactionPaidCommandIsNotConstructed is returned when a
// MarkTransactionPaidCommand was not built through its constructor.
var ErrMarkTransactionPaidCommandIsNotConstructed = errors.New(
	"MarkTransactionPaidCommand must be created via NewMarkTransactionPaidCommand constructor",
)

// MarkTransactionPaidCommand represents the payee confirming receipt of an
// out-of-band payment for a pending ledger entry.
type MarkTransactionPaidCommand struct { //nolint:recvcheck //using for validation
	transactionID kernel.UUID
	payeeID       kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkTransactionPaidCommand creates a command to settle a pending transaction.
func NewMarkTransactionPaidCommand(transactionID, payeeID kernel.UUID) (MarkTransactionPaidCommand, error) {
	cmd := MarkTransactionPaidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTransactionID(transactionID),
		cmd.setPayeeID(payeeID),
	); err != nil {
		return MarkTransactionPaidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkTransactionPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkTransactionPaidCommandIsNotConstructed)
}

// TransactionID returns the identifier of the transaction being settled.
func (c MarkTransactionPaidCommand) TransactionID() kernel.UUID {
	return c.transactionID
}

// PayeeID returns the identifier of the confirming payee.
func (c MarkTransactionPaidCommand) PayeeID() kernel.UUID {
	return c.payeeID
}

func (c *MarkTransactionPaidCommand) setTransactionID(transactionID kernel.UUID) error {
	if err := transactionID.Validate(); err != nil {
		return err
	}

	c.transactionID = transactionID
	return nil
}

func (c *MarkTransactionPaidCommand) setPayeeID(payeeID kernel.UUID) error {
	if err := payeeID.Validate(); err != nil {
		return err
	}

	c.payeeID = payeeID
	return nil
}
