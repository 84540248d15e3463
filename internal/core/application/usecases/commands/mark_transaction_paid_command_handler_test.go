package commands_test

import (
	"testing"
	"time"

	"carrycampus/internal/core/application/usecases/commands"
	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/ledger"
	"carrycampus/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingTransaction(t *testing.T, payerID, payeeID kernel.UUID, amount int) *ledger.Transaction {
	t.Helper()
	tx, err := ledger.RestoreTransaction(
		kernel.NewUUID(), kernel.NewUUID(), payerID, payeeID, amount,
		ledger.TransactionPending, time.Now().UTC(),
	)
	require.NoError(t, err)
	return tx
}

func TestMarkTransactionPaidCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	payerID := kernel.NewUUID()
	payeeID := kernel.NewUUID()
	testTx := pendingTransaction(t, payerID, payeeID, 40)

	cmd, err := commands.NewMarkTransactionPaidCommand(testTx.ID(), payeeID)
	require.NoError(t, err)

	transactionRepo := new(MockTransactionRepository)
	walletRepo := new(MockWalletRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TransactionRepository").Return(transactionRepo).Once(),
		transactionRepo.On("Get", ctx, testTx.ID()).Return(testTx, nil).Once(),
		uow.On("TransactionRepository").Return(transactionRepo).Once(),
		transactionRepo.On("CompareAndSwapStatus", ctx, testTx.ID(),
			ledger.TransactionCompleted, ledger.TransactionPending).Return(nil).Once(),
		uow.On("WalletRepository").Return(walletRepo).Once(),
		walletRepo.On("Credit", ctx, payeeID, 40).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, payerID.String(), mock.AnythingOfType("string")).Return(nil).Once()

	handler := commands.NewMarkTransactionPaidCommandHandler(factory, notifier, discardLogger())
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, ledger.TransactionCompleted, updated.Status())
	transactionRepo.AssertExpectations(t)
	walletRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestMarkTransactionPaidCommandHandler_Handle_NotThePayee(t *testing.T) {
	ctx := t.Context()

	payerID := kernel.NewUUID()
	payeeID := kernel.NewUUID()
	testTx := pendingTransaction(t, payerID, payeeID, 40)

	// The payer confirming their own payment is not enough; only the payee
	// can acknowledge receipt.
	cmd, err := commands.NewMarkTransactionPaidCommand(testTx.ID(), payerID)
	require.NoError(t, err)

	transactionRepo := new(MockTransactionRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TransactionRepository").Return(transactionRepo).Once(),
		transactionRepo.On("Get", ctx, testTx.ID()).Return(testTx, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkTransactionPaidCommandHandler(factory, nil, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	uow.AssertNotCalled(t, "WalletRepository")
}

func TestMarkTransactionPaidCommandHandler_Handle_AlreadyCompleted(t *testing.T) {
	ctx := t.Context()

	payerID := kernel.NewUUID()
	payeeID := kernel.NewUUID()
	testTx, err := ledger.RestoreTransaction(
		kernel.NewUUID(), kernel.NewUUID(), payerID, payeeID, 40,
		ledger.TransactionCompleted, time.Now().UTC(),
	)
	require.NoError(t, err)

	cmd, err := commands.NewMarkTransactionPaidCommand(testTx.ID(), payeeID)
	require.NoError(t, err)

	transactionRepo := new(MockTransactionRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TransactionRepository").Return(transactionRepo).Once(),
		transactionRepo.On("Get", ctx, testTx.ID()).Return(testTx, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkTransactionPaidCommandHandler(factory, nil, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	uow.AssertNotCalled(t, "WalletRepository")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestMarkTransactionPaidCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()

	payerID := kernel.NewUUID()
	payeeID := kernel.NewUUID()
	testTx := pendingTransaction(t, payerID, payeeID, 40)

	cmd, err := commands.NewMarkTransactionPaidCommand(testTx.ID(), payeeID)
	require.NoError(t, err)

	transactionRepo := new(MockTransactionRepository)
	uow := new(MockUoW)

	// Both confirmations read Pending; the storage-level swap admits one.
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TransactionRepository").Return(transactionRepo).Once(),
		transactionRepo.On("Get", ctx, testTx.ID()).Return(testTx, nil).Once(),
		uow.On("TransactionRepository").Return(transactionRepo).Once(),
		transactionRepo.On("CompareAndSwapStatus", ctx, testTx.ID(),
			ledger.TransactionCompleted, ledger.TransactionPending).
			Return(errs.NewConflictError("transaction already settled")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkTransactionPaidCommandHandler(factory, nil, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "WalletRepository")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestMarkTransactionPaidCommandHandler_Handle_TransactionNotFound(t *testing.T) {
	ctx := t.Context()

	transactionID := kernel.NewUUID()
	cmd, err := commands.NewMarkTransactionPaidCommand(transactionID, kernel.NewUUID())
	require.NoError(t, err)

	transactionRepo := new(MockTransactionRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TransactionRepository").Return(transactionRepo).Once(),
		transactionRepo.On("Get", ctx, transactionID).
			Return(nil, errs.NewNotFoundError("transaction", transactionID.String())).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkTransactionPaidCommandHandler(factory, nil, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
