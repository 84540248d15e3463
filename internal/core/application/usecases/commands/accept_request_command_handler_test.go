package commands_test

import (
	"errors"
	"testing"
	"time"

	"carrycampus/internal/core/application/usecases/commands"
	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/request"
	"carrycampus/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func openRequest(t *testing.T, requesterID kernel.UUID) *request.DeliveryRequest {
	t.Helper()
	req, err := request.RestoreDeliveryRequest(
		kernel.NewUUID(), requesterID,
		"Hostel B", "Library", 50, "1kg", "books", "today 6pm",
		request.Open, time.Now().UTC(),
	)
	require.NoError(t, err)
	return req
}

func TestAcceptRequestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	requesterID := kernel.NewUUID()
	deliveryPersonID := kernel.NewUUID()
	testRequest := openRequest(t, requesterID)

	cmd, err := commands.NewAcceptRequestCommand(testRequest.ID(), deliveryPersonID)
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, testRequest.ID()).Return(testRequest, nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("CompareAndSwapStatus", ctx, testRequest.ID(),
			request.Assigned, []request.Status{request.Open}).Return(nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	verifier := new(MockVerificationChecker)
	verifier.On("IsVerified", ctx, deliveryPersonID).Return(true, nil).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, requesterID.String(), mock.AnythingOfType("string")).Return(nil).Once()

	handler := commands.NewAcceptRequestCommandHandler(factory, verifier, notifier, discardLogger())
	asg, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, asg)
	assert.True(t, asg.DeliveryRequestID().IsEqual(testRequest.ID()))
	assert.True(t, asg.DeliveryPersonID().IsEqual(deliveryPersonID))
	assert.Nil(t, asg.CompletedAt())
	requestRepo.AssertExpectations(t)
	assignmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	verifier.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestAcceptRequestCommandHandler_Handle_UnverifiedUser(t *testing.T) {
	ctx := t.Context()

	deliveryPersonID := kernel.NewUUID()
	cmd, err := commands.NewAcceptRequestCommand(kernel.NewUUID(), deliveryPersonID)
	require.NoError(t, err)

	verifier := new(MockVerificationChecker)
	verifier.On("IsVerified", ctx, deliveryPersonID).Return(false, nil).Once()

	factory := new(MockAssignmentUoWFactory)

	handler := commands.NewAcceptRequestCommandHandler(factory, verifier, nil, discardLogger())
	asg, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Nil(t, asg)
	factory.AssertNotCalled(t, "Create")
}

func TestAcceptRequestCommandHandler_Handle_SelfAccept(t *testing.T) {
	ctx := t.Context()

	requesterID := kernel.NewUUID()
	testRequest := openRequest(t, requesterID)

	cmd, err := commands.NewAcceptRequestCommand(testRequest.ID(), requesterID)
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, testRequest.ID()).Return(testRequest, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	verifier := new(MockVerificationChecker)
	verifier.On("IsVerified", ctx, requesterID).Return(true, nil).Once()

	handler := commands.NewAcceptRequestCommandHandler(factory, verifier, nil, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	requestRepo.AssertNotCalled(t, "CompareAndSwapStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptRequestCommandHandler_Handle_RequestNotFound(t *testing.T) {
	ctx := t.Context()

	deliveryPersonID := kernel.NewUUID()
	requestID := kernel.NewUUID()
	cmd, err := commands.NewAcceptRequestCommand(requestID, deliveryPersonID)
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, requestID).
			Return(nil, errs.NewNotFoundError("delivery request", requestID.String())).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	verifier := new(MockVerificationChecker)
	verifier.On("IsVerified", ctx, deliveryPersonID).Return(true, nil).Once()

	handler := commands.NewAcceptRequestCommandHandler(factory, verifier, nil, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAcceptRequestCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := t.Context()

	requesterID := kernel.NewUUID()
	deliveryPersonID := kernel.NewUUID()
	testRequest, err := request.RestoreDeliveryRequest(
		kernel.NewUUID(), requesterID,
		"Hostel B", "Library", 50, "", "", "",
		request.Assigned, time.Now().UTC(),
	)
	require.NoError(t, err)

	cmd, err := commands.NewAcceptRequestCommand(testRequest.ID(), deliveryPersonID)
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, testRequest.ID()).Return(testRequest, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	verifier := new(MockVerificationChecker)
	verifier.On("IsVerified", ctx, deliveryPersonID).Return(true, nil).Once()

	handler := commands.NewAcceptRequestCommandHandler(factory, verifier, nil, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestAcceptRequestCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()

	requesterID := kernel.NewUUID()
	deliveryPersonID := kernel.NewUUID()
	testRequest := openRequest(t, requesterID)

	cmd, err := commands.NewAcceptRequestCommand(testRequest.ID(), deliveryPersonID)
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	uow := new(MockUoW)

	// The read saw Open but another fulfiller got there first: the
	// conditional write matches zero rows and the whole accept rolls back.
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, testRequest.ID()).Return(testRequest, nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("CompareAndSwapStatus", ctx, testRequest.ID(),
			request.Assigned, []request.Status{request.Open}).
			Return(errs.NewConflictError("request is no longer open")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	verifier := new(MockVerificationChecker)
	verifier.On("IsVerified", ctx, deliveryPersonID).Return(true, nil).Once()

	handler := commands.NewAcceptRequestCommandHandler(factory, verifier, nil, discardLogger())
	asg, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Nil(t, asg)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAcceptRequestCommandHandler_Handle_VerifierError(t *testing.T) {
	ctx := t.Context()

	deliveryPersonID := kernel.NewUUID()
	cmd, err := commands.NewAcceptRequestCommand(kernel.NewUUID(), deliveryPersonID)
	require.NoError(t, err)

	verifier := new(MockVerificationChecker)
	verifier.On("IsVerified", ctx, deliveryPersonID).
		Return(false, errors.New("identity service unavailable")).
		Once()

	factory := new(MockAssignmentUoWFactory)

	handler := commands.NewAcceptRequestCommandHandler(factory, verifier, nil, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "identity service unavailable")
	factory.AssertNotCalled(t, "Create")
}

func TestAcceptRequestCommandHandler_Handle_NotificationFailureIgnored(t *testing.T) {
	ctx := t.Context()

	requesterID := kernel.NewUUID()
	deliveryPersonID := kernel.NewUUID()
	testRequest := openRequest(t, requesterID)

	cmd, err := commands.NewAcceptRequestCommand(testRequest.ID(), deliveryPersonID)
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, testRequest.ID()).Return(testRequest, nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("CompareAndSwapStatus", ctx, testRequest.ID(),
			request.Assigned, []request.Status{request.Open}).Return(nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	verifier := new(MockVerificationChecker)
	verifier.On("IsVerified", ctx, deliveryPersonID).Return(true, nil).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, requesterID.String(), mock.AnythingOfType("string")).
		Return(errors.New("smtp down")).
		Once()

	handler := commands.NewAcceptRequestCommandHandler(factory, verifier, notifier, discardLogger())
	asg, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, asg)
}
