// Package http exposes the delivery marketplace over a REST API.
//
// Every authenticated route reads the acting user from the X-User-ID
// header; authentication itself is handled upstream. Domain errors are
// translated to HTTP status codes in one place, writeError, so handlers
// only deal with use cases.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"carrycampus/internal/core/application/usecases/commands"
	"carrycampus/internal/core/application/usecases/queries"
	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/request"
	"carrycampus/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// userIDHeader carries the acting user's identity, set by the gateway.
const userIDHeader = "X-User-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createRequestHandler       commands.CreateRequestCommandHandler
	acceptRequestHandler       commands.AcceptRequestCommandHandler
	advanceStatusHandler       commands.AdvanceStatusCommandHandler
	cancelRequestHandler       commands.CancelRequestCommandHandler
	markTransactionPaidHandler commands.MarkTransactionPaidCommandHandler

	// Query handlers
	getOpenRequestsHandler        queries.GetOpenRequestsQueryHandler
	getMyRequestsHandler          queries.GetMyRequestsQueryHandler
	getMyDeliveriesHandler        queries.GetMyDeliveriesQueryHandler
	getWalletHandler              queries.GetWalletQueryHandler
	getTransactionsHandler        queries.GetTransactionsQueryHandler
	getPendingTransactionsHandler queries.GetPendingTransactionsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createRequestHandler commands.CreateRequestCommandHandler,
	acceptRequestHandler commands.AcceptRequestCommandHandler,
	advanceStatusHandler commands.AdvanceStatusCommandHandler,
	cancelRequestHandler commands.CancelRequestCommandHandler,
	markTransactionPaidHandler commands.MarkTransactionPaidCommandHandler,
	getOpenRequestsHandler queries.GetOpenRequestsQueryHandler,
	getMyRequestsHandler queries.GetMyRequestsQueryHandler,
	getMyDeliveriesHandler queries.GetMyDeliveriesQueryHandler,
	getWalletHandler queries.GetWalletQueryHandler,
	getTransactionsHandler queries.GetTransactionsQueryHandler,
	getPendingTransactionsHandler queries.GetPendingTransactionsQueryHandler,
) *Server {
	return &Server{
		createRequestHandler:          createRequestHandler,
		acceptRequestHandler:          acceptRequestHandler,
		advanceStatusHandler:          advanceStatusHandler,
		cancelRequestHandler:          cancelRequestHandler,
		markTransactionPaidHandler:    markTransactionPaidHandler,
		getOpenRequestsHandler:        getOpenRequestsHandler,
		getMyRequestsHandler:          getMyRequestsHandler,
		getMyDeliveriesHandler:        getMyDeliveriesHandler,
		getWalletHandler:              getWalletHandler,
		getTransactionsHandler:        getTransactionsHandler,
		getPendingTransactionsHandler: getPendingTransactionsHandler,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", metricsHandler())

	v1 := e.Group("/api/v1", metricsMiddleware)

	v1.POST("/requests", s.CreateRequest)
	v1.GET("/requests/open", s.GetOpenRequests)
	v1.GET("/requests/mine", s.GetMyRequests)
	v1.POST("/requests/:id/accept", s.AcceptRequest)
	v1.PATCH("/requests/:id/status", s.UpdateRequestStatus)
	v1.POST("/requests/:id/cancel", s.CancelRequest)

	v1.GET("/deliveries/mine", s.GetMyDeliveries)

	v1.GET("/wallet", s.GetWallet)
	v1.GET("/transactions", s.GetTransactions)
	v1.GET("/transactions/pending", s.GetPendingTransactions)
	v1.POST("/transactions/:id/paid", s.MarkTransactionPaid)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateRequest handles POST /api/v1/requests - posts a new delivery request.
func (s *Server) CreateRequest(ctx echo.Context) error {
	userID, err := actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body CreateRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateRequestCommand(
		kernel.NewUUID(),
		userID,
		body.PickupLocation,
		body.DropLocation,
		body.RewardAmount,
		body.ParcelWeight,
		body.ParcelType,
		body.ExpectedTime,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	req, err := s.createRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	requestLifecycleTotal.WithLabelValues(req.Status().String()).Inc()

	return ctx.JSON(http.StatusCreated, requestResponseFrom(req))
}

// GetOpenRequests handles GET /api/v1/requests/open - the browsable feed.
func (s *Server) GetOpenRequests(ctx echo.Context) error {
	userID, err := actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	filter := queries.OpenRequestsFilter{
		Location:     ctx.QueryParam("location"),
		ParcelType:   ctx.QueryParam("parcel_type"),
		ParcelWeight: ctx.QueryParam("parcel_weight"),
		ExpectedTime: ctx.QueryParam("expected_time"),
		SortBy:       queries.SortField(ctx.QueryParam("sort_by")),
		SortOrder:    queries.SortOrder(ctx.QueryParam("sort_order")),
	}
	if raw := ctx.QueryParam("min_reward"); raw != "" {
		minReward, err := strconv.Atoi(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "min_reward must be an integer",
			})
		}
		filter.MinReward = minReward
	}

	query, err := queries.NewGetOpenRequestsQuery(userID, filter)
	if err != nil {
		return writeError(ctx, err)
	}

	rows, err := s.getOpenRequestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OpenRequestResponse, len(rows))
	for i, row := range rows {
		response[i] = openRequestResponseFrom(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetMyRequests handles GET /api/v1/requests/mine - the caller's posted requests.
func (s *Server) GetMyRequests(ctx echo.Context) error {
	userID, err := actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetMyRequestsQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}

	rows, err := s.getMyRequestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]MyRequestResponse, len(rows))
	for i, row := range rows {
		response[i] = myRequestResponseFrom(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptRequest handles POST /api/v1/requests/:id/accept - claims an open request.
func (s *Server) AcceptRequest(ctx echo.Context) error {
	userID, err := actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAcceptRequestCommand(requestID, userID)
	if err != nil {
		return writeError(ctx, err)
	}

	asg, err := s.acceptRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			acceptConflictsTotal.Inc()
		}
		return writeError(ctx, err)
	}

	requestLifecycleTotal.WithLabelValues(request.Assigned.String()).Inc()

	return ctx.JSON(http.StatusCreated, assignmentResponseFrom(asg))
}

// UpdateRequestStatus handles PATCH /api/v1/requests/:id/status - the
// fulfiller advances the request to Picked, Delivered or Cancelled.
func (s *Server) UpdateRequestStatus(ctx echo.Context) error {
	userID, err := actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	var body UpdateStatusBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := request.StatusFromString(body.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceStatusCommand(requestID, userID, target)
	if err != nil {
		return writeError(ctx, err)
	}

	req, err := s.advanceStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	requestLifecycleTotal.WithLabelValues(req.Status().String()).Inc()

	return ctx.JSON(http.StatusOK, requestResponseFrom(req))
}

// CancelRequest handles POST /api/v1/requests/:id/cancel - the requester
// withdraws a request that has not been picked up yet.
func (s *Server) CancelRequest(ctx echo.Context) error {
	userID, err := actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelRequestCommand(requestID, userID)
	if err != nil {
		return writeError(ctx, err)
	}

	req, err := s.cancelRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	requestLifecycleTotal.WithLabelValues(req.Status().String()).Inc()

	return ctx.JSON(http.StatusOK, requestResponseFrom(req))
}

// GetMyDeliveries handles GET /api/v1/deliveries/mine - deliveries the
// caller has accepted, in progress and completed.
func (s *Server) GetMyDeliveries(ctx echo.Context) error {
	userID, err := actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetMyDeliveriesQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}

	rows, err := s.getMyDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]MyDeliveryResponse, len(rows))
	for i, row := range rows {
		response[i] = myDeliveryResponseFrom(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetWallet handles GET /api/v1/wallet - the caller's balance and earnings.
func (s *Server) GetWallet(ctx echo.Context) error {
	userID, err := actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetWalletQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}

	wallet, err := s.getWalletHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, WalletResponse{
		UserID:        wallet.UserID.String(),
		Balance:       wallet.Balance,
		TotalEarnings: wallet.TotalEarnings,
		LastUpdated:   wallet.LastUpdated,
	})
}

// GetTransactions handles GET /api/v1/transactions - both sides of the
// caller's ledger history.
func (s *Server) GetTransactions(ctx echo.Context) error {
	userID, err := actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetTransactionsQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}

	rows, err := s.getTransactionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]TransactionResponse, len(rows))
	for i, row := range rows {
		response[i] = transactionResponseFrom(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPendingTransactions handles GET /api/v1/transactions/pending - entries
// awaiting the caller's confirmation.
func (s *Server) GetPendingTransactions(ctx echo.Context) error {
	userID, err := actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetPendingTransactionsQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}

	rows, err := s.getPendingTransactionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]TransactionResponse, len(rows))
	for i, row := range rows {
		response[i] = transactionResponseFrom(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// MarkTransactionPaid handles POST /api/v1/transactions/:id/paid - the payee
// confirms the payment and the funds land in their wallet.
func (s *Server) MarkTransactionPaid(ctx echo.Context) error {
	userID, err := actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	transactionID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkTransactionPaidCommand(transactionID, userID)
	if err != nil {
		return writeError(ctx, err)
	}

	tx, err := s.markTransactionPaidHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transactionResponseFromDomain(tx))
}

// actingUser reads the authenticated user's identity from the request headers.
func actingUser(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(userIDHeader)
	if raw == "" {
		return kernel.UUID{}, errs.NewValidationError(userIDHeader + " header")
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValidationErrorWithCause(userIDHeader+" header", err)
	}
	return id, nil
}

// pathUUID parses a UUID path parameter.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValidationErrorWithCause(name, err)
	}
	return id, nil
}

// writeError maps domain errors onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrInvalidState):
		code = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
		message = err.Error()
	case errors.Is(err, errs.ErrNotFound):
		code = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden
		message = err.Error()
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
