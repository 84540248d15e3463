package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpin "carrycampus/internal/adapters/in/http"
	"carrycampus/internal/adapters/out/inmem"
	"carrycampus/internal/core/application/usecases/commands"
	"carrycampus/internal/core/application/usecases/queries"
	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcRequestUoWFactory func() commands.RequestUoW

func (f funcRequestUoWFactory) Create() commands.RequestUoW { return f() }

type funcAssignmentUoWFactory func() commands.AssignmentUoW

func (f funcAssignmentUoWFactory) Create() commands.AssignmentUoW { return f() }

type funcUoWFactory func() commands.UoW

func (f funcUoWFactory) Create() commands.UoW { return f() }

type funcLedgerUoWFactory func() commands.LedgerUoW

func (f funcLedgerUoWFactory) Create() commands.LedgerUoW { return f() }

type verifyAll struct{}

func (verifyAll) IsVerified(_ context.Context, _ kernel.UUID) (bool, error) { return true, nil }

// newTestServer wires the command handlers over the in-memory store. Query
// routes are not exercised here; they read through the database and are
// covered by the repository integration suites.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	store := inmem.NewStore()
	factory := inmem.NewUnitOfWorkFactory(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	requestUoWs := funcRequestUoWFactory(func() commands.RequestUoW { return factory.Create() })
	assignmentUoWs := funcAssignmentUoWFactory(func() commands.AssignmentUoW { return factory.Create() })
	uoWs := funcUoWFactory(func() commands.UoW { return factory.Create() })
	ledgerUoWs := funcLedgerUoWFactory(func() commands.LedgerUoW { return factory.Create() })

	server := httpin.NewServer(
		commands.NewCreateRequestCommandHandler(requestUoWs),
		commands.NewAcceptRequestCommandHandler(assignmentUoWs, verifyAll{}, nil, logger),
		commands.NewAdvanceStatusCommandHandler(uoWs, services.NewSettlementService(), nil, logger),
		commands.NewCancelRequestCommandHandler(assignmentUoWs, nil, logger),
		commands.NewMarkTransactionPaidCommandHandler(ledgerUoWs, nil, logger),
		queries.GetOpenRequestsQueryHandler{},
		queries.GetMyRequestsQueryHandler{},
		queries.GetMyDeliveriesQueryHandler{},
		queries.GetWalletQueryHandler{},
		queries.GetTransactionsQueryHandler{},
		queries.GetPendingTransactionsQueryHandler{},
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return e
}

func doJSON(e *echo.Echo, method, path, userID, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func createRequest(t *testing.T, e *echo.Echo, requesterID string) string {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/api/v1/requests", requesterID,
		`{"drop_location": "Library Block B", "reward_amount": 50}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["id"].(string)
}

func TestCreateRequest_ReturnsCreatedRequest(t *testing.T) {
	e := newTestServer(t)
	requesterID := kernel.NewUUID().String()

	rec := doJSON(e, http.MethodPost, "/api/v1/requests", requesterID,
		`{"pickup_location": "North Gate", "drop_location": "Library Block B", "reward_amount": 60}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, requesterID, resp["requester_id"])
	assert.Equal(t, "North Gate", resp["pickup_location"])
	assert.Equal(t, "Library Block B", resp["drop_location"])
	assert.Equal(t, float64(60), resp["reward_amount"])
	assert.Equal(t, "Open", resp["status"])
}

func TestCreateRequest_MissingUserHeader_ReturnsBadRequest(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/requests", "",
		`{"drop_location": "Library"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRequest_MalformedUserHeader_ReturnsBadRequest(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/requests", "not-a-uuid",
		`{"drop_location": "Library"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRequest_MissingDropLocation_ReturnsBadRequest(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/requests", kernel.NewUUID().String(),
		`{"reward_amount": 50}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAcceptRequest_ReturnsAssignment(t *testing.T) {
	e := newTestServer(t)
	requestID := createRequest(t, e, kernel.NewUUID().String())
	fulfillerID := kernel.NewUUID().String()

	rec := doJSON(e, http.MethodPost, "/api/v1/requests/"+requestID+"/accept", fulfillerID, "")

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, requestID, resp["delivery_request_id"])
	assert.Equal(t, fulfillerID, resp["delivery_person_id"])
}

func TestAcceptRequest_OwnRequest_ReturnsForbidden(t *testing.T) {
	e := newTestServer(t)
	requesterID := kernel.NewUUID().String()
	requestID := createRequest(t, e, requesterID)

	rec := doJSON(e, http.MethodPost, "/api/v1/requests/"+requestID+"/accept", requesterID, "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAcceptRequest_AlreadyAssigned_ReturnsBadRequest(t *testing.T) {
	e := newTestServer(t)
	requestID := createRequest(t, e, kernel.NewUUID().String())

	rec := doJSON(e, http.MethodPost, "/api/v1/requests/"+requestID+"/accept",
		kernel.NewUUID().String(), "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/v1/requests/"+requestID+"/accept",
		kernel.NewUUID().String(), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAcceptRequest_UnknownRequest_ReturnsNotFound(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost,
		"/api/v1/requests/"+kernel.NewUUID().String()+"/accept",
		kernel.NewUUID().String(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateRequestStatus_FullLifecycle(t *testing.T) {
	e := newTestServer(t)
	requestID := createRequest(t, e, kernel.NewUUID().String())
	fulfillerID := kernel.NewUUID().String()

	rec := doJSON(e, http.MethodPost, "/api/v1/requests/"+requestID+"/accept", fulfillerID, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPatch, "/api/v1/requests/"+requestID+"/status", fulfillerID,
		`{"status": "Picked"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPatch, "/api/v1/requests/"+requestID+"/status", fulfillerID,
		`{"status": "Delivered"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Delivered", resp["status"])
}

func TestUpdateRequestStatus_UnknownTarget_ReturnsBadRequest(t *testing.T) {
	e := newTestServer(t)
	requestID := createRequest(t, e, kernel.NewUUID().String())
	fulfillerID := kernel.NewUUID().String()

	rec := doJSON(e, http.MethodPost, "/api/v1/requests/"+requestID+"/accept", fulfillerID, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPatch, "/api/v1/requests/"+requestID+"/status", fulfillerID,
		`{"status": "Teleported"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateRequestStatus_NotTheAssignee_ReturnsForbidden(t *testing.T) {
	e := newTestServer(t)
	requestID := createRequest(t, e, kernel.NewUUID().String())

	rec := doJSON(e, http.MethodPost, "/api/v1/requests/"+requestID+"/accept",
		kernel.NewUUID().String(), "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPatch, "/api/v1/requests/"+requestID+"/status",
		kernel.NewUUID().String(), `{"status": "Picked"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCancelRequest_ByOwner_ReturnsCancelled(t *testing.T) {
	e := newTestServer(t)
	requesterID := kernel.NewUUID().String()
	requestID := createRequest(t, e, requesterID)

	rec := doJSON(e, http.MethodPost, "/api/v1/requests/"+requestID+"/cancel", requesterID, "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Cancelled", resp["status"])
}

func TestCancelRequest_NotTheOwner_ReturnsNotFound(t *testing.T) {
	e := newTestServer(t)
	requestID := createRequest(t, e, kernel.NewUUID().String())

	rec := doJSON(e, http.MethodPost, "/api/v1/requests/"+requestID+"/cancel",
		kernel.NewUUID().String(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth_ReturnsHealthy(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
