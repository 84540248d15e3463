package queries_test

import (
	"testing"

	"carrycampus/internal/core/application/usecases/queries"
	"carrycampus/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOpenRequestsQuery_ValidInput(t *testing.T) {
	viewerID := kernel.NewUUID()

	query, err := queries.NewGetOpenRequestsQuery(viewerID, queries.OpenRequestsFilter{
		ParcelType: "books",
		MinReward:  20,
		SortBy:     queries.SortByRewardAmount,
		SortOrder:  queries.SortAsc,
	})

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.ViewerID().IsEqual(viewerID))
	assert.Equal(t, queries.SortByRewardAmount, query.Filter().SortBy)
	assert.Equal(t, queries.SortAsc, query.Filter().SortOrder)
}

func TestNewGetOpenRequestsQuery_NormalizesUnknownSort(t *testing.T) {
	query, err := queries.NewGetOpenRequestsQuery(kernel.NewUUID(), queries.OpenRequestsFilter{
		SortBy:    "reward_amount; DROP TABLE delivery_requests",
		SortOrder: "sideways",
	})

	require.NoError(t, err)
	assert.Equal(t, queries.SortByCreatedAt, query.Filter().SortBy)
	assert.Equal(t, queries.SortDesc, query.Filter().SortOrder)
}

func TestNewGetOpenRequestsQuery_InvalidViewer(t *testing.T) {
	_, err := queries.NewGetOpenRequestsQuery(kernel.UUID{}, queries.OpenRequestsFilter{})
	require.Error(t, err)
}

func TestGetOpenRequestsQuery_NotConstructed(t *testing.T) {
	var query queries.GetOpenRequestsQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetOpenRequestsQueryIsNotConstructed)
}

func TestNewGetMyRequestsQuery(t *testing.T) {
	requesterID := kernel.NewUUID()

	query, err := queries.NewGetMyRequestsQuery(requesterID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.RequesterID().IsEqual(requesterID))

	_, err = queries.NewGetMyRequestsQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestNewGetMyDeliveriesQuery(t *testing.T) {
	deliveryPersonID := kernel.NewUUID()

	query, err := queries.NewGetMyDeliveriesQuery(deliveryPersonID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.DeliveryPersonID().IsEqual(deliveryPersonID))

	_, err = queries.NewGetMyDeliveriesQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestNewGetWalletQuery(t *testing.T) {
	userID := kernel.NewUUID()

	query, err := queries.NewGetWalletQuery(userID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.UserID().IsEqual(userID))

	_, err = queries.NewGetWalletQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestNewGetTransactionsQuery(t *testing.T) {
	userID := kernel.NewUUID()

	query, err := queries.NewGetTransactionsQuery(userID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.UserID().IsEqual(userID))

	_, err = queries.NewGetTransactionsQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestNewGetPendingTransactionsQuery(t *testing.T) {
	payeeID := kernel.NewUUID()

	query, err := queries.NewGetPendingTransactionsQuery(payeeID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.PayeeID().IsEqual(payeeID))

	_, err = queries.NewGetPendingTransactionsQuery(kernel.UUID{})
	require.Error(t, err)
}
