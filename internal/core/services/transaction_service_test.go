package services_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/namnm309/finmate-go/internal/apperrors"
	"github.com/namnm309/finmate-go/internal/core/domain"
	"github.com/namnm309/finmate-go/internal/core/services"
	"github.com/namnm309/finmate-go/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock APIClient ---
type MockAPIClient struct {
	mock.Mock
}

func (m *MockAPIClient) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	args := m.Called(ctx, path, query, out)
	return args.Error(0)
}

func (m *MockAPIClient) PostJSON(ctx context.Context, path string, body any, out any) error {
	args := m.Called(ctx, path, body, out)
	return args.Error(0)
}

func validListPayload() dto.ListTransactionsResponse {
	return dto.ListTransactionsResponse{
		TotalCount: 1,
		Page:       1,
		PageSize:   20,
		Transactions: []domain.Transaction{
			{
				TransactionID:   "txn-1",
				TransactionType: domain.TransactionTypeRef{TransactionTypeID: "tt-1", Name: "Expense"},
				MoneySource:     domain.MoneySourceRef{MoneySourceID: "ms-1", Name: "Cash"},
				Category:        domain.CategoryRef{CategoryID: "cat-1", Name: "Food"},
				TransactionDate: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			},
		},
	}
}

func TestListTransactions_ForwardsFiltersAsQueryParams(t *testing.T) {
	client := new(MockAPIClient)
	svc := services.NewTransactionService(client)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	params := dto.ListTransactionsParams{
		TransactionTypeID: "tt-1",
		CategoryID:        "cat-1",
		StartDate:         &start,
		Page:              2,
		PageSize:          20,
	}

	client.On("GetJSON", mock.Anything, "/transactions", mock.MatchedBy(func(q url.Values) bool {
		return q.Get("transactionTypeId") == "tt-1" &&
			q.Get("categoryId") == "cat-1" &&
			q.Get("startDate") == "2024-01-01" &&
			q.Get("moneySourceId") == "" &&
			q.Get("endDate") == "" &&
			q.Get("page") == "2" &&
			q.Get("pageSize") == "20"
	}), mock.Anything).Run(func(args mock.Arguments) {
		out := args.Get(3).(*dto.ListTransactionsResponse)
		*out = validListPayload()
	}).Return(nil).Once()

	resp, err := svc.ListTransactions(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalCount)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "txn-1", resp.Transactions[0].TransactionID)
	client.AssertExpectations(t)
}

func TestListTransactions_ClientErrorIsWrapped(t *testing.T) {
	client := new(MockAPIClient)
	svc := services.NewTransactionService(client)

	client.On("GetJSON", mock.Anything, "/transactions", mock.Anything, mock.Anything).
		Return(apperrors.ErrUnauthorized).Once()

	_, err := svc.ListTransactions(context.Background(), dto.ListTransactionsParams{Page: 1, PageSize: 20})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestListTransactions_MalformedPayloadFailsValidation(t *testing.T) {
	client := new(MockAPIClient)
	svc := services.NewTransactionService(client)

	client.On("GetJSON", mock.Anything, "/transactions", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(3).(*dto.ListTransactionsResponse)
			payload := validListPayload()
			payload.Transactions[0].TransactionID = "" // required field missing
			*out = payload
		}).Return(nil).Once()

	_, err := svc.ListTransactions(context.Background(), dto.ListTransactionsParams{Page: 1, PageSize: 20})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestListTransactions_NilSliceBecomesEmpty(t *testing.T) {
	client := new(MockAPIClient)
	svc := services.NewTransactionService(client)

	client.On("GetJSON", mock.Anything, "/transactions", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(3).(*dto.ListTransactionsResponse)
			*out = dto.ListTransactionsResponse{TotalCount: 0, Page: 1, PageSize: 20}
		}).Return(nil).Once()

	resp, err := svc.ListTransactions(context.Background(), dto.ListTransactionsParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.NotNil(t, resp.Transactions)
	assert.Empty(t, resp.Transactions)
}
