package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/namnm309/finmate-go/internal/apperrors"
	"github.com/namnm309/finmate-go/internal/core/domain"
	"github.com/namnm309/finmate-go/internal/core/ports"
	"github.com/namnm309/finmate-go/internal/dto"
)

const transactionsPath = "/transactions"

// TransactionService maps typed list requests onto the transaction resource
// of the FinMate API and validates the decoded payload before handing it to
// callers. A malformed payload is reported as apperrors.ErrValidation, which
// the feed treats the same as a transport failure.
type TransactionService struct {
	client   ports.APIClient
	validate *validator.Validate
}

func NewTransactionService(client ports.APIClient) *TransactionService {
	return &TransactionService{
		client:   client,
		validate: validator.New(),
	}
}

func (s *TransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	var resp dto.ListTransactionsResponse
	if err := s.client.GetJSON(ctx, transactionsPath, params.QueryValues(), &resp); err != nil {
		return nil, fmt.Errorf("failed to list transactions in service: %w", err)
	}

	if err := s.validate.Struct(&resp); err != nil {
		return nil, fmt.Errorf("%w: transaction list payload: %v", apperrors.ErrValidation, err)
	}

	// Return empty slice if no transactions found, not nil
	if resp.Transactions == nil {
		resp.Transactions = []domain.Transaction{}
	}
	return &resp, nil
}
