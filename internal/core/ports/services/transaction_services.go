package services

import (
	"context"

	"github.com/namnm309/finmate-go/internal/dto"
)

// TransactionReaderSvc defines read operations over the remote transaction resource.
type TransactionReaderSvc interface {
	// ListTransactions retrieves one page of the user's transactions,
	// optionally filtered by type, category, money source or date range.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
}
