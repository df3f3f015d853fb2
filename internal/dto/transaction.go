package dto

import (
	"net/url"
	"strconv"
	"time"

	"github.com/namnm309/finmate-go/internal/core/domain"
)

// DefaultPageSize is the page size the transaction feed requests.
const DefaultPageSize = 20

// dateFormat is the wire format for startDate/endDate query parameters.
const dateFormat = "2006-01-02"

// ListTransactionsParams carries the optional filters and pagination cursor
// for the transaction list endpoint. Zero-valued fields are omitted from the
// query string, which the server reads as "no filter on this dimension".
type ListTransactionsParams struct {
	TransactionTypeID string
	CategoryID        string
	MoneySourceID     string
	StartDate         *time.Time
	EndDate           *time.Time
	Page              int // 1-based
	PageSize          int
}

// QueryValues encodes the params as URL query values.
func (p ListTransactionsParams) QueryValues() url.Values {
	q := url.Values{}
	if p.TransactionTypeID != "" {
		q.Set("transactionTypeId", p.TransactionTypeID)
	}
	if p.CategoryID != "" {
		q.Set("categoryId", p.CategoryID)
	}
	if p.MoneySourceID != "" {
		q.Set("moneySourceId", p.MoneySourceID)
	}
	if p.StartDate != nil {
		q.Set("startDate", p.StartDate.Format(dateFormat))
	}
	if p.EndDate != nil {
		q.Set("endDate", p.EndDate.Format(dateFormat))
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	return q
}

// ListTransactionsResponse is the payload of the transaction list endpoint.
type ListTransactionsResponse struct {
	TotalCount   int                  `json:"totalCount" validate:"min=0"`
	Page         int                  `json:"page" validate:"min=1"`
	PageSize     int                  `json:"pageSize" validate:"min=1"`
	Transactions []domain.Transaction `json:"transactions" validate:"dive"`
}

// CreateTransactionRequest is the payload accepted by the stub server's
// create endpoint; the hosted backend owns the authoritative contract.
type CreateTransactionRequest struct {
	TransactionTypeID  string    `json:"transactionTypeId" binding:"required"`
	MoneySourceID      string    `json:"moneySourceId" binding:"required"`
	CategoryID         string    `json:"categoryId" binding:"required"`
	ContactID          string    `json:"contactId"`
	Amount             string    `json:"amount" binding:"required"`
	TransactionDate    time.Time `json:"transactionDate" binding:"required"`
	Description        string    `json:"description"`
	IsBorrowing        bool      `json:"isBorrowing"`
	IsFee              bool      `json:"isFee"`
	ExcludeFromReports bool      `json:"excludeFromReports"`
}
