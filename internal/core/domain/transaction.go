package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionTypeRef identifies one of the fixed transaction types
// (expense, income, loan given, loan taken) a transaction belongs to.
type TransactionTypeRef struct {
	TransactionTypeID string `json:"transactionTypeId" validate:"required"`
	Name              string `json:"name" validate:"required"`
	Color             string `json:"color"`
	IsIncome          bool   `json:"isIncome"`
}

// MoneySourceRef identifies the account/wallet the transaction moved money
// through. The transaction's currency is implied by the money source.
type MoneySourceRef struct {
	MoneySourceID string `json:"moneySourceId" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Icon          string `json:"icon"`
}

// CategoryRef identifies the user-defined sub-classification of a transaction.
type CategoryRef struct {
	CategoryID string `json:"categoryId" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Icon       string `json:"icon"`
}

// ContactRef identifies the optional counterpart of a transaction
// (e.g., the person a loan was given to).
type ContactRef struct {
	ContactID string `json:"contactId"`
	Name      string `json:"name"`
}

// Transaction represents one money movement as reported by the server.
// It is read-only from the client's perspective; a transaction always
// belongs to exactly one transaction type, money source and category.
type Transaction struct {
	TransactionID      string             `json:"transactionId" validate:"required"`
	TransactionType    TransactionTypeRef `json:"transactionType" validate:"required"`
	MoneySource        MoneySourceRef     `json:"moneySource" validate:"required"`
	Category           CategoryRef        `json:"category" validate:"required"`
	Contact            *ContactRef        `json:"contact,omitempty"`
	Amount             decimal.Decimal    `json:"amount"` // Non-negative; currency implied by money source
	TransactionDate    time.Time          `json:"transactionDate"`
	Description        string             `json:"description"` // Nullable
	IsBorrowing        bool               `json:"isBorrowing"`
	IsFee              bool               `json:"isFee"`
	ExcludeFromReports bool               `json:"excludeFromReports"`
	AuditFields
}
