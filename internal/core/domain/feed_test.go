package domain_test

import (
	"testing"
	"time"

	"github.com/namnm309/finmate-go/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txnAt(id string, ts time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID:   id,
		TransactionDate: ts,
		Category:        domain.CategoryRef{CategoryID: "cat-1", Name: "Food"},
		MoneySource:     domain.MoneySourceRef{MoneySourceID: "ms-1", Name: "Cash"},
	}
}

func TestGroupByDate_OrdersGroupsAndItemsDescending(t *testing.T) {
	morning := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	nextDay := time.Date(2024, 3, 2, 14, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

	groups := domain.GroupByDate([]domain.Transaction{
		txnAt("a", morning),
		txnAt("b", nextDay),
		txnAt("c", evening),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "02/03/2024", groups[0].Date)
	require.Len(t, groups[0].Transactions, 1)
	assert.Equal(t, "b", groups[0].Transactions[0].TransactionID)

	assert.Equal(t, "01/03/2024", groups[1].Date)
	require.Len(t, groups[1].Transactions, 2)
	assert.Equal(t, "c", groups[1].Transactions[0].TransactionID, "later time of day should come first")
	assert.Equal(t, "a", groups[1].Transactions[1].TransactionID)
}

func TestGroupByDate_ZeroDatesLandInUnknownBucketLast(t *testing.T) {
	dated := txnAt("dated", time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))
	undated := txnAt("undated", time.Time{})

	groups := domain.GroupByDate([]domain.Transaction{undated, dated})

	require.Len(t, groups, 2)
	assert.Equal(t, "10/05/2024", groups[0].Date)
	assert.Equal(t, domain.UnknownDateKey, groups[1].Date)
	require.Len(t, groups[1].Transactions, 1)
	assert.Equal(t, "undated", groups[1].Transactions[0].TransactionID)
}

func TestGroupByDate_EmptyInput(t *testing.T) {
	assert.Empty(t, domain.GroupByDate(nil))
}

func TestTransaction_MatchesQuery(t *testing.T) {
	txn := domain.Transaction{
		Category:    domain.CategoryRef{Name: "Groceries"},
		MoneySource: domain.MoneySourceRef{Name: "Main Bank"},
		Description: "weekly shop at Aldi",
	}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "empty query matches", query: "", want: true},
		{name: "whitespace-only query matches", query: "   ", want: true},
		{name: "category substring, mixed case", query: "gRoCer", want: true},
		{name: "description substring", query: "aldi", want: true},
		{name: "money source substring", query: "main b", want: true},
		{name: "no field matches", query: "taxi", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, txn.MatchesQuery(tt.query))
		})
	}
}

func TestMatchesQuery_SkipsEmptyDescription(t *testing.T) {
	txn := domain.Transaction{
		Category:    domain.CategoryRef{Name: "Transport"},
		MoneySource: domain.MoneySourceRef{Name: "Cash"},
	}
	assert.False(t, txn.MatchesQuery("aldi"))
}

func TestFilterByQuery_DoesNotMutateInput(t *testing.T) {
	txns := []domain.Transaction{
		{TransactionID: "1", Category: domain.CategoryRef{Name: "Food"}},
		{TransactionID: "2", Category: domain.CategoryRef{Name: "Rent"}},
		{TransactionID: "3", Category: domain.CategoryRef{Name: "Fast food"}},
	}

	filtered := domain.FilterByQuery(txns, "food")
	require.Len(t, filtered, 2)
	assert.Equal(t, "1", filtered[0].TransactionID)
	assert.Equal(t, "3", filtered[1].TransactionID)

	// Clearing the filter returns the original list unchanged.
	cleared := domain.FilterByQuery(txns, "")
	require.Len(t, cleared, 3)
	for i := range txns {
		assert.Equal(t, txns[i].TransactionID, cleared[i].TransactionID)
	}
}
