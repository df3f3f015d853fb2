package domain

import (
	"sort"
	"strings"
)

// DateGroupLayout is the fixed layout used to derive the date bucket key.
const DateGroupLayout = "02/01/2006"

// UnknownDateKey is the bucket key for transactions whose date the server
// did not report (zero timestamp). The bucket always sorts last.
const UnknownDateKey = "unknown"

// TransactionGroup is a presentation bucket of transactions sharing one
// calendar date, newest-first within the bucket.
type TransactionGroup struct {
	Date         string        `json:"date"`
	Transactions []Transaction `json:"transactions"`
}

// GroupByDate buckets transactions by calendar date (DD/MM/YYYY), buckets
// ordered most-recent-date first and transactions within a bucket ordered
// by full timestamp descending. Transactions with a zero date land in the
// UnknownDateKey bucket, which sorts after all dated buckets.
// The input slice is not modified.
func GroupByDate(txns []Transaction) []TransactionGroup {
	buckets := make(map[string][]Transaction, len(txns))
	for _, txn := range txns {
		key := UnknownDateKey
		if !txn.TransactionDate.IsZero() {
			key = txn.TransactionDate.Format(DateGroupLayout)
		}
		buckets[key] = append(buckets[key], txn)
	}

	groups := make([]TransactionGroup, 0, len(buckets))
	for key, items := range buckets {
		sorted := make([]Transaction, len(items))
		copy(sorted, items)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].TransactionDate.After(sorted[j].TransactionDate)
		})
		groups = append(groups, TransactionGroup{Date: key, Transactions: sorted})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Date == UnknownDateKey {
			return false
		}
		if groups[j].Date == UnknownDateKey {
			return true
		}
		// Group keys are unique by construction, so comparing the first
		// member's date orders the buckets without re-parsing the key.
		return groups[i].Transactions[0].TransactionDate.After(groups[j].Transactions[0].TransactionDate)
	})

	return groups
}

// MatchesQuery reports whether a transaction matches a free-text search
// query: case-insensitive substring match against the category name, the
// description and the money source name. An empty query matches everything.
func (t Transaction) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Category.Name), q) {
		return true
	}
	if t.Description != "" && strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	return strings.Contains(strings.ToLower(t.MoneySource.Name), q)
}

// FilterByQuery returns the transactions matching query, preserving input
// order. The input slice is never mutated.
func FilterByQuery(txns []Transaction, query string) []Transaction {
	if strings.TrimSpace(query) == "" {
		out := make([]Transaction, len(txns))
		copy(out, txns)
		return out
	}
	out := make([]Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.MatchesQuery(query) {
			out = append(out, txn)
		}
	}
	return out
}
