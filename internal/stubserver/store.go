package stubserver

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/namnm309/finmate-go/internal/core/domain"
	"github.com/namnm309/finmate-go/internal/dto"
)

// Fixture catalogs mirroring the small fixed sets the real backend owns.
var (
	seedTypes = []domain.TransactionTypeRef{
		{TransactionTypeID: "tt-expense", Name: "Expense", Color: "#E74C3C"},
		{TransactionTypeID: "tt-income", Name: "Income", Color: "#2ECC71", IsIncome: true},
		{TransactionTypeID: "tt-loan-given", Name: "Loan Given", Color: "#3498DB"},
		{TransactionTypeID: "tt-loan-taken", Name: "Loan Taken", Color: "#9B59B6"},
	}
	seedCategories = []domain.CategoryRef{
		{CategoryID: "cat-food", Name: "Food", Icon: "noodles"},
		{CategoryID: "cat-transport", Name: "Transport", Icon: "bus"},
		{CategoryID: "cat-salary", Name: "Salary", Icon: "briefcase"},
		{CategoryID: "cat-bills", Name: "Bills", Icon: "receipt"},
	}
	seedSources = []domain.MoneySourceRef{
		{MoneySourceID: "ms-cash", Name: "Cash", Icon: "wallet"},
		{MoneySourceID: "ms-bank", Name: "Main Bank", Icon: "bank"},
	}
)

type userRecord struct {
	UserID       string
	Email        string
	PasswordHash string
}

// Store is the stub server's in-memory state: one fixture user set and each
// user's transactions, kept sorted newest-first so list pages come straight
// off the slice.
type Store struct {
	mu    sync.RWMutex
	users map[string]userRecord           // keyed by email
	txns  map[string][]domain.Transaction // keyed by user id
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]userRecord),
		txns:  make(map[string][]domain.Transaction),
	}
}

// AddUser registers a user with a bcrypt-hashed password and returns the
// generated user id.
func (s *Store) AddUser(email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	userID := uuid.NewString()
	s.mu.Lock()
	s.users[email] = userRecord{UserID: userID, Email: email, PasswordHash: string(hash)}
	s.mu.Unlock()
	return userID, nil
}

// Authenticate checks credentials and returns the user id on success.
func (s *Store) Authenticate(email, password string) (string, bool) {
	s.mu.RLock()
	rec, ok := s.users[email]
	s.mu.RUnlock()
	if !ok {
		return "", false
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		return "", false
	}
	return rec.UserID, true
}

// Seed populates n transactions for the user, spread backwards in time a few
// hours apart so multiple date buckets appear.
func (s *Store) Seed(userID string, n int) {
	now := time.Now().UTC().Truncate(time.Minute)
	txns := make([]domain.Transaction, n)
	for i := 0; i < n; i++ {
		ts := now.Add(-time.Duration(i) * 7 * time.Hour)
		tt := seedTypes[i%len(seedTypes)]
		txns[i] = domain.Transaction{
			TransactionID:   uuid.NewString(),
			TransactionType: tt,
			MoneySource:     seedSources[i%len(seedSources)],
			Category:        seedCategories[i%len(seedCategories)],
			Amount:          decimal.NewFromInt(int64(5+i%20) * 10),
			TransactionDate: ts,
			Description:     fmt.Sprintf("seeded %s #%d", tt.Name, i+1),
			AuditFields:     domain.AuditFields{CreatedAt: ts, UpdatedAt: ts},
		}
	}
	s.mu.Lock()
	s.txns[userID] = txns
	s.mu.Unlock()
}

// Add inserts a transaction keeping newest-first order and returns it.
func (s *Store) Add(userID string, txn domain.Transaction) domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.txns[userID], txn)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].TransactionDate.After(list[j].TransactionDate)
	})
	s.txns[userID] = list
	return txn
}

// LookupRefs resolves catalog references by id.
func (s *Store) LookupRefs(typeID, sourceID, categoryID string) (domain.TransactionTypeRef, domain.MoneySourceRef, domain.CategoryRef, error) {
	var tt domain.TransactionTypeRef
	var ms domain.MoneySourceRef
	var cat domain.CategoryRef
	found := false
	for _, t := range seedTypes {
		if t.TransactionTypeID == typeID {
			tt, found = t, true
			break
		}
	}
	if !found {
		return tt, ms, cat, fmt.Errorf("unknown transaction type %q", typeID)
	}
	found = false
	for _, m := range seedSources {
		if m.MoneySourceID == sourceID {
			ms, found = m, true
			break
		}
	}
	if !found {
		return tt, ms, cat, fmt.Errorf("unknown money source %q", sourceID)
	}
	found = false
	for _, c := range seedCategories {
		if c.CategoryID == categoryID {
			cat, found = c, true
			break
		}
	}
	if !found {
		return tt, ms, cat, fmt.Errorf("unknown category %q", categoryID)
	}
	return tt, ms, cat, nil
}

// List applies the optional filters and returns one 1-based page plus the
// filtered total.
func (s *Store) List(userID string, params dto.ListTransactionsParams) dto.ListTransactionsResponse {
	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = dto.DefaultPageSize
	}

	s.mu.RLock()
	all := s.txns[userID]
	filtered := make([]domain.Transaction, 0, len(all))
	for _, txn := range all {
		if params.TransactionTypeID != "" && txn.TransactionType.TransactionTypeID != params.TransactionTypeID {
			continue
		}
		if params.CategoryID != "" && txn.Category.CategoryID != params.CategoryID {
			continue
		}
		if params.MoneySourceID != "" && txn.MoneySource.MoneySourceID != params.MoneySourceID {
			continue
		}
		if params.StartDate != nil && txn.TransactionDate.Before(*params.StartDate) {
			continue
		}
		if params.EndDate != nil && !txn.TransactionDate.Before(params.EndDate.AddDate(0, 0, 1)) {
			continue
		}
		filtered = append(filtered, txn)
	}
	s.mu.RUnlock()

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	items := make([]domain.Transaction, end-start)
	copy(items, filtered[start:end])
	return dto.ListTransactionsResponse{
		TotalCount:   len(filtered),
		Page:         page,
		PageSize:     pageSize,
		Transactions: items,
	}
}
