package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/namnm309/finmate-go/internal/core/domain"
	portssvc "github.com/namnm309/finmate-go/internal/core/ports/services"
	"github.com/namnm309/finmate-go/internal/dto"
)

// Copy shown when the visible list is empty, distinguishing an active search
// with no hits from a feed that has nothing loaded at all.
const (
	emptyMsgNoTransactions = "No transactions yet"
	emptyMsgNoSearchHits   = "No transactions match your search"
)

// FeedService maintains a monotonically-growing, paginated, locally-searchable
// view of the user's transactions. It guarantees at most one fetch in flight
// at a time and exactly one initial population per instance, no matter how
// often the owning screen regains focus.
//
// State is owned by one screen instance; a remount is modelled by creating a
// fresh FeedService (or calling Reset). The in-flight guard is deliberately
// separate from the Loading flag: Loading is what the presentation layer
// reads, the guard is what serializes fetches.
type FeedService struct {
	txnSvc   portssvc.TransactionReaderSvc
	logger   *slog.Logger
	pageSize int

	inFlight atomic.Bool

	mu           sync.Mutex
	transactions []domain.Transaction
	page         int
	totalCount   int
	hasMore      bool
	loading      bool
	searchQuery  string
	loadedOnce   bool
	err          error
}

// FeedOption customizes a FeedService.
type FeedOption func(*FeedService)

// WithPageSize overrides the default page size of dto.DefaultPageSize.
func WithPageSize(n int) FeedOption {
	return func(f *FeedService) {
		if n > 0 {
			f.pageSize = n
		}
	}
}

func NewFeedService(txnSvc portssvc.TransactionReaderSvc, logger *slog.Logger, opts ...FeedOption) *FeedService {
	f := &FeedService{
		txnSvc:   txnSvc,
		logger:   logger,
		pageSize: dto.DefaultPageSize,
		page:     1,
		hasMore:  true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// HandleFocus is the initial-load trigger. The first call per instance resets
// the cursor to page 1 and performs the only automatic full fetch; every
// later call is a no-op, so revisiting the screen does not refetch.
// An initial-fetch failure is surfaced through Err; pagination failures are
// not (see LoadMore).
func (f *FeedService) HandleFocus(ctx context.Context) {
	f.mu.Lock()
	if f.loadedOnce {
		f.mu.Unlock()
		return
	}
	f.loadedOnce = true
	f.page = 1
	f.mu.Unlock()

	if err := f.FetchPage(ctx, 1, false); err != nil {
		f.mu.Lock()
		f.err = err
		f.mu.Unlock()
	}
}

// LoadMore advances the cursor by one page and appends the result. It only
// proceeds when no fetch is in flight and more pages remain; a call made
// while a fetch is running is dropped, not queued. A failed fetch rolls the
// cursor back and degrades silently: the accumulated list stays intact and
// no error state is raised.
func (f *FeedService) LoadMore(ctx context.Context) {
	f.mu.Lock()
	if f.loading || !f.hasMore {
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	if !f.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer f.inFlight.Store(false)

	f.mu.Lock()
	f.page++
	next := f.page
	f.mu.Unlock()

	if err := f.fetch(ctx, next, true); err != nil {
		f.mu.Lock()
		f.page--
		f.mu.Unlock()
		f.logger.Warn("load more failed, keeping accumulated feed",
			slog.Int("page", next), slog.String("error", err.Error()))
	}
}

// FetchPage fetches one page. When append is false the result replaces the
// accumulated list, otherwise it is concatenated after it. If another fetch
// is in flight the call is a silent no-op. No de-duplication is performed:
// if the server's dataset mutates between pages, duplicates or gaps are
// possible and accepted.
func (f *FeedService) FetchPage(ctx context.Context, page int, appendResults bool) error {
	if !f.inFlight.CompareAndSwap(false, true) {
		return nil
	}
	defer f.inFlight.Store(false)

	return f.fetch(ctx, page, appendResults)
}

// fetch performs the network call. Callers must hold the in-flight guard.
func (f *FeedService) fetch(ctx context.Context, page int, appendResults bool) error {
	f.mu.Lock()
	f.loading = true
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
	}()

	resp, err := f.txnSvc.ListTransactions(ctx, dto.ListTransactionsParams{
		Page:     page,
		PageSize: f.pageSize,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch transactions page %d: %w", page, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if appendResults {
		f.transactions = append(f.transactions, resp.Transactions...)
	} else {
		f.transactions = make([]domain.Transaction, len(resp.Transactions))
		copy(f.transactions, resp.Transactions)
	}
	f.totalCount = resp.TotalCount
	f.hasMore = len(resp.Transactions) == f.pageSize && page*f.pageSize < resp.TotalCount
	f.err = nil
	return nil
}

// SetSearchQuery updates the free-text filter. Purely local: no network call,
// and only pages already fetched are searchable.
func (f *FeedService) SetSearchQuery(query string) {
	f.mu.Lock()
	f.searchQuery = query
	f.mu.Unlock()
}

// Transactions returns a snapshot of the accumulated, unfiltered list.
func (f *FeedService) Transactions() []domain.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Transaction, len(f.transactions))
	copy(out, f.transactions)
	return out
}

// Visible returns the accumulated list filtered by the current search query.
func (f *FeedService) Visible() []domain.Transaction {
	f.mu.Lock()
	txns := f.transactions
	query := f.searchQuery
	f.mu.Unlock()
	return domain.FilterByQuery(txns, query)
}

// Groups returns the visible transactions bucketed by calendar date,
// newest date first.
func (f *FeedService) Groups() []domain.TransactionGroup {
	return domain.GroupByDate(f.Visible())
}

// EmptyMessage returns the copy to show when Visible is empty.
func (f *FeedService) EmptyMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.transactions) > 0 && f.searchQuery != "" {
		return emptyMsgNoSearchHits
	}
	return emptyMsgNoTransactions
}

// Reset clears all feed state including the initial-load guard, modelling a
// full screen remount.
func (f *FeedService) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactions = nil
	f.page = 1
	f.totalCount = 0
	f.hasMore = true
	f.searchQuery = ""
	f.loadedOnce = false
	f.err = nil
}

func (f *FeedService) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *FeedService) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

func (f *FeedService) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

func (f *FeedService) TotalCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.totalCount
}

func (f *FeedService) SearchQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchQuery
}

// Err reports the surfaced initial-fetch failure, if any. Pagination
// failures never set it.
func (f *FeedService) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}
