package services

import (
	"context"

	"github.com/namnm309/finmate-go/internal/dto"
)

// TransactionEventHandler is invoked once per server-signalled mutation of
// one of the authenticated user's transactions.
type TransactionEventHandler func(event dto.TransactionEvent)

// RealtimeSubscriberSvc maintains one persistent connection per authenticated
// session and re-exposes the server's transaction mutation signal as a single
// callback. Reconnection is the subscriber's own concern, not the caller's.
type RealtimeSubscriberSvc interface {
	// Start opens the connection and begins dispatching events to the
	// handler registered at construction. It returns once the connection
	// loop is running; the loop stops when ctx is cancelled or Close is
	// called.
	Start(ctx context.Context) error

	// Close tears down the connection loop and waits for it to exit.
	Close() error
}
