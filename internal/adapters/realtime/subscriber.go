package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/oauth2"

	portssvc "github.com/namnm309/finmate-go/internal/core/ports/services"
	"github.com/namnm309/finmate-go/internal/dto"
)

const (
	initialReconnectWait = time.Second
	maxReconnectWait     = 30 * time.Second
)

// Subscriber maintains one websocket connection to the notification channel
// and invokes the handler once per transaction mutation signalled by the
// server. The server assigns the per-user group from the bearer token sent
// on dial. Reconnects use doubling backoff capped at maxReconnectWait and
// are not visible to the handler.
type Subscriber struct {
	url     string
	tokens  oauth2.TokenSource
	handler portssvc.TransactionEventHandler
	logger  *slog.Logger
	dialer  *websocket.Dialer

	startOnce sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

var _ portssvc.RealtimeSubscriberSvc = (*Subscriber)(nil)

func NewSubscriber(url string, tokens oauth2.TokenSource, handler portssvc.TransactionEventHandler, logger *slog.Logger) *Subscriber {
	return &Subscriber{
		url:     url,
		tokens:  tokens,
		handler: handler,
		logger:  logger,
		dialer:  websocket.DefaultDialer,
		done:    make(chan struct{}),
	}
}

// Start launches the connection loop. Safe to call once per Subscriber.
func (s *Subscriber) Start(ctx context.Context) error {
	var err error
	started := false
	s.startOnce.Do(func() {
		started = true
		runCtx, cancel := context.WithCancel(ctx)
		s.cancel = cancel
		go s.run(runCtx)
	})
	if !started {
		err = fmt.Errorf("subscriber already started")
	}
	return err
}

// Close stops the connection loop and waits for it to exit.
func (s *Subscriber) Close() error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	<-s.done
	return nil
}

func (s *Subscriber) run(ctx context.Context) {
	defer close(s.done)

	wait := initialReconnectWait
	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := s.dial(ctx)
		if err != nil {
			s.logger.Warn("Realtime connection failed",
				slog.String("error", err.Error()),
				slog.Duration("retry_in", wait))
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			if wait *= 2; wait > maxReconnectWait {
				wait = maxReconnectWait
			}
			continue
		}

		wait = initialReconnectWait
		s.logger.Info("Realtime channel connected")
		s.readLoop(ctx, conn)
	}
}

func (s *Subscriber) dial(ctx context.Context) (*websocket.Conn, error) {
	tok, err := s.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain bearer token: %w", err)
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+tok.AccessToken)

	conn, resp, err := s.dialer.DialContext(ctx, s.url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: status %d: %w", s.url, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("dial %s: %w", s.url, err)
	}
	return conn, nil
}

// readLoop dispatches events until the connection breaks or ctx is cancelled.
func (s *Subscriber) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	// Unblock ReadJSON when the context is cancelled.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = conn.Close()
		case <-stop:
		}
	}()

	for {
		var event dto.TransactionEvent
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() == nil {
				s.logger.Warn("Realtime channel dropped", slog.String("error", err.Error()))
			}
			return
		}
		s.handler(event)
	}
}
