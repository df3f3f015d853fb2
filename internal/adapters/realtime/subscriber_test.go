package realtime_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/namnm309/finmate-go/internal/adapters/realtime"
	"github.com/namnm309/finmate-go/internal/dto"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func staticTokens(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
}

func TestSubscriber_DeliversEventsToHandler(t *testing.T) {
	upgrader := websocket.Upgrader{}
	gotAuth := make(chan string, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth <- r.Header.Get("Authorization")
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		_ = conn.WriteJSON(dto.TransactionEvent{TransactionID: "txn-1", Action: dto.ActionCreated})
		_ = conn.WriteJSON(dto.TransactionEvent{TransactionID: "txn-2", Action: dto.ActionDeleted})

		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	events := make(chan dto.TransactionEvent, 2)
	sub := realtime.NewSubscriber(wsURL, staticTokens("tok-ws"), func(e dto.TransactionEvent) {
		events <- e
	}, testLogger())

	require.NoError(t, sub.Start(context.Background()))
	defer sub.Close()

	assert.Equal(t, "Bearer tok-ws", <-gotAuth)

	first := waitForEvent(t, events)
	assert.Equal(t, "txn-1", first.TransactionID)
	assert.Equal(t, dto.ActionCreated, first.Action)

	second := waitForEvent(t, events)
	assert.Equal(t, "txn-2", second.TransactionID)
	assert.Equal(t, dto.ActionDeleted, second.Action)
}

func TestSubscriber_ReconnectsAfterDrop(t *testing.T) {
	upgrader := websocket.Upgrader{}
	connects := make(chan struct{}, 4)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		connects <- struct{}{}
		_ = conn.WriteJSON(dto.TransactionEvent{TransactionID: "evt", Action: dto.ActionUpdated})
		conn.Close() // force the client to redial
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	events := make(chan dto.TransactionEvent, 8)
	sub := realtime.NewSubscriber(wsURL, staticTokens("tok"), func(e dto.TransactionEvent) {
		events <- e
	}, testLogger())

	require.NoError(t, sub.Start(context.Background()))
	defer sub.Close()

	// Two connections observed means the subscriber redialed after the drop.
	for i := 0; i < 2; i++ {
		select {
		case <-connects:
		case <-time.After(10 * time.Second):
			t.Fatalf("expected connection %d before timeout", i+1)
		}
	}
	waitForEvent(t, events)
}

func TestSubscriber_CloseStopsLoop(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	sub := realtime.NewSubscriber(wsURL, staticTokens("tok"), func(dto.TransactionEvent) {}, testLogger())

	require.NoError(t, sub.Start(context.Background()))
	time.Sleep(100 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		_ = sub.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}
}

func TestSubscriber_StartTwiceErrors(t *testing.T) {
	sub := realtime.NewSubscriber("ws://127.0.0.1:0/ws", staticTokens("tok"), func(dto.TransactionEvent) {}, testLogger())
	require.NoError(t, sub.Start(context.Background()))
	defer sub.Close()
	assert.Error(t, sub.Start(context.Background()))
}

func waitForEvent(t *testing.T, events <-chan dto.TransactionEvent) dto.TransactionEvent {
	t.Helper()
	select {
	case e := <-events:
		return e
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for realtime event")
		return dto.TransactionEvent{}
	}
}
