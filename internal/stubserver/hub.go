package stubserver

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/namnm309/finmate-go/internal/dto"
)

// Hub tracks the websocket connections of each user ("join user group"
// semantics) and fans transaction events out to them.
type Hub struct {
	logger *slog.Logger

	mu    sync.Mutex
	conns map[string]map[*websocket.Conn]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger,
		conns:  make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]struct{})
	}
	h.conns[userID][conn] = struct{}{}
}

func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[userID], conn)
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

// Broadcast sends the event to every connection in the user's group,
// dropping connections that fail to write.
func (h *Hub) Broadcast(userID string, event dto.TransactionEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns[userID] {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Warn("Dropping dead realtime connection",
				slog.String("user_id", userID), slog.String("error", err.Error()))
			conn.Close()
			delete(h.conns[userID], conn)
		}
	}
}
