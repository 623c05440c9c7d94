package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Event is the envelope pushed to connected clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	EventChatMessage     = "chat.message"
	EventChatAccepted    = "chat.accepted"
	EventAdoptionDecided = "adoption.decided"
)

// Hub is a process-local registry of open websocket connections keyed by
// user id. It holds no durable state and is rebuilt empty on restart; missed
// events are recovered through the notification endpoints.
type Hub struct {
	mu    sync.RWMutex
	conns map[uuid.UUID]map[*websocket.Conn]*sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[uuid.UUID]map[*websocket.Conn]*sync.Mutex),
	}
}

func (h *Hub) Register(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]*sync.Mutex)
	}
	h.conns[userID][conn] = &sync.Mutex{}
}

func (h *Hub) Unregister(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.conns[userID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
}

// Push delivers an event to every open connection of the user. Delivery is
// best-effort; a write failure drops that connection from the registry.
// Websocket connections allow only one writer at a time, so each write holds
// the per-connection lock taken out at registration.
func (h *Hub) Push(userID uuid.UUID, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	type target struct {
		conn *websocket.Conn
		wmu  *sync.Mutex
	}

	h.mu.RLock()
	set := h.conns[userID]
	targets := make([]target, 0, len(set))
	for conn, wmu := range set {
		targets = append(targets, target{conn: conn, wmu: wmu})
	}
	h.mu.RUnlock()

	for _, t := range targets {
		t.wmu.Lock()
		err := t.conn.WriteMessage(websocket.TextMessage, data)
		t.wmu.Unlock()
		if err != nil {
			h.Unregister(userID, t.conn)
			t.conn.Close()
		}
	}
}

// Online reports whether the user has at least one open connection.
func (h *Hub) Online(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID]) > 0
}
