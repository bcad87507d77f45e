package notify

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/drinkph/portal-go/logger"
)

// Event is the wire shape pushed to connected portal clients.
type Event struct {
	Type      string    `json:"type"`
	ProjectID string    `json:"project_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub broadcasts events to every connected websocket. Writes are best
// effort; a failed connection is dropped.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

func (h *Hub) Notify(event, subjectID, message string) {
	evt := Event{
		Type:      event,
		ProjectID: subjectID,
		Message:   message,
		Timestamp: time.Now(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(evt); err != nil {
			logger.Warn("websocket write failed, dropping connection: %v", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}
