package sync

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub fans watchlist events out to connected websocket clients.
// Connections are registered under a user id and only receive events
// for that user; watchlists have no cross-user visibility.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*websocket.Conn]struct{}
}

type Stats struct {
	WSClients int `json:"ws_clients"`
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) Add(uid string, ws *websocket.Conn) {
	h.mu.Lock()
	if h.clients[uid] == nil {
		h.clients[uid] = make(map[*websocket.Conn]struct{})
	}
	h.clients[uid][ws] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(uid string, ws *websocket.Conn) {
	h.mu.Lock()
	if conns := h.clients[uid]; conns != nil {
		delete(conns, ws)
		if len(conns) == 0 {
			delete(h.clients, uid)
		}
	}
	h.mu.Unlock()
	_ = ws.Close()
}

// Broadcast sends v to every connection registered under uid. Dead
// connections are dropped on write failure.
func (h *Hub) Broadcast(uid string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.clients[uid]
	for ws := range conns {
		_ = ws.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = ws.Close()
			delete(conns, ws)
		}
	}
	if len(conns) == 0 {
		delete(h.clients, uid)
	}
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for _, conns := range h.clients {
		n += len(conns)
	}
	return Stats{WSClients: n}
}
