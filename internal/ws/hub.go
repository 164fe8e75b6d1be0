package ws

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"ridenbite/internal/model"
)

// Hub pushes admin notifications to connected dashboard sockets. All admins
// share one stream; read state stays in the database.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan *model.AdminNotification
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

// NewHub creates a notification hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan *model.AdminNotification, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// Run processes register/unregister/broadcast until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case n := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(n); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a connected admin socket.
func (h *Hub) Register(conn *websocket.Conn) {
	h.register <- conn
}

// Unregister drops a socket and closes it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.unregister <- conn
}

// Broadcast queues a notification for every connected admin. Never blocks the
// caller; when the buffer is full the push is dropped (clients reconcile via
// the list endpoint).
func (h *Hub) Broadcast(n *model.AdminNotification) {
	select {
	case h.broadcast <- n:
	default:
	}
}
