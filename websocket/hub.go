package websocket

import (
	"log"
	"sync"

	"edumaster/models"

	"github.com/gorilla/websocket"
)

// Client is one dashboard connected for live updates
type Client struct {
	Conn      *websocket.Conn
	ID        string
	SessionID string
	writeMu   sync.Mutex
}

// SafeWriteJSON safely writes JSON data to the client's WebSocket connection
func (c *Client) SafeWriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

// Hub fans store and session events out to connected clients
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	log.Printf("View client registered for session %s. Total clients: %d", client.SessionID, len(h.clients))
}

// Unregister removes a client and closes its connection
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	if client.Conn != nil {
		client.Conn.Close()
	}
	log.Printf("View client unregistered. Total clients: %d", len(h.clients))
}

// Broadcast delivers event to every client, or only to the clients of
// event.SessionID when it is set.
func (h *Hub) Broadcast(event models.Event) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		if event.SessionID == "" || client.SessionID == event.SessionID {
			targets = append(targets, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range targets {
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Error broadcasting %s event to client: %v", event.Type, err)
			// Remove client if write fails
			go h.Unregister(client)
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
