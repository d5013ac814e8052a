package websocket

import (
	"log"
	"net/http"

	"edumaster/models"
	"edumaster/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// In production, adjust the CheckOrigin function to allow only trusted origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ClientMessage is what a dashboard may send over the socket
type ClientMessage struct {
	Type string      `json:"type"`
	View models.View `json:"view,omitempty"`
}

// ViewWebSocketHandler streams live events to a session and accepts view
// selections from it.
func ViewWebSocketHandler(hub *Hub, views *services.ViewSelector) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Query("session")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session parameter"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade error: %v", err)
			return
		}

		client := &Client{
			Conn:      conn,
			ID:        uuid.NewString(),
			SessionID: sessionID,
		}
		hub.Register(client)
		defer hub.Unregister(client)

		reply(client, map[string]interface{}{
			"type":      "connected",
			"sessionId": sessionID,
			"view":      views.Current(sessionID),
		})

		for {
			var msg ClientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("View WebSocket error: %v", err)
				}
				break
			}

			switch msg.Type {
			case "selectView":
				if err := views.Select(sessionID, msg.View); err != nil {
					reply(client, gin.H{"type": "error", "error": err.Error()})
				}
			case "ping":
				reply(client, gin.H{"type": "pong"})
			default:
				reply(client, gin.H{"type": "error", "error": "Unknown message type"})
			}
		}
	}
}

// reply writes a direct message to one client, logging failed writes.
func reply(client *Client, v interface{}) {
	if err := client.SafeWriteJSON(v); err != nil {
		log.Printf("Error writing to view client %s: %v", client.ID, err)
	}
}
