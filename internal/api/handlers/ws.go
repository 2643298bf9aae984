package handlers

import (
	"net/http"

	ws "go-drive-api/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler upgrades the connection and keeps it registered until
// the client goes away. Writes come from the notification manager.
func WebSocketHandler(c *gin.Context) {
	userID := currentUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &ws.Client{UserID: userID, Conn: conn}
	manager := ws.GetManager()
	manager.RegisterClient(client)

	defer func() {
		manager.UnregisterClient(client)
		conn.Close()
	}()

	// Drain the connection; the read loop ends when the client disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
