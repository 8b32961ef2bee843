package handler

import (
	"log"
	"net/http"
	"time"

	"memoria/backend/internal/hub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS godoc
// @Summary      Open the real-time channel
// @Description  Upgrades the connection to a WebSocket and streams live events (ReceiveNotification, ReceiveMessage) for the authenticated user.
// @Tags         realtime
// @Security     BearerAuth
// @Success      101
// @Failure      401  {object}  ErrorResponse
// @Router       /ws [get]
func ServeWS(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Error upgrading to websocket: %v", err)
		return
	}

	client := make(hub.Client, 256)
	hub.GlobalHub.Subscribe(viewerID.(uint), client)

	go writePump(conn, client)
	go readPump(conn, viewerID.(uint), client)
}

// writePump drains the client channel to the socket. Exits when the hub
// closes the channel or a write fails.
func writePump(conn *websocket.Conn, client hub.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-client:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames; the socket is push-only. Its job is to
// notice the peer going away and unsubscribe the client.
func readPump(conn *websocket.Conn, userID uint, client hub.Client) {
	defer hub.GlobalHub.Unsubscribe(userID, client)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
