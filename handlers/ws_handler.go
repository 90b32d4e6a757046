package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"

	"editorial/middleware"
	"editorial/models"
	"editorial/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketHandler streams moderation events to signed-in admins.
type WebSocketHandler struct {
	hubService *services.HubService
	upgrader   websocket.Upgrader
}

// NewWebSocketHandler accepts same-host origins plus allowedOrigins.
func NewWebSocketHandler(hubService *services.HubService, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return &WebSocketHandler{
		hubService: hubService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := allowed[origin]; ok {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && u.Host == r.Host
			},
		},
	}
}

// HandleWebSocket godoc
// @Summary Moderation event stream
// @Description Upgrades to a websocket that receives comment, guest post and contact events.
// @Tags realtime
// @Security CookieAuth
// @Failure 401 {object} map[string]string
// @Router /admin/ws [get]
func (wh *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	adminID := middleware.AdminIDFromContext(c)
	if adminID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := wh.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := models.NewClient(wh.hubService.GetHub(), conn, adminID)
	log.Printf("WebSocket connected for admin %s (client %s)", adminID, client.ID)

	client.Hub.Register <- client
	go wh.writePump(client)
	go wh.readPump(client)
}

// readPump only answers client_connect; moderation traffic is server to client.
func (wh *WebSocketHandler) readPump(client *models.Client) {
	defer func() {
		client.Hub.Unregister <- client
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected close error for client %s: %v", client.ID, err)
			}
			return
		}

		var wsMessage models.WSMessage
		if err := json.Unmarshal(message, &wsMessage); err != nil {
			log.Printf("Error unmarshaling WebSocket message from client %s: %v", client.ID, err)
			continue
		}

		switch wsMessage.Type {
		case models.EventClientConnect:
			wh.hubService.Reply(client, models.WSMessage{
				Type: models.EventClientConnected,
				Data: map[string]string{"client_id": client.ID},
			})
		default:
			log.Printf("Unknown message type '%s' from client %s (admin %s)", wsMessage.Type, client.ID, client.AdminID)
		}
	}
}

func (wh *WebSocketHandler) writePump(client *models.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// one frame per event so clients can JSON.parse each message
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Error writing to client %s: %v", client.ID, err)
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Error sending ping to client %s: %v", client.ID, err)
				return
			}
		}
	}
}
