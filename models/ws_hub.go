package models

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	EventCommentSubmitted   = "comment_submitted"
	EventGuestPostSubmitted = "guest_post_submitted"
	EventContactSubmitted   = "contact_submitted"

	EventClientConnect   = "client_connect"
	EventClientConnected = "client_connected"
)

// Hub fans moderation events out to connected admin sockets. Its maps are
// owned by the goroutine running HubService.Run.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
	Direct     chan Outbound
}

// Outbound is a message for a single client.
type Outbound struct {
	Client  *Client
	Message []byte
}

type Client struct {
	ID      string
	Hub     *Hub
	Conn    *websocket.Conn
	Send    chan []byte
	AdminID string
}

type WSMessage struct {
	Type     string      `json:"type"`
	Data     interface{} `json:"data"`
	ClientID string      `json:"client_id,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Direct:     make(chan Outbound, 16),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, adminID string) *Client {
	return &Client{
		ID:      uuid.New().String(),
		Hub:     hub,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		AdminID: adminID,
	}
}
