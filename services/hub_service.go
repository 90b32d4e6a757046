package services

import (
	"encoding/json"
	"log"

	"editorial/models"
)

// HubService owns the admin socket hub. All map access happens inside Run.
type HubService struct {
	hub *models.Hub
}

func NewHubService() *HubService {
	hub := models.NewHub()
	service := &HubService{hub: hub}

	go service.Run()

	return service
}

func (h *HubService) GetHub() *models.Hub {
	return h.hub
}

func (h *HubService) Run() {
	for {
		select {
		case client := <-h.hub.Register:
			h.registerClient(client)

		case client := <-h.hub.Unregister:
			h.unregisterClient(client)

		case message := <-h.hub.Broadcast:
			h.broadcastToAll(message)

		case out := <-h.hub.Direct:
			h.sendTo(out.Client, out.Message)
		}
	}
}

// Notify pushes a moderation event to every connected admin. It never blocks
// the caller; events are dropped when the broadcast queue is full.
func (h *HubService) Notify(eventType string, data interface{}) {
	messageBytes, err := json.Marshal(models.WSMessage{Type: eventType, Data: data})
	if err != nil {
		log.Printf("Error marshaling WebSocket message: %v", err)
		return
	}

	select {
	case h.hub.Broadcast <- messageBytes:
	default:
		log.Printf("WebSocket broadcast queue full, dropping %s event", eventType)
	}
}

// Reply queues a message for one client. It is safe to call from the
// client's own read loop.
func (h *HubService) Reply(client *models.Client, msg models.WSMessage) {
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling WebSocket message: %v", err)
		return
	}

	select {
	case h.hub.Direct <- models.Outbound{Client: client, Message: messageBytes}:
	default:
		log.Printf("WebSocket reply queue full, dropping %s for client %s", msg.Type, client.ID)
	}
}

func (h *HubService) registerClient(client *models.Client) {
	h.hub.Clients[client] = true
	log.Printf("Client registered for admin: %s", client.AdminID)
}

func (h *HubService) unregisterClient(client *models.Client) {
	if _, ok := h.hub.Clients[client]; !ok {
		return
	}
	h.dropClient(client)
	log.Printf("Client unregistered for admin: %s", client.AdminID)
}

func (h *HubService) broadcastToAll(message []byte) {
	for client := range h.hub.Clients {
		select {
		case client.Send <- message:
		default:
			h.dropClient(client)
		}
	}
}

func (h *HubService) sendTo(client *models.Client, message []byte) {
	if _, ok := h.hub.Clients[client]; !ok {
		return
	}
	select {
	case client.Send <- message:
	default:
		h.dropClient(client)
	}
}

func (h *HubService) dropClient(client *models.Client) {
	delete(h.hub.Clients, client)
	close(client.Send)
}
