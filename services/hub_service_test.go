package services

import (
	"encoding/json"
	"testing"
	"time"

	"editorial/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubService_NotifyReachesRegisteredClients(t *testing.T) {
	svc := NewHubService()
	hub := svc.GetHub()

	first := models.NewClient(hub, nil, "admin-1")
	second := models.NewClient(hub, nil, "admin-2")
	hub.Register <- first
	hub.Register <- second

	svc.Notify(models.EventContactSubmitted, map[string]string{"subject": "Hi"})

	for _, client := range []*models.Client{first, second} {
		select {
		case raw := <-client.Send:
			var msg struct {
				Type string            `json:"type"`
				Data map[string]string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, models.EventContactSubmitted, msg.Type)
			assert.Equal(t, "Hi", msg.Data["subject"])
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}

	hub.Unregister <- first
	select {
	case _, open := <-first.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed on unregister")
	}
}

func TestHubService_NotifyWithoutClientsDoesNotBlock(t *testing.T) {
	svc := NewHubService()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			svc.Notify(models.EventCommentSubmitted, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked")
	}
}

func TestHubService_ReplyTargetsOneClient(t *testing.T) {
	svc := NewHubService()
	hub := svc.GetHub()

	target := models.NewClient(hub, nil, "admin-1")
	other := models.NewClient(hub, nil, "admin-1")
	hub.Register <- target
	hub.Register <- other

	svc.Reply(target, models.WSMessage{Type: models.EventClientConnected, Data: map[string]string{"client_id": target.ID}})

	select {
	case raw := <-target.Send:
		assert.Contains(t, string(raw), target.ID)
	case <-time.After(time.Second):
		t.Fatal("reply not delivered")
	}
	assert.Empty(t, other.Send)

	// replies to a departed client are discarded
	hub.Unregister <- target
	svc.Reply(target, models.WSMessage{Type: models.EventClientConnected})
	select {
	case _, open := <-target.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed on unregister")
	}
}

func TestHubService_UnregisterKeepsOtherSocketsOfSameAdmin(t *testing.T) {
	svc := NewHubService()
	hub := svc.GetHub()

	laptop := models.NewClient(hub, nil, "admin-1")
	phone := models.NewClient(hub, nil, "admin-1")
	hub.Register <- laptop
	hub.Register <- phone

	hub.Unregister <- laptop
	hub.Unregister <- laptop

	svc.Notify(models.EventGuestPostSubmitted, "draft")

	select {
	case raw, open := <-phone.Send:
		require.True(t, open)
		assert.Contains(t, string(raw), models.EventGuestPostSubmitted)
	case <-time.After(time.Second):
		t.Fatal("remaining socket missed the event")
	}

	_, open := <-laptop.Send
	assert.False(t, open)
}
