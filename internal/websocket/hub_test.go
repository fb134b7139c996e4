package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/dukerupert/satpocket/internal/event"
	"github.com/dukerupert/satpocket/internal/model"
)

// mockClient creates a Client with a send channel but no real connection.
func mockClient(hub *Hub) *Client {
	return &Client{
		hub:  hub,
		conn: nil,
		send: make(chan []byte, sendBufferSize),
	}
}

func testHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegisterUnregister(t *testing.T) {
	hub := testHub()

	c1 := mockClient(hub)
	c2 := mockClient(hub)

	hub.Register(c1)
	hub.Register(c2)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	hub.Unregister(c1)

	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected 1 client after unregister, got %d", got)
	}

	hub.Unregister(c2)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestDoubleUnregister(t *testing.T) {
	hub := testHub()
	c := mockClient(hub)
	hub.Register(c)
	hub.Unregister(c)
	// Should not panic
	hub.Unregister(c)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestBroadcastEvent(t *testing.T) {
	hub := testHub()

	c1 := mockClient(hub)
	c2 := mockClient(hub)
	hub.Register(c1)
	hub.Register(c2)

	hub.BroadcastEvent(event.ChoreCompleted{
		Chore: model.Chore{ID: "c1", Title: "Dishes", Reward: 50},
	})

	// Check both clients received the message
	for _, c := range []*Client{c1, c2} {
		select {
		case data := <-c.send:
			var got Message
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Event != "chore:completed" {
				t.Errorf("expected event chore:completed, got %s", got.Event)
			}
			payload, ok := got.Payload.(map[string]any)
			if !ok {
				t.Fatalf("payload is %T, want object", got.Payload)
			}
			chore, ok := payload["chore"].(map[string]any)
			if !ok {
				t.Fatalf("payload chore is %T, want object", payload["chore"])
			}
			if chore["id"] != "c1" || chore["title"] != "Dishes" {
				t.Errorf("chore payload = %v", chore)
			}
		default:
			t.Fatal("client did not receive broadcast")
		}
	}
}

func TestBroadcastFullBufferDropsMessage(t *testing.T) {
	hub := testHub()

	c := &Client{hub: hub, send: make(chan []byte)} // unbuffered, nobody reading
	hub.Register(c)

	// Must not block even though the client cannot accept the message.
	hub.Broadcast(Message{Event: "balance:changed"})

	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected client to remain registered, got %d", got)
	}
}

func TestBroadcastNoClients(t *testing.T) {
	hub := testHub()
	// Should not panic with zero clients
	hub.Broadcast(Message{Event: "store:reset"})
}
