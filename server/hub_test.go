package server

import "testing"

func TestPublishRequiresClients(t *testing.T) {
	hub := NewHub()

	hub.Publish(StatusResponse{MoveCount: 1})
	if got := len(hub.broadcastState); got != 0 {
		t.Fatalf("publish with no clients queued %d snapshots, want 0", got)
	}

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(client)
	if !hub.HasClients() {
		t.Fatalf("registered client not counted")
	}
	hub.Publish(StatusResponse{MoveCount: 2})
	if got := len(hub.broadcastState); got != 1 {
		t.Fatalf("publish queued %d snapshots, want 1", got)
	}

	hub.Unregister(client)
	if hub.HasClients() {
		t.Fatalf("unregistered client still counted")
	}
	if _, ok := <-client.send; ok {
		t.Fatalf("unregister left the send channel open")
	}
}
