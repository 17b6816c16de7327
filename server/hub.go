package server

import (
	"encoding/json"
	"sync"
)

// Hub fans position snapshots out to the connected websocket clients.
type Hub struct {
	mu             sync.Mutex
	clients        map[*Client]struct{}
	broadcastState chan StatusResponse
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		clients:        make(map[*Client]struct{}),
		broadcastState: make(chan StatusResponse, 16),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcastState:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

// Publish enqueues a snapshot for broadcast. Never blocks: a saturated
// hub drops the snapshot, the next state change supersedes it anyway.
// With nobody connected there is nothing to fan out, so the snapshot is
// not queued at all.
func (h *Hub) Publish(status StatusResponse) {
	if !h.HasClients() {
		return
	}
	select {
	case h.broadcastState <- status:
	default:
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
