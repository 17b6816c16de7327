package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestWebsocketStatusStream(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	defer close(done)
	go hub.Run(done)

	ts := httptest.NewServer(NewRouter(NewSession(nil), hub))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("initial frame: %v", err)
	}
	if msg.Type != "status" {
		t.Fatalf("initial frame type = %q, want status", msg.Type)
	}
	var status StatusResponse
	if err := json.Unmarshal(msg.Payload, &status); err != nil {
		t.Fatalf("initial payload: %v", err)
	}
	if status.MoveCount != 0 {
		t.Fatalf("initial move count = %d, want 0", status.MoveCount)
	}

	// request_status round-trips through the read loop.
	if err := conn.WriteJSON(wsMessage{Type: "request_status"}); err != nil {
		t.Fatalf("request_status: %v", err)
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("requested frame: %v", err)
	}
	if msg.Type != "status" {
		t.Fatalf("requested frame type = %q, want status", msg.Type)
	}

	// A state change on the REST surface reaches the stream as a
	// broadcast frame.
	if code := postJSON(t, ts.URL+"/api/move", apiMove{X: 7, Y: 7}, nil); code != http.StatusOK {
		t.Fatalf("move status = %d", code)
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("broadcast frame: %v", err)
	}
	if err := json.Unmarshal(msg.Payload, &status); err != nil {
		t.Fatalf("broadcast payload: %v", err)
	}
	if status.MoveCount != 1 {
		t.Fatalf("broadcast move count = %d, want 1", status.MoveCount)
	}
}
