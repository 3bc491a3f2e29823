package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"cobra/internal/game"
)

func TestIsAllowedOrigin(t *testing.T) {
	extra := []string{"https://spectate.example"}

	tests := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:5173", true},
		{"http://127.0.0.1:3000", true},
		{"https://spectate.example", true},
		{"https://evil.example", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsAllowedOrigin(tt.origin, extra); got != tt.want {
			t.Errorf("IsAllowedOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

// TestWebSocketBroadcast connects a spectator and waits for a state push
func TestWebSocketBroadcast(t *testing.T) {
	store := game.NewSnapshotStore()
	store.Publish(testSnapshot())

	hub := NewWebSocketHub(nil, nil)
	go hub.Run()
	hub.StartBroadcastLoop(store, 10*time.Millisecond)
	defer hub.Stop()

	ts := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	var msg struct {
		Event string        `json:"event"`
		Data  game.Snapshot `json:"data"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Invalid message %s: %v", data, err)
	}
	if msg.Event != "game:state" || msg.Data.RoundID != "round-1" {
		t.Errorf("Unexpected message: %s", data)
	}

	// Spectator input is ignored, not an error
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"key":"left"}`)); err != nil {
		t.Errorf("Write: %v", err)
	}
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	hub := NewWebSocketHub(nil, nil)
	go hub.Run()
	defer hub.Stop()

	ts := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer ts.Close()

	header := http.Header{}
	header.Set("Origin", "https://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), header)
	if err == nil {
		t.Fatal("Expected handshake to fail")
	}
	if resp != nil && resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", resp.StatusCode)
	}
}

// TestWebSocketSendDropsFailedClient breaks one of two spectators and
// checks a broadcast still reaches the other and frees the broken slot.
func TestWebSocketSendDropsFailedClient(t *testing.T) {
	hub := NewWebSocketHub(nil, nil)
	go hub.Run()
	defer hub.Stop()

	ts := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	clients := make([]*websocket.Conn, 2)
	for i := range clients {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			t.Fatalf("Dial: %v", err)
		}
		defer conn.Close()
		clients[i] = conn
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("Expected 2 clients, got %d", hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.mu.RLock()
	var broken *websocket.Conn
	for conn := range hub.clients {
		broken = conn
		break
	}
	hub.mu.RUnlock()
	broken.Close()

	if got := hub.send([]byte(`{"event":"game:state"}`)); got != 1 {
		t.Fatalf("Expected 1 client after the failed write, got %d", got)
	}
	if got := hub.ClientCount(); got != 1 {
		t.Errorf("ClientCount = %d, want 1", got)
	}
	if got := hub.wsLimiter.GetConnectionCount("127.0.0.1"); got != 1 {
		t.Errorf("Expected the broken slot to be released, %d still held", got)
	}

	received := 0
	for _, conn := range clients {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		if _, data, err := conn.ReadMessage(); err == nil && strings.Contains(string(data), "game:state") {
			received++
		}
	}
	if received != 1 {
		t.Errorf("Expected exactly the healthy spectator to receive, got %d", received)
	}
}
