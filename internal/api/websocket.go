package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// MaxWSConnectionsTotal is the maximum number of WebSocket connections allowed
	MaxWSConnectionsTotal = 100

	// MaxWSConnectionsPerIP is the maximum WebSocket connections per IP
	MaxWSConnectionsPerIP = 5

	// writeWait bounds a single write to a slow spectator
	writeWait = time.Second
)

// wsClient tracks a WebSocket connection with its source IP
type wsClient struct {
	conn *websocket.Conn
	ip   string
}

// WebSocketHub pushes game snapshots to spectators. Spectators only
// receive; anything they send is discarded.
type WebSocketHub struct {
	clients    map[*websocket.Conn]*wsClient
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *websocket.Conn
	mu         sync.RWMutex

	upgrader       websocket.Upgrader
	allowedOrigins []string
	clientIP       func(r *http.Request) string

	// Connection limiting per IP
	wsLimiter *WebSocketRateLimiter

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewWebSocketHub creates a new hub with connection limiting.
// allowedOrigins extends the always-allowed localhost origins. ipFunc
// resolves client addresses; nil uses the TCP peer address.
func NewWebSocketHub(allowedOrigins []string, ipFunc func(r *http.Request) string) *WebSocketHub {
	if ipFunc == nil {
		ipFunc = func(r *http.Request) string { return clientIP(r, false) }
	}

	h := &WebSocketHub{
		clients:        make(map[*websocket.Conn]*wsClient),
		broadcast:      make(chan []byte, 64),
		register:       make(chan *wsClient),
		unregister:     make(chan *websocket.Conn),
		allowedOrigins: allowedOrigins,
		clientIP:       ipFunc,
		wsLimiter:      NewWebSocketRateLimiter(MaxWSConnectionsPerIP),
		stopChan:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  512,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *WebSocketHub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Non-browser clients send no origin
	if origin == "" || IsAllowedOrigin(origin, h.allowedOrigins) {
		return true
	}

	log.Printf("⚠️ WebSocket connection rejected from origin: %s", origin)
	RecordConnectionRejected("origin")
	return false
}

// Run starts the hub. Returns after Stop.
func (h *WebSocketHub) Run() {
	for {
		select {
		case <-h.stopChan:
			h.mu.Lock()
			for conn, client := range h.clients {
				h.wsLimiter.Release(client.ip)
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			UpdateWSConnections(0)
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.conn] = client
			count := len(h.clients)
			h.mu.Unlock()

			log.Printf("📱 Spectator connected from %s (%d total)", client.ip, count)
			UpdateWSConnections(count)

		case conn := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[conn]; ok {
				// Release the connection slot for this IP
				h.wsLimiter.Release(client.ip)
				delete(h.clients, conn)
				conn.Close()
			}
			count := len(h.clients)
			h.mu.Unlock()

			log.Printf("📱 Spectator disconnected (%d remaining)", count)
			UpdateWSConnections(count)

		case message := <-h.broadcast:
			UpdateWSConnections(h.send(message))
			IncrementWSMessages()
		}
	}
}

// send writes message to every client and drops the ones that fail,
// returning the remaining count. Writes run without holding mu; only Run
// mutates clients, so the copy stays current.
func (h *WebSocketHub) send(message []byte) int {
	h.mu.RLock()
	clients := make([]*wsClient, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	var failed []*wsClient
	for _, client := range clients {
		client.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			failed = append(failed, client)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range failed {
		if _, ok := h.clients[client.conn]; ok {
			h.wsLimiter.Release(client.ip)
			delete(h.clients, client.conn)
			client.conn.Close()
		}
	}
	return len(h.clients)
}

// Stop closes all connections and ends Run and the broadcast loop.
func (h *WebSocketHub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopChan)
	})
}

// Broadcast sends a message to all connected clients
func (h *WebSocketHub) Broadcast(event string, data interface{}) {
	msg := map[string]interface{}{
		"event": event,
		"data":  data,
	}

	jsonBytes, err := json.Marshal(msg)
	if err != nil {
		return
	}

	select {
	case h.broadcast <- jsonBytes:
	default:
		// Channel full, skip (backpressure)
	}
}

// ClientCount returns the number of connected clients
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// StartBroadcastLoop polls source and broadcasts each new snapshot as
// "game:state". Unchanged snapshots are skipped.
func (h *WebSocketHub) StartBroadcastLoop(source SnapshotSource, interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		var lastSeq uint64
		for {
			select {
			case <-h.stopChan:
				return
			case <-ticker.C:
			}

			if h.ClientCount() == 0 {
				continue
			}

			snap := source.Load()
			if snap == nil || snap.Sequence == lastSeq {
				continue
			}
			lastSeq = snap.Sequence

			h.Broadcast("game:state", snap)
		}
	}()
}

// HandleWebSocket handles incoming WebSocket connections with DoS protection
func (h *WebSocketHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Get client IP for rate limiting
	ip := h.clientIP(r)

	// Check total connection limit
	if total := h.ClientCount(); total >= MaxWSConnectionsTotal {
		log.Printf("⚠️ WebSocket connection rejected: total limit reached (%d)", total)
		RecordConnectionRejected("ws_total_limit")
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}

	// Check per-IP connection limit
	if !h.wsLimiter.Allow(ip) {
		log.Printf("⚠️ WebSocket connection rejected from %s: per-IP limit reached", ip)
		RecordConnectionRejected("ws_ip_limit")
		http.Error(w, "Too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		h.wsLimiter.Release(ip) // Release the slot we reserved
		return
	}

	select {
	case h.register <- &wsClient{conn: conn, ip: ip}:
	case <-h.stopChan:
		h.wsLimiter.Release(ip)
		conn.Close()
		return
	}

	// Drain reads so close frames are processed; payloads are ignored
	go func() {
		defer func() {
			select {
			case h.unregister <- conn:
			case <-h.stopChan:
			}
		}()

		conn.SetReadLimit(512)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// IsAllowedOrigin reports whether a browser origin may open a WebSocket.
// Localhost on any port is always allowed.
func IsAllowedOrigin(origin string, allowed []string) bool {
	if origin == "" {
		return false
	}

	if strings.HasPrefix(origin, "http://localhost") || strings.HasPrefix(origin, "http://127.0.0.1") {
		return true
	}

	for _, a := range allowed {
		if origin == a {
			return true
		}
	}
	return false
}
