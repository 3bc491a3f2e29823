package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cobra/internal/config"
)

// BroadcastInterval is how often new snapshots are pushed to spectators.
const BroadcastInterval = 50 * time.Millisecond

// ServerConfig contains the spectator server dependencies.
type ServerConfig struct {
	ListenAddr string

	Source      SnapshotSource    // required
	Renderer    FrameRenderer     // optional, enables /api/frame.png
	Leaderboard LeaderboardSource // optional, enables /api/leaderboard
	Board       config.BoardConfig
	TickRate    int

	CORSOrigins     []string
	RateLimitConfig *RateLimitConfig
}

// Server is the read-only spectator server: JSON state, PNG frames and a
// WebSocket feed of snapshots.
type Server struct {
	source      SnapshotSource
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
	httpServer  *http.Server
}

// NewServer creates a spectator server.
//
// Background workers do NOT start until Start() is called, so tests can
// construct the server and use Router() directly.
func NewServer(cfg ServerConfig) *Server {
	rateLimitCfg := DefaultRateLimitConfig
	if cfg.RateLimitConfig != nil {
		rateLimitCfg = *cfg.RateLimitConfig
	}

	s := &Server{
		source:      cfg.Source,
		rateLimiter: NewIPRateLimiter(rateLimitCfg),
	}
	s.wsHub = NewWebSocketHub(cfg.CORSOrigins, s.rateLimiter.ClientIP)

	var corsOrigins []string
	if len(cfg.CORSOrigins) > 0 {
		corsOrigins = append([]string{"http://localhost:*", "http://127.0.0.1:*"}, cfg.CORSOrigins...)
	}

	s.router = NewRouter(RouterConfig{
		Source:      cfg.Source,
		Renderer:    cfg.Renderer,
		Leaderboard: cfg.Leaderboard,
		Board:       cfg.Board,
		TickRate:    cfg.TickRate,
		RateLimiter: s.rateLimiter,
		CORSOrigins: corsOrigins,
	})
	s.router.Get("/ws", s.wsHub.HandleWebSocket)

	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Start starts the hub and broadcast loop and serves on the configured
// address. It blocks until the server stops; a clean Stop returns nil.
func (s *Server) Start() error {
	go s.wsHub.Run()
	s.wsHub.StartBroadcastLoop(s.source, BroadcastInterval)

	addr := s.httpServer.Addr
	log.Printf("🌐 Spectator server starting on %s", addr)
	log.Printf("👀 State: http://%s/api/state  Frame: http://%s/api/frame.png", addr, addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("spectator server: %w", err)
	}
	return nil
}

// Router returns the HTTP handler for use with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *WebSocketHub {
	return s.wsHub
}

// Stop shuts the listener down gracefully and stops background workers.
func (s *Server) Stop(ctx context.Context) error {
	s.wsHub.Stop()
	s.rateLimiter.Stop()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown spectator server: %w", err)
	}
	log.Println("🛑 Spectator server stopped")
	return nil
}
