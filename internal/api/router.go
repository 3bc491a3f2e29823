package api

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"cobra/internal/config"
	"cobra/internal/game"
)

// SnapshotSource provides the latest published game snapshot.
// game.SnapshotStore satisfies it; tests use a fixed snapshot.
type SnapshotSource interface {
	// Load returns the latest snapshot, or nil before the first publish
	Load() *game.Snapshot
}

// LeaderboardSource provides the best finished rounds.
type LeaderboardSource interface {
	Top(n int) []game.LeaderboardEntry
}

// FrameRenderer draws a snapshot as PNG.
type FrameRenderer interface {
	EncodePNG(w io.Writer, snap *game.Snapshot) error
}

// RouterConfig contains all dependencies needed to construct the HTTP router.
//
// Example usage in tests:
//
//	cfg := api.RouterConfig{
//	    Source: store,
//	    RateLimitConfig: &api.RateLimitConfig{
//	        RequestsPerSecond: 1000, // High limit for tests
//	        Burst:             1000,
//	    },
//	}
//	router := api.NewRouter(cfg)
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	// Source provides snapshots (required)
	Source SnapshotSource

	// Renderer serves /api/frame.png. If nil the endpoint returns 404.
	Renderer FrameRenderer

	// Leaderboard serves /api/leaderboard. If nil the endpoint returns 404.
	Leaderboard LeaderboardSource

	// Board and TickRate are reported by /api/config
	Board    config.BoardConfig
	TickRate int

	// RateLimiter is an optional pre-configured rate limiter.
	// If nil, a new one will be created using RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig is optional configuration for the rate limiter.
	// Only used if RateLimiter is nil. If both are nil, uses DefaultRateLimitConfig.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins is an optional list of allowed CORS origins.
	// If nil, only localhost origins are allowed.
	CORSOrigins []string

	// DisableLogging disables the request logger middleware (useful for benchmarks).
	DisableLogging bool
}

// routerHandlers holds the handler functions for the router.
type routerHandlers struct {
	source      SnapshotSource
	renderer    FrameRenderer
	leaderboard LeaderboardSource
	board       config.BoardConfig
	tickRate    int
}

// NewRouter constructs the HTTP router with all middleware and routes.
// Every route is read-only; spectators cannot steer the snake.
//
// NewRouter opens no listeners. Only the rate limiter's cleanup goroutine
// is started, and that can be avoided by passing RateLimiter.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware - Order matters!
	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(requestMetrics)

	// Rate limiting (BEFORE CORS to reject early and save CPU)
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	h := &routerHandlers{
		source:      cfg.Source,
		renderer:    cfg.Renderer,
		leaderboard: cfg.Leaderboard,
		board:       cfg.Board,
		tickRate:    cfg.TickRate,
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.handleGetState)
		r.Get("/config", h.handleGetConfig)
		r.Get("/frame.png", h.handleGetFrame)
		r.Get("/leaderboard", h.handleGetLeaderboard)
	})

	r.Get("/health", h.handleHealth)

	return r
}

// requestMetrics records latency and status per route pattern.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// Route pattern keeps label cardinality bounded
		endpoint := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				endpoint = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RecordRequest(r.Method, endpoint, status, time.Since(start))
	})
}
