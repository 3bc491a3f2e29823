package api

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cobra/internal/config"
	"cobra/internal/game"
)

// Metrics with bounded cardinality (no per-round labels)
var (
	// Game engine metrics
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cobra_tick_duration_seconds",
		Help:    "Time spent in one engine advance",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
	})

	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cobra_frame_render_duration_seconds",
		Help:    "Time spent rendering a PNG frame",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	scoreGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cobra_score",
		Help: "Score of the current round",
	})

	snakeLength = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cobra_snake_length",
		Help: "Segments in the current snake",
	})

	roundsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cobra_rounds_started_total",
		Help: "Rounds started, including the first",
	})

	roundsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cobra_rounds_finished_total",
		Help: "Rounds finished by outcome",
	}, []string{"outcome"}) // Bounded: "died", "won"

	foodEaten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cobra_food_eaten_total",
		Help: "Food items eaten across all rounds",
	})

	// Event log metrics
	eventLogTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cobra_event_log_events",
		Help: "Events accepted by the event log",
	})

	eventLogDropped = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cobra_event_log_dropped",
		Help: "Events dropped due to rate limiting or buffer full",
	})

	// DoS detection metrics - use ONLY bounded label values
	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connection_rejected_total",
		Help: "Connections rejected by rate limiter or origin check",
	}, []string{"reason"}) // Bounded: "rate_limit", "origin", "ws_total_limit", "ws_ip_limit"

	// HTTP metrics with bounded labels
	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"}) // endpoint is the route pattern, not the full URL

	requestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	// WebSocket metrics
	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "websocket_connections_active",
		Help: "Currently active WebSocket connections",
	})

	wsMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "websocket_messages_total",
		Help: "Total WebSocket broadcasts sent",
	})
)

// StartDebugServer starts the internal observability server in the
// background. eventStats, if non-nil, is served at /debug/events.
// CRITICAL: This MUST bind to loopback to prevent pprof-based DoS
func StartDebugServer(cfg config.DebugConfig, eventStats func() map[string]interface{}) error {
	if !cfg.Enabled {
		return nil
	}

	addr, err := loopbackAddr(cfg.ListenAddr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()

	// pprof endpoints for profiling
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if eventStats != nil {
		mux.HandleFunc("/debug/events", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, eventStats())
		})
	}

	go func() {
		log.Printf("📊 Debug server starting on %s", addr)
		log.Printf("   - pprof:   http://%s/debug/pprof/", addr)
		log.Printf("   - metrics: http://%s/metrics", addr)

		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("⚠️ Debug server error: %v", err)
		}
	}()

	return nil
}

// loopbackAddr forces addr onto 127.0.0.1 unless COBRA_DEBUG_EXTERNAL=true.
func loopbackAddr(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("invalid debug address %q: %w", addr, err)
	}

	if host == "localhost" {
		return addr, nil
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return addr, nil
	}
	if os.Getenv("COBRA_DEBUG_EXTERNAL") == "true" {
		return addr, nil
	}

	log.Println("⚠️ Debug server forced to localhost for security")
	return net.JoinHostPort("127.0.0.1", port), nil
}

// GameMetrics feeds engine state into the Prometheus gauges. It is
// called by the dispatcher after every tick.
type GameMetrics struct {
	// EventLogStats returns the engine's event log stats (optional)
	EventLogStats func() map[string]interface{}
}

// ObserveTick records tick timing and the current round's gauges.
func (m *GameMetrics) ObserveTick(d time.Duration, snap *game.Snapshot) {
	RecordTick(d)
	scoreGauge.Set(float64(snap.Score))
	snakeLength.Set(float64(len(snap.Snake)))

	if m.EventLogStats == nil {
		return
	}
	stats := m.EventLogStats()
	total, _ := stats["total"].(uint64)
	dropped, _ := stats["dropped"].(uint64)
	UpdateEventLogStats(total, dropped)
}

// RecordTick records tick timing for metrics
func RecordTick(duration time.Duration) {
	tickDuration.Observe(duration.Seconds())
}

// RecordRender records render timing for metrics
func RecordRender(duration time.Duration) {
	renderDuration.Observe(duration.Seconds())
}

// RecordRoundStarted counts a new round
func RecordRoundStarted() {
	roundsStarted.Inc()
}

// RecordRoundFinished counts a finished round by outcome
func RecordRoundFinished(won bool) {
	outcome := "died"
	if won {
		outcome = "won"
	}
	roundsFinished.WithLabelValues(outcome).Inc()
}

// RecordFoodEaten counts one food item eaten
func RecordFoodEaten() {
	foodEaten.Inc()
}

// UpdateEventLogStats updates event log metrics
func UpdateEventLogStats(total, dropped uint64) {
	eventLogTotal.Set(float64(total))
	eventLogDropped.Set(float64(dropped))
}

// RecordConnectionRejected increments the rejection counter
// reason must be one of: "rate_limit", "origin", "ws_total_limit", "ws_ip_limit"
func RecordConnectionRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}

// RecordRequest records HTTP request metrics
func RecordRequest(method, endpoint string, status int, duration time.Duration) {
	requestLatency.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	requestTotal.WithLabelValues(method, endpoint, http.StatusText(status)).Inc()
}

// UpdateWSConnections updates WebSocket connection count
func UpdateWSConnections(count int) {
	wsConnectionsActive.Set(float64(count))
}

// IncrementWSMessages increments WebSocket message counter
func IncrementWSMessages() {
	wsMessagesTotal.Inc()
}
