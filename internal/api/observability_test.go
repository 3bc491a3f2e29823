package api

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func metricValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 1)
	c.Collect(ch)

	var m dto.Metric
	if err := (<-ch).Write(&m); err != nil {
		t.Fatal(err)
	}
	if m.Gauge != nil {
		return m.GetGauge().GetValue()
	}
	return m.GetCounter().GetValue()
}

func TestLoopbackAddr(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"127.0.0.1:6060", "127.0.0.1:6060"},
		{"localhost:7070", "localhost:7070"},
		{"[::1]:6060", "[::1]:6060"},
		{"0.0.0.0:6060", "127.0.0.1:6060"},
		{"10.1.2.3:9000", "127.0.0.1:9000"},
	}

	for _, tt := range tests {
		got, err := loopbackAddr(tt.addr)
		if err != nil {
			t.Fatalf("loopbackAddr(%q): %v", tt.addr, err)
		}
		if got != tt.want {
			t.Errorf("loopbackAddr(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}

	if _, err := loopbackAddr("no-port"); err == nil {
		t.Error("Expected error for address without port")
	}
}

func TestGameMetricsObserveTick(t *testing.T) {
	m := &GameMetrics{
		EventLogStats: func() map[string]interface{} {
			return map[string]interface{}{"total": uint64(42), "dropped": uint64(2)}
		},
	}

	m.ObserveTick(time.Millisecond, testSnapshot())

	if got := metricValue(t, scoreGauge); got != 1 {
		t.Errorf("Expected score gauge 1, got %v", got)
	}
	if got := metricValue(t, snakeLength); got != 2 {
		t.Errorf("Expected length gauge 2, got %v", got)
	}
	if got := metricValue(t, eventLogDropped); got != 2 {
		t.Errorf("Expected dropped gauge 2, got %v", got)
	}
}

func TestRoundCounters(t *testing.T) {
	before := metricValue(t, roundsFinished.WithLabelValues("won"))
	RecordRoundFinished(true)
	if got := metricValue(t, roundsFinished.WithLabelValues("won")); got != before+1 {
		t.Errorf("Expected won counter %v, got %v", before+1, got)
	}

	beforeFood := metricValue(t, foodEaten)
	RecordFoodEaten()
	if got := metricValue(t, foodEaten); got != beforeFood+1 {
		t.Errorf("Expected food counter %v, got %v", beforeFood+1, got)
	}
}
