package api

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestIPRateLimiterPerIP(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 3, CleanupInterval: time.Hour})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.1.1.1") {
			t.Fatalf("Request %d within burst rejected", i)
		}
	}
	if rl.Allow("1.1.1.1") {
		t.Error("Expected rejection after burst")
	}
	if !rl.Allow("2.2.2.2") {
		t.Error("Another IP should have its own budget")
	}

	stats := rl.GetStats()
	if stats["allowed"] != 4 || stats["rejected"] != 1 {
		t.Errorf("Unexpected stats: %v", stats)
	}
}

func TestIPRateLimiterCleanup(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 1, CleanupInterval: time.Hour})
	defer rl.Stop()

	rl.Allow("1.1.1.1")
	rl.cleanup(time.Now().Add(time.Minute))

	if _, ok := rl.limiters.Load("1.1.1.1"); ok {
		t.Error("Idle limiter should be removed")
	}
	if !rl.Allow("1.1.1.1") {
		t.Error("A fresh limiter should allow the request")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.7:4444"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if got := clientIP(req, false); got != "192.0.2.7" {
		t.Errorf("Untrusted: expected peer address, got %s", got)
	}
	if got := clientIP(req, true); got != "203.0.113.9" {
		t.Errorf("Trusted: expected first forwarded address, got %s", got)
	}

	req.Header.Del("X-Forwarded-For")
	req.Header.Set("X-Real-IP", " 198.51.100.2 ")
	if got := clientIP(req, true); got != "198.51.100.2" {
		t.Errorf("Expected X-Real-IP, got %s", got)
	}
}

func TestWebSocketRateLimiter(t *testing.T) {
	wrl := NewWebSocketRateLimiter(2)

	if !wrl.Allow("a") || !wrl.Allow("a") {
		t.Fatal("First two connections should be allowed")
	}
	if wrl.Allow("a") {
		t.Error("Third connection should be rejected")
	}

	wrl.Release("a")
	if wrl.GetConnectionCount("a") != 1 {
		t.Errorf("Expected 1 open connection, got %d", wrl.GetConnectionCount("a"))
	}
	if !wrl.Allow("a") {
		t.Error("Released slot should be reusable")
	}

	wrl.Release("a")
	wrl.Release("a")
	wrl.Release("a") // extra release is harmless
	if wrl.GetConnectionCount("a") != 0 {
		t.Errorf("Expected 0 open connections, got %d", wrl.GetConnectionCount("a"))
	}
	if wrl.GetStats()["rejected"] != 1 {
		t.Errorf("Expected 1 rejection, got %v", wrl.GetStats())
	}
}
