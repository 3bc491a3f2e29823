package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEventLogRequiresStart(t *testing.T) {
	el := NewEventLog()
	if el.EmitSimple(EventTypeTick, "round", 1, SourceClock, TickPayload{}) {
		t.Error("Emit should fail before Start")
	}
}

func TestEventLogWritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")

	el := NewEventLog()
	if err := el.Start(path); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 10; i++ {
		el.EmitSimple(EventTypeTick, "round-1", uint64(i), SourceClock, TickPayload{SnakeLength: 1})
	}
	el.Stop()
	el.Stop() // double stop is safe

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 10 {
		t.Fatalf("Expected 10 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"type":"tick"`) {
		t.Errorf("Expected event type by name, got %s", lines[0])
	}

	if el.EmitSimple(EventTypeTick, "round-1", 11, SourceClock, nil) {
		t.Error("Emit should fail after Stop")
	}
}

func TestEventLogSourceRateLimit(t *testing.T) {
	el := NewEventLog()
	if err := el.Start(""); err != nil {
		t.Fatal(err)
	}
	defer el.Stop()

	accepted := 0
	for i := 0; i < MaxEventsPerSource; i++ {
		if el.EmitSimple(EventTypeDirection, "round", 0, SourceInput, DirectionPayload{From: Up, To: Left}) {
			accepted++
		}
	}

	if accepted >= MaxEventsPerSource {
		t.Errorf("Expected a burst of input events to be limited, accepted %d", accepted)
	}
	if el.GetDroppedCount() == 0 {
		t.Error("Expected dropped events to be counted")
	}

	// A flood on one source must not block another
	if !el.EmitSimple(EventTypeTick, "round", 1, SourceClock, TickPayload{}) {
		t.Error("Clock events should still be accepted")
	}
}

func TestEventLogStats(t *testing.T) {
	el := NewEventLog()
	if err := el.Start(""); err != nil {
		t.Fatal(err)
	}
	el.EmitSimple(EventTypeWin, "round", 3, SourceClock, GameOverPayload{Won: true})
	el.Stop()

	stats := el.GetStats()
	if stats["total"].(uint64) != 1 {
		t.Errorf("Expected total 1, got %v", stats["total"])
	}
	if stats["pending"].(uint64) != 0 {
		t.Errorf("Stop should drain pending events, got %v", stats["pending"])
	}
	if stats["running"].(bool) {
		t.Error("Expected running=false after Stop")
	}
}

// TestEventLogInputFloodKeepsClockBudget floods the input source far past
// the global limit; ticks must keep their full burst afterwards.
func TestEventLogInputFloodKeepsClockBudget(t *testing.T) {
	el := NewEventLog()
	if err := el.Start(""); err != nil {
		t.Fatal(err)
	}
	defer el.Stop()

	for i := 0; i < 10*MaxEventsPerSec; i++ {
		el.EmitSimple(EventTypeDirection, "round", 0, SourceInput, DirectionPayload{From: Up, To: Left})
	}
	floodAccepted := el.GetTotalCount()

	clockBurst := MaxEventsPerSource/10 - 1
	for i := 0; i < clockBurst; i++ {
		if !el.EmitSimple(EventTypeTick, "round", uint64(i), SourceClock, TickPayload{}) {
			t.Fatalf("Tick %d dropped after an input flood (%d input events accepted)", i, floodAccepted)
		}
	}

	if got := el.GetTotalCount(); got != floodAccepted+uint64(clockBurst) {
		t.Errorf("Expected %d accepted events, got %d", floodAccepted+uint64(clockBurst), got)
	}
}
