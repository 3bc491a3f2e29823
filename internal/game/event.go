package game

import (
	"encoding/json"
	"time"
)

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeTick              // Tick boundary
	EventTypeDirection
	EventTypeFoodEaten
	EventTypeFoodSpawned
	EventTypeGameOver
	EventTypeWin
	EventTypeRestart
)

// EventVersion for backwards compatibility in replay
const EventVersion uint8 = 1

// Event sources, used for per-source rate limiting
const (
	SourceClock = "clock"
	SourceInput = "input"
)

// Event is the core event structure for the event log
type Event struct {
	Version   uint8           `json:"version"`   // Schema version
	Type      EventType       `json:"type"`      // Event type
	Timestamp int64           `json:"timestamp"` // Unix nano
	Sequence  uint64          `json:"sequence"`  // Monotonic sequence
	RoundID   string          `json:"roundId"`   // Round this occurred in
	TickNum   uint64          `json:"tickNum"`   // Tick this occurred in
	Source    string          `json:"source"`    // Clock or input
	Payload   json.RawMessage `json:"payload"`   // JSON-encoded payload
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeTick:
		return "tick"
	case EventTypeDirection:
		return "direction"
	case EventTypeFoodEaten:
		return "food_eaten"
	case EventTypeFoodSpawned:
		return "food_spawned"
	case EventTypeGameOver:
		return "game_over"
	case EventTypeWin:
		return "win"
	case EventTypeRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// MarshalText encodes the type by name so the JSONL log is readable.
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Typed payloads for different event types

// TickPayload contains tick boundary information
type TickPayload struct {
	Head        Position  `json:"head"`
	Direction   Direction `json:"direction"`
	SnakeLength int       `json:"snakeLength"`
}

// DirectionPayload records an accepted direction change
type DirectionPayload struct {
	From Direction `json:"from"`
	To   Direction `json:"to"`
}

// FoodPayload records an eaten or freshly spawned food cell
type FoodPayload struct {
	Position Position `json:"position"`
	Score    int      `json:"score"`
}

// GameOverPayload contains the end-of-round details
type GameOverPayload struct {
	CrashPoint  Position `json:"crashPoint"`
	Score       int      `json:"score"`
	SnakeLength int      `json:"snakeLength"`
	Won         bool     `json:"won"`
}

// RestartPayload contains the new round's starting state
type RestartPayload struct {
	PreviousRoundID string   `json:"previousRoundId"`
	Start           Position `json:"start"`
	Food            Position `json:"food"`
}

// EncodePayload marshals a payload to JSON bytes
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, roundID string, tickNum uint64, source string, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		RoundID:   roundID,
		TickNum:   tickNum,
		Source:    source,
		Payload:   EncodePayload(payload),
	}
}
