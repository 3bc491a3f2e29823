package game

import (
	"sync/atomic"
	"time"
)

// Snapshot is an immutable copy of engine state for rendering.
// Segments are copied on creation so the engine's slices never leak.
type Snapshot struct {
	Sequence  uint64    `json:"sequence"`  // Monotonic sequence for ordering
	Timestamp time.Time `json:"timestamp"` // When snapshot was created
	RoundID   string    `json:"roundId"`
	Tick      uint64    `json:"tick"` // Advances applied this round

	Board         Board      `json:"board"`
	Snake         []Position `json:"snake"` // Head first
	Food          Position   `json:"food"`
	Direction     Direction  `json:"direction"`
	LastDirection Direction  `json:"lastDirection"`
	Score         int        `json:"score"`

	GameOver   bool     `json:"gameOver"`
	Won        bool     `json:"won"`
	CrashPoint Position `json:"crashPoint"` // Cell the head tried to enter; valid when GameOver && !Won
}

// Head returns the front segment.
func (s *Snapshot) Head() Position {
	return s.Snake[0]
}

// Occupies reports whether p is one of the snake's segments.
func (s *Snapshot) Occupies(p Position) bool {
	for _, seg := range s.Snake {
		if seg == p {
			return true
		}
	}
	return false
}

// SnapshotStore hands the latest snapshot from the dispatcher goroutine
// to readers on other goroutines (spectator server, websocket hub).
// Published snapshots must not be mutated afterwards.
type SnapshotStore struct {
	current  atomic.Pointer[Snapshot]
	sequence uint64 // atomic - monotonic sequence
}

// NewSnapshotStore creates an empty store
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Publish stamps snap with the next sequence number and makes it visible
// to readers.
func (s *SnapshotStore) Publish(snap *Snapshot) {
	snap.Sequence = atomic.AddUint64(&s.sequence, 1)
	s.current.Store(snap)
}

// Load returns the latest published snapshot.
// Returns nil if nothing has been published yet.
func (s *SnapshotStore) Load() *Snapshot {
	return s.current.Load()
}
