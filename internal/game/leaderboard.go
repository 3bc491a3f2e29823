package game

import (
	"sort"
	"sync"
	"time"
)

// DefaultLeaderboardSize is how many finished rounds a leaderboard keeps.
const DefaultLeaderboardSize = 10

// RoundResult is the outcome of one finished round.
type RoundResult struct {
	RoundID     string    `json:"roundId"`
	Score       int       `json:"score"`
	SnakeLength int       `json:"snakeLength"`
	Ticks       uint64    `json:"ticks"`
	Won         bool      `json:"won"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// LeaderboardEntry is a RoundResult with its 1-indexed rank.
type LeaderboardEntry struct {
	RoundResult
	Rank int `json:"rank"`
}

// Leaderboard keeps the best finished rounds of a session.
// Rounds rank by score, then by fewer ticks, then by who finished first.
// Safe for concurrent use: the dispatcher records while the spectator
// server reads.
type Leaderboard struct {
	mu       sync.RWMutex
	entries  []RoundResult // Sorted best first
	capacity int
	played   int
}

// NewLeaderboard creates a leaderboard holding up to capacity rounds.
func NewLeaderboard(capacity int) *Leaderboard {
	if capacity <= 0 {
		capacity = DefaultLeaderboardSize
	}
	return &Leaderboard{capacity: capacity}
}

// Record adds a finished round. Snapshots of running rounds are ignored.
func (lb *Leaderboard) Record(snap *Snapshot) {
	if snap == nil || !snap.GameOver {
		return
	}

	result := RoundResult{
		RoundID:     snap.RoundID,
		Score:       snap.Score,
		SnakeLength: len(snap.Snake),
		Ticks:       snap.Tick,
		Won:         snap.Won,
		FinishedAt:  snap.Timestamp,
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.played++

	i := sort.Search(len(lb.entries), func(i int) bool {
		return ranksBefore(result, lb.entries[i])
	})
	if i >= lb.capacity {
		return
	}

	lb.entries = append(lb.entries, RoundResult{})
	copy(lb.entries[i+1:], lb.entries[i:])
	lb.entries[i] = result

	if len(lb.entries) > lb.capacity {
		lb.entries = lb.entries[:lb.capacity]
	}
}

// ranksBefore reports whether a beats b. Ties keep insertion order.
func ranksBefore(a, b RoundResult) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Ticks < b.Ticks
}

// Top returns up to n entries, best first. n <= 0 returns all of them.
func (lb *Leaderboard) Top(n int) []LeaderboardEntry {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	if n <= 0 || n > len(lb.entries) {
		n = len(lb.entries)
	}

	result := make([]LeaderboardEntry, n)
	for i := 0; i < n; i++ {
		result[i] = LeaderboardEntry{RoundResult: lb.entries[i], Rank: i + 1}
	}
	return result
}

// Best returns the top round, if any round has finished.
func (lb *Leaderboard) Best() (RoundResult, bool) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	if len(lb.entries) == 0 {
		return RoundResult{}, false
	}
	return lb.entries[0], true
}

// Played returns how many rounds have been recorded, ranked or not.
func (lb *Leaderboard) Played() int {
	lb.mu.RLock()
	defer lb.mu.RUnlock()
	return lb.played
}

// Clear removes all entries.
func (lb *Leaderboard) Clear() {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.entries = nil
	lb.played = 0
}
