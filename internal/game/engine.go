package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// EngineConfig configures a new engine.
type EngineConfig struct {
	Board Board
	Seed  int64 // 0 picks a time based seed
}

// Engine owns the snake game state and evolves it one tick at a time.
//
// Engine is not safe for concurrent use. A single dispatcher delivers
// key and tick events in order; other goroutines read published
// snapshots instead of calling the engine.
type Engine struct {
	board Board

	snake         []Position // Head first
	food          Position
	direction     Direction // Applied on the next Advance
	lastDirection Direction // Applied on the previous Advance
	score         int
	gameOver      bool
	won           bool
	crashPoint    Position

	roundID   string
	tickCount uint64
	rounds    int

	// Deterministic RNG for replay consistency
	rng     *rand.Rand
	rngSeed int64

	// Event sourcing for replay and debugging
	eventLog *EventLog

	// Event callbacks
	onFoodEaten func(score int)
	onGameOver  func(snap *Snapshot)
	onRestart   func(roundID string)
}

// NewEngine creates an engine and starts the first round.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Board.Cols < 1 || cfg.Board.Rows < 1 {
		return nil, fmt.Errorf("invalid board %dx%d: both dimensions must be positive", cfg.Board.Cols, cfg.Board.Rows)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		board:    cfg.Board,
		rng:      rand.New(rand.NewSource(seed)),
		rngSeed:  seed,
		eventLog: NewEventLog(),
	}
	e.newRound()

	return e, nil
}

// newRound resets the state to a single segment at the board center
// heading right, with freshly sampled food.
func (e *Engine) newRound() {
	start := e.board.Center()

	e.snake = append(e.snake[:0], start)
	e.direction = Right
	e.lastDirection = Right
	e.score = 0
	e.gameOver = false
	e.won = false
	e.crashPoint = Position{}
	e.tickCount = 0
	e.roundID = uuid.NewString()
	e.rounds++

	food, ok := spawnFood(e.rng, e.board, e.snake)
	if !ok {
		// A 1x1 board is full before the first move
		e.food = start
		e.finish(start, true)
		return
	}
	e.food = food
}

// HandleKey runs a key through MapKey and IsRestartKey and applies the
// result. Returns true if the key changed the engine state.
func (e *Engine) HandleKey(key Key) bool {
	if IsRestartKey(key, e.gameOver) {
		e.HandleRestart()
		return true
	}
	if d, ok := MapKey(key, e.lastDirection); ok {
		e.HandleDirection(d)
		return true
	}
	return false
}

// HandleDirection latches d for the next Advance. The last call before a
// tick wins. Callers validate d with MapKey first.
func (e *Engine) HandleDirection(d Direction) {
	if d == e.direction {
		return
	}

	e.emit(EventTypeDirection, SourceInput, DirectionPayload{From: e.direction, To: d})
	e.direction = d
}

// HandleRestart starts a new round. Ignored while the round is running.
func (e *Engine) HandleRestart() {
	if !e.gameOver {
		return
	}

	previous := e.roundID
	e.newRound()

	log.Printf("🔄 Round %s started (previous %s)", e.roundID, previous)
	e.emit(EventTypeRestart, SourceInput, RestartPayload{
		PreviousRoundID: previous,
		Start:           e.snake[0],
		Food:            e.food,
	})

	if e.onRestart != nil {
		e.onRestart(e.roundID)
	}
}

// Advance runs one simulation step. No-op once the round is over.
func (e *Engine) Advance() {
	if e.gameOver {
		return
	}

	e.tickCount++

	newHead := e.snake[0].Add(e.direction)
	e.lastDirection = e.direction

	ate := newHead == e.food

	// The tail has not moved yet, so entering the current tail cell is a crash
	if !e.board.Contains(newHead) || e.occupies(newHead) {
		e.finish(newHead, false)
		return
	}

	if ate {
		e.snake = append(e.snake, Position{})
		copy(e.snake[1:], e.snake[:len(e.snake)-1])
		e.snake[0] = newHead
		e.score++
	} else {
		copy(e.snake[1:], e.snake[:len(e.snake)-1])
		e.snake[0] = newHead
	}

	e.emit(EventTypeTick, SourceClock, TickPayload{
		Head:        newHead,
		Direction:   e.direction,
		SnakeLength: len(e.snake),
	})

	if !ate {
		return
	}

	e.emit(EventTypeFoodEaten, SourceClock, FoodPayload{Position: newHead, Score: e.score})
	if e.onFoodEaten != nil {
		e.onFoodEaten(e.score)
	}

	food, ok := spawnFood(e.rng, e.board, e.snake)
	if !ok {
		e.finish(newHead, true)
		return
	}
	e.food = food
	e.emit(EventTypeFoodSpawned, SourceClock, FoodPayload{Position: food, Score: e.score})
}

// finish ends the round. crash is the cell the head tried to enter, or
// the final head when the snake filled the board.
func (e *Engine) finish(crash Position, won bool) {
	e.gameOver = true
	e.won = won
	e.crashPoint = crash

	eventType := EventTypeGameOver
	if won {
		eventType = EventTypeWin
		log.Printf("🏆 Round %s won with score %d", e.roundID, e.score)
	} else {
		log.Printf("💀 Round %s over at %s with score %d", e.roundID, crash, e.score)
	}

	e.emit(eventType, SourceClock, GameOverPayload{
		CrashPoint:  crash,
		Score:       e.score,
		SnakeLength: len(e.snake),
		Won:         won,
	})

	if e.onGameOver != nil {
		e.onGameOver(e.Snapshot())
	}
}

func (e *Engine) occupies(p Position) bool {
	for _, seg := range e.snake {
		if seg == p {
			return true
		}
	}
	return false
}

func (e *Engine) emit(eventType EventType, source string, payload interface{}) {
	if e.eventLog == nil || !e.eventLog.Running() {
		return
	}
	e.eventLog.EmitSimple(eventType, e.roundID, e.tickCount, source, payload)
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() *Snapshot {
	snake := make([]Position, len(e.snake))
	copy(snake, e.snake)

	return &Snapshot{
		Timestamp:     time.Now(),
		RoundID:       e.roundID,
		Tick:          e.tickCount,
		Board:         e.board,
		Snake:         snake,
		Food:          e.food,
		Direction:     e.direction,
		LastDirection: e.lastDirection,
		Score:         e.score,
		GameOver:      e.gameOver,
		Won:           e.won,
		CrashPoint:    e.crashPoint,
	}
}

// SetCallbacks sets event callbacks. Any of them may be nil.
func (e *Engine) SetCallbacks(onFoodEaten func(score int), onGameOver func(snap *Snapshot), onRestart func(roundID string)) {
	e.onFoodEaten = onFoodEaten
	e.onGameOver = onGameOver
	e.onRestart = onRestart
}

// LastDirection returns the direction applied on the previous tick.
func (e *Engine) LastDirection() Direction {
	return e.lastDirection
}

// GameOver reports whether the round has ended.
func (e *Engine) GameOver() bool {
	return e.gameOver
}

// Score returns the food eaten this round.
func (e *Engine) Score() int {
	return e.score
}

// Board returns the board dimensions.
func (e *Engine) Board() Board {
	return e.board
}

// Seed returns the RNG seed, for reproducing a session.
func (e *Engine) Seed() int64 {
	return e.rngSeed
}

// RoundID returns the current round identifier.
func (e *Engine) RoundID() string {
	return e.roundID
}

// Rounds returns how many rounds have been started, including the current one.
func (e *Engine) Rounds() int {
	return e.rounds
}

// StartEventLog initializes the event logging system
func (e *Engine) StartEventLog(filePath string) error {
	return e.eventLog.Start(filePath)
}

// StopEventLog gracefully stops the event logging system
func (e *Engine) StopEventLog() {
	e.eventLog.Stop()
}

// GetEventLogStats returns event log statistics for monitoring
func (e *Engine) GetEventLogStats() map[string]interface{} {
	return e.eventLog.GetStats()
}
