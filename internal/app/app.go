// Package app wires the engine to its supporting services: event log,
// metrics, snapshot store, debug server and spectator server. Frontends
// in cmd/ own the event loop and call into App from it.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"cobra/internal/api"
	"cobra/internal/config"
	"cobra/internal/game"
	"cobra/internal/render"
)

// App holds one game session and the services around it.
type App struct {
	Config      config.AppConfig
	Engine      *game.Engine
	Store       *game.SnapshotStore
	Leaderboard *game.Leaderboard
	Metrics     *api.GameMetrics

	spectator *api.Server
}

// New creates the engine, starts the event log if configured and
// publishes the first snapshot. No listeners are opened until Start.
func New(cfg config.AppConfig) (*App, error) {
	engine, err := game.NewEngine(game.EngineConfig{
		Board: game.Board{Cols: cfg.Board.Cols, Rows: cfg.Board.Rows},
		Seed:  cfg.Game.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	leaderboard := game.NewLeaderboard(game.DefaultLeaderboardSize)

	engine.SetCallbacks(
		func(score int) { api.RecordFoodEaten() },
		func(snap *game.Snapshot) {
			api.RecordRoundFinished(snap.Won)
			leaderboard.Record(snap)
		},
		func(roundID string) { api.RecordRoundStarted() },
	)
	api.RecordRoundStarted()

	if cfg.EventLog.Path != "" {
		if err := engine.StartEventLog(cfg.EventLog.Path); err != nil {
			log.Printf("⚠️ Event log disabled: %v", err)
		} else {
			log.Printf("📝 Event log: %s", cfg.EventLog.Path)
		}
	}

	a := &App{
		Config:      cfg,
		Engine:      engine,
		Store:       game.NewSnapshotStore(),
		Leaderboard: leaderboard,
		Metrics:     &api.GameMetrics{EventLogStats: engine.GetEventLogStats},
	}
	a.Store.Publish(engine.Snapshot())

	log.Printf("🎮 Board %dx%d at %d TPS, seed %d", cfg.Board.Cols, cfg.Board.Rows, cfg.Game.TickRate, engine.Seed())
	return a, nil
}

// Start launches the optional debug and spectator servers. Failures are
// logged; the game runs without them.
func (a *App) Start() {
	if err := api.StartDebugServer(a.Config.Debug, a.Engine.GetEventLogStats); err != nil {
		log.Printf("⚠️ Debug server disabled: %v", err)
	}

	if !a.Config.Spectator.Enabled {
		return
	}

	renderer, err := render.NewRenderer(a.Config.Board)
	if err != nil {
		log.Printf("⚠️ Frame rendering disabled: %v", err)
	}

	cfg := api.ServerConfig{
		ListenAddr:  a.Config.Spectator.ListenAddr,
		Source:      a.Store,
		Leaderboard: a.Leaderboard,
		Board:       a.Config.Board,
		TickRate:    a.Config.Game.TickRate,
		CORSOrigins: a.Config.Spectator.CORSOrigins,
	}
	if renderer != nil {
		cfg.Renderer = renderer
	}
	a.spectator = api.NewServer(cfg)

	go func() {
		if err := a.spectator.Start(); err != nil {
			log.Printf("⚠️ %v", err)
		}
	}()
}

// HandleKey applies a key press and publishes the result if it changed
// anything.
func (a *App) HandleKey(key game.Key) bool {
	if !a.Engine.HandleKey(key) {
		return false
	}
	a.Store.Publish(a.Engine.Snapshot())
	return true
}

// Tick advances the engine once, publishes and records metrics.
func (a *App) Tick() *game.Snapshot {
	start := time.Now()
	a.Engine.Advance()
	elapsed := time.Since(start)

	snap := a.Engine.Snapshot()
	a.Store.Publish(snap)
	a.Metrics.ObserveTick(elapsed, snap)
	return snap
}

// Current returns the latest published snapshot.
func (a *App) Current() *game.Snapshot {
	return a.Store.Load()
}

// TickInterval returns the time between ticks.
func (a *App) TickInterval() time.Duration {
	return time.Second / time.Duration(a.Config.Game.TickRate)
}

// Shutdown stops the spectator server and flushes the event log.
func (a *App) Shutdown(ctx context.Context) {
	if a.spectator != nil {
		if err := a.spectator.Stop(ctx); err != nil {
			log.Printf("⚠️ %v", err)
		}
	}
	a.Engine.StopEventLog()
}
