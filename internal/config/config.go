// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for board, tick and server settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
	"strings"
)

// =============================================================================
// BOARD CONFIGURATION
// =============================================================================

// BoardConfig holds the grid dimensions and the pixel size of one cell.
// The engine only sees Cols and Rows; TileSize is for pixel renderers.
type BoardConfig struct {
	Cols     int    // Number of columns
	Rows     int    // Number of rows
	TileSize int    // Pixel edge of one cell (pixel = coord * TileSize)
	FontPath string // TTF for pixel renderers; empty uses the built-in font
}

// DefaultBoard returns the classic 32x32 board with 20px tiles.
func DefaultBoard() BoardConfig {
	return BoardConfig{
		Cols:     32,
		Rows:     32,
		TileSize: 20,
	}
}

// PixelWidth returns the rendered board width in pixels.
func (b BoardConfig) PixelWidth() int {
	return b.Cols * b.TileSize
}

// PixelHeight returns the rendered board height in pixels.
func (b BoardConfig) PixelHeight() int {
	return b.Rows * b.TileSize
}

// BoardFromEnv returns board configuration with environment variable overrides.
func BoardFromEnv() BoardConfig {
	cfg := DefaultBoard()

	if c := getEnvInt("COBRA_COLS", 0); c > 0 {
		cfg.Cols = c
	}
	if r := getEnvInt("COBRA_ROWS", 0); r > 0 {
		cfg.Rows = r
	}
	if ts := getEnvInt("COBRA_TILE_SIZE", 0); ts > 0 {
		cfg.TileSize = ts
	}
	if fp := os.Getenv("COBRA_FONT"); fp != "" {
		cfg.FontPath = fp
	}

	return cfg
}

// =============================================================================
// GAME CONFIGURATION
// =============================================================================

// GameConfig holds simulation settings.
type GameConfig struct {
	TickRate int   // Advances per second
	Seed     int64 // RNG seed, 0 means time based
}

// DefaultGame returns the default simulation settings.
func DefaultGame() GameConfig {
	return GameConfig{
		TickRate: 8,
		Seed:     0,
	}
}

// GameFromEnv returns game configuration with environment variable overrides.
func GameFromEnv() GameConfig {
	cfg := DefaultGame()

	if tr := getEnvInt("COBRA_TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}
	if v := os.Getenv("COBRA_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = seed
		}
	}

	return cfg
}

// =============================================================================
// SPECTATOR SERVER CONFIGURATION
// =============================================================================

// SpectatorConfig holds the read-only spectator HTTP server settings.
type SpectatorConfig struct {
	Enabled     bool
	ListenAddr  string
	CORSOrigins []string
}

// DefaultSpectator returns a disabled spectator server bound to localhost.
func DefaultSpectator() SpectatorConfig {
	return SpectatorConfig{
		Enabled:    false,
		ListenAddr: "127.0.0.1:3000",
	}
}

// SpectatorFromEnv returns spectator configuration with environment variable overrides.
// Setting COBRA_SPECTATOR_ADDR enables the server.
func SpectatorFromEnv() SpectatorConfig {
	cfg := DefaultSpectator()

	if addr := os.Getenv("COBRA_SPECTATOR_ADDR"); addr != "" {
		cfg.Enabled = true
		cfg.ListenAddr = addr
	}
	if origins := os.Getenv("COBRA_CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg
}

// =============================================================================
// DEBUG SERVER CONFIGURATION
// =============================================================================

// DebugConfig holds pprof/metrics server settings.
type DebugConfig struct {
	Enabled    bool
	ListenAddr string // MUST stay on localhost
}

// DefaultDebug returns the default debug server configuration.
func DefaultDebug() DebugConfig {
	return DebugConfig{
		Enabled:    false,
		ListenAddr: "127.0.0.1:6060",
	}
}

// DebugFromEnv returns debug configuration with environment variable overrides.
func DebugFromEnv() DebugConfig {
	cfg := DefaultDebug()

	if addr := os.Getenv("COBRA_DEBUG_ADDR"); addr != "" {
		cfg.Enabled = true
		cfg.ListenAddr = addr
	}
	if getEnvBool("COBRA_DEBUG", false) {
		cfg.Enabled = true
	}

	return cfg
}

// =============================================================================
// EVENT LOG CONFIGURATION
// =============================================================================

// EventLogConfig holds the event log settings.
type EventLogConfig struct {
	Path string // Empty disables file output
}

// EventLogFromEnv returns event log configuration with environment variable overrides.
func EventLogFromEnv() EventLogConfig {
	return EventLogConfig{Path: os.Getenv("COBRA_EVENT_LOG")}
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Board     BoardConfig
	Game      GameConfig
	Spectator SpectatorConfig
	Debug     DebugConfig
	EventLog  EventLogConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Board:     BoardFromEnv(),
		Game:      GameFromEnv(),
		Spectator: SpectatorFromEnv(),
		Debug:     DebugFromEnv(),
		EventLog:  EventLogFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}
