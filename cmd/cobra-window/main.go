package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/joho/godotenv"

	"cobra/internal/app"
	"cobra/internal/config"
	"cobra/internal/game"
	"cobra/internal/render"
)

var (
	backgroundColor = rl.NewColor(0x22, 0x22, 0x22, 0xff)
	snakeColor      = rl.NewColor(0xff, 0xff, 0xff, 0xff)
	foodColor       = rl.NewColor(0xff, 0x00, 0x00, 0xff)
)

const (
	scoreFontSize  = 12
	bannerFontSize = 32
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 No .env file found, using environment variables only")
	}

	cfg := config.Load()

	seed := flag.Int64("seed", cfg.Game.Seed, "RNG seed for food placement (0 = time based)")
	tickRate := flag.Int("tick-rate", cfg.Game.TickRate, "Simulation ticks per second")
	flag.Parse()

	cfg.Game.Seed = *seed
	if *tickRate > 0 {
		cfg.Game.TickRate = *tickRate
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	a.Start()

	rl.InitWindow(int32(cfg.Board.PixelWidth()), int32(cfg.Board.PixelHeight()), "Cobra")
	rl.SetTargetFPS(60)

	font := rl.GetFontDefault()
	customFont := cfg.Board.FontPath != ""
	if customFont {
		font = rl.LoadFont(cfg.Board.FontPath)
		log.Printf("🔤 Font: %s", cfg.Board.FontPath)
	}

	tick := a.TickInterval().Seconds()
	var acc float64

	// ESC is the raylib exit key
	for !rl.WindowShouldClose() {
		for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
			a.HandleKey(keyFromRaylib(key))
		}

		acc += float64(rl.GetFrameTime())
		for acc >= tick {
			acc -= tick
			a.Tick()
		}

		draw(a.Store.Load(), cfg.Board, font)
	}

	if customFont {
		rl.UnloadFont(font)
	}
	rl.CloseWindow()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.Shutdown(ctx)
	log.Println("👋 Goodbye!")
}

func keyFromRaylib(key int32) game.Key {
	switch key {
	case rl.KeyUp:
		return game.KeyUp
	case rl.KeyDown:
		return game.KeyDown
	case rl.KeyLeft:
		return game.KeyLeft
	case rl.KeyRight:
		return game.KeyRight
	case rl.KeySpace:
		return game.KeySpace
	}
	return game.KeyOther
}

func draw(snap *game.Snapshot, board config.BoardConfig, font rl.Font) {
	tile := int32(board.TileSize)

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	for _, seg := range snap.Snake {
		rl.DrawRectangle(int32(seg.Col)*tile, int32(seg.Row)*tile, tile, tile, snakeColor)
	}
	if !snap.Won {
		rl.DrawRectangle(int32(snap.Food.Col)*tile, int32(snap.Food.Row)*tile, tile, tile, foodColor)
	}

	rl.DrawTextEx(font, fmt.Sprintf("Score: %d", snap.Score), rl.NewVector2(8, 8), scoreFontSize, 1, snakeColor)

	if banner := render.Banner(snap); banner != "" {
		size := rl.MeasureTextEx(font, banner, bannerFontSize, 1)
		pos := rl.NewVector2(
			(float32(board.PixelWidth())-size.X)/2,
			(float32(board.PixelHeight())-size.Y)/2,
		)
		rl.DrawTextEx(font, banner, pos, bannerFontSize, 1, snakeColor)
	}

	rl.EndDrawing()
}
