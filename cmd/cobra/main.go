package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"cobra/internal/app"
	"cobra/internal/config"
	"cobra/internal/tui"
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

	// The terminal belongs to the TUI, so logs go to a file
	logPath := os.Getenv("COBRA_LOG")
	if logPath == "" {
		logPath = "cobra.log"
	}
	logFile, err := tea.LogToFile(logPath, "cobra")
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	log.Println("🐍 ================================")
	log.Println("🐍  COBRA")
	log.Println("🐍 ================================")

	a, err := app.New(cfg)
	if err != nil {
		log.Printf("❌ %v", err)
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	a.Start()

	if _, err := tea.NewProgram(tui.NewModel(a), tea.WithAltScreen()).Run(); err != nil {
		log.Printf("❌ TUI error: %v", err)
	}

	log.Println("🛑 Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.Shutdown(ctx)

	snap := a.Store.Load()
	fmt.Printf("Final score: %d (round %s, seed %d)\n", snap.Score, snap.RoundID, a.Engine.Seed())
	log.Println("👋 Goodbye!")
}
