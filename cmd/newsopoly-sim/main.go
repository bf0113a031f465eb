package main

import (
	"fmt"
	"log/slog"
	mathrand "math/rand"
	"os"
	"time"

	"newsopoly/internal/config"
	"newsopoly/internal/game"
)

// Runs an all-computer game to completion without timers. Useful for
// balance checks and as a smoke test of the whole rule set.
func main() {
	config.LoadDotenv()
	cfg := config.LoadSimFromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	seats := make([]game.Seat, 0, cfg.Seats)
	for i := 0; i < cfg.Seats; i++ {
		seats = append(seats, game.Seat{Name: fmt.Sprintf("Bot %d", i+1), Computer: true})
	}

	g, err := game.New(seats, game.Options{
		Rand:   mathrand.New(mathrand.NewSource(seed)),
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	steps := g.Scheduler().Drain(cfg.MaxSteps)

	snap := g.Snapshot()
	fmt.Printf("seed=%d steps=%d turns=%d\n", seed, steps, snap.TurnCount)
	if snap.Winner == nil {
		fmt.Println("no winner (step cap reached)")
		os.Exit(1)
	}
	fmt.Printf("winner=%s reason=%q\n", snap.Winner.Name, snap.Winner.Reason)
	for _, p := range snap.Players {
		status := "alive"
		if !p.IsAlive {
			status = "out"
		}
		fmt.Printf("  %-8s cash=%-6d net=%-6d %s\n", p.Name, p.Cash, p.NetWorth, status)
	}
}
