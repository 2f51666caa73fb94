package main

import (
	"fmt"

	"github.com/blaisecz/wellness-forecast/internal/config"
	"github.com/blaisecz/wellness-forecast/internal/logger"
	"github.com/blaisecz/wellness-forecast/internal/seed"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	log := logger.WithComponent("seed")

	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := seed.Run(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	fmt.Println("\nSample metric IDs for testing:")
	for _, m := range seed.Metrics() {
		fmt.Printf("  %-15s %s\n", m.ID, m.Name)
	}
}
