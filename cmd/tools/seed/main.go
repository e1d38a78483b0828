// Seeds the local database with realistic traffic so the dashboard has
// something to show during development.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/karloscodes/cartridge"

	"complymetrics/internal/config"
	"complymetrics/internal/database"
	"complymetrics/internal/seeder"
)

func main() {
	eventCount := flag.Int("events", 5000, "number of page views to generate")
	windowDays := flag.Int("days", 30, "spread events over this many days")
	flag.Parse()

	cfg := config.GetConfig()
	if cfg.IsProduction() {
		log.Fatal("refusing to seed a production database")
	}

	logger := cartridge.NewLogger(cfg, nil)
	dbManager := database.NewDBManager(cfg, logger)
	if err := dbManager.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := dbManager.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	s := seeder.NewSeeder(dbManager, logger, *eventCount, *windowDays)
	if err := s.Run(context.Background()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
