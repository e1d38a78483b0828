package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"complymetrics/internal"
)

const defaultShutdownTimeout = 30 * time.Second

func main() {
	app, err := internal.NewApp()
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	log.Println("Running database migrations...")
	if err := app.DBManager.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed")

	log.Println("Starting application...")
	if err := app.StartAsync(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
	log.Println("Application started")

	waitForShutdownSignal(app)
}

func waitForShutdownSignal(app *internal.Application) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	var sig os.Signal
	for {
		sig = <-sigChan
		// SIGHUP reopens the GeoLite2 database after a refresh download.
		if sig == syscall.SIGHUP {
			if app.Locator != nil {
				if err := app.Locator.Reload(); err != nil {
					log.Printf("GeoLite2 reload failed: %v", err)
				}
			}
			continue
		}
		break
	}
	log.Printf("Received signal: %v", sig)

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	log.Println("Initiating graceful shutdown...")
	if err := app.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	if app.Locator != nil {
		app.Locator.Close()
	}
	log.Println("Server shutdown complete")
}
