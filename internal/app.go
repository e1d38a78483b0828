// Package internal wires the application together: config, logging,
// database, geolocation, and the HTTP surface.
package internal

import (
	"fmt"

	"github.com/karloscodes/cartridge"

	v1 "complymetrics/api/v1"
	"complymetrics/internal/config"
	"complymetrics/internal/database"
	"complymetrics/internal/pkg/geoip"
)

// Application wraps cartridge.Application with the app's own DB manager
// and geolocation backend.
type Application struct {
	*cartridge.Application
	DBManager *database.DBManager
	Locator   *geoip.MaxMindLocator
}

// NewApp creates an application instance from the ambient config.
func NewApp() (*Application, error) {
	return NewAppWithConfig(config.GetConfig())
}

// NewAppWithConfig creates an application with the provided config.
func NewAppWithConfig(cfg *config.Config) (*Application, error) {
	logger := cartridge.NewLogger(cfg, nil)

	dbManager := database.NewDBManager(cfg, logger)
	if err := dbManager.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Geolocation is optional: without the GeoLite2 file events are
	// stored with NULL geo fields.
	locator, err := geoip.NewMaxMindLocator(cfg.GeoDBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize geolocation: %w", err)
	}
	if locator != nil {
		v1.SetLocator(locator)
	}

	app, err := cartridge.NewApplication(cartridge.ApplicationOptions{
		Config:         cfg,
		Logger:         logger,
		DBManager:      dbManager,
		RouteMountFunc: MountAppRoutes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return &Application{
		Application: app,
		DBManager:   dbManager,
		Locator:     locator,
	}, nil
}
