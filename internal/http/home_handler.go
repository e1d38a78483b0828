package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"complymetrics/internal/config"
)

// HomeIndexAction serves a small service descriptor at the root so the
// frontend and monitoring can discover the API surface.
func HomeIndexAction(ctx *cartridge.Context) error {
	cfg := config.GetConfig()
	return ctx.JSON(fiber.Map{
		"name": cfg.AppName,
		"endpoints": []string{
			"/x/api/v1/events",
			"/x/api/v1/events/beacon",
			"/api/v1/metrics",
			"/api/v1/laws",
			"/api/v1/countries",
			"/api/v1/tools",
			"/api/v1/stats",
			"/api/v1/contact",
			"/_health",
		},
	})
}
