package internal

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/karloscodes/cartridge"
	cartridgemiddleware "github.com/karloscodes/cartridge/middleware"

	v1 "complymetrics/api/v1"
	"complymetrics/internal/config"
	"complymetrics/internal/http"
)

// publicCORSConfig is shared by every endpoint the tracking snippet or
// the frontend hits cross-origin.
var publicCORSConfig = &cors.Config{
	AllowOrigins: "*",
	AllowMethods: "POST,GET,OPTIONS",
	AllowHeaders: "Origin, Content-Type, Accept, Referrer, User-Agent",
}

// MountAppRoutes mounts all application routes.
func MountAppRoutes(srv *cartridge.Server) {
	cfg := config.GetConfig()

	// Rate limiting only applies in production; in development and test
	// it would get in the way.
	conditionalRateLimiter := func(limiter fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			if cfg.IsProduction() {
				return limiter(c)
			}
			return c.Next()
		}
	}

	// 70/min per IP absorbs legitimate tracking traffic while capping
	// abuse on the ingestion path.
	collectRateLimiter := conditionalRateLimiter(cartridgemiddleware.RateLimiter(
		cartridgemiddleware.WithMax(70),
		cartridgemiddleware.WithDuration(time.Minute),
	))

	// Contact form is a spam magnet, keep it tight.
	contactRateLimiter := conditionalRateLimiter(cartridgemiddleware.RateLimiter(
		cartridgemiddleware.WithMax(5),
		cartridgemiddleware.WithDuration(time.Minute),
	))

	// Collection posts arrive cross-site from the tracking snippet and
	// from header-less clients (sendBeacon, old browsers), so Sec-Fetch-Site
	// validation is off for them.
	collectConfig := &cartridge.RouteConfig{
		EnableCORS:         true,
		WriteConcurrency:   false,
		EnableSecFetchSite: cartridge.Bool(false),
		CustomMiddleware:   []fiber.Handler{collectRateLimiter},
		CORSConfig:         publicCORSConfig,
	}

	snippetConfig := &cartridge.RouteConfig{
		EnableCORS:       true,
		CustomMiddleware: []fiber.Handler{collectRateLimiter},
		CORSConfig:       publicCORSConfig,
	}

	readAPIConfig := &cartridge.RouteConfig{
		EnableCORS: true,
		CORSConfig: publicCORSConfig,
	}

	// The contact form posts from the separately hosted frontend.
	contactConfig := &cartridge.RouteConfig{
		EnableCORS:         true,
		EnableSecFetchSite: cartridge.Bool(false),
		CustomMiddleware:   []fiber.Handler{contactRateLimiter},
		CORSConfig:         publicCORSConfig,
	}

	// === ROOT ===
	srv.Get("/", http.HomeIndexAction)
	srv.Get("/_health", http.HealthIndexAction)
	srv.Head("/_health", http.HealthIndexAction)

	// === EVENT COLLECTION ===
	srv.Post("/x/api/v1/events", v1.CollectEventHandler, collectConfig)
	srv.Options("/x/api/v1/events", func(ctx *cartridge.Context) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	}, collectConfig)
	srv.Post("/x/api/v1/events/beacon", v1.CollectBeaconHandler, collectConfig)
	srv.Options("/x/api/v1/events/beacon", func(ctx *cartridge.Context) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	}, collectConfig)

	// === TRACKING SNIPPET ===
	srv.Get("/y/api/v1/track.js", v1.GetSnippetAction, snippetConfig)

	// === DASHBOARD METRICS ===
	srv.Get("/api/v1/metrics", http.MetricsIndexAction, readAPIConfig)

	// === COMPLIANCE CONTENT ===
	srv.Get("/api/v1/laws", http.LawsIndexAction, readAPIConfig)
	srv.Get("/api/v1/laws/:lawId", http.LawShowAction, readAPIConfig)
	srv.Get("/api/v1/countries", http.CountriesIndexAction, readAPIConfig)
	srv.Get("/api/v1/countries/:slug", http.CountryShowAction, readAPIConfig)
	srv.Get("/api/v1/tools", http.ToolsIndexAction, readAPIConfig)
	srv.Get("/api/v1/tools/:slug", http.ToolShowAction, readAPIConfig)
	srv.Get("/api/v1/stats", http.ContentStatsAction, readAPIConfig)

	// === CONTACT ===
	srv.Post("/api/v1/contact", http.ContactCreateAction, contactConfig)
}
