// Package v1 is the public event-collection API used by the tracking
// snippet. Both endpoints are fire-and-forget: the browser gets 202
// whether or not the event made it to disk, and failures surface only
// in the server log.
package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"complymetrics/internal/events"
	"complymetrics/internal/pkg/geoip"
)

// locator is the process-wide geolocation backend, nil when no GeoLite2
// database is installed.
var locator geoip.Locator

func SetLocator(l geoip.Locator) {
	locator = l
}

// CollectEventParams is the tracking snippet's payload. A non-empty
// EventName makes it a custom event; otherwise it is a page view.
type CollectEventParams struct {
	Path           string                 `json:"path"`
	URL            string                 `json:"url"`
	Referrer       string                 `json:"referrer"`
	Timestamp      time.Time              `json:"timestamp"`
	ViewportWidth  int                    `json:"viewportWidth"`
	ScreenWidth    int                    `json:"screenWidth"`
	ScreenHeight   int                    `json:"screenHeight"`
	Language       string                 `json:"language"`
	ConnectionType string                 `json:"connectionType"`
	UserAgent      string                 `json:"userAgent"`
	EventName      string                 `json:"eventName"`
	EventMetadata  map[string]interface{} `json:"eventMetadata"`
}

// CollectEventHandler handles POST /x/api/v1/events.
func CollectEventHandler(ctx *cartridge.Context) error {
	var params CollectEventParams
	if err := ctx.BodyParser(&params); err != nil {
		ctx.Logger.Warn("Unparseable collect request", slog.Any("error", err))
		return accepted(ctx)
	}
	return collect(ctx, &params)
}

// CollectBeaconHandler handles POST /x/api/v1/events/beacon. Beacon
// payloads arrive as text/plain, so the body is decoded manually.
func CollectBeaconHandler(ctx *cartridge.Context) error {
	var params CollectEventParams
	if err := json.Unmarshal(ctx.Body(), &params); err != nil {
		ctx.Logger.Warn("Unparseable beacon request", slog.Any("error", err))
		return accepted(ctx)
	}
	return collect(ctx, &params)
}

func collect(ctx *cartridge.Context, params *CollectEventParams) error {
	userAgent := params.UserAgent
	if userAgent == "" {
		userAgent = ctx.Get("User-Agent")
	}
	if forwardedUA := ctx.Get("X-Forwarded-User-Agent"); forwardedUA != "" {
		userAgent = forwardedUA
	}

	if params.EventName != "" {
		err := events.CaptureSiteEvent(ctx.DBManager, ctx.Logger,
			params.EventName, metadataToJSON(params.EventMetadata), userAgent, params.Timestamp)
		if err != nil {
			ctx.Logger.Warn("Failed to capture site event",
				slog.String("event_name", params.EventName),
				slog.Any("error", err))
		}
		return accepted(ctx)
	}

	client := &events.ClientContext{
		Path:           params.Path,
		RawURL:         params.URL,
		Referrer:       params.Referrer,
		UserAgent:      userAgent,
		IPAddress:      getClientIP(ctx.Ctx),
		ViewportWidth:  params.ViewportWidth,
		ScreenWidth:    params.ScreenWidth,
		ScreenHeight:   params.ScreenHeight,
		Language:       params.Language,
		ConnectionType: params.ConnectionType,
		Timestamp:      params.Timestamp,
	}
	if client.Path == "" && client.RawURL != "" {
		client.Path = pathFromURL(client.RawURL)
	}

	if err := events.Capture(ctx.DBManager, ctx.Logger, locator, client); err != nil {
		ctx.Logger.Warn("Failed to capture page view",
			slog.String("path", client.Path),
			slog.Any("error", err))
	}
	return accepted(ctx)
}

func accepted(ctx *cartridge.Context) error {
	return ctx.Status(http.StatusAccepted).JSON(fiber.Map{
		"status": http.StatusAccepted,
	})
}

func metadataToJSON(metadata map[string]interface{}) string {
	if len(metadata) == 0 {
		return ""
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(data)
}
