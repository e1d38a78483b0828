package events

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"log/slog"

	"github.com/karloscodes/cartridge"
	"github.com/karloscodes/cartridge/sqlite"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"complymetrics/internal/config"
	"complymetrics/internal/pkg/geoip"
	"complymetrics/internal/pkg/uaparser"
)

// Viewport width thresholds for device classification.
const (
	mobileMaxWidth = 768
	tabletMaxWidth = 1024
)

// ClientContext carries every browser-provided signal the tracking
// snippet reads at navigation time. It replaces ambient browser state
// (window, navigator, location) with an explicit value so capture is
// testable without a browser.
type ClientContext struct {
	Path           string    `json:"path"`
	RawURL         string    `json:"url"`
	Referrer       string    `json:"referrer"`
	UserAgent      string    `json:"userAgent"`
	IPAddress      string    `json:"-"`
	ViewportWidth  int       `json:"viewportWidth"`
	ScreenWidth    int       `json:"screenWidth"`
	ScreenHeight   int       `json:"screenHeight"`
	Language       string    `json:"language"`
	ConnectionType string    `json:"connectionType"`
	Timestamp      time.Time `json:"timestamp"`
}

// Capture assembles one PageView from the client context, enriches it,
// and issues a single insert. Enrichment is best-effort: a failed
// user-agent parse leaves the browser fields NULL, a failed or timed-out
// geolocation lookup leaves every geo field NULL. Only the insert itself
// can fail the call; there is no retry and no queue.
func Capture(dbManager cartridge.DBManager, logger *slog.Logger, locator geoip.Locator, client *ClientContext) error {
	if client == nil || client.Path == "" {
		return fmt.Errorf("capture requires a path")
	}

	parsedUA := uaparser.Parse(client.UserAgent)
	if parsedUA.Bot {
		logger.Debug("Skipping bot page view",
			slog.String("path", client.Path),
			slog.String("user_agent", client.UserAgent))
		return nil
	}

	timestamp := client.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	pageView := &PageView{
		Path:           client.Path,
		Referrer:       optionalString(client.Referrer),
		ReferrerSource: ClassifyReferrer(client.Referrer),
		Timestamp:      timestamp,
		DeviceType:     DeviceTypeForViewport(client.ViewportWidth),
		BrowserName:    optionalString(parsedUA.BrowserName),
		BrowserVersion: optionalString(parsedUA.BrowserVersion),
		OSName:         optionalString(parsedUA.OSName),
		OSVersion:      optionalString(parsedUA.OSVersion),
		DeviceName:     optionalString(parsedUA.DeviceName),
		ScreenWidth:    optionalInt(client.ScreenWidth),
		ScreenHeight:   optionalInt(client.ScreenHeight),
		Language:       optionalString(normalizeLanguage(client.Language)),
		ConnectionType: optionalString(client.ConnectionType),
		CreatedAt:      time.Now().UTC(),
	}

	applyUTMParams(pageView, client.RawURL)
	applyGeolocation(pageView, logger, locator, client.IPAddress)

	db := dbManager.GetConnection()
	err := sqlite.PerformWrite(logger, db, func(tx *gorm.DB) error {
		return tx.Create(pageView).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store page view: %w", err)
	}

	return nil
}

// CaptureSiteEvent stores a custom event (button click, form submission).
// Same fire-and-forget contract as Capture.
func CaptureSiteEvent(dbManager cartridge.DBManager, logger *slog.Logger, name, dataJSON, userAgent string, timestamp time.Time) error {
	if name == "" {
		return fmt.Errorf("capture requires an event name")
	}

	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	siteEvent := &SiteEvent{
		EventName: name,
		EventData: dataJSON,
		Timestamp: timestamp,
		UserAgent: optionalString(userAgent),
		CreatedAt: time.Now().UTC(),
	}

	db := dbManager.GetConnection()
	err := sqlite.PerformWrite(logger, db, func(tx *gorm.DB) error {
		return tx.Create(siteEvent).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store site event: %w", err)
	}

	return nil
}

// DeviceTypeForViewport classifies by viewport width. A missing width
// (the tracking snippet ran without a window, or an old snippet version
// that never sent one) counts as desktop.
func DeviceTypeForViewport(width int) string {
	switch {
	case width <= 0:
		return DeviceDesktop
	case width < mobileMaxWidth:
		return DeviceMobile
	case width < tabletMaxWidth:
		return DeviceTablet
	default:
		return DeviceDesktop
	}
}

// applyUTMParams extracts campaign attribution from the page URL's query
// string. Each parameter is independently optional.
func applyUTMParams(pageView *PageView, rawURL string) {
	if rawURL == "" {
		return
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return
	}

	query := parsedURL.Query()
	pageView.UTMSource = optionalString(query.Get("utm_source"))
	pageView.UTMMedium = optionalString(query.Get("utm_medium"))
	pageView.UTMCampaign = optionalString(query.Get("utm_campaign"))
}

// applyGeolocation runs the enrichment lookup under a bounded timeout.
// Every failure mode (no locator, timeout, lookup error) leaves the geo
// fields NULL; partial results are kept as-is.
func applyGeolocation(pageView *PageView, logger *slog.Logger, locator geoip.Locator, ipAddress string) {
	if locator == nil {
		return
	}

	timeout := time.Duration(config.GetConfig().GetGeoLookupTimeout()) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	location, err := locator.Locate(ctx, ipAddress)
	if err != nil {
		logger.Debug("Geolocation lookup failed",
			slog.String("ip_address", ipAddress),
			slog.Any("error", err))
		return
	}
	if location == nil {
		return
	}

	pageView.Country = optionalString(location.CountryCode)
	pageView.City = optionalString(location.City)
	pageView.Region = optionalString(location.Region)
	pageView.Timezone = optionalString(location.Timezone)
	if location.Latitude != 0 || location.Longitude != 0 {
		lat, lon := location.Latitude, location.Longitude
		pageView.Latitude = &lat
		pageView.Longitude = &lon
	}
}

// normalizeLanguage canonicalizes a BCP-47-like locale tag. Unparseable
// values are stored raw rather than dropped.
func normalizeLanguage(locale string) string {
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	return tag.String()
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}
