// Package seeder generates realistic traffic for local dashboards.
package seeder

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"log/slog"

	"github.com/karloscodes/cartridge"
	"github.com/karloscodes/cartridge/sqlite"
	"gorm.io/gorm"

	"complymetrics/internal/events"
)

type Seeder struct {
	DBManager  cartridge.DBManager
	Logger     *slog.Logger
	EventCount int
	WindowDays int
}

func NewSeeder(dbManager cartridge.DBManager, logger *slog.Logger, eventCount, windowDays int) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	if windowDays <= 0 {
		windowDays = 30
	}
	return &Seeder{
		DBManager:  dbManager,
		Logger:     logger,
		EventCount: eventCount,
		WindowDays: windowDays,
	}
}

// Weighted path distribution roughly matching a content site: the
// landing page dominates, long-tail law pages trail off.
var seedPaths = []struct {
	path   string
	weight int
}{
	{"/", 30},
	{"/privacy-laws", 18},
	{"/privacy-laws/gdpr", 12},
	{"/privacy-laws/ccpa", 9},
	{"/countries", 8},
	{"/countries/germany", 5},
	{"/countries/united-states", 5},
	{"/compliance-tools", 6},
	{"/compliance-tools/onetrust", 3},
	{"/analytics", 2},
	{"/contact", 2},
}

var seedReferrers = []string{
	"", "", "", // direct dominates
	"https://www.google.com/search?q=gdpr+requirements",
	"https://www.google.com/",
	"https://www.bing.com/search?q=ccpa",
	"https://duckduckgo.com/",
	"https://www.reddit.com/r/privacy/",
	"https://www.linkedin.com/feed/",
	"https://twitter.com/somepost",
	"https://some-blog.example.com/cookie-banners",
}

var seedClients = []struct {
	browser, browserVersion, osName, osVersion string
	viewportWidth                              int
}{
	{"Chrome", "120.0.0.0", "Windows", "10", 1920},
	{"Chrome", "119.0.0.0", "macOS", "14.2", 1680},
	{"Firefox", "121.0", "Linux", "", 1440},
	{"Safari", "17.2", "macOS", "14.2", 1512},
	{"Safari", "17.1", "iOS", "17.1", 390},
	{"Chrome", "120.0.0.0", "Android", "14", 412},
	{"Samsung Internet", "23.0", "Android", "13", 384},
	{"Microsoft Edge", "120.0.2210.91", "Windows", "11", 1536},
	{"Safari", "17.0", "iOS", "17.0", 820},
}

var seedGeos = []struct {
	country, city, region, timezone string
}{
	{"US", "New York", "New York", "America/New_York"},
	{"US", "San Francisco", "California", "America/Los_Angeles"},
	{"DE", "Berlin", "Berlin", "Europe/Berlin"},
	{"GB", "London", "England", "Europe/London"},
	{"FR", "Paris", "Île-de-France", "Europe/Paris"},
	{"BR", "São Paulo", "São Paulo", "America/Sao_Paulo"},
	{"CA", "Toronto", "Ontario", "America/Toronto"},
	{"JP", "Tokyo", "Tokyo", "Asia/Tokyo"},
	{"", "", "", ""}, // unattributed traffic
}

// Run inserts EventCount page views spread over WindowDays, in batches.
func (s *Seeder) Run(ctx context.Context) error {
	start := time.Now()
	s.Logger.Info("Seeding traffic",
		slog.Int("events", s.EventCount),
		slog.Int("days", s.WindowDays))

	db := s.DBManager.GetConnection()
	now := time.Now().UTC()

	const batchSize = 500
	pending := make([]*events.PageView, 0, batchSize)

	for i := 0; i < s.EventCount; i++ {
		pending = append(pending, s.randomPageView(now))
		if len(pending) == batchSize || i == s.EventCount-1 {
			if err := ctx.Err(); err != nil {
				return err
			}
			batch := pending
			err := sqlite.PerformWrite(s.Logger, db, func(tx *gorm.DB) error {
				return tx.Create(&batch).Error
			})
			if err != nil {
				return fmt.Errorf("failed to insert seed batch: %w", err)
			}
			pending = pending[:0]
		}
	}

	s.Logger.Info("Seeding complete", slog.Duration("elapsed", time.Since(start)))
	return nil
}

func (s *Seeder) randomPageView(now time.Time) *events.PageView {
	path := weightedPath()
	client := seedClients[rand.IntN(len(seedClients))]
	geo := seedGeos[rand.IntN(len(seedGeos))]
	referrer := seedReferrers[rand.IntN(len(seedReferrers))]

	// Recent days get more traffic than older ones.
	dayOffset := rand.IntN(s.WindowDays)
	if rand.IntN(3) == 0 {
		dayOffset = rand.IntN(1 + s.WindowDays/4)
	}
	timestamp := now.
		AddDate(0, 0, -dayOffset).
		Add(-time.Duration(rand.IntN(24*60)) * time.Minute)

	pageView := &events.PageView{
		Path:           path,
		ReferrerSource: events.ClassifyReferrer(referrer),
		Timestamp:      timestamp,
		DeviceType:     events.DeviceTypeForViewport(client.viewportWidth),
		BrowserName:    strPtr(client.browser),
		BrowserVersion: strPtr(client.browserVersion),
		OSName:         strPtr(client.osName),
		OSVersion:      strPtr(client.osVersion),
		ScreenWidth:    intPtr(client.viewportWidth),
		ScreenHeight:   intPtr(client.viewportWidth * 9 / 16),
		Language:       strPtr("en-US"),
		CreatedAt:      time.Now().UTC(),
	}
	if referrer != "" {
		pageView.Referrer = strPtr(referrer)
	}
	if geo.country != "" {
		pageView.Country = strPtr(geo.country)
		pageView.City = strPtr(geo.city)
		pageView.Region = strPtr(geo.region)
		pageView.Timezone = strPtr(geo.timezone)
	}
	return pageView
}

func weightedPath() string {
	total := 0
	for _, entry := range seedPaths {
		total += entry.weight
	}
	pick := rand.IntN(total)
	for _, entry := range seedPaths {
		pick -= entry.weight
		if pick < 0 {
			return entry.path
		}
	}
	return "/"
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intPtr(n int) *int {
	return &n
}
