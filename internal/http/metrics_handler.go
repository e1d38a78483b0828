package http

import (
	"net/http"
	"strconv"

	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"
	"github.com/pariz/gountries"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"complymetrics/internal/config"
	"complymetrics/internal/metrics"
)

var (
	countryQuery = gountries.New()
	titleCaser   = cases.Title(language.English)
)

// MetricsIndexAction handles GET /api/v1/metrics?days=N. The window
// defaults from config; anything that is not a positive integer is a
// 400.
func MetricsIndexAction(ctx *cartridge.Context) error {
	days := config.GetConfig().DefaultMetricsWindowDays
	if raw := ctx.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "days must be a positive integer",
			})
		}
		days = parsed
	}

	aggregator := metrics.NewAggregator(ctx.DBManager, ctx.Logger)
	bundle, err := aggregator.Aggregate(ctx.UserContext(), days)
	if err != nil {
		ctx.Logger.Error("Metrics aggregation failed",
			slog.Int("days", days),
			slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to compute metrics",
		})
	}

	localizeGeography(bundle)
	return ctx.JSON(bundle)
}

// localizeGeography converts stored ISO country codes into display
// names. Codes the dataset does not know are title-cased as-is so the
// dashboard never shows a raw lowercase token.
func localizeGeography(bundle *metrics.Bundle) {
	for i, entry := range bundle.GeographicData {
		bundle.GeographicData[i].Country = countryDisplayName(entry.Country)
	}
}

func countryDisplayName(code string) string {
	if found, err := countryQuery.FindCountryByAlpha(code); err == nil {
		return found.Name.Common
	}
	return titleCaser.String(code)
}
