package http

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"complymetrics/internal/content"
)

// LawsIndexAction handles GET /api/v1/laws, optionally filtered by
// ?consent_model=OPT_IN.
func LawsIndexAction(ctx *cartridge.Context) error {
	db := ctx.DBManager.GetConnection()

	var (
		laws []content.Law
		err  error
	)
	if model := ctx.Query("consent_model"); model != "" {
		laws, err = content.LawsByConsentModel(db, model)
	} else {
		laws, err = content.AllLaws(db)
	}
	if err != nil {
		return contentError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"laws": laws})
}

// LawShowAction handles GET /api/v1/laws/:lawId and includes the
// jurisdictions governed by the law.
func LawShowAction(ctx *cartridge.Context) error {
	db := ctx.DBManager.GetConnection()
	lawID := ctx.Params("lawId")

	law, err := content.GetLawByID(db, lawID)
	if err != nil {
		return contentError(ctx, err)
	}
	countries, err := content.CountriesByLaw(db, lawID)
	if err != nil {
		return contentError(ctx, err)
	}

	return ctx.JSON(fiber.Map{"law": law, "countries": countries})
}

func CountriesIndexAction(ctx *cartridge.Context) error {
	db := ctx.DBManager.GetConnection()

	var (
		countries []content.Country
		err       error
	)
	if region := ctx.Query("region"); region != "" {
		countries, err = content.CountriesByRegion(db, region)
	} else {
		countries, err = content.AllCountries(db)
	}
	if err != nil {
		return contentError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"countries": countries})
}

// CountryShowAction handles GET /api/v1/countries/:slug and includes
// the country's governing law.
func CountryShowAction(ctx *cartridge.Context) error {
	db := ctx.DBManager.GetConnection()

	country, err := content.GetCountryBySlug(db, ctx.Params("slug"))
	if err != nil {
		return contentError(ctx, err)
	}
	law, err := content.GetLawByID(db, country.LawID)
	if err != nil {
		return contentError(ctx, err)
	}

	return ctx.JSON(fiber.Map{"country": country, "law": law})
}

func ToolsIndexAction(ctx *cartridge.Context) error {
	tools, err := content.AllTools(ctx.DBManager.GetConnection())
	if err != nil {
		return contentError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"tools": tools})
}

func ToolShowAction(ctx *cartridge.Context) error {
	tool, err := content.GetToolBySlug(ctx.DBManager.GetConnection(), ctx.Params("slug"))
	if err != nil {
		return contentError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"tool": tool})
}

// ContentStatsAction handles GET /api/v1/stats for the landing page
// summary figures.
func ContentStatsAction(ctx *cartridge.Context) error {
	stats, err := content.GetStats(ctx.DBManager.GetConnection())
	if err != nil {
		return contentError(ctx, err)
	}
	return ctx.JSON(stats)
}

func contentError(ctx *cartridge.Context, err error) error {
	if errors.Is(err, content.ErrNotFound) {
		return ctx.Status(http.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	ctx.Logger.Error("Content query failed", slog.Any("error", err))
	return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
