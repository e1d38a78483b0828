package content

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/pariz/gountries"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gopkg.in/yaml.v3"
)

//go:embed seeds/laws.yml
//go:embed seeds/countries.yml
//go:embed seeds/tools.yml
var seedFiles embed.FS

// SeedReferenceData upserts the embedded reference data. Natural keys
// (law_id, slug) identify rows, so re-running after an upgrade applies
// content changes without duplicating anything.
func SeedReferenceData(db *gorm.DB, logger *slog.Logger) error {
	laws, err := loadSeed[Law]("seeds/laws.yml")
	if err != nil {
		return err
	}
	countries, err := loadSeed[Country]("seeds/countries.yml")
	if err != nil {
		return err
	}
	tools, err := loadSeed[Tool]("seeds/tools.yml")
	if err != nil {
		return err
	}

	enrichCountries(countries, logger)

	now := time.Now().UTC()
	return db.Transaction(func(tx *gorm.DB) error {
		for i := range laws {
			laws[i].CreatedAt = now
			laws[i].UpdatedAt = now
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "law_id"}},
				DoUpdates: clause.AssignmentColumns(lawUpdateColumns),
			}).Create(&laws[i]).Error
			if err != nil {
				return fmt.Errorf("failed to seed law %s: %w", laws[i].LawID, err)
			}
		}

		for i := range countries {
			countries[i].CreatedAt = now
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				DoUpdates: clause.AssignmentColumns([]string{"country", "law_id", "region"}),
			}).Create(&countries[i]).Error
			if err != nil {
				return fmt.Errorf("failed to seed country %s: %w", countries[i].Slug, err)
			}
		}

		for i := range tools {
			tools[i].CreatedAt = now
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "headline", "category", "official_url", "summary", "best_for"}),
			}).Create(&tools[i]).Error
			if err != nil {
				return fmt.Errorf("failed to seed tool %s: %w", tools[i].Slug, err)
			}
		}

		logger.Info("Reference data seeded",
			slog.Int("laws", len(laws)),
			slog.Int("countries", len(countries)),
			slog.Int("tools", len(tools)))
		return nil
	})
}

var lawUpdateColumns = []string{
	"law_name", "consent_model", "cookie_blocking_required",
	"granular_consent_required", "reject_button_required",
	"settings_button_required", "age_of_consent", "cookie_categories",
	"consent_proof_retention_years", "consent_refresh_required",
	"consent_refresh_days", "user_rights", "max_fine_percentage_revenue",
	"max_fine_absolute_usd", "enforcement_likelihood",
	"sensitive_data_extra_consent", "child_data_parental_consent",
	"notes", "updated_at",
}

func loadSeed[T any](path string) ([]T, error) {
	data, err := seedFiles.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("missing embedded seed %s: %w", path, err)
	}
	var records []T
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("malformed seed %s: %w", path, err)
	}
	return records, nil
}

// enrichCountries fills missing slugs and regions. Regions come from
// the gountries dataset so the seed file only has to override when the
// UN region grouping is not what the site wants to display.
func enrichCountries(countries []Country, logger *slog.Logger) {
	query := gountries.New()
	for i := range countries {
		if countries[i].Slug == "" {
			countries[i].Slug = Slugify(countries[i].Country)
		}
		if countries[i].Region != "" {
			continue
		}
		found, err := query.FindCountryByName(countries[i].Country)
		if err != nil {
			logger.Warn("No region data for country",
				slog.String("country", countries[i].Country))
			continue
		}
		countries[i].Region = found.Region
	}
}

// Slugify turns a display name into a URL slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}
