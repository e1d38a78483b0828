package content

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a law, country, or tool lookup misses.
var ErrNotFound = errors.New("content record not found")

func AllLaws(db *gorm.DB) ([]Law, error) {
	var laws []Law
	if err := db.Order("law_name").Find(&laws).Error; err != nil {
		return nil, fmt.Errorf("failed to load laws: %w", err)
	}
	return laws, nil
}

func GetLawByID(db *gorm.DB, lawID string) (*Law, error) {
	var law Law
	err := db.Where("law_id = ?", lawID).First(&law).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load law %s: %w", lawID, err)
	}
	return &law, nil
}

func LawsByConsentModel(db *gorm.DB, model string) ([]Law, error) {
	var laws []Law
	err := db.Where("consent_model = ?", model).Order("law_name").Find(&laws).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load laws by consent model: %w", err)
	}
	return laws, nil
}

func AllCountries(db *gorm.DB) ([]Country, error) {
	var countries []Country
	if err := db.Order("country").Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("failed to load countries: %w", err)
	}
	return countries, nil
}

func GetCountryBySlug(db *gorm.DB, slug string) (*Country, error) {
	var country Country
	err := db.Where("slug = ?", slug).First(&country).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load country %s: %w", slug, err)
	}
	return &country, nil
}

func CountriesByLaw(db *gorm.DB, lawID string) ([]Country, error) {
	var countries []Country
	err := db.Where("law_id = ?", lawID).Order("country").Find(&countries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load countries for law %s: %w", lawID, err)
	}
	return countries, nil
}

func CountriesByRegion(db *gorm.DB, region string) ([]Country, error) {
	var countries []Country
	err := db.Where("region = ?", region).Order("country").Find(&countries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load countries for region %s: %w", region, err)
	}
	return countries, nil
}

func AllTools(db *gorm.DB) ([]Tool, error) {
	var tools []Tool
	if err := db.Order("name").Find(&tools).Error; err != nil {
		return nil, fmt.Errorf("failed to load tools: %w", err)
	}
	return tools, nil
}

func GetToolBySlug(db *gorm.DB, slug string) (*Tool, error) {
	var tool Tool
	err := db.Where("slug = ?", slug).First(&tool).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tool %s: %w", slug, err)
	}
	return &tool, nil
}

// Stats summarizes the reference data for the site's landing sections.
type Stats struct {
	TotalLaws      int64            `json:"totalLaws"`
	TotalCountries int64            `json:"totalCountries"`
	ConsentModels  map[string]int64 `json:"consentModels"`
}

func GetStats(db *gorm.DB) (*Stats, error) {
	stats := &Stats{ConsentModels: map[string]int64{}}

	if err := db.Model(&Law{}).Count(&stats.TotalLaws).Error; err != nil {
		return nil, fmt.Errorf("failed to count laws: %w", err)
	}
	if err := db.Model(&Country{}).Count(&stats.TotalCountries).Error; err != nil {
		return nil, fmt.Errorf("failed to count countries: %w", err)
	}

	for _, model := range []string{ConsentOptIn, ConsentOptOut, ConsentImplied, ConsentNotifyOnly} {
		var count int64
		err := db.Model(&Law{}).Where("consent_model = ?", model).Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count %s laws: %w", model, err)
		}
		stats.ConsentModels[model] = count
	}

	return stats, nil
}
