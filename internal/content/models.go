// Package content holds the compliance reference data the site serves:
// privacy laws, the countries they apply to, and profiled vendor tools.
// The data ships embedded in the binary and is seeded into sqlite at
// migration time, so the read API works against regular tables.
package content

import "time"

// Consent models a law can mandate.
const (
	ConsentOptIn      = "OPT_IN"
	ConsentOptOut     = "OPT_OUT"
	ConsentImplied    = "IMPLIED_CONSENT"
	ConsentNotifyOnly = "NOTIFY_ONLY"
)

// CookieCategory describes how one cookie class must be handled under a
// law.
type CookieCategory struct {
	UserCanControl  string `json:"user_can_control" yaml:"user_can_control"`
	DefaultState    string `json:"default_state" yaml:"default_state"`
	ConsentRequired string `json:"consent_required,omitempty" yaml:"consent_required,omitempty"`
}

type CookieCategories struct {
	StrictlyNecessary CookieCategory `json:"strictly_necessary" yaml:"strictly_necessary"`
	Performance       CookieCategory `json:"performance" yaml:"performance"`
	Functional        CookieCategory `json:"functional" yaml:"functional"`
	Targeting         CookieCategory `json:"targeting" yaml:"targeting"`
}

type UserRights struct {
	RightToAccess      string `json:"right_to_access" yaml:"right_to_access"`
	RightToDeletion    string `json:"right_to_deletion" yaml:"right_to_deletion"`
	RightToPortability string `json:"right_to_portability" yaml:"right_to_portability"`
	RightToObject      string `json:"right_to_object" yaml:"right_to_object"`
}

// Law is one privacy regulation's requirement profile.
type Law struct {
	ID                         uint             `gorm:"primaryKey;autoIncrement" json:"id" yaml:"-"`
	LawID                      string           `gorm:"column:law_id;uniqueIndex;not null" json:"law_id" yaml:"law_id"`
	LawName                    string           `gorm:"column:law_name;index;not null" json:"law_name" yaml:"law_name"`
	ConsentModel               string           `gorm:"index;not null" json:"consent_model" yaml:"consent_model"`
	CookieBlockingRequired     string           `json:"cookie_blocking_required" yaml:"cookie_blocking_required"`
	GranularConsentRequired    string           `json:"granular_consent_required" yaml:"granular_consent_required"`
	RejectButtonRequired       string           `json:"reject_button_required" yaml:"reject_button_required"`
	SettingsButtonRequired     string           `json:"settings_button_required" yaml:"settings_button_required"`
	AgeOfConsent               *int             `json:"age_of_consent" yaml:"age_of_consent"`
	CookieCategories           CookieCategories `gorm:"serializer:json" json:"cookie_categories" yaml:"cookie_categories"`
	ConsentProofRetentionYears int              `json:"consent_proof_retention_years" yaml:"consent_proof_retention_years"`
	ConsentRefreshRequired     *string          `json:"consent_refresh_required" yaml:"consent_refresh_required"`
	ConsentRefreshDays         *int             `json:"consent_refresh_days" yaml:"consent_refresh_days"`
	UserRights                 UserRights       `gorm:"serializer:json" json:"user_rights" yaml:"user_rights"`
	MaxFinePercentageRevenue   *float64         `json:"max_fine_percentage_revenue" yaml:"max_fine_percentage_revenue"`
	MaxFineAbsoluteUSD         *float64         `gorm:"column:max_fine_absolute_usd" json:"max_fine_absolute_usd" yaml:"max_fine_absolute_usd"`
	EnforcementLikelihood      *string          `json:"enforcement_likelihood" yaml:"enforcement_likelihood"`
	SensitiveDataExtraConsent  *string          `json:"sensitive_data_extra_consent" yaml:"sensitive_data_extra_consent"`
	ChildDataParentalConsent   *string          `json:"child_data_parental_consent" yaml:"child_data_parental_consent"`
	Notes                      *string          `json:"notes" yaml:"notes"`
	CreatedAt                  time.Time        `json:"created_at" yaml:"-"`
	UpdatedAt                  time.Time        `json:"updated_at" yaml:"-"`
}

// Country maps a jurisdiction to its governing law. Slug and Region are
// derived at seed time when the source data omits them.
type Country struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id" yaml:"-"`
	Country   string    `gorm:"index;not null" json:"country" yaml:"country"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug" yaml:"slug"`
	LawID     string    `gorm:"column:law_id;index;not null" json:"law_id" yaml:"law_id"`
	Region    string    `gorm:"index" json:"region" yaml:"region"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
}

// Tool is a profiled consent-management vendor.
type Tool struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id" yaml:"-"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug" yaml:"slug"`
	Name        string    `gorm:"index;not null" json:"name" yaml:"name"`
	Headline    string    `json:"headline" yaml:"headline"`
	Category    string    `gorm:"index" json:"category" yaml:"category"`
	OfficialURL string    `gorm:"column:official_url" json:"official_url" yaml:"official_url"`
	Summary     string    `gorm:"type:text" json:"summary" yaml:"summary"`
	BestFor     []string  `gorm:"serializer:json" json:"best_for" yaml:"best_for"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
}
