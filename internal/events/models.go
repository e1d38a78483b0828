package events

import "time"

// Device classes derived from the viewport width at capture time.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// PageView is the canonical page view fact record. Rows are append-only:
// nothing in the codebase updates or deletes them once written. Optional
// enrichment fields are pointers so that a failed enrichment stays NULL
// in storage and is only defaulted at aggregation time.
type PageView struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	Path           string `gorm:"index;not null"`
	Referrer       *string
	ReferrerSource string    `gorm:"index;not null"`
	Timestamp      time.Time `gorm:"index;not null"`
	DeviceType     string    `gorm:"index;not null"`

	BrowserName    *string `gorm:"index"`
	BrowserVersion *string
	OSName         *string `gorm:"index"`
	OSVersion      *string
	DeviceName     *string

	ScreenWidth    *int
	ScreenHeight   *int
	Language       *string
	ConnectionType *string

	Country   *string `gorm:"index"`
	City      *string
	Region    *string
	Latitude  *float64
	Longitude *float64
	Timezone  *string

	UTMSource   *string `gorm:"column:utm_source"`
	UTMMedium   *string `gorm:"column:utm_medium"`
	UTMCampaign *string `gorm:"column:utm_campaign"`

	CreatedAt time.Time
}

// SiteEvent is a custom event (button click, form submission) tracked
// alongside page views. Same append-only contract as PageView.
type SiteEvent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	EventName string    `gorm:"index;not null"`
	EventData string    `gorm:"type:text"`
	Timestamp time.Time `gorm:"index;not null"`
	UserAgent *string
	CreatedAt time.Time
}
