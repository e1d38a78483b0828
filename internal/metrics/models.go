package metrics

// Bundle is the full dashboard payload for one lookback window. It is
// recomputed from raw page views on every request and never persisted.
type Bundle struct {
	TotalViews         int64           `json:"totalViews"`
	UniqueCountries    int             `json:"uniqueCountries"`
	TopPages           []PageEntry     `json:"topPages"`
	DeviceDistribution []DeviceEntry   `json:"deviceDistribution"`
	BrowserStats       []ClientEntry   `json:"browserStats"`
	OSStats            []ClientEntry   `json:"osStats"`
	ReferrerSources    []ReferrerEntry `json:"referrerSources"`
	GeographicData     []GeoEntry      `json:"geographicData"`
	TimelineData       []TimelineEntry `json:"timelineData"`
}

type PageEntry struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

type DeviceEntry struct {
	DeviceType string `json:"device_type"`
	Count      int64  `json:"count"`
}

// ClientEntry is a browser or operating system leaderboard row. Name
// and Version default to "unknown" when the stored event had none.
type ClientEntry struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Count   int64  `json:"count"`
}

type ReferrerEntry struct {
	ReferrerSource string `json:"referrer_source"`
	Count          int64  `json:"count"`
}

type GeoEntry struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Views   int64  `json:"views"`
}

// TimelineEntry is one UTC calendar day bucket. Date is YYYY-MM-DD.
type TimelineEntry struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

// emptyBundle returns a Bundle with every list initialized so an empty
// window marshals as [] rather than null.
func emptyBundle() *Bundle {
	return &Bundle{
		TopPages:           []PageEntry{},
		DeviceDistribution: []DeviceEntry{},
		BrowserStats:       []ClientEntry{},
		OSStats:            []ClientEntry{},
		ReferrerSources:    []ReferrerEntry{},
		GeographicData:     []GeoEntry{},
		TimelineData:       []TimelineEntry{},
	}
}
