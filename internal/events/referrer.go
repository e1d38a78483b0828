package events

import (
	"net/url"
	"strings"
)

// Referrer source labels. The set is closed: every event carries exactly
// one of these.
const (
	SourceDirect   = "direct"
	SourceReferral = "referral"
)

// knownSources maps a host substring to its source label. Order matters:
// the first matching entry wins, so e.g. "plus.google.com" classifies as
// google before anything else gets a look.
var knownSources = []struct {
	fragment string
	source   string
}{
	{"google", "google"},
	{"facebook", "facebook"},
	{"fb.com", "facebook"},
	{"twitter", "twitter"},
	{"x.com", "twitter"},
	{"linkedin", "linkedin"},
	{"instagram", "instagram"},
	{"reddit", "reddit"},
	{"bing", "bing"},
	{"yahoo", "yahoo"},
	{"duckduckgo", "duckduckgo"},
}

// ClassifyReferrer turns a raw referrer URL into a coarse attribution
// label. An empty referrer is direct traffic; a referring host that
// matches no known source is generic "referral" traffic.
func ClassifyReferrer(referrerURL string) string {
	if referrerURL == "" {
		return SourceDirect
	}

	host := referrerURL
	if parsed, err := url.Parse(referrerURL); err == nil && parsed.Hostname() != "" {
		host = parsed.Hostname()
	}
	host = strings.ToLower(host)

	for _, entry := range knownSources {
		if strings.Contains(host, entry.fragment) {
			return entry.source
		}
	}

	return SourceReferral
}
