package uaparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDesktopBrowsers(t *testing.T) {
	tests := []struct {
		name           string
		userAgent      string
		browserName    string
		browserVersion string
		osName         string
		osVersion      string
	}{
		{
			name:           "chrome on windows",
			userAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			browserName:    "Chrome",
			browserVersion: "120.0.0.0",
			osName:         "Windows",
			osVersion:      "10",
		},
		{
			name:           "firefox on linux",
			userAgent:      "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			browserName:    "Firefox",
			browserVersion: "121.0",
			osName:         "Linux",
			osVersion:      "",
		},
		{
			name:           "safari on macos",
			userAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
			browserName:    "Safari",
			browserVersion: "17.2",
			osName:         "macOS",
			osVersion:      "10.15.7",
		},
		{
			name:           "edge on windows",
			userAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.2210.91",
			browserName:    "Microsoft Edge",
			browserVersion: "120.0.2210.91",
			osName:         "Windows",
			osVersion:      "10",
		},
		{
			name:           "opera on windows",
			userAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36 OPR/105.0.0.0",
			browserName:    "Opera",
			browserVersion: "105.0.0.0",
			osName:         "Windows",
			osVersion:      "10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.userAgent)
			assert.False(t, result.Bot)
			assert.Equal(t, tt.browserName, result.BrowserName)
			assert.Equal(t, tt.browserVersion, result.BrowserVersion)
			assert.Equal(t, tt.osName, result.OSName)
			assert.Equal(t, tt.osVersion, result.OSVersion)
		})
	}
}

func TestParseMobileDevices(t *testing.T) {
	iphone := Parse("Mozilla/5.0 (iPhone; CPU iPhone OS 17_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Mobile/15E148 Safari/604.1")
	assert.Equal(t, "Safari", iphone.BrowserName)
	assert.Equal(t, "iOS", iphone.OSName)
	assert.Equal(t, "17.2", iphone.OSVersion)
	assert.Equal(t, "iPhone", iphone.DeviceName)

	pixel := Parse("Mozilla/5.0 (Linux; Android 14; Pixel 8 Pro) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36")
	assert.Equal(t, "Chrome", pixel.BrowserName)
	assert.Equal(t, "Android", pixel.OSName)
	assert.Equal(t, "14", pixel.OSVersion)
	assert.Equal(t, "Pixel 8 Pro", pixel.DeviceName)

	samsung := Parse("Mozilla/5.0 (Linux; Android 13; SM-S918B) AppleWebKit/537.36 (KHTML, like Gecko) SamsungBrowser/23.0 Chrome/115.0.0.0 Mobile Safari/537.36")
	assert.Equal(t, "Samsung Internet", samsung.BrowserName)
	assert.Equal(t, "Samsung SM-S918B", samsung.DeviceName)
}

func TestParseBots(t *testing.T) {
	tests := []struct {
		userAgent string
		botName   string
	}{
		{"Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko; compatible; Googlebot/2.1; +http://www.google.com/bot.html) Chrome/120.0.0.0 Safari/537.36", "Googlebot"},
		{"Mozilla/5.0 (compatible; bingbot/2.0; +http://www.bing.com/bingbot.htm)", "Bingbot"},
		{"curl/8.4.0", "HTTP Library"},
		{"Mozilla/5.0 (compatible; SomeNewCrawler/1.0)", "Generic Bot"},
	}

	for _, tt := range tests {
		result := Parse(tt.userAgent)
		assert.True(t, result.Bot, "expected bot for %q", tt.userAgent)
		assert.Equal(t, tt.botName, result.BotName)
	}
}

func TestParseSkipsNonMatchingRules(t *testing.T) {
	// The first browser rule must not win by default: a plain Chrome UA
	// carries no Edg/ token and has to fall through to the Chrome rule
	// with its real version, never a raw $1 placeholder.
	result := Parse("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	assert.Equal(t, "Chrome", result.BrowserName)
	assert.NotContains(t, result.BrowserVersion, "$")
	assert.Equal(t, "PC", result.DeviceName)
}

func TestParseUnknown(t *testing.T) {
	result := Parse("")
	assert.False(t, result.Bot)
	assert.Empty(t, result.BrowserName)
	assert.Empty(t, result.OSName)
	assert.Empty(t, result.DeviceName)

	result = Parse("CompletelyUnrecognizedAgent/1.0")
	assert.False(t, result.Bot)
	assert.Empty(t, result.BrowserName)
}
