// Package uaparser identifies the browser, operating system, and device
// behind a user-agent string using an embedded ruleset of PCRE patterns.
// Rules are ordered most-specific first and the first match wins, so
// Chromium derivatives resolve before Chrome and Chrome before Safari.
package uaparser

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"go.elara.ws/pcre"
	"gopkg.in/yaml.v3"
)

//go:embed rules/bots.yml
//go:embed rules/browsers.yml
//go:embed rules/oss.yml
//go:embed rules/devices.yml
var ruleFiles embed.FS

// Result holds whatever the ruleset could identify. Unidentified fields
// stay empty; callers decide how to record the absence.
type Result struct {
	BrowserName    string
	BrowserVersion string
	OSName         string
	OSVersion      string
	DeviceName     string
	Bot            bool
	BotName        string
}

type clientRule struct {
	Regex   string `yaml:"regex"`
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type botRule struct {
	Regex string `yaml:"regex"`
	Name  string `yaml:"name"`
}

type deviceRule struct {
	Regex string `yaml:"regex"`
	Name  string `yaml:"name"`
}

type ruleset struct {
	bots     []botRule
	browsers []clientRule
	oss      []clientRule
	devices  []deviceRule

	mu       sync.RWMutex
	compiled map[string]*pcre.Regexp
}

var (
	rules     *ruleset
	rulesOnce sync.Once
)

func getRuleset() *ruleset {
	rulesOnce.Do(func() {
		rules = &ruleset{compiled: make(map[string]*pcre.Regexp)}
		loadRules("rules/bots.yml", &rules.bots)
		loadRules("rules/browsers.yml", &rules.browsers)
		loadRules("rules/oss.yml", &rules.oss)
		loadRules("rules/devices.yml", &rules.devices)
	})
	return rules
}

func loadRules(path string, out interface{}) {
	data, err := ruleFiles.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("uaparser: missing embedded ruleset %s: %v", path, err))
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		panic(fmt.Sprintf("uaparser: malformed ruleset %s: %v", path, err))
	}
}

func (rs *ruleset) regexp(pattern string) (*pcre.Regexp, error) {
	rs.mu.RLock()
	if re, ok := rs.compiled[pattern]; ok {
		rs.mu.RUnlock()
		return re, nil
	}
	rs.mu.RUnlock()

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if re, ok := rs.compiled[pattern]; ok {
		return re, nil
	}
	re, err := pcre.Compile(pattern)
	if err != nil {
		return nil, err
	}
	rs.compiled[pattern] = re
	return re, nil
}

// Parse identifies a user-agent string. An empty or unrecognized string
// returns a zero Result, never an error.
func Parse(userAgent string) Result {
	if userAgent == "" {
		return Result{}
	}

	rs := getRuleset()

	for _, bot := range rs.bots {
		re, err := rs.regexp(bot.Regex)
		if err != nil {
			continue
		}
		if re.MatchString(userAgent) {
			return Result{Bot: true, BotName: bot.Name}
		}
	}

	result := Result{}
	result.BrowserName, result.BrowserVersion = rs.matchClient(rs.browsers, userAgent)
	result.OSName, result.OSVersion = rs.matchClient(rs.oss, userAgent)
	result.OSVersion = strings.ReplaceAll(result.OSVersion, "_", ".")
	result.DeviceName = rs.matchDevice(userAgent)
	return result
}

func (rs *ruleset) matchClient(entries []clientRule, userAgent string) (string, string) {
	for _, entry := range entries {
		re, err := rs.regexp(entry.Regex)
		if err != nil {
			continue
		}
		// pcre returns an empty non-nil slice on no match.
		matches := re.FindStringSubmatch(userAgent)
		if len(matches) == 0 {
			continue
		}
		return entry.Name, substituteGroups(entry.Version, matches)
	}
	return "", ""
}

func (rs *ruleset) matchDevice(userAgent string) string {
	for _, entry := range rs.devices {
		re, err := rs.regexp(entry.Regex)
		if err != nil {
			continue
		}
		matches := re.FindStringSubmatch(userAgent)
		if len(matches) == 0 {
			continue
		}
		return strings.TrimSpace(substituteGroups(entry.Name, matches))
	}
	return ""
}

// substituteGroups replaces $1, $2, ... placeholders with capture groups
// from the rule's match.
func substituteGroups(template string, matches []string) string {
	if template == "" || len(matches) < 2 {
		return template
	}
	out := template
	for i, group := range matches[1:] {
		out = strings.ReplaceAll(out, fmt.Sprintf("$%d", i+1), group)
	}
	return out
}
