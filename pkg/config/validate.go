package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate fills zero values with defaults and rejects settings the
// capture cycle cannot work with.
func (c *Config) validate() error {
	log := c.log
	log.Debug("Validating configuration")

	c.method = strings.ToUpper(strings.TrimSpace(c.method))
	switch c.method {
	case "":
		c.method = DefaultMethod
	case "GET", "POST":
	default:
		return fmt.Errorf("unsupported method %q: use GET or POST", c.method)
	}

	if strings.TrimSpace(c.apiURL) == "" {
		return fmt.Errorf("api_url is required")
	}
	if u, err := url.Parse(c.apiURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_url %q", c.apiURL)
	}

	if c.jsonKey == "" {
		c.jsonKey = DefaultJSONKey
	}
	if c.timeoutSeconds <= 0 {
		c.timeoutSeconds = DefaultTimeoutSeconds
	}
	if strings.TrimSpace(c.hotkey) == "" {
		c.hotkey = DefaultHotkey
	}
	if c.settleDelayMs <= 0 {
		c.settleDelayMs = DefaultSettleDelayMs
	}
	if c.debounceMs < 0 {
		c.debounceMs = DefaultDebounceMs
	}
	if c.topN <= 0 {
		c.topN = DefaultTopN
	}
	if c.historyRetentionHours <= 0 {
		c.historyRetentionHours = DefaultHistoryRetentionHours
	}
	if c.window.Width <= 0 {
		c.window.Width = 1000
	}
	if c.window.Height <= 0 {
		c.window.Height = 700
	}
	if c.window.FontSize <= 0 {
		c.window.FontSize = 12
	}

	c.sizeVocabulary = normalizeSizes(c.sizeVocabulary)
	if len(c.sizeVocabulary) == 0 {
		c.sizeVocabulary = append([]string{}, DefaultSizeVocabulary...)
	}

	log.Debug("Configuration validated",
		"method", c.method,
		"size_count", len(c.sizeVocabulary),
		"top_n", c.topN)
	return nil
}

// normalizeSizes upper-cases, trims and de-duplicates size tokens, keeping order.
func normalizeSizes(sizes []string) []string {
	seen := make(map[string]bool, len(sizes))
	out := make([]string, 0, len(sizes))
	for _, s := range sizes {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
