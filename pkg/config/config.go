package config

import (
	"time"

	"style-watcher/pkg/logger"
)

// WindowConfig controls the result window.
type WindowConfig struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	FontSize    float32 `json:"font_size"`
	AlwaysOnTop bool    `json:"always_on_top"`
}

// Config holds the application configuration.
type Config struct {
	// Configurable via JSON file (private fields to enforce immutability)
	apiURL                string
	method                string
	jsonKey               string
	timeoutSeconds        int
	hotkey                string
	settleDelayMs         int
	debounceMs            int
	topN                  int
	sizeVocabulary        []string
	notifyCommand         string
	historyRetentionHours int
	window                WindowConfig

	// Internal fields
	path string
	log  *logger.Logger
}

// New creates a new Config instance with the provided logger.
func New(log *logger.Logger) *Config {
	return &Config{
		log: log,
	}
}

// GetAPIURL returns the query endpoint.
func (c *Config) GetAPIURL() string {
	return c.apiURL
}

// GetMethod returns the HTTP method used for queries, GET or POST.
func (c *Config) GetMethod() string {
	return c.method
}

// GetJSONKey returns the request field carrying the captured text.
func (c *Config) GetJSONKey() string {
	return c.jsonKey
}

// GetTimeout returns the query timeout.
func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.timeoutSeconds) * time.Second
}

// GetHotkey returns the hotkey chord, e.g. "Alt+S".
func (c *Config) GetHotkey() string {
	return c.hotkey
}

// GetSettleDelay returns the wait after a synthetic copy.
func (c *Config) GetSettleDelay() time.Duration {
	return time.Duration(c.settleDelayMs) * time.Millisecond
}

// GetDebounce returns the window in which repeated triggers are ignored.
func (c *Config) GetDebounce() time.Duration {
	return time.Duration(c.debounceMs) * time.Millisecond
}

// GetTopN returns how many entries the size and color breakdowns keep.
func (c *Config) GetTopN() int {
	return c.topN
}

// GetSizeVocabulary returns a copy of the known size tokens.
func (c *Config) GetSizeVocabulary() []string {
	return append([]string{}, c.sizeVocabulary...)
}

// GetNotifyCommand returns the notify command.
func (c *Config) GetNotifyCommand() string {
	return c.notifyCommand
}

// GetHistoryRetention returns how long query history is kept.
func (c *Config) GetHistoryRetention() time.Duration {
	return time.Duration(c.historyRetentionHours) * time.Hour
}

// GetWindow returns the result window settings.
func (c *Config) GetWindow() WindowConfig {
	return c.window
}

// GetPath returns the file the config was loaded from, if any.
func (c *Config) GetPath() string {
	return c.path
}
