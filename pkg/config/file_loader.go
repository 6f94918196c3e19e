package config

import (
	"encoding/json"
	"fmt"
	"os"

	"style-watcher/pkg/logger"
)

// fileConfig is the on-disk JSON shape.
type fileConfig struct {
	APIURL                string       `json:"api_url"`
	Method                string       `json:"method"`
	JSONKey               string       `json:"json_key"`
	TimeoutSeconds        int          `json:"timeout_seconds"`
	Hotkey                string       `json:"hotkey"`
	SettleDelayMs         int          `json:"settle_delay_ms"`
	DebounceMs            int          `json:"debounce_ms"`
	TopN                  int          `json:"top_n"`
	SizeVocabulary        []string     `json:"size_vocabulary"`
	NotifyCommand         string       `json:"notify_command"`
	HistoryRetentionHours int          `json:"history_retention_hours"`
	Window                WindowConfig `json:"window"`
}

// LoadFromFile loads the configuration from a JSON file.
func (c *Config) LoadFromFile(path string, log *logger.Logger) error {
	log.Debug("Loading configuration from file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("Failed to read config file", err, "path", path)
		return err
	}
	log.Debug("Config file read successfully", "size_bytes", len(data))

	// Unset keys fall back to defaults in validate; debounce keeps an explicit 0.
	temp := fileConfig{DebounceMs: DefaultDebounceMs}
	if err := json.Unmarshal(data, &temp); err != nil {
		log.Error("Failed to parse config JSON", err)
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	log.Debug("Config JSON parsed successfully")

	// Assign to private fields
	c.apiURL = temp.APIURL
	c.method = temp.Method
	c.jsonKey = temp.JSONKey
	c.timeoutSeconds = temp.TimeoutSeconds
	c.hotkey = temp.Hotkey
	c.settleDelayMs = temp.SettleDelayMs
	c.debounceMs = temp.DebounceMs
	c.topN = temp.TopN
	c.sizeVocabulary = temp.SizeVocabulary
	c.notifyCommand = temp.NotifyCommand
	c.historyRetentionHours = temp.HistoryRetentionHours
	c.window = temp.Window
	c.path = path

	return c.validate()
}

// MarshalJSON writes the config in its on-disk shape.
func (c *Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(fileConfig{
		APIURL:                c.apiURL,
		Method:                c.method,
		JSONKey:               c.jsonKey,
		TimeoutSeconds:        c.timeoutSeconds,
		Hotkey:                c.hotkey,
		SettleDelayMs:         c.settleDelayMs,
		DebounceMs:            c.debounceMs,
		TopN:                  c.topN,
		SizeVocabulary:        c.sizeVocabulary,
		NotifyCommand:         c.notifyCommand,
		HistoryRetentionHours: c.historyRetentionHours,
		Window:                c.window,
	})
}

// loadConfigFromPath loads the configuration from a file.
func loadConfigFromPath(path string, log *logger.Logger) (*Config, error) {
	config := &Config{log: log}
	if err := config.LoadFromFile(path, log); err != nil {
		return nil, err
	}
	return config, nil
}
