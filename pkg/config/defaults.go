package config

import (
	"fmt"

	"style-watcher/pkg/logger"
)

const (
	DefaultMethod                = "POST"
	DefaultJSONKey               = "code"
	DefaultTimeoutSeconds        = 10
	DefaultHotkey                = "Alt+S"
	DefaultSettleDelayMs         = 120
	DefaultDebounceMs            = 500
	DefaultTopN                  = 10
	DefaultHistoryRetentionHours = 24 * 7
)

// DefaultSizeVocabulary lists the size tokens recognised in sales lines.
var DefaultSizeVocabulary = []string{"S", "M", "L", "XL", "2XL", "3XL", "4XL"}

// DefaultConfig creates a default configuration.
func DefaultConfig(log *logger.Logger) (*Config, error) {
	log.Debug("Creating default configuration")

	config := &Config{
		apiURL:                "http://127.0.0.1:8080/query",
		method:                DefaultMethod,
		jsonKey:               DefaultJSONKey,
		timeoutSeconds:        DefaultTimeoutSeconds,
		hotkey:                DefaultHotkey,
		settleDelayMs:         DefaultSettleDelayMs,
		debounceMs:            DefaultDebounceMs,
		topN:                  DefaultTopN,
		sizeVocabulary:        append([]string{}, DefaultSizeVocabulary...),
		historyRetentionHours: DefaultHistoryRetentionHours,
		window: WindowConfig{
			Width:    1000,
			Height:   700,
			FontSize: 12,
		},
		log: log,
	}

	if err := config.validate(); err != nil {
		log.Error("Failed to validate default config", err)
		return nil, fmt.Errorf("failed to validate default config: %w", err)
	}

	log.Info("Created default configuration",
		"api_url", config.apiURL,
		"hotkey", config.hotkey)

	return config, nil
}
