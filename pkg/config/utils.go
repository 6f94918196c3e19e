package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"style-watcher/pkg/logger"
)

const appDirName = "style-watcher"

// Dir returns the per-user directory holding config, history and logs.
func Dir() (string, error) {
	homeConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(homeConfigDir, appDirName), nil
}

// initializeConfig creates or loads the configuration.
func initializeConfig(providedPath string, defaultPath string, log *logger.Logger) (*Config, error) {
	var config *Config
	var err error

	// Try provided path first if specified
	if providedPath != "" {
		config, err = loadConfigFromPath(providedPath, log)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from provided path: %w", err)
		}
		return config, nil
	}

	// Try default path, create if doesn't exist
	if _, statErr := os.Stat(defaultPath); os.IsNotExist(statErr) {
		config, err = DefaultConfig(log)
		if err != nil {
			return nil, err
		}

		data, err := json.MarshalIndent(config, "", "    ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode default config: %w", err)
		}

		if err := os.WriteFile(defaultPath, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
		config.path = defaultPath
		log.Info("Wrote default configuration", "path", defaultPath)
		return config, nil
	}

	config, err = loadConfigFromPath(defaultPath, log)
	if err != nil {
		log.Warn("Falling back to default configuration", "path", defaultPath, "error", err)
		config, err = DefaultConfig(log)
		if err != nil {
			return nil, err
		}
		config.path = defaultPath
	}

	return config, nil
}

// FindConfig locates and initializes the configuration.
func FindConfig(providedPath string, log *logger.Logger) (*Config, error) {
	log.Info("Looking for configuration", "provided_path", providedPath)

	defaultConfigDir, err := Dir()
	if err != nil {
		log.Error("Failed to get user config directory", err)
		return nil, err
	}

	defaultConfigPath := filepath.Join(defaultConfigDir, "config.json")

	log.Debug("Configuration paths",
		"config_dir", defaultConfigDir,
		"config_path", defaultConfigPath)

	log.Debug("Ensuring directory exists", "path", defaultConfigDir)
	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		log.Error("Failed to create directory", err, "path", defaultConfigDir)
		return nil, err
	}

	return initializeConfig(providedPath, defaultConfigPath, log)
}
