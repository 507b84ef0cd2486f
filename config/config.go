// Package config handles runtime configuration for the solpay CLI.
//
// There are no protocol knobs here: the payment-URL wire format is fixed.
// Configuration covers only where the mint metadata cache lives, which extra
// mints to preload, and how to log.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds runtime settings.
type Config struct {
	// DataDir is the root directory for the mint metadata cache.
	DataDir string

	// MintsFile optionally points to a .conf file mapping base58 mint
	// addresses to decimals, preloaded into the cache at startup.
	MintsFile string

	// Log holds logging settings.
	Log LogConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string // debug, info, warn, error
	JSON  bool   // JSON output instead of colored console
	File  string // optional log file (always JSON)
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultDataDir returns the platform-specific default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".solpay"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Solpay")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Solpay")
		}
		return filepath.Join(home, "Solpay")
	default:
		return filepath.Join(home, ".solpay")
	}
}

// Apply overlays file values onto the config.
func Apply(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

// setValue sets a config value by key.
func setValue(cfg *Config, key, value string) error {
	switch key {
	case "datadir":
		cfg.DataDir = value
	case "mints":
		cfg.MintsFile = value
	case "log.level":
		switch value {
		case "debug", "info", "warn", "error":
			cfg.Log.Level = value
		default:
			return fmt.Errorf("invalid log level %q", value)
		}
	case "log.json":
		switch value {
		case "true", "1":
			cfg.Log.JSON = true
		case "false", "0":
			cfg.Log.JSON = false
		default:
			return fmt.Errorf("invalid bool %q", value)
		}
	case "log.file":
		cfg.Log.File = value
	default:
		return fmt.Errorf("unknown key")
	}
	return nil
}
