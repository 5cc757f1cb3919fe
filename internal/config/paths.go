package config

import (
	"os"
	"path/filepath"
)

// MinutePath returns the root directory for Minute data.
// It uses $MINUTE_PATH if set, otherwise defaults to ~/.minute.
func MinutePath() string {
	if v := os.Getenv("MINUTE_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".minute")
	}
	return filepath.Join(home, ".minute")
}

// ConfigPath returns the path to the Minute config file.
func ConfigPath() string {
	return filepath.Join(MinutePath(), "config.jsonc")
}

// DotenvPath returns the path to the Minute .env file.
func DotenvPath() string {
	return filepath.Join(MinutePath(), ".env")
}
