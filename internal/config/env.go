package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read as flag defaults.
const (
	EnvDB       = "SUSHI_DB"
	EnvConfig   = "SUSHI_CONFIG"
	EnvSSHAddr  = "SUSHI_SSH_ADDR"
	EnvLogLevel = "SUSHI_LOG_LEVEL"
)

// LoadEnv loads variables from the given .env files (default ./.env).
// Variables already set in the process environment win. A missing file is
// not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// EnvOr returns the value of key, or fallback when unset or empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
