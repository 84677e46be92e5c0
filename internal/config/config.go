// ABOUTME: Configuration loader for the HirePrep CLI
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Gateway
	APIURL string // portal gateway base URL (default: http://localhost:8080)

	// Local state
	ConfigDir string // directory holding the session credential file

	// HireGenie
	AnthropicAPIKey string
	GenieModel      string // Anthropic model ID (default: claude-sonnet-4-20250514)

	// UX
	NoticeTTL time.Duration // how long success notices stay visible (default 5s)
}

// Load reads configuration from the environment.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIURL:          getEnv("HIREPREP_API_URL", "http://localhost:8080"),
		ConfigDir:       getEnv("HIREPREP_CONFIG_DIR", DefaultConfigDir()),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		GenieModel:      getEnv("HIREPREP_GENIE_MODEL", "claude-sonnet-4-20250514"),
		NoticeTTL:       time.Duration(getEnvInt("HIREPREP_SUCCESS_NOTICE_TTL", 5)) * time.Second,
	}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hireprep")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hireprep")
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
