package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the configuration for the application.
type Config struct {
	// APIBaseURL is the root of the recipe/menu API, without a trailing slash.
	APIBaseURL string
	// APIToken is an optional bearer token attached to every request.
	APIToken string
	// CacheDBPath is where the local SQLite cache lives.
	CacheDBPath string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	baseURL := os.Getenv("MENU_API_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("MENU_API_URL environment variable not set")
	}

	token := os.Getenv("MENU_API_TOKEN")

	cachePath := os.Getenv("MENU_CACHE_DB_PATH")
	if cachePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory for cache: %w", err)
		}
		cachePath = filepath.Join(home, ".menu-planner", "cache.db")
	}

	return &Config{
		APIBaseURL:  baseURL,
		APIToken:    token,
		CacheDBPath: cachePath,
	}, nil
}
