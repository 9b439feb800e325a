package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// SyncConfig drives the catalog-sync worker.
type SyncConfig struct {
	DatabaseURL string

	ContentfulSpaceID     string
	ContentfulAccessToken string
	ContentfulEnvironment string

	// Interval between runs; zero runs once.
	Interval time.Duration
}

func (c SyncConfig) FromContentful() bool {
	return c.ContentfulSpaceID != "" && c.ContentfulAccessToken != ""
}

func LoadSync() (*SyncConfig, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := &SyncConfig{
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		ContentfulSpaceID:     os.Getenv("CONTENTFUL_SPACE_ID"),
		ContentfulAccessToken: os.Getenv("CONTENTFUL_ACCESS_TOKEN"),
		ContentfulEnvironment: getenv("CONTENTFUL_ENVIRONMENT", "master"),
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("missing env var: DATABASE_URL")
	}

	if v := os.Getenv("CATALOG_SYNC_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid CATALOG_SYNC_INTERVAL %q", v)
		}
		cfg.Interval = d
	}

	return cfg, nil
}
