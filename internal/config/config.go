package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sanfeliz/internal/order"
	"sanfeliz/internal/storage"
)

// Catalog backends.
const (
	SourceMemory     = "memory"
	SourcePostgres   = "postgres"
	SourceContentful = "contentful"
)

type Config struct {
	Port        string
	DatabaseURL string

	CatalogSource         string
	ContentfulSpaceID     string
	ContentfulAccessToken string
	ContentfulEnvironment string

	MercadoPagoAccessToken string
	MercadoPagoPublicKey   string
	SiteURL                string

	WhatsAppPhone string
	Order         order.Config
	SessionTTL    time.Duration

	R2 storage.R2Config

	AdminEmail    string
	AdminPassword string

	CORSOrigins []string
}

var required = []string{
	"JWT_SECRET",
	"MERCADOPAGO_ACCESS_TOKEN",
	"SITE_URL",
}

// Load reads the environment, loading .env first outside production.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			return nil, fmt.Errorf("missing env var: %s", k)
		}
	}

	cfg := &Config{
		Port:        getenv("PORT", "8000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		CatalogSource:         strings.ToLower(getenv("CATALOG_SOURCE", SourceMemory)),
		ContentfulSpaceID:     os.Getenv("CONTENTFUL_SPACE_ID"),
		ContentfulAccessToken: os.Getenv("CONTENTFUL_ACCESS_TOKEN"),
		ContentfulEnvironment: getenv("CONTENTFUL_ENVIRONMENT", "master"),

		MercadoPagoAccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
		MercadoPagoPublicKey:   os.Getenv("PUBLIC_MERCADOPAGO_PUBLIC_KEY"),
		SiteURL:                os.Getenv("SITE_URL"),

		WhatsAppPhone: getenv("WHATSAPP_PHONE", "+56967449210"),
		Order:         order.DefaultConfig(),
		SessionTTL:    2 * time.Hour,

		R2: storage.R2Config{
			Endpoint:      os.Getenv("R2_ENDPOINT"),
			AccessKey:     os.Getenv("R2_ACCESS_KEY"),
			SecretKey:     os.Getenv("R2_SECRET_KEY"),
			Bucket:        os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL: os.Getenv("R2_PUBLIC_BASE_URL"),
		},

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		CORSOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:3000,http://localhost:4321")),
	}

	if v := os.Getenv("CUSTOM_BOWL_PRICE"); v != "" {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("invalid CUSTOM_BOWL_PRICE %q", v)
		}
		cfg.Order.CustomizationSurcharge = price
	}
	if v := os.Getenv("CUSTOM_BOWL_NAME"); v != "" {
		cfg.Order.CustomizationName = v
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", v, err)
		}
		cfg.SessionTTL = ttl
	}

	switch cfg.CatalogSource {
	case SourceMemory:
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("CATALOG_SOURCE=%s requires DATABASE_URL", cfg.CatalogSource)
		}
	case SourceContentful:
		if cfg.ContentfulSpaceID == "" || cfg.ContentfulAccessToken == "" {
			return nil, fmt.Errorf("CATALOG_SOURCE=%s requires CONTENTFUL_SPACE_ID and CONTENTFUL_ACCESS_TOKEN", cfg.CatalogSource)
		}
	default:
		return nil, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.CatalogSource)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
