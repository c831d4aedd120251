package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"skip-checkout/db"
	"skip-checkout/progress"
	"skip-checkout/service"
)

// Catalog sources
const (
	CatalogSourceAPI      = "api"
	CatalogSourcePostgres = "postgres"
)

// Config holds everything read from the environment
type Config struct {
	Env              string
	Port             string
	BaseURL          string
	LogLevel         string
	CatalogSource    string
	CatalogAPIURL    string
	CatalogTimeout   time.Duration
	CatalogRateLimit float64
	DefaultPostcode  string
	DefaultArea      string
	InitialStep      int
	StatsdAddr       string
	ChromePath       string
	AssetsDir        string
	Database         db.Settings
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CatalogSource:   strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourceAPI)),
		CatalogAPIURL:   getEnv("CATALOG_API_URL", service.DefaultCatalogAPIURL),
		DefaultPostcode: getEnv("DEFAULT_POSTCODE", "NR32"),
		DefaultArea:     getEnv("DEFAULT_AREA", "Lowestoft"),
		StatsdAddr:      os.Getenv("STATSD_ADDR"),
		ChromePath:      os.Getenv("CHROME_PATH"),
		AssetsDir:       getEnv("ASSETS_DIR", "assets"),
		Database: db.Settings{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},
	}

	// Remove leading colon if present (PORT from Render doesn't include it)
	cfg.Port = strings.TrimPrefix(getEnv("PORT", "8080"), ":")
	cfg.BaseURL = strings.TrimSuffix(getEnv("BASE_URL", "http://localhost:"+cfg.Port), "/")

	if cfg.CatalogSource != CatalogSourceAPI && cfg.CatalogSource != CatalogSourcePostgres {
		return nil, errors.Errorf("CATALOG_SOURCE must be %q or %q, got %q", CatalogSourceAPI, CatalogSourcePostgres, cfg.CatalogSource)
	}

	var err error
	if cfg.CatalogTimeout, err = time.ParseDuration(getEnv("CATALOG_TIMEOUT", "10s")); err != nil {
		return nil, errors.Wrap(err, "invalid CATALOG_TIMEOUT")
	}
	if cfg.CatalogRateLimit, err = strconv.ParseFloat(getEnv("CATALOG_RATE_LIMIT", "5"), 64); err != nil {
		return nil, errors.Wrap(err, "invalid CATALOG_RATE_LIMIT")
	}
	if cfg.InitialStep, err = strconv.Atoi(getEnv("INITIAL_STEP", strconv.Itoa(progress.StepSelectSkip))); err != nil {
		return nil, errors.Wrap(err, "invalid INITIAL_STEP")
	}
	if _, err := progress.New(cfg.InitialStep); err != nil {
		return nil, errors.Wrap(err, "invalid INITIAL_STEP")
	}

	return cfg, nil
}

// IsProduction reports whether ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
