package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config holds everything the server needs, resolved once at startup and
// passed down explicitly. Values come from an optional YAML file with
// environment variables taking precedence.
type Config struct {
	// Port the HTTP server listens on.
	Port string `yaml:"port"`

	// Env is "production" or "development"; controls cookie Secure flag.
	Env string `yaml:"env"`

	// LogLevel: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// AllowedOrigins is the CORS allow-list for the storefront frontends.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// DatabaseURL is the read-write Postgres DSN used by admin handlers.
	DatabaseURL string `yaml:"database_url"`

	// ReadOnlyDatabaseURL is an optional lower-privilege DSN for the public
	// read-only endpoints. Empty means public reads share DatabaseURL.
	ReadOnlyDatabaseURL string `yaml:"readonly_database_url"`

	// AdminPassword seeds the singleton credential row when the table is empty.
	AdminPassword string `yaml:"admin_password"`

	// WhatsAppNumber receives contact inquiries (international format, digits only).
	WhatsAppNumber string `yaml:"whatsapp_number"`

	Storage StorageConfig `yaml:"storage"`
}

// StorageConfig configures the S3-compatible object store holding product images.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`

	// PublicBaseURL is the prefix public object URLs are built from.
	// Defaults to Endpoint + "/" + Bucket.
	PublicBaseURL string `yaml:"public_base_url"`
}

// Load reads the YAML file at path (skipped when path is empty or the file
// does not exist), then applies environment overrides.
//
// Environment variables:
//   - PORT
//   - APP_ENV: "production" or "development" (default: development)
//   - LOG_LEVEL
//   - ALLOWED_ORIGINS: comma-separated origin list
//   - DATABASE_URL (required)
//   - READONLY_DATABASE_URL
//   - ADMIN_PASSWORD
//   - WHATSAPP_NUMBER
//   - S3_ENDPOINT, S3_REGION, S3_BUCKET, S3_ACCESS_KEY, S3_SECRET_KEY, S3_PUBLIC_BASE_URL
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:     "5050",
		Env:      "development",
		LogLevel: "info",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	if cfg.Storage.PublicBaseURL == "" && cfg.Storage.Endpoint != "" {
		cfg.Storage.PublicBaseURL = strings.TrimRight(cfg.Storage.Endpoint, "/") + "/" + cfg.Storage.Bucket
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	setIfPresent(&cfg.Port, "PORT")
	setIfPresent(&cfg.Env, "APP_ENV")
	setIfPresent(&cfg.LogLevel, "LOG_LEVEL")
	setIfPresent(&cfg.DatabaseURL, "DATABASE_URL")
	setIfPresent(&cfg.ReadOnlyDatabaseURL, "READONLY_DATABASE_URL")
	setIfPresent(&cfg.AdminPassword, "ADMIN_PASSWORD")
	setIfPresent(&cfg.WhatsAppNumber, "WHATSAPP_NUMBER")
	setIfPresent(&cfg.Storage.Endpoint, "S3_ENDPOINT")
	setIfPresent(&cfg.Storage.Region, "S3_REGION")
	setIfPresent(&cfg.Storage.Bucket, "S3_BUCKET")
	setIfPresent(&cfg.Storage.AccessKey, "S3_ACCESS_KEY")
	setIfPresent(&cfg.Storage.SecretKey, "S3_SECRET_KEY")
	setIfPresent(&cfg.Storage.PublicBaseURL, "S3_PUBLIC_BASE_URL")

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = cfg.AllowedOrigins[:0]
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// IsProduction reports whether the server should use production cookie settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
