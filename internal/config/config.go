// Package config loads application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultSessionSecret = "secret_key_change_me"

// Config holds application configuration values.
type Config struct {
	Env                 string `mapstructure:"APP_ENV"`
	Port                string `mapstructure:"PORT"`
	DBDriver            string `mapstructure:"DB_DRIVER"`
	DatabaseURL         string `mapstructure:"DATABASE_URL"`
	SessionSecret       string `mapstructure:"SESSION_SECRET"`
	MediaRoot           string `mapstructure:"MEDIA_ROOT"`
	MaxUploadMB         int    `mapstructure:"MAX_UPLOAD_MB"`
	MaxImageMegapixels  int    `mapstructure:"MAX_IMAGE_MEGAPIXELS"`
	PageCacheTTLSeconds int    `mapstructure:"PAGE_CACHE_TTL_SECONDS"`
	PageCacheSize       int    `mapstructure:"PAGE_CACHE_SIZE"`
	RedisURL            string `mapstructure:"REDIS_URL"`
	LogLevel            string `mapstructure:"LOG_LEVEL"`
	SeedGroups          string `mapstructure:"SEED_GROUPS"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, reading env vars from system")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=yatube port=5432 sslmode=disable")
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("MEDIA_ROOT", "./media")
	v.SetDefault("MAX_UPLOAD_MB", 5)
	v.SetDefault("MAX_IMAGE_MEGAPIXELS", 40)
	v.SetDefault("PAGE_CACHE_TTL_SECONDS", 20)
	v.SetDefault("PAGE_CACHE_SIZE", 500)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SEED_GROUPS", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate ensures required values are present and sane.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.PageCacheTTLSeconds <= 0 {
		return errors.New("PAGE_CACHE_TTL_SECONDS must be positive")
	}
	if c.PageCacheSize <= 0 {
		return errors.New("PAGE_CACHE_SIZE must be positive")
	}
	if c.MaxUploadMB <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	if c.MaxImageMegapixels <= 0 {
		return errors.New("MAX_IMAGE_MEGAPIXELS must be positive")
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if c.IsProduction() && c.SessionSecret == defaultSessionSecret {
		return errors.New("SESSION_SECRET must be changed from the default value in production")
	}
	return nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// PageCacheTTL is how long a cached feed page is served before re-rendering.
func (c *Config) PageCacheTTL() time.Duration {
	return time.Duration(c.PageCacheTTLSeconds) * time.Second
}

// MaxUploadBytes is the largest accepted image payload.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// MaxImagePixels caps width*height of an uploaded image.
func (c *Config) MaxImagePixels() int64 {
	return int64(c.MaxImageMegapixels) * 1_000_000
}

// GroupSeeds parses SEED_GROUPS ("slug:Title,slug2:Title 2") into
// slug/title pairs. Entries without a title use the slug.
func (c *Config) GroupSeeds() [][2]string {
	var seeds [][2]string
	for _, part := range strings.Split(c.SeedGroups, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		slug, title, found := strings.Cut(part, ":")
		slug = strings.TrimSpace(slug)
		title = strings.TrimSpace(title)
		if slug == "" {
			continue
		}
		if !found || title == "" {
			title = slug
		}
		seeds = append(seeds, [2]string{slug, title})
	}
	return seeds
}
