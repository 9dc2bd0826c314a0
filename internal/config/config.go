package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	APIPrefix   string   `env:"API_PREFIX" envDefault:"/api/v1"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	DatabaseURL string `env:"DATABASE_URL"`

	StoreDriver     string `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI        string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase   string `env:"MONGO_DATABASE" envDefault:"estate"`
	MongoCollection string `env:"MONGO_COLLECTION" envDefault:"properties"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret"`
	TokenTTL  time.Duration `env:"JWT_TTL" envDefault:"24h"`

	RateLimitRaw string `env:"RATE_LIMIT" envDefault:"100/15m"`
	RateLimit    RateLimitConfig

	CacheSize int64         `env:"CACHE_SIZE" envDefault:"1000"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"1m"`

	MediaBaseURL      string `env:"MEDIA_BASE_URL"`
	MediaUploadPreset string `env:"MEDIA_UPLOAD_PRESET"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	rl, err := parseRateLimit(cfg.RateLimitRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT value: %w", err)
	}
	cfg.RateLimit = rl

	switch cfg.StoreDriver {
	case "mongo", "memory":
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	cfg.APIPrefix = "/" + strings.Trim(cfg.APIPrefix, "/")
	if cfg.APIPrefix == "/" {
		cfg.APIPrefix = ""
	}

	return cfg, nil
}

// parseRateLimit accepts "<requests>/<interval>" where the interval is either a
// unit word ("min") or a Go duration ("15m").
func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		d, err := time.ParseDuration(unit)
		if err != nil || d <= 0 {
			return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
		}
		interval = d
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}
