// Package config reads the dashboard settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"dashboard/internal/domain"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	// HTTP server
	Addr   string
	WebDir string

	// Logging
	LogLevel  string
	LogFormat string

	// Storage
	StoreBackend string
	RedisURL     string
	DatabaseURL  string

	// Age card
	BirthDate  string
	ChildLabel string

	// Prices
	PriceSymbols      []string
	FXPair            string
	PricePollInterval time.Duration
	BinanceBaseURL    string
	HTTPTimeout       time.Duration
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(files ...string) *Config {
	_ = godotenv.Load(files...)

	return &Config{
		Addr:   getEnv("ADDR", ":8080"),
		WebDir: getEnv("WEB_DIR", "web"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		StoreBackend: getEnv("STORE_BACKEND", BackendMemory),
		RedisURL:     getEnv("REDIS_URL", ""),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		BirthDate:  getEnv("BIRTH_DATE", "2025-07-06"),
		ChildLabel: getEnv("CHILD_LABEL", "Sari"),

		PriceSymbols:      getEnvList("PRICE_SYMBOLS", []string{"BTC", "SOL"}),
		FXPair:            getEnv("FX_PAIR", "USDTARS"),
		PricePollInterval: getEnvDuration("PRICE_POLL_INTERVAL", 6*time.Second),
		BinanceBaseURL:    getEnv("BINANCE_BASE_URL", "https://api.binance.com"),
		HTTPTimeout:       getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
	}
}

// Validate returns an error listing every invalid setting.
func (c *Config) Validate() error {
	var errs []string

	if c.Addr == "" {
		errs = append(errs, "listen address cannot be empty")
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	validBackends := []string{BackendMemory, BackendRedis, BackendPostgres}
	if !slices.Contains(validBackends, c.StoreBackend) {
		errs = append(errs, fmt.Sprintf("invalid store backend '%s': must be one of %v", c.StoreBackend, validBackends))
	}
	switch c.StoreBackend {
	case BackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, "REDIS_URL is required when using redis backend")
		} else if u, err := url.Parse(c.RedisURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid REDIS_URL: %v", err))
		} else if u.Scheme != "redis" && u.Scheme != "rediss" {
			errs = append(errs, fmt.Sprintf("invalid REDIS_URL scheme '%s': must be 'redis' or 'rediss'", u.Scheme))
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required when using postgres backend")
		}
	}

	if _, err := domain.ParseCivilDate(c.BirthDate); err != nil {
		errs = append(errs, fmt.Sprintf("invalid BIRTH_DATE: %v", err))
	}

	if c.FXPair != "" && !strings.HasPrefix(c.FXPair, "USDT") {
		errs = append(errs, fmt.Sprintf("invalid FX_PAIR '%s': must start with USDT", c.FXPair))
	}
	if c.PricePollInterval < time.Second {
		errs = append(errs, fmt.Sprintf("invalid price poll interval %v: must be at least 1 second", c.PricePollInterval))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("invalid HTTP timeout %v: must be positive", c.HTTPTimeout))
	}
	if u, err := url.Parse(c.BinanceBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("invalid BINANCE_BASE_URL '%s'", c.BinanceBaseURL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// PriceFeeds returns the crypto feeds followed by the dollar feed, if any.
func (c *Config) PriceFeeds() []domain.PriceFeed {
	feeds := make([]domain.PriceFeed, 0, len(c.PriceSymbols)+1)
	for _, s := range c.PriceSymbols {
		feeds = append(feeds, domain.CryptoFeed(s))
	}
	if c.FXPair != "" {
		feeds = append(feeds, domain.FXFeed(c.FXPair))
	}
	return feeds
}

// ParseLevel maps a LOG_LEVEL value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level '%s': must be debug, info, warn or error", s)
	}
	return l, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToUpper(part))
		}
	}
	return out
}
