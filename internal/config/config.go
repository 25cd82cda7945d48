// Package config loads the gallery front end configuration from the
// environment via viper, with safe defaults for local development.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from environment variables.
type Config struct {
	// BackendBase is the backend API base URL, trailing slash trimmed.
	BackendBase string

	// APIKey is the optional backend API key, also the cache-clear
	// secret. Empty means unauthenticated and cache-clear disabled.
	APIKey string

	// CacheTTL is the response cache time-to-live.
	CacheTTL time.Duration

	// Port is the listen port for the HTTP server.
	Port string

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string

	// LogPretty enables human-readable console logs.
	LogPretty bool

	// AllowedOrigins is the CORS origin list ("*" allows all).
	AllowedOrigins []string

	// RateLimitRPS and RateLimitBurst configure the inbound token
	// bucket. RPS <= 0 disables rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("BACKEND_BASE", "http://localhost:9000")
	v.SetDefault("API_KEY", "")
	v.SetDefault("CACHE_TTL", 300) // seconds
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_RPS", 50.0)
	v.SetDefault("RATE_LIMIT_BURST", 100)

	ttlSeconds := v.GetInt("CACHE_TTL")
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("CACHE_TTL must be positive (got %d)", ttlSeconds)
	}

	cfg := &Config{
		BackendBase:    strings.TrimRight(v.GetString("BACKEND_BASE"), "/"),
		APIKey:         v.GetString("API_KEY"),
		CacheTTL:       time.Duration(ttlSeconds) * time.Second,
		Port:           v.GetString("PORT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogPretty:      v.GetBool("LOG_PRETTY"),
		AllowedOrigins: splitOrigins(v.GetString("ALLOWED_ORIGINS")),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
	}

	if cfg.BackendBase == "" {
		return nil, fmt.Errorf("BACKEND_BASE must not be empty")
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
