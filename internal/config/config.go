package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all gateway configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	AddressKit AddressKitConfig
	Redis      RedisConfig
	RateLimit  RateLimitConfig
	CORS       CORSConfig
}

// AddressKitConfig configures the upstream AddressKit client.
type AddressKitConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Debug     bool
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RateLimitConfig controls the per-IP fixed window limiter.
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

// CORSConfig lists the origin hosts allowed to call the gateway from a browser.
type CORSConfig struct {
	AllowedHosts []string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first.
func Load() (*Config, error) {
	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")

	// Upstream
	cfg.AddressKit = AddressKitConfig{
		BaseURL:   getEnv("ADDRESSKIT_BASE_URL", "https://addresskit.cas.so"),
		UserAgent: getEnv("ADDRESSKIT_USER_AGENT", ""),
		Debug:     getEnvBool("ADDRESSKIT_DEBUG", cfg.Env == "development"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Rate limiting
	cfg.RateLimit = RateLimitConfig{
		Enabled:  getEnvBool("RATE_LIMIT_ENABLED", false),
		Requests: getEnvInt("RATE_LIMIT_REQUESTS", 60),
	}

	cfg.CORS = CORSConfig{
		AllowedHosts: splitList(getEnv("CORS_ALLOWED_HOSTS", "localhost:3000,127.0.0.1:3000")),
	}

	var err error
	if cfg.AddressKit.Timeout, err = parseDurationEnv("ADDRESSKIT_TIMEOUT", "10s"); err != nil {
		return nil, fmt.Errorf("invalid ADDRESSKIT_TIMEOUT: %w", err)
	}
	if cfg.RateLimit.Window, err = parseDurationEnv("RATE_LIMIT_WINDOW", "1m"); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}

	if cfg.AddressKit.Timeout == 0 {
		return nil, errors.New("ADDRESSKIT_TIMEOUT must be greater than zero")
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window == 0) {
		return nil, errors.New("rate limiting enabled but RATE_LIMIT_REQUESTS or RATE_LIMIT_WINDOW is not positive")
	}

	return cfg, nil
}

// Headers returns the extra upstream headers derived from the configuration.
func (c AddressKitConfig) Headers() map[string]string {
	if c.UserAgent == "" {
		return nil
	}
	return map[string]string{"User-Agent": c.UserAgent}
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
