package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName       = "Kopiyka"
	defaultAppEnv        = "development"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultCurrencies    = "UAH,USD,EUR"
	defaultCurrencyCode  = "UAH"
	defaultTokenTTL      = time.Hour
	defaultRateLimit     = 5
	defaultShutdownDelay = 10 * time.Second
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName            string
	AppEnv             string
	Port               string
	LogLevel           string
	JWTSecret          string
	TokenTTL           time.Duration
	Currencies         []string
	DefaultCurrency    string
	RateLimitPerMinute int
	RedisURL           string
	ShutdownPeriod     time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:            getEnv("APP_NAME", defaultAppName),
		AppEnv:             getEnv("APP_ENV", defaultAppEnv),
		Port:               getEnv("PORT", defaultPort),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTL:           defaultTokenTTL,
		DefaultCurrency:    strings.ToUpper(getEnv("DEFAULT_CURRENCY", defaultCurrencyCode)),
		RateLimitPerMinute: defaultRateLimit,
		RedisURL:           os.Getenv("REDIS_URL"),
		ShutdownPeriod:     defaultShutdownDelay,
	}

	for _, code := range strings.Split(getEnv("CURRENCIES", defaultCurrencies), ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			cfg.Currencies = append(cfg.Currencies, code)
		}
	}
	if len(cfg.Currencies) == 0 {
		return Config{}, fmt.Errorf("CURRENCIES must list at least one code")
	}
	if !contains(cfg.Currencies, cfg.DefaultCurrency) {
		return Config{}, fmt.Errorf("DEFAULT_CURRENCY %s is not in CURRENCIES", cfg.DefaultCurrency)
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}

	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
		}
		cfg.RateLimitPerMinute = n
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownPeriod = d
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDev() {
			return Config{}, fmt.Errorf("JWT_SECRET must be set when APP_ENV=%s", cfg.AppEnv)
		}
		cfg.JWTSecret = "dev-only-secret"
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the app runs in a development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
