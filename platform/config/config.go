// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
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

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
	GetMigrationsDir() string
}

// JWTConfig provides access-token validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// IntakeConfig provides settings for the public lead intake webhook.
type IntakeConfig interface {
	GetIntakeAPIKey() string
}

// CacheConfig provides settings for the worklist cache.
type CacheConfig interface {
	GetRedisURL() string
	GetProspectCacheTTL() time.Duration
}

// SchedulerConfig provides settings for the asynq client and worker.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// CallWebhookConfig provides settings for the outbound call automation webhook.
type CallWebhookConfig interface {
	GetCallWebhookURL() string
	GetCallWebhookTimeout() time.Duration
	IsCallWebhookEnabled() bool
}

// PhoneConfig provides phone parsing defaults.
type PhoneConfig interface {
	GetPhoneDefaultRegion() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string
	HTTPAddr           string
	DatabaseURL        string
	MigrationsDir      string
	JWTAccessSecret    string
	CORSAllowAll       bool
	CORSOrigins        []string
	CORSAllowCreds     bool
	IntakeAPIKey       string
	RedisURL           string
	RedisTLSInsecure   bool
	AsynqQueueName     string
	AsynqConcurrency   int
	ProspectCacheTTL   time.Duration
	CallWebhookURL     string
	CallWebhookTimeout time.Duration
	PhoneDefaultRegion string
}

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string   { return c.DatabaseURL }
func (c *Config) GetMigrationsDir() string { return c.MigrationsDir }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// IntakeConfig implementation
func (c *Config) GetIntakeAPIKey() string { return c.IntakeAPIKey }

// CacheConfig / SchedulerConfig implementation
func (c *Config) GetRedisURL() string                { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool          { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string          { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int           { return c.AsynqConcurrency }
func (c *Config) GetProspectCacheTTL() time.Duration { return c.ProspectCacheTTL }

// CallWebhookConfig implementation
func (c *Config) GetCallWebhookURL() string            { return c.CallWebhookURL }
func (c *Config) GetCallWebhookTimeout() time.Duration { return c.CallWebhookTimeout }
func (c *Config) IsCallWebhookEnabled() bool           { return c.CallWebhookURL != "" }

// PhoneConfig implementation
func (c *Config) GetPhoneDefaultRegion() string { return c.PhoneDefaultRegion }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	var errs []error
	asynqConcurrency := parseInt("ASYNQ_CONCURRENCY", 10, &errs)
	prospectCacheTTL := parseDuration("PROSPECT_CACHE_TTL", 60*time.Second, &errs)
	callWebhookTimeout := parseDuration("CALL_WEBHOOK_TIMEOUT", 10*time.Second, &errs)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", "migrations"),
		JWTAccessSecret:    getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		CORSAllowCreds:     strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		IntakeAPIKey:       getEnv("INTAKE_API_KEY", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		RedisTLSInsecure:   strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:     getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:   asynqConcurrency,
		ProspectCacheTTL:   prospectCacheTTL,
		CallWebhookURL:     getEnv("CALL_WEBHOOK_URL", ""),
		CallWebhookTimeout: callWebhookTimeout,
		PhoneDefaultRegion: strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "MX")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWTAccessSecret == "" {
		return errors.New("JWT_ACCESS_SECRET is required")
	}
	if c.CORSAllowAll && c.CORSAllowCreds {
		return errors.New("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if c.ProspectCacheTTL < 0 {
		return errors.New("PROSPECT_CACHE_TTL must not be negative")
	}
	if c.AsynqConcurrency < 1 {
		return errors.New("ASYNQ_CONCURRENCY must be at least 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// parseDuration reads key as a Go duration. A malformed value is recorded in
// errs instead of silently becoming zero.
func parseDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return fallback
	}
	return d
}

func parseInt(key string, fallback int, errs *[]error) int {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, raw))
		return fallback
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
