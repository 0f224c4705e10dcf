// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
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
}

// RedisConfig provides Redis connection settings shared by the cache and the
// job queue. A single REDIS_URL connection string selects between the plain
// and the managed/TLS profile (rediss://); the insecure flag relaxes
// certificate verification for managed instances with self-signed chains.
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
}

// CacheConfig provides settings for the lead cache.
type CacheConfig interface {
	RedisConfig
	GetCacheTTL() time.Duration
}

// QueueConfig provides settings for the asynq job queue.
type QueueConfig interface {
	RedisConfig
	GetQueueName() string
	GetQueueConcurrency() int
	GetSyncMaxRetry() int
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// AuthConfig provides the shared-secret API key for protected endpoints.
type AuthConfig interface {
	GetAPIKey() string
}

// AIConfig provides settings for the AI completion provider.
type AIConfig interface {
	GetAIAPIKey() string
	GetAIBaseURL() string
	GetAIModel() string
	IsAIEnabled() bool
}

// SyncConfig provides settings for the external directory sync.
type SyncConfig interface {
	GetDirectoryURL() string
	GetDirectoryLocales() string
	GetSyncDefaultCount() int
	GetSyncInterval() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env              string
	HTTPAddr         string
	DatabaseURL      string
	RedisURL         string
	RedisTLSInsecure bool
	APIKey           string
	CORSAllowAll     bool
	CORSOrigins      []string
	CacheTTL         time.Duration
	QueueName        string
	QueueConcurrency int
	SyncMaxRetry     int
	AIAPIKey         string
	AIBaseURL        string
	AIModel          string
	DirectoryURL     string
	DirectoryLocales string
	SyncDefaultCount int
	SyncInterval     time.Duration
}

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// RedisConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }

// CacheConfig implementation
func (c *Config) GetCacheTTL() time.Duration { return c.CacheTTL }

// QueueConfig implementation
func (c *Config) GetQueueName() string     { return c.QueueName }
func (c *Config) GetQueueConcurrency() int { return c.QueueConcurrency }
func (c *Config) GetSyncMaxRetry() int     { return c.SyncMaxRetry }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// AuthConfig implementation
func (c *Config) GetAPIKey() string { return c.APIKey }

// AIConfig implementation
func (c *Config) GetAIAPIKey() string  { return c.AIAPIKey }
func (c *Config) GetAIBaseURL() string { return c.AIBaseURL }
func (c *Config) GetAIModel() string   { return c.AIModel }
func (c *Config) IsAIEnabled() bool    { return c.AIAPIKey != "" }

// SyncConfig implementation
func (c *Config) GetDirectoryURL() string        { return c.DirectoryURL }
func (c *Config) GetDirectoryLocales() string    { return c.DirectoryLocales }
func (c *Config) GetSyncDefaultCount() int       { return c.SyncDefaultCount }
func (c *Config) GetSyncInterval() time.Duration { return c.SyncInterval }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		RedisTLSInsecure: strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		APIKey:           getEnv("API_KEY", ""),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		CacheTTL:         mustDuration(getEnv("CACHE_TTL", "300s")),
		QueueName:        getEnv("QUEUE_NAME", "default"),
		QueueConcurrency: mustInt(getEnv("QUEUE_CONCURRENCY", "10")),
		SyncMaxRetry:     mustInt(getEnv("SYNC_MAX_RETRY", "3")),
		AIAPIKey:         getEnv("AI_API_KEY", ""),
		AIBaseURL:        getEnv("AI_BASE_URL", "https://api.openai.com/v1"),
		AIModel:          getEnv("AI_MODEL", "gpt-3.5-turbo"),
		DirectoryURL:     getEnv("DIRECTORY_URL", "https://randomuser.me/api/"),
		DirectoryLocales: getEnv("DIRECTORY_LOCALES", "us,gb,au"),
		SyncDefaultCount: mustInt(getEnv("SYNC_DEFAULT_COUNT", "10")),
		SyncInterval:     mustDuration(getEnv("SYNC_INTERVAL", "1h")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is required")
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("CACHE_TTL must be a positive duration")
	}
	if cfg.SyncInterval <= 0 {
		return nil, fmt.Errorf("SYNC_INTERVAL must be a positive duration")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
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
