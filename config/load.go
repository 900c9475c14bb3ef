package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// LoadConfig builds the configuration from defaults and overrides provided via
// environment variables.
func LoadConfig() (*Config, error) {
	config := defaultConfig()

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func loadFromEnv(config *Config) error {
	if err := loadServerConfig(&config.Server); err != nil {
		return fmt.Errorf("failed to load server config: %w", err)
	}

	if err := loadDatabaseConfig(&config.Database); err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	if err := loadLLMConfig(&config.LLM); err != nil {
		return fmt.Errorf("failed to load LLM config: %w", err)
	}

	if err := loadFetcherConfig(&config.Fetcher); err != nil {
		return fmt.Errorf("failed to load fetcher config: %w", err)
	}

	if err := loadCacheConfig(&config.Cache); err != nil {
		return fmt.Errorf("failed to load cache config: %w", err)
	}

	loadAuthConfig(&config.Auth)

	return nil
}

func loadServerConfig(cfg *ServerConfig) error {
	var err error

	if cfg.Port, err = parseIntEnv("SERVER_PORT", cfg.Port); err != nil {
		return err
	}

	if cfg.ShutdownTimeout, err = parseDurationEnv("SERVER_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return err
	}

	if cfg.ReadTimeout, err = parseDurationEnv("SERVER_READ_TIMEOUT", cfg.ReadTimeout); err != nil {
		return err
	}

	if cfg.WriteTimeout, err = parseDurationEnv("SERVER_WRITE_TIMEOUT", cfg.WriteTimeout); err != nil {
		return err
	}

	return nil
}

func loadDatabaseConfig(cfg *DatabaseConfig) error {
	cfg.Host = getEnvOrDefault("DB_HOST", cfg.Host)
	cfg.Port = getEnvOrDefault("DB_PORT", cfg.Port)
	cfg.User = getEnvOrDefault("DB_USER", cfg.User)
	cfg.Password = getEnvOrDefault("DB_PASSWORD", cfg.Password)
	cfg.Name = getEnvOrDefault("DB_NAME", cfg.Name)
	cfg.SSLMode = getEnvOrDefault("DB_SSL_MODE", cfg.SSLMode)

	maxConns, err := parseIntEnv("DB_MAX_CONNS", int(cfg.MaxConns))
	if err != nil {
		return err
	}
	cfg.MaxConns = int32(maxConns)

	minConns, err := parseIntEnv("DB_MIN_CONNS", int(cfg.MinConns))
	if err != nil {
		return err
	}
	cfg.MinConns = int32(minConns)

	if cfg.MaxConnLifetime, err = parseDurationEnv("DB_MAX_CONN_LIFETIME", cfg.MaxConnLifetime); err != nil {
		return err
	}

	if cfg.MaxConnIdleTime, err = parseDurationEnv("DB_MAX_CONN_IDLE_TIME", cfg.MaxConnIdleTime); err != nil {
		return err
	}

	return nil
}

func loadLLMConfig(cfg *LLMConfig) error {
	var err error

	cfg.Endpoint = getEnvOrDefault("LLM_ENDPOINT", cfg.Endpoint)
	cfg.APIKey = getEnvOrDefault("LLM_API_KEY", cfg.APIKey)
	cfg.Model = getEnvOrDefault("LLM_MODEL", cfg.Model)

	if cfg.Timeout, err = parseDurationEnv("LLM_TIMEOUT", cfg.Timeout); err != nil {
		return err
	}

	if cfg.MaxTokens, err = parseIntEnv("LLM_MAX_TOKENS", cfg.MaxTokens); err != nil {
		return err
	}

	if cfg.Temperature, err = parseFloatEnv("LLM_TEMPERATURE", cfg.Temperature); err != nil {
		return err
	}

	return nil
}

func loadFetcherConfig(cfg *FetcherConfig) error {
	var err error

	if cfg.Timeout, err = parseDurationEnv("FETCHER_TIMEOUT", cfg.Timeout); err != nil {
		return err
	}

	if cfg.MaxContentLength, err = parseIntEnv("FETCHER_MAX_CONTENT_LENGTH", cfg.MaxContentLength); err != nil {
		return err
	}

	cfg.UserAgent = getEnvOrDefault("FETCHER_USER_AGENT", cfg.UserAgent)

	return nil
}

func loadCacheConfig(cfg *CacheConfig) error {
	var err error

	cfg.Enabled = getEnvOrDefault("CACHE_ENABLED", strconv.FormatBool(cfg.Enabled)) == "true"
	cfg.RedisURL = getEnvOrDefault("CACHE_REDIS_URL", cfg.RedisURL)

	if cfg.RecentSize, err = parseIntEnv("CACHE_RECENT_SIZE", cfg.RecentSize); err != nil {
		return err
	}

	if cfg.TTL, err = parseDurationEnv("CACHE_TTL", cfg.TTL); err != nil {
		return err
	}

	return nil
}

func loadAuthConfig(cfg *AuthConfig) {
	cfg.JWTSecret = getEnvOrDefault("AUTH_JWT_SECRET", cfg.JWTSecret)
	cfg.Issuer = getEnvOrDefault("AUTH_ISSUER", cfg.Issuer)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}

	return parsed, nil
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float for %s: %w", key, err)
	}

	return parsed, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}

	return parsed, nil
}
