package config

import (
	"fmt"
	"time"
)

// Config holds the complete service configuration, loaded from environment
// variables with sensible defaults.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Fetcher  FetcherConfig
	Cache    CacheConfig
	Auth     AuthConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// LLMConfig holds explanation generator (chat completions API) configuration.
type LLMConfig struct {
	Endpoint    string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// FetcherConfig holds article content/metadata fetcher configuration.
type FetcherConfig struct {
	Timeout          time.Duration
	MaxContentLength int
	UserAgent        string
}

// CacheConfig holds the recent-explanation mirror configuration.
type CacheConfig struct {
	Enabled    bool
	RedisURL   string
	RecentSize int
	TTL        time.Duration
}

// AuthConfig holds session token validation configuration.
type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            9300,
			ShutdownTimeout: 10 * time.Second,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "news_explainer",
			Name:            "news_explainer",
			SSLMode:         "disable",
			MaxConns:        20,
			MinConns:        5,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: 30 * time.Minute,
		},
		LLM: LLMConfig{
			Endpoint:    "https://api.openai.com/v1/chat/completions",
			Model:       "gpt-3.5-turbo",
			Timeout:     90 * time.Second,
			MaxTokens:   2000,
			Temperature: 0.7,
		},
		Fetcher: FetcherConfig{
			Timeout:          30 * time.Second,
			MaxContentLength: 15000,
			UserAgent:        "news-explainer/1.0",
		},
		Cache: CacheConfig{
			Enabled:    false,
			RedisURL:   "redis://localhost:6379",
			RecentSize: 10,
			TTL:        24 * time.Hour,
		},
		Auth: AuthConfig{
			Issuer: "news-explainer-auth",
		},
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("LLM endpoint must not be empty")
	}

	if cfg.LLM.MaxTokens <= 0 {
		return fmt.Errorf("LLM max tokens must be positive: %d", cfg.LLM.MaxTokens)
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("LLM temperature out of range: %f", cfg.LLM.Temperature)
	}

	if cfg.Fetcher.MaxContentLength <= 0 {
		return fmt.Errorf("fetcher max content length must be positive: %d", cfg.Fetcher.MaxContentLength)
	}

	if cfg.Cache.RecentSize <= 0 {
		return fmt.Errorf("cache recent size must be positive: %d", cfg.Cache.RecentSize)
	}

	return nil
}
