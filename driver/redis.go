package driver

import (
	"context"
	"fmt"

	"news-explainer/config"
	logger "news-explainer/utils/logger"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the redis instance backing the recent-explanation
// mirror and verifies connectivity.
func NewRedisClient(ctx context.Context, cfg *config.CacheConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Logger.Error("Failed to parse redis URL", "error", err)
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Logger.Error("Failed to ping redis", "error", err)
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Logger.Info("Connected to redis", "addr", opts.Addr)

	return client, nil
}
