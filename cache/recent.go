// ABOUTME: This file implements the redis-backed mirror of the most recent explanations.
// ABOUTME: The mirror is best effort; postgres remains the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"news-explainer/domain"

	"github.com/redis/go-redis/v9"
)

const recentKey = "explanations:recent"

// RecentCache mirrors the newest explanation records for cheap reads.
type RecentCache interface {
	// Push prepends a record and trims the mirror to its configured size.
	Push(ctx context.Context, record *domain.ExplanationRecord) error
	// List returns the mirrored records, newest first.
	List(ctx context.Context) ([]domain.ExplanationRecord, error)
}

type redisRecentCache struct {
	client *redis.Client
	size   int
	ttl    time.Duration
	logger *slog.Logger
}

// NewRecentCache creates a RecentCache on the given redis client.
func NewRecentCache(client *redis.Client, size int, ttl time.Duration, logger *slog.Logger) RecentCache {
	return &redisRecentCache{
		client: client,
		size:   size,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *redisRecentCache) Push(ctx context.Context, record *domain.ExplanationRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode explanation record: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, recentKey, raw)
	pipe.LTrim(ctx, recentKey, 0, int64(c.size-1))
	if c.ttl > 0 {
		pipe.Expire(ctx, recentKey, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.WarnContext(ctx, "failed to push explanation record to cache", "error", err)
		return fmt.Errorf("failed to push explanation record: %w", err)
	}

	return nil
}

func (c *redisRecentCache) List(ctx context.Context) ([]domain.ExplanationRecord, error) {
	raws, err := c.client.LRange(ctx, recentKey, 0, int64(c.size-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recent explanation cache: %w", err)
	}

	records := []domain.ExplanationRecord{}

	for _, raw := range raws {
		var record domain.ExplanationRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			c.logger.WarnContext(ctx, "skipping undecodable cached record", "error", err)
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

type noopRecentCache struct{}

// NewNoopRecentCache creates a RecentCache that stores nothing. Used when
// caching is disabled so callers never branch on configuration.
func NewNoopRecentCache() RecentCache {
	return noopRecentCache{}
}

func (noopRecentCache) Push(ctx context.Context, record *domain.ExplanationRecord) error {
	return nil
}

func (noopRecentCache) List(ctx context.Context) ([]domain.ExplanationRecord, error) {
	return []domain.ExplanationRecord{}, nil
}
