// Package cache keeps the per-week batch summaries hot for the API. Caching
// is best effort: a disabled or unreachable Redis degrades to the noop
// implementation and every read goes to Postgres.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jardineria-aranjuez/reposicion/internal/config"
	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

const (
	batchSummaryKeyPrefix = "reposicion:batch"
	batchScanBatchSize    = 100
)

// batchEnvelope is the cached value: metrics plus the alerts raised with them.
type batchEnvelope struct {
	Metrics domain.BatchMetrics `json:"metrics"`
	Alerts  []domain.Alert      `json:"alerts,omitempty"`
}

type BatchCache interface {
	Get(ctx context.Context, year, week int, section string) (*domain.BatchMetrics, []domain.Alert, bool, error)
	Set(ctx context.Context, year, week int, section string, m domain.BatchMetrics, alerts []domain.Alert) error
	Invalidate(ctx context.Context, year, week int, section string) error
	InvalidateAll(ctx context.Context) error
}

type redisBatchCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopBatchCache struct{}

func NewBatchCache(cfg config.CacheConfig) (BatchCache, error) {
	if !cfg.Enabled {
		return &noopBatchCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisBatchCache{client: client, ttl: ttl}, nil
}

func NewNoopBatchCache() BatchCache {
	return &noopBatchCache{}
}

func batchKey(year, week int, section string) string {
	return fmt.Sprintf("%s:%d:%d:%s", batchSummaryKeyPrefix, year, week, section)
}

func (c *redisBatchCache) Get(ctx context.Context, year, week int, section string) (*domain.BatchMetrics, []domain.Alert, bool, error) {
	payload, err := c.client.Get(ctx, batchKey(year, week, section)).Bytes()
	if err == redis.Nil {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var env batchEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, nil, false, fmt.Errorf("decode batch summary cache: %w", err)
	}
	return &env.Metrics, env.Alerts, true, nil
}

func (c *redisBatchCache) Set(ctx context.Context, year, week int, section string, m domain.BatchMetrics, alerts []domain.Alert) error {
	payload, err := json.Marshal(batchEnvelope{Metrics: m, Alerts: alerts})
	if err != nil {
		return fmt.Errorf("encode batch summary cache: %w", err)
	}
	if err := c.client.Set(ctx, batchKey(year, week, section), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisBatchCache) Invalidate(ctx context.Context, year, week int, section string) error {
	return c.client.Del(ctx, batchKey(year, week, section)).Err()
}

func (c *redisBatchCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, batchSummaryKeyPrefix, batchScanBatchSize)
}

func (n *noopBatchCache) Get(ctx context.Context, year, week int, section string) (*domain.BatchMetrics, []domain.Alert, bool, error) {
	return nil, nil, false, nil
}

func (n *noopBatchCache) Set(ctx context.Context, year, week int, section string, m domain.BatchMetrics, alerts []domain.Alert) error {
	return nil
}

func (n *noopBatchCache) Invalidate(ctx context.Context, year, week int, section string) error {
	return nil
}

func (n *noopBatchCache) InvalidateAll(ctx context.Context) error {
	return nil
}
