package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"salary-predictor/internal/models"
)

// PredictionCache stores raw model outputs in Redis under prefix:key.
type PredictionCache struct {
	client *RedisClient
	prefix string
	ttl    time.Duration
}

func NewPredictionCache(client *RedisClient, prefix string, ttl time.Duration) *PredictionCache {
	return &PredictionCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *PredictionCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

func (c *PredictionCache) Get(ctx context.Context, key string) (*models.CachedScore, bool, error) {
	data, found, err := c.client.Get(ctx, c.key(key))
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	if !found {
		return nil, false, nil
	}

	var score models.CachedScore
	if err := json.Unmarshal(data, &score); err != nil {
		// Evict so the next write replaces it; a failed delete only means
		// another miss.
		_ = c.client.Del(ctx, c.key(key))
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return &score, true, nil
}

func (c *PredictionCache) Set(ctx context.Context, key string, score models.CachedScore) error {
	data, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttl); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
