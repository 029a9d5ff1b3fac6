package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecommendationCache stores serialized recommendation results with a TTL.
// Keys already carry the model version, so a retrain invalidates old entries
// without an explicit flush.
type RecommendationCache struct {
	client *redis.Client
}

func NewRecommendationCache(client *redis.Client) *RecommendationCache {
	return &RecommendationCache{
		client: client,
	}
}

func (c *RecommendationCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cached recommendations: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached recommendations: %w", err)
	}

	return true, nil
}

func (c *RecommendationCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache recommendations: %w", err)
	}

	return nil
}
