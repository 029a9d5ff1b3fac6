package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"movieRecommender/pkg/config"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout = 5 * time.Second
	opTimeout   = 3 * time.Second
)

// NewRedisClient builds the cache client. The cache is optional, so callers
// only reach this when REDIS_ENABLED is set; a failed ping is still an error
// because a half-configured cache is worse than none.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func CloseRedisClient(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}

	return nil
}
