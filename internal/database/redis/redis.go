package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"regwatch/internal/config"
	"regwatch/pkg/logger"
)

// NewClient creates a Redis client from the injected configuration and
// verifies the connection with a ping.
func NewClient(ctx context.Context, cfg *config.RedisConfig, log *logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info(fmt.Sprintf("Connected to Redis at %s", cfg.Address))
	return rdb, nil
}

// HealthCheck verifies the Redis connection is usable.
func HealthCheck(ctx context.Context, client *redis.Client) error {
	if client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return client.Ping(ctx).Err()
}
