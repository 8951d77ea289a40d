package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"coursegate/internal/shared/config"
	"coursegate/internal/shared/errors"
)

// NewRedisClient connects to redis when the cache is enabled. A disabled
// cache returns a nil client, which the dedupe layer treats as pass-through.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewInternalError("failed to connect to redis")
	}
	return client, nil
}
