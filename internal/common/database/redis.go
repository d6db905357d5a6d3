// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"jobmatch-workers/internal/common/config"
	"jobmatch-workers/internal/common/errors"

	"github.com/redis/go-redis/v9"
)

// RedisClient backs the persona and weight caches.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis builds a lazily connected client. Zero pool settings fall back to
// ten connections, five idle and a three second read/write deadline.
func NewRedis(cfg config.RedisConfig) (*RedisClient, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 10
	}
	minIdle := cfg.MinIdle
	if minIdle <= 0 || minIdle > poolSize {
		minIdle = poolSize / 2
	}
	opTimeout := cfg.OpTimeout
	if opTimeout <= 0 {
		opTimeout = 3 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
		PoolSize:     poolSize,
		MinIdleConns: minIdle,
	})

	return &RedisClient{Client: rdb}, nil
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", errors.NewDatabaseConnectionFailedError(err))
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
