// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"gigboard/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the connection behind store.RedisStore, which keeps creator
// board and browse session snapshots.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis does not dial; call Ping before handing the client to the store.
func NewRedis(cfg config.RedisConfig) *RedisClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	return &RedisClient{Client: rdb}
}

// Ping backs the worker manager's startup retry and the /ready check.
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// GetClient is handed to store.NewRedisStore.
func (c *RedisClient) GetClient() *redis.Client {
	return c.Client
}
