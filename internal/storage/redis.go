package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

const defaultRedisKey = "snake:highscore"

// RedisBackend stores the value under a single redis key.
type RedisBackend struct {
	client *redis.Client
	key    string
}

func init() {
	registry.Register(config.BackendRedis, func(ctx context.Context, cfg config.StorageConfig) (registry.Backend, error) {
		return OpenRedis(ctx, cfg.Redis)
	})
}

// OpenRedis connects to redis and verifies the connection with PING.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: cannot connect to redis %s: %w", cfg.Addr, err)
	}

	key := cfg.Key
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisBackend{client: client, key: key}, nil
}

// Get returns the stored value.
func (b *RedisBackend) Get(ctx context.Context) (string, error) {
	value, err := b.client.Get(ctx, b.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", registry.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("storage: redis GET %s: %w", b.key, err)
	}
	return value, nil
}

// Put stores the value without expiry.
func (b *RedisBackend) Put(ctx context.Context, value string) error {
	if err := b.client.Set(ctx, b.key, value, 0).Err(); err != nil {
		return fmt.Errorf("storage: redis SET %s: %w", b.key, err)
	}
	return nil
}

// Delete removes the key.
func (b *RedisBackend) Delete(ctx context.Context) error {
	if err := b.client.Del(ctx, b.key).Err(); err != nil {
		return fmt.Errorf("storage: redis DEL %s: %w", b.key, err)
	}
	return nil
}

// Close closes the client.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
