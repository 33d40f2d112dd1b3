// Package redis binds the registry's persistence slots to two Redis string keys.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"docregistry/internal/config"
	"docregistry/internal/repository/blob"
)

// NewClient builds a client from cfg and verifies the connection.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Backend implements blob.Backend with GET and SET.
type Backend struct {
	client redis.Cmdable
}

// NewBackend wraps client.
func NewBackend(client redis.Cmdable) *Backend {
	return &Backend{client: client}
}

// New returns the persistence binding over client, with keys under prefix.
func New(client redis.Cmdable, prefix string) *blob.Store {
	return blob.New(NewBackend(client), prefix)
}

func (b *Backend) Read(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := b.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, true, nil
}

func (b *Backend) Write(ctx context.Context, key string, data []byte) error {
	if err := b.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
