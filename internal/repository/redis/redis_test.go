package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"docregistry/internal/config"
)

func TestNewClient_InvalidConfig(t *testing.T) {
	ctx := context.Background()

	_, err := NewClient(ctx, config.RedisConfig{})
	assert.EqualError(t, err, "redis url is required")

	_, err = NewClient(ctx, config.RedisConfig{URL: "http://localhost:6379"})
	assert.ErrorContains(t, err, "parse redis URL")
}
