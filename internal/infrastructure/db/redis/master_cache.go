package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/enrollhub/enrollment-api/internal/core/ports"
)

var _ ports.MasterCache = (*MasterCache)(nil)

// MasterCache stores serialized master-data lists with a TTL.
type MasterCache struct {
	client *redis.Client
}

func NewMasterCache(client *redis.Client) *MasterCache {
	return &MasterCache{client: client}
}

// Get returns the cached bytes for key; a missing key is (nil, false, nil).
func (c *MasterCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return raw, true, nil
}

// Set stores value under key, expiring after ttl.
func (c *MasterCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
