// File: utils/cache.go
package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pestcontrol/config"

	"github.com/go-redis/redis/v8"
	gocache "github.com/patrickmn/go-cache"
)

// ListCache stores JSON-encoded values for a short time.
type ListCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheClient is the shared Redis client, nil when caching in process.
var CacheClient *redis.Client

// InitCache picks the cache backend from config: Redis when REDIS_ADDR is set,
// an in-process cache otherwise.
func InitCache() (ListCache, error) {
	ttl := config.AppConfig.CacheTTL
	if config.AppConfig.RedisAddr == "" {
		return NewMemoryCache(ttl), nil
	}

	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis (Cache): %w", err)
	}
	return NewRedisCache(CacheClient, ttl), nil
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache returns a ListCache backed by Redis.
func NewRedisCache(client *redis.Client, ttl time.Duration) ListCache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache returns a process-local ListCache. Values are stored encoded
// so callers never share slices with the cache.
func NewMemoryCache(ttl time.Duration) ListCache {
	return &memoryCache{store: gocache.New(ttl, 2*ttl)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	v, found := c.store.Get(key)
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(v.([]byte), dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	c.store.Set(key, raw, gocache.DefaultExpiration)
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.store.Delete(k)
	}
	return nil
}
