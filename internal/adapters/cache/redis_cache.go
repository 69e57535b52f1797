package cache

import (
	"booking-location-service/internal/platform/obs"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultKeyPrefix = "location:"

// RedisCache stores entries as plain Redis strings with a server-side TTL.
type RedisCache struct {
	client    redis.UniversalClient
	keyPrefix string
	log       *zap.Logger
}

func NewRedisCache(client redis.UniversalClient, keyPrefix string, log *zap.Logger) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisCache{client: client, keyPrefix: keyPrefix, log: log}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis client: parse url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis client: ping: %w", err)
	}

	return client, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, r.log, "cache.redis.Get")(&err)

	value, err := r.client.Get(ctx, r.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get redis cache key=%q: %w", key, err)
	}

	return value, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, r.log, "cache.redis.Set")(&err)

	if err := r.client.Set(ctx, r.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("set redis cache key=%q: %w", key, err)
	}

	return nil
}

// PingContext reports whether the Redis server is reachable.
func (r *RedisCache) PingContext(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
