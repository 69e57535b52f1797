package ports

import (
	"context"
	"time"
)

// Key/value store for computed results. A miss is (nil, false, nil).
// Entries expire after their TTL and are never invalidated explicitly.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
