package cache

import (
	"context"
	"time"
)

// CacheService is the two-level cache seen by services.
type CacheService interface {
	GetCache(ctx context.Context, key string) (interface{}, bool)
	SetCache(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DelCache(ctx context.Context, key string) error
}

// RemoteStore is the optional shared L2, implemented by platform/redis.
type RemoteStore interface {
	GetCache(ctx context.Context, key string) ([]byte, bool, error)
	SetCache(ctx context.Context, key string, value []byte, expiration time.Duration) error
	DelCache(ctx context.Context, key string) error
}
