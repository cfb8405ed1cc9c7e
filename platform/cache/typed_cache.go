package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/21R01A7263/docGPT/pkg/logging"
)

// TypedCache wraps a CacheService with typed values and collapsed loads.
type TypedCache[T any] struct {
	cache CacheService
	sf    singleflight.Group
}

func NewTypedCache[T any](cache CacheService) *TypedCache[T] {
	return &TypedCache[T]{cache: cache}
}

func (tc *TypedCache[T]) Set(ctx context.Context, key string, value T, expiration time.Duration) error {
	return tc.cache.SetCache(ctx, key, value, expiration)
}

// Get returns the cached value. L2 hits arrive as JSON and are decoded.
func (tc *TypedCache[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T

	rawValue, exists := tc.cache.GetCache(ctx, key)
	if !exists {
		return zero, false, nil
	}

	if typedValue, ok := rawValue.(T); ok {
		return typedValue, true, nil
	}

	var result T
	switch v := rawValue.(type) {
	case []byte:
		if err := json.Unmarshal(v, &result); err != nil {
			return zero, true, fmt.Errorf("failed to unmarshal cache value: %w", err)
		}
		return result, true, nil
	default:
		return zero, true, fmt.Errorf("unexpected cache value type %T", rawValue)
	}
}

func (tc *TypedCache[T]) Delete(ctx context.Context, key string) error {
	return tc.cache.DelCache(ctx, key)
}

// GetOrLoad serves key from cache or runs load once for all concurrent callers.
// Load errors are returned to every waiter and never cached.
func (tc *TypedCache[T]) GetOrLoad(ctx context.Context, key string, expiration time.Duration, load func(context.Context) (T, error)) (T, error) {
	var zero T

	value, ok, err := tc.Get(ctx, key)
	if err != nil {
		logging.Logger.Warn("fail GetOrLoad decode, reloading", "key", key, "error", err)
	}
	if ok && err == nil {
		return value, nil
	}

	v, err, _ := tc.sf.Do(key, func() (interface{}, error) {
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := tc.Set(ctx, key, loaded, expiration); err != nil {
			logging.Logger.Error("fail GetOrLoad store", "key", key, "error", err)
		}
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}
