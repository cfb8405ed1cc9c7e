package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/21R01A7263/docGPT/pkg/logging"
)

// l1Share is the fraction of the L2 TTL an entry lives in L1 when L2 is present.
const l1Share = 0.3

type Service struct {
	l1 *L1CacheService
	l2 RemoteStore
}

// NewCacheService wires L1 with an optional L2. A nil l2 keeps everything in memory.
func NewCacheService(l1 *L1CacheService, l2 RemoteStore) *Service {
	return &Service{l1: l1, l2: l2}
}

func (cs *Service) GetCache(ctx context.Context, key string) (interface{}, bool) {
	if data, ok := cs.l1.Get(key); ok {
		return data, ok
	}
	if cs.l2 == nil {
		return nil, false
	}
	data, ok, err := cs.l2.GetCache(ctx, key)
	if err != nil {
		logging.Logger.Error("l2 fail GetCache", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	cs.l1.Set(key, data, 0)
	return data, true
}

func (cs *Service) SetCache(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if cs.l2 == nil {
		cs.l1.Set(key, value, expiration)
		return nil
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	if err := cs.l2.SetCache(ctx, key, jsonData, expiration); err != nil {
		logging.Logger.Error("l2 fail SetCache", "key", key, "error", err)
		return err
	}
	cs.l1.Set(key, value, time.Duration(float64(expiration)*l1Share))
	return nil
}

func (cs *Service) DelCache(ctx context.Context, key string) error {
	cs.l1.Del(key)
	if cs.l2 == nil {
		return nil
	}
	if err := cs.l2.DelCache(ctx, key); err != nil {
		logging.Logger.Error("l2 fail DelCache", "key", key, "error", err)
		return err
	}
	return nil
}
