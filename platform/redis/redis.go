package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/21R01A7263/docGPT/config"
	"github.com/21R01A7263/docGPT/pkg/logging"
)

const cachePrefix = "cache:"

type Service struct {
	Rdb *redis.Client
}

func InitRedis(cfg *config.Config) (*Service, error) {
	redisUrl := cfg.RedisURL
	if redisUrl == "" {
		return nil, fmt.Errorf("empty redis url")
	}
	opt, err := redis.ParseURL(redisUrl)
	if err != nil {
		return nil, fmt.Errorf("could not parse Redis URL: %w", err)
	}
	if cfg.RedisPassword != "" {
		opt.Password = cfg.RedisPassword
	}
	rdb := redis.NewClient(opt)

	testCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := rdb.Ping(testCtx).Err(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	logging.Logger.Info("Connected to Redis", "addr", opt.Addr)
	return NewService(rdb), nil
}

func NewService(rdb *redis.Client) *Service {
	return &Service{Rdb: rdb}
}

// SetCache stores raw bytes; callers own the encoding.
func (s *Service) SetCache(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	return s.Rdb.Set(ctx, cachePrefix+key, value, expiration).Err()
}

// GetCache reports a miss as (nil, false, nil); only transport failures return an error.
func (s *Service) GetCache(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.Rdb.Get(ctx, cachePrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *Service) DelCache(ctx context.Context, key string) error {
	return s.Rdb.Del(ctx, cachePrefix+key).Err()
}

func (s *Service) Close() error {
	return s.Rdb.Close()
}
