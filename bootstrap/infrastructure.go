package bootstrap

import (
	"github.com/21R01A7263/docGPT/config"
	"github.com/21R01A7263/docGPT/pkg/logging"
	"github.com/21R01A7263/docGPT/platform/cache"
	"github.com/21R01A7263/docGPT/platform/events"
	"github.com/21R01A7263/docGPT/platform/redis"
)

const hubBuffer = 16

type Infrastructure struct {
	Redis     *redis.Service
	Cache     cache.CacheService
	Publisher events.Publisher
	// Events is where websocket clients read from.
	Events events.Subscriber
}

// NewInfrastructure connects the optional Redis and builds the cache and event
// stream. Without REDIS_URL everything stays in process.
func NewInfrastructure(cfg *config.Config) (*Infrastructure, error) {
	infra := &Infrastructure{}

	if cfg.RedisURL != "" {
		redisService, err := redis.InitRedis(cfg)
		if err != nil {
			logging.Logger.Error("fail Initializing Redis", "error", err)
			return nil, err
		}
		infra.Redis = redisService
	}

	// cache
	l1CacheService := cache.InitL1Cache(cfg.AnswerCacheTTL)
	var l2 cache.RemoteStore
	if infra.Redis != nil {
		l2 = infra.Redis
	}
	infra.Cache = cache.NewCacheService(l1CacheService, l2)

	// event publisher
	if infra.Redis != nil {
		redisEvents := events.NewRedisPublisher(infra.Redis.Rdb)
		infra.Publisher, infra.Events = redisEvents, redisEvents
	} else {
		hub := events.NewHub(hubBuffer)
		infra.Publisher, infra.Events = hub, hub
	}

	return infra, nil
}

func (infra *Infrastructure) Shutdown() error {
	if infra.Redis == nil {
		return nil
	}
	if err := infra.Redis.Close(); err != nil {
		logging.Logger.Error("fail closing redis", "error", err)
		return err
	}
	return nil
}
