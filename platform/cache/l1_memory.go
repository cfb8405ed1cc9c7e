package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type L1CacheService struct {
	client *cache.Cache
}

func InitL1Cache(defaultExpiration time.Duration) *L1CacheService {
	return &L1CacheService{
		client: cache.New(defaultExpiration, 2*defaultExpiration),
	}
}

func (s *L1CacheService) Get(key string) (interface{}, bool) {
	return s.client.Get(key)
}

func (s *L1CacheService) Set(key string, value interface{}, expiration time.Duration) {
	s.client.Set(key, value, expiration)
}

func (s *L1CacheService) Del(key string) {
	s.client.Delete(key)
}

func (s *L1CacheService) Len() int {
	return s.client.ItemCount()
}
