package cache

import (
	"github.com/gymflow/gymflow/internal/config"
	"github.com/gymflow/gymflow/internal/logger"
	redisClient "github.com/gymflow/gymflow/internal/redis"
)

// CacheType represents the type of cache backend to use
type CacheType string

const (
	CacheTypeInMemory CacheType = "inmemory"
	CacheTypeRedis    CacheType = "redis"
)

// Initialize initializes the cache system based on configuration. The Redis
// backend requires a connected client; everything else falls back to the
// in-memory store.
func Initialize(cfg *config.Configuration, log *logger.Logger, client *redisClient.Client) Cache {
	if !cfg.Cache.Enabled {
		log.Infow("caching disabled")
		return NewNoopCache()
	}

	switch CacheType(cfg.Cache.Type) {
	case CacheTypeRedis:
		if client != nil {
			InitializeRedisCache(client, log)
			log.Infow("cache system initialized", "type", CacheTypeRedis)
			return GetRedisCache()
		}
		log.Warnw("redis cache requested but no client available, falling back to in-memory")
		fallthrough
	case CacheTypeInMemory:
		fallthrough
	default:
		InitializeInMemoryCache()
		log.Infow("cache system initialized", "type", CacheTypeInMemory)
		return GetInMemoryCache()
	}
}
