package cache

import (
	"context"
	"time"
)

// NoopCache is used when caching is disabled; every lookup misses
type NoopCache struct{}

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (NoopCache) Get(ctx context.Context, key string) (interface{}, bool) {
	return nil, false
}

func (NoopCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
}

func (NoopCache) Delete(ctx context.Context, key string) {}

func (NoopCache) DeleteByPrefix(ctx context.Context, prefix string) {}
