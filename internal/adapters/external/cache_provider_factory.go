package external

import (
	"context"
	"fmt"

	"weathermap.app/internal/config"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

// ManagedCache is a cache backend that can report its counters and liveness
type ManagedCache interface {
	ports.CacheProvider
	ports.CacheMetrics
	Ping(ctx context.Context) error
}

type CacheProviderFactory struct{}

func NewCacheProviderFactory() *CacheProviderFactory {
	return &CacheProviderFactory{}
}

func (f *CacheProviderFactory) CreateCacheProvider(cfg *config.CacheConfig) (ManagedCache, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CacheTypeMemory:
		return NewMemoryCacheProvider(), nil
	case config.CacheTypeRedis:
		return NewRedisCacheProviderAdapter(&cfg.Redis)
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type.String()), nil)
	}
}
