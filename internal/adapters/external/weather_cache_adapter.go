package external

import (
	"context"
	"encoding/json"
	"time"

	"weathermap.app/internal/core/weather"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

// WeatherCacheAdapter bridges generic CacheProvider to snapshot-specific WeatherCache
type WeatherCacheAdapter struct {
	cacheProvider ports.CacheProvider
}

// NewWeatherCacheAdapter creates a weather cache adapter using generic cache provider
func NewWeatherCacheAdapter(cacheProvider ports.CacheProvider) ports.WeatherCache {
	return &WeatherCacheAdapter{
		cacheProvider: cacheProvider,
	}
}

// Get retrieves a weather snapshot from cache
func (w *WeatherCacheAdapter) Get(ctx context.Context, key string) (*weather.Snapshot, error) {
	data, err := w.cacheProvider.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var snapshot weather.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.NewExternalAPIError("failed to deserialize weather snapshot", err)
	}

	return &snapshot, nil
}

// Set stores a weather snapshot in cache
func (w *WeatherCacheAdapter) Set(ctx context.Context, key string, snapshot *weather.Snapshot, ttl time.Duration) error {
	if snapshot == nil {
		return errors.NewValidationError("weather snapshot cannot be nil")
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.NewExternalAPIError("failed to serialize weather snapshot", err)
	}

	return w.cacheProvider.Set(ctx, key, data, ttl)
}
