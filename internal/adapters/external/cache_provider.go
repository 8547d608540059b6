package external

import (
	"sync/atomic"
	"time"

	"weathermap.app/internal/ports"
)

// cacheCounters tracks hits and misses of a cache backend
type cacheCounters struct {
	hits   atomic.Int64
	misses atomic.Int64
}

func (c *cacheCounters) RecordHit() {
	c.hits.Add(1)
}

func (c *cacheCounters) RecordMiss() {
	c.misses.Add(1)
}

// GetStats returns cache statistics
func (c *cacheCounters) GetStats() ports.CacheStats {
	hits, misses := c.hits.Load(), c.misses.Load()
	total := hits + misses
	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return ports.CacheStats{
		Hits:        hits,
		Misses:      misses,
		TotalOps:    total,
		HitRatio:    hitRatio,
		LastUpdated: time.Now(),
	}
}

// expiresAt returns the expiry for ttl; the zero time means never
func expiresAt(ttl time.Duration) time.Time {
	if ttl == 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}

func expired(at time.Time) bool {
	return !at.IsZero() && time.Now().After(at)
}

// ProviderInfo is implemented by providers that describe their configuration
type ProviderInfo interface {
	GetProviderInfo() map[string]interface{}
}

// WeatherMetricsAdapter implements WeatherMetrics port
type WeatherMetricsAdapter struct {
	cache     ports.CacheMetrics
	cacheType string
	weather   ports.WeatherProvider
	geodata   ports.PlaceProvider
}

// NewWeatherMetricsAdapter creates a new weather metrics adapter. cache may be
// nil when caching is disabled.
func NewWeatherMetricsAdapter(cache ports.CacheMetrics, cacheType string, weather ports.WeatherProvider, geodata ports.PlaceProvider) ports.WeatherMetrics {
	return &WeatherMetricsAdapter{
		cache:     cache,
		cacheType: cacheType,
		weather:   weather,
		geodata:   geodata,
	}
}

// GetProviderInfo returns provider information
func (m *WeatherMetricsAdapter) GetProviderInfo() map[string]interface{} {
	result := map[string]interface{}{
		"weather_provider": m.weather.GetProviderName(),
		"geodata_provider": m.geodata.GetProviderName(),
		"cache_enabled":    m.cache != nil,
		"cache_type":       m.cacheType,
		"status":           "active",
	}

	if info, ok := m.geodata.(ProviderInfo); ok {
		if order, found := info.GetProviderInfo()["provider_order"]; found {
			result["geodata_provider_order"] = order
		}
	}
	return result
}

// GetCacheMetrics returns cache performance metrics
func (m *WeatherMetricsAdapter) GetCacheMetrics() (ports.CacheStats, error) {
	if m.cache == nil {
		return ports.CacheStats{LastUpdated: time.Now()}, nil
	}
	return m.cache.GetStats(), nil
}
