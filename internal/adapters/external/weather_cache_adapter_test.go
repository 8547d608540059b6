package external

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/core/weather"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

var _ ports.WeatherCache = (*WeatherCacheAdapter)(nil)

func testSnapshot() *weather.Snapshot {
	return &weather.Snapshot{
		Place: geo.Place{
			ID:             "node/1",
			DisplayName:    "Madrid",
			LocalizedNames: map[string]string{"en": "Madrid"},
			Latitude:       40.4168,
			Longitude:      -3.7038,
			PlaceRank:      8,
		},
		TemperatureC:    20,
		Description:     weather.ConditionClear,
		HumidityPct:     40,
		WindKph:         12.5,
		PrecipitationMm: 0,
		ObservedAt:      time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
		IconKey:         "clear",
	}
}

func TestWeatherCacheAdapter_RoundTripThroughBackends(t *testing.T) {
	_, redisConfig := setupMockRedis(t)
	redisCache, err := NewRedisCacheProviderAdapter(redisConfig)
	require.NoError(t, err)
	defer func() { _ = redisCache.Close() }()

	backends := map[string]ports.CacheProvider{
		"MemoryCache": NewMemoryCacheProvider(),
		"RedisCache":  redisCache,
	}

	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			adapter := NewWeatherCacheAdapter(backend)
			snapshot := testSnapshot()

			require.NoError(t, adapter.Set(ctx, snapshot.Place.ID, snapshot, 0))

			cached, err := adapter.Get(ctx, snapshot.Place.ID)
			require.NoError(t, err)
			assert.Equal(t, snapshot.Place, cached.Place)
			assert.Equal(t, snapshot.TemperatureC, cached.TemperatureC)
			assert.Equal(t, snapshot.Description, cached.Description)
			assert.True(t, snapshot.ObservedAt.Equal(cached.ObservedAt))

			_, err = adapter.Get(ctx, "node/404")
			assert.True(t, errors.IsNotFoundError(err))
		})
	}
}

func TestWeatherCacheAdapter_Errors(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryCacheProvider()
	adapter := NewWeatherCacheAdapter(backend)

	t.Run("NilSnapshot", func(t *testing.T) {
		assert.True(t, errors.IsValidationError(adapter.Set(ctx, "node/1", nil, 0)))
	})

	t.Run("CorruptedEntry", func(t *testing.T) {
		require.NoError(t, backend.Set(ctx, "node/2", []byte("not json"), 0))

		_, err := adapter.Get(ctx, "node/2")
		assert.True(t, errors.IsExternalAPIError(err))
	})
}

func TestWeatherMetricsAdapter(t *testing.T) {
	cache := NewMemoryCacheProvider()
	cache.RecordHit()
	cache.RecordMiss()

	chain := NewPlaceProviderChain(&testLogger{},
		&testPlaceProvider{name: "overpass"},
		&testPlaceProvider{name: "overpass-mirror-1"},
	)
	weatherProvider := &testWeatherProvider{name: "open-meteo"}

	t.Run("WithCache", func(t *testing.T) {
		metrics := NewWeatherMetricsAdapter(cache, "memory", weatherProvider, chain)

		info := metrics.GetProviderInfo()
		assert.Equal(t, "open-meteo", info["weather_provider"])
		assert.Equal(t, "overpass", info["geodata_provider"])
		assert.Equal(t, true, info["cache_enabled"])
		assert.Equal(t, "memory", info["cache_type"])
		assert.Equal(t, []string{"overpass", "overpass-mirror-1"}, info["geodata_provider_order"])

		stats, err := metrics.GetCacheMetrics()
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.TotalOps)
	})

	t.Run("WithoutCache", func(t *testing.T) {
		metrics := NewWeatherMetricsAdapter(nil, "none", weatherProvider, &testPlaceProvider{name: "overpass"})

		info := metrics.GetProviderInfo()
		assert.Equal(t, false, info["cache_enabled"])
		assert.NotContains(t, info, "geodata_provider_order")

		stats, err := metrics.GetCacheMetrics()
		require.NoError(t, err)
		assert.Zero(t, stats.TotalOps)
	})
}
