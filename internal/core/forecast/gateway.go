// Package forecast implements the weather data gateway: it fetches current
// conditions plus a short daily forecast for a place and caches the normalized
// snapshot by place id.
package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/singleflight"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/core/weather"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

const (
	hourLayout = "2006-01-02T15:04"
	dayLayout  = "2006-01-02"
)

// CacheKey is the cache key of the snapshot for a place id
func CacheKey(placeID string) string {
	return fmt.Sprintf("weather:%s", placeID)
}

type Gateway struct {
	provider ports.WeatherProvider
	cache    ports.WeatherCache
	config   ports.ConfigProvider
	logger   ports.Logger
	metrics  ports.MetricsCollector
	now      func() time.Time
	group    singleflight.Group
}

type Dependencies struct {
	Provider ports.WeatherProvider
	Cache    ports.WeatherCache
	Config   ports.ConfigProvider
	Logger   ports.Logger
	Metrics  ports.MetricsCollector
	// Now overrides the clock used to pick the current hour
	Now func() time.Time
}

func NewGateway(deps Dependencies) (*Gateway, error) {
	if deps.Provider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Cache == nil {
		return nil, errors.NewValidationError("cache is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Gateway{
		provider: deps.Provider,
		cache:    deps.Cache,
		config:   deps.Config,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		now:      now,
	}, nil
}

// Cached returns the stored snapshot for place without touching the network.
// It returns nil on a miss or when caching is disabled. Only hits are counted
// here; Fetch counts the miss once it goes upstream.
func (g *Gateway) Cached(ctx context.Context, place geo.Place) *weather.Snapshot {
	if !g.config.GetWeatherConfig().EnableCache {
		return nil
	}

	snapshot, err := g.cache.Get(ctx, CacheKey(place.ID))
	if err != nil || snapshot == nil {
		return nil
	}

	g.metrics.RecordCacheHit(ctx)
	g.logger.Debug("Weather found in cache", ports.F("placeId", place.ID))
	return snapshot
}

// Fetch returns the weather for place, from cache when possible. A nil result
// means the upstream call failed or ctx ended first; failures are logged and
// nothing is cached.
func (g *Gateway) Fetch(ctx context.Context, place geo.Place) *weather.Snapshot {
	if snapshot := g.Cached(ctx, place); snapshot != nil {
		return snapshot
	}
	if g.config.GetWeatherConfig().EnableCache {
		g.metrics.RecordCacheMiss(ctx)
	}

	// concurrent callers for the same place share one upstream call, which
	// runs detached so a caller leaving early does not fail the others
	flight := g.group.DoChan(place.ID, func() (interface{}, error) {
		return g.fetchAndStore(context.WithoutCancel(ctx), place), nil
	})

	select {
	case <-ctx.Done():
		return nil
	case result := <-flight:
		snapshot, _ := result.Val.(*weather.Snapshot)
		return snapshot
	}
}

func (g *Gateway) fetchAndStore(ctx context.Context, place geo.Place) *weather.Snapshot {
	cfg := g.config.GetWeatherConfig()

	start := time.Now()
	response, err := g.provider.FetchForecast(ctx, ports.ForecastRequest{
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
		Timezone:  cfg.Timezone,
	})
	g.metrics.RecordUpstreamCall(ctx, g.provider.GetProviderName(), err == nil && response != nil, time.Since(start))

	if err != nil || response == nil {
		g.logger.Error("Failed to fetch weather",
			ports.F("placeId", place.ID),
			ports.F("place", place.DisplayName),
			ports.F("error", err))
		return nil
	}

	snapshot := g.normalize(place, response, cfg.Timezone)
	if err := snapshot.IsValid(); err != nil {
		g.logger.Error("Invalid weather data from provider",
			ports.F("placeId", place.ID),
			ports.F("error", err))
		return nil
	}

	if cfg.EnableCache {
		if cacheErr := g.cache.Set(ctx, CacheKey(place.ID), snapshot, cfg.CacheTTL); cacheErr != nil {
			g.logger.Warn("Failed to cache weather data",
				ports.F("placeId", place.ID),
				ports.F("error", cacheErr))
		}
	}

	g.logger.Debug("Weather retrieved successfully",
		ports.F("placeId", place.ID),
		ports.F("temperature", snapshot.TemperatureC))
	return snapshot
}

func (g *Gateway) normalize(place geo.Place, response *ports.ForecastResponse, timezone string) *weather.Snapshot {
	loc := resolveLocation(timezone, response.Timezone)
	now := g.now().In(loc)

	condition := weather.ConditionFromCode(response.CurrentWeather.WeatherCode)
	humidity, precipitation := currentHour(response.Hourly, now, loc)

	observedAt, err := time.ParseInLocation(hourLayout, response.CurrentWeather.Time, loc)
	if err != nil {
		observedAt = now
	}

	return &weather.Snapshot{
		Place:           place,
		TemperatureC:    response.CurrentWeather.Temperature,
		Description:     condition,
		HumidityPct:     int(math.Round(humidity)),
		WindKph:         response.CurrentWeather.WindSpeed,
		PrecipitationMm: precipitation,
		ObservedAt:      observedAt,
		IconKey:         condition.IconKey(),
		Forecast:        buildForecast(response.Daily, loc),
	}
}

func resolveLocation(names ...string) *time.Location {
	for _, name := range names {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.Local
}

// currentHour picks humidity and precipitation for the hour and day of now.
// Both are zero when the series has no matching entry.
func currentHour(hourly ports.HourlySeries, now time.Time, loc *time.Location) (humidity, precipitation float64) {
	for i, stamp := range hourly.Time {
		t, err := time.ParseInLocation(hourLayout, stamp, loc)
		if err != nil {
			continue
		}
		if t.Hour() != now.Hour() || t.YearDay() != now.YearDay() || t.Year() != now.Year() {
			continue
		}
		if i < len(hourly.RelativeHumidity2m) {
			humidity = hourly.RelativeHumidity2m[i]
		}
		if i < len(hourly.Precipitation) {
			precipitation = hourly.Precipitation[i]
		}
		return humidity, precipitation
	}
	return 0, 0
}

// buildForecast skips today and returns up to MaxForecastDays following days
func buildForecast(daily ports.DailySeries, loc *time.Location) []weather.ForecastDay {
	days := make([]weather.ForecastDay, 0, weather.MaxForecastDays)
	for i := 1; i < len(daily.Time) && len(days) < weather.MaxForecastDays; i++ {
		date, err := time.ParseInLocation(dayLayout, daily.Time[i], loc)
		if err != nil {
			continue
		}

		condition := weather.ConditionUnknown
		if i < len(daily.WeatherCode) {
			condition = weather.ConditionFromCode(daily.WeatherCode[i])
		}

		day := weather.ForecastDay{
			Date:        date,
			Description: condition,
			IconKey:     condition.IconKey(),
		}
		if i < len(daily.Temperature2mMin) {
			day.TempMinC = daily.Temperature2mMin[i]
		}
		if i < len(daily.Temperature2mMax) {
			day.TempMaxC = daily.Temperature2mMax[i]
		}
		days = append(days, day)
	}
	return days
}

// GetProviderInfo returns provider details for the metrics endpoint
func (g *Gateway) GetProviderInfo() map[string]interface{} {
	cfg := g.config.GetWeatherConfig()
	return map[string]interface{}{
		"provider":      g.provider.GetProviderName(),
		"cache_enabled": cfg.EnableCache,
		"cache_ttl":     cfg.CacheTTL.String(),
		"timezone":      cfg.Timezone,
	}
}
